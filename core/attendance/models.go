package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

// Entry is one student's status in an attendance session.
type Entry struct {
	StudentID primitive.ObjectID `json:"student_id" bson:"studentId"`
	Status    string             `json:"status" bson:"status"`
}

type Attendance struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClassID   primitive.ObjectID `json:"class_id" bson:"classId"`
	Date      time.Time          `json:"date" bson:"date"`
	Students  []Entry            `json:"students" bson:"students"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"` // UTC
	UpdatedAt time.Time          `json:"updated_at" bson:"updatedAt"` // UTC
}

// NewEntry is one student's status in a new attendance session.
type NewEntry struct {
	StudentID string `json:"student_id" validate:"required,len=24,hexadecimal"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
}

// NewAttendance contains information needed to record an attendance session.
type NewAttendance struct {
	ClassID  string     `json:"class_id" validate:"required,len=24,hexadecimal"`
	Date     *time.Time `json:"date"`
	Students []NewEntry `json:"students" validate:"required,min=1,dive"`
}

func (na *NewAttendance) Validate(validate *validator.Validate) error {
	return validate.Struct(na)
}
