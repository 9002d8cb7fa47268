package exam

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
)

// Exam types
const (
	TypeMidTerm = "mid-term"
	TypeFinal   = "final"
)

type Exam struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StudentID primitive.ObjectID `json:"student_id" bson:"studentId"`
	ClassID   primitive.ObjectID `json:"class_id" bson:"classId"`
	SubjectID primitive.ObjectID `json:"subject_id" bson:"subjectId"`
	TeacherID primitive.ObjectID `json:"teacher_id,omitempty" bson:"teacherId,omitempty"`
	Marks     float64            `json:"marks" bson:"marks"`
	Total     float64            `json:"total" bson:"total"`
	ExamType  string             `json:"exam_type" bson:"examType"`
	Date      time.Time          `json:"date" bson:"date"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"` // UTC
	UpdatedAt time.Time          `json:"updated_at" bson:"updatedAt"` // UTC
}

// NewExam contains information needed to record a new Exam. Student and class
// may be given as an exact id or a partial name.
type NewExam struct {
	StudentIdentifier string     `json:"student_identifier" validate:"required"`
	ClassIdentifier   string     `json:"class_identifier" validate:"required"`
	SubjectID         string     `json:"subject_id" validate:"required,len=24,hexadecimal"`
	Marks             *float64   `json:"marks" validate:"required,gte=0"`
	Total             *float64   `json:"total" validate:"required,gte=1"`
	ExamType          string     `json:"exam_type" validate:"required,oneof=mid-term final"`
	Date              *time.Time `json:"date"`
}

func (ne *NewExam) Validate(validate *validator.Validate) error {
	ne.StudentIdentifier = core.CleanString(ne.StudentIdentifier)
	ne.ClassIdentifier = core.CleanString(ne.ClassIdentifier)
	return validate.Struct(ne)
}

// UpdateExam defines what information may be provided to modify an existing
// Exam; unsupplied fields keep their prior values.
type UpdateExam struct {
	SubjectID string     `json:"subject_id" validate:"omitempty,len=24,hexadecimal"`
	Marks     *float64   `json:"marks" validate:"omitempty,gte=0"`
	Total     *float64   `json:"total" validate:"omitempty,gte=1"`
	ExamType  string     `json:"exam_type" validate:"omitempty,oneof=mid-term final"`
	Date      *time.Time `json:"date"`
}

func (ue *UpdateExam) Validate(validate *validator.Validate) error {
	return validate.Struct(ue)
}
