package subject

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
)

type Subject struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Code      string             `json:"code,omitempty" bson:"code,omitempty"`
	TeacherID primitive.ObjectID `json:"teacher_id,omitempty" bson:"teacherId,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"` // UTC
	UpdatedAt time.Time          `json:"updated_at" bson:"updatedAt"` // UTC
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name      string `json:"name" validate:"required"`
	Code      string `json:"code"`
	TeacherID string `json:"teacher_id" validate:"omitempty,len=24,hexadecimal"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = core.CleanString(ns.Code)
	return validate.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify an existing
// Subject; unsupplied fields keep their prior values.
type UpdateSubject struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	TeacherID string `json:"teacher_id" validate:"omitempty,len=24,hexadecimal"`
}

func (us *UpdateSubject) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Code = core.CleanString(us.Code)
	return validate.Struct(us)
}
