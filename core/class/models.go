package class

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
)

type Class struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name"`
	Level     string               `json:"level" bson:"level"`
	Students  []primitive.ObjectID `json:"students" bson:"students"`
	CreatedAt time.Time            `json:"created_at" bson:"createdAt"` // UTC
	UpdatedAt time.Time            `json:"updated_at" bson:"updatedAt"` // UTC
}

func (c *Class) HasStudent(studentID primitive.ObjectID) bool {
	for _, id := range c.Students {
		if id == studentID {
			return true
		}
	}
	return false
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name  string `json:"name" validate:"required"`
	Level string `json:"level" validate:"required"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Level = core.CleanString(nc.Level)
	return validate.Struct(nc)
}

// UpdateClass defines what information may be provided to modify an existing
// Class; unsupplied fields keep their prior values.
type UpdateClass struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

func (uc *UpdateClass) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Level = core.CleanString(uc.Level)
	return validate.Struct(uc)
}
