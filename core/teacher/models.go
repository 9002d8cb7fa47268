package teacher

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
)

type Teacher struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Number         string             `json:"number" bson:"number"`
	Email          string             `json:"email" bson:"email"`
	Subject        string             `json:"subject" bson:"subject"`
	ProfilePicture string             `json:"profile_picture" bson:"profilePicture"`
	ProfileAssetID string             `json:"-" bson:"profileAssetId"`
	Certificate    string             `json:"certificate" bson:"certificate"`
	UserID         primitive.ObjectID `json:"user_id,omitempty" bson:"userId,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"createdAt"` // UTC
	UpdatedAt      time.Time          `json:"updated_at" bson:"updatedAt"` // UTC
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Name           string `json:"name" validate:"required"`
	Number         string `json:"number" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Subject        string `json:"subject" validate:"required"`
	ProfilePicture string `json:"profile_picture"` // base64 data URL
	Certificate    string `json:"certificate"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Number = core.CleanString(nt.Number)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Subject = core.CleanString(nt.Subject)
	return validate.Struct(nt)
}

// UpdateTeacher defines what information may be provided to modify an existing
// Teacher; unsupplied fields keep their prior values.
type UpdateTeacher struct {
	Name           string `json:"name"`
	Number         string `json:"number"`
	Email          string `json:"email" validate:"omitempty,email"`
	Subject        string `json:"subject"`
	ProfilePicture string `json:"profile_picture"` // base64 data URL
	Certificate    string `json:"certificate"`
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate) error {
	ut.Name = core.CleanString(ut.Name)
	ut.Number = core.CleanString(ut.Number)
	ut.Email = core.CleanString(ut.Email, true /* lower */)
	ut.Subject = core.CleanString(ut.Subject)
	return validate.Struct(ut)
}
