package student

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
)

// Fee statuses
const (
	FeePaid     = "Paid"
	FeeOverpaid = "Overpaid"
	FeePending  = "Pending"
)

// Fee tracks a student's school fees.
type Fee struct {
	Total float64 `json:"total" bson:"total"`
	Paid  float64 `json:"paid" bson:"paid"`
}

// FeeStatus is the derived payment state of a student's fees.
type FeeStatus struct {
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Balance float64 `json:"balance"`
	Status  string  `json:"status"`
}

func (f Fee) Status() FeeStatus {
	balance := f.Total - f.Paid
	status := FeePending
	switch {
	case balance == 0:
		status = FeePaid
	case balance < 0:
		status = FeeOverpaid
	}
	return FeeStatus{Total: f.Total, Paid: f.Paid, Balance: balance, Status: status}
}

type Student struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Fullname     string             `json:"fullname" bson:"fullname"`
	Age          int                `json:"age" bson:"age"`
	Gender       string             `json:"gender" bson:"gender"`
	ClassID      primitive.ObjectID `json:"class_id,omitempty" bson:"classId,omitempty"`
	MotherNumber string             `json:"mother_number" bson:"motherNumber"`
	FatherNumber string             `json:"father_number" bson:"fatherNumber"`
	Fee          Fee                `json:"fee" bson:"fee"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"` // UTC
	UpdatedAt    time.Time          `json:"updated_at" bson:"updatedAt"` // UTC
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Fullname     string `json:"fullname" validate:"required"`
	Age          int    `json:"age" validate:"gte=0"`
	Gender       string `json:"gender"`
	ClassID      string `json:"class_id" validate:"omitempty,len=24,hexadecimal"`
	MotherNumber string `json:"mother_number" validate:"required"`
	FatherNumber string `json:"father_number" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Fullname = core.CleanString(ns.Fullname)
	ns.Gender = core.CleanString(ns.Gender, true /* lower */)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing
// Student; unsupplied fields keep their prior values.
type UpdateStudent struct {
	Fullname     string `json:"fullname"`
	Age          *int   `json:"age" validate:"omitempty,gte=0"`
	Gender       string `json:"gender"`
	ClassID      string `json:"class_id" validate:"omitempty,len=24,hexadecimal"`
	MotherNumber string `json:"mother_number"`
	FatherNumber string `json:"father_number"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Fullname = core.CleanString(us.Fullname)
	us.Gender = core.CleanString(us.Gender, true /* lower */)
	return validate.Struct(us)
}

// FeePayment carries fee amounts for the fee sub-resource operations.
// TrackPayment adds Paid to the running total while UpdateFee overwrites it.
type FeePayment struct {
	Total *float64 `json:"total" validate:"omitempty,gte=0"`
	Paid  *float64 `json:"paid" validate:"omitempty,gte=0"`
}

func (fp *FeePayment) Validate(validate *validator.Validate) error {
	return validate.Struct(fp)
}
