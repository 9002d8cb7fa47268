package student

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("student not found")
	ErrFullnameExists = core.NewConflictError("a student with this name already exists")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		// QueryAllStudents returns all students, newest first.
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id primitive.ObjectID) (Student, error)
		GetStudentByFullname(ctx context.Context, fullname string) (Student, error)
		// SearchStudentsByName does a case-insensitive substring match on Student.Fullname.
		SearchStudentsByName(ctx context.Context, name string) ([]Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudent(ctx context.Context, id primitive.ObjectID) error
		// SetStudentClass points the student at the given class.
		SetStudentClass(ctx context.Context, id, classID primitive.ObjectID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, fullname string, excluded ...Student) error {
	std, err := svc.repo.GetStudentByFullname(ctx, fullname)
	if err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}
	for _, excl := range excluded {
		if excl.ID == std.ID {
			return nil
		}
	}
	return ErrFullnameExists
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := svc.checkUniqueness(ctx, ns.Fullname); err != nil {
		return Student{}, err
	}

	now := time.Now().UTC()
	std := Student{
		Fullname:     ns.Fullname,
		Age:          ns.Age,
		Gender:       ns.Gender,
		MotherNumber: ns.MotherNumber,
		FatherNumber: ns.FatherNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if ns.ClassID != "" {
		classID, err := primitive.ObjectIDFromHex(ns.ClassID)
		if err != nil {
			return Student{}, core.NewValidationError(err, core.FieldError{Field: "class_id", Error: "invalid id"})
		}
		std.ClassID = classID
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id primitive.ObjectID, us UpdateStudent) (Student, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}

	if us.Fullname != "" && us.Fullname != std.Fullname {
		if err := svc.checkUniqueness(ctx, us.Fullname, std); err != nil {
			return Student{}, err
		}
		std.Fullname = us.Fullname
	}
	if us.Age != nil {
		std.Age = *us.Age
	}
	if us.Gender != "" {
		std.Gender = us.Gender
	}
	if us.ClassID != "" {
		classID, err := primitive.ObjectIDFromHex(us.ClassID)
		if err != nil {
			return Student{}, core.NewValidationError(err, core.FieldError{Field: "class_id", Error: "invalid id"})
		}
		std.ClassID = classID
	}
	if us.MotherNumber != "" {
		std.MotherNumber = us.MotherNumber
	}
	if us.FatherNumber != "" {
		std.FatherNumber = us.FatherNumber
	}
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := svc.repo.GetStudentByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteStudent(ctx, id)
}

// TrackFeePayment records a payment: the paid amount accumulates while the
// total is overwritten when supplied.
func (svc *Service) TrackFeePayment(ctx context.Context, id primitive.ObjectID, fp FeePayment) (Fee, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Fee{}, err
	}
	if fp.Total != nil {
		std.Fee.Total = *fp.Total
	}
	if fp.Paid != nil {
		std.Fee.Paid += *fp.Paid
	}
	std.UpdatedAt = time.Now().UTC()
	std, err = svc.repo.UpdateStudent(ctx, std)
	return std.Fee, err
}

// UpdateFeeInfo overwrites the supplied fee fields.
func (svc *Service) UpdateFeeInfo(ctx context.Context, id primitive.ObjectID, fp FeePayment) (Fee, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Fee{}, err
	}
	if fp.Total != nil {
		std.Fee.Total = *fp.Total
	}
	if fp.Paid != nil {
		std.Fee.Paid = *fp.Paid
	}
	std.UpdatedAt = time.Now().UTC()
	std, err = svc.repo.UpdateStudent(ctx, std)
	return std.Fee, err
}

// DeleteFeeInfo resets both fee fields to zero.
func (svc *Service) DeleteFeeInfo(ctx context.Context, id primitive.ObjectID) (Fee, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Fee{}, err
	}
	std.Fee = Fee{}
	std.UpdatedAt = time.Now().UTC()
	std, err = svc.repo.UpdateStudent(ctx, std)
	return std.Fee, err
}

func (svc *Service) FeeStatus(ctx context.Context, id primitive.ObjectID) (FeeStatus, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return FeeStatus{}, err
	}
	return std.Fee.Status(), nil
}
