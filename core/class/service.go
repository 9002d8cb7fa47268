package class

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
)

var (
	// errors
	ErrNotFound        = core.NewNotFoundError("class not found")
	ErrNameExists      = core.NewConflictError("a class with this name already exists")
	ErrAlreadyAssigned = core.NewConflictError("student already assigned to this class")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		// QueryAllClasses returns all classes, newest first.
		QueryAllClasses(ctx context.Context) ([]Class, error)
		GetClassByID(ctx context.Context, id primitive.ObjectID) (Class, error)
		GetClassByName(ctx context.Context, name string) (Class, error)
		// SearchClassesByName does a case-insensitive substring match on Class.Name.
		SearchClassesByName(ctx context.Context, name string) ([]Class, error)
		UpdateClass(ctx context.Context, cls Class) (Class, error)
		DeleteClass(ctx context.Context, id primitive.ObjectID) error
		AddClassStudent(ctx context.Context, id, studentID primitive.ObjectID) error
		RemoveClassStudent(ctx context.Context, id, studentID primitive.ObjectID) error
	}

	Service struct {
		repo     Repository
		students student.Repository
	}
)

func NewService(repo Repository, students student.Repository) *Service {
	return &Service{repo: repo, students: students}
}

func (svc *Service) checkUniqueness(ctx context.Context, name string, excluded ...Class) error {
	cls, err := svc.repo.GetClassByName(ctx, name)
	if err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}
	for _, excl := range excluded {
		if excl.ID == cls.ID {
			return nil
		}
	}
	return ErrNameExists
}

func (svc *Service) Create(ctx context.Context, nc NewClass) (Class, error) {
	if err := svc.checkUniqueness(ctx, nc.Name); err != nil {
		return Class{}, err
	}

	now := time.Now().UTC()
	cls := Class{
		Name:      nc.Name,
		Level:     nc.Level,
		Students:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryAllClasses(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id primitive.ObjectID, uc UpdateClass) (Class, error) {
	cls, err := svc.repo.GetClassByID(ctx, id)
	if err != nil {
		return Class{}, err
	}

	if uc.Name != "" && uc.Name != cls.Name {
		if err := svc.checkUniqueness(ctx, uc.Name, cls); err != nil {
			return Class{}, err
		}
		cls.Name = uc.Name
	}
	if uc.Level != "" {
		cls.Level = uc.Level
	}
	cls.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateClass(ctx, cls)
}

// Delete removes the class record only; assigned students keep their class
// reference and must be reassigned explicitly.
func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := svc.repo.GetClassByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteClass(ctx, id)
}

// AssignStudent adds the student to the class member list and points the
// student's class reference at the class. Both route shapes (class-side and
// student-side) go through here. The second write is compensated on failure so
// the two records never end up one-sided.
func (svc *Service) AssignStudent(ctx context.Context, id, studentID primitive.ObjectID) error {
	cls, err := svc.repo.GetClassByID(ctx, id)
	if err != nil {
		return err
	}
	std, err := svc.students.GetStudentByID(ctx, studentID)
	if err != nil {
		return err
	}
	if cls.HasStudent(std.ID) {
		return ErrAlreadyAssigned
	}

	if err := svc.repo.AddClassStudent(ctx, cls.ID, std.ID); err != nil {
		return err
	}
	if err := svc.students.SetStudentClass(ctx, std.ID, cls.ID); err != nil {
		// roll back the member-list write
		if rerr := svc.repo.RemoveClassStudent(ctx, cls.ID, std.ID); rerr != nil {
			return rerr
		}
		return err
	}
	return nil
}
