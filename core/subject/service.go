package subject

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/teacher"
)

var (
	// errors
	ErrNotFound   = core.NewNotFoundError("subject not found")
	ErrNameExists = core.NewConflictError("a subject with this name already exists")
)

type (
	Repository interface {
		CreateSubject(ctx context.Context, sub Subject) (Subject, error)
		// QueryAllSubjects returns all subjects, newest first.
		QueryAllSubjects(ctx context.Context) ([]Subject, error)
		GetSubjectByID(ctx context.Context, id primitive.ObjectID) (Subject, error)
		GetSubjectByName(ctx context.Context, name string) (Subject, error)
		UpdateSubject(ctx context.Context, sub Subject) (Subject, error)
		DeleteSubject(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo     Repository
		teachers teacher.Repository
	}
)

func NewService(repo Repository, teachers teacher.Repository) *Service {
	return &Service{repo: repo, teachers: teachers}
}

func (svc *Service) checkUniqueness(ctx context.Context, name string, excluded ...Subject) error {
	sub, err := svc.repo.GetSubjectByName(ctx, name)
	if err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}
	for _, excl := range excluded {
		if excl.ID == sub.ID {
			return nil
		}
	}
	return ErrNameExists
}

func (svc *Service) resolveTeacher(ctx context.Context, id string) (primitive.ObjectID, error) {
	teacherID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, core.NewValidationError(err, core.FieldError{Field: "teacher_id", Error: "invalid id"})
	}
	if _, err := svc.teachers.GetTeacherByID(ctx, teacherID); err != nil {
		return primitive.NilObjectID, err
	}
	return teacherID, nil
}

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	if err := svc.checkUniqueness(ctx, ns.Name); err != nil {
		return Subject{}, err
	}

	now := time.Now().UTC()
	sub := Subject{
		Name:      ns.Name,
		Code:      ns.Code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ns.TeacherID != "" {
		teacherID, err := svc.resolveTeacher(ctx, ns.TeacherID)
		if err != nil {
			return Subject{}, err
		}
		sub.TeacherID = teacherID
	}
	return svc.repo.CreateSubject(ctx, sub)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Subject, error) {
	return svc.repo.QueryAllSubjects(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Subject, error) {
	return svc.repo.GetSubjectByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id primitive.ObjectID, us UpdateSubject) (Subject, error) {
	sub, err := svc.repo.GetSubjectByID(ctx, id)
	if err != nil {
		return Subject{}, err
	}

	if us.Name != "" && us.Name != sub.Name {
		if err := svc.checkUniqueness(ctx, us.Name, sub); err != nil {
			return Subject{}, err
		}
		sub.Name = us.Name
	}
	if us.Code != "" {
		sub.Code = us.Code
	}
	if us.TeacherID != "" {
		teacherID, err := svc.resolveTeacher(ctx, us.TeacherID)
		if err != nil {
			return Subject{}, err
		}
		sub.TeacherID = teacherID
	}
	sub.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSubject(ctx, sub)
}

func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := svc.repo.GetSubjectByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteSubject(ctx, id)
}
