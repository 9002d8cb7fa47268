package teacher

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound    = core.NewNotFoundError("teacher not found")
	ErrEmailExists = core.NewConflictError("a teacher with this email already exists")
)

type (
	Repository interface {
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		// QueryAllTeachers returns all teachers, newest first.
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacherByID(ctx context.Context, id primitive.ObjectID) (Teacher, error)
		GetTeacherByEmail(ctx context.Context, email string) (Teacher, error)
		UpdateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		DeleteTeacher(ctx context.Context, id primitive.ObjectID) error
		// SetTeacherUser links a teacher to the user account sharing its email.
		SetTeacherUser(ctx context.Context, id, userID primitive.ObjectID) error
	}

	Service struct {
		repo   Repository
		media  core.MediaService
		logger core.Logger
	}
)

func NewService(repo Repository, media core.MediaService, logger core.Logger) *Service {
	return &Service{repo: repo, media: media, logger: logger}
}

func (svc *Service) checkUniqueness(ctx context.Context, email string, excluded ...Teacher) error {
	tch, err := svc.repo.GetTeacherByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}
	for _, excl := range excluded {
		if excl.ID == tch.ID {
			return nil
		}
	}
	return ErrEmailExists
}

func (svc *Service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	if err := svc.checkUniqueness(ctx, nt.Email); err != nil {
		return Teacher{}, err
	}

	now := time.Now().UTC()
	tch := Teacher{
		Name:        nt.Name,
		Number:      nt.Number,
		Email:       nt.Email,
		Subject:     nt.Subject,
		Certificate: nt.Certificate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if nt.ProfilePicture != "" {
		asset, err := svc.media.Upload(nt.ProfilePicture)
		if err != nil {
			return Teacher{}, err
		}
		tch.ProfilePicture = asset.URL
		tch.ProfileAssetID = asset.PublicID
	}
	return svc.repo.CreateTeacher(ctx, tch)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Teacher, error) {
	return svc.repo.GetTeacherByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) Update(ctx context.Context, id primitive.ObjectID, ut UpdateTeacher) (Teacher, error) {
	tch, err := svc.repo.GetTeacherByID(ctx, id)
	if err != nil {
		return Teacher{}, err
	}

	if ut.Name != "" {
		tch.Name = ut.Name
	}
	if ut.Number != "" {
		tch.Number = ut.Number
	}
	if ut.Email != "" && ut.Email != tch.Email {
		if err := svc.checkUniqueness(ctx, ut.Email, tch); err != nil {
			return Teacher{}, err
		}
		tch.Email = ut.Email
	}
	if ut.Subject != "" {
		tch.Subject = ut.Subject
	}
	if ut.Certificate != "" {
		tch.Certificate = ut.Certificate
	}
	if ut.ProfilePicture != "" {
		asset, err := svc.media.Upload(ut.ProfilePicture)
		if err != nil {
			return Teacher{}, err
		}
		if tch.ProfileAssetID != "" {
			svc.destroyAsset(tch.ProfileAssetID)
		}
		tch.ProfilePicture = asset.URL
		tch.ProfileAssetID = asset.PublicID
	}
	tch.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTeacher(ctx, tch)
}

// Delete removes the teacher record; its stored profile asset is removed
// best-effort, failures are logged and do not undo the deletion.
func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	tch, err := svc.repo.GetTeacherByID(ctx, id)
	if err != nil {
		return err
	}
	if err := svc.repo.DeleteTeacher(ctx, id); err != nil {
		return err
	}
	if tch.ProfileAssetID != "" {
		svc.destroyAsset(tch.ProfileAssetID)
	}
	return nil
}

func (svc *Service) destroyAsset(publicID string) {
	if err := svc.media.Destroy(publicID); err != nil {
		svc.logger.Error("destroying profile asset", err, map[string]interface{}{"public_id": publicID})
	}
}

func (svc *Service) LinkUser(ctx context.Context, id, userID primitive.ObjectID) error {
	return svc.repo.SetTeacherUser(ctx, id, userID)
}
