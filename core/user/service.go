package user

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/teacher"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("user not found")
	ErrEmailExists        = core.NewConflictError("a user with this email already exists")
	ErrInvalidCredentials = core.NewCredentialsError("invalid email or password")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id primitive.ObjectID) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo     Repository
		teachers teacher.Repository
		media    core.MediaService
	}
)

func NewService(repo Repository, teachers teacher.Repository, media core.MediaService) *Service {
	return &Service{repo: repo, teachers: teachers, media: media}
}

// SignUp creates a new account. A teacher account must match an existing
// teacher record by email; the matched record is linked back to the new user.
func (svc *Service) SignUp(ctx context.Context, nu NewUser) (User, error) {
	if _, err := svc.repo.GetUserByEmail(ctx, nu.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	var teacherProfile *teacher.Teacher
	if nu.Role == RoleTeacher {
		tch, err := svc.teachers.GetTeacherByEmail(ctx, nu.Email)
		if err != nil {
			return User{}, err // teacher.ErrNotFound: no profile matches this email
		}
		teacherProfile = &tch
	}

	now := time.Now().UTC()
	usr := User{
		Username:  nu.Username,
		Email:     nu.Email,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	if teacherProfile != nil {
		usr.TeacherID = teacherProfile.ID
	}
	if nu.ProfilePicture != "" {
		asset, err := svc.media.Upload(nu.ProfilePicture)
		if err != nil {
			return User{}, err
		}
		usr.ProfilePicture = asset.URL
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	if teacherProfile != nil {
		if err := svc.teachers.SetTeacherUser(ctx, teacherProfile.ID, usr.ID); err != nil {
			return User{}, err
		}
	}
	return usr, nil
}

// Authenticate checks the given credentials and returns the matching user.
// Unknown email and wrong password fail alike with ErrInvalidCredentials.
func (svc *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := usr.CheckPassword(creds.Password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) ChangePassword(ctx context.Context, id primitive.ObjectID, cp ChangePassword) error {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if err := usr.CheckPassword(cp.OldPassword); err != nil {
		return core.NewCredentialsError("old password is incorrect")
	}
	if err := usr.SetPassword(cp.NewPassword); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(ctx, usr)
	return err
}
