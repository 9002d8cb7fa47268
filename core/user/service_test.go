package user_test

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/core/user"
	logsvc "github.com/trezcool/shule/services/logger"
	mediasvc "github.com/trezcool/shule/services/media"
	"github.com/trezcool/shule/storage/inmem"
)

type fixture struct {
	svc     *user.Service
	tchSvc  *teacher.Service
	usrRepo user.Repository
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("inmem.Open() failed, %v", err)
	}
	usrRepo := inmem.NewUserRepository(db)
	tchRepo := inmem.NewTeacherRepository(db)
	media := mediasvc.NewConsoleServiceMock()

	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	logger.Enable(false)

	return &fixture{
		svc:     user.NewService(usrRepo, tchRepo, media),
		tchSvc:  teacher.NewService(tchRepo, media, logger),
		usrRepo: usrRepo,
	}
}

func TestService_SignUp_admin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	usr, err := f.svc.SignUp(ctx, user.NewUser{
		Username: "principal",
		Email:    "principal@test.cd",
		Password: "s3cret",
		Role:     user.RoleAdmin,
	})
	assert.NoError(t, err)
	assert.False(t, usr.ID.IsZero())
	assert.True(t, usr.IsAdmin())
	assert.NoError(t, usr.CheckPassword("s3cret"))
	assert.True(t, usr.TeacherID.IsZero())
}

func TestService_SignUp_duplicateEmail(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	nu := user.NewUser{Username: "principal", Email: "principal@test.cd", Password: "s3cret", Role: user.RoleAdmin}
	_, err := f.svc.SignUp(ctx, nu)
	assert.NoError(t, err)

	nu.Username = "other"
	_, err = f.svc.SignUp(ctx, nu)
	assert.Equal(t, user.ErrEmailExists, err)
}

func TestService_SignUp_teacherRequiresProfile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, user.NewUser{
		Username: "mwalimu",
		Email:    "mwalimu@test.cd",
		Password: "s3cret",
		Role:     user.RoleTeacher,
	})
	assert.Equal(t, teacher.ErrNotFound, err)

	// nothing was persisted
	_, err = f.usrRepo.GetUserByEmail(ctx, "mwalimu@test.cd")
	assert.Equal(t, user.ErrNotFound, err)
}

func TestService_SignUp_teacherLinksProfile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tch, err := f.tchSvc.Create(ctx, teacher.NewTeacher{
		Name:    "Mwalimu Kabila",
		Number:  "+243810000001",
		Email:   "mwalimu@test.cd",
		Subject: "Mathematics",
	})
	assert.NoError(t, err)

	usr, err := f.svc.SignUp(ctx, user.NewUser{
		Username: "mwalimu",
		Email:    "mwalimu@test.cd",
		Password: "s3cret",
		Role:     user.RoleTeacher,
	})
	assert.NoError(t, err)
	assert.Equal(t, tch.ID, usr.TeacherID)

	// the link is written back on the teacher record too
	tch, err = f.tchSvc.GetByID(ctx, tch.ID)
	assert.NoError(t, err)
	assert.Equal(t, usr.ID, tch.UserID)
}

func TestService_Authenticate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.SignUp(ctx, user.NewUser{
		Username: "principal",
		Email:    "principal@test.cd",
		Password: "s3cret",
		Role:     user.RoleAdmin,
	})
	assert.NoError(t, err)

	usr, err := f.svc.Authenticate(ctx, user.Credentials{Email: "principal@test.cd", Password: "s3cret"})
	assert.NoError(t, err)
	assert.Equal(t, "principal", usr.Username)

	// unknown email and wrong password fail alike
	_, err = f.svc.Authenticate(ctx, user.Credentials{Email: "principal@test.cd", Password: "wrong"})
	assert.Equal(t, user.ErrInvalidCredentials, err)

	_, err = f.svc.Authenticate(ctx, user.Credentials{Email: "nobody@test.cd", Password: "s3cret"})
	assert.Equal(t, user.ErrInvalidCredentials, err)
}

func TestService_ChangePassword(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	usr, err := f.svc.SignUp(ctx, user.NewUser{
		Username: "principal",
		Email:    "principal@test.cd",
		Password: "s3cret",
		Role:     user.RoleAdmin,
	})
	assert.NoError(t, err)

	err = f.svc.ChangePassword(ctx, usr.ID, user.ChangePassword{OldPassword: "wrong", NewPassword: "n3ws3cret"})
	assert.IsType(t, &core.CredentialsError{}, err)

	err = f.svc.ChangePassword(ctx, usr.ID, user.ChangePassword{OldPassword: "s3cret", NewPassword: "n3ws3cret"})
	assert.NoError(t, err)

	_, err = f.svc.Authenticate(ctx, user.Credentials{Email: "principal@test.cd", Password: "n3ws3cret"})
	assert.NoError(t, err)
}
