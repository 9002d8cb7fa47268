package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/core/user"
)

func Test_authApi_signUp(t *testing.T) {
	f := setup(t)

	body := marshalObj(t, user.NewUser{
		Username: "principal",
		Email:    "principal@test.cd",
		Password: "s3cret",
		Role:     user.RoleAdmin,
	})
	rec := f.do(http.MethodPost, "/api/auth/signup", body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var usr user.User
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
	assert.Equal(t, "principal", usr.Username)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	// a session cookie is issued right away
	cookie := responseCookie(rec, authCookieName)
	if assert.NotNil(t, cookie) {
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
	}
}

func Test_authApi_signUp_validation(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodPost, "/api/auth/signup", marshalObj(t, user.NewUser{Username: "p"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeErr(t, rec)
	assert.Equal(t, kindValidation, resp.Kind)
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "password")
}

func Test_authApi_signUp_teacherRoleNeedsProfile(t *testing.T) {
	f := setup(t)

	body := marshalObj(t, user.NewUser{
		Username: "mwalimu",
		Email:    "mwalimu@test.cd",
		Password: "s3cret",
		Role:     user.RoleTeacher,
	})
	rec := f.do(http.MethodPost, "/api/auth/signup", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, kindNotFound, decodeErr(t, rec).Kind)

	// no account was persisted
	_, err := f.usrSvc.GetByEmail(context.Background(), "mwalimu@test.cd")
	assert.Equal(t, user.ErrNotFound, err)
}

func Test_authApi_signUp_teacherRoleLinksProfile(t *testing.T) {
	f := setup(t)

	tch, err := f.tchSvc.Create(context.Background(), teacher.NewTeacher{
		Name:    "Mwalimu Kabila",
		Number:  "+243810000001",
		Email:   "mwalimu@test.cd",
		Subject: "Mathematics",
	})
	assert.NoError(t, err)

	body := marshalObj(t, user.NewUser{
		Username: "mwalimu",
		Email:    "mwalimu@test.cd",
		Password: "s3cret",
		Role:     user.RoleTeacher,
	})
	rec := f.do(http.MethodPost, "/api/auth/signup", body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var usr user.User
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
	assert.Equal(t, tch.ID, usr.TeacherID)
}

func Test_authApi_signIn(t *testing.T) {
	f := setup(t)
	f.signUpAdmin(t)

	rec := f.do(http.MethodPost, "/api/auth/signin", marshalObj(t, user.Credentials{
		Email:    "principal@test.cd",
		Password: "s3cret",
	}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, responseCookie(rec, authCookieName))
}

func Test_authApi_signIn_wrongPassword(t *testing.T) {
	f := setup(t)
	f.signUpAdmin(t)

	rec := f.do(http.MethodPost, "/api/auth/signin", marshalObj(t, user.Credentials{
		Email:    "principal@test.cd",
		Password: "wrong",
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, kindInvalidCredentials, decodeErr(t, rec).Kind)

	// no cookie on failure
	assert.Nil(t, responseCookie(rec, authCookieName))
}

func Test_authApi_whoAmI(t *testing.T) {
	f := setup(t)
	usr := f.signUpAdmin(t)

	// no session
	rec := f.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, kindUnauthenticated, decodeErr(t, rec).Kind)

	// valid session
	rec = f.do(http.MethodGet, "/api/auth/me", nil, f.sessionCookie(t, usr))
	assert.Equal(t, http.StatusOK, rec.Code)

	var me user.User
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, usr.ID, me.ID)
}

func Test_authApi_whoAmI_badToken(t *testing.T) {
	f := setup(t)
	f.signUpAdmin(t)

	rec := f.do(http.MethodGet, "/api/auth/me", nil, &http.Cookie{Name: authCookieName, Value: "not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_authApi_logOut(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the cookie is cleared unconditionally
	cookie := responseCookie(rec, authCookieName)
	if assert.NotNil(t, cookie) {
		assert.Empty(t, cookie.Value)
		assert.True(t, cookie.MaxAge < 0)
	}
}

func Test_authApi_changePassword(t *testing.T) {
	f := setup(t)
	usr := f.signUpAdmin(t)
	cookie := f.sessionCookie(t, usr)

	rec := f.do(http.MethodPost, "/api/auth/change-password", marshalObj(t, user.ChangePassword{
		OldPassword: "wrong",
		NewPassword: "n3ws3cret",
	}), cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, kindInvalidCredentials, decodeErr(t, rec).Kind)

	rec = f.do(http.MethodPost, "/api/auth/change-password", marshalObj(t, user.ChangePassword{
		OldPassword: "s3cret",
		NewPassword: "n3ws3cret",
	}), cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := f.usrSvc.Authenticate(context.Background(), user.Credentials{
		Email:    "principal@test.cd",
		Password: "n3ws3cret",
	})
	assert.NoError(t, err)
}
