package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/exam"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/core/user"
	logsvc "github.com/trezcool/shule/services/logger"
	mediasvc "github.com/trezcool/shule/services/media"
	"github.com/trezcool/shule/storage/inmem"
)

type fixture struct {
	app   Server
	authn *authenticator
	conf  *core.Config

	usrSvc *user.Service
	tchSvc *teacher.Service
	stdSvc *student.Service
	clsSvc *class.Service
	subSvc *subject.Service
	exmSvc *exam.Service
	attSvc *attendance.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()

	conf := &core.Config{
		Debug:    true,
		TestMode: true,
		Env:      "TEST",
		AppName:  "Shule",
	}
	conf.SecretKey = "test-secret"
	conf.Server.JWTExpirationDelta = time.Hour

	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("inmem.Open() failed, %v", err)
	}
	usrRepo := inmem.NewUserRepository(db)
	tchRepo := inmem.NewTeacherRepository(db)
	stdRepo := inmem.NewStudentRepository(db)
	clsRepo := inmem.NewClassRepository(db)
	subRepo := inmem.NewSubjectRepository(db)
	exmRepo := inmem.NewExamRepository(db)
	attRepo := inmem.NewAttendanceRepository(db)

	media := mediasvc.NewConsoleServiceMock()
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	logger.Enable(false)

	f := &fixture{
		conf:   conf,
		usrSvc: user.NewService(usrRepo, tchRepo, media),
		tchSvc: teacher.NewService(tchRepo, media, logger),
		stdSvc: student.NewService(stdRepo),
		clsSvc: class.NewService(clsRepo, stdRepo),
		subSvc: subject.NewService(subRepo, tchRepo),
		exmSvc: exam.NewService(exmRepo, stdRepo, clsRepo, subRepo),
		attSvc: attendance.NewService(attRepo, clsRepo, stdRepo),
	}
	f.authn = newAuthenticator(conf, f.usrSvc)

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)

	f.app = NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		UserSvc:        f.usrSvc,
		TeacherSvc:     f.tchSvc,
		StudentSvc:     f.stdSvc,
		ClassSvc:       f.clsSvc,
		SubjectSvc:     f.subSvc,
		ExamSvc:        f.exmSvc,
		AttendanceSvc:  f.attSvc,
	})
	return f
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func (f *fixture) do(method, path string, body []byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	f.app.ServeHTTP(rec, req)
	return rec
}

// sessionCookie issues a session token for the user, the way the sign-in
// handler does.
func (f *fixture) sessionCookie(t *testing.T, usr user.User) *http.Cookie {
	t.Helper()

	token, err := f.authn.generateToken(f.authn.getUserClaims(usr))
	if err != nil {
		t.Fatalf("generateToken() failed, %v", err)
	}
	return &http.Cookie{Name: authCookieName, Value: token}
}

func (f *fixture) signUpAdmin(t *testing.T) user.User {
	t.Helper()

	usr, err := f.usrSvc.SignUp(context.Background(), user.NewUser{
		Username: "principal",
		Email:    "principal@test.cd",
		Password: "s3cret",
		Role:     user.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("SignUp() failed, %v", err)
	}
	return usr
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("json.Marshal() failed, %v", err)
	}
	return data
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response failed, %v: %s", err, rec.Body.String())
	}
	return resp
}

// responseCookie returns the named cookie set by the response, if any.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
