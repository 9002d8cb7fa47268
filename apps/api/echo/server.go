package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/exam"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		UserSvc       *user.Service
		TeacherSvc    *teacher.Service
		StudentSvc    *student.Service
		ClassSvc      *class.Service
		SubjectSvc    *subject.Service
		ExamSvc       *exam.Service
		AttendanceSvc *attendance.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	// the dashboard sends the session cookie cross-origin
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{conf.Server.AllowedOrigin},
		AllowCredentials: true,
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, conf, s.opts.Translator)
	s.app.Debug = conf.Debug

	api := s.app.Group("/api")
	api.GET("/health", health)

	authn := newAuthenticator(conf, s.opts.UserSvc)

	registerAuthAPI(api, authn, s.opts.UserSvc, s.opts.Validate)
	registerTeacherAPI(api, s.opts.TeacherSvc, s.opts.Validate)
	registerStudentAPI(api, s.opts.StudentSvc, s.opts.ClassSvc, s.opts.Validate)
	registerClassAPI(api, s.opts.ClassSvc, s.opts.StudentSvc, s.opts.Validate)
	registerSubjectAPI(api, authn, s.opts.SubjectSvc, s.opts.TeacherSvc, s.opts.Validate)
	registerExamAPI(api, authn, s.opts.ExamSvc, s.opts.StudentSvc, s.opts.ClassSvc, s.opts.SubjectSvc, s.opts.Validate)
	registerAttendanceAPI(api, s.opts.AttendanceSvc, s.opts.StudentSvc, s.opts.Validate)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
