package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/shule/apps/api/echo"
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
	"github.com/trezcool/shule/storage/mongodb"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.LoadConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := mongodb.Open(conf)
	if err != nil {
		std.Fatalf("setting up database: %v", err)
	}
	defer func() {
		if err := mongodb.Close(db); err != nil {
			logger.Error("closing database", err)
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	teacherRepo := mongodb.NewTeacherRepository(db)
	studentRepo := mongodb.NewStudentRepository(db)
	classRepo := mongodb.NewClassRepository(db)
	subjectRepo := mongodb.NewSubjectRepository(db)
	examRepo := mongodb.NewExamRepository(db)
	attendanceRepo := mongodb.NewAttendanceRepository(db)

	// set up services
	var media core.MediaService
	if conf.Debug {
		media = mediasvc.NewConsoleService()
	} else {
		media = mediasvc.NewCloudinaryService(conf)
	}

	usrSvc := user.NewService(userRepo, teacherRepo, media)
	tchSvc := teacher.NewService(teacherRepo, media, logger)
	stdSvc := student.NewService(studentRepo)
	clsSvc := class.NewService(classRepo, studentRepo)
	subSvc := subject.NewService(subjectRepo, teacherRepo)
	exmSvc := exam.NewService(examRepo, studentRepo, classRepo, subjectRepo)
	attSvc := attendance.NewService(attendanceRepo, classRepo, studentRepo)

	// =========================================================================
	// Initialize App

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	logger.Info(fmt.Sprintf("%s initializing : env %q", conf.AppName, conf.Env))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:    conf.Address(),
			Conf:       conf,
			Logger:     logger,
			Validate:   validate,
			Translator: translator,

			UserSvc:       usrSvc,
			TeacherSvc:    tchSvc,
			StudentSvc:    stdSvc,
			ClassSvc:      clsSvc,
			SubjectSvc:    subSvc,
			ExamSvc:       exmSvc,
			AttendanceSvc: attSvc,
		},
	)
	server.Start()
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
