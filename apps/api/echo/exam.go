package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/exam"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
)

type examApi struct {
	svc        *exam.Service
	studentSvc *student.Service
	classSvc   *class.Service
	subjectSvc *subject.Service
	validate   *validator.Validate
}

func registerExamAPI(
	g *echo.Group,
	authn *authenticator,
	svc *exam.Service,
	studentSvc *student.Service,
	classSvc *class.Service,
	subjectSvc *subject.Service,
	validate *validator.Validate,
) {
	api := examApi{
		svc:        svc,
		studentSvc: studentSvc,
		classSvc:   classSvc,
		subjectSvc: subjectSvc,
		validate:   validate,
	}

	eg := g.Group("/exams", authn.middleware()...)
	eg.POST("/create", api.create)
	eg.GET("/student/:studentId", api.queryByStudent)
	eg.GET("/class/:classId", api.queryByClass)
	eg.PATCH("/update/:examId", api.update)
	eg.DELETE("/delete/:examId", api.destroy)
}

// examResponse is an Exam with its references populated.
type examResponse struct {
	exam.Exam
	Student *student.Student `json:"student,omitempty"`
	Class   *class.Class     `json:"class,omitempty"`
	Subject *subject.Subject `json:"subject,omitempty"`
}

func (api *examApi) populate(ctx echo.Context, exm exam.Exam) examResponse {
	resp := examResponse{Exam: exm}
	if std, err := api.studentSvc.GetByID(ctx.Request().Context(), exm.StudentID); err == nil {
		resp.Student = &std
	}
	if cls, err := api.classSvc.GetByID(ctx.Request().Context(), exm.ClassID); err == nil {
		resp.Class = &cls
	}
	if sub, err := api.subjectSvc.GetByID(ctx.Request().Context(), exm.SubjectID); err == nil {
		resp.Subject = &sub
	}
	return resp
}

func (api *examApi) populateAll(ctx echo.Context, exams []exam.Exam) []examResponse {
	resp := make([]examResponse, 0, len(exams))
	for _, exm := range exams {
		resp = append(resp, api.populate(ctx, exm))
	}
	return resp
}

// Handlers

func (api *examApi) create(ctx echo.Context) error {
	var data exam.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// the grading teacher is the authenticated actor
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	exm, err := api.svc.Create(ctx.Request().Context(), usr.TeacherID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.populate(ctx, exm))
}

func (api *examApi) queryByStudent(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}
	exams, err := api.svc.QueryByStudent(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.populateAll(ctx, exams))
}

func (api *examApi) queryByClass(ctx echo.Context) error {
	id, err := pathID(ctx, "classId")
	if err != nil {
		return err
	}
	exams, err := api.svc.QueryByClass(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.populateAll(ctx, exams))
}

func (api *examApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "examId")
	if err != nil {
		return err
	}

	var data exam.UpdateExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExam")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	exm, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.populate(ctx, exm))
}

func (api *examApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "examId")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
