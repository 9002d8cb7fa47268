package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/subject"
	"github.com/trezcool/shule/core/teacher"
)

type subjectApi struct {
	svc        *subject.Service
	teacherSvc *teacher.Service
	validate   *validator.Validate
}

func registerSubjectAPI(g *echo.Group, authn *authenticator, svc *subject.Service, teacherSvc *teacher.Service, validate *validator.Validate) {
	api := subjectApi{svc: svc, teacherSvc: teacherSvc, validate: validate}

	sg := g.Group("/subjects", authn.middleware()...)
	sg.POST("/create", api.create)
	sg.GET("/getAll", api.query)
	sg.GET("/getById/:subjectId", api.retrieve)
	sg.PATCH("/update/:subjectId", api.update)
	sg.DELETE("/delete/:subjectId", api.destroy)
}

// subjectResponse is a Subject with its teacher reference populated.
type subjectResponse struct {
	subject.Subject
	Teacher *teacher.Teacher `json:"teacher,omitempty"`
}

func (api *subjectApi) populate(ctx echo.Context, sub subject.Subject) subjectResponse {
	resp := subjectResponse{Subject: sub}
	if !sub.TeacherID.IsZero() {
		if tch, err := api.teacherSvc.GetByID(ctx.Request().Context(), sub.TeacherID); err == nil {
			resp.Teacher = &tch
		}
	}
	return resp
}

// Handlers

func (api *subjectApi) create(ctx echo.Context) error {
	var data subject.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.populate(ctx, sub))
}

func (api *subjectApi) query(ctx echo.Context) error {
	subjects, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]subjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		resp = append(resp, api.populate(ctx, sub))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}
	sub, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.populate(ctx, sub))
}

func (api *subjectApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}

	var data subject.UpdateSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.populate(ctx, sub))
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "subjectId")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
