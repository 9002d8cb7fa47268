package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
)

type classApi struct {
	svc        *class.Service
	studentSvc *student.Service
	validate   *validator.Validate
}

func registerClassAPI(g *echo.Group, svc *class.Service, studentSvc *student.Service, validate *validator.Validate) {
	api := classApi{svc: svc, studentSvc: studentSvc, validate: validate}

	cg := g.Group("/classes")
	cg.POST("/create", api.create)
	cg.GET("/getAll", api.query)
	cg.GET("/getId/:classId", api.retrieve)
	cg.PUT("/update/:classId", api.update)
	cg.DELETE("/delete/:classId", api.destroy)
	cg.POST("/:studentId/:classId", api.assignStudent)
}

// classResponse is a Class with its member list populated.
type classResponse struct {
	class.Class
	Students []student.Student `json:"students"`
}

func (api *classApi) populate(ctx echo.Context, cls class.Class) classResponse {
	resp := classResponse{Class: cls, Students: []student.Student{}}
	for _, id := range cls.Students {
		// deleted students are skipped rather than failing the read
		if std, err := api.studentSvc.GetByID(ctx.Request().Context(), id); err == nil {
			resp.Students = append(resp.Students, std)
		}
	}
	return resp
}

// Handlers

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cls, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.populate(ctx, cls))
}

func (api *classApi) query(ctx echo.Context) error {
	classes, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]classResponse, 0, len(classes))
	for _, cls := range classes {
		resp = append(resp, api.populate(ctx, cls))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "classId")
	if err != nil {
		return err
	}
	cls, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.populate(ctx, cls))
}

func (api *classApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "classId")
	if err != nil {
		return err
	}

	var data class.UpdateClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cls, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.populate(ctx, cls))
}

func (api *classApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "classId")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *classApi) assignStudent(ctx echo.Context) error {
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}
	classID, err := pathID(ctx, "classId")
	if err != nil {
		return err
	}
	if err := api.svc.AssignStudent(ctx.Request().Context(), classID, studentID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, successResponse{Success: "student assigned to class"})
}
