package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/student"
)

type attendanceApi struct {
	svc        *attendance.Service
	studentSvc *student.Service
	validate   *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service, studentSvc *student.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, studentSvc: studentSvc, validate: validate}

	ag := g.Group("/attendance")
	ag.POST("", api.create)
	ag.GET("/class/:classId", api.queryByClass)
}

type entryResponse struct {
	attendance.Entry
	Student *student.Student `json:"student,omitempty"`
}

// attendanceResponse is an Attendance session with its entries populated.
type attendanceResponse struct {
	attendance.Attendance
	Students []entryResponse `json:"students"`
}

func (api *attendanceApi) populate(ctx echo.Context, att attendance.Attendance) attendanceResponse {
	resp := attendanceResponse{Attendance: att, Students: make([]entryResponse, 0, len(att.Students))}
	for _, entry := range att.Students {
		populated := entryResponse{Entry: entry}
		if std, err := api.studentSvc.GetByID(ctx.Request().Context(), entry.StudentID); err == nil {
			populated.Student = &std
		}
		resp.Students = append(resp.Students, populated)
	}
	return resp
}

// Handlers

func (api *attendanceApi) create(ctx echo.Context) error {
	var data attendance.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	att, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.populate(ctx, att))
}

func (api *attendanceApi) queryByClass(ctx echo.Context) error {
	id, err := pathID(ctx, "classId")
	if err != nil {
		return err
	}
	sessions, err := api.svc.QueryByClass(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	resp := make([]attendanceResponse, 0, len(sessions))
	for _, att := range sessions {
		resp = append(resp, api.populate(ctx, att))
	}
	return ctx.JSON(http.StatusOK, resp)
}
