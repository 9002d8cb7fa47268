package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
)

type studentApi struct {
	svc      *student.Service
	classSvc *class.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *student.Service, classSvc *class.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, classSvc: classSvc, validate: validate}

	sg := g.Group("/students")
	sg.POST("/create", api.create)
	sg.GET("/getAll", api.query)
	sg.GET("/getId/:studentId", api.retrieve)
	sg.PUT("/update/:studentId", api.update)
	sg.DELETE("/delete/:studentId", api.destroy)

	// same relationship-maintenance service as the class-side route
	sg.POST("/:studentId/assign/:classId", api.assignClass)

	// fee sub-resource
	sg.POST("/fee/:studentId", api.trackFeePayment)
	sg.GET("/fee/:studentId", api.feeStatus)
	sg.PUT("/fee/:studentId", api.updateFeeInfo)
	sg.DELETE("/fee/:studentId", api.deleteFeeInfo)
}

// studentResponse is a Student with its class reference populated.
type studentResponse struct {
	student.Student
	Class *class.Class `json:"class,omitempty"`
}

func (api *studentApi) populate(ctx echo.Context, std student.Student) studentResponse {
	resp := studentResponse{Student: std}
	if !std.ClassID.IsZero() {
		// a dangling reference (deleted class) leaves the field unpopulated
		if cls, err := api.classSvc.GetByID(ctx.Request().Context(), std.ClassID); err == nil {
			resp.Class = &cls
		}
	}
	return resp
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	std, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.populate(ctx, std))
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]studentResponse, 0, len(students))
	for _, std := range students {
		resp = append(resp, api.populate(ctx, std))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}
	std, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.populate(ctx, std))
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	std, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.populate(ctx, std))
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) assignClass(ctx echo.Context) error {
	studentID, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}
	classID, err := pathID(ctx, "classId")
	if err != nil {
		return err
	}
	if err := api.classSvc.AssignStudent(ctx.Request().Context(), classID, studentID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, successResponse{Success: "student assigned to class"})
}

// fee sub-resource

func (api *studentApi) trackFeePayment(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}

	var data student.FeePayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeePayment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	fee, err := api.svc.TrackFeePayment(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fee)
}

func (api *studentApi) feeStatus(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}
	status, err := api.svc.FeeStatus(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, status)
}

func (api *studentApi) updateFeeInfo(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}

	var data student.FeePayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeePayment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	fee, err := api.svc.UpdateFeeInfo(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fee)
}

func (api *studentApi) deleteFeeInfo(ctx echo.Context) error {
	id, err := pathID(ctx, "studentId")
	if err != nil {
		return err
	}
	fee, err := api.svc.DeleteFeeInfo(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fee)
}
