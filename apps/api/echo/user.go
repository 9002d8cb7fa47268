package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/user"
)

type authApi struct {
	authn    *authenticator
	svc      *user.Service
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, authn *authenticator, svc *user.Service, validate *validator.Validate) {
	api := authApi{
		authn:    authn,
		svc:      svc,
		validate: validate,
	}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/signup", api.signUp)
	ag.POST("/signin", api.signIn)
	ag.POST("/logout", api.logOut)

	// authed endpoints
	sg := ag.Group("", authn.middleware()...)
	sg.GET("/me", api.whoAmI)
	sg.POST("/change-password", api.changePassword)
}

type successResponse struct {
	Success string `json:"success"`
}

// Handlers

func (api *authApi) signUp(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.SignUp(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	if err := api.authn.openSession(ctx, usr); err != nil {
		return errors.Wrap(err, "opening session")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *authApi) signIn(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	if err := api.authn.openSession(ctx, usr); err != nil {
		return errors.Wrap(err, "opening session")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) whoAmI(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) logOut(ctx echo.Context) error {
	api.authn.closeSession(ctx)
	return ctx.JSON(http.StatusOK, successResponse{Success: "logged out"})
}

func (api *authApi) changePassword(ctx echo.Context) error {
	var data user.ChangePassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.ChangePassword(ctx.Request().Context(), usr.ID, data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, successResponse{Success: "password changed"})
}
