package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")

// error kinds: a stable machine-readable tag next to the human message.
const (
	kindValidation         = "validation"
	kindInvalidCredentials = "invalid_credentials"
	kindAmbiguousMatch     = "ambiguous_match"
	kindConflict           = "conflict"
	kindNotFound           = "not_found"
	kindUnauthenticated    = "unauthenticated"
	kindInternal           = "internal"
)

type errorResponse struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return kindUnauthenticated
	case http.StatusNotFound:
		return kindNotFound
	case http.StatusConflict:
		return kindConflict
	case http.StatusBadRequest:
		return kindValidation
	default:
		return kindInternal
	}
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that maps our
// error taxonomy to {kind, message} responses. Server faults are redacted
// outside debug mode and reported to the logger.
func newAppHTTPErrorHandler(logger core.Logger, conf *core.Config, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		resp := errorResponse{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				resp.Kind = kindUnauthenticated
				resp.Message = "user not authenticated"
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			resp.Kind = kindForStatus(code)
			if msg, ok := origErr.Message.(string); ok {
				resp.Message = msg
			} else {
				resp.Message = http.StatusText(code)
			}
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			resp.Kind = kindValidation
			resp.Message = "invalid input"
			resp.Fields = fldErrs
		case *core.ValidationError:
			code = http.StatusBadRequest
			resp.Kind = kindValidation
			resp.Message = origErr.Error()
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				resp.Fields = fldErrs
				if resp.Message == "" {
					resp.Message = "invalid input"
				}
			}
		case *core.CredentialsError:
			code = http.StatusBadRequest
			resp.Kind = kindInvalidCredentials
			resp.Message = origErr.Error()
		case *core.AmbiguousMatchError:
			code = http.StatusBadRequest
			resp.Kind = kindAmbiguousMatch
			resp.Message = origErr.Error()
		case *core.ConflictError:
			code = http.StatusConflict
			resp.Kind = kindConflict
			resp.Message = origErr.Error()
		case *core.NotFoundError:
			code = http.StatusNotFound
			resp.Kind = kindNotFound
			resp.Message = origErr.Error()
		default: // any other error is a server error
			code = http.StatusInternalServerError
			resp.Kind = kindInternal
			resp.Message = http.StatusText(code)
			if conf.Debug {
				resp.Message = err.Error()
			}

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.Username = claims.Username
				usr.Email = claims.Email
			}
			logger.Error(http.StatusText(code), err, usr)
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, resp)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
