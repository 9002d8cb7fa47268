package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

const (
	authCookieName  = "accessToken"
	tokenContextKey = "userToken"
	userContextKey  = "user"
)

// Claims represents the authorization claims transmitted via the session cookie.
type Claims struct {
	jwt.StandardClaims
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	IsTeacher bool   `json:"is_teacher,omitempty"` // -> TEACHER PORTAL
	IsAdmin   bool   `json:"is_admin,omitempty"`   // -> ADMIN PORTAL
}

// authenticator issues and verifies the cookie-carried session token.
type authenticator struct {
	conf   *core.Config
	svc    *user.Service
	jwtCfg middleware.JWTConfig
}

func newAuthenticator(conf *core.Config, svc *user.Service) *authenticator {
	return &authenticator{
		conf: conf,
		svc:  svc,
		jwtCfg: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    tokenContextKey,
			TokenLookup:   "cookie:" + authCookieName,
			Claims:        new(Claims),
		},
	}
}

// middleware verifies the token cookie then checks that the referenced user
// still exists; either failure rejects the request with a 401.
func (a *authenticator) middleware() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{middleware.JWTWithConfig(a.jwtCfg), a.loadUser}
}

func (a *authenticator) loadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		id, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			return errUnauthorized
		}
		usr, err := a.svc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			// the account may have been deleted since the token was issued
			return errUnauthorized
		}
		ctx.Set(userContextKey, usr)
		return next(ctx)
	}
}

func (a *authenticator) getUserClaims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.conf.AppName,
			Subject:   usr.ID.Hex(),
			ExpiresAt: now.Add(a.conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username:  usr.Username,
		Email:     usr.Email,
		Role:      usr.Role,
		IsTeacher: usr.IsTeacher(),
		IsAdmin:   usr.IsAdmin(),
	}
}

// generateToken generates a signed JWT token string representing the user Claims.
func (a *authenticator) generateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.jwtCfg.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(a.jwtCfg.SigningKey.([]byte))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// openSession issues a token for the user and sets it as the session cookie.
func (a *authenticator) openSession(ctx echo.Context, usr user.User) error {
	token, err := a.generateToken(a.getUserClaims(usr))
	if err != nil {
		return err
	}
	ctx.SetCookie(&http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(a.conf.Server.JWTExpirationDelta),
		HttpOnly: true,
		Secure:   !a.conf.Debug,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// closeSession clears the session cookie unconditionally.
func (a *authenticator) closeSession(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !a.conf.Debug,
		SameSite: http.SameSiteStrictMode,
	})
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextUser(ctx echo.Context) (user.User, error) {
	if usr, ok := ctx.Get(userContextKey).(user.User); ok {
		return usr, nil
	}
	return user.User{}, errUnauthorized
}
