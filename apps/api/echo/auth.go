package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/user"
)

const (
	tokenContextKey = "userToken"
	tokenAudience   = "EduDash"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type authenticator struct {
	issuer     string
	signingKey []byte
	expiration time.Duration
}

func newAuthenticator(conf *core.Config) *authenticator {
	return &authenticator{
		issuer:     conf.AppName,
		signingKey: []byte(conf.SecretKey),
		expiration: conf.Server.JWTExpirationDelta,
	}
}

func (a *authenticator) jwtConfig() middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    a.signingKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	}
}

func (a *authenticator) claims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.issuer,
			Subject:   usr.ID,
			Audience:  tokenAudience,
			ExpiresAt: now.Add(a.expiration).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: usr.Email,
		Role:  usr.Role,
	}
}

func (a *authenticator) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// GetUserClaims builds the claims of a signed-in user.
func GetUserClaims(conf *core.Config, usr user.User) *Claims {
	return newAuthenticator(conf).claims(usr)
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	return newAuthenticator(conf).sign(claims)
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

type authApi struct {
	auth     *authenticator
	svc      *user.Service
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, svc *user.Service, validate *validator.Validate) {
	api := authApi{auth: auth, svc: svc, validate: validate}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout, jwt)
	ag.GET("/me", api.me, jwt)
}

func (api *authApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.SignIn(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "signing in")
	}

	token, err := api.auth.sign(api.auth.claims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return respond(ctx, http.StatusOK, LoginResponse{User: usr, Token: token})
}

// logout is a no-op for stateless tokens; clients drop theirs.
func (api *authApi) logout(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, SuccessResponse{Success: "signed out"})
}

func (api *authApi) me(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, user.User{ID: claims.Subject, Email: claims.Email, Role: claims.Role})
}

type (
	LoginResponse struct {
		User  user.User `json:"user"`
		Token string    `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)
