package httpserver

import (
	"net/http"

	"movieclub/errs"
	"movieclub/pkg/jwt"
	"movieclub/user"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "user"

var (
	errMissingToken  = errs.Errorf(errs.EUNAUTHORIZED, "Missing or invalid access token")
	errAdminRequired = errs.Errorf(errs.EFORBIDDEN, "Admin role required")
)

func (s *Server) RegisterAuthRoutes() {
	s.Router.POST("/login", s.handleLogin)
}

// adminMiddlewares guards mutating routes. Nothing is guarded when no
// JWT secret is configured.
func (s *Server) adminMiddlewares() []echo.MiddlewareFunc {
	if s.Config.Auth.JWTSecret == "" {
		return nil
	}
	tokens := jwt.NewJWTProvider(s.Config.Auth.JWTSecret, s.Config.TokenTTL())
	return []echo.MiddlewareFunc{
		echojwt.WithConfig(echojwt.Config{
			ContextKey: claimsContextKey,
			ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
				return tokens.ParseAccessToken(auth)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return errMissingToken
			},
		}),
		requireRole(user.RoleAdmin),
	}
}

func requireRole(role user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*jwt.Claims)
			if !ok {
				return errMissingToken
			}
			if claims.Role != role {
				return errAdminRequired
			}
			return next(c)
		}
	}
}

// handleLogin godoc
// @Summary Login
// @Description Check a login id and password and return the user's role and name
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /login [post]
func (s *Server) handleLogin(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	identity, err := s.AuthService.Login(c.Request().Context(), req.LoginID, req.Password)
	if err != nil {
		return err
	}

	result := map[string]string{
		"role": string(identity.Role),
		"name": identity.Name,
	}
	if identity.AccessToken != "" {
		result["accessToken"] = identity.AccessToken
	}
	return writeMessage(c, http.StatusOK, "Login successful", result)
}
