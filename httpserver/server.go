package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"movieclub/auth"
	"movieclub/dependant"
	"movieclub/errs"
	"movieclub/movie"
	"movieclub/pkg/config"
	"movieclub/pkg/logger"
	"movieclub/pkg/sentry"
	"movieclub/user"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultRateLimit = 20

// PosterStore keeps uploaded poster files.
type PosterStore interface {
	Save(r io.Reader, originalName string) (string, error)
	Remove(name string) error
}

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Config *config.Config

	Logger *zap.SugaredLogger

	MovieService movie.Service

	UserService user.Service

	DependantService dependant.Service

	AuthService auth.Service

	Posters PosterStore
}

func Default(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Empty
	}

	addr := ":5000"
	if cfg.Port > 0 {
		addr = fmt.Sprintf(":%d", cfg.Port)
	}

	s := Server{
		Router:       echo.New(),
		Addr:         addr,
		AllowOrigins: cfg.Origins(),
		Config:       cfg,
		Logger:       logger.NOOPLogger,
	}
	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleError

	s.RegisterGlobalMiddlewares()

	admin := s.adminMiddlewares()
	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	s.RegisterAuthRoutes()
	s.RegisterMovieRoutes(admin...)
	s.RegisterShowtimeRoutes(admin...)
	s.RegisterUserRoutes(admin...)
	s.RegisterDependantRoutes(admin...)
	s.RegisterPosterRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	limit := s.Config.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}

	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(limit))))
	s.Router.Use(s.requestLogger())

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.Logger.Infow("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
			)
			return nil
		},
	})
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// handleError maps application errors to appropriate HTTP status codes.
// 5xx errors are logged and reported; their detail never reaches the client.
func (s *Server) handleError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	} else {
		// Map application error codes to HTTP status codes
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
			message = errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			code = http.StatusNotFound
			message = errs.ErrorMessage(err)
		case errs.ECONFLICT:
			code = http.StatusConflict
			message = errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
			message = errs.ErrorMessage(err)
		case errs.EFORBIDDEN:
			code = http.StatusForbidden
			message = errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
			message = errs.ErrorMessage(err)
		}
	}

	if code >= http.StatusInternalServerError {
		s.Logger.Errorw("request failed",
			"error", err,
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		sentry.WithContext(c).Error(err)
	}

	// Don't write response if already committed
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = writeError(c, code, message, err)
	}
	if err != nil {
		s.Logger.Errorw("write error response", "error", err)
	}
}
