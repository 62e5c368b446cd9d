package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/catalog"
	"github.com/trezcool/edudash/core/dashboard"
	"github.com/trezcool/edudash/core/demographics"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/exam"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/maintenance"
	"github.com/trezcool/edudash/core/performance"
	"github.com/trezcool/edudash/core/region"
	"github.com/trezcool/edudash/core/school"
	"github.com/trezcool/edudash/core/staff"
	"github.com/trezcool/edudash/core/user"
)

type (
	// Services groups every domain service the API serves.
	Services struct {
		User         *user.Service
		School       *school.Service
		Staff        *staff.Service
		Region       *region.Service
		Catalog      *catalog.Service
		Enrollment   *enrollment.Service
		Exam         *exam.Service
		Grading      *exam.GradingService
		Facility     *facility.Service
		Maintenance  *maintenance.Service
		Performance  *performance.Service
		Demographics *demographics.Service
		Dashboard    *dashboard.Service
	}

	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Services   Services
	}

	Server struct {
		app      *echo.Echo
		conf     *core.Config
		auth     *authenticator
		shutdown chan os.Signal
		errors   chan error
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		app:      echo.New(),
		conf:     deps.Conf,
		auth:     newAuthenticator(deps.Conf),
		shutdown: make(chan os.Signal, 1),
		errors:   make(chan error, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup(deps)
	return s
}

func (s *Server) setup(deps ServerDeps) {
	conf := deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(deps.Logger, deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(s.auth.jwtConfig())

	svc := deps.Services
	registerAuthAPI(v1, jwt, s.auth, svc.User, deps.Validate)
	registerUserAPI(v1, jwt, svc.User, deps.Validate)
	registerSchoolAPI(v1, jwt, svc.School, deps.Validate)
	registerStaffAPI(v1, jwt, svc.Staff, deps.Validate)
	registerRegionAPI(v1, jwt, svc.Region, deps.Validate)
	registerCatalogAPI(v1, jwt, svc.Catalog, deps.Validate)
	registerEnrollmentAPI(v1, jwt, svc.Enrollment, deps.Validate)
	registerExamAPI(v1, jwt, svc.Exam, svc.Grading, deps.Validate)
	registerFacilityAPI(v1, jwt, svc.Facility, svc.Maintenance)
	registerPerformanceAPI(v1, jwt, svc.Performance)
	registerDemographicsAPI(v1, jwt, svc.Demographics)
	registerDashboardAPI(v1, jwt, svc.Dashboard)
	registerMapAPI(v1, jwt, svc.School, svc.Facility, svc.Performance, svc.Enrollment)
	registerAnalyticsAPI(v1, jwt)
	registerExportAPI(v1, jwt, svc.Facility, svc.Performance, svc.Demographics)
	registerFilterAPI(v1, jwt)
}

// Start blocks serving HTTP; a failure other than a clean shutdown is sent on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.AppName+" API!")
}
