package echoapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
)

type (
	Options struct {
		AppName        string
		Address        string
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		// PendingDelay is waited before registering & authenticating.
		PendingDelay time.Duration

		Logger        core.Logger
		Registerer    prometheus.Registerer
		Gatherer      prometheus.Gatherer
		Store         *student.RecordStore
		Registrations *student.RegistrationService
		Auth          *student.AuthenticationService
		Dashboard     *student.DashboardController
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts    *Options
		app     *echo.Echo
		metrics *metrics
	}
)

var _ Server = (*server)(nil)

// NewServer builds the HTTP API. signalShutdown is called when a handler returns a core shutdown error.
func NewServer(opts *Options, signalShutdown func()) Server {
	if opts.Registerer == nil {
		reg := prometheus.NewRegistry()
		opts.Registerer, opts.Gatherer = reg, reg
	}
	s := &server{
		opts:    opts,
		app:     echo.New(),
		metrics: newMetrics(opts.Registerer),
	}
	s.setup(signalShutdown)
	return s
}

func (s *server) setup(signalShutdown func()) {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(s.metrics.middleware)

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Dashboard, signalShutdown)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", s.home)
	s.app.GET("/healthz", s.healthz)
	s.app.GET("/metrics", echo.WrapHandler(s.metrics.handler(s.opts.Gatherer)))

	v1 := s.app.Group("/v1")
	pending := pendingMiddleware(s.opts.PendingDelay)

	registerStudentAPI(v1, pending, s.opts.Registrations, s.metrics)
	registerSessionAPI(v1, pending, s.opts.Auth, s.opts.Dashboard, s.metrics)
	registerDashboardAPI(v1, s.opts.Dashboard, s.metrics)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.opts.AppName+" API!")
}

func (s *server) healthz(ctx echo.Context) error {
	if err := s.opts.Store.Ping(ctx.Request().Context()); err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "error": err.Error()})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
