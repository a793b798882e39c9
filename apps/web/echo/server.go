package echoweb

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/msms/core"
	"github.com/trezcool/msms/core/school"
)

type (
	Options struct {
		Address        string
		AppName        string
		Debug          bool
		DisableReqLogs bool
		ReportDir      string // where downloadable reports are written
		Store          *school.RecordStore
		Logger         core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
		Close() error
		Errors() <-chan error
	}

	server struct {
		opts *Options
		app  *echo.Echo
		errs chan error
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) (Server, error) {
	s := &server{
		opts: opts,
		app:  echo.New(),
		errs: make(chan error, 1),
	}
	if err := s.setup(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *server) setup() error {
	rdr, err := newRenderer(s.opts.Debug)
	if err != nil {
		return errors.Wrap(err, "loading templates")
	}

	s.app.HideBanner = true
	s.app.Debug = s.opts.Debug
	if s.opts.Debug {
		s.app.Logger.SetLevel(log.DEBUG)
	} else {
		s.app.Logger.SetLevel(log.INFO)
	}

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))

	s.app.Renderer = rdr
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.AppName, s.opts.Logger)

	h := &handlers{
		store:     s.opts.Store,
		log:       s.opts.Logger,
		appName:   s.opts.AppName,
		reportDir: s.opts.ReportDir,
	}
	s.app.GET("/", h.home)
	registerStudentPages(s.app, h)
	registerTeacherPages(s.app, h)
	registerCoursePages(s.app, h)
	registerRosterPages(s.app, h)
	registerPaymentPages(s.app, h)
	return nil
}

// Start serves until Stop or Close is called. Any other failure is sent to Errors.
func (s *server) Start() {
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errs
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
