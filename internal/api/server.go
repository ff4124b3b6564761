// Package api serves the journal over HTTP for the web front end.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
	"github.com/kimchoi-jjiggae/coachMe/internal/metrics"
	"github.com/kimchoi-jjiggae/coachMe/internal/utils"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// Journal is the part of *journal.Service the API needs.
type Journal interface {
	Title(ctx context.Context, content string) (string, journal.TitleSource)
	Save(ctx context.Context, req journal.SaveRequest) (journal.Entry, error)
	Get(ctx context.Context, id string) (journal.Entry, error)
	List(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error)
	Count(ctx context.Context, opts journal.ListOptions) (int, error)
	Search(ctx context.Context, query string, limit int) ([]journal.Entry, error)
	Delete(ctx context.Context, id string) error
	Sync(ctx context.Context) (journal.SyncReport, error)
	Summarize(ctx context.Context, since, until time.Time, loc *time.Location) (journal.Summary, error)
	Draft(ctx context.Context) (journal.Draft, error)
	SetDraft(ctx context.Context, d journal.Draft) (journal.Draft, error)
	ClearDraft(ctx context.Context) error
	SaveDraft(ctx context.Context) (journal.Entry, error)
}

// Server provides the HTTP endpoints.
type Server struct {
	echo    *echo.Echo
	journal Journal
	logger  *zap.Logger
	metrics *metrics.Metrics
	config  *Config
	now     func() time.Time
}

type Config struct {
	Addr string
	// AllowOrigins for CORS; empty allows any origin.
	AllowOrigins []string
}

// NewServer creates the server. m may be nil.
func NewServer(j Journal, logger *zap.Logger, m *metrics.Metrics, cfg *Config) (*Server, error) {
	if j == nil {
		return nil, fmt.Errorf("journal cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg == nil {
		cfg = &Config{Addr: "127.0.0.1:3001"}
	}
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		journal: j,
		logger:  logger,
		metrics: m,
		config:  cfg,
		now:     time.Now,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(s.observe)

	s.registerRoutes()
	return s, nil
}

// observe logs and counts every request. Errors are rendered here so the
// recorded status is the one the client sees.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}
		duration := time.Since(start)

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().Status
		s.metrics.ObserveRequest(c.Request().Method, route, status, duration)
		s.logger.Info("http request",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)
		return nil
	}
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := s.echo.Group("/api")
	api.POST("/generate-title", s.handleGenerateTitle)
	api.POST("/punctuate", s.handlePunctuate)

	api.GET("/entries", s.handleListEntries)
	api.POST("/entries", s.handleCreateEntry)
	api.GET("/entries/:id", s.handleGetEntry)
	api.PUT("/entries/:id", s.handleUpdateEntry)
	api.DELETE("/entries/:id", s.handleDeleteEntry)
	api.GET("/search", s.handleSearch)
	api.POST("/sync", s.handleSync)
	api.GET("/summary", s.handleSummary)

	api.GET("/draft", s.handleGetDraft)
	api.PUT("/draft", s.handlePutDraft)
	api.DELETE("/draft", s.handleClearDraft)
	api.POST("/draft/save", s.handleSaveDraft)
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.config.Addr))
	if err := s.echo.Start(s.config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// toHTTPError maps journal errors onto status codes.
func (s *Server) toHTTPError(err error) error {
	switch {
	case errors.Is(err, journal.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "entry not found")
	case errors.Is(err, journal.ErrEmptyContent):
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	case errors.Is(err, journal.ErrNoDraftStore):
		return echo.NewHTTPError(http.StatusNotImplemented, "drafts are not configured")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request canceled")
	default:
		s.logger.Error("request failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative integer")
	}
	return n, nil
}

func (s *Server) queryTime(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := utils.ParseFlexibleDate(raw, s.now())
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s: %v", name, err))
	}
	return t, nil
}

func pageSize(c echo.Context) (int, error) {
	limit, err := queryInt(c, "limit", defaultPageSize)
	if err != nil {
		return 0, err
	}
	if limit == 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	return limit, nil
}
