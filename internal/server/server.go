// Package server exposes the discovery pipeline, drafting, and
// scheduling over HTTP.
package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kowshik24/email-draft/compose"
	"github.com/kowshik24/email-draft/config"
	"github.com/kowshik24/email-draft/discovery"
	"github.com/kowshik24/email-draft/internal/runstore"
	"github.com/kowshik24/email-draft/internal/telemetry"
	"github.com/kowshik24/email-draft/models"
	"github.com/kowshik24/email-draft/provider"
	"github.com/kowshik24/email-draft/schedule"
	"github.com/kowshik24/email-draft/tools/web_fetch"
	"github.com/kowshik24/email-draft/tools/web_search"
)

// Server wires the application services behind an echo router.
type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	pipeline *discovery.Pipeline
	drafter  *compose.Drafter
	advisor  *schedule.Advisor
	runs     runstore.Store
	logger   *log.Logger
}

// New builds the full dependency graph from config. Construction fails
// on misconfiguration (missing API keys, unknown providers) so that a
// broken deployment dies at startup rather than on the first request.
func New(cfg *config.Config) (*Server, error) {
	logger := log.New(log.Writer(), "[SERVER] ", log.LstdFlags)

	llm, err := provider.NewProvider(provider.Client(cfg.LLM.Provider), cfg.LLM)
	if err != nil {
		return nil, err
	}
	searcher, err := web_search.NewSearcher(web_search.Provider(cfg.Search.Provider), searchAPIKey(cfg.Search))
	if err != nil {
		return nil, err
	}
	fetcher, err := web_fetch.NewWebFetcher(web_fetch.ChromedpFetcherType, cfg.Search.FetchTimeout, cfg.Search.FetchMaxSize)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	tele := telemetry.New(reg)

	gateway := discovery.NewGateway(searcher, fetcher, cfg.Search.Provider, cfg.Search, tele,
		log.New(log.Writer(), "[SEARCH] ", log.LstdFlags))
	pipeline := discovery.NewPipeline(gateway, llm, cfg, tele,
		log.New(log.Writer(), "[DISCOVERY] ", log.LstdFlags))

	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		drafter:  compose.NewDrafter(llm, provider.OptionsFor(cfg.LLM.Active())),
		advisor:  schedule.NewAdvisor(cfg.Schedule, log.New(log.Writer(), "[SCHEDULE] ", log.LstdFlags)),
		runs:     runstore.New(0),
		logger:   logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = s.errorHandler
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	api.POST("/discover", s.handleDiscover)
	api.GET("/runs", s.handleListRuns)
	api.GET("/runs/:id", s.handleGetRun)
	api.GET("/runs/:id/export", s.handleExportRun)
	api.POST("/email", s.handleEmail)
	api.POST("/sop", s.handleSOP)
	api.POST("/schedule", s.handleSchedule)

	s.echo = e
	return s, nil
}

func searchAPIKey(cfg config.SearchConfig) string {
	switch cfg.Provider {
	case "serper":
		return cfg.SerperAPIKey
	case "brave":
		return cfg.BraveAPIKey
	default:
		return cfg.TavilyAPIKey
	}
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo { return s.echo }

func (s *Server) Start() error {
	addr := s.cfg.Server.Address
	if addr == "" {
		addr = ":8080"
	}
	s.logger.Printf("INFO: listening on %s", addr)
	return s.echo.Start(addr)
}

// errorHandler maps the application error taxonomy onto HTTP statuses
// and emits a uniform JSON error body. Unparseable LLM responses attach
// the raw model text so callers can inspect what came back.
func (s *Server) errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	body := map[string]any{"error": err.Error()}

	var he *echo.HTTPError
	var cfgErr *models.ConfigError
	var upErr *models.UpstreamError
	var parseErr *models.UnparseableError
	switch {
	case errors.As(err, &he):
		code = he.Code
		if he.Message != nil {
			body["error"] = fmt.Sprint(he.Message)
		}
	case errors.As(err, &cfgErr):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNoResults):
		code = http.StatusNotFound
	case errors.As(err, &upErr):
		code = http.StatusBadGateway
	case errors.As(err, &parseErr):
		code = http.StatusBadGateway
		body["raw"] = parseErr.Raw
	}

	req := c.Request()
	s.logger.Printf("%d %s %s: %v", code, req.Method, req.URL.Path, err)
	if !c.Response().Committed {
		_ = c.JSON(code, body)
	}
}
