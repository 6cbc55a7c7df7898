package board

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"tarediiran-industries.com/tfl-status/internal/display"
	"tarediiran-industries.com/tfl-status/internal/lines"
	"tarediiran-industries.com/tfl-status/internal/tfl"
)

type ServerConfig struct {
	ListenAddress string
	PollSeconds   int
	SurfaceName   string

	Client   *tfl.Client
	Registry *lines.Registry
	Palette  display.Palette
	Logger   logrus.FieldLogger

	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer prometheus.Gatherer
}

type BoardServer struct {
	client      *tfl.Client
	registry    *lines.Registry
	palette     display.Palette
	surface     *display.Surface
	logger      logrus.FieldLogger
	pollSeconds int

	router   chi.Router
	server   *http.Server
	renderer *Renderer
}

func NewBoardServer(cfg ServerConfig) (*BoardServer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	surfaceName := cfg.SurfaceName
	if surfaceName == "" {
		surfaceName = display.DefaultSurfaceName
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	server := &BoardServer{
		client:      cfg.Client,
		registry:    cfg.Registry,
		palette:     cfg.Palette,
		surface:     display.NewBoard().Surface(surfaceName),
		logger:      logger,
		pollSeconds: cfg.PollSeconds,
		router:      router,
		renderer:    renderer,
		server: &http.Server{
			Addr:              cfg.ListenAddress,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	router.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, "/status", http.StatusFound)
	})
	router.Get("/status", server.handleStatusPage)
	router.Get("/status/partial", server.handleStatusPartial)
	router.Get("/surface", server.handleSurface)
	if cfg.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	return server, nil
}

func (server *BoardServer) Handler() http.Handler {
	return server.router
}

func (server *BoardServer) startHosting() {
	err := server.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		server.logger.WithError(err).Error("board server stopped")
	}
}

func (server *BoardServer) Serve(ctx context.Context) {
	server.logger.WithField("addr", server.server.Addr).Info("board listening")

	go server.startHosting()
	<-ctx.Done()

	server.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.server.Shutdown(shutdownCtx); err != nil {
		server.logger.WithError(err).Warn("shutdown")
	}
}
