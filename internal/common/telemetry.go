package common

import (
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Metrics struct {
	HttpTTFBSeconds     *prometheus.HistogramVec
	HttpReadBodySeconds *prometheus.HistogramVec
	HttpBytesTotal      *prometheus.CounterVec
	HttpErrorsTotal     *prometheus.CounterVec
	LineStatusTotal     *prometheus.CounterVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HttpTTFBSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tfl_http_ttfb_seconds",
				Help:    "Time from line status GET to first byte",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		HttpReadBodySeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tfl_http_read_body_seconds",
				Help:    "Time to read the body of a line status response",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		HttpBytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tfl_http_bytes_total",
				Help: "Bytes downloaded per endpoint",
			},
			[]string{"endpoint"},
		),
		HttpErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tfl_http_errors_total",
				Help: "Failed line status queries by failure kind",
			},
			[]string{"endpoint", "kind"},
		),
		LineStatusTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tfl_line_status_total",
				Help: "Line statuses received, by display category",
			},
			[]string{"category"},
		),
	}

	registry.MustRegister(
		metrics.HttpTTFBSeconds,
		metrics.HttpReadBodySeconds,
		metrics.HttpBytesTotal,
		metrics.HttpErrorsTotal,
		metrics.LineStatusTotal,
	)

	return metrics
}

// NewRuntimeRegistry returns a registry carrying Go runtime, process and build metrics.
func NewRuntimeRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tfl_build_info",
			Help: "Build metadata",
		},
		[]string{"version", "git_commit"},
	)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		buildInfo,
	)
	buildInfo.WithLabelValues(Version, GitCommit).Set(1)

	return registry
}

type TelemetryServer struct {
	addr     string
	mux      *http.ServeMux
	registry *prometheus.Registry
	logger   logrus.FieldLogger

	server   *http.Server
	listener net.Listener
}

func NewTelemetryServer(addr string, logger logrus.FieldLogger) *TelemetryServer {
	telemetry := &TelemetryServer{
		addr:     addr,
		registry: NewRuntimeRegistry(),
		mux:      http.NewServeMux(),
		logger:   logger,
	}

	telemetry.mux.Handle(
		"/metrics",
		promhttp.HandlerFor(telemetry.registry, promhttp.HandlerOpts{}),
	)
	telemetry.mux.HandleFunc("/debug/pprof/", pprof.Index)
	telemetry.mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	telemetry.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	telemetry.mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	telemetry.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return telemetry
}

func (telemetry *TelemetryServer) GetRegistry() *prometheus.Registry {
	return telemetry.registry
}

// Addr is the bound address once Start has returned.
func (telemetry *TelemetryServer) Addr() string {
	if telemetry.listener == nil {
		return telemetry.addr
	}
	return telemetry.listener.Addr().String()
}

func (telemetry *TelemetryServer) Start() error {
	telemetry.server = &http.Server{
		Addr:              telemetry.addr,
		Handler:           telemetry.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", telemetry.addr)
	if err != nil {
		return err
	}
	telemetry.listener = listener

	go func() {
		if err := telemetry.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			telemetry.logger.WithError(err).Error("telemetry server stopped")
		}
	}()

	telemetry.logger.WithField("addr", telemetry.Addr()).Info("telemetry server started")
	return nil
}

func (telemetry *TelemetryServer) Stop() error {
	if telemetry.server == nil {
		return nil
	}
	err := telemetry.server.Close()
	// Serve may not have taken over the listener yet.
	if telemetry.listener != nil {
		telemetry.listener.Close()
	}
	return err
}
