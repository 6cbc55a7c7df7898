package common

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
)

func TestTelemetryServerExposesMetrics(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	telemetry := NewTelemetryServer("127.0.0.1:0", logger)
	metrics := NewMetrics(telemetry.GetRegistry())
	metrics.LineStatusTotal.WithLabelValues("good_service").Inc()

	if err := telemetry.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer telemetry.Stop()

	resp, err := http.Get("http://" + telemetry.Addr() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	for _, name := range []string{"tfl_build_info", `tfl_line_status_total{category="good_service"} 1`} {
		if !strings.Contains(string(body), name) {
			t.Errorf("/metrics output missing %q", name)
		}
	}
}

func TestRuntimeBenchmarkPassesThrough(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	got, err := RuntimeBenchmark(logger, "answer", func() (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Errorf("RuntimeBenchmark() = %d, %v", got, err)
	}
}

func TestNewMetricsRegistersCounters(t *testing.T) {
	metrics := NewMetrics(NewRuntimeRegistry())
	metrics.HttpErrorsTotal.WithLabelValues("line_status", "http").Inc()

	if got := testutil.ToFloat64(metrics.HttpErrorsTotal.WithLabelValues("line_status", "http")); got != 1 {
		t.Errorf("errors counter = %v, expected 1", got)
	}
}
