package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tarediiran-industries.com/tfl-status/internal/status"
)

func lineBody(name string, severity int, description, reason string) string {
	reasonJSON := "null"
	if reason != "" {
		reasonJSON = fmt.Sprintf("%q", reason)
	}
	return fmt.Sprintf(
		`[{"name":%q,"lineStatuses":[{"statusSeverity":%d,"statusSeverityDescription":%q,"reason":%s}]}]`,
		name, severity, description, reasonJSON,
	)
}

type harness struct {
	app    *TflStatusApp
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	toml   string
}

func newHarness(t *testing.T, stdin string, handler http.HandlerFunc) *harness {
	t.Helper()
	return newHarnessWithInput(t, strings.NewReader(stdin), handler)
}

func newHarnessWithInput(t *testing.T, stdin io.Reader, handler http.HandlerFunc) *harness {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "config.toml")
	body := fmt.Sprintf(`base_url = %q
timeout = "2s"

[[lines]]
name = "Central"
id = "central"

[[lines]]
name = "Victoria"
id = "victoria"
`, srv.URL)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &harness{
		app:    NewApp(stdin, stdout, stderr),
		stdout: stdout,
		stderr: stderr,
		toml:   path,
	}
}

func (h *harness) run(ctx context.Context, args ...string) error {
	return h.app.Run(ctx, append([]string{"--toml", h.toml}, args...))
}

func TestInteractiveShowsChosenLine(t *testing.T) {
	h := newHarness(t, "2\n", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/line/victoria/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, lineBody("Victoria", 10, "Good Service", ""))
	})

	if err := h.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	expected := "Victoria\n\nStatus:\n    ● Good Service\n"
	if !strings.Contains(h.stdout.String(), expected) {
		t.Errorf("stdout = %q, expected it to contain %q", h.stdout.String(), expected)
	}
	if strings.Contains(h.stdout.String(), "Details:") {
		t.Errorf("stdout has a Details section: %q", h.stdout.String())
	}
}

func TestInteractiveReportsUnknownLine(t *testing.T) {
	var requests atomic.Int32
	h := newHarness(t, "central\n", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})

	if err := h.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(h.stderr.String(), `line not found: "central"`) {
		t.Errorf("stderr = %q", h.stderr.String())
	}
	if requests.Load() != 0 {
		t.Errorf("made %d requests for an unknown line", requests.Load())
	}
}

func TestFailedQueryKeepsPreviousRender(t *testing.T) {
	var requests atomic.Int32
	h := newHarness(t, "1\n1\n", func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, lineBody("Central", 9, "Minor Delays", "Signal failure at Oxford Circus"))
	})

	if err := h.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	surface := h.app.board.Surface(h.app.config.Surface)
	expected := status.Render("Central", status.Payload{
		Severity:    9,
		Description: "Minor Delays",
		Reason:      "Signal failure at Oxford Circus",
	})
	if surface.Content().String() != expected.String() {
		t.Errorf("surface = %q, expected %q", surface.Content().String(), expected.String())
	}
	if surface.Version() != 1 {
		t.Errorf("surface version = %d, expected 1", surface.Version())
	}
	if !strings.Contains(h.stderr.String(), "tfl-status: Central: server returned 500 Internal Server Error") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestStatusCommandFailure(t *testing.T) {
	h := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := h.run(context.Background(), "status", "Central")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("run error = %v, expected ErrReported", err)
	}
	if strings.Contains(h.stdout.String(), "Status:") {
		t.Errorf("stdout rendered a status: %q", h.stdout.String())
	}
}

func TestStatusCommandUnknownLine(t *testing.T) {
	h := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {})

	err := h.run(context.Background(), "status", "Jubilee")
	if err == nil || errors.Is(err, ErrReported) {
		t.Fatalf("run error = %v, expected an unreported lookup error", err)
	}
}

func TestStatusCommandWithDetails(t *testing.T) {
	h := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, lineBody("Central", 9, "Minor Delays", "Signal failure at Oxford Circus"))
	})

	if err := h.run(context.Background(), "status", "Central"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "\nDetails:\n    Signal failure at Oxford Circus\n") {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestLinesCommand(t *testing.T) {
	h := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {})

	if err := h.run(context.Background(), "lines"); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := h.stdout.String()
	if strings.Index(out, "Central") > strings.Index(out, "Victoria") {
		t.Errorf("lines not in registry order: %q", out)
	}
	if !strings.Contains(out, "victoria") {
		t.Errorf("stdout = %q", out)
	}
}

func TestWatchRequeries(t *testing.T) {
	var requests atomic.Int32
	h := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		io.WriteString(w, lineBody("Central", 10, "Good Service", ""))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := h.run(ctx, "watch", "Central", "--interval", "20ms"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if requests.Load() < 2 {
		t.Errorf("watch made %d requests, expected at least 2", requests.Load())
	}
}

func TestOnceStopsAfterOneQuery(t *testing.T) {
	var requests atomic.Int32
	h := newHarness(t, "1\n2\n", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		io.WriteString(w, lineBody("Central", 10, "Good Service", ""))
	})

	if err := h.run(context.Background(), "--once"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if requests.Load() != 1 {
		t.Errorf("--once made %d requests, expected 1", requests.Load())
	}
	if prompts := strings.Count(h.stdout.String(), "Line [1-2]: "); prompts != 1 {
		t.Errorf("--once prompted again: %q", h.stdout.String())
	}
}

func TestOnceReturnsFailure(t *testing.T) {
	var requests atomic.Int32
	h := newHarness(t, "1\n1\n", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := h.run(context.Background(), "--once")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("run error = %v, expected ErrReported", err)
	}
	if requests.Load() != 1 {
		t.Errorf("--once made %d requests, expected 1", requests.Load())
	}
	if !strings.Contains(h.stderr.String(), "server returned 503 Service Unavailable") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestInteractiveStopsWhenCancelled(t *testing.T) {
	in, feed := io.Pipe()
	defer feed.Close()

	var requests atomic.Int32
	h := newHarnessWithInput(t, in, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	errs := make(chan error, 1)
	go func() { errs <- h.run(ctx) }()

	select {
	case err := <-errs:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("interactive loop kept waiting for input after cancellation")
	}
	if requests.Load() != 0 {
		t.Errorf("made %d requests without a choice", requests.Load())
	}
}

func TestTelemetryStoppedAfterFailingCommand(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	h := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err = h.run(context.Background(), "--telemetry", addr, "status", "Central")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("run error = %v, expected ErrReported", err)
	}

	listener, err = net.Listen("tcp", addr)
	if err != nil {
		t.Fatalf("telemetry still holds %s: %v", addr, err)
	}
	listener.Close()
}
