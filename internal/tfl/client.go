package tfl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tarediiran-industries.com/tfl-status/internal/common"
	"tarediiran-industries.com/tfl-status/internal/status"
)

const (
	DefaultBaseURL = "https://api.tfl.gov.uk"
	DefaultTimeout = 15 * time.Second

	endpointLabel = "line_status"
)

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration

	// HTTP overrides the client built from Timeout.
	HTTP    *http.Client
	Logger  logrus.FieldLogger
	Metrics *common.Metrics
}

// Client queries the line status endpoint. It holds no per-query state, so
// any number of queries may be in flight at once.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logrus.FieldLogger
	metrics *common.Metrics
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		logger:  logger,
		metrics: cfg.Metrics,
	}
}

func (client *Client) BaseURL() string {
	return client.baseURL
}

// StatusURL builds <base>/line/<id>/status. Slashes inside id are kept as
// path separators so "mode/elizabeth-line" addresses the mode endpoint.
func (client *Client) StatusURL(lineID string) string {
	segments := strings.Split(lineID, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return client.baseURL + "/line/" + strings.Join(segments, "/") + "/status"
}

// Fetch performs one blocking status query.
func (client *Client) Fetch(ctx context.Context, lineID string) (status.Payload, error) {
	statusURL := client.StatusURL(lineID)
	queryID := uuid.NewString()
	logger := client.logger.WithFields(logrus.Fields{
		"line":     lineID,
		"url":      statusURL,
		"query_id": queryID,
	})

	benchmarker := common.NewBenchmarker(logger, "line-status")
	defer benchmarker.Close()

	payload, err := client.fetch(ctx, statusURL, queryID)
	if err != nil {
		client.observeError(err)
		logger.WithError(err).WithField("kind", Kind(err)).Warn("line status query failed")
		return status.Payload{}, err
	}

	if client.metrics != nil {
		client.metrics.LineStatusTotal.WithLabelValues(payload.Category().String()).Inc()
	}
	logger.WithFields(logrus.Fields{
		"severity": payload.Severity,
		"category": payload.Category().String(),
	}).Debug("line status received")

	return payload, nil
}

func (client *Client) fetch(ctx context.Context, statusURL, queryID string) (status.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return status.Payload{}, &NetworkError{URL: statusURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "tfl-status/"+common.Version)
	req.Header.Set("X-Request-ID", queryID)

	start := time.Now()
	resp, err := client.http.Do(req)
	if err != nil {
		return status.Payload{}, &NetworkError{URL: statusURL, Err: err}
	}
	defer resp.Body.Close()

	if client.metrics != nil {
		client.metrics.HttpTTFBSeconds.WithLabelValues(endpointLabel).Observe(time.Since(start).Seconds())
	}

	if resp.StatusCode/100 != 2 {
		return status.Payload{}, &HTTPError{URL: statusURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	readStart := time.Now()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return status.Payload{}, &NetworkError{URL: statusURL, Err: fmt.Errorf("read body: %w", err)}
	}

	if client.metrics != nil {
		client.metrics.HttpReadBodySeconds.WithLabelValues(endpointLabel).Observe(time.Since(readStart).Seconds())
		client.metrics.HttpBytesTotal.WithLabelValues(endpointLabel).Add(float64(len(body)))
	}

	payload, err := decodePayload(body)
	if err != nil {
		return status.Payload{}, &ParseError{URL: statusURL, Err: err}
	}
	return payload, nil
}

func (client *Client) observeError(err error) {
	if client.metrics == nil {
		return
	}
	client.metrics.HttpErrorsTotal.WithLabelValues(endpointLabel, Kind(err)).Inc()
}

// Query starts a status query and returns without waiting for it. Exactly one
// of onSuccess or onFailure is called, once, from the query goroutine. The
// returned channel is closed after that callback returns.
func (client *Client) Query(
	ctx context.Context,
	lineID string,
	onSuccess func(status.Payload),
	onFailure func(error),
) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		payload, err := client.Fetch(ctx, lineID)
		if err != nil {
			if onFailure != nil {
				onFailure(err)
			}
			return
		}
		if onSuccess != nil {
			onSuccess(payload)
		}
	}()

	return done
}
