// Package gateway is the HTTP client for the remote reconciliation
// engine. It maps the four engine endpoints onto typed operations and a
// small error taxonomy; every call is one network round trip.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"reconboard/internal/core"
	"reconboard/internal/log"
	"reconboard/internal/metrics"
)

// maxErrorBody caps how much of a rejection body is surfaced to the user.
const maxErrorBody = 64 << 10

// Config configures the engine client.
type Config struct {
	// BaseURL is the engine root, e.g. "http://localhost:5000".
	BaseURL string

	// Timeout applies per call through the underlying http.Client.
	// Timeout policy lives here, in transport configuration, not in the
	// operations themselves.
	Timeout time.Duration

	// BreakerEnabled wraps calls in a circuit breaker that trips after
	// consecutive transport failures. Rejections and not-found responses
	// are engine answers, not failures, and never trip it.
	BreakerEnabled bool

	Logger  *log.Logger
	Metrics *metrics.Collector
}

// Client is the concrete EngineClient backed by net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
	metrics    *metrics.Collector
	breaker    *gobreaker.CircuitBreaker
}

// NewClient builds an engine client from configuration.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentGateway)

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		metrics:    cfg.Metrics,
	}

	if cfg.BreakerEnabled {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "engine",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				var ue *UploadError
				return err == nil || errors.As(err, &ue) || errors.Is(err, ErrNotFound)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					"breaker", name, "from", from.String(), "to", to.String())
			},
		})
	}

	return c
}

// GetSummary implements EngineClient.
func (c *Client) GetSummary(ctx context.Context) (core.SummaryStats, error) {
	var stats core.SummaryStats
	err := c.getJSON(ctx, log.OpSummary, "/api/dashboard/summary", nil, &stats)
	return stats, err
}

// ListTransactions implements EngineClient.
func (c *Client) ListTransactions(ctx context.Context, statusFilter string) ([]core.Transaction, error) {
	var query url.Values
	if statusFilter != "" {
		query = url.Values{"status": {statusFilter}}
	}
	var txns []core.Transaction
	if err := c.getJSON(ctx, log.OpList, "/api/transactions", query, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// GetTransactionDetail implements EngineClient.
func (c *Client) GetTransactionDetail(ctx context.Context, id string) (core.TransactionDetail, error) {
	var detail core.TransactionDetail
	err := c.getJSON(ctx, log.OpDetail, "/api/transactions/"+url.PathEscape(id), nil, &detail)
	return detail, err
}

// SubmitReconciliation implements EngineClient.
func (c *Client) SubmitReconciliation(ctx context.Context, filename string, file []byte) (core.ReconcileReport, error) {
	const op = log.OpReconcile
	start := time.Now()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return core.ReconcileReport{}, fmt.Errorf("reconcile: build form: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return core.ReconcileReport{}, fmt.Errorf("reconcile: build form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return core.ReconcileReport{}, fmt.Errorf("reconcile: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/reconcile", &body)
	if err != nil {
		return core.ReconcileReport{}, fmt.Errorf("reconcile: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var report core.ReconcileReport
	err = c.execute(func() error {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return transientErr(op, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return &UploadError{
				StatusCode: resp.StatusCode,
				Message:    strings.TrimSpace(string(raw)),
			}
		}

		// A bare 2xx ack with no JSON body is a valid success.
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return transientErr(op, err)
		}
		if len(bytes.TrimSpace(raw)) > 0 {
			if derr := json.Unmarshal(raw, &report); derr != nil {
				c.logger.WarnContext(ctx, "unparseable reconcile report, treating as plain ack",
					log.FieldOperation, op, log.FieldError, derr)
			}
		}
		return nil
	})

	c.observe(ctx, op, err, time.Since(start))
	if err != nil {
		return core.ReconcileReport{}, err
	}
	return report, nil
}

// getJSON performs one GET round trip and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	start := time.Now()
	err := c.execute(func() error {
		u := c.baseURL + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("%s: build request: %w", op, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return transientErr(op, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound && op == log.OpDetail {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return transientStatus(op, resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return transientErr(op, err)
		}
		return nil
	})
	c.observe(ctx, op, err, time.Since(start))
	return err
}

// execute runs fn, through the circuit breaker when one is configured.
func (c *Client) execute(fn func() error) error {
	if c.breaker == nil {
		return fn()
	}
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("engine call rejected: %w: %v", ErrTransient, err)
	}
	return err
}

func (c *Client) observe(ctx context.Context, op string, err error, duration time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordEngineRequest(op, err, duration)
	}
	if err != nil {
		c.logger.WarnContext(ctx, "engine request failed",
			log.FieldOperation, op,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldError, err)
		return
	}
	c.logger.DebugContext(ctx, "engine request completed",
		log.FieldOperation, op,
		log.FieldDuration, duration.Milliseconds())
}
