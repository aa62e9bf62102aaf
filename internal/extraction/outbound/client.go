// Package outbound talks to the external extraction service.
package outbound

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	// DefaultEndpoint is where the extraction service listens out of the box.
	DefaultEndpoint = "http://localhost:8000/upload/"

	// FieldName is the multipart part carrying the file.
	FieldName = "file"

	tracerName = "github.com/shandysiswandi/extractview/internal/extraction/outbound"
)

// ErrStatus wraps non-2xx responses.
var ErrStatus = errors.New("extraction service returned non-2xx status")

type Config struct {
	Endpoint string
	// RatePerSecond <= 0 disables limiting.
	RatePerSecond float64
	Burst         int
	HTTPClient    *http.Client
	Registerer    prometheus.Registerer
	Tracer        trace.Tracer
	Logger        *slog.Logger
}

// Client posts one file per call to the extraction endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	tracer   trace.Tracer
	logger   *slog.Logger
	metrics  *metrics
}

func NewClient(cfg Config) (*Client, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	// No timeout: the transport's defaults decide how long an upload may take.
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m, err := newMetrics(cfg.Registerer)
	if err != nil {
		return nil, err
	}

	return &Client{
		endpoint: endpoint,
		http:     client,
		limiter:  rate.NewLimiter(limit, burst),
		tracer:   tracer,
		logger:   logger,
		metrics:  m,
	}, nil
}

// Extract uploads f and decodes the extracted collections. Every failure,
// whatever its cause, is returned as an error; the caller collapses them.
func (c *Client) Extract(ctx context.Context, f entity.File) (entity.ExtractionResult, error) {
	reqID := uuid.New().String()
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "extraction.upload",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("extraction.request_id", reqID),
			attribute.String("file.name", f.Name),
			attribute.Int64("file.size", f.Size()),
		),
	)
	defer span.End()

	result, outcome, err := c.do(ctx, reqID, f)
	elapsed := time.Since(start)

	c.metrics.requests.WithLabelValues(outcome).Inc()
	c.metrics.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		c.logger.ErrorContext(ctx, "extraction.http.failed",
			"req_id", reqID,
			"outcome", outcome,
			"error", err,
			"elapsed_ms", elapsed.Milliseconds(),
		)
		return entity.ExtractionResult{}, err
	}

	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (c *Client) do(ctx context.Context, reqID string, f entity.File) (entity.ExtractionResult, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return entity.ExtractionResult{}, outcomeThrottled, fmt.Errorf("wait rate limiter: %w", err)
	}

	body, contentType, err := encodeFile(f)
	if err != nil {
		return entity.ExtractionResult{}, outcomeEncode, fmt.Errorf("encode multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return entity.ExtractionResult{}, outcomeEncode, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.InfoContext(ctx, "extraction.http.request",
		"req_id", reqID,
		"url", c.endpoint,
		"file_name", f.Name,
		"content_length", body.Len(),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return entity.ExtractionResult{}, outcomeTransport, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.WarnContext(ctx, "extraction.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.ExtractionResult{}, outcomeTransport, fmt.Errorf("read body: %w", err)
	}

	c.logger.InfoContext(ctx, "extraction.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return entity.ExtractionResult{}, outcomeStatus, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	result, err := Decode(raw)
	if err != nil {
		return entity.ExtractionResult{}, outcomeDecode, err
	}

	return result, outcomeSuccess, nil
}

func encodeFile(f entity.File) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(FieldName, f.Name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &buf, mw.FormDataContentType(), nil
}
