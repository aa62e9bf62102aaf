package outbound

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, url string, reg prometheus.Registerer) *Client {
	t.Helper()
	c, err := NewClient(Config{Endpoint: url, Registerer: reg})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestExtractSendsOneMultipartPart(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		file, header, err := r.FormFile(FieldName)
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "invoice.pdf" || string(data) != "%PDF" {
			t.Errorf("unexpected part %q %q", header.Filename, data)
		}
		if n := len(r.MultipartForm.File); n != 1 {
			t.Errorf("expected one file part, got %d", n)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"invoices":[{"serialNumber":"1"},{"serialNumber":"2"}],"products":[]}}`)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c := newTestClient(t, srv.URL, reg)

	res, err := c.Extract(context.Background(), entity.File{Name: "invoice.pdf", Data: []byte("%PDF")})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one request, got %d", calls.Load())
	}
	if len(res.Invoices) != 2 || len(res.Products) != 0 || res.Customers == nil || len(res.Customers) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := testutil.ToFloat64(c.metrics.requests.WithLabelValues(outcomeSuccess)); got != 1 {
		t.Fatalf("expected success counter 1, got %v", got)
	}
}

func TestExtractFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		outcome string
	}{
		{"server error", http.StatusInternalServerError, `{"data":{}}`, outcomeStatus},
		{"not json", http.StatusOK, `<html>oops</html>`, outcomeDecode},
		{"truncated json", http.StatusOK, `{"data":`, outcomeDecode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, nil)
			if _, err := c.Extract(context.Background(), entity.File{Name: "a.png"}); err == nil {
				t.Fatal("expected error")
			}
			if got := testutil.ToFloat64(c.metrics.requests.WithLabelValues(tc.outcome)); got != 1 {
				t.Fatalf("expected %s counter 1, got %v", tc.outcome, got)
			}
		})
	}
}

func TestExtractStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, nil).Extract(context.Background(), entity.File{Name: "a.pdf"})
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
}

func TestExtractTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := newTestClient(t, url, nil).Extract(context.Background(), entity.File{Name: "a.pdf"}); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestExtractCanceledContext(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := NewClient(Config{Endpoint: srv.URL, RatePerSecond: 1, Burst: 1})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Extract(ctx, entity.File{Name: "a.pdf"}); err == nil {
		t.Fatal("expected error for canceled context")
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no request, got %d", calls.Load())
	}
}

func TestNewClientSharesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := newTestClient(t, "", reg)
	b := newTestClient(t, "", reg)

	if a.metrics.requests != b.metrics.requests {
		t.Fatal("expected second client to reuse registered counters")
	}
	if a.endpoint != DefaultEndpoint {
		t.Fatalf("expected default endpoint, got %q", a.endpoint)
	}
}

func TestNewClientRateLimit(t *testing.T) {
	off, err := NewClient(Config{Registerer: prometheus.NewRegistry()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if off.limiter.Limit() != rate.Inf {
		t.Fatalf("expected no limit by default, got %v", off.limiter.Limit())
	}

	on, err := NewClient(Config{RatePerSecond: 2, Burst: 3, Registerer: prometheus.NewRegistry()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if on.limiter.Limit() != 2 || on.limiter.Burst() != 3 {
		t.Fatalf("expected 2/s burst 3, got %v/%d", on.limiter.Limit(), on.limiter.Burst())
	}
}
