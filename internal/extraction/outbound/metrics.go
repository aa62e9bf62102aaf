package outbound

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgmetric"
)

const (
	outcomeSuccess   = "success"
	outcomeThrottled = "throttled"
	outcomeEncode    = "encode_error"
	outcomeTransport = "transport_error"
	outcomeStatus    = "status_error"
	outcomeDecode    = "decode_error"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: pkgmetric.Namespace,
		Subsystem: "extraction",
		Name:      "requests_total",
		Help:      "Uploads sent to the extraction service, by outcome.",
	}, []string{"outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: pkgmetric.Namespace,
		Subsystem: "extraction",
		Name:      "request_duration_seconds",
		Help:      "Time spent on one extraction upload, by outcome.",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"outcome"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &metrics{requests: requests, duration: duration}, nil
}

// register returns the already registered collector when an identical one exists.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
