package extraction

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shandysiswandi/extractview/internal/extraction/event"
	"github.com/shandysiswandi/extractview/internal/extraction/inbound"
	"github.com/shandysiswandi/extractview/internal/extraction/outbound"
	"github.com/shandysiswandi/extractview/internal/extraction/store"
	"github.com/shandysiswandi/extractview/internal/extraction/usecase"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/extractview/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
	AttemptID pkguid.NumberID
	Metrics   prometheus.Registerer
}

func New(dep Dependency) (func(context.Context) error, error) {
	cfg := dep.Config

	key, err := sessionKey(cfg)
	if err != nil {
		return nil, err
	}

	client, err := outbound.NewClient(outbound.Config{
		Endpoint:      cfg.GetString("extraction.endpoint"),
		RatePerSecond: cfg.GetFloat("extraction.rate_per_second"),
		Burst:         int(cfg.GetInt("extraction.rate_burst")),
		Registerer:    dep.Metrics,
	})
	if err != nil {
		return nil, err
	}

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}
	if dep.AttemptID == nil {
		sf, err := pkguid.NewSnowflake()
		if err != nil {
			return nil, err
		}
		dep.AttemptID = sf
	}

	storage := store.NewInMemoryStore()
	bus := event.NewBus(int(cfg.GetInt("event.buffer")))

	uc := usecase.New(usecase.Dependency{
		Store:     storage,
		Extractor: client,
		Events:    bus,
		Runner:    dep.Goroutine,
		ID:        dep.ID,
		AttemptID: dep.AttemptID,
		RootCtx:   dep.Context,
	})

	consumer := event.NewOutcomeConsumer(bus, event.HandlerFunc(uc.Deliver), event.ConsumerConfig{
		Workers:     int(cfg.GetInt("event.workers")),
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	})
	consumer.Start()

	ttl := time.Duration(cfg.GetInt("extraction.workspace_ttl_seconds")) * time.Second
	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Options{
		Sessions:     inbound.NewCookieStore(key, cfg.GetBool("session.secure"), int(ttl.Seconds())),
		SessionName:  cfg.GetString("session.name"),
		MaxFileBytes: cfg.GetInt("extraction.max_file_bytes"),
	})

	sweep := time.Duration(cfg.GetInt("extraction.sweep_interval_seconds")) * time.Second
	dep.Goroutine.Go(dep.Context, func(ctx context.Context) error {
		return uc.Sweep(ctx, ttl, sweep)
	})

	return func(ctx context.Context) error {
		uc.Close(ctx)
		return consumer.Stop(ctx)
	}, nil
}

// sessionKey reads the base64 cookie signing key. An empty key falls back to a
// random one; a value that does not decode is a configuration error.
func sessionKey(cfg pkgconfig.Config) ([]byte, error) {
	if cfg.GetString("session.key") == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		slog.Warn("session.key is not set, cookies will not survive a restart")
		return key, nil
	}

	key := cfg.GetBinary("session.key")
	if len(key) == 0 {
		return nil, errors.New("session.key is not valid base64")
	}
	return key, nil
}
