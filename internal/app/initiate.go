package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgmetric"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/extractview/internal/pkg/pkguid"
)

//nolint:gochecknoglobals // fallback values for keys missing from the config file
var defaults = map[string]any{
	"tz":                                "UTC",
	"server.address.http":               ":8080",
	"modules.extraction.enabled":        true,
	"extraction.endpoint":               "http://localhost:8000/upload/",
	"extraction.rate_per_second":        0,
	"extraction.rate_burst":             1,
	"extraction.max_file_bytes":         32 << 20,
	"extraction.workspace_ttl_seconds":  3600,
	"extraction.sweep_interval_seconds": 60,
	"session.name":                      "extractview",
	"session.secure":                    false,
	"event.buffer":                      512,
	"event.workers":                     4,
}

func (a *App) initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path, defaults)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()
	a.metrics = pkgmetric.NewRegistry()

	sf, err := pkguid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = sf
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)
	a.router.Handle(http.MethodGet, "/metrics", a.metrics.Handler())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
