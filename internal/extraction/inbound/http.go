package inbound

import (
	"context"
	"io"

	"github.com/gorilla/sessions"
	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"github.com/shandysiswandi/extractview/internal/extraction/table"
	"github.com/shandysiswandi/extractview/internal/extraction/usecase"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgrouter"
)

type uc interface {
	Ensure(ctx context.Context, id string) (string, error)
	View(ctx context.Context, id string) (usecase.WorkspaceView, error)
	SelectTab(ctx context.Context, id, key string) error
	OpenUpload(ctx context.Context, id string) error
	CloseUpload(ctx context.Context, id string) error
	SelectFile(ctx context.Context, id string, f entity.File) error
	Submit(ctx context.Context, id string) (usecase.SubmitResult, error)
	Table(ctx context.Context, id, key string) (table.View, error)
	Export(ctx context.Context, id string, w io.Writer) error
}

type Options struct {
	Sessions    sessions.Store
	SessionName string
	// MaxFileBytes caps how much of an uploaded file is held in memory.
	MaxFileBytes int64
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, opts Options) {
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = DefaultMaxFileBytes
	}
	if opts.SessionName == "" {
		opts.SessionName = DefaultSessionName
	}

	end := &HTTPEndpoint{uc: uc, maxFileBytes: opts.MaxFileBytes}
	ws := middlewareWorkspace(uc, opts.Sessions, opts.SessionName)

	r.GET("/", end.Page, ws)
	r.POST("/tabs/:tab", end.SelectTab, ws)
	r.POST("/upload/open", end.OpenUpload, ws)
	r.POST("/upload/close", end.CloseUpload, ws)
	r.POST("/upload/file", end.SelectFile, ws)
	r.POST("/upload/submit", end.Submit, ws)
	r.GET("/export.xlsx", end.Export, ws)

	r.GET("/api/workspace", end.Workspace, ws)
	r.GET("/api/tables/:tab", end.Table, ws)
}
