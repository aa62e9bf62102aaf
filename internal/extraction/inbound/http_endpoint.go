package inbound

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgerror"
	"github.com/shandysiswandi/extractview/internal/pkg/pkglog"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgrouter"
)

//nolint:gochecknoglobals // fixed redirect target
var home = pkgrouter.Redirect{Location: "/"}

type HTTPEndpoint struct {
	uc           uc
	maxFileBytes int64
}

func (h *HTTPEndpoint) Page(ctx context.Context, r *http.Request) (any, error) {
	view, err := h.uc.View(ctx, pkglog.GetWorkspaceID(ctx))
	if err != nil {
		return nil, err
	}

	return newPage(view)
}

func (h *HTTPEndpoint) SelectTab(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.SelectTab(ctx, pkglog.GetWorkspaceID(ctx), pkgrouter.GetParam(ctx, "tab")); err != nil {
		return nil, err
	}
	return home, nil
}

func (h *HTTPEndpoint) OpenUpload(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.OpenUpload(ctx, pkglog.GetWorkspaceID(ctx)); err != nil {
		return nil, err
	}
	return home, nil
}

func (h *HTTPEndpoint) CloseUpload(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.CloseUpload(ctx, pkglog.GetWorkspaceID(ctx)); err != nil {
		return nil, err
	}
	return home, nil
}

func (h *HTTPEndpoint) SelectFile(ctx context.Context, r *http.Request) (any, error) {
	file, err := h.readFile(r)
	if err != nil {
		return nil, err
	}

	if err := h.uc.SelectFile(ctx, pkglog.GetWorkspaceID(ctx), file); err != nil {
		return nil, err
	}
	return home, nil
}

func (h *HTTPEndpoint) Submit(ctx context.Context, r *http.Request) (any, error) {
	if _, err := h.uc.Submit(ctx, pkglog.GetWorkspaceID(ctx)); err != nil {
		return nil, err
	}
	return home, nil
}

func (h *HTTPEndpoint) Export(ctx context.Context, r *http.Request) (any, error) {
	var buf bytes.Buffer
	if err := h.uc.Export(ctx, pkglog.GetWorkspaceID(ctx), &buf); err != nil {
		return nil, err
	}
	return WorkbookResponse{data: buf.Bytes()}, nil
}

func (h *HTTPEndpoint) Workspace(ctx context.Context, r *http.Request) (any, error) {
	view, err := h.uc.View(ctx, pkglog.GetWorkspaceID(ctx))
	if err != nil {
		return nil, err
	}

	return WorkspaceResponse{
		WorkspaceID: view.ID,
		ActiveTab:   view.ActiveTab,
		UploadOpen:  view.UploadOpen,
		Upload:      view.Upload,
		Counts:      view.Counts,
	}, nil
}

func (h *HTTPEndpoint) Table(ctx context.Context, r *http.Request) (any, error) {
	view, err := h.uc.Table(ctx, pkglog.GetWorkspaceID(ctx), pkgrouter.GetParam(ctx, "tab"))
	if err != nil {
		return nil, err
	}
	return TableResponse{View: view}, nil
}

// readFile pulls the first "file" part out of a multipart body.
func (h *HTTPEndpoint) readFile(r *http.Request) (entity.File, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.EqualFold(mediaType, "multipart/form-data") {
		return entity.File{}, pkgerror.NewInvalidFormat()
	}

	reader, err := r.MultipartReader()
	if err != nil {
		return entity.File{}, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return entity.File{}, pkgerror.NewInvalidInput(errors.New("file part is required"))
			}
			return entity.File{}, pkgerror.NewInvalidFormat()
		}

		if part.FormName() != "file" {
			_ = part.Close()
			continue
		}

		name := part.FileName()
		if name == "" {
			_ = part.Close()
			return entity.File{}, pkgerror.NewInvalidInput(errors.New("no file chosen"))
		}

		data, err := io.ReadAll(io.LimitReader(part, h.maxFileBytes+1))
		_ = part.Close()
		if err != nil {
			return entity.File{}, pkgerror.NewInvalidFormat()
		}
		if int64(len(data)) > h.maxFileBytes {
			return entity.File{}, pkgerror.NewInvalidInput(fmt.Errorf("file exceeds %d bytes", h.maxFileBytes))
		}

		return entity.File{
			Name:        name,
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		}, nil
	}
}
