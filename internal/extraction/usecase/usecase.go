package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"github.com/shandysiswandi/extractview/internal/extraction/shell"
	"github.com/shandysiswandi/extractview/internal/extraction/table"
	"github.com/shandysiswandi/extractview/internal/extraction/upload"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgerror"
	"github.com/shandysiswandi/extractview/internal/pkg/pkglog"
	"github.com/shandysiswandi/extractview/internal/pkg/pkguid"
)

var errRunnerStopped = errors.New("upload runner is not accepting work")

type Store interface {
	Create(ctx context.Context, ws *Workspace) error
	Update(ctx context.Context, id string, fn func(ws *Workspace) error) error
	// Evict removes workspaces last seen before idleBefore, closing each one.
	Evict(ctx context.Context, idleBefore time.Time) (int, error)
	// CloseAll closes every workspace without removing it.
	CloseAll(ctx context.Context)
}

type Extractor interface {
	Extract(ctx context.Context, f entity.File) (entity.ExtractionResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.OutcomeEvent) error
}

type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error) bool
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store     Store
	Extractor Extractor
	Events    EventPublisher
	Runner    Runner
	Clock     Clock
	ID        pkguid.StringID
	AttemptID pkguid.NumberID
	RootCtx   context.Context
}

type Usecase struct {
	store     Store
	extractor Extractor
	events    EventPublisher
	runner    Runner
	clock     Clock
	id        pkguid.StringID
	attemptID pkguid.NumberID
	rootCtx   context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Usecase{
		store:     dep.Store,
		extractor: dep.Extractor,
		events:    dep.Events,
		runner:    dep.Runner,
		clock:     clock,
		id:        dep.ID,
		attemptID: dep.AttemptID,
		rootCtx:   root,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Ensure returns id when it names a live workspace, or creates a new one.
func (u *Usecase) Ensure(ctx context.Context, id string) (string, error) {
	if id != "" {
		err := u.store.Update(ctx, id, func(ws *Workspace) error {
			ws.LastSeen = u.clock.Now()
			return nil
		})
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, pkgerror.ErrNotFound) {
			return "", normalizeErr(err)
		}
	}

	ws := NewWorkspace(u.id.Generate(), u.clock.Now())
	if err := u.store.Create(ctx, ws); err != nil {
		return "", normalizeErr(err)
	}

	slog.InfoContext(ctx, "workspace created", "workspace_id", ws.ID)
	return ws.ID, nil
}

func (u *Usecase) View(ctx context.Context, id string) (WorkspaceView, error) {
	var view WorkspaceView
	var active []entity.Record

	err := u.update(ctx, id, func(ws *Workspace) error {
		view = WorkspaceView{
			ID:         ws.ID,
			ActiveTab:  ws.Shell.ActiveTab,
			UploadOpen: ws.Shell.UploadOpen,
			Upload:     ws.Upload.Snapshot(),
			Counts:     ws.Shell.Records.Counts(),
		}
		active = ws.Shell.Active()
		return nil
	})
	if err != nil {
		return WorkspaceView{}, err
	}

	variant, _ := table.For(view.ActiveTab)
	view.Table = variant.Render(ctx, active)

	return view, nil
}

func (u *Usecase) SelectTab(ctx context.Context, id, key string) error {
	return u.update(ctx, id, func(ws *Workspace) error {
		next, err := ws.Shell.SelectTab(key)
		if err != nil {
			return err
		}
		ws.Shell = next
		return nil
	})
}

// OpenUpload shows the upload panel with a fresh session.
func (u *Usecase) OpenUpload(ctx context.Context, id string) error {
	return u.update(ctx, id, func(ws *Workspace) error {
		if ws.Shell.UploadOpen {
			return nil
		}
		if err := ws.Upload.Dismiss(); err != nil {
			return err
		}
		ws.Shell = ws.Shell.OpenUpload()
		return nil
	})
}

// CloseUpload dismisses the session and hides the panel. It is refused while
// an upload is in flight.
func (u *Usecase) CloseUpload(ctx context.Context, id string) error {
	return u.update(ctx, id, func(ws *Workspace) error {
		if err := ws.Upload.Dismiss(); err != nil {
			return err
		}
		ws.Shell = ws.Shell.CloseUpload()
		return nil
	})
}

func (u *Usecase) SelectFile(ctx context.Context, id string, f entity.File) error {
	return u.update(ctx, id, func(ws *Workspace) error {
		if err := ws.Upload.SelectFile(f); err != nil {
			return err
		}
		ws.Shell = ws.Shell.OpenUpload()
		slog.InfoContext(ctx, "file selected", "file_name", f.Name, "file_kind", f.Kind(), "size", f.Size())
		return nil
	})
}

// Submit starts one upload attempt in the background. The outcome comes back
// through the event bus and is applied by Deliver.
func (u *Usecase) Submit(ctx context.Context, id string) (SubmitResult, error) {
	if u.store == nil || u.extractor == nil || u.runner == nil || u.attemptID == nil {
		return SubmitResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	var att upload.Attempt
	err := u.update(ctx, id, func(ws *Workspace) error {
		var err error
		att, err = ws.Upload.Begin(u.rootCtx, u.attemptID.Generate())
		return err
	})
	if err != nil {
		return SubmitResult{}, err
	}

	slog.InfoContext(ctx, "upload started", "attempt_id", att.ID, "file_name", att.File.Name)

	started := u.runner.Go(u.rootCtx, func(context.Context) error {
		u.runAttempt(id, att)
		return nil
	})
	if !started {
		if err := u.Deliver(ctx, entity.OutcomeEvent{WorkspaceID: id, AttemptID: att.ID, Err: errRunnerStopped}); err != nil {
			return SubmitResult{}, normalizeErr(err)
		}
	}

	return SubmitResult{AttemptID: att.ID}, nil
}

func (u *Usecase) runAttempt(workspaceID string, att upload.Attempt) {
	ctx := pkglog.SetWorkspaceID(att.Ctx, workspaceID)

	result, err := u.extractor.Extract(ctx, att.File)
	event := entity.OutcomeEvent{
		EventID:     u.id.Generate(),
		WorkspaceID: workspaceID,
		AttemptID:   att.ID,
		Result:      result,
		Err:         err,
	}

	if u.events == nil {
		if err := u.Deliver(ctx, event); err != nil {
			slog.ErrorContext(ctx, "failed to deliver upload outcome", "attempt_id", att.ID, "error", err)
		}
		return
	}

	// att.Ctx may already be cancelled by an abort; the outcome still has to
	// reach the consumer so the session is settled or discarded there.
	if pubErr := u.events.Publish(context.WithoutCancel(ctx), event); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish upload outcome", "attempt_id", att.ID, "event_id", event.EventID, "error", pubErr)
	}
}

// Deliver applies one upload outcome to its workspace. Stale and aborted
// attempts are dropped; only successes reach the shell. Outcomes for evicted
// workspaces are dropped too; any other store error is returned so the
// consumer can retry.
func (u *Usecase) Deliver(ctx context.Context, event entity.OutcomeEvent) error {
	err := u.deliver(ctx, event)
	if errors.Is(err, pkgerror.ErrNotFound) {
		slog.WarnContext(ctx, "drop upload outcome for unknown workspace", "attempt_id", event.AttemptID, "event_id", event.EventID)
		return nil
	}
	return err
}

func (u *Usecase) deliver(ctx context.Context, event entity.OutcomeEvent) error {
	return u.store.Update(ctx, event.WorkspaceID, func(ws *Workspace) error {
		if !ws.Upload.Complete(event.AttemptID, event.Result, event.Err) {
			slog.InfoContext(ctx, "discard stale upload outcome", "attempt_id", event.AttemptID, "event_id", event.EventID)
			return nil
		}

		if event.Err != nil {
			slog.WarnContext(ctx, "upload failed", "attempt_id", event.AttemptID, "error", event.Err)
			return nil
		}

		if res, ok := ws.Upload.TakeResult(); ok {
			ws.Shell = ws.Shell.ApplyResult(res)
			slog.InfoContext(ctx, "upload succeeded", "attempt_id", event.AttemptID, "counts", res.Counts())
		}
		return nil
	})
}

func (u *Usecase) Table(ctx context.Context, id, key string) (table.View, error) {
	kind, err := entity.ParseKind(key)
	if err != nil {
		return table.View{}, pkgerror.NewInvalidInput(errors.Join(shell.ErrUnknownTab, err))
	}

	var records []entity.Record
	if err := u.update(ctx, id, func(ws *Workspace) error {
		records = ws.Shell.Records.Collection(kind)
		return nil
	}); err != nil {
		return table.View{}, err
	}

	variant, _ := table.For(kind)
	return variant.Render(ctx, records), nil
}

// Export writes the workspace's three collections as an xlsx workbook.
func (u *Usecase) Export(ctx context.Context, id string, w io.Writer) error {
	var records entity.ExtractionResult
	if err := u.update(ctx, id, func(ws *Workspace) error {
		records = ws.Shell.Records
		return nil
	}); err != nil {
		return err
	}

	if err := table.WriteWorkbook(ctx, w, records); err != nil {
		return pkgerror.NewServer(err)
	}
	return nil
}

// EvictIdle drops workspaces unseen for longer than ttl and aborts their uploads.
func (u *Usecase) EvictIdle(ctx context.Context, ttl time.Duration) (int, error) {
	n, err := u.store.Evict(ctx, u.clock.Now().Add(-ttl))
	if err != nil {
		return 0, normalizeErr(err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "evicted idle workspaces", "count", n)
	}
	return n, nil
}

// Close aborts every in-flight upload.
func (u *Usecase) Close(ctx context.Context) {
	u.store.CloseAll(ctx)
}

func (u *Usecase) update(ctx context.Context, id string, fn func(ws *Workspace) error) error {
	if id == "" {
		return pkgerror.NewInvalidInput(errors.New("workspace id is required"))
	}

	err := u.store.Update(ctx, id, func(ws *Workspace) error {
		ws.LastSeen = u.clock.Now()
		return fn(ws)
	})
	if err != nil {
		return mapErr(err)
	}
	return nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, pkgerror.ErrNotFound):
		return pkgerror.NewBusiness("workspace not found", pkgerror.CodeNotFound)
	case errors.Is(err, upload.ErrUploadInFlight):
		return pkgerror.NewConflict("upload already in progress", err)
	case errors.Is(err, upload.ErrNoFile):
		return pkgerror.NewInvalidInput(err)
	case errors.Is(err, shell.ErrUnknownTab):
		return pkgerror.NewInvalidInput(err)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}

// Sweep evicts idle workspaces every interval until ctx is done.
func (u *Usecase) Sweep(ctx context.Context, ttl, interval time.Duration) error {
	if ttl <= 0 || interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := u.EvictIdle(ctx, ttl); err != nil {
				slog.ErrorContext(ctx, "failed to evict idle workspaces", "error", err)
			}
		}
	}
}
