package usecase

import (
	"time"

	"github.com/shandysiswandi/extractview/internal/extraction/shell"
	"github.com/shandysiswandi/extractview/internal/extraction/upload"
)

// Workspace is everything one browser sees: the shell state and its upload
// session. The store serializes access to it.
type Workspace struct {
	ID       string
	Shell    shell.State
	Upload   *upload.Session
	LastSeen time.Time
}

func NewWorkspace(id string, now time.Time) *Workspace {
	return &Workspace{
		ID:       id,
		Shell:    shell.New(),
		Upload:   upload.NewSession(),
		LastSeen: now,
	}
}

// Close aborts any in-flight upload.
func (w *Workspace) Close() {
	w.Upload.Abort()
}
