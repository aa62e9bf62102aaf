package usecase

import (
	"github.com/shandysiswandi/extractview/internal/extraction/entity"
	"github.com/shandysiswandi/extractview/internal/extraction/table"
	"github.com/shandysiswandi/extractview/internal/extraction/upload"
)

type WorkspaceView struct {
	ID         string
	ActiveTab  entity.Kind
	UploadOpen bool
	Upload     upload.Snapshot
	Counts     map[entity.Kind]int
	Table      table.View
}

type SubmitResult struct {
	AttemptID int64
}
