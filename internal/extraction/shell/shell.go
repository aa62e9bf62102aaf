// Package shell holds the page-level state of one workspace: the active tab,
// the three record collections and whether the upload panel is open.
//
// State is a value. Every operation returns a new State and never mutates the
// receiver, so callers decide when a change is committed.
package shell

import (
	"errors"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
)

// ErrUnknownTab is returned when a tab key names no collection.
var ErrUnknownTab = errors.New("unknown tab")

// State is the shell's full state.
type State struct {
	ActiveTab  entity.Kind
	UploadOpen bool
	Records    entity.ExtractionResult
}

// New returns the initial state: invoices tab, empty collections, panel closed.
func New() State {
	return State{
		ActiveTab: entity.KindInvoices,
		Records:   entity.ExtractionResult{}.Normalize(),
	}
}

// SelectTab switches the active tab. Collections are left untouched.
func (s State) SelectTab(key string) (State, error) {
	kind, err := entity.ParseKind(key)
	if err != nil {
		return s, errors.Join(ErrUnknownTab, err)
	}
	s.ActiveTab = kind
	return s, nil
}

// ApplyResult replaces all three collections and closes the upload panel.
// Absent collections become empty.
func (s State) ApplyResult(result entity.ExtractionResult) State {
	s.Records = result.Normalize()
	s.UploadOpen = false
	return s
}

// OpenUpload shows the upload panel.
func (s State) OpenUpload() State {
	s.UploadOpen = true
	return s
}

// CloseUpload hides the upload panel.
func (s State) CloseUpload() State {
	s.UploadOpen = false
	return s
}

// Active returns the collection shown by the active tab.
func (s State) Active() []entity.Record {
	return s.Records.Collection(s.ActiveTab)
}
