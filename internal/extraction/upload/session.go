// Package upload tracks one browser's upload session: the picked file, the
// in-flight attempt and its outcome.
//
// A Session is not safe for concurrent use; the workspace store serializes
// access to it.
package upload

import (
	"context"
	"errors"

	"github.com/shandysiswandi/extractview/internal/extraction/entity"
)

// FailureMessage is the only error text a user ever sees.
const FailureMessage = "File upload failed"

var (
	ErrNoFile         = errors.New("no file selected")
	ErrUploadInFlight = errors.New("upload already in progress")
)

// Attempt is one submission. Ctx is cancelled when the attempt completes or
// the session is aborted.
type Attempt struct {
	ID   int64
	File entity.File
	Ctx  context.Context
}

// Snapshot is a read-only copy of the session.
type Snapshot struct {
	State     entity.UploadState `json:"state"`
	FileName  string             `json:"file_name,omitempty"`
	FileKind  entity.FileKind    `json:"file_kind,omitempty"`
	FileSize  int64              `json:"file_size,omitempty"`
	Error     string             `json:"error,omitempty"`
	AttemptID int64              `json:"attempt_id,omitempty"`
}

// Uploading reports whether an attempt is in flight.
func (s Snapshot) Uploading() bool {
	return s.State == entity.UploadStateUploading
}

type Session struct {
	state   entity.UploadState
	file    *entity.File
	errMsg  string
	result  *entity.ExtractionResult
	attempt int64
	cancel  context.CancelFunc
}

func NewSession() *Session {
	return &Session{state: entity.UploadStateIdle}
}

// SelectFile replaces the picked file and clears any prior error and result.
// The file is not validated.
func (s *Session) SelectFile(f entity.File) error {
	if s.state == entity.UploadStateUploading {
		return ErrUploadInFlight
	}

	s.file = &f
	s.state = entity.UploadStateFileSelected
	s.errMsg = ""
	s.result = nil
	return nil
}

// Begin moves the session to Uploading and hands out the attempt to run.
// The attempt context derives from parent.
func (s *Session) Begin(parent context.Context, attemptID int64) (Attempt, error) {
	if s.state == entity.UploadStateUploading {
		return Attempt{}, ErrUploadInFlight
	}
	if s.file == nil {
		return Attempt{}, ErrNoFile
	}

	ctx, cancel := context.WithCancel(parent)
	s.state = entity.UploadStateUploading
	s.errMsg = ""
	s.result = nil
	s.attempt = attemptID
	s.cancel = cancel

	return Attempt{ID: attemptID, File: *s.file, Ctx: ctx}, nil
}

// Complete records the outcome of attemptID. It returns false and changes
// nothing when the attempt is stale or was aborted.
func (s *Session) Complete(attemptID int64, result entity.ExtractionResult, err error) bool {
	if s.state != entity.UploadStateUploading || s.attempt != attemptID {
		return false
	}

	s.release()
	if err != nil {
		s.state = entity.UploadStateFailed
		s.errMsg = FailureMessage
		return true
	}

	result = result.Normalize()
	s.state = entity.UploadStateSucceeded
	s.result = &result
	return true
}

// TakeResult hands out a successful result once and drops the session's copy.
func (s *Session) TakeResult() (entity.ExtractionResult, bool) {
	if s.result == nil {
		return entity.ExtractionResult{}, false
	}
	res := *s.result
	s.result = nil
	return res, true
}

// Dismiss returns the session to Idle. It is refused while uploading.
func (s *Session) Dismiss() error {
	if s.state == entity.UploadStateUploading {
		return ErrUploadInFlight
	}
	s.reset()
	return nil
}

// Abort cancels any in-flight attempt and returns the session to Idle.
// A late outcome for the aborted attempt is discarded by Complete.
func (s *Session) Abort() {
	s.release()
	s.reset()
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:     s.state,
		Error:     s.errMsg,
		AttemptID: s.attempt,
	}
	if s.file != nil {
		snap.FileName = s.file.Name
		snap.FileKind = s.file.Kind()
		snap.FileSize = s.file.Size()
	}
	return snap
}

func (s *Session) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) reset() {
	s.state = entity.UploadStateIdle
	s.file = nil
	s.errMsg = ""
	s.result = nil
	s.attempt = 0
}
