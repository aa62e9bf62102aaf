package entity

// OutcomeEvent carries the result of one upload attempt back to the workspace
// that started it. Err is nil on success.
type OutcomeEvent struct {
	EventID     string
	WorkspaceID string
	AttemptID   int64
	Result      ExtractionResult
	Err         error
}

// Succeeded reports whether the attempt produced a result.
func (e OutcomeEvent) Succeeded() bool {
	return e.Err == nil
}
