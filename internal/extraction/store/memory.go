package store

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/extractview/internal/extraction/usecase"
	"github.com/shandysiswandi/extractview/internal/pkg/pkgerror"
)

// InMemoryStore keeps workspaces in process memory. Each workspace has its
// own lock so browsers never wait on each other.
type InMemoryStore struct {
	mu         sync.RWMutex
	workspaces map[string]*workspaceRecord
}

type workspaceRecord struct {
	mu      sync.Mutex
	ws      *usecase.Workspace
	evicted bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		workspaces: make(map[string]*workspaceRecord),
	}
}

func (s *InMemoryStore) Create(ctx context.Context, ws *usecase.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.workspaces[ws.ID]; exists {
		return pkgerror.NewBusiness("workspace already exists", pkgerror.CodeConflict)
	}

	s.workspaces[ws.ID] = &workspaceRecord{ws: ws}

	return nil
}

// Update runs fn with the workspace locked. Errors from fn are returned as is.
func (s *InMemoryStore) Update(ctx context.Context, id string, fn func(ws *usecase.Workspace) error) error {
	rec, err := s.get(id)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.evicted {
		return pkgerror.ErrNotFound
	}

	return fn(rec.ws)
}

func (s *InMemoryStore) Evict(ctx context.Context, idleBefore time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, rec := range s.workspaces {
		rec.mu.Lock()
		if rec.ws.LastSeen.Before(idleBefore) {
			rec.ws.Close()
			rec.evicted = true
			delete(s.workspaces, id)
			n++
		}
		rec.mu.Unlock()
	}

	return n, nil
}

func (s *InMemoryStore) CloseAll(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.workspaces {
		rec.mu.Lock()
		rec.ws.Close()
		rec.mu.Unlock()
	}
}

// Len reports how many workspaces are live.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.workspaces)
}

func (s *InMemoryStore) get(id string) (*workspaceRecord, error) {
	s.mu.RLock()
	rec, ok := s.workspaces[id]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}
