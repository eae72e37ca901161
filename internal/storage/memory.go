package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Simenb123/revy-actions/internal/model"
)

// MemoryStore is an in-memory Store used by demo mode and by tests of the
// layers above: the list engine is deliberately agnostic to whether the
// adapter speaks SQL or holds a map. The Fail* fields inject the next error
// for their operation so atomicity contracts can be exercised.
type MemoryStore struct {
	mu      sync.Mutex
	actions map[string]model.Action
	now     func() time.Time

	FailList    error
	FailStatus  error
	FailDelete  error
	FailReorder error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		actions: make(map[string]model.Action),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) ListActions(ctx context.Context, scopeID string) ([]model.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailList != nil {
		return nil, m.FailList
	}
	out := make([]model.Action, 0, len(m.actions))
	for _, a := range m.actions {
		if a.ScopeID == scopeID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetAction(ctx context.Context, id string) (model.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.actions[id]
	if !ok {
		return model.Action{}, ErrNotFound
	}
	return a, nil
}

func (m *MemoryStore) CreateAction(ctx context.Context, in model.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.actions[in.ID]; exists {
		return fmt.Errorf("%w: action %s already exists", ErrConflict, in.ID)
	}
	if in.UpdatedAt.IsZero() {
		in.UpdatedAt = in.CreatedAt
	}
	m.actions[in.ID] = in
	return nil
}

func (m *MemoryStore) UpdateAction(ctx context.Context, in model.Action) (model.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.actions[in.ID]
	if !ok {
		return model.Action{}, ErrNotFound
	}
	if !stored.UpdatedAt.Equal(in.UpdatedAt) {
		return model.Action{}, fmt.Errorf("%w: action %s", ErrConflict, in.ID)
	}
	in.UpdatedAt = m.now()
	m.actions[in.ID] = in
	return in, nil
}

func (m *MemoryStore) BulkUpdateStatus(ctx context.Context, ids []string, status model.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailStatus != nil {
		err := m.FailStatus
		m.FailStatus = nil
		return err
	}
	// All-or-nothing: verify the whole batch before touching anything.
	for _, id := range ids {
		if _, ok := m.actions[id]; !ok {
			return fmt.Errorf("%w: action %s", ErrNotFound, id)
		}
	}
	now := m.now()
	for _, id := range ids {
		a := m.actions[id]
		a.Status = status
		a.UpdatedAt = now
		m.actions[id] = a
	}
	return nil
}

func (m *MemoryStore) BulkDelete(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDelete != nil {
		err := m.FailDelete
		m.FailDelete = nil
		return err
	}
	for _, id := range ids {
		if _, ok := m.actions[id]; !ok {
			return fmt.Errorf("%w: action %s", ErrNotFound, id)
		}
	}
	for _, id := range ids {
		delete(m.actions, id)
	}
	return nil
}

func (m *MemoryStore) Reorder(ctx context.Context, scopeID string, updates []model.OrderUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReorder != nil {
		err := m.FailReorder
		m.FailReorder = nil
		return err
	}
	for _, u := range updates {
		a, ok := m.actions[u.ID]
		if !ok || a.ScopeID != scopeID {
			return fmt.Errorf("%w: action %s", ErrNotFound, u.ID)
		}
	}
	now := m.now()
	for _, u := range updates {
		a := m.actions[u.ID]
		a.SortOrder = u.SortOrder
		a.UpdatedAt = now
		m.actions[u.ID] = a
	}
	return nil
}
