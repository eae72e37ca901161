package storage

import (
	"context"
	"errors"

	"github.com/Simenb123/revy-actions/internal/model"
)

var (
	ErrNotFound = errors.New("storage: not found")
	// ErrConflict means the caller's copy of the row is stale; callers
	// reconcile by refetching and accepting the stored value.
	ErrConflict = errors.New("storage: conflicting update")
)

// Store is the item store adapter the list engine talks to. All list
// operations are scoped to one scope id. Bulk operations are all-or-nothing:
// one failing id rolls the whole batch back. Reorder receives one full-list
// payload per drag gesture, never per-element writes.
type Store interface {
	ListActions(ctx context.Context, scopeID string) ([]model.Action, error)
	GetAction(ctx context.Context, id string) (model.Action, error)
	CreateAction(ctx context.Context, in model.Action) error
	UpdateAction(ctx context.Context, in model.Action) (model.Action, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status model.Status) error
	BulkDelete(ctx context.Context, ids []string) error
	Reorder(ctx context.Context, scopeID string, updates []model.OrderUpdate) error
}
