package list

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Simenb123/revy-actions/internal/model"
)

var (
	// ErrBulkInFlight is returned while a previous bulk mutation of the same
	// kind has not settled; the UI disables the action instead of queueing.
	ErrBulkInFlight = errors.New("list: bulk mutation already in flight")
	// ErrDeleteNotConfirmed is returned when a bulk delete is attempted
	// without the confirmation dialog having been accepted.
	ErrDeleteNotConfirmed = errors.New("list: bulk delete requires confirmation")
	// ErrNothingSelected is returned for bulk calls with an empty id set.
	ErrNothingSelected = errors.New("list: no items selected")
)

// IncompleteError vetoes a bulk transition to completed: every named item
// still has unfilled required fields. The whole batch is refused.
type IncompleteError struct {
	IDs []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("list: %d item(s) have unfilled required fields: %s", len(e.IDs), strings.Join(e.IDs, ", "))
}

// BulkStore is the slice of the item store adapter the coordinator needs.
// The adapter decides atomicity; one bulk call is one request and the
// coordinator models no partial success.
type BulkStore interface {
	BulkUpdateStatus(ctx context.Context, ids []string, status model.Status) error
	BulkDelete(ctx context.Context, ids []string) error
}

type MutationKind int

const (
	MutationStatus MutationKind = iota
	MutationDelete
)

// Coordinator submits bulk mutations to the store adapter. It never touches
// the Selection or the item slice: Apply calls run on worker goroutines while
// the event loop owns that state, so the caller reconciles the selection on
// its own goroutine once the result message arrives (success removes the
// mutated ids, failure keeps the selection so the user can retry without
// re-selecting). One in-flight flag per mutation kind prevents duplicate
// submissions; there is no queue and no timeout, so a hung request keeps its
// kind disabled.
type Coordinator struct {
	store BulkStore

	mu       sync.Mutex
	inFlight map[MutationKind]bool
	armed    bool
}

func NewCoordinator(store BulkStore) *Coordinator {
	return &Coordinator{
		store:    store,
		inFlight: make(map[MutationKind]bool),
	}
}

func (c *Coordinator) begin(kind MutationKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[kind] {
		return false
	}
	c.inFlight[kind] = true
	return true
}

func (c *Coordinator) end(kind MutationKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, kind)
}

// InFlight reports whether a mutation of the given kind is unsettled.
func (c *Coordinator) InFlight(kind MutationKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[kind]
}

// ArmDelete opens the confirmation gate for the next ApplyDelete call.
func (c *Coordinator) ArmDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed = true
}

// DisarmDelete closes the confirmation gate (dialog dismissed).
func (c *Coordinator) DisarmDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed = false
}

// DeleteArmed reports whether the confirmation dialog has been accepted.
func (c *Coordinator) DeleteArmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// GateCompleted vetoes a bulk transition to completed while any target item
// still has unfilled required fields; the whole batch is refused with an
// IncompleteError. Every other status passes. The check reads the live item
// slice, so it must run on the goroutine that owns it, before the batch is
// handed to a worker.
func GateCompleted(items []model.Action, ids []string, status model.Status) error {
	if status != model.StatusCompleted {
		return nil
	}
	if blocked := incompleteIDs(items, ids); len(blocked) > 0 {
		return &IncompleteError{IDs: blocked}
	}
	return nil
}

// ApplyStatus sets status on every id in one adapter call. On failure nothing
// in the store changes; the caller keeps its selection either way until the
// result is reconciled on the owning goroutine.
func (c *Coordinator) ApplyStatus(ctx context.Context, ids []string, status model.Status) error {
	if len(ids) == 0 {
		return ErrNothingSelected
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	if !c.begin(MutationStatus) {
		return ErrBulkInFlight
	}
	defer c.end(MutationStatus)

	return c.store.BulkUpdateStatus(ctx, ids, status)
}

// ApplyDelete removes every id in one adapter call. The confirmation gate
// must have been armed first; it is closed again on success, before
// ApplyDelete returns.
func (c *Coordinator) ApplyDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return ErrNothingSelected
	}
	if !c.DeleteArmed() {
		return ErrDeleteNotConfirmed
	}
	if !c.begin(MutationDelete) {
		return ErrBulkInFlight
	}
	defer c.end(MutationDelete)

	if err := c.store.BulkDelete(ctx, ids); err != nil {
		return err
	}
	c.DisarmDelete()
	return nil
}

func incompleteIDs(items []model.Action, ids []string) []string {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	blocked := make([]string, 0)
	for _, it := range items {
		if !want[it.ID] {
			continue
		}
		if !it.Completion().Complete() {
			blocked = append(blocked, it.ID)
		}
	}
	sort.Strings(blocked)
	return blocked
}
