package writeback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Simenb123/revy-actions/internal/model"
)

type recordingStore struct {
	mu      sync.Mutex
	calls   []string
	last    map[string][]model.OrderUpdate
	entered chan struct{}
	release chan struct{}
	failFor map[string]error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		last:    make(map[string][]model.OrderUpdate),
		failFor: make(map[string]error),
	}
}

func (r *recordingStore) Reorder(ctx context.Context, scopeID string, updates []model.OrderUpdate) error {
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, scopeID)
	r.last[scopeID] = updates
	return r.failFor[scopeID]
}

func (r *recordingStore) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func waitResult(t *testing.T, ch <-chan Result, timeout time.Duration) Result {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for writeback result")
		return Result{}
	}
}

func TestEngineWritesAndReports(t *testing.T) {
	store := newRecordingStore()
	engine := NewEngine(store, zerolog.Nop(), 8)
	engine.Start()
	defer engine.Stop()

	updates := []model.OrderUpdate{{ID: "b", SortOrder: 0}, {ID: "a", SortOrder: 1}}
	if err := engine.Enqueue("scope-1", updates); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	res := waitResult(t, engine.C(), time.Second)
	if res.Err != nil || res.ScopeID != "scope-1" || res.Count != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if store.callCount() != 1 {
		t.Fatalf("expected one write, got %d", store.callCount())
	}
}

func TestEngineCoalescesPerScope(t *testing.T) {
	store := newRecordingStore()
	store.entered = make(chan struct{}, 4)
	store.release = make(chan struct{})
	engine := NewEngine(store, zerolog.Nop(), 8)
	engine.Start()
	defer engine.Stop()

	// The first payload is held inside the store while two more for the same
	// scope arrive; they must collapse into one write of the latest payload.
	_ = engine.Enqueue("scope-1", []model.OrderUpdate{{ID: "v1", SortOrder: 0}})
	<-store.entered
	_ = engine.Enqueue("scope-1", []model.OrderUpdate{{ID: "v2", SortOrder: 0}})
	_ = engine.Enqueue("scope-1", []model.OrderUpdate{{ID: "v3", SortOrder: 0}})
	store.release <- struct{}{}
	waitResult(t, engine.C(), time.Second)

	<-store.entered
	store.release <- struct{}{}
	waitResult(t, engine.C(), time.Second)

	store.mu.Lock()
	last := store.last["scope-1"]
	calls := len(store.calls)
	store.mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected two writes, got %d", calls)
	}
	if len(last) != 1 || last[0].ID != "v3" {
		t.Fatalf("expected latest payload v3 to win, got %+v", last)
	}
	if engine.Coalesced() != 1 {
		t.Fatalf("expected one coalesced payload, got %d", engine.Coalesced())
	}
}

func TestEngineFailureIsReportedNotRetried(t *testing.T) {
	store := newRecordingStore()
	store.failFor["scope-1"] = errors.New("network down")
	engine := NewEngine(store, zerolog.Nop(), 8)
	engine.Start()
	defer engine.Stop()

	_ = engine.Enqueue("scope-1", []model.OrderUpdate{{ID: "a", SortOrder: 0}})
	res := waitResult(t, engine.C(), time.Second)
	if res.Err == nil {
		t.Fatal("expected failure to surface in the result")
	}

	// No retry policy lives here; one enqueue is one write.
	time.Sleep(50 * time.Millisecond)
	if store.callCount() != 1 {
		t.Fatalf("expected exactly one attempt, got %d", store.callCount())
	}
}

func TestEnqueueValidatesPayload(t *testing.T) {
	engine := NewEngine(newRecordingStore(), zerolog.Nop(), 1)
	if err := engine.Enqueue("scope-1", nil); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestEnqueueAfterStopFails(t *testing.T) {
	engine := NewEngine(newRecordingStore(), zerolog.Nop(), 1)
	engine.Start()
	engine.Stop()
	if err := engine.Enqueue("scope-1", []model.OrderUpdate{{ID: "a"}}); err == nil {
		t.Fatal("expected error after stop")
	}
}
