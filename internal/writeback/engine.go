// Package writeback persists reorder gestures without blocking the UI.
// A drag is fire-and-forget from the caller's perspective: the visual order
// changes immediately and a background loop settles the write. Payloads are
// serialized (one write at a time) and coalesced per scope, so a burst of
// drags results in one write of the latest full-list payload.
package writeback

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Simenb123/revy-actions/internal/model"
)

var ErrEmptyPayload = errors.New("writeback: empty reorder payload")

// ReorderStore is the slice of the item store adapter the engine needs.
type ReorderStore interface {
	Reorder(ctx context.Context, scopeID string, updates []model.OrderUpdate) error
}

// Result reports the outcome of one settled write. A failed write does not
// roll the visual order back; the caller surfaces the error and the next
// refetch reconciles against the store.
type Result struct {
	ScopeID    string
	Count      int
	Err        error
	FinishedAt time.Time
}

type payload struct {
	scopeID string
	updates []model.OrderUpdate
}

type Engine struct {
	store ReorderStore
	log   zerolog.Logger

	mu      sync.Mutex
	pending map[string]payload
	order   []string

	out       chan Result
	wakeup    chan struct{}
	stopCh    chan struct{}
	doneCh    chan struct{}
	started   bool
	stopped   bool
	dropped   uint64
	coalesced uint64
}

func NewEngine(store ReorderStore, log zerolog.Logger, bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		store:   store,
		log:     log,
		pending: make(map[string]payload),
		out:     make(chan Result, bufferSize),
		wakeup:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// C delivers settled write results. The channel is never closed while the
// engine runs; results are dropped (and counted) when the consumer lags.
func (e *Engine) C() <-chan Result {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Enqueue queues one full-list payload for a scope. A payload already
// pending for the same scope is replaced: only the latest gesture matters.
func (e *Engine) Enqueue(scopeID string, updates []model.OrderUpdate) error {
	if len(updates) == 0 {
		return ErrEmptyPayload
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("writeback: engine stopped")
	}
	if _, exists := e.pending[scopeID]; exists {
		atomic.AddUint64(&e.coalesced, 1)
	} else {
		e.order = append(e.order, scopeID)
	}
	cp := make([]model.OrderUpdate, len(updates))
	copy(cp, updates)
	e.pending[scopeID] = payload{scopeID: scopeID, updates: cp}
	e.signalWakeup()
	return nil
}

// Dropped counts results discarded because the consumer was slow.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

// Coalesced counts payloads replaced before they were written.
func (e *Engine) Coalesced() uint64 {
	return atomic.LoadUint64(&e.coalesced)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	for {
		p, ok := e.next()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		err := e.store.Reorder(context.Background(), p.scopeID, p.updates)
		if err != nil {
			e.log.Error().Err(err).Str("scope", p.scopeID).Int("count", len(p.updates)).Msg("reorder write failed")
		}
		res := Result{ScopeID: p.scopeID, Count: len(p.updates), Err: err, FinishedAt: time.Now().UTC()}
		select {
		case e.out <- res:
		default:
			atomic.AddUint64(&e.dropped, 1)
		}

		select {
		case <-e.stopCh:
			return
		default:
		}
	}
}

func (e *Engine) next() (payload, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.order) == 0 {
		return payload{}, false
	}
	scopeID := e.order[0]
	e.order = e.order[1:]
	p := e.pending[scopeID]
	delete(e.pending, scopeID)
	return p, true
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}
