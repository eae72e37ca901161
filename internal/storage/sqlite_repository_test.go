package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Simenb123/revy-actions/internal/model"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "revy-actions-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	store, err := NewSQLiteStore(db, zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func seedActions(t *testing.T, store *SQLiteStore, scopeID string, ids ...string) {
	t.Helper()
	created := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	for i, id := range ids {
		a := model.Action{
			ID:          id,
			ScopeID:     scopeID,
			SortOrder:   i,
			Status:      model.StatusNotStarted,
			SubjectArea: "payroll",
			Name:        "Action " + id,
			CreatedAt:   created,
		}
		if err := store.CreateAction(context.Background(), a); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}
}

func listIDs(t *testing.T, store *SQLiteStore, scopeID string) []string {
	t.Helper()
	items, err := store.ListActions(context.Background(), scopeID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestActionCRUDAndOrdering(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	seedActions(t, store, "scope-1", "a", "b", "c")
	seedActions(t, store, "scope-2", "other")

	ids := listIDs(t, store, "scope-1")
	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Fatalf("unexpected scoped list order: %v", ids)
	}

	got, err := store.GetAction(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Action b" || got.SortOrder != 1 {
		t.Fatalf("unexpected action: %#v", got)
	}

	got.Name = "Renamed"
	got.Status = model.StatusInProgress
	updated, err := store.UpdateAction(ctx, got)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.UpdatedAt.Equal(got.UpdatedAt) {
		t.Fatal("update must advance updated_at")
	}

	reread, err := store.GetAction(ctx, "b")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if reread.Name != "Renamed" || reread.Status != model.StatusInProgress {
		t.Fatalf("update not persisted: %#v", reread)
	}

	if _, err := store.GetAction(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateActionConflictOnStaleVersion(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	seedActions(t, store, "scope-1", "a")

	first, err := store.GetAction(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	stale := first

	first.Name = "First writer"
	if _, err := store.UpdateAction(ctx, first); err != nil {
		t.Fatalf("first update: %v", err)
	}

	stale.Name = "Second writer"
	if _, err := store.UpdateAction(ctx, stale); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for stale update, got %v", err)
	}

	ghost := first
	ghost.ID = "ghost"
	if _, err := store.UpdateAction(ctx, ghost); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFieldSchemaRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	created := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	a := model.Action{
		ID:        "fields-1",
		ScopeID:   "scope-1",
		Status:    model.StatusNotStarted,
		Name:      "With schema",
		CreatedAt: created,
		Fields: []model.FieldDef{
			{ID: "conclusion", Label: "Conclusion", Kind: model.FieldLongText, Required: true},
			{ID: "standards", Label: "Standards", Kind: model.FieldMultiEnum, Options: []string{"ISA 315", "ISA 330"}},
			{ID: "reviewed", Label: "Reviewed", Kind: model.FieldBoolean, Required: true},
		},
		Values: map[string]model.FieldValue{
			"standards": model.ListValue("ISA 315"),
			"reviewed":  model.BoolValue(false),
		},
	}
	if err := store.CreateAction(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetAction(ctx, "fields-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Fields) != 3 || got.Fields[1].Options[1] != "ISA 330" {
		t.Fatalf("field schema did not round-trip: %#v", got.Fields)
	}
	if got.Values["reviewed"].Bool == nil || *got.Values["reviewed"].Bool != false {
		t.Fatalf("boolean value did not round-trip: %#v", got.Values)
	}
	if c := got.Completion(); c.Percentage != 50 {
		t.Fatalf("expected 50%% completion from stored values, got %d", c.Percentage)
	}
}

func TestBulkUpdateStatusAllOrNothing(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	seedActions(t, store, "scope-1", "a", "b")

	err := store.BulkUpdateStatus(ctx, []string{"a", "ghost", "b"}, model.StatusCompleted)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for batch with missing id, got %v", err)
	}

	items, listErr := store.ListActions(ctx, "scope-1")
	if listErr != nil {
		t.Fatalf("list: %v", listErr)
	}
	for _, it := range items {
		if it.Status != model.StatusNotStarted {
			t.Fatalf("failed batch must not leave partial updates: %s is %s", it.ID, it.Status)
		}
	}

	if err := store.BulkUpdateStatus(ctx, []string{"a", "b"}, model.StatusReviewed); err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	items, _ = store.ListActions(ctx, "scope-1")
	for _, it := range items {
		if it.Status != model.StatusReviewed {
			t.Fatalf("expected reviewed, got %s for %s", it.Status, it.ID)
		}
	}
}

func TestBulkDeleteAllOrNothing(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	seedActions(t, store, "scope-1", "a", "b", "c")

	if err := store.BulkDelete(ctx, []string{"a", "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if ids := listIDs(t, store, "scope-1"); len(ids) != 3 {
		t.Fatalf("failed batch must delete nothing, got %v", ids)
	}

	if err := store.BulkDelete(ctx, []string{"a", "c"}); err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if ids := listIDs(t, store, "scope-1"); len(ids) != 1 || ids[0] != "b" {
		t.Fatalf("unexpected remainder: %v", ids)
	}
}

func TestReorderPersistsFullPayload(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	seedActions(t, store, "scope-1", "a", "b", "c", "d")

	// Move d to the front: the gesture emits the full contiguous assignment.
	updates := []model.OrderUpdate{
		{ID: "d", SortOrder: 0},
		{ID: "a", SortOrder: 1},
		{ID: "b", SortOrder: 2},
		{ID: "c", SortOrder: 3},
	}
	if err := store.Reorder(ctx, "scope-1", updates); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if ids := listIDs(t, store, "scope-1"); ids[0] != "d" || ids[1] != "a" || ids[3] != "c" {
		t.Fatalf("unexpected order after reorder: %v", ids)
	}

	// A payload touching a foreign scope rolls back entirely.
	seedActions(t, store, "scope-2", "x")
	err := store.Reorder(ctx, "scope-1", []model.OrderUpdate{
		{ID: "d", SortOrder: 3},
		{ID: "x", SortOrder: 0},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-scope id, got %v", err)
	}
	if ids := listIDs(t, store, "scope-1"); ids[0] != "d" {
		t.Fatalf("failed reorder must not move anything, got %v", ids)
	}
}
