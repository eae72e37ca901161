package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/Simenb123/revy-actions/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB, log zerolog.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteStore{db: db, log: log, now: func() time.Time { return time.Now().UTC() }}, nil
}

func OpenSQLite(path string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewSQLiteStore(db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStore) Migrate() error {
	return MigrateUp(s.db)
}

const actionColumns = `id, scope_id, sort_order, status, subject_area, name, description, fields_json, values_json, created_at, updated_at`

func (s *SQLiteStore) ListActions(ctx context.Context, scopeID string) ([]model.Action, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+actionColumns+`
		FROM actions WHERE scope_id = ?
		ORDER BY sort_order ASC, id ASC`, scopeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Action, 0)
	for rows.Next() {
		a, scanErr := scanAction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetAction(ctx context.Context, id string) (model.Action, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+actionColumns+`
		FROM actions WHERE id = ?`, id)
	a, err := scanAction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Action{}, ErrNotFound
		}
		return model.Action{}, err
	}
	return a, nil
}

func (s *SQLiteStore) CreateAction(ctx context.Context, in model.Action) error {
	r, err := rowFromAction(in)
	if err != nil {
		return err
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO actions (`+actionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ScopeID, r.SortOrder, r.Status, r.SubjectArea, r.Name, r.Description,
		r.FieldsJSON, r.ValuesJSON, mustTime(r.CreatedAt), mustTime(r.UpdatedAt),
	)
	return err
}

// UpdateAction writes every mutable column, guarded by the caller's
// updated_at as an optimistic version check. A stale caller gets ErrConflict
// and is expected to refetch; the stored value always wins.
func (s *SQLiteStore) UpdateAction(ctx context.Context, in model.Action) (model.Action, error) {
	r, err := rowFromAction(in)
	if err != nil {
		return model.Action{}, err
	}
	next := s.now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE actions
		SET sort_order = ?, status = ?, subject_area = ?, name = ?, description = ?,
		    fields_json = ?, values_json = ?, updated_at = ?
		WHERE id = ? AND updated_at = ?`,
		r.SortOrder, r.Status, r.SubjectArea, r.Name, r.Description,
		r.FieldsJSON, r.ValuesJSON, mustTime(next),
		r.ID, mustTime(r.UpdatedAt),
	)
	if err != nil {
		return model.Action{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Action{}, err
	}
	if affected == 0 {
		if _, getErr := s.GetAction(ctx, in.ID); getErr != nil {
			return model.Action{}, getErr
		}
		return model.Action{}, fmt.Errorf("%w: action %s", ErrConflict, in.ID)
	}
	in.UpdatedAt = next
	return in, nil
}

func (s *SQLiteStore) BulkUpdateStatus(ctx context.Context, ids []string, status model.Status) error {
	if len(ids) == 0 {
		return nil
	}
	now := mustTime(s.now())
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			res, execErr := tx.ExecContext(ctx,
				`UPDATE actions SET status = ?, updated_at = ? WHERE id = ?`,
				string(status), now, id)
			if execErr != nil {
				return execErr
			}
			if err := checkRowsAffected(res, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int("count", len(ids)).Str("status", string(status)).Msg("bulk status update rolled back")
		return err
	}
	return nil
}

func (s *SQLiteStore) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			res, execErr := tx.ExecContext(ctx, `DELETE FROM actions WHERE id = ?`, id)
			if execErr != nil {
				return execErr
			}
			if err := checkRowsAffected(res, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int("count", len(ids)).Msg("bulk delete rolled back")
		return err
	}
	return nil
}

func (s *SQLiteStore) Reorder(ctx context.Context, scopeID string, updates []model.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	now := mustTime(s.now())
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, u := range updates {
			res, execErr := tx.ExecContext(ctx,
				`UPDATE actions SET sort_order = ?, updated_at = ? WHERE id = ? AND scope_id = ?`,
				u.SortOrder, now, u.ID, scopeID)
			if execErr != nil {
				return execErr
			}
			if err := checkRowsAffected(res, u.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("scope", scopeID).Int("count", len(updates)).Msg("reorder rolled back")
		return err
	}
	return nil
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAction(s scanner) (model.Action, error) {
	var r actionRow
	var created, updated string
	if err := s.Scan(&r.ID, &r.ScopeID, &r.SortOrder, &r.Status, &r.SubjectArea,
		&r.Name, &r.Description, &r.FieldsJSON, &r.ValuesJSON, &created, &updated); err != nil {
		return model.Action{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Action{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return model.Action{}, err
	}
	r.CreatedAt = createdAt
	r.UpdatedAt = updatedAt
	return r.toAction()
}

func checkRowsAffected(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: action %s", ErrNotFound, id)
	}
	return nil
}
