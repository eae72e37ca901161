package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// migration is one ordered schema step with its rollback. The version comes
// from the numeric filename prefix (0001_actions.up.sql).
type migration struct {
	version int
	name    string
	up      string
	down    string
}

// MigrateUp applies every schema step newer than the database's recorded
// version, bumping user_version per step so a second run is a no-op.
func MigrateUp(db *sql.DB) error {
	steps, err := loadMigrations()
	if err != nil {
		return err
	}
	current, err := schemaVersion(db)
	if err != nil {
		return err
	}
	for _, step := range steps {
		if step.version <= current {
			continue
		}
		if err := applyStep(db, step.name, step.up, step.version); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown rolls back the most recent applied step only. Repeated calls
// walk the schema back one version at a time.
func MigrateDown(db *sql.DB) error {
	steps, err := loadMigrations()
	if err != nil {
		return err
	}
	current, err := schemaVersion(db)
	if err != nil {
		return err
	}
	for i := len(steps) - 1; i >= 0; i-- {
		if steps[i].version == current {
			return applyStep(db, steps[i].name, steps[i].down, current-1)
		}
	}
	return nil
}

// applyStep runs one migration script and records the resulting version in
// the same transaction. PRAGMA takes no placeholders, so the version is
// formatted in; it is always an int under our control.
func applyStep(db *sql.DB, name, script string, toVersion int) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	if _, err := tx.Exec(script); err != nil {
		tx.Rollback()
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", toVersion)); err != nil {
		tx.Rollback()
		return fmt.Errorf("record version for %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", name, err)
	}
	return nil
}

func schemaVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

func loadMigrations() ([]migration, error) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(ups)

	steps := make([]migration, 0, len(ups))
	for _, upPath := range ups {
		base := strings.TrimSuffix(strings.TrimPrefix(upPath, "migrations/"), ".up.sql")
		prefix, _, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: missing version prefix", upPath)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version prefix: %w", upPath, err)
		}
		up, err := migrationFiles.ReadFile(upPath)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", upPath, err)
		}
		down, err := migrationFiles.ReadFile("migrations/" + base + ".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %s has no rollback: %w", upPath, err)
		}
		steps = append(steps, migration{
			version: version,
			name:    base,
			up:      string(up),
			down:    string(down),
		})
	}
	return steps, nil
}
