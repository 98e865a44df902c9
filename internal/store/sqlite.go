package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Ag-Linings/requirement-specifications/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists extraction results in a single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path and applies the
// schema.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// migrate applies the schema. Statements are idempotent.
func (s *SQLiteStore) migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS refinements (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS requirements (
			id TEXT PRIMARY KEY,
			refinement_id TEXT NOT NULL REFERENCES refinements(id),
			position INTEGER NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			user_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_requirements_user ON requirements(user_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Save stores the result in one transaction and returns it with authoritative
// UUID ids in place of the provisional REQ-n ones.
func (s *SQLiteStore) Save(ctx context.Context, result model.ExtractionResult, userID string) (model.ExtractionResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("%w: begin: %v", ErrStore, err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	refinementID := uuid.NewString()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO refinements (id, user_id, summary, source, created_at) VALUES (?, ?, ?, ?, ?)`,
		refinementID, userID, result.Summary, result.Source, now,
	)
	if err != nil {
		return result, fmt.Errorf("%w: insert refinement: %v", ErrStore, err)
	}

	saved := result
	saved.Requirements = make([]model.Requirement, len(result.Requirements))
	copy(saved.Requirements, result.Requirements)

	for i := range saved.Requirements {
		saved.Requirements[i].ID = uuid.NewString()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO requirements (id, refinement_id, position, description, category, user_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			saved.Requirements[i].ID, refinementID, i,
			saved.Requirements[i].Description, string(saved.Requirements[i].Category), userID, now,
		)
		if err != nil {
			return result, fmt.Errorf("%w: insert requirement: %v", ErrStore, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("%w: commit: %v", ErrStore, err)
	}
	return saved, nil
}

// ListByUser returns saved requirements for a user, newest first, ordered by
// position within each refinement.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]model.Requirement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, category FROM requirements
		 WHERE user_id = ?
		 ORDER BY created_at DESC, position ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query requirements: %v", ErrStore, err)
	}
	defer func() { _ = rows.Close() }()

	var reqs []model.Requirement
	for rows.Next() {
		var req model.Requirement
		var category string
		if err := rows.Scan(&req.ID, &req.Description, &category); err != nil {
			return nil, fmt.Errorf("%w: scan requirement: %v", ErrStore, err)
		}
		req.Category = model.Category(category)
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate requirements: %v", ErrStore, err)
	}
	return reqs, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
