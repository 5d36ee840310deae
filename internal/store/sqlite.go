package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/prospect-intel/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS drafts (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL DEFAULT '',
	subject       TEXT NOT NULL,
	research_type TEXT NOT NULL,
	priority      TEXT NOT NULL DEFAULT '',
	draft         TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_drafts_user_id ON drafts(user_id);
CREATE INDEX IF NOT EXISTS idx_drafts_research_type ON drafts(research_type);
CREATE INDEX IF NOT EXISTS idx_drafts_priority ON drafts(priority);
CREATE INDEX IF NOT EXISTS idx_drafts_created_at ON drafts(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveDraft(ctx context.Context, userID string, draft model.ResearchDraft) (*model.StoredDraft, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal draft")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO drafts (id, user_id, subject, research_type, priority, draft, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, draft.Subject, string(draft.ResearchType), string(draft.PriorityLevel),
		string(draftJSON), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert draft")
	}

	return &model.StoredDraft{
		ID:        id,
		UserID:    userID,
		Draft:     draft,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) SaveDrafts(ctx context.Context, userID string, drafts []model.ResearchDraft) ([]model.StoredDraft, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO drafts (id, user_id, subject, research_type, priority, draft, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	stored := make([]model.StoredDraft, 0, len(drafts))
	for _, draft := range drafts {
		draftJSON, err := json.Marshal(draft)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: marshal draft")
		}
		id := uuid.New().String()
		if _, err := stmt.ExecContext(ctx,
			id, userID, draft.Subject, string(draft.ResearchType), string(draft.PriorityLevel),
			string(draftJSON), now, now,
		); err != nil {
			return nil, eris.Wrapf(err, "sqlite: insert draft %s", draft.Subject)
		}
		stored = append(stored, model.StoredDraft{
			ID:        id,
			UserID:    userID,
			Draft:     draft,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit tx")
	}
	return stored, nil
}

func (s *SQLiteStore) GetDraft(ctx context.Context, id string) (*model.StoredDraft, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, draft, created_at, updated_at FROM drafts WHERE id = ?`,
		id,
	)

	sd, err := scanStoredDraft(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrDraftNotFound, "sqlite: get draft %s", id)
		}
		return nil, eris.Wrapf(err, "sqlite: get draft %s", id)
	}
	return sd, nil
}

func (s *SQLiteStore) ListDrafts(ctx context.Context, filter DraftFilter) ([]model.StoredDraft, error) {
	query := `SELECT id, user_id, draft, created_at, updated_at FROM drafts WHERE 1=1`
	var args []any

	if filter.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.ResearchType != "" {
		query += ` AND research_type = ?`
		args = append(args, string(filter.ResearchType))
	}
	if filter.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, string(filter.Priority))
	}
	if filter.Subject != "" {
		query += ` AND subject LIKE ?`
		args = append(args, "%"+filter.Subject+"%")
	}

	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list drafts")
	}
	defer rows.Close()

	var out []model.StoredDraft
	for rows.Next() {
		sd, err := scanStoredDraft(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan draft")
		}
		out = append(out, *sd)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list drafts")
}

func (s *SQLiteStore) DeleteDraft(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete draft %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrDraftNotFound, "sqlite: delete draft %s", id)
	}
	return nil
}

// scannable is satisfied by *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanStoredDraft(row scannable) (*model.StoredDraft, error) {
	var sd model.StoredDraft
	var draftJSON string

	if err := row.Scan(&sd.ID, &sd.UserID, &draftJSON, &sd.CreatedAt, &sd.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(draftJSON), &sd.Draft); err != nil {
		return nil, eris.Wrap(err, "unmarshal draft")
	}
	return &sd, nil
}
