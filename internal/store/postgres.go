package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-intel/internal/db"
	"github.com/sells-group/prospect-intel/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_draft": `INSERT INTO drafts (id, user_id, subject, research_type, priority, draft, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	"get_draft":    `SELECT id, user_id, draft, created_at, updated_at FROM drafts WHERE id = $1`,
	"delete_draft": `DELETE FROM drafts WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS drafts (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL DEFAULT '',
	subject       TEXT NOT NULL,
	research_type TEXT NOT NULL,
	priority      TEXT NOT NULL DEFAULT '',
	draft         JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_drafts_user_id ON drafts(user_id);
CREATE INDEX IF NOT EXISTS idx_drafts_research_type ON drafts(research_type);
CREATE INDEX IF NOT EXISTS idx_drafts_priority ON drafts(priority);
CREATE INDEX IF NOT EXISTS idx_drafts_created_at ON drafts(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveDraft(ctx context.Context, userID string, draft model.ResearchDraft) (*model.StoredDraft, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal draft")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO drafts (id, user_id, subject, research_type, priority, draft, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, userID, draft.Subject, string(draft.ResearchType), string(draft.PriorityLevel),
		string(draftJSON), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert draft")
	}

	return &model.StoredDraft{
		ID:        id,
		UserID:    userID,
		Draft:     draft,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// draftColumns is the column order used for bulk draft loads.
var draftColumns = []string{"id", "user_id", "subject", "research_type", "priority", "draft", "created_at", "updated_at"}

func (s *PostgresStore) SaveDrafts(ctx context.Context, userID string, drafts []model.ResearchDraft) ([]model.StoredDraft, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(drafts))
	stored := make([]model.StoredDraft, 0, len(drafts))
	for _, draft := range drafts {
		draftJSON, err := json.Marshal(draft)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: marshal draft")
		}
		id := uuid.New().String()
		rows = append(rows, []any{
			id, userID, draft.Subject, string(draft.ResearchType), string(draft.PriorityLevel),
			string(draftJSON), now, now,
		})
		stored = append(stored, model.StoredDraft{
			ID:        id,
			UserID:    userID,
			Draft:     draft,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if _, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "drafts",
		Columns:      draftColumns,
		ConflictKeys: []string{"id"},
	}, rows); err != nil {
		return nil, eris.Wrap(err, "postgres: bulk save drafts")
	}
	return stored, nil
}

func (s *PostgresStore) GetDraft(ctx context.Context, id string) (*model.StoredDraft, error) {
	var sd model.StoredDraft
	var draftJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, draft, created_at, updated_at FROM drafts WHERE id = $1`,
		id,
	).Scan(&sd.ID, &sd.UserID, &draftJSON, &sd.CreatedAt, &sd.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrDraftNotFound, "postgres: get draft %s", id)
		}
		return nil, eris.Wrapf(err, "postgres: get draft %s", id)
	}

	if err := json.Unmarshal(draftJSON, &sd.Draft); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal draft %s", id)
	}
	return &sd, nil
}

func (s *PostgresStore) ListDrafts(ctx context.Context, filter DraftFilter) ([]model.StoredDraft, error) {
	query := `SELECT id, user_id, draft, created_at, updated_at FROM drafts WHERE 1=1`
	var args []any

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	if filter.ResearchType != "" {
		args = append(args, string(filter.ResearchType))
		query += fmt.Sprintf(` AND research_type = $%d`, len(args))
	}
	if filter.Priority != "" {
		args = append(args, string(filter.Priority))
		query += fmt.Sprintf(` AND priority = $%d`, len(args))
	}
	if filter.Subject != "" {
		args = append(args, "%"+filter.Subject+"%")
		query += fmt.Sprintf(` AND subject ILIKE $%d`, len(args))
	}

	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list drafts")
	}
	defer rows.Close()

	var out []model.StoredDraft
	for rows.Next() {
		var sd model.StoredDraft
		var draftJSON []byte
		if err := rows.Scan(&sd.ID, &sd.UserID, &draftJSON, &sd.CreatedAt, &sd.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan draft")
		}
		if err := json.Unmarshal(draftJSON, &sd.Draft); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal draft")
		}
		out = append(out, sd)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list drafts")
}

func (s *PostgresStore) DeleteDraft(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete draft %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrDraftNotFound, "postgres: delete draft %s", id)
	}
	return nil
}
