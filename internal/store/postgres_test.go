package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-intel/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_SaveDraft(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO drafts`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Acme Corp", "company_research", "hot",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	saved, err := s.SaveDraft(context.Background(), "user-1", sampleDraft("Acme Corp", model.PriorityHot))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "user-1", saved.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetDraft(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	draftJSON := []byte(`{"subject":"Acme Corp","research_type":"company_research"}`)
	mock.ExpectQuery(`SELECT id, user_id, draft, created_at, updated_at FROM drafts WHERE id = \$1`).
		WithArgs("draft-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "draft", "created_at", "updated_at"}).
			AddRow("draft-1", "user-1", draftJSON, now, now))

	got, err := s.GetDraft(context.Background(), "draft-1")
	require.NoError(t, err)
	assert.Equal(t, "draft-1", got.ID)
	assert.Equal(t, "Acme Corp", got.Draft.Subject)
	assert.Equal(t, model.ResearchTypeCompany, got.Draft.ResearchType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetDraft_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, user_id, draft, created_at, updated_at FROM drafts WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetDraft(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListDrafts_Filtered(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, user_id, draft, created_at, updated_at FROM drafts WHERE 1=1 AND priority = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("hot", 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "draft", "created_at", "updated_at"}).
			AddRow("d1", "user-1", []byte(`{"subject":"Acme Corp"}`), now, now).
			AddRow("d2", "user-1", []byte(`{"subject":"Globex Industries"}`), now, now))

	got, err := s.ListDrafts(context.Background(), DraftFilter{Priority: model.PriorityHot, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme Corp", got[0].Draft.Subject)
	assert.Equal(t, "Globex Industries", got[1].Draft.Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveDrafts_BulkUpsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE "_tmp_upsert_drafts"`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_drafts"}, draftColumns).WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO "drafts"`).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	drafts := []model.ResearchDraft{
		sampleDraft("Acme Corp", model.PriorityHot),
		sampleDraft("Globex Industries", model.PriorityWarm),
	}
	stored, err := s.SaveDrafts(context.Background(), "user-1", drafts)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotEmpty(t, stored[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteDraft(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM drafts WHERE id = \$1`).
		WithArgs("draft-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, s.DeleteDraft(context.Background(), "draft-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteDraft_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM drafts WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.DeleteDraft(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
