// Package store persists validated research drafts behind a small
// driver-agnostic interface.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-intel/internal/model"
)

// ErrDraftNotFound is returned when no stored draft matches the requested ID.
var ErrDraftNotFound = eris.New("store: draft not found")

// DraftFilter specifies criteria for listing drafts.
type DraftFilter struct {
	UserID       string              `json:"user_id,omitempty"`
	ResearchType model.ResearchType  `json:"research_type,omitempty"`
	Priority     model.PriorityLevel `json:"priority,omitempty"`
	Subject      string              `json:"subject,omitempty"` // substring match
	Limit        int                 `json:"limit,omitempty"`
	Offset       int                 `json:"offset,omitempty"`
}

// Store defines the persistence interface for research drafts.
type Store interface {
	SaveDraft(ctx context.Context, userID string, draft model.ResearchDraft) (*model.StoredDraft, error)
	SaveDrafts(ctx context.Context, userID string, drafts []model.ResearchDraft) ([]model.StoredDraft, error)
	GetDraft(ctx context.Context, id string) (*model.StoredDraft, error)
	ListDrafts(ctx context.Context, filter DraftFilter) ([]model.StoredDraft, error)
	DeleteDraft(ctx context.Context, id string) error

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

// Open returns the Store implementation selected by driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "sqlite":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
