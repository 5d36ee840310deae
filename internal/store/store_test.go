package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	st, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	defer st.Close()

	assert.IsType(t, &SQLiteStore{}, st)
}

func TestOpen_DefaultDriver(t *testing.T) {
	st, err := Open(context.Background(), "", filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	defer st.Close()

	assert.IsType(t, &SQLiteStore{}, st)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown driver "oracle"`)
}
