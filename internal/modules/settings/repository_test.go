package settings

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsSchema = `
CREATE TABLE settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	description TEXT,
	updated_at INTEGER NOT NULL
);
`

func newMemoryRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Each connection of :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(settingsSchema)
	require.NoError(t, err)

	return NewRepository(db, zerolog.Nop())
}

func TestRepository_GetMissing(t *testing.T) {
	repo := newMemoryRepository(t)

	value, err := repo.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestRepository_SetAndGet(t *testing.T) {
	repo := newMemoryRepository(t)

	require.NoError(t, repo.Set("a", "1", nil))
	description := "first"
	require.NoError(t, repo.Set("a", "2", &description))

	value, err := repo.Get("a")
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, "2", *value)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "2"}, all)
}

func TestRepository_GetBool(t *testing.T) {
	repo := newMemoryRepository(t)

	tests := []struct {
		stored string
		want   bool
	}{
		{"true", true},
		{"1", true},
		{"YES", true},
		{"on", true},
		{"false", false},
		{"0", false},
		{"whatever", false},
	}

	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			require.NoError(t, repo.Set("flag", tt.stored, nil))
			got, err := repo.GetBool("flag", !tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("default when missing", func(t *testing.T) {
		got, err := repo.GetBool("absent", true)
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestRepository_SetBool(t *testing.T) {
	repo := newMemoryRepository(t)

	require.NoError(t, repo.SetBool("flag", true))
	value, err := repo.Get("flag")
	require.NoError(t, err)
	assert.Equal(t, "true", *value)

	require.NoError(t, repo.SetBool("flag", false))
	got, err := repo.GetBool("flag", true)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestRepository_Delete(t *testing.T) {
	repo := newMemoryRepository(t)

	require.NoError(t, repo.Set("a", "1", nil))
	require.NoError(t, repo.Set("b", "1", nil))
	require.NoError(t, repo.Set("c", "1", nil))

	require.NoError(t, repo.Delete("a"))
	require.NoError(t, repo.Delete("a"))
	require.NoError(t, repo.DeleteAll([]string{"b", "missing"}))

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"c": "1"}, all)
}
