package sqlstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dreamhouse/pkg/store"
	"github.com/matzehuels/dreamhouse/pkg/store/storetest"
)

func TestSQLiteContract(t *testing.T) {
	s, err := Open(context.Background(), store.BackendSQLite, filepath.Join(t.TempDir(), "db", "designs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	assert.Equal(t, store.BackendSQLite, s.Backend())

	storetest.Run(t, s)
}

func TestSQLiteReopenKeepsDesigns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "designs.db")

	s, err := Open(ctx, store.BackendSQLite, path)
	require.NoError(t, err)
	id, err := s.Save(ctx, store.Design{Name: "Kept"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, store.BackendSQLite, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Name)
}

func TestPostgresContract(t *testing.T) {
	dsn := os.Getenv("DREAMHOUSE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("DREAMHOUSE_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, store.BackendPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	_, err = s.db.ExecContext(ctx, `TRUNCATE designs RESTART IDENTITY`)
	require.NoError(t, err)

	storetest.Run(t, s)
}

func TestDialects(t *testing.T) {
	d, err := dialectFor("")
	require.NoError(t, err)
	assert.Equal(t, "?, ?", d.binds(2))

	d, err = dialectFor("pg")
	require.NoError(t, err)
	assert.Equal(t, "$1, $2, $3", d.binds(3))

	_, err = dialectFor("oracle")
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 1500, time.UTC)
	got, err := parseTime(sqlite.encodeTime(now))
	require.NoError(t, err)
	assert.True(t, now.Equal(got))

	got, err = parseTime([]byte(now.Format(timeLayout)))
	require.NoError(t, err)
	assert.True(t, now.Equal(got))

	_, err = parseTime(42)
	assert.Error(t, err)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), store.BackendSQLite, "")
	assert.Error(t, err)
}
