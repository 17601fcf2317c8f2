package sqlstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/store"
)

// timeLayout is fixed width so SQLite text timestamps sort correctly.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type dialect struct {
	name   string
	driver string
	schema string
	bind   func(n int) string
	// encodeTime converts a timestamp into the driver value for created_at.
	encodeTime func(time.Time) any
}

var sqlite = dialect{
	name:   store.BackendSQLite,
	driver: "sqlite3",
	schema: `
CREATE TABLE IF NOT EXISTS designs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  prompt TEXT NOT NULL DEFAULT '',
  data TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_designs_created_at ON designs (created_at);
`,
	bind:       func(int) string { return "?" },
	encodeTime: func(t time.Time) any { return t.UTC().Format(timeLayout) },
}

var postgres = dialect{
	name:   store.BackendPostgres,
	driver: "pgx",
	schema: `
CREATE TABLE IF NOT EXISTS designs (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  prompt TEXT NOT NULL DEFAULT '',
  data JSONB NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_designs_created_at ON designs (created_at);
`,
	bind:       func(n int) string { return fmt.Sprintf("$%d", n) },
	encodeTime: func(t time.Time) any { return t.UTC() },
}

func dialectFor(backend string) (dialect, error) {
	switch strings.ToLower(backend) {
	case "", store.BackendSQLite:
		return sqlite, nil
	case store.BackendPostgres, "postgresql", "pg":
		return postgres, nil
	default:
		return dialect{}, errors.New(errors.ErrCodeInvalidConfig, "unknown sql backend %q", backend)
	}
}

// binds returns n placeholders separated by commas.
func (d dialect) binds(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = d.bind(i + 1)
	}
	return strings.Join(parts, ", ")
}

// parseTime accepts the created_at column as returned by either driver.
func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return time.Parse(timeLayout, t)
	case []byte:
		return time.Parse(timeLayout, string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected created_at type %T", v)
	}
}
