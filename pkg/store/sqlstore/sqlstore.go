// Package sqlstore stores designs in a SQL database.
//
// Two dialects share one implementation: SQLite through the pure-Go
// ncruces driver (the default, a single file next to the cache) and
// Postgres through pgx's database/sql adapter.
//
//	s, err := sqlstore.Open(ctx, "sqlite", "/var/lib/dreamhouse/designs.db")
//	s, err := sqlstore.Open(ctx, "postgres", "postgres://user@host/db")
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/store"
)

// Store is a SQL-backed design store.
type Store struct {
	db      *sql.DB
	dialect dialect
}

var _ store.Store = (*Store)(nil)

// Open connects to the database for backend ("sqlite" or "postgres") and
// creates the designs table if needed. For SQLite, dsn is a file path whose
// directory is created.
func Open(ctx context.Context, backend, dsn string) (*Store, error) {
	d, err := dialectFor(backend)
	if err != nil {
		return nil, err
	}

	source := dsn
	if d.name == store.BackendSQLite {
		if dsn == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "sqlite store needs a file path")
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		source = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)", dsn)
	}

	db, err := sql.Open(d.driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	if d.name == store.BackendSQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to %s", d.name)
	}

	s := &Store{db: db, dialect: d}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Backend returns the dialect name.
func (s *Store) Backend() string { return s.dialect.name }

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("migrate designs: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, d store.Design) (string, error) {
	d, err := store.Prepare(d)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(d.Layout)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}

	q := fmt.Sprintf(`INSERT INTO designs (name, prompt, data, created_at) VALUES (%s) RETURNING id`,
		s.dialect.binds(4))
	var id int64
	if err := s.db.QueryRowContext(ctx, q, d.Name, d.Prompt, string(data), s.dialect.encodeTime(d.CreatedAt)).Scan(&id); err != nil {
		return "", fmt.Errorf("insert design: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

func (s *Store) List(ctx context.Context, limit int) ([]store.Summary, error) {
	q := fmt.Sprintf(`SELECT id, name, created_at FROM designs ORDER BY created_at DESC, id DESC LIMIT %s`,
		s.dialect.bind(1))
	rows, err := s.db.QueryContext(ctx, q, store.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	out := []store.Summary{}
	for rows.Next() {
		var (
			id      int64
			sum     store.Summary
			created any
		)
		if err := rows.Scan(&id, &sum.Name, &created); err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		if sum.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		sum.ID = strconv.FormatInt(id, 10)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (store.Design, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return store.Design{}, store.ErrNotFound(id)
	}

	q := fmt.Sprintf(`SELECT name, prompt, data, created_at FROM designs WHERE id = %s`, s.dialect.bind(1))
	var (
		d       = store.Design{ID: id}
		data    []byte
		created any
	)
	err = s.db.QueryRowContext(ctx, q, n).Scan(&d.Name, &d.Prompt, &data, &created)
	if stderrors.Is(err, sql.ErrNoRows) {
		return store.Design{}, store.ErrNotFound(id)
	}
	if err != nil {
		return store.Design{}, fmt.Errorf("get design: %w", err)
	}
	if d.CreatedAt, err = parseTime(created); err != nil {
		return store.Design{}, err
	}
	if d.Layout, err = plan.UnmarshalLayout(data); err != nil {
		return store.Design{}, errors.Wrap(errors.ErrCodeInternal, err, "decode design %s", id)
	}
	return d, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return store.ErrNotFound(id)
	}
	q := fmt.Sprintf(`DELETE FROM designs WHERE id = %s`, s.dialect.bind(1))
	res, err := s.db.ExecContext(ctx, q, n)
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return store.ErrNotFound(id)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
