package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	logx "courierbot/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

// sqliteStore keeps markers in a single table. SQLite has no per-key
// expiry, so the pruning sweeper is responsible for evicting old rows.
type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	path := cfg.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.BusyTimeout > 0 {
		ms := cfg.BusyTimeout.Milliseconds()
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", ms))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	st := &sqliteStore{db: db, log: log}
	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Get(ctx context.Context, threadID string) (int64, bool, error) {
	var ts int64
	err := s.db.QueryRowContext(ctx, `SELECT ts FROM markers WHERE thread_id = ?`, threadID).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return ts, true, nil
}

func (s *sqliteStore) Put(ctx context.Context, threadID string, ts int64, _ time.Duration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO markers(thread_id, ts) VALUES(?,?)
		 ON CONFLICT(thread_id) DO UPDATE SET ts=excluded.ts`,
		threadID, ts,
	)
	return err
}

func (s *sqliteStore) Delete(ctx context.Context, threadID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM markers WHERE thread_id = ?`, threadID)
	return err
}

func (s *sqliteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT thread_id FROM markers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *sqliteStore) NativeTTL() bool { return false }

func (s *sqliteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
