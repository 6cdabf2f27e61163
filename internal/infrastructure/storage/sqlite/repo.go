package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/model"
)

type Repo struct {
	db *sql.DB
}

func New(path string) (*Repo, error) {
	// ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS lookups (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_id TEXT NOT NULL,
  marker TEXT NOT NULL,
  action TEXT NOT NULL,
  symbol TEXT NOT NULL,
  outcome TEXT NOT NULL,
  value TEXT NOT NULL,
  err TEXT NOT NULL,
  ts_ms INTEGER NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lookups_symbol ON lookups(symbol);
CREATE INDEX IF NOT EXISTS idx_lookups_ts ON lookups(ts_ms);
CREATE INDEX IF NOT EXISTS idx_lookups_session ON lookups(session_id);
`)
	return err
}

func (r *Repo) InsertLookup(ctx context.Context, l *model.Lookup) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lookups(session_id, marker, action, symbol, outcome, value, err, ts_ms, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.SessionID, l.Marker, l.Action, l.Symbol, l.Outcome, l.Value, l.Err, l.Timestamp, time.Now().UnixMilli())
	return err
}

// ListLookups 最新的在前；symbol 为空时不过滤，limit <= 0 时不限制
func (r *Repo) ListLookups(ctx context.Context, symbol string, limit int) ([]*model.Lookup, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, marker, action, symbol, outcome, value, err, ts_ms
		FROM lookups
		WHERE ? = '' OR symbol = ?
		ORDER BY ts_ms DESC, id DESC
		LIMIT ?
	`, symbol, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Lookup
	for rows.Next() {
		var l model.Lookup
		if err := rows.Scan(&l.SessionID, &l.Marker, &l.Action, &l.Symbol, &l.Outcome, &l.Value, &l.Err, &l.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

var _ port.Repository = (*Repo)(nil)
