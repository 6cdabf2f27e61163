package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"coinmarker/internal/application/port"
	"coinmarker/internal/domain/model"
)

type Repo struct {
	db *sql.DB
}

func New(dsn string) (*Repo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

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
  id BIGSERIAL PRIMARY KEY,
  session_id TEXT NOT NULL,
  marker TEXT NOT NULL,
  action TEXT NOT NULL,
  symbol TEXT NOT NULL,
  outcome TEXT NOT NULL,
  value TEXT NOT NULL,
  err TEXT NOT NULL,
  ts_ms BIGINT NOT NULL,
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lookups_symbol ON lookups(symbol);
CREATE INDEX IF NOT EXISTS idx_lookups_ts ON lookups(ts_ms);
`)
	return err
}

func (r *Repo) InsertLookup(ctx context.Context, l *model.Lookup) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lookups(session_id, marker, action, symbol, outcome, value, err, ts_ms, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, l.SessionID, l.Marker, l.Action, l.Symbol, l.Outcome, l.Value, l.Err, l.Timestamp, time.Now().UnixMilli())
	return err
}

func (r *Repo) ListLookups(ctx context.Context, symbol string, limit int) ([]*model.Lookup, error) {
	var lim any = limit
	if limit <= 0 {
		lim = nil // LIMIT NULL
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, marker, action, symbol, outcome, value, err, ts_ms
		FROM lookups
		WHERE $1 = '' OR symbol = $1
		ORDER BY ts_ms DESC, id DESC
		LIMIT $2
	`, symbol, lim)
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
