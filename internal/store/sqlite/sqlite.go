package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/highlightagent/highlight-agent/internal/model"
	"github.com/highlightagent/highlight-agent/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables
// WAL journal mode. Pass ":memory:" for an in-memory database (used by the
// local build target's tests).
func Open(path string) (*sql.DB, error) {
	var dsn string
	if path == ":memory:" {
		dsn = "file::memory:?cache=shared&_pragma=foreign_keys(ON)"
	} else {
		// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// shared-cache in-memory DBs must not outrun the single connection
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS alerts (
    alert_id      TEXT PRIMARY KEY,
    recipient     TEXT NOT NULL,
    title         TEXT NOT NULL,
    source_url    TEXT,
    content       TEXT NOT NULL,
    format        TEXT NOT NULL,
    pregenerated  INTEGER NOT NULL DEFAULT 0,
    due_date      TEXT NOT NULL,
    timezone      TEXT NOT NULL,
    status        TEXT NOT NULL DEFAULT 'scheduled',
    sent_at       TEXT,
    creation_time TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS alerts_due_idx
    ON alerts (timezone, due_date) WHERE status = 'scheduled';
CREATE INDEX IF NOT EXISTS alerts_recipient_idx
    ON alerts (recipient, creation_time DESC);
`

// EnsureSchema creates the alerts table and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}

// NewWithDB constructs a SQLite store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &liteStore{db: db} }

type liteStore struct{ db *sql.DB }

func (s *liteStore) Alerts() store.Alerts { return &alerts{db: s.db} }

func (s *liteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type alerts struct{ db *sql.DB }

// Timestamps are stored as RFC3339 text; SQLite has no native time type.
const timeLayout = time.RFC3339Nano

func (a *alerts) Create(ctx context.Context, m *model.Alert) (*model.Alert, error) {
	out := *m
	if out.AlertID == "" {
		out.AlertID = uuid.New().String()
	}
	if out.Status == "" {
		out.Status = model.StatusScheduled
	}
	out.CreationTime = time.Now().UTC()
	pregen := 0
	if out.Pregenerated {
		pregen = 1
	}
	_, err := a.db.ExecContext(ctx, `
        INSERT INTO alerts (alert_id, recipient, title, source_url, content, format, pregenerated, due_date, timezone, status, creation_time)
        VALUES (?,?,?,?,?,?,?,?,?,?,?)
    `, out.AlertID, out.Recipient, out.Title, out.SourceURL, out.Content, out.Format, pregen, out.DueDate, out.Timezone, out.Status,
		out.CreationTime.Format(timeLayout))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *alerts) Get(ctx context.Context, alertID string) (*model.Alert, error) {
	row := a.db.QueryRowContext(ctx, `
        SELECT alert_id, recipient, title, source_url, content, format, pregenerated, due_date, timezone, status, sent_at, creation_time
        FROM alerts WHERE alert_id=?
    `, alertID)
	out, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return out, err
}

func (a *alerts) List(ctx context.Context, req model.ListAlertsRequest) ([]*model.Alert, error) {
	q := `
        SELECT alert_id, recipient, title, source_url, content, format, pregenerated, due_date, timezone, status, sent_at, creation_time
        FROM alerts WHERE recipient=? ORDER BY creation_time DESC`
	args := []interface{}{req.Recipient}
	if req.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, req.Limit)
	}
	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectAlerts(rows)
}

func (a *alerts) Delete(ctx context.Context, recipient, alertID string) error {
	res, err := a.db.ExecContext(ctx, `DELETE FROM alerts WHERE alert_id=? AND recipient=?`, alertID, recipient)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (a *alerts) QueryDue(ctx context.Context, timezone, localDate string) ([]*model.Alert, error) {
	rows, err := a.db.QueryContext(ctx, `
        SELECT alert_id, recipient, title, source_url, content, format, pregenerated, due_date, timezone, status, sent_at, creation_time
        FROM alerts
        WHERE timezone=? AND due_date<=? AND status='scheduled'
        ORDER BY due_date ASC, creation_time ASC
    `, timezone, localDate)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectAlerts(rows)
}

func (a *alerts) GetStatus(ctx context.Context, alertID string) (string, error) {
	var status string
	row := a.db.QueryRowContext(ctx, `SELECT status FROM alerts WHERE alert_id=?`, alertID)
	if err := row.Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", err
	}
	return status, nil
}

func (a *alerts) CommitSent(ctx context.Context, alertID string, sentAt time.Time) error {
	res, err := a.db.ExecContext(ctx, `
        UPDATE alerts SET status='sent', sent_at=?
        WHERE alert_id=? AND status='scheduled'
    `, sentAt.UTC().Format(timeLayout), alertID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	if _, err := a.GetStatus(ctx, alertID); errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	return model.ErrConflict
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAlert(row rowScanner) (*model.Alert, error) {
	var out model.Alert
	var sentAt sql.NullString
	var created string
	var pregen int
	if err := row.Scan(&out.AlertID, &out.Recipient, &out.Title, &out.SourceURL, &out.Content,
		&out.Format, &pregen, &out.DueDate, &out.Timezone, &out.Status, &sentAt, &created); err != nil {
		return nil, err
	}
	out.Pregenerated = pregen == 1
	ct, err := time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parse creation_time: %w", err)
	}
	out.CreationTime = ct
	if sentAt.Valid {
		st, err := time.Parse(timeLayout, sentAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse sent_at: %w", err)
		}
		out.SentAt = &st
	}
	return &out, nil
}

func collectAlerts(rows *sql.Rows) ([]*model.Alert, error) {
	var res []*model.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}
