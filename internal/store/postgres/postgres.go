package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/highlightagent/highlight-agent/internal/model"
	"github.com/highlightagent/highlight-agent/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Alerts() store.Alerts { return &alerts{db: s.db} }

func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// schemaDDL keeps the due lookup sparse: the partial index only contains
// scheduled rows, so a row leaves the index when CommitSent flips it to sent.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS alerts (
    alert_id      TEXT PRIMARY KEY,
    recipient     TEXT NOT NULL,
    title         TEXT NOT NULL,
    source_url    TEXT,
    content       TEXT NOT NULL,
    format        TEXT NOT NULL,
    pregenerated  BOOLEAN NOT NULL DEFAULT false,
    due_date      TEXT NOT NULL,
    timezone      TEXT NOT NULL,
    status        TEXT NOT NULL DEFAULT 'scheduled',
    sent_at       TIMESTAMPTZ,
    creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS alerts_due_idx
    ON alerts (timezone, due_date) WHERE status = 'scheduled';
CREATE INDEX IF NOT EXISTS alerts_recipient_idx
    ON alerts (recipient, creation_time DESC);
`

// EnsureSchema creates the alerts table and indexes if they do not exist.
// Safe to call repeatedly.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}

type alerts struct{ db *sql.DB }

func (a *alerts) Create(ctx context.Context, m *model.Alert) (*model.Alert, error) {
	out := *m
	if out.AlertID == "" {
		out.AlertID = uuid.New().String()
	}
	if out.Status == "" {
		out.Status = model.StatusScheduled
	}
	row := a.db.QueryRowContext(ctx, `
        INSERT INTO alerts (alert_id, recipient, title, source_url, content, format, pregenerated, due_date, timezone, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING creation_time
    `, out.AlertID, out.Recipient, out.Title, out.SourceURL, out.Content, out.Format, out.Pregenerated, out.DueDate, out.Timezone, out.Status)
	if err := row.Scan(&out.CreationTime); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *alerts) Get(ctx context.Context, alertID string) (*model.Alert, error) {
	row := a.db.QueryRowContext(ctx, `
        SELECT alert_id, recipient, title, source_url, content, format, pregenerated, due_date, timezone, status, sent_at, creation_time
        FROM alerts WHERE alert_id=$1
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
        FROM alerts WHERE recipient=$1 ORDER BY creation_time DESC`
	args := []interface{}{req.Recipient}
	if req.Limit > 0 {
		q += ` LIMIT $2`
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
	res, err := a.db.ExecContext(ctx, `DELETE FROM alerts WHERE alert_id=$1 AND recipient=$2`, alertID, recipient)
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
        WHERE timezone=$1 AND due_date<=$2 AND status='scheduled'
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
	row := a.db.QueryRowContext(ctx, `SELECT status FROM alerts WHERE alert_id=$1`, alertID)
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
        UPDATE alerts SET status='sent', sent_at=$2
        WHERE alert_id=$1 AND status='scheduled'
    `, alertID, sentAt.UTC())
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
	// Zero rows: either the alert is gone or another process already
	// transitioned it. Distinguish for the caller.
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
	var sentAt *time.Time
	if err := row.Scan(&out.AlertID, &out.Recipient, &out.Title, &out.SourceURL, &out.Content,
		&out.Format, &out.Pregenerated, &out.DueDate, &out.Timezone, &out.Status, &sentAt, &out.CreationTime); err != nil {
		return nil, err
	}
	out.SentAt = sentAt
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
