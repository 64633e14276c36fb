package store

import (
	"context"
	"time"

	"github.com/highlightagent/highlight-agent/internal/model"
)

// Store exposes persistence operations required by services and the
// scheduler. Implementations live under internal/store/<driver>/
// (postgres, sqlite).
type Store interface {
	Alerts() Alerts

	// HealthPing verifies backend connectivity.
	HealthPing(ctx context.Context) error
}

// Alerts is the persisted collection of reminder records.
//
// QueryDue is the sparse due-lookup: it returns only alerts still in
// status scheduled whose due date has been reached in their own timezone.
// Drivers keep this sub-linear with a partial index over scheduled rows,
// the relational equivalent of a sparse secondary index that rows leave
// when they transition to sent.
type Alerts interface {
	Create(ctx context.Context, a *model.Alert) (*model.Alert, error)
	Get(ctx context.Context, alertID string) (*model.Alert, error)
	List(ctx context.Context, req model.ListAlertsRequest) ([]*model.Alert, error)
	Delete(ctx context.Context, recipient, alertID string) error

	// QueryDue returns scheduled alerts in timezone whose dueDate <= localDate.
	QueryDue(ctx context.Context, timezone, localDate string) ([]*model.Alert, error)

	// GetStatus re-reads the current status from the primary record.
	GetStatus(ctx context.Context, alertID string) (string, error)

	// CommitSent conditionally transitions scheduled -> sent and records
	// sentAt. Returns model.ErrConflict when the alert is no longer
	// scheduled (another process won the race) and model.ErrNotFound when
	// no such alert exists.
	CommitSent(ctx context.Context, alertID string, sentAt time.Time) error
}
