package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/highlightagent/highlight-agent/internal/model"
	"github.com/highlightagent/highlight-agent/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	recipient := "u-" + uuid.New().String() + "@example.test"

	mk := func(title, dueDate, tz string) *model.Alert {
		a, err := s.Alerts().Create(ctx, &model.Alert{
			Recipient: recipient,
			Title:     title,
			Content:   "captured text for " + title,
			Format:    model.FormatFull,
			DueDate:   dueDate,
			Timezone:  tz,
		})
		if err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
		return a
	}

	// Create + Get
	a1 := mk("a1", "2024-01-01", "America/New_York")
	if a1.AlertID == "" {
		t.Fatalf("Create: empty alert id")
	}
	if a1.Status != model.StatusScheduled {
		t.Fatalf("Create: status=%s, want scheduled", a1.Status)
	}
	got, err := s.Alerts().Get(ctx, a1.AlertID)
	if err != nil || got == nil || got.Title != "a1" || got.Recipient != recipient {
		t.Fatalf("Get: got=%v err=%v", got, err)
	}
	if got.SentAt != nil {
		t.Fatalf("Get: sentAt set on scheduled alert")
	}

	// Get unknown id
	if _, err := s.Alerts().Get(ctx, "no-such-id"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get unknown: err=%v, want ErrNotFound", err)
	}

	// Pregenerated flag round-trips
	pg, err := s.Alerts().Create(ctx, &model.Alert{
		Recipient:    recipient,
		Title:        "pregen",
		Content:      "- point one\n- point two",
		Format:       model.FormatSummary,
		Pregenerated: true,
		DueDate:      "2030-01-01",
		Timezone:     "UTC",
	})
	if err != nil {
		t.Fatalf("Create pregen: %v", err)
	}
	if got, err := s.Alerts().Get(ctx, pg.AlertID); err != nil || !got.Pregenerated {
		t.Fatalf("Get pregen: got=%v err=%v", got, err)
	}

	// QueryDue: due-date reached means <=, not exact match
	a2 := mk("a2", "2024-01-02", "America/New_York")
	mk("a3", "2024-01-05", "America/New_York") // not yet due
	mk("a4", "2024-01-01", "Asia/Tokyo")       // other timezone

	due, err := s.Alerts().QueryDue(ctx, "America/New_York", "2024-01-02")
	if err != nil {
		t.Fatalf("QueryDue: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("QueryDue: n=%d, want 2", len(due))
	}
	if due[0].AlertID != a1.AlertID || due[1].AlertID != a2.AlertID {
		t.Fatalf("QueryDue: unexpected order %s,%s", due[0].Title, due[1].Title)
	}

	// GetStatus
	if st, err := s.Alerts().GetStatus(ctx, a1.AlertID); err != nil || st != model.StatusScheduled {
		t.Fatalf("GetStatus: st=%s err=%v", st, err)
	}
	if _, err := s.Alerts().GetStatus(ctx, "no-such-id"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetStatus unknown: err=%v, want ErrNotFound", err)
	}

	// CommitSent: success, then conflict on repeat
	sentAt := time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)
	if err := s.Alerts().CommitSent(ctx, a1.AlertID, sentAt); err != nil {
		t.Fatalf("CommitSent: %v", err)
	}
	if err := s.Alerts().CommitSent(ctx, a1.AlertID, sentAt); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("CommitSent repeat: err=%v, want ErrConflict", err)
	}
	if err := s.Alerts().CommitSent(ctx, "no-such-id", sentAt); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("CommitSent unknown: err=%v, want ErrNotFound", err)
	}

	got, err = s.Alerts().Get(ctx, a1.AlertID)
	if err != nil || got.Status != model.StatusSent {
		t.Fatalf("Get after CommitSent: got=%v err=%v", got, err)
	}
	if got.SentAt == nil || !got.SentAt.Equal(sentAt) {
		t.Fatalf("Get after CommitSent: sentAt=%v, want %v", got.SentAt, sentAt)
	}

	// Sent alerts leave the due lookup (sparse index semantics)
	due, err = s.Alerts().QueryDue(ctx, "America/New_York", "2024-01-02")
	if err != nil || len(due) != 1 || due[0].AlertID != a2.AlertID {
		t.Fatalf("QueryDue after send: n=%d err=%v", len(due), err)
	}

	// List returns newest first with both statuses
	lst, err := s.Alerts().List(ctx, model.ListAlertsRequest{Recipient: recipient})
	if err != nil || len(lst) != 5 {
		t.Fatalf("List: n=%d err=%v", len(lst), err)
	}
	if lst2, err := s.Alerts().List(ctx, model.ListAlertsRequest{Recipient: recipient, Limit: 2}); err != nil || len(lst2) != 2 {
		t.Fatalf("List limit: n=%d err=%v", len(lst2), err)
	}
	if lst3, err := s.Alerts().List(ctx, model.ListAlertsRequest{Recipient: "nobody@example.test"}); err != nil || len(lst3) != 0 {
		t.Fatalf("List other recipient: n=%d err=%v", len(lst3), err)
	}

	// Delete is scoped to the owning recipient
	if err := s.Alerts().Delete(ctx, "nobody@example.test", a2.AlertID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Delete wrong recipient: err=%v, want ErrNotFound", err)
	}
	if err := s.Alerts().Delete(ctx, recipient, a2.AlertID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Alerts().Get(ctx, a2.AlertID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get after delete: err=%v, want ErrNotFound", err)
	}
}
