package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/highlightagent/highlight-agent/internal/model"
	"github.com/highlightagent/highlight-agent/internal/store"
	"github.com/highlightagent/highlight-agent/internal/store/sqlite"
)

type stubGen struct {
	out   string
	err   error
	calls int
}

func (g *stubGen) Generate(_ context.Context, _, _, _ string) (string, error) {
	g.calls++
	return g.out, g.err
}

func newTestService(t *testing.T, gen Generator) (*AlertService, store.Store) {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	st := sqlite.NewWithDB(db)
	return NewAlertService(st, gen, zerolog.Nop()), st
}

func validCreate() CreateAlertRequest {
	return CreateAlertRequest{
		Email:   "user@example.com",
		Title:   "Notes",
		Content: "captured text",
		DueDate: "2024-06-01",
	}
}

func TestCreateAlertDefaults(t *testing.T) {
	svc, _ := newTestService(t, nil)
	a, err := svc.CreateAlert(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}
	if a.AlertID == "" {
		t.Fatalf("expected generated alert id")
	}
	if a.Format != model.FormatFull || a.Timezone != "UTC" || a.Status != model.StatusScheduled {
		t.Fatalf("defaults not applied: %+v", a)
	}
	if a.Pregenerated {
		t.Fatalf("full format must not be marked pregenerated")
	}
}

func TestCreateAlertValidation(t *testing.T) {
	svc, _ := newTestService(t, nil)
	cases := []struct {
		name   string
		mutate func(*CreateAlertRequest)
	}{
		{"missing email", func(r *CreateAlertRequest) { r.Email = "" }},
		{"bad email", func(r *CreateAlertRequest) { r.Email = "not-an-address" }},
		{"missing title", func(r *CreateAlertRequest) { r.Title = " " }},
		{"missing content", func(r *CreateAlertRequest) { r.Content = "" }},
		{"missing due date", func(r *CreateAlertRequest) { r.DueDate = "" }},
		{"bad due date", func(r *CreateAlertRequest) { r.DueDate = "01/06/2024" }},
		{"bad format", func(r *CreateAlertRequest) { r.Format = "podcast" }},
		{"bad timezone", func(r *CreateAlertRequest) { r.Timezone = "Mars/Olympus" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(&req)
			if _, err := svc.CreateAlert(context.Background(), req); !errors.Is(err, model.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateAlertGenerateNow(t *testing.T) {
	gen := &stubGen{out: "• summarized"}
	svc, _ := newTestService(t, gen)

	req := validCreate()
	req.Format = model.FormatSummary
	req.GenerateNow = true
	a, err := svc.CreateAlert(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("generator not invoked")
	}
	if !a.Pregenerated || a.Content != "• summarized" {
		t.Fatalf("transformed content not stored: %+v", a)
	}
}

func TestCreateAlertGenerateNowFailureStoresRaw(t *testing.T) {
	gen := &stubGen{err: errors.New("quota")}
	svc, _ := newTestService(t, gen)

	req := validCreate()
	req.Format = model.FormatQuiz
	req.GenerateNow = true
	a, err := svc.CreateAlert(context.Background(), req)
	if err != nil {
		t.Fatalf("eager generation failure must not fail capture: %v", err)
	}
	if a.Pregenerated || a.Content != "captured text" {
		t.Fatalf("raw capture must be stored for delivery-time retry: %+v", a)
	}
}

func TestCreateAlertGenerateNowSkippedForFull(t *testing.T) {
	gen := &stubGen{out: "should not be used"}
	svc, _ := newTestService(t, gen)

	req := validCreate()
	req.GenerateNow = true
	if _, err := svc.CreateAlert(context.Background(), req); err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("full format must never invoke the generator")
	}
}

func TestListAlertsStatsAndStripping(t *testing.T) {
	svc, st := newTestService(t, nil)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		a, err := svc.CreateAlert(ctx, validCreate())
		if err != nil {
			t.Fatalf("CreateAlert: %v", err)
		}
		ids = append(ids, a.AlertID)
	}
	if err := st.Alerts().CommitSent(ctx, ids[0], time.Now().UTC()); err != nil {
		t.Fatalf("CommitSent: %v", err)
	}

	resp, err := svc.ListAlerts(ctx, model.ListAlertsRequest{Recipient: "user@example.com"})
	if err != nil {
		t.Fatalf("ListAlerts: %v", err)
	}
	if resp.Stats.Total != 3 || resp.Stats.Sent != 1 || resp.Stats.Pending != 2 {
		t.Fatalf("unexpected stats %+v", resp.Stats)
	}
	for _, a := range resp.Alerts {
		if a.Content != "" {
			t.Fatalf("list items must omit content: %+v", a)
		}
	}

	if _, err := svc.ListAlerts(ctx, model.ListAlertsRequest{}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing recipient, got %v", err)
	}
}

func TestDeleteAlertScopedToRecipient(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	a, err := svc.CreateAlert(ctx, validCreate())
	if err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}
	if err := svc.DeleteAlert(ctx, "other@example.com", a.AlertID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("cross-recipient delete must fail, got %v", err)
	}
	if err := svc.DeleteAlert(ctx, "user@example.com", a.AlertID); err != nil {
		t.Fatalf("DeleteAlert: %v", err)
	}
	if _, err := svc.GetAlert(ctx, a.AlertID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
