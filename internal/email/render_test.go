package email

import (
	"strings"
	"testing"

	"github.com/highlightagent/highlight-agent/internal/model"
)

func strPtr(s string) *string { return &s }

func TestRenderSummaryBullets(t *testing.T) {
	r := NewRenderer("https://app.example.com")
	a := &model.Alert{Title: "Go Scheduling", Format: model.FormatSummary}
	msg, err := r.Render(a, "• First point\n- Second point\n\nThird point", false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if msg.Subject != "📚 Reminder: Go Scheduling" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	for _, want := range []string{"<li>First point</li>", "<li>Second point</li>", "<li>Third point</li>", "Smart Summary"} {
		if !strings.Contains(msg.HTML, want) {
			t.Fatalf("html missing %q:\n%s", want, msg.HTML)
		}
	}
	if !strings.Contains(msg.HTML, "https://app.example.com") {
		t.Fatalf("html missing dashboard link")
	}
}

func TestRenderQuizMasksAnswers(t *testing.T) {
	r := NewRenderer("")
	a := &model.Alert{Title: "Quiz", Format: model.FormatQuiz}
	content := "Question 1: What is Go?\nOptions: A, B\nAnswer: A\nQuestion 2: Who made it?\nOptions: C, D\nAnswer: D"
	msg, err := r.Render(a, content, false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(msg.HTML, "Answer: A") || strings.Contains(msg.HTML, "Answer: D") {
		// answers may only appear inside the reveal block
		revealIdx := strings.Index(msg.HTML, "<details")
		if revealIdx < 0 {
			t.Fatalf("no reveal block in html")
		}
		if strings.Contains(msg.HTML[:revealIdx], "Answer: A") {
			t.Fatalf("answer leaked into quiz body:\n%s", msg.HTML)
		}
	}
	if !strings.Contains(msg.HTML, "Answer: [Hidden - Think first!]") {
		t.Fatalf("quiz body must mask answer lines:\n%s", msg.HTML)
	}
	// Question after the first answer must survive the masking.
	if !strings.Contains(msg.HTML, "Question 2: Who made it?") {
		t.Fatalf("masking swallowed a later question:\n%s", msg.HTML)
	}
	if !strings.Contains(msg.HTML, "Reveal Answer") {
		t.Fatalf("missing reveal block")
	}
}

func TestRenderQuizWithoutAnswerLines(t *testing.T) {
	r := NewRenderer("")
	a := &model.Alert{Title: "Quiz", Format: model.FormatQuiz}
	msg, err := r.Render(a, "Question 1: no answer given", false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(msg.HTML, "Check dashboard for answer") {
		t.Fatalf("expected fallback reveal text:\n%s", msg.HTML)
	}
}

func TestRenderDegradedFallsBackToFull(t *testing.T) {
	r := NewRenderer("")
	a := &model.Alert{Title: "T", Format: model.FormatQuiz}
	msg, err := r.Render(a, "raw capture text", true)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(msg.HTML, "Quick Quiz") {
		t.Fatalf("degraded message must not use the quiz layout")
	}
	if !strings.Contains(msg.HTML, "Content generation was unavailable") {
		t.Fatalf("degraded message must be labeled:\n%s", msg.HTML)
	}
	if !strings.Contains(msg.HTML, "raw capture text") {
		t.Fatalf("degraded message must include the raw capture")
	}
	if !strings.Contains(msg.Text, "original capture below") {
		t.Fatalf("text body missing degraded note:\n%s", msg.Text)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	r := NewRenderer("")
	a := &model.Alert{Title: "T", Format: model.FormatFull}
	msg, err := r.Render(a, `<script>alert("x")</script>`, false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Fatalf("content must be escaped:\n%s", msg.HTML)
	}
}

func TestRenderSourceURL(t *testing.T) {
	r := NewRenderer("")
	a := &model.Alert{Title: "T", Format: model.FormatFull, SourceURL: strPtr("https://example.com/article")}
	msg, err := r.Render(a, "body", false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(msg.HTML, "https://example.com/article") {
		t.Fatalf("html missing source link")
	}
	if !strings.Contains(msg.Text, "Source: https://example.com/article") {
		t.Fatalf("text missing source link:\n%s", msg.Text)
	}
}
