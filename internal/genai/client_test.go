package genai

import (
	"context"
	"testing"

	"github.com/highlightagent/highlight-agent/internal/model"
)

func TestGenerateFullPassthrough(t *testing.T) {
	c := New("", "gpt-4o-mini")
	out, err := c.Generate(context.Background(), model.FormatFull, "t", "captured text")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "captured text" {
		t.Fatalf("full format must pass content through, got %q", out)
	}
}

func TestGenerateNoKeyPassthrough(t *testing.T) {
	c := New("", "gpt-4o-mini")
	for _, format := range []string{model.FormatSummary, model.FormatQuiz} {
		out, err := c.Generate(context.Background(), format, "t", "captured text")
		if err != nil {
			t.Fatalf("Generate %s: %v", format, err)
		}
		if out != "captured text" {
			t.Fatalf("passthrough client must return content unchanged, got %q", out)
		}
	}
}

func TestGenerateEmptyContent(t *testing.T) {
	c := New("", "gpt-4o-mini")
	if _, err := c.Generate(context.Background(), model.FormatSummary, "t", "  "); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	c := New("", "gpt-4o-mini")
	if _, err := c.Generate(context.Background(), "haiku", "t", "text"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
