package email

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/highlightagent/highlight-agent/internal/model"
)

// Message is a rendered reminder e-mail.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Renderer builds reminder messages from alerts and resolved content.
type Renderer struct {
	dashboardURL string
}

// NewRenderer returns a Renderer. dashboardURL may be empty; the review
// link is omitted then.
func NewRenderer(dashboardURL string) *Renderer {
	return &Renderer{dashboardURL: dashboardURL}
}

var (
	answerLineRe = regexp.MustCompile(`(?m)^Answer:.*$`)
	bulletRe     = regexp.MustCompile(`^[•\-*]\s*`)
)

var bodyTmpl = template.Must(template.New("reminder").Parse(`<html>
  <body style="background-color:#09090b;color:#f4f4f5;padding:20px;font-family:sans-serif;">
    <h2 style="color:#a78bfa;">{{.Title}}</h2>
    {{if .SourceURL}}<p style="color:#a1a1aa;font-size:14px;">Originally captured from: <a href="{{.SourceURL}}" style="color:#a1a1aa;">{{.SourceURL}}</a></p>{{end}}
    <hr style="border-color:#27272a;margin:20px 0;"/>
    {{if .Degraded}}<p style="color:#f59e0b;font-size:14px;"><em>Content generation was unavailable &mdash; the original capture is included below.</em></p>{{end}}
    {{if .Bullets}}
    <div style="background-color:#18181b;padding:15px;border-radius:8px;border:1px solid #27272a;">
      <h3 style="margin-top:0;">&#128221; Smart Summary</h3>
      <ul style="line-height:1.6;">{{range .Bullets}}<li>{{.}}</li>{{end}}</ul>
    </div>
    {{else if .QuizBody}}
    <div style="background-color:#18181b;padding:15px;border-radius:8px;border:1px solid #27272a;">
      <h3 style="margin-top:0;">&#129504; Quick Quiz</h3>
      <pre style="white-space:pre-wrap;font-family:inherit;color:#e4e4e7;">{{.QuizBody}}</pre>
      <details style="margin-top:15px;background:#27272a;padding:10px;border-radius:4px;cursor:pointer;">
        <summary style="color:#a78bfa;font-weight:bold;">Reveal Answer</summary>
        <p style="margin-top:10px;color:#10b981;font-weight:bold;white-space:pre-wrap;">{{.QuizAnswers}}</p>
      </details>
    </div>
    {{else}}
    <div style="background-color:#18181b;padding:15px;border-radius:8px;border:1px solid #27272a;white-space:pre-wrap;">{{.Content}}</div>
    {{end}}
    {{if .DashboardURL}}
    <div style="margin-top:30px;text-align:center;">
      <a href="{{.DashboardURL}}" style="background-color:#7c3aed;color:white;padding:10px 20px;text-decoration:none;border-radius:5px;font-weight:bold;">Review in Dashboard</a>
    </div>
    {{end}}
    <p style="font-size:12px;color:#888;margin-top:20px;">Sent by HighlightAgent</p>
  </body>
</html>`))

type bodyData struct {
	Title        string
	SourceURL    string
	Degraded     bool
	Bullets      []string
	QuizBody     string
	QuizAnswers  string
	Content      string
	DashboardURL string
}

// Render builds the subject and dual HTML/plain-text bodies for an alert.
// degraded means content generation failed and content holds the raw
// capture; the message is labeled and rendered verbatim then.
func (r *Renderer) Render(a *model.Alert, content string, degraded bool) (Message, error) {
	data := bodyData{
		Title:        a.Title,
		Degraded:     degraded,
		Content:      content,
		DashboardURL: r.dashboardURL,
	}
	if a.SourceURL != nil {
		data.SourceURL = *a.SourceURL
	}

	format := a.Format
	if degraded {
		format = model.FormatFull
	}
	switch format {
	case model.FormatSummary:
		data.Bullets = summaryBullets(content)
	case model.FormatQuiz:
		data.QuizBody = answerLineRe.ReplaceAllString(content, "Answer: [Hidden - Think first!]")
		data.QuizAnswers = quizAnswers(content)
	}

	var html strings.Builder
	if err := bodyTmpl.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}

	return Message{
		Subject: "📚 Reminder: " + a.Title,
		HTML:    html.String(),
		Text:    textBody(a, content, degraded),
	}, nil
}

// summaryBullets splits summary content on line breaks into list items,
// dropping blank lines and any bullet glyph the generator already added.
func summaryBullets(content string) []string {
	var bullets []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		bullets = append(bullets, bulletRe.ReplaceAllString(line, ""))
	}
	return bullets
}

// quizAnswers collects the Answer lines for the reveal-on-demand block.
func quizAnswers(content string) string {
	matches := answerLineRe.FindAllString(content, -1)
	if len(matches) == 0 {
		return "Check dashboard for answer"
	}
	return strings.Join(matches, "\n")
}

func textBody(a *model.Alert, content string, degraded bool) string {
	var b strings.Builder
	b.WriteString("Reminder: " + a.Title + "\n\n")
	if degraded {
		b.WriteString("(Content generation was unavailable - original capture below.)\n\n")
	}
	b.WriteString(content)
	if a.SourceURL != nil && *a.SourceURL != "" {
		b.WriteString("\n\nSource: " + *a.SourceURL)
	}
	b.WriteString("\n\nSent by HighlightAgent")
	return b.String()
}
