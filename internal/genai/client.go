package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/highlightagent/highlight-agent/internal/model"
)

const (
	summarySystemPrompt = "You are a helpful assistant. Summarize the user's text into 3 key bullet points."
	quizSystemPrompt    = "Create a simple 3-question quiz based on the text. Format: Question, Options, Answer."
)

// Client wraps the OpenAI SDK for reminder content generation. When no API
// key is configured the client operates in passthrough mode and returns
// the captured text unchanged.
type Client struct {
	client *openai.Client
	model  openai.ChatModel
}

// New returns a Client. An empty apiKey yields a passthrough client.
func New(apiKey, chatModel string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{client: &c, model: openai.ChatModel(chatModel)}
}

// Generate transforms content according to format. The full format never
// touches the API. Errors are returned to the caller, which is expected to
// fall back to the raw content rather than fail the delivery.
func (c *Client) Generate(ctx context.Context, format, title, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("content cannot be empty")
	}

	var system string
	var maxTokens int64
	switch format {
	case model.FormatFull:
		return content, nil
	case model.FormatSummary:
		system = summarySystemPrompt
		maxTokens = 200
	case model.FormatQuiz:
		system = quizSystemPrompt
		maxTokens = 300
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}

	if c.client == nil {
		// passthrough: deliver the capture as-is when no key is configured
		return content, nil
	}

	req := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(system),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(fmt.Sprintf("Title: %s\n\nText: %s", title, content)),
					},
				},
			},
		},
		MaxCompletionTokens: openai.Int(maxTokens),
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion received")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
