package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ashugangtok/dietiq/internal/domain/models"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 2048
)

// Client defines the generative flows the application uses. The aggregation
// core never calls these; they are invoked by the HTTP layer with either raw
// PDF text or pre-aggregated report lines.
type Client interface {
	ExtractDietPlan(ctx context.Context, documentText string) (*models.DietPlan, error)
	GenerateDietSummary(ctx context.Context, aggregates string) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

// Message is one turn of an Anthropic conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const extractSystemPrompt = `You are a zoo nutrition assistant. You are given the raw text of a PDF diet plan.
Extract it into JSON matching exactly this structure:
{
  "title": "plan title",
  "species": "species the plan is for, or empty string",
  "meals": [
    {"time": "HH:MM or label", "items": [{"name": "ingredient", "quantity": 0.0, "unit": "kg|gram|piece|...", "prep_type": "optional"}]}
  ],
  "seasonal_adjustments": ["..."],
  "food_enrichment": ["..."],
  "notes": "anything that fits nowhere else"
}
RULES:
- Output ONLY the JSON object, no prose.
- Quantities are numbers; keep the unit string from the document.
- Omit nothing that looks like a scheduled feeding.`

const summarySystemPrompt = `You are a zoo nutrition assistant. You are given pre-aggregated feeding totals,
one ingredient per line. Write a short narrative diet summary (3-6 sentences) a keeper could read aloud:
which ingredients dominate by weight, how many animals they cover, and anything notable about the mix.
Do not invent data that is not in the table.`

// ExtractDietPlan converts raw PDF text into the structured diet-plan schema.
func (c *anthropicClient) ExtractDietPlan(ctx context.Context, documentText string) (*models.DietPlan, error) {
	if strings.TrimSpace(documentText) == "" {
		return nil, fmt.Errorf("empty document text")
	}

	// Prefill the assistant response to force JSON output.
	messages := []Message{
		{Role: "user", Content: documentText},
		{Role: "assistant", Content: "{"},
	}

	text, err := c.send(ctx, extractSystemPrompt, messages)
	if err != nil {
		return nil, err
	}
	text = stripCodeFences("{" + text)

	var plan models.DietPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal diet plan: %w. Response was: %s", err, text)
	}
	return &plan, nil
}

// GenerateDietSummary produces a narrative summary from pre-aggregated
// report lines.
func (c *anthropicClient) GenerateDietSummary(ctx context.Context, aggregates string) (string, error) {
	if strings.TrimSpace(aggregates) == "" {
		return "", fmt.Errorf("empty aggregate table")
	}

	messages := []Message{{Role: "user", Content: aggregates}}

	text, err := c.send(ctx, summarySystemPrompt, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c *anthropicClient) send(ctx context.Context, system string, messages []Message) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return respBody.Content[0].Text, nil
}

// stripCodeFences removes markdown code blocks if the model wraps the JSON.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
