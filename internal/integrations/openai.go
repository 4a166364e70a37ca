package integrations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/advisor"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIExplainer asks a chat model to summarise a plan recommendation
type OpenAIExplainer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIExplainer returns nil when no API key is configured
func NewOpenAIExplainer(apiKey, model string, timeout time.Duration) *OpenAIExplainer {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIExplainer{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

// Explain returns a two or three sentence summary addressed to the prospective member
func (e *OpenAIExplainer) Explain(ctx context.Context, req advisor.Request, rec *advisor.Recommendation) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: advisorPersona,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(req, rec),
			},
		},
		MaxTokens: 200,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

const advisorPersona = "You are a friendly membership advisor at Signature Fitness. Answer in at most three sentences. Do not invent prices."

func buildPrompt(req advisor.Request, rec *advisor.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A visitor trains %d times per week, household of %d, prefers %s, plans for %d months.",
		req.VisitsPerWeek, req.Household, req.PreferredTime, req.Months)
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, " Interests: %s.", strings.Join(req.Interests, ", "))
	}
	if q := rec.Quote; q != nil {
		fmt.Fprintf(&b, "\nRecommended plan: %s %s, %s, %s %.2f.",
			q.TypeLabel, q.DurationLabel, q.AccessLabel, q.Currency, float64(q.Total)/100)
	}
	if rec.StudioTypeID != "" {
		fmt.Fprintf(&b, " Suggested studio: %s.", rec.StudioTypeID)
	}
	b.WriteString("\nReasons:\n- ")
	b.WriteString(strings.Join(rec.Reasons, "\n- "))
	b.WriteString("\nExplain why this plan fits them.")
	return b.String()
}
