package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/net2mulu/signature-gym/internal/domain/advisor"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecommendation(t *testing.T) (advisor.Request, *advisor.Recommendation) {
	t.Helper()
	req := advisor.Request{VisitsPerWeek: 4, Household: 2, PreferredTime: "off-peak", Months: 12, Interests: []string{"yoga"}}
	q, err := pricing.NewCalculator("USD", 0).Quote(pricing.QuoteRequest{
		Selection: pricing.Selection{Type: pricing.Couple, Duration: pricing.TwelveMonth, Access: pricing.OffPeak},
	})
	require.NoError(t, err)
	return req, &advisor.Recommendation{Quote: q, StudioTypeID: "yoga", Reasons: []string{"Two people train together"}}
}

func TestBuildPrompt(t *testing.T) {
	req, rec := sampleRecommendation(t)
	prompt := buildPrompt(req, rec)

	require.Contains(t, prompt, "4 times per week, household of 2")
	require.Contains(t, prompt, "Interests: yoga.")
	require.Contains(t, prompt, "Couple 12 Months, Off-Peak (10 AM - 4 PM), USD 540.00")
	require.Contains(t, prompt, "Suggested studio: yoga.")
	require.Contains(t, prompt, "- Two people train together")
}

func TestNewExplainers_NoKey(t *testing.T) {
	require.Nil(t, NewOpenAIExplainer("", "", 0))
	require.Nil(t, NewGeminiExplainer("", "", 0))
}

func TestGeminiExplainer_Explain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))

		var body geminiRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, advisorPersona, body.SystemInstruction.Parts[0].Text)
		assert.Len(t, body.Contents, 1)
		assert.Equal(t, 200, body.GenerationConfig.MaxOutputTokens)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" The couple plan "},{"text":"fits you. "}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	g := NewGeminiExplainer("test-key", "gemini-test", 0)
	g.baseURL = srv.URL

	req, rec := sampleRecommendation(t)
	text, err := g.Explain(context.Background(), req, rec)
	require.NoError(t, err)
	require.Equal(t, "The couple plan fits you.", text)
}

func TestGeminiExplainer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"upstream error", http.StatusTooManyRequests, `{"error":{"message":"quota"}}`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"bad json", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g := NewGeminiExplainer("test-key", "", 0)
			g.baseURL = srv.URL

			req, rec := sampleRecommendation(t)
			_, err := g.Explain(context.Background(), req, rec)
			require.Error(t, err)
		})
	}
}
