// Package advisor suggests categories for staged transactions using Gemini.
// It is purely advisory: suggestions never block a commit, never mutate
// staging rows, and any internal failure degrades to "no suggestion" instead
// of surfacing an error.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

const maxDescriptionLen = 300

// Suggestion is one advisory categorization result. Category is empty when
// no suggestion could be made; Reason then carries a short failure tag.
type Suggestion struct {
	Category   string
	Confidence float64
	Reason     string
}

// generator abstracts the model call so tests can stub it.
type generator interface {
	generate(ctx context.Context, model, prompt string) (string, error)
}

// Service produces category suggestions for staging rows.
type Service struct {
	enabled bool
	model   string
	gen     generator
}

// New creates an advisor Service. With an empty API key the service stays
// constructible and every call degrades to a "missing_api_key" suggestion.
func New(enabled bool, modelName, apiKey string) *Service {
	svc := &Service{enabled: enabled, model: modelName}
	if apiKey != "" {
		svc.gen = &geminiGenerator{apiKey: apiKey}
	}
	return svc
}

// Suggest categorizes one transaction against the allowed category list.
// It never returns an error: every failure mode yields an empty category
// with a reason tag.
func (s *Service) Suggest(ctx context.Context, description, accountName string, amountEUR *decimal.Decimal, allowed []string) Suggestion {
	if !s.enabled {
		return Suggestion{Reason: "ai_disabled"}
	}
	if len(allowed) == 0 {
		return Suggestion{Reason: "no_allowed_categories"}
	}

	desc := strings.TrimSpace(description)
	if desc == "" {
		return Suggestion{Reason: "empty_description"}
	}
	if len(desc) > maxDescriptionLen {
		desc = desc[:maxDescriptionLen]
	}
	if s.gen == nil {
		return Suggestion{Reason: "missing_api_key"}
	}

	raw, err := s.gen.generate(ctx, s.model, buildPrompt(desc, accountName, amountEUR, allowed))
	if err != nil {
		return Suggestion{Reason: "ai_error"}
	}

	var parsed struct {
		Category   *string `json:"category"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return Suggestion{Reason: "ai_error"}
	}

	confidence := clamp01(parsed.Confidence)
	reason := strings.TrimSpace(parsed.Reason)

	category := matchAllowed(parsed.Category, allowed)
	if category == "" {
		if reason == "" {
			reason = "no_valid_category"
		}
		return Suggestion{Confidence: confidence, Reason: reason}
	}
	if reason == "" {
		reason = "ai_suggested"
	}
	return Suggestion{Category: category, Confidence: confidence, Reason: reason}
}

// SuggestForRows suggests a category for every staging row not in skip,
// keyed by row id. Rows marked for deletion are skipped so the caller does
// not pay for suggestions it will discard.
func (s *Service) SuggestForRows(ctx context.Context, rows []model.StagingTransaction, allowed []string, skip map[uint]bool) map[uint]Suggestion {
	suggestions := make(map[uint]Suggestion, len(rows))
	for _, row := range rows {
		if skip[row.ID] {
			continue
		}
		var amountEUR *decimal.Decimal
		if row.AmountEUR.Valid {
			d := row.AmountEUR.Decimal
			amountEUR = &d
		}
		suggestions[row.ID] = s.Suggest(ctx, row.Description, row.AccountName, amountEUR, allowed)
	}
	return suggestions
}

func buildPrompt(description, accountName string, amountEUR *decimal.Decimal, allowed []string) string {
	var b strings.Builder
	b.WriteString("You categorize personal finance transactions.\n")
	b.WriteString("Return ONLY valid JSON (no markdown, no extra text).\n")
	b.WriteString("Choose category ONLY from the allowed list, or null.\n")
	b.WriteString(`Output schema: { "category": string|null, "confidence": number, "reason": string }` + "\n")
	b.WriteString("confidence is 0..1; reason is a short merchant/keyword cue.\n\n")
	b.WriteString("Allowed categories: " + strings.Join(allowed, ", ") + "\n")
	b.WriteString(fmt.Sprintf("Transaction: description=%q account=%q", description, accountName))
	if amountEUR != nil {
		b.WriteString(" amount_eur=" + amountEUR.StringFixed(2))
	}
	return b.String()
}

// matchAllowed validates the model's category against the allowed list,
// case-insensitively, returning the canonical spelling or "".
func matchAllowed(category *string, allowed []string) string {
	if category == nil {
		return ""
	}
	want := strings.ToLower(strings.TrimSpace(*category))
	if want == "" {
		return ""
	}
	for _, a := range allowed {
		if strings.ToLower(strings.TrimSpace(a)) == want {
			return a
		}
	}
	return ""
}

// stripFences removes ```json fences that the model likes to add.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// geminiGenerator calls the Gemini API.
type geminiGenerator struct {
	apiKey string
}

func (g *geminiGenerator) generate(ctx context.Context, modelName, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	if err != nil {
		return "", fmt.Errorf("creating genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("no text in model response")
	}
	return text.String(), nil
}
