package advisor

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *stubGenerator) generate(_ context.Context, _, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.response, g.err
}

var allowed = []string{"Groceries", "Transportation", "Income"}

func stubService(response string, err error) (*Service, *stubGenerator) {
	gen := &stubGenerator{response: response, err: err}
	return &Service{enabled: true, model: "test-model", gen: gen}, gen
}

func TestSuggest_Disabled(t *testing.T) {
	svc := New(false, "gemini-1.5-flash", "key")
	got := svc.Suggest(context.Background(), "Konzum", "Erste", nil, allowed)
	assert.Empty(t, got.Category)
	assert.Zero(t, got.Confidence)
	assert.Equal(t, "ai_disabled", got.Reason)
}

func TestSuggest_NoAllowedCategories(t *testing.T) {
	svc, _ := stubService("{}", nil)
	got := svc.Suggest(context.Background(), "Konzum", "", nil, nil)
	assert.Equal(t, "no_allowed_categories", got.Reason)
}

func TestSuggest_EmptyDescription(t *testing.T) {
	svc, gen := stubService("{}", nil)
	got := svc.Suggest(context.Background(), "   ", "", nil, allowed)
	assert.Equal(t, "empty_description", got.Reason)
	assert.Empty(t, gen.prompts)
}

func TestSuggest_MissingAPIKey(t *testing.T) {
	svc := New(true, "gemini-1.5-flash", "")
	got := svc.Suggest(context.Background(), "Konzum", "", nil, allowed)
	assert.Equal(t, "missing_api_key", got.Reason)
}

func TestSuggest_GeneratorFailure(t *testing.T) {
	svc, _ := stubService("", assert.AnError)
	got := svc.Suggest(context.Background(), "Konzum", "", nil, allowed)
	assert.Empty(t, got.Category)
	assert.Equal(t, "ai_error", got.Reason)
}

func TestSuggest_MalformedJSON(t *testing.T) {
	svc, _ := stubService("definitely not json", nil)
	got := svc.Suggest(context.Background(), "Konzum", "", nil, allowed)
	assert.Equal(t, "ai_error", got.Reason)
}

func TestSuggest_ValidResponse(t *testing.T) {
	svc, _ := stubService(`{"category": "Groceries", "confidence": 0.92, "reason": "supermarket"}`, nil)
	got := svc.Suggest(context.Background(), "Konzum Zagreb", "Erste", nil, allowed)
	assert.Equal(t, "Groceries", got.Category)
	assert.InDelta(t, 0.92, got.Confidence, 0.001)
	assert.Equal(t, "supermarket", got.Reason)
}

func TestSuggest_FencedResponse(t *testing.T) {
	svc, _ := stubService("```json\n{\"category\": \"Income\", \"confidence\": 0.8, \"reason\": \"payroll\"}\n```", nil)
	got := svc.Suggest(context.Background(), "Payroll transfer", "", nil, allowed)
	assert.Equal(t, "Income", got.Category)
}

func TestSuggest_CategoryCaseInsensitive(t *testing.T) {
	svc, _ := stubService(`{"category": "groceries", "confidence": 0.7, "reason": "food"}`, nil)
	got := svc.Suggest(context.Background(), "Konzum", "", nil, allowed)
	// Canonical spelling from the allowed list wins.
	assert.Equal(t, "Groceries", got.Category)
}

func TestSuggest_CategoryOutsideAllowedList(t *testing.T) {
	svc, _ := stubService(`{"category": "Gambling", "confidence": 0.9, "reason": "casino"}`, nil)
	got := svc.Suggest(context.Background(), "Casino Royale", "", nil, allowed)
	assert.Empty(t, got.Category)
	assert.Equal(t, "casino", got.Reason)
}

func TestSuggest_NullCategory(t *testing.T) {
	svc, _ := stubService(`{"category": null, "confidence": 0, "reason": ""}`, nil)
	got := svc.Suggest(context.Background(), "???", "", nil, allowed)
	assert.Empty(t, got.Category)
	assert.Equal(t, "no_valid_category", got.Reason)
}

func TestSuggest_ConfidenceClamped(t *testing.T) {
	svc, _ := stubService(`{"category": "Groceries", "confidence": 3.5, "reason": "x"}`, nil)
	got := svc.Suggest(context.Background(), "Konzum", "", nil, allowed)
	assert.InDelta(t, 1.0, got.Confidence, 0.001)

	svc, _ = stubService(`{"category": "Groceries", "confidence": -0.5, "reason": "x"}`, nil)
	got = svc.Suggest(context.Background(), "Konzum", "", nil, allowed)
	assert.Zero(t, got.Confidence)
}

func TestSuggest_AmountInPrompt(t *testing.T) {
	svc, gen := stubService(`{"category": "Groceries", "confidence": 0.9, "reason": "x"}`, nil)
	amt := decimal.NewFromFloat(-12.45)
	svc.Suggest(context.Background(), "Konzum", "Erste", &amt, allowed)
	assert.Contains(t, gen.prompts[0], "amount_eur=-12.45")
	assert.Contains(t, gen.prompts[0], "Groceries, Transportation, Income")
}

func TestSuggestForRows_SkipsMarked(t *testing.T) {
	svc, _ := stubService(`{"category": "Groceries", "confidence": 0.9, "reason": "x"}`, nil)

	rows := []model.StagingTransaction{
		{ID: 1, Description: "Konzum"},
		{ID: 2, Description: "Spotify"},
		{ID: 3, Description: "Lidl"},
	}
	got := svc.SuggestForRows(context.Background(), rows, allowed, map[uint]bool{2: true})

	assert.Len(t, got, 2)
	assert.Contains(t, got, uint(1))
	assert.NotContains(t, got, uint(2))
	assert.Equal(t, "Groceries", got[3].Category)
}
