// Package tokens estimates token counts for prompts before they are sent
// to a deployment, so callers can size maxTokens budgets and trim inputs
// client-side instead of discovering limits through API errors.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// defaultEncoding is the cl100k_base encoding used by most current
// instruction-tuned models.
const defaultEncoding = "cl100k_base"

// Counter counts tokens in text.
type Counter interface {
	CountText(text string) int
	CountTexts(texts []string) int
	Truncate(text string, maxTokens int) string
}

// TiktokenCounter counts tokens with a tiktoken byte-pair encoder.
type TiktokenCounter struct {
	encoder *tiktoken.Tiktoken
}

var _ Counter = (*TiktokenCounter)(nil)

// NewCounter creates a counter using the cl100k_base encoding.
func NewCounter() (*TiktokenCounter, error) {
	encoder, err := tiktoken.GetEncoding(defaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}
	return &TiktokenCounter{encoder: encoder}, nil
}

// NewCounterForModel creates a counter using the encoding registered for
// the given model name.
func NewCounterForModel(model string) (*TiktokenCounter, error) {
	encoder, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding for model %q: %w", model, err)
	}
	return &TiktokenCounter{encoder: encoder}, nil
}

// CountText counts the tokens in plain text.
func (tc *TiktokenCounter) CountText(text string) int {
	return len(tc.encoder.Encode(text, nil, nil))
}

// CountTexts counts the tokens across a slice of texts.
func (tc *TiktokenCounter) CountTexts(texts []string) int {
	total := 0
	for _, text := range texts {
		total += tc.CountText(text)
	}
	return total
}

// Truncate cuts text down to at most maxTokens tokens. Text that already
// fits is returned unchanged.
func (tc *TiktokenCounter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	toks := tc.encoder.Encode(text, nil, nil)
	if len(toks) <= maxTokens {
		return text
	}
	return tc.encoder.Decode(toks[:maxTokens])
}
