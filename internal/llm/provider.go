// Package llm generates an optional narrative over a finished report.
// The summary is produced after aggregation and is strictly
// presentational: nothing here ever feeds back into a statistic.
package llm

import (
	"context"
	"fmt"
	"sort"

	"github.com/mkravets/compscan/internal/model"
)

// Provider is one LLM backend.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest carries the finished report and generation limits.
type SummarizeRequest struct {
	Report    model.CMAReport
	Prompt    string // optional override; empty means BuildPrompt
	Model     string
	MaxTokens int
}

// SummarizeResponse is the provider output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider settings.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// ConfigFromModel converts the app-level LLM config.
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

// BuildPrompt renders the default prompt. Only the already-computed
// numbers go in; the model is told to describe them, not to invent
// valuations of its own.
func BuildPrompt(report model.CMAReport) string {
	prompt := fmt.Sprintf(`You are writing a short market commentary for a comparative market analysis.

RULES:
1. Use ONLY the numbers given below. Do not estimate, extrapolate, or invent figures.
2. Do not assert what any specific property is worth.
3. If a statistic has zero samples, say the data was insufficient for it.

Subject: %s
Comparables: %d (of %d records, %d excluded as rentals/leases)

Statistics:
`, report.Subject, len(report.Comparables), report.RecordsIn, report.Excluded)

	names := make([]string, 0, len(report.Statistics))
	for name := range report.Statistics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := report.Statistics[name]
		if s.Samples == 0 {
			prompt += fmt.Sprintf("- %s: no usable data\n", name)
			continue
		}
		prompt += fmt.Sprintf("- %s: min %.0f, max %.0f, average %.0f, median %.0f (%d samples)\n",
			name, s.Min, s.Max, s.Average, s.Median, s.Samples)
	}

	prompt += "\nWrite 3-4 sentences describing the market picture these comparables paint."
	return prompt
}
