package llm

import (
	"context"
	"fmt"
	"regexp"

	"github.com/mkravets/compscan/internal/model"
)

// Summarizer wraps a configured provider and builds the report-level
// MarketSummary value.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer for the configured provider, or an
// error for an unknown provider name.
func NewSummarizer(config Config) (*Summarizer, error) {
	var provider Provider
	var err error

	switch config.Provider {
	case "openai":
		provider, err = NewOpenAIProvider(config)
	case "":
		return &Summarizer{config: config}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// numberPattern finds dollar-ish figures in generated text for the
// fabrication check.
var numberPattern = regexp.MustCompile(`\$?\d[\d,]{4,}`)

// GenerateSummary produces the market commentary for a finished report.
// The report is passed by value: whatever the provider does, the
// computed statistics cannot be touched.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.CMAReport) (*model.MarketSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	summary := &model.MarketSummary{
		Enabled:    true,
		Provider:   s.provider.Name(),
		Model:      resp.Model,
		SummaryMD:  resp.Summary,
		TokensUsed: resp.TokensUsed,
	}

	if warn := checkFigures(resp.Summary, report); warn != "" {
		summary.Warnings = append(summary.Warnings, warn)
	}

	return summary, nil
}

// checkFigures flags summaries that quote large figures not present in
// any computed statistic. It is a warning, not a rejection: rounded
// restatements are common and harmless.
func checkFigures(summary string, report model.CMAReport) string {
	known := make(map[string]bool)
	for _, s := range report.Statistics {
		for _, v := range []float64{s.Min, s.Max, s.Average, s.Median} {
			known[fmt.Sprintf("%.0f", v)] = true
		}
	}

	matches := numberPattern.FindAllString(summary, -1)
	for _, m := range matches {
		cleaned := stripFigure(m)
		if !known[cleaned] {
			return fmt.Sprintf("summary quotes figure %s not present in computed statistics", m)
		}
	}
	return ""
}

func stripFigure(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
