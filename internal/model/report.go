package model

import "time"

// CMAReport is the complete analysis output for one comparable set:
// the canonical comparables, the per-metric statistics, and optional
// photo selections and LLM commentary.
type CMAReport struct {
	Subject     string    `json:"subject"`
	GeneratedAt time.Time `json:"generated_at"`

	Comparables []Comparable `json:"comparables"`

	// Counts of what the pipeline saw before and after the gate.
	RecordsIn int `json:"records_in"`
	Excluded  int `json:"excluded"`

	Statistics map[string]MarketStatistic `json:"statistics"`

	StatusBreakdown map[CanonicalStatus]int `json:"status_breakdown,omitempty"`

	Photos *PhotoSelection `json:"photos,omitempty"`

	LLM *MarketSummary `json:"llm,omitempty"`
}

// MarketSummary is an optional LLM-written narrative over the computed
// numbers. It is generated after aggregation and never feeds back into
// any statistic.
type MarketSummary struct {
	Enabled    bool     `json:"enabled"`
	Provider   string   `json:"provider,omitempty"`
	Model      string   `json:"model,omitempty"`
	SummaryMD  string   `json:"summary_md,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	TokensUsed int      `json:"tokens_used,omitempty"`
}
