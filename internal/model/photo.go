package model

// PhotoCandidate is one photo considered for a report slot, optionally
// annotated with classification metadata from the insight service.
// Confidence is normalized to the 0-100 scale before scoring; providers
// that report 0-1 probabilities are rescaled on ingest.
type PhotoCandidate struct {
	URL            string   `json:"url"`
	Classification string   `json:"classification,omitempty"`
	Confidence     float64  `json:"confidence,omitempty"`
	Quality        string   `json:"quality,omitempty"`       // qualitative bucket, e.g. "Excellent"
	QualityScore   *float64 `json:"quality_score,omitempty"` // quantitative 0-100, if the provider sends one
	Index          int      `json:"index"`
}

// SlotSelection is the outcome for one semantic report slot.
type SlotSelection struct {
	URL              string `json:"url,omitempty"` // empty means the slot was left unfilled
	IsAISelected     bool   `json:"is_ai_selected"`
	CategoryMismatch bool   `json:"category_mismatch"`
	Reason           string `json:"reason,omitempty"`
}

// PhotoSelection holds the per-slot results for one property plus the
// categories that could not be confidently filled.
type PhotoSelection struct {
	Main    SlotSelection `json:"main"`
	Kitchen SlotSelection `json:"kitchen"`
	Room    SlotSelection `json:"room"`

	MissingCategories   []string `json:"missing_categories,omitempty"`
	InsightsUnavailable bool     `json:"insights_unavailable,omitempty"`
}

// InsightResult is the decoded photo-insight payload for one listing.
// Available false means the service had nothing for the listing; callers
// degrade to the positional default selection.
type InsightResult struct {
	Available bool             `json:"available"`
	Photos    []PhotoCandidate `json:"photos,omitempty"`
}
