// Package photos ranks a property's photo candidates and assigns them
// to the semantic report slots (main exterior, kitchen, living area).
// Scoring is deterministic and explainable: fixed bonus tiers summed
// into one ranking score, ties broken by input order.
package photos

import (
	"strings"

	"github.com/mkravets/compscan/internal/model"
)

// Slot category names as reported in MissingCategories.
const (
	CategoryExterior   = "Exterior"
	CategoryKitchen    = "Kitchen"
	CategoryLivingRoom = "Living Room"
)

// Keyword lists in priority order: earlier entries outrank later ones,
// so "front of structure" beats a generic "exterior" classification.
var (
	exteriorKeywords = []string{"front of structure", "exterior front", "exterior", "aerial view", "yard"}
	kitchenKeywords  = []string{"kitchen", "breakfast area", "breakfast room"}
	roomKeywords     = []string{"living room", "family room", "great room", "dining room", "bedroom"}
)

// Bonus weights for the ranking score.
const (
	qualityBonusMax    = 40.0 // quantitative quality 0-100 rescales into [0, 40]
	keywordBonusBase   = 25.0 // decreases by keywordBonusStep per rank position
	keywordBonusStep   = 3.0
	keywordBonusFloor  = 5.0
	confidenceBonusMax = 15.0
	defaultQuality     = 20.0 // mid-range bucket when metadata is absent
)

// Qualitative quality buckets.
var qualityBuckets = map[string]float64{
	"excellent":     40,
	"above average": 30,
	"average":       20,
	"below average": 10,
}

// Scorer carries the confidence thresholds and CDN base used for
// candidate preparation and slot assignment.
type Scorer struct {
	cfg     model.PhotosConfig
	cdnBase string
}

// NewScorer creates a scorer. Zero thresholds fall back to defaults.
func NewScorer(cfg model.PhotosConfig, cdnBase string) *Scorer {
	def := model.DefaultConfig().Photos
	if cfg.ExteriorConfidence <= 0 {
		cfg.ExteriorConfidence = def.ExteriorConfidence
	}
	if cfg.MismatchConfidence <= 0 {
		cfg.MismatchConfidence = def.MismatchConfidence
	}
	return &Scorer{cfg: cfg, cdnBase: cdnBase}
}

// BuildCandidates prepares the candidate list for one property: insight
// metadata when available, bare photo URLs otherwise. URLs are resolved
// against the CDN base and confidences normalized to 0-100 before any
// scoring happens.
func (s *Scorer) BuildCandidates(photoURLs []string, insight *model.InsightResult) []model.PhotoCandidate {
	if insight != nil && insight.Available && len(insight.Photos) > 0 {
		out := make([]model.PhotoCandidate, 0, len(insight.Photos))
		for i, p := range insight.Photos {
			p.URL = ResolveURL(p.URL, s.cdnBase)
			p.Confidence = normalizeConfidence(p.Confidence)
			p.Index = i
			if p.URL != "" {
				out = append(out, p)
			}
		}
		return out
	}

	out := make([]model.PhotoCandidate, 0, len(photoURLs))
	for i, u := range photoURLs {
		resolved := ResolveURL(u, s.cdnBase)
		if resolved == "" {
			continue
		}
		out = append(out, model.PhotoCandidate{URL: resolved, Index: i})
	}
	return out
}

// score computes the ranking score for one candidate within a category
// keyword list. All bonuses are additive; a candidate with no metadata
// degrades to the default mid-range quality, it never errors out.
func (s *Scorer) score(c model.PhotoCandidate, keywords []string) float64 {
	total := qualityBonus(c)

	if rank := keywordRank(c.Classification, keywords); rank >= 0 {
		bonus := keywordBonusBase - keywordBonusStep*float64(rank)
		if bonus < keywordBonusFloor {
			bonus = keywordBonusFloor
		}
		total += bonus
	}

	total += clamp(c.Confidence, 0, 100) / 100 * confidenceBonusMax
	return total
}

func qualityBonus(c model.PhotoCandidate) float64 {
	if c.QualityScore != nil {
		return clamp(*c.QualityScore, 0, 100) / 100 * qualityBonusMax
	}
	if b, ok := qualityBuckets[strings.ToLower(strings.TrimSpace(c.Quality))]; ok {
		return b
	}
	return defaultQuality
}

// keywordRank returns the position of the first keyword contained in
// the classification, or -1. First match only: a classification that
// matches several keywords scores at its best rank.
func keywordRank(classification string, keywords []string) int {
	c := strings.ToLower(strings.TrimSpace(classification))
	if c == "" {
		return -1
	}
	for i, kw := range keywords {
		if strings.Contains(c, kw) {
			return i
		}
	}
	return -1
}

// normalizeConfidence maps provider confidences onto the 0-100 scale.
// Values at or below 1 are treated as probabilities.
func normalizeConfidence(c float64) float64 {
	if c > 0 && c <= 1 {
		c *= 100
	}
	return clamp(c, 0, 100)
}

// ResolveURL resolves a provider-relative photo path against the fixed
// CDN base. Absolute URLs pass through untouched.
func ResolveURL(u, base string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if base == "" {
		return u
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(u, "/")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
