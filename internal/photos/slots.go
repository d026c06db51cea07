package photos

import (
	"fmt"
	"sort"

	"github.com/mkravets/compscan/internal/model"
)

// Select assigns candidates to the three report slots. Assignment order
// matters: the main slot claims first, and later slots only see
// unclaimed URLs, so no URL ever fills two slots.
func (s *Scorer) Select(candidates []model.PhotoCandidate) model.PhotoSelection {
	var sel model.PhotoSelection
	claimed := make(map[string]bool)

	sel.Main = s.selectMain(candidates, claimed, &sel.MissingCategories)
	sel.Kitchen = s.selectKitchen(candidates, claimed, &sel.MissingCategories)
	sel.Room = s.selectRoom(candidates, claimed, &sel.MissingCategories)

	return sel
}

// selectMain fills the primary exterior slot. Preference order: a
// confident exterior classification, then any exterior classification,
// then the single best-scoring photo overall. The two fallback tiers
// record the exterior category as missing so callers know the slot was
// not confidently filled.
func (s *Scorer) selectMain(candidates []model.PhotoCandidate, claimed map[string]bool, missing *[]string) model.SlotSelection {
	if len(candidates) == 0 {
		*missing = append(*missing, CategoryExterior)
		return model.SlotSelection{Reason: "no photo candidates"}
	}

	confident := filterCandidates(candidates, func(c model.PhotoCandidate) bool {
		return keywordRank(c.Classification, exteriorKeywords) >= 0 &&
			c.Confidence >= s.cfg.ExteriorConfidence
	})
	if best, ok := s.bestByScore(confident, exteriorKeywords); ok {
		claimed[best.URL] = true
		return model.SlotSelection{
			URL:              best.URL,
			IsAISelected:     true,
			CategoryMismatch: s.mismatch(best, exteriorKeywords),
			Reason:           fmt.Sprintf("ai: %s (%.0f%%)", best.Classification, best.Confidence),
		}
	}

	anyExterior := filterCandidates(candidates, func(c model.PhotoCandidate) bool {
		return keywordRank(c.Classification, exteriorKeywords) >= 0
	})
	if best, ok := s.bestByScore(anyExterior, exteriorKeywords); ok {
		*missing = append(*missing, CategoryExterior)
		claimed[best.URL] = true
		return model.SlotSelection{
			URL:              best.URL,
			CategoryMismatch: s.mismatch(best, exteriorKeywords),
			Reason:           "low-confidence exterior fallback",
		}
	}

	best, _ := s.bestByScore(candidates, exteriorKeywords)
	*missing = append(*missing, CategoryExterior)
	claimed[best.URL] = true
	return model.SlotSelection{
		URL:              best.URL,
		CategoryMismatch: s.mismatch(best, exteriorKeywords),
		Reason:           "best available photo",
	}
}

// selectKitchen fills the kitchen slot from unclaimed candidates by
// highest confidence. Unlike the main slot it never falls back to an
// arbitrary photo; an empty pool leaves the slot unfilled.
func (s *Scorer) selectKitchen(candidates []model.PhotoCandidate, claimed map[string]bool, missing *[]string) model.SlotSelection {
	pool := filterCandidates(candidates, func(c model.PhotoCandidate) bool {
		return !claimed[c.URL] && keywordRank(c.Classification, kitchenKeywords) >= 0
	})
	if len(pool) == 0 {
		*missing = append(*missing, CategoryKitchen)
		return model.SlotSelection{Reason: "no kitchen candidate"}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Confidence > pool[j].Confidence
	})
	best := pool[0]
	claimed[best.URL] = true
	return model.SlotSelection{
		URL:              best.URL,
		IsAISelected:     true,
		CategoryMismatch: s.mismatch(best, kitchenKeywords),
		Reason:           fmt.Sprintf("ai: %s (%.0f%%)", best.Classification, best.Confidence),
	}
}

// selectRoom fills the living-area slot from unclaimed candidates by
// keyword priority rank, then confidence. No arbitrary fallback.
func (s *Scorer) selectRoom(candidates []model.PhotoCandidate, claimed map[string]bool, missing *[]string) model.SlotSelection {
	pool := filterCandidates(candidates, func(c model.PhotoCandidate) bool {
		return !claimed[c.URL] && keywordRank(c.Classification, roomKeywords) >= 0
	})
	if len(pool) == 0 {
		*missing = append(*missing, CategoryLivingRoom)
		return model.SlotSelection{Reason: "no living-area candidate"}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		ri := keywordRank(pool[i].Classification, roomKeywords)
		rj := keywordRank(pool[j].Classification, roomKeywords)
		if ri != rj {
			return ri < rj
		}
		return pool[i].Confidence > pool[j].Confidence
	})
	best := pool[0]
	claimed[best.URL] = true
	return model.SlotSelection{
		URL:              best.URL,
		IsAISelected:     true,
		CategoryMismatch: s.mismatch(best, roomKeywords),
		Reason:           fmt.Sprintf("ai: %s (%.0f%%)", best.Classification, best.Confidence),
	}
}

// mismatch flags a filled slot whose photo does not actually belong to
// the slot's category, or whose classification confidence is too low to
// trust, even when it was the best available fallback.
func (s *Scorer) mismatch(c model.PhotoCandidate, keywords []string) bool {
	if keywordRank(c.Classification, keywords) < 0 {
		return true
	}
	return c.Confidence < s.cfg.MismatchConfidence
}

// bestByScore returns the highest-scoring candidate; ties keep input
// order because the sort is stable.
func (s *Scorer) bestByScore(pool []model.PhotoCandidate, keywords []string) (model.PhotoCandidate, bool) {
	if len(pool) == 0 {
		return model.PhotoCandidate{}, false
	}
	sorted := make([]model.PhotoCandidate, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return s.score(sorted[i], keywords) > s.score(sorted[j], keywords)
	})
	return sorted[0], true
}

func filterCandidates(candidates []model.PhotoCandidate, keep func(model.PhotoCandidate) bool) []model.PhotoCandidate {
	var out []model.PhotoCandidate
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
