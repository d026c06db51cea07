package photos

import (
	"testing"

	"github.com/mkravets/compscan/internal/model"
)

func TestScore_QualityBuckets(t *testing.T) {
	s := newTestScorer()

	excellent := s.score(model.PhotoCandidate{Quality: "Excellent"}, nil)
	above := s.score(model.PhotoCandidate{Quality: "Above Average"}, nil)
	average := s.score(model.PhotoCandidate{Quality: "average"}, nil)
	below := s.score(model.PhotoCandidate{Quality: "Below Average"}, nil)

	if !(excellent > above && above > average && average > below) {
		t.Errorf("Bucket ordering broken: %v %v %v %v", excellent, above, average, below)
	}
}

func TestScore_QuantitativeQualityOverridesBucket(t *testing.T) {
	s := newTestScorer()

	q := 100.0
	numeric := s.score(model.PhotoCandidate{Quality: "below average", QualityScore: &q}, nil)
	bucket := s.score(model.PhotoCandidate{Quality: "below average"}, nil)
	if numeric <= bucket {
		t.Errorf("Numeric quality 100 should outrank the bucket, got %v vs %v", numeric, bucket)
	}
}

func TestScore_MissingMetadataGetsMidRangeDefault(t *testing.T) {
	s := newTestScorer()

	bare := s.score(model.PhotoCandidate{}, exteriorKeywords)
	if bare != defaultQuality {
		t.Errorf("Expected default quality only, got %v", bare)
	}
}

func TestScore_KeywordBonusDecreasesWithRank(t *testing.T) {
	s := newTestScorer()

	front := s.score(model.PhotoCandidate{Classification: "Front of Structure"}, exteriorKeywords)
	generic := s.score(model.PhotoCandidate{Classification: "Exterior"}, exteriorKeywords)
	if front <= generic {
		t.Errorf("Higher-priority keyword must score higher: %v vs %v", front, generic)
	}
}

func TestKeywordRank_FirstMatchOnly(t *testing.T) {
	// Matches both "front of structure" (rank 0) and "exterior" (rank 2);
	// only the best rank counts.
	if got := keywordRank("exterior front of structure", exteriorKeywords); got != 0 {
		t.Errorf("Expected rank 0, got %d", got)
	}
	if got := keywordRank("pool area", exteriorKeywords); got != -1 {
		t.Errorf("Expected no match, got %d", got)
	}
}

func TestResolveURL(t *testing.T) {
	cases := []struct {
		in, base, want string
	}{
		{"https://a/b.jpg", "https://cdn.x", "https://a/b.jpg"},
		{"/listings/1.jpg", "https://cdn.x/", "https://cdn.x/listings/1.jpg"},
		{"listings/1.jpg", "https://cdn.x", "https://cdn.x/listings/1.jpg"},
		{"  ", "https://cdn.x", ""},
	}

	for _, tc := range cases {
		if got := ResolveURL(tc.in, tc.base); got != tc.want {
			t.Errorf("ResolveURL(%q, %q): expected %q, got %q", tc.in, tc.base, tc.want, got)
		}
	}
}

func TestNormalizeConfidence(t *testing.T) {
	cases := map[float64]float64{
		0.5:  50,
		1:    100,
		87:   87,
		150:  100,
		0:    0,
		-3:   0,
		0.01: 1,
	}

	for in, want := range cases {
		if got := normalizeConfidence(in); got != want {
			t.Errorf("normalizeConfidence(%v): expected %v, got %v", in, want, got)
		}
	}
}
