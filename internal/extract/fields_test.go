package extract

import (
	"math"
	"testing"

	"github.com/mkravets/compscan/internal/model"
)

func TestNumber_FieldAliasPrecedence(t *testing.T) {
	rec := model.RawRecord{
		"price":     float64(999999),
		"listPrice": float64(450000),
	}

	got := Number(rec, MetricListPrice)
	if got == nil {
		t.Fatal("Expected a value, got nil")
	}
	if *got != 450000 {
		t.Errorf("Expected listPrice alias to win, got %v", *got)
	}
}

func TestNumber_MissingEveryCandidate(t *testing.T) {
	rec := model.RawRecord{
		"unrelated": "field",
		"address":   map[string]any{"city": "Fort Worth"},
	}

	for _, metric := range []Metric{
		MetricListPrice, MetricSoldPrice, MetricSqft,
		MetricDaysOnMarket, MetricBeds, MetricBaths,
	} {
		if got := Number(rec, metric); got != nil {
			t.Errorf("Metric %s: expected nil for absent fields, got %v", metric, *got)
		}
	}
}

func TestNumber_InvalidValueFallsThrough(t *testing.T) {
	// First alias parses but fails the > 0 check; second alias is valid.
	rec := model.RawRecord{
		"listPrice":    float64(0),
		"listingPrice": "525000",
	}

	got := Number(rec, MetricListPrice)
	if got == nil {
		t.Fatal("Expected fallback to listingPrice, got nil")
	}
	if *got != 525000 {
		t.Errorf("Expected 525000, got %v", *got)
	}
}

func TestNumber_ZeroBedsIsValid(t *testing.T) {
	rec := model.RawRecord{"beds": float64(0)}

	got := Number(rec, MetricBeds)
	if got == nil {
		t.Fatal("Expected 0 beds to be accepted (studio), got nil")
	}
	if *got != 0 {
		t.Errorf("Expected 0, got %v", *got)
	}
}

func TestParseNumber_SanitizesProviderNoise(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"plain number", float64(450000), 450000, true},
		{"numeric string", "450000", 450000, true},
		{"currency and commas", "$450,000", 450000, true},
		{"double-encoded quotes", `"389900"`, 389900, true},
		{"single quotes", "'1250.5'", 1250.5, true},
		{"unit suffix", "1,200 sqft", 1200, true},
		{"negative", "-12", -12, true},
		{"empty string", "", 0, false},
		{"garbage", "n/a", 0, false},
		{"nan", math.NaN(), 0, false},
		{"bool", true, 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseNumber(tc.in)
		if ok != tc.ok {
			t.Errorf("%s: expected ok=%v, got %v", tc.name, tc.ok, ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestNumber_NestedPath(t *testing.T) {
	rec := model.RawRecord{
		"details": map[string]any{"sqft": "2,340"},
	}

	got := Number(rec, MetricSqft)
	if got == nil {
		t.Fatal("Expected nested details.sqft to resolve, got nil")
	}
	if *got != 2340 {
		t.Errorf("Expected 2340, got %v", *got)
	}
}
