package extract

import (
	"math"
	"testing"

	"github.com/mkravets/compscan/internal/model"
)

const lotTolerance = 1e-6

func TestLotAcres_AllRepresentationsConverge(t *testing.T) {
	// The same 0.35-acre lot in every shape the provider has shipped.
	const wantAcres = 0.35
	sqft := wantAcres * SquareFeetPerAcre

	cases := []struct {
		name string
		rec  model.RawRecord
	}{
		{"direct acres", model.RawRecord{"lotAcres": wantAcres}},
		{"nested acres", model.RawRecord{"lot": map[string]any{"acres": wantAcres}}},
		{"direct square feet", model.RawRecord{"lotSizeSquareFeet": sqft}},
		{"nested square feet", model.RawRecord{"lot": map[string]any{"squareFeet": sqft}}},
		{"ambiguous area, sqft magnitude", model.RawRecord{"lotSizeArea": sqft}},
		{"ambiguous area, acre magnitude", model.RawRecord{"lotSizeArea": wantAcres}},
		{"string with acre keyword", model.RawRecord{"lotSize": "0.35 acres"}},
		{"string with sqft keyword", model.RawRecord{"lotSize": "15,246 sqft"}},
		{"string without keyword", model.RawRecord{"lotSize": "15246"}},
	}

	for _, tc := range cases {
		got := LotAcres(tc.rec)
		if got == nil {
			t.Errorf("%s: expected a value, got nil", tc.name)
			continue
		}
		if math.Abs(*got-wantAcres) > lotTolerance {
			t.Errorf("%s: expected %.4f acres, got %.6f", tc.name, wantAcres, *got)
		}
	}
}

func TestLotAcres_PrecedenceOverUnits(t *testing.T) {
	// A direct acres field wins even when a square-feet field disagrees.
	rec := model.RawRecord{
		"lotAcres":          0.5,
		"lotSizeSquareFeet": float64(10000),
	}

	got := LotAcres(rec)
	if got == nil || *got != 0.5 {
		t.Errorf("Expected direct acres 0.5 to win, got %v", got)
	}
}

func TestLotAcres_NoLotData(t *testing.T) {
	rec := model.RawRecord{"listPrice": float64(450000)}

	if got := LotAcres(rec); got != nil {
		t.Errorf("Expected nil for missing lot data, got %v", *got)
	}
}

func TestLotAcres_QuotedSquareFeetString(t *testing.T) {
	rec := model.RawRecord{"lot": map[string]any{"squareFeet": `"21780"`}}

	got := LotAcres(rec)
	if got == nil {
		t.Fatal("Expected quoted square feet to parse, got nil")
	}
	if math.Abs(*got-0.5) > lotTolerance {
		t.Errorf("Expected 0.5 acres, got %.6f", *got)
	}
}
