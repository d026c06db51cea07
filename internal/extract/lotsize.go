package extract

import (
	"strings"

	"github.com/mkravets/compscan/internal/model"
)

// SquareFeetPerAcre converts square-foot lot measurements to acres.
const SquareFeetPerAcre = 43_560.0

// Lot sizes are the worst-shaped field in provider data: the same lot
// can arrive as acres, square feet, an ambiguous "area" number, or a
// free-text string with or without a unit. The fallbacks below run in
// strict order; a value below any magnitude cutoff of 100 in the
// ambiguous cases is assumed to already be acres.
var (
	lotAcresPaths     = []string{"lotAcres", "acres", "lotSizeAcres"}
	lotNestedAcres    = []string{"lot.acres", "lot.sizeAcres"}
	lotSqftPaths      = []string{"lotSizeSquareFeet", "lotSqft"}
	lotNestedSqft     = []string{"lot.squareFeet", "lot.sqft"}
	lotAmbiguousPaths = []string{"lotSizeArea", "lotArea", "lot.size"}
	lotStringPaths    = []string{"lotSize", "lotDescription", "lot.legalDescription"}
)

const lotMagnitudeCutoff = 100 // above this, an ambiguous area is square feet

// LotAcres extracts the lot size in acres, or nil when no representation
// yields a positive value.
func LotAcres(rec model.RawRecord) *float64 {
	if v := firstPositive(rec, lotAcresPaths); v != nil {
		return v
	}
	if v := firstPositive(rec, lotNestedAcres); v != nil {
		return v
	}
	if v := firstPositive(rec, lotSqftPaths); v != nil {
		acres := *v / SquareFeetPerAcre
		return &acres
	}
	if v := firstPositive(rec, lotNestedSqft); v != nil {
		acres := *v / SquareFeetPerAcre
		return &acres
	}
	if v := firstPositive(rec, lotAmbiguousPaths); v != nil {
		acres := disambiguateByMagnitude(*v)
		return &acres
	}
	return lotAcresFromString(rec)
}

func firstPositive(rec model.RawRecord, paths []string) *float64 {
	return numberFrom(rec, fieldRule{paths: paths, valid: positive})
}

func disambiguateByMagnitude(v float64) float64 {
	if v > lotMagnitudeCutoff {
		return v / SquareFeetPerAcre
	}
	return v
}

// lotAcresFromString handles free-text lot fields like "0.38 acres" or
// "16,500 sqft". A unit keyword settles the interpretation; without one
// the magnitude heuristic applies.
func lotAcresFromString(rec model.RawRecord) *float64 {
	for _, path := range lotStringPaths {
		s, ok := rec.LookupString(path)
		if !ok {
			continue
		}
		f, parsed := ParseNumber(s)
		if !parsed || f <= 0 {
			continue
		}

		lower := strings.ToLower(s)
		var acres float64
		switch {
		case strings.Contains(lower, "acre"):
			acres = f
		case strings.Contains(lower, "sqft"), strings.Contains(lower, "sq ft"),
			strings.Contains(lower, "square"):
			acres = f / SquareFeetPerAcre
		default:
			acres = disambiguateByMagnitude(f)
		}
		return &acres
	}
	return nil
}
