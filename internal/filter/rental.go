// Package filter gates raw records before extraction. Rental and lease
// listings must never enter a comparable set, whatever field the
// provider used to say so.
package filter

import (
	"strings"

	"github.com/mkravets/compscan/internal/model"
)

// exactLeaseTypes trip the exact-match check on the dedicated type
// field. Exact match runs before any substring check so that sale
// listings with lease-adjacent names are not excluded by accident.
var exactLeaseTypes = map[string]bool{
	"lease":  true,
	"rental": true,
	"rent":   true,
}

var leaseKeywords = []string{"lease", "rental", "rent"}

// keywordPaths are the fields scanned for lease keywords, in the shapes
// the provider has used across endpoint vintages.
var keywordPaths = []string{
	"transactionType",
	"category",
	"listingCategory",
	"propertyType",
	"propertySubType",
	"details.propertyType",
	"details.propertySubType",
	"class",
}

// Excluded reports whether a raw record is a rental/lease listing.
// It is total over arbitrary input, side-effect-free, and idempotent;
// unrecognized shapes are not excluded.
func Excluded(rec model.RawRecord) bool {
	if rec == nil {
		return false
	}

	if s, ok := rec.LookupString("type"); ok {
		if exactLeaseTypes[strings.ToLower(strings.TrimSpace(s))] {
			return true
		}
	}

	for _, path := range keywordPaths {
		s, ok := rec.LookupString(path)
		if !ok {
			continue
		}
		lower := strings.ToLower(s)
		for _, kw := range leaseKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}

	// A populated lease-type field is sufficient on its own, whatever
	// value it holds.
	if _, ok := rec.Lookup("leaseType"); ok {
		return true
	}
	if _, ok := rec.Lookup("details.leaseType"); ok {
		return true
	}

	return false
}
