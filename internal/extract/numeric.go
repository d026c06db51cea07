package extract

import (
	"math"
	"strconv"
	"strings"

	"github.com/mkravets/compscan/internal/model"
)

// ParseNumber converts an arbitrary raw value into a float64. It accepts
// JSON numbers, numeric strings, and double-encoded strings left over
// from upstream re-serialization (stray quote characters around the
// digits). Currency symbols and thousands separators are stripped.
// Every extractor funnels through here so the sanitation rules live in
// exactly one place.
func ParseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if !isFinite(n) {
			return 0, false
		}
		return n, true
	case float32:
		return ParseNumber(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return parseNumericString(n)
	default:
		return 0, false
	}
}

func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`) // double JSON-encoding leaves these behind
	s = strings.TrimSpace(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == ',', r == '$', r == ' ':
			// currency noise, skip
		default:
			// A unit suffix ("1,200 sqft") ends the numeric run.
			if b.Len() > 0 {
				return finishParse(b.String())
			}
			return 0, false
		}
	}
	return finishParse(b.String())
}

func finishParse(s string) (float64, bool) {
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// fieldRule is one row of the declarative extraction table: the ordered
// candidate paths for a metric and the domain validity check a parsed
// value must pass before it is accepted.
type fieldRule struct {
	paths []string
	valid func(float64) bool
}

// numberFrom walks the rule's candidate paths in order and returns the
// first value that parses and validates. Exhausting every candidate
// yields nil, never a zero standing in for "unknown".
func numberFrom(rec model.RawRecord, rule fieldRule) *float64 {
	for _, path := range rule.paths {
		raw, ok := rec.Lookup(path)
		if !ok {
			continue
		}
		f, ok := ParseNumber(raw)
		if !ok {
			continue
		}
		if rule.valid != nil && !rule.valid(f) {
			continue
		}
		v := f
		return &v
	}
	return nil
}

func positive(f float64) bool    { return f > 0 }
func nonNegative(f float64) bool { return f >= 0 }
