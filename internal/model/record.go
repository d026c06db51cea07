package model

import "strings"

// RawRecord is an untyped property record as decoded from the listing
// provider's JSON. Field names and value shapes vary by endpoint and data
// vintage, so nothing here is trusted until it passes through the extractor.
// Records are read-only input and are never mutated.
type RawRecord map[string]any

// Lookup resolves a dotted field path ("lot.acres") against the record.
// The second return value reports whether every segment was present and
// the final value non-nil.
func (r RawRecord) Lookup(path string) (any, bool) {
	if r == nil {
		return nil, false
	}

	var current any = map[string]any(r)
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}

	if current == nil {
		return nil, false
	}
	return current, true
}

// LookupString resolves a dotted path to a trimmed string. Non-string
// values and empty strings report false.
func (r RawRecord) LookupString(path string) (string, bool) {
	val, ok := r.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}
