// Package status maps raw provider status strings and short codes onto
// the canonical status enum. The precedence order here is load-bearing:
// naive substring matching classifies "Active Under Contract" as active
// and "For Lease" past the leasing check, both wrong.
package status

import (
	"strings"

	"github.com/mkravets/compscan/internal/model"
)

// Provider short codes, lower-cased. A code match is exact against the
// whole (trimmed) status value.
var (
	leasingCodes   = map[string]bool{"lsd": true, "lse": true}
	closedCodes    = map[string]bool{"sld": true, "cls": true}
	pendingCodes   = map[string]bool{"sc": true, "pc": true, "uc": true}
	activeCodes    = map[string]bool{"act": true, "new": true}
	bomCodes       = map[string]bool{"bom": true}
	withdrawnCodes = map[string]bool{"wdn": true, "sus": true, "ter": true}
	expiredCodes   = map[string]bool{"exp": true}
)

var (
	leasingKeywords = []string{"leasing", "for rent", "rental", "lease"}
	closedKeywords  = []string{"closed", "sold"}
	pendingKeywords = []string{"pending", "under contract"}
)

// Normalize classifies a raw status plus an optional secondary
// last-status value. First match wins; the last-status field is
// consulted for closed sales because a current status can be stale
// relative to a just-closed transaction. Total over arbitrary input:
// anything unrecognized is Unknown.
func Normalize(rawStatus, rawLastStatus string) model.CanonicalStatus {
	current := fold(rawStatus)
	last := fold(rawLastStatus)

	// 1. Leasing: checked first so "for lease" never reads as active.
	if leasingCodes[current] || leasingCodes[last] ||
		containsAny(current, leasingKeywords) {
		return model.StatusLeasing
	}

	// 2. Closed, including when only the last-status field knows.
	if closedCodes[current] || closedCodes[last] ||
		containsAny(current, closedKeywords) || containsAny(last, closedKeywords) {
		return model.StatusClosed
	}

	// 3. Pending / under contract, before the active check so
	// "active under contract" lands here.
	if pendingCodes[current] || containsAny(current, pendingKeywords) {
		return model.StatusPending
	}

	// 4. Active.
	if activeCodes[current] || strings.Contains(current, "active") {
		return model.StatusActive
	}

	// 5. Back on market is treated as active.
	if bomCodes[current] || strings.Contains(current, "back on market") {
		return model.StatusActive
	}

	// 6. Terminal states.
	if withdrawnCodes[current] || strings.Contains(current, "withdrawn") ||
		strings.Contains(current, "suspended") || strings.Contains(current, "terminated") {
		return model.StatusWithdrawn
	}
	if expiredCodes[current] || strings.Contains(current, "expired") {
		return model.StatusExpired
	}

	return model.StatusUnknown
}

var statusPaths = []string{"status", "standardStatus", "listingStatus", "mlsStatus"}
var lastStatusPaths = []string{"lastStatus", "previousStatus"}

// FromRecord classifies a raw record directly, trying the known status
// field aliases.
func FromRecord(rec model.RawRecord) model.CanonicalStatus {
	var current, last string
	for _, path := range statusPaths {
		if s, ok := rec.LookupString(path); ok {
			current = s
			break
		}
	}
	for _, path := range lastStatusPaths {
		if s, ok := rec.LookupString(path); ok {
			last = s
			break
		}
	}
	return Normalize(current, last)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(s string, keywords []string) bool {
	if s == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
