package extract

import (
	"strings"

	"github.com/mkravets/compscan/internal/model"
)

// AddressUnavailable is the sentinel for records with no recoverable
// address. It is a real string, not "", so downstream display never
// silently renders a blank line.
const AddressUnavailable = "Address unavailable"

var (
	fullAddressPaths = []string{"address.full", "fullAddress", "unparsedAddress"}
	txnAddressPaths  = []string{"transactionAddress", "propertyAddress", "address"}
	cityPaths        = []string{"address.city", "city"}
	statePaths       = []string{"address.state", "state", "stateOrProvince"}
	zipPaths         = []string{"address.zip", "address.postalCode", "zip", "postalCode"}
	directionAbbrevs = map[string]bool{
		"N": true, "S": true, "E": true, "W": true,
		"NE": true, "NW": true, "SE": true, "SW": true,
	}
)

// Address assembles a display address: a pre-formatted full-address
// field when present, else street parts plus city/state/zip, else any
// transaction-level address string, else the sentinel.
func Address(rec model.RawRecord) string {
	for _, path := range fullAddressPaths {
		if s, ok := rec.LookupString(path); ok {
			return s
		}
	}

	if street := assembleStreet(rec); street != "" {
		return appendLocality(rec, street)
	}

	for _, path := range txnAddressPaths {
		if s, ok := rec.LookupString(path); ok {
			return s
		}
	}

	return AddressUnavailable
}

// City extracts the city component, or "".
func City(rec model.RawRecord) string { return firstString(rec, cityPaths) }

// State extracts the state component, or "".
func State(rec model.RawRecord) string { return firstString(rec, statePaths) }

// Zip extracts the postal code, or "".
func Zip(rec model.RawRecord) string { return firstString(rec, zipPaths) }

func firstString(rec model.RawRecord, paths []string) string {
	for _, path := range paths {
		if s, ok := rec.LookupString(path); ok {
			return s
		}
	}
	return ""
}

func assembleStreet(rec model.RawRecord) string {
	var parts []string

	appendPart := func(path string, normalize bool) {
		s, ok := rec.LookupString(path)
		if !ok {
			return
		}
		if normalize {
			s = normalizeDirection(s)
		}
		parts = append(parts, s)
	}

	appendPart("address.streetNumber", false)
	appendPart("address.streetDirectionPrefix", true)
	appendPart("address.streetName", false)
	appendPart("address.streetSuffix", false)
	appendPart("address.streetDirection", true)

	if unit, ok := rec.LookupString("address.unitNumber"); ok {
		parts = append(parts, "Unit "+unit)
	}

	return strings.Join(parts, " ")
}

func appendLocality(rec model.RawRecord, street string) string {
	city := City(rec)
	state := State(rec)
	zip := Zip(rec)

	out := street
	if city != "" {
		out += ", " + city
	}
	if state != "" {
		out += ", " + state
	}
	if zip != "" {
		out += " " + zip
	}
	return out
}

// normalizeDirection cleans directional abbreviations: trailing periods
// stripped, recognized abbreviations upper-cased ("n." becomes "N").
func normalizeDirection(s string) string {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), ".")
	if upper := strings.ToUpper(trimmed); directionAbbrevs[upper] {
		return upper
	}
	return trimmed
}
