/*
registry.go - Static Schengen membership classification

PURPOSE:
  Classifies country input into Schengen members, Schengen microstates,
  and explicitly excluded countries, and normalizes raw input (case,
  full names) to ISO-2 codes. Pure static lookup data plus
  normalization logic: no state, no side effects.

CLASSIFICATION RULES:
  - Members:     the 29 treaty countries
  - Microstates: Monaco, San Marino, Vatican, Andorra - not formal
    treaty members, but their territory counts as Schengen presence
  - Excluded:    countries we know about and deliberately do not count
    (Ireland, Cyprus, UK, and common long-haul destinations)
  - Anything else is UNKNOWN and invalid: unknown input is a data
    problem the caller must fix, never silently accepted

SEE ALSO:
  - presence.go: uses ValidateCountry during expansion
*/
package schengen

import "strings"

// =============================================================================
// MEMBERSHIP TABLES - Immutable, initialized once at startup
// =============================================================================

// schengenMembers holds the 29 Schengen treaty countries.
var schengenMembers = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "CH": {}, "CZ": {}, "DE": {}, "DK": {},
	"EE": {}, "ES": {}, "FI": {}, "FR": {}, "GR": {}, "HR": {}, "HU": {},
	"IS": {}, "IT": {}, "LI": {}, "LT": {}, "LU": {}, "LV": {}, "MT": {},
	"NL": {}, "NO": {}, "PL": {}, "PT": {}, "RO": {}, "SE": {}, "SI": {},
	"SK": {},
}

// schengenMicrostates are not treaty members but are enclosed by (or
// only reachable through) Schengen territory; presence there counts.
var schengenMicrostates = map[string]struct{}{
	"AD": {}, "MC": {}, "SM": {}, "VA": {},
}

// excludedCountries are known and deliberately out of scope. Presence
// there never counts, and seeing one is NOT a data error.
var excludedCountries = map[string]struct{}{
	// Non-Schengen EU / Europe
	"IE": {}, "CY": {}, "GB": {}, "UA": {}, "RS": {}, "AL": {}, "BA": {},
	"ME": {}, "MK": {}, "XK": {}, "MD": {}, "BY": {}, "RU": {}, "TR": {},
	// Common long-haul destinations
	"US": {}, "CA": {}, "MX": {}, "BR": {}, "AR": {}, "AU": {}, "NZ": {},
	"JP": {}, "KR": {}, "CN": {}, "HK": {}, "SG": {}, "TH": {}, "VN": {},
	"IN": {}, "AE": {}, "QA": {}, "SA": {}, "IL": {}, "EG": {}, "MA": {},
	"TN": {}, "ZA": {}, "KE": {}, "NG": {}, "CO": {}, "CL": {}, "PE": {},
	"ID": {}, "MY": {}, "PH": {}, "TW": {}, "GE": {}, "AM": {}, "AZ": {},
}

// countryNames maps common full names to ISO-2 codes. Matching is
// case-insensitive.
var countryNames = map[string]string{
	"austria": "AT", "belgium": "BE", "bulgaria": "BG", "croatia": "HR",
	"czech republic": "CZ", "czechia": "CZ", "denmark": "DK",
	"estonia": "EE", "finland": "FI", "france": "FR", "germany": "DE",
	"greece": "GR", "hungary": "HU", "iceland": "IS", "italy": "IT",
	"latvia": "LV", "liechtenstein": "LI", "lithuania": "LT",
	"luxembourg": "LU", "malta": "MT", "netherlands": "NL",
	"the netherlands": "NL", "norway": "NO", "poland": "PL",
	"portugal": "PT", "romania": "RO", "slovakia": "SK", "slovenia": "SI",
	"spain": "ES", "sweden": "SE", "switzerland": "CH",

	"andorra": "AD", "monaco": "MC", "san marino": "SM",
	"vatican": "VA", "vatican city": "VA",

	"ireland": "IE", "cyprus": "CY", "united kingdom": "GB", "uk": "GB",
	"great britain": "GB", "england": "GB", "scotland": "GB", "wales": "GB",
	"united states": "US", "usa": "US", "united states of america": "US",
	"canada": "CA", "australia": "AU", "new zealand": "NZ", "japan": "JP",
	"south korea": "KR", "china": "CN", "singapore": "SG", "thailand": "TH",
	"india": "IN", "united arab emirates": "AE", "uae": "AE",
	"turkey": "TR", "brazil": "BR", "mexico": "MX", "south africa": "ZA",
	"israel": "IL", "russia": "RU", "ukraine": "UA", "serbia": "RS",
	"albania": "AL", "morocco": "MA", "egypt": "EG",
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// NormalizeCountryCode upper-cases 2-letter ISO codes and maps known
// full country names to codes. Input it cannot recognize is returned
// upper-cased unchanged; classification happens in ValidateCountry.
func NormalizeCountryCode(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 2 {
		return strings.ToUpper(trimmed)
	}
	if code, ok := countryNames[strings.ToLower(trimmed)]; ok {
		return code
	}
	return strings.ToUpper(trimmed)
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// CountryValidation is the outcome of classifying raw country input.
type CountryValidation struct {
	Valid      bool   // recognized in some category
	Normalized string // ISO-2 code after normalization
	InScope    bool   // counts as Schengen presence (member or microstate)
	Reason     string // set when excluded or unknown
}

// IsSchengenCountry reports whether the code denotes Schengen territory
// for presence purposes. Microstates count.
func IsSchengenCountry(code string) bool {
	norm := NormalizeCountryCode(code)
	if _, ok := schengenMembers[norm]; ok {
		return true
	}
	_, ok := schengenMicrostates[norm]
	return ok
}

// IsSchengenMicrostate reports whether the code is one of the four
// microstates counted as Schengen territory.
func IsSchengenMicrostate(code string) bool {
	_, ok := schengenMicrostates[NormalizeCountryCode(code)]
	return ok
}

// ValidateCountry classifies raw input. Unknown input returns an
// UnknownCountryError: "we do not know this country" requires a data
// fix, while "known and excluded" is intentional and valid.
func ValidateCountry(raw string) (CountryValidation, error) {
	norm := NormalizeCountryCode(raw)

	if _, ok := schengenMembers[norm]; ok {
		return CountryValidation{Valid: true, Normalized: norm, InScope: true}, nil
	}
	if _, ok := schengenMicrostates[norm]; ok {
		return CountryValidation{Valid: true, Normalized: norm, InScope: true,
			Reason: "microstate counted as Schengen territory"}, nil
	}
	if _, ok := excludedCountries[norm]; ok {
		return CountryValidation{Valid: true, Normalized: norm, InScope: false,
			Reason: "known non-Schengen country"}, nil
	}
	return CountryValidation{Valid: false, Normalized: norm}, &UnknownCountryError{Raw: raw}
}
