package geo

import (
	"strings"

	"github.com/biter777/countries"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// countryFixThreshold is the WRatio score at which a misspelled country
// is corrected to a catalog entry.
const countryFixThreshold = 90

// countryAliases maps informal country names to alpha-2 codes. The ISO
// catalog only carries official short names, so "Great Britain" and
// friends need their own entries.
var countryAliases = map[string]string{
	"uk":                       "GB",
	"great britain":            "GB",
	"britain":                  "GB",
	"england":                  "GB",
	"usa":                      "US",
	"united states of america": "US",
	"america":                  "US",
	"uae":                      "AE",
	"south korea":              "KR",
	"north korea":              "KP",
	"russia":                   "RU",
	"vietnam":                  "VN",
	"czech republic":           "CZ",
	"ivory coast":              "CI",
	"taiwan":                   "TW",
	"turkey":                   "TR",
	"holland":                  "NL",
}

// displayOverrides pins the short English form where the catalog name
// is longer than what people write.
var displayOverrides = map[string]string{
	"GB": "United Kingdom",
	"US": "United States",
}

// candidateNames is the fuzzy-match corpus: canonical names first, then
// alias spellings. Built once.
var candidateNames []string

func init() {
	for _, cc := range countries.All() {
		if !cc.IsValid() {
			continue
		}
		candidateNames = append(candidateNames, CountryName(cc.Alpha2()))
	}
	for alias := range countryAliases {
		candidateNames = append(candidateNames, alias)
	}
}

// CountryName returns the display name for an alpha-2 code.
func CountryName(alpha2 string) string {
	if name, ok := displayOverrides[strings.ToUpper(alpha2)]; ok {
		return name
	}
	return countries.ByName(alpha2).String()
}

// CorrectCountry resolves free-text country input to its canonical name
// and alpha-2 code, fixing close misspellings. ok is false when nothing
// in the catalog scores above the correction threshold.
func CorrectCountry(raw string) (name, alpha2 string, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", "", false
	}

	if code, found := resolve(s); found {
		return CountryName(code), code, true
	}

	// Fuzzy pass over canonical names and alias spellings.
	best, bestScore := "", 0
	for _, candidate := range candidateNames {
		if score := fuzzy.WRatio(s, candidate); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < countryFixThreshold {
		return "", "", false
	}
	if code, found := resolve(best); found {
		return CountryName(code), code, true
	}
	return "", "", false
}

// resolve maps an exact name, alias or code to an alpha-2 code.
func resolve(s string) (string, bool) {
	if code, ok := countryAliases[strings.ToLower(s)]; ok {
		return code, true
	}
	if cc := countries.ByName(s); cc.IsValid() {
		return cc.Alpha2(), true
	}
	return "", false
}
