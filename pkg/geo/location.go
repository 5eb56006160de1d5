package geo

import (
	"context"
	"fmt"
	"strings"

	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/validation"
)

// Validator turns "City, Country" input into a canonical location
// string, constraining geocoding to the validated country.
type Validator struct {
	geocoder Geocoder
}

func NewValidator(geocoder Geocoder) *Validator {
	return &Validator{geocoder: geocoder}
}

// ValidateLocation returns the canonical "City, Country" form.
//
// The country half is corrected against the catalog first; the city is
// then geocoded inside that country. Zero results trigger a global
// probe whose hits come back as ranked suggestions on the rejection.
// When the geocoder itself is unavailable the locally validated form is
// returned together with a ServiceDegraded error so the caller can
// accept it with reduced confidence.
func (v *Validator) ValidateLocation(ctx context.Context, raw string) (string, error) {
	s := validation.CollapseSpaces(validation.EnsureText(raw))
	rawCity, rawCountry, found := strings.Cut(s, ",")
	if !found {
		return "", validation.Reject("current_location", "Please provide location as 'City, Country'.")
	}
	rawCity = strings.TrimSpace(rawCity)
	rawCountry = strings.TrimSpace(rawCountry)
	if rawCity == "" || rawCountry == "" {
		return "", validation.Reject("current_location", "Please provide both city and country.")
	}

	countryName, alpha2, ok := CorrectCountry(rawCountry)
	if !ok {
		return "", validation.Reject("current_location", "Country not recognized, please correct spelling.")
	}

	places, err := v.geocoder.Search(ctx, rawCity, alpha2, 1)
	if err != nil {
		// Geocoder down. The country already validated locally, so
		// accept the input with reduced confidence.
		return validation.TitleCase(rawCity) + ", " + countryName, apperror.Degraded("geocoder", err)
	}
	if len(places) == 0 {
		return "", v.rejectWithProbe(ctx, rawCity, countryName)
	}

	place := places[0]
	if !matchesCountry(place, alpha2, countryName) {
		return "", validation.Reject("current_location", fmt.Sprintf("City not found in %s. Please re-enter.", countryName))
	}

	city := place.City
	if city == "" {
		city = rawCity
	}
	return validation.TitleCase(city) + ", " + countryName, nil
}

// rejectWithProbe searches globally for the city so the rejection can
// carry ranked alternative locations.
func (v *Validator) rejectWithProbe(ctx context.Context, rawCity, countryName string) error {
	probe, err := v.geocoder.Search(ctx, rawCity, "", 5)
	if err != nil || len(probe) == 0 {
		return validation.Reject("current_location",
			fmt.Sprintf("City '%s' not found in %s. Please re-enter.", rawCity, countryName))
	}

	suggestions := make([]string, 0, len(probe))
	seen := make(map[string]bool, len(probe))
	for _, p := range probe {
		if p.Country == "" {
			continue
		}
		city := p.City
		if city == "" {
			city = validation.TitleCase(rawCity)
		}
		display := city + ", " + canonicalCountry(p)
		if seen[strings.ToLower(display)] {
			continue
		}
		seen[strings.ToLower(display)] = true
		suggestions = append(suggestions, display)
	}
	if len(suggestions) == 0 {
		return validation.Reject("current_location",
			fmt.Sprintf("City '%s' not found in %s. Please re-enter.", rawCity, countryName))
	}

	r := validation.RejectWithSuggestion("current_location",
		fmt.Sprintf("City not found in %s.", countryName),
		fmt.Sprintf("Did you mean %s?", suggestions[0]))
	r.Alternatives = suggestions
	return r
}

// matchesCountry verifies the geocoded hit landed in the requested
// country, by code when the geocoder provides one.
func matchesCountry(p Place, alpha2, countryName string) bool {
	if p.Alpha2 != "" {
		return strings.EqualFold(p.Alpha2, alpha2)
	}
	return strings.EqualFold(p.Country, countryName)
}

// canonicalCountry prefers the catalog display name so suggestions read
// the same as validated output.
func canonicalCountry(p Place) string {
	if p.Alpha2 != "" {
		if name := CountryName(p.Alpha2); name != "" {
			return name
		}
	}
	return p.Country
}
