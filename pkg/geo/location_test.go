package geo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/geo"
	"go-screening-backend/pkg/validation"
)

// stubGeocoder answers country-scoped searches from scoped and global
// probes from global.
type stubGeocoder struct {
	scoped   []geo.Place
	global   []geo.Place
	err      error
	lastCode string
}

func (s *stubGeocoder) Search(ctx context.Context, city, countryCode string, limit int) ([]geo.Place, error) {
	s.lastCode = countryCode
	if s.err != nil {
		return nil, s.err
	}
	if countryCode == "" {
		return s.global, nil
	}
	return s.scoped, nil
}

func TestValidateLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("Should canonicalize a confirmed city", func(t *testing.T) {
		stub := &stubGeocoder{scoped: []geo.Place{{City: "Berlin", Country: "Germany", Alpha2: "DE"}}}
		v := geo.NewValidator(stub)

		got, err := v.ValidateLocation(ctx, "berlin, germany")
		assert.NoError(t, err)
		assert.Equal(t, "Berlin, Germany", got)
		assert.Equal(t, "DE", stub.lastCode)
	})

	t.Run("Should keep the typed city when the hit has no city field", func(t *testing.T) {
		stub := &stubGeocoder{scoped: []geo.Place{{Country: "India", Alpha2: "IN"}}}
		v := geo.NewValidator(stub)

		got, err := v.ValidateLocation(ctx, "pune, India")
		assert.NoError(t, err)
		assert.Equal(t, "Pune, India", got)
	})

	t.Run("Should accept with a degraded error when the geocoder is down", func(t *testing.T) {
		stub := &stubGeocoder{err: errors.New("connection refused")}
		v := geo.NewValidator(stub)

		got, err := v.ValidateLocation(ctx, "pune, india")
		assert.Equal(t, "Pune, India", got)
		assert.Error(t, err)
		var degraded *apperror.ServiceDegraded
		assert.True(t, errors.As(err, &degraded))
		assert.Equal(t, "geocoder", degraded.Service)
	})

	t.Run("Should reject a hit from the wrong country", func(t *testing.T) {
		stub := &stubGeocoder{scoped: []geo.Place{{City: "Paris", Country: "United States", Alpha2: "US"}}}
		v := geo.NewValidator(stub)

		_, err := v.ValidateLocation(ctx, "paris, france")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "City not found in France")
	})

	t.Run("Should suggest alternatives from a global probe", func(t *testing.T) {
		stub := &stubGeocoder{
			global: []geo.Place{{City: "London", Country: "United Kingdom", Alpha2: "GB"}},
		}
		v := geo.NewValidator(stub)

		_, err := v.ValidateLocation(ctx, "londn, grait britain")
		assert.Error(t, err)
		rej, ok := validation.AsRejection(err)
		assert.True(t, ok)
		assert.Contains(t, rej.Reason, "City not found in United Kingdom")
		assert.Equal(t, "Did you mean London, United Kingdom?", rej.Suggestion)
		assert.Equal(t, []string{"London, United Kingdom"}, rej.Alternatives)
	})

	t.Run("Should reject plainly when the probe finds nothing either", func(t *testing.T) {
		stub := &stubGeocoder{}
		v := geo.NewValidator(stub)

		_, err := v.ValidateLocation(ctx, "atlantis, germany")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "'atlantis' not found in Germany")
	})

	t.Run("Should require the City, Country shape", func(t *testing.T) {
		v := geo.NewValidator(&stubGeocoder{})

		_, err := v.ValidateLocation(ctx, "Berlin")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "City, Country")

		_, err = v.ValidateLocation(ctx, "Berlin, ")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "both city and country")
	})

	t.Run("Should reject unknown countries before geocoding", func(t *testing.T) {
		stub := &stubGeocoder{}
		v := geo.NewValidator(stub)

		_, err := v.ValidateLocation(ctx, "Paris, Wakanda")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Country not recognized")
		assert.Empty(t, stub.lastCode)
	})
}
