package validation_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/validation"
)

func TestValidateFullName(t *testing.T) {
	t.Run("Should title-case a plain two part name", func(t *testing.T) {
		got, err := validation.ValidateFullName("  john   smith ")
		assert.NoError(t, err)
		assert.Equal(t, "John Smith", got)
	})

	t.Run("Should preserve hyphens and apostrophes", func(t *testing.T) {
		got, err := validation.ValidateFullName("mary-jane o'brien")
		assert.NoError(t, err)
		assert.Equal(t, "Mary-Jane O'Brien", got)
	})

	t.Run("Should reject a single name", func(t *testing.T) {
		_, err := validation.ValidateFullName("john")
		assert.Error(t, err)
		rej, ok := validation.AsRejection(err)
		assert.True(t, ok)
		assert.Equal(t, "full_name", rej.Field)
		assert.Contains(t, rej.Reason, "first and last name")
	})

	t.Run("Should reject names with digits", func(t *testing.T) {
		_, err := validation.ValidateFullName("john smith3")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only letters")
	})

	t.Run("Should reject single letter parts", func(t *testing.T) {
		_, err := validation.ValidateFullName("j smith")
		assert.Error(t, err)
	})

	t.Run("Should reject names over 100 characters", func(t *testing.T) {
		long := ""
		for i := 0; i < 60; i++ {
			long += "a"
		}
		_, err := validation.ValidateFullName(long + " " + long)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "4-100")
	})
}

func TestValidateEmail(t *testing.T) {
	t.Run("Should extract the address from surrounding prose", func(t *testing.T) {
		got, err := validation.ValidateEmail("my email is John.Doe@GMAIL.com thanks")
		assert.NoError(t, err)
		assert.Equal(t, "John.Doe@gmail.com", got)
	})

	t.Run("Should correct a near-miss provider domain", func(t *testing.T) {
		got, err := validation.ValidateEmail("user@gmail.co")
		assert.NoError(t, err)
		assert.Equal(t, "user@gmail.com", got)
	})

	t.Run("Should keep a domain below the correction threshold", func(t *testing.T) {
		got, err := validation.ValidateEmail("user@gamil.com")
		assert.NoError(t, err)
		assert.Equal(t, "user@gamil.com", got)
	})

	t.Run("Should keep local part casing", func(t *testing.T) {
		got, err := validation.ValidateEmail("Ada.Lovelace@Example.COM")
		assert.NoError(t, err)
		assert.Equal(t, "Ada.Lovelace@example.com", got)
	})

	t.Run("Should reject input without an address", func(t *testing.T) {
		_, err := validation.ValidateEmail("not an email")
		assert.Error(t, err)
		rej, ok := validation.AsRejection(err)
		assert.True(t, ok)
		assert.Equal(t, "email", rej.Field)
	})
}

type mxStub struct {
	records []*net.MX
	err     error
}

func (s mxStub) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	return s.records, s.err
}

func TestCheckDeliverability(t *testing.T) {
	ctx := context.Background()

	t.Run("Should accept a domain with MX records", func(t *testing.T) {
		resolver := mxStub{records: []*net.MX{{Host: "mx1.example.com", Pref: 10}}}
		assert.NoError(t, validation.CheckDeliverability(ctx, resolver, "user@example.com"))
	})

	t.Run("Should degrade when the lookup fails", func(t *testing.T) {
		resolver := mxStub{err: errors.New("dns timeout")}
		err := validation.CheckDeliverability(ctx, resolver, "user@example.com")
		assert.Error(t, err)
		var degraded *apperror.ServiceDegraded
		assert.True(t, errors.As(err, &degraded))
		assert.Equal(t, "mx-lookup", degraded.Service)
	})

	t.Run("Should degrade when no MX records exist", func(t *testing.T) {
		resolver := mxStub{}
		err := validation.CheckDeliverability(ctx, resolver, "user@example.com")
		var degraded *apperror.ServiceDegraded
		assert.True(t, errors.As(err, &degraded))
	})
}

func TestValidatePhone(t *testing.T) {
	t.Run("Should return E.164 input unchanged", func(t *testing.T) {
		got, err := validation.ValidatePhone("+14155552671", "US")
		assert.NoError(t, err)
		assert.Equal(t, "+14155552671", got)
	})

	t.Run("Should apply the default region to national input", func(t *testing.T) {
		got, err := validation.ValidatePhone("(415) 555-2671", "US")
		assert.NoError(t, err)
		assert.Equal(t, "+14155552671", got)
	})

	t.Run("Should ignore the region hint for international input", func(t *testing.T) {
		got, err := validation.ValidatePhone("+44 7400 123456", "US")
		assert.NoError(t, err)
		assert.Equal(t, "+447400123456", got)
	})

	t.Run("Should reject garbage with a region-specific hint", func(t *testing.T) {
		_, err := validation.ValidatePhone("12345", "us")
		assert.Error(t, err)
		rej, ok := validation.AsRejection(err)
		assert.True(t, ok)
		assert.Contains(t, rej.Reason, "region US")
		assert.Contains(t, rej.Suggestion, "+14155552671")
	})

	t.Run("Should reject empty input", func(t *testing.T) {
		_, err := validation.ValidatePhone("   ", "US")
		assert.Error(t, err)
	})
}

func TestValidateYears(t *testing.T) {
	t.Run("Should parse whole and fractional years", func(t *testing.T) {
		got, err := validation.ValidateYears("5")
		assert.NoError(t, err)
		assert.Equal(t, 5.0, got)

		got, err = validation.ValidateYears(" 2.5 ")
		assert.NoError(t, err)
		assert.Equal(t, 2.5, got)
	})

	t.Run("Should accept both boundaries", func(t *testing.T) {
		got, err := validation.ValidateYears("0")
		assert.NoError(t, err)
		assert.Equal(t, 0.0, got)

		got, err = validation.ValidateYears("60")
		assert.NoError(t, err)
		assert.Equal(t, 60.0, got)
	})

	t.Run("Should reject out of range values", func(t *testing.T) {
		_, err := validation.ValidateYears("-1")
		assert.Error(t, err)
		_, err = validation.ValidateYears("61")
		assert.Error(t, err)
	})

	t.Run("Should reject non-numeric input", func(t *testing.T) {
		_, err := validation.ValidateYears("five")
		assert.Error(t, err)
		_, err = validation.ValidateYears("NaN")
		assert.Error(t, err)
	})
}

func TestValidatePositions(t *testing.T) {
	t.Run("Should split and keep technical roles", func(t *testing.T) {
		got, err := validation.ValidatePositions("Backend Engineer, Data Scientist")
		assert.NoError(t, err)
		assert.Equal(t, []string{"Backend Engineer", "Data Scientist"}, got)
	})

	t.Run("Should canonicalize known shorthands", func(t *testing.T) {
		got, err := validation.ValidatePositions("swe; mle")
		assert.NoError(t, err)
		assert.Equal(t, []string{"Software Engineer", "ML Engineer"}, got)
	})

	t.Run("Should reject non-technical roles with a suggestion", func(t *testing.T) {
		_, err := validation.ValidatePositions("Chef")
		assert.Error(t, err)
		rej, ok := validation.AsRejection(err)
		assert.True(t, ok)
		assert.Contains(t, rej.Reason, "non-technical")
		assert.Contains(t, rej.Suggestion, "Backend Engineer")
	})

	t.Run("Should reject invalid characters", func(t *testing.T) {
		_, err := validation.ValidatePositions("Backend@Engineer")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid characters")
	})

	t.Run("Should reject empty input", func(t *testing.T) {
		_, err := validation.ValidatePositions(" , ; ")
		assert.Error(t, err)
	})
}

func TestRejectionError(t *testing.T) {
	t.Run("Should join reason and suggestion", func(t *testing.T) {
		err := validation.RejectWithSuggestion("phone", "Bad number.", "Try again.")
		assert.Equal(t, "Bad number. Try again.", err.Error())
	})

	t.Run("Should unwrap through fmt wrapping", func(t *testing.T) {
		wrapped := errors.Join(errors.New("outer"), validation.Reject("email", "Bad address."))
		rej, ok := validation.AsRejection(wrapped)
		assert.True(t, ok)
		assert.Equal(t, "email", rej.Field)
	})
}
