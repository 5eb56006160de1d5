package validation

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ValidatePhone parses a phone number and returns it in E.164. Numbers
// without a leading + are interpreted in defaultRegion; international
// input ignores the hint. Validating an already canonical value returns
// the same string.
func ValidatePhone(raw, defaultRegion string) (string, error) {
	s := EnsureText(raw)
	if s == "" {
		return "", Reject("phone", "Please provide a phone number.")
	}

	region := strings.ToUpper(defaultRegion)
	if strings.HasPrefix(s, "+") {
		region = ""
	}

	num, err := phonenumbers.Parse(s, region)
	if err != nil {
		return "", rejectPhone(region)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", rejectPhone(region)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func rejectPhone(region string) *Rejection {
	if region == "" {
		return Reject("phone", "That phone number doesn't look valid.")
	}
	return RejectWithSuggestion("phone",
		fmt.Sprintf("That phone number doesn't look valid for region %s.", region),
		"Include the country code, e.g. +14155552671.")
}
