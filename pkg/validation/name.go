package validation

import (
	"regexp"
	"strings"
)

// Each name part starts with a letter followed by at least one more
// letter or common separator, so initials like "J" are rejected.
var namePartRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z.'-]{1,}$`)

// ValidateFullName checks a full name and returns it title-cased.
func ValidateFullName(raw string) (string, error) {
	s := CollapseSpaces(EnsureText(raw))
	parts := strings.Fields(s)
	if len(parts) < 2 {
		return "", Reject("full_name", "Please enter your first and last name.")
	}
	for _, p := range parts {
		if !namePartRegex.MatchString(p) {
			return "", Reject("full_name", "Name must contain only letters and common separators.")
		}
	}
	if len(s) < 4 || len(s) > 100 {
		return "", Reject("full_name", "Name length must be 4-100 characters.")
	}
	for i, p := range parts {
		parts[i] = TitleCase(p)
	}
	return strings.Join(parts, " "), nil
}
