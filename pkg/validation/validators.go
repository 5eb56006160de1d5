package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Candidate record IDs as the stores generate them: short, URL-safe.
var recordIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// RegisterValidators registers the custom binding tags the request
// DTOs use on gin's validator engine.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("record_id", ValidRecordID)
}

// NotBlank rejects strings that are whitespace only. Pair it with
// required; required alone accepts "   ".
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidRecordID accepts the ID charset the candidate stores emit.
func ValidRecordID(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true // required is a separate tag
	}
	return recordIDRegex.MatchString(val)
}
