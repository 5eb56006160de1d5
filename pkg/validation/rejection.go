package validation

import "errors"

// Rejection is a user-correctable validation failure. The conversation
// re-prompts the same phase with Reason and, when present, Suggestion;
// it never terminates on one. Alternatives holds further candidates in
// rank order when more than one correction is plausible.
type Rejection struct {
	Field        string   `json:"field"`
	Reason       string   `json:"reason"`
	Suggestion   string   `json:"suggestion,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

func (r *Rejection) Error() string {
	if r.Suggestion != "" {
		return r.Reason + " " + r.Suggestion
	}
	return r.Reason
}

func Reject(field, reason string) *Rejection {
	return &Rejection{Field: field, Reason: reason}
}

func RejectWithSuggestion(field, reason, suggestion string) *Rejection {
	return &Rejection{Field: field, Reason: reason, Suggestion: suggestion}
}

// AsRejection unwraps err into a Rejection when it is one.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
