package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	roleEntryRegex = regexp.MustCompile(`^[A-Za-z0-9 /&+\-_.]{2,50}$`)
	roleTokenRegex = regexp.MustCompile(`[A-Za-z]+`)
)

// techRoleKeywords gates role plausibility: at least one token of every
// desired position must appear here.
var techRoleKeywords = map[string]bool{
	"engineer": true, "developer": true, "dev": true, "data": true, "ml": true,
	"ai": true, "machine": true, "learning": true, "backend": true, "front": true,
	"frontend": true, "full": true, "stack": true, "fullstack": true, "devops": true,
	"site": true, "reliability": true, "sre": true, "mobile": true, "android": true,
	"ios": true, "qa": true, "test": true, "testing": true, "automation": true,
	"cloud": true, "platform": true, "security": true, "analyst": true,
	"scientist": true, "architect": true, "etl": true, "mle": true, "swe": true,
	"nlp": true, "cv": true, "vision": true, "infra": true, "infrastructure": true,
}

// roleMap rewrites well-known shorthands to canonical titles. Entries
// not in the map keep the candidate's own wording.
var roleMap = map[string]string{
	"aiml engineer":             "ML Engineer",
	"ml engineer":               "ML Engineer",
	"machine learning engineer": "ML Engineer",
	"mle":                       "ML Engineer",
	"data scientist":            "Data Scientist",
	"backend engineer":          "Backend Engineer",
	"software engineer":         "Software Engineer",
	"swe":                       "Software Engineer",
}

// ValidatePositions splits comma/semicolon separated roles, checks each
// for charset and technical plausibility and canonicalizes known
// shorthands.
func ValidatePositions(raw string) ([]string, error) {
	items := SplitList(raw)
	if len(items) == 0 {
		return nil, Reject("desired_positions", "Please provide at least one role.")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if !roleEntryRegex.MatchString(item) {
			return nil, Reject("desired_positions", fmt.Sprintf("Role contains invalid characters: %s.", item))
		}
		if !plausibleRole(item) {
			return nil, RejectWithSuggestion("desired_positions",
				fmt.Sprintf("Role seems non-technical: %s.", item),
				"Try titles like 'Backend Engineer' or 'Data Scientist'.")
		}
		if canon, ok := roleMap[strings.ToLower(item)]; ok {
			item = canon
		}
		out = append(out, item)
	}
	return out, nil
}

func plausibleRole(item string) bool {
	for _, token := range roleTokenRegex.FindAllString(strings.ToLower(item), -1) {
		if techRoleKeywords[token] {
			return true
		}
	}
	return false
}
