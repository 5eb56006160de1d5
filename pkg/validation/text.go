package validation

import (
	"regexp"
	"strings"
)

var (
	spaceRegex    = regexp.MustCompile(`\s+`)
	wordRegex     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	listSepRegex  = regexp.MustCompile(`[;,]`)
	nonWordRegex  = regexp.MustCompile(`[^\p{L}\p{N}]+`)

	// Invisible characters that survive copy-paste from rich text.
	invisibleReplacer = strings.NewReplacer(
		"​", "", // zero width space
		"‌", "", // zero width non-joiner
		"‍", "", // zero width joiner
		"\uFEFF", "", // byte order mark
		" ", " ", // non-breaking space
	)
)

var affirmWords = map[string]bool{
	"y": true, "yes": true, "yeah": true, "yep": true, "yup": true,
	"sure": true, "ok": true, "okay": true, "affirmative": true,
	"agree": true, "si": true, "sí": true, "oui": true, "da": true,
}

var exitKeywords = map[string]bool{
	"exit": true, "bye": true, "quit": true, "stop": true, "goodbye": true,
}

// EnsureText strips invisible characters and surrounding whitespace.
func EnsureText(s string) string {
	return strings.TrimSpace(invisibleReplacer.Replace(s))
}

// CollapseSpaces folds whitespace runs into single spaces.
func CollapseSpaces(s string) string {
	return spaceRegex.ReplaceAllString(s, " ")
}

// SplitList splits comma or semicolon separated input into trimmed,
// non-empty items.
func SplitList(s string) []string {
	parts := listSepRegex.Split(EnsureText(s), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IsAffirmative reports whether the input reads as agreement. Anything
// starting with "y" counts, so "yes please" and "yeap" both pass.
func IsAffirmative(s string) bool {
	t := strings.ToLower(EnsureText(s))
	t = nonWordRegex.ReplaceAllString(t, "")
	if t == "" {
		return false
	}
	return affirmWords[t] || strings.HasPrefix(t, "y")
}

// IsExitCommand reports whether the input asks to end the conversation.
func IsExitCommand(s string) bool {
	lower := strings.ToLower(EnsureText(s))
	if exitKeywords[lower] {
		return true
	}
	for _, token := range wordRegex.FindAllString(lower, -1) {
		if exitKeywords[token] {
			return true
		}
	}
	return false
}

// TitleCase uppercases the first letter of every word-like segment and
// lowercases the rest, treating spaces, hyphens, apostrophes and dots as
// segment breaks ("mary-jane o'brien" becomes "Mary-Jane O'Brien").
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfSegment := true
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '\'' || r == '.':
			b.WriteRune(r)
			startOfSegment = true
		case startOfSegment:
			b.WriteString(strings.ToUpper(string(r)))
			startOfSegment = false
		default:
			b.WriteString(strings.ToLower(string(r)))
		}
	}
	return b.String()
}
