package nlp

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// The detector is restricted to the languages the conversation can
// actually reply in plus frequent candidate languages, which keeps
// detection fast and avoids absurd guesses on short input.
var detector = lingua.NewLanguageDetectorBuilder().
	FromLanguages(
		lingua.English,
		lingua.Hindi,
		lingua.Spanish,
		lingua.French,
		lingua.German,
		lingua.Russian,
	).
	Build()

// DetectLanguage returns the ISO 639-1 code of the text's language,
// falling back to def when the input is empty or undecidable.
func DetectLanguage(text, def string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return def
	}
	lang, ok := detector.DetectLanguageOf(t)
	if !ok {
		return def
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
