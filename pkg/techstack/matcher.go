package techstack

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"go-screening-backend/pkg/validation"
)

// fuzzyThreshold is the TokenSetRatio confidence below which an unknown
// token is dropped rather than partial-matched. False positives cost
// more than recall here.
const fuzzyThreshold = 92

var freeSplitRegex = regexp.MustCompile(`[;,/|]+|\s{2,}`)

// Stack buckets matched technologies by category.
type Stack struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Databases  []string `json:"databases"`
	Tools      []string `json:"tools"`
}

func (s Stack) IsEmpty() bool {
	return len(s.Languages)+len(s.Frameworks)+len(s.Databases)+len(s.Tools) == 0
}

func (s *Stack) add(category, canonical string) {
	bucket := s.bucket(category)
	for _, existing := range *bucket {
		if existing == canonical {
			return
		}
	}
	*bucket = append(*bucket, canonical)
}

func (s *Stack) bucket(category string) *[]string {
	switch category {
	case CategoryLanguages:
		return &s.Languages
	case CategoryFrameworks:
		return &s.Frameworks
	case CategoryDatabases:
		return &s.Databases
	default:
		return &s.Tools
	}
}

// Result is a parsed stack plus the tokens no canonical entry could be
// matched for. Unmatched tokens stay out of the stack; reporting them
// lets the conversation mention the drop instead of hiding it.
type Result struct {
	Stack     Stack
	Unmatched []string
}

func (r *Result) addUnmatched(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	low := strings.ToLower(token)
	for _, existing := range r.Unmatched {
		if strings.ToLower(existing) == low {
			return
		}
	}
	r.Unmatched = append(r.Unmatched, token)
}

// Parse reads a technology list in any of three shapes, tried in order:
// a JSON object with the four category keys, labeled lines such as
// "languages: python, go", or free text split on separators. The first
// shape that yields at least one match wins.
func Parse(input string) Result {
	s := validation.EnsureText(input)

	if r, ok := parseJSON(s); ok {
		return r
	}
	if r, ok := parseLabeled(s); ok {
		return r
	}
	return parseFree(s)
}

func parseJSON(s string) (Result, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return Result{}, false
	}
	var r Result
	for _, cat := range categories {
		items, _ := data[cat].([]any)
		for _, item := range items {
			matchInto(&r, fmt.Sprint(item), cat)
		}
	}
	return r, !r.Stack.IsEmpty()
}

func parseLabeled(s string) (Result, bool) {
	var r Result
	anyLabel := false
	for _, line := range strings.Split(s, "\n") {
		key, val, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		cat := strings.ToLower(strings.TrimSpace(key))
		if !isCategory(cat) {
			continue
		}
		anyLabel = true
		for _, token := range validation.SplitList(val) {
			matchInto(&r, token, cat)
		}
	}
	return r, anyLabel && !r.Stack.IsEmpty()
}

func parseFree(s string) Result {
	var r Result
	for _, token := range freeSplitRegex.Split(s, -1) {
		matchInto(&r, token, "")
	}
	return r
}

// matchInto matches one token and files it under its category. A
// non-empty wantCategory additionally requires the match to land in
// that category, mirroring how labeled input declares intent.
func matchInto(r *Result, token, wantCategory string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	if nonTech[strings.ToLower(token)] {
		return
	}
	e, ok := matchKnown(token)
	if !ok || (wantCategory != "" && e.category != wantCategory) {
		r.addUnmatched(token)
		return
	}
	r.Stack.add(e.category, e.canonical)
}

func matchKnown(token string) (entry, bool) {
	low := strings.ToLower(strings.TrimSpace(token))
	if low == "" || nonTech[low] {
		return entry{}, false
	}
	if e, ok := indexLower[low]; ok {
		return e, true
	}
	if e, ok := aliasesLower[low]; ok {
		return e, true
	}

	best, bestScore := "", 0
	for _, key := range canonKeys {
		if score := fuzzy.TokenSetRatio(low, key); score > bestScore {
			best, bestScore = key, score
		}
	}
	if bestScore >= fuzzyThreshold {
		return indexLower[best], true
	}
	return entry{}, false
}
