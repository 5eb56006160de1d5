package llm

import (
	"errors"
	"regexp"
	"strings"
)

var fenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON returns the first complete JSON object or array embedded
// in a model reply, tolerating markdown fences and surrounding prose.
func ExtractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if m := fenceRegex.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return "", errors.New("llm: no JSON in reply")
	}

	open := s[start]
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errors.New("llm: truncated JSON in reply")
}
