// Package llmjson pulls JSON objects out of free-text model output.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedModelOutput means the model text held no decodable JSON object.
var ErrMalformedModelOutput = errors.New("malformed model output")

var (
	fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")
	// Python-style literals some models emit in place of JSON ones.
	pythonTrue  = regexp.MustCompile(`([:\[,]\s*)True\b`)
	pythonFalse = regexp.MustCompile(`([:\[,]\s*)False\b`)
	pythonNone  = regexp.MustCompile(`([:\[,]\s*)None\b`)
)

// Extract returns the outermost JSON object in s. It prefers the contents of
// a markdown code fence, then a balanced scan from the first '{' that skips
// braces inside strings, then the span from the first '{' to the last '}'.
func Extract(s string) (string, error) {
	s = strings.TrimSpace(s)
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return "", fmt.Errorf("%w: no '{' found", ErrMalformedModelOutput)
	}
	if obj, ok := balanced(s[start:]); ok {
		return obj, nil
	}

	end := strings.LastIndex(s, "}")
	if end < start {
		return "", fmt.Errorf("%w: unterminated object", ErrMalformedModelOutput)
	}
	return s[start : end+1], nil
}

// Decode extracts the JSON object in s and unmarshals it into v.
func Decode(s string, v any) error {
	obj, err := Extract(s)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		fixed := NormalizeLiterals(obj)
		if fixed == obj {
			return fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
		}
		if err := json.Unmarshal([]byte(fixed), v); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
		}
	}
	return nil
}

// NormalizeLiterals rewrites True, False and None in value positions to their
// JSON spellings.
func NormalizeLiterals(s string) string {
	s = pythonTrue.ReplaceAllString(s, "${1}true")
	s = pythonFalse.ReplaceAllString(s, "${1}false")
	return pythonNone.ReplaceAllString(s, "${1}null")
}

func balanced(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
