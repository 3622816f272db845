package service

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NormalizedAnswer is the canonical form of an answer key or submission.
// Multi is true when the answer breaks into more than one token, in which
// case comparisons use set semantics.
type NormalizedAnswer struct {
	Canonical string
	Tokens    []string
	Multi     bool
}

var answerSeparators = strings.NewReplacer(
	`\n`, " ", // the literal two-character escape, seen in JSON-sourced keys
	"\n", " ",
	"\r", " ",
	",", " ",
)

// NormalizeAnswer collapses the many shapes answer keys arrive in (plain
// text, comma-separated multi-answer strings, JSON-escaped string literals)
// into one comparable form.
func NormalizeAnswer(raw string) NormalizedAnswer {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NormalizedAnswer{Tokens: []string{}}
	}

	s = unquote(s)
	s = answerSeparators.Replace(s)
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))

	tokens := strings.Fields(s)
	return NormalizedAnswer{
		Canonical: s,
		Tokens:    tokens,
		Multi:     len(tokens) > 1,
	}
}

// unquote removes a single matching pair of surrounding quotes. Double-quoted
// values are first tried as JSON string literals so escaped content decodes
// properly; when decoding fails (or for single quotes) exactly one quote
// layer is stripped.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '"' && first != '\'') {
		return s
	}
	if first == '"' {
		var decoded interface{}
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			if str, ok := decoded.(string); ok {
				return str
			}
			return fmt.Sprint(decoded)
		}
	}
	return s[1 : len(s)-1]
}

// AnswersMatch reports whether a submitted answer satisfies the stored key.
// When either side is multi-token the comparison is an order-insensitive
// token-set equality; otherwise the canonical strings must match exactly.
func AnswersMatch(stored, submitted string) bool {
	a := NormalizeAnswer(stored)
	b := NormalizeAnswer(submitted)

	if a.Multi || b.Multi {
		return tokenSetsEqual(a.Tokens, b.Tokens)
	}
	return a.Canonical == b.Canonical
}

func tokenSetsEqual(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for t := range setA {
		if _, ok := setB[t]; !ok {
			return false
		}
	}
	return true
}
