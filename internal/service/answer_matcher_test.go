package service_test

import (
	"testing"

	"eduz_backend/internal/service"

	"github.com/stretchr/testify/require"
)

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		canonical string
		tokens    []string
		multi     bool
	}{
		{
			name:      "plain answer with padding",
			raw:       "  Paris ",
			canonical: "paris",
			tokens:    []string{"paris"},
		},
		{
			name:      "json string literal with comma list",
			raw:       `"a,b"`,
			canonical: "a b",
			tokens:    []string{"a", "b"},
			multi:     true,
		},
		{
			name:      "single quoted",
			raw:       "'Paris'",
			canonical: "paris",
			tokens:    []string{"paris"},
		},
		{
			name:      "literal backslash-n separator",
			raw:       `oxygen\nhydrogen`,
			canonical: "oxygen hydrogen",
			tokens:    []string{"oxygen", "hydrogen"},
			multi:     true,
		},
		{
			name:      "real newline separator",
			raw:       "oxygen\nhydrogen",
			canonical: "oxygen hydrogen",
			tokens:    []string{"oxygen", "hydrogen"},
			multi:     true,
		},
		{
			name:      "interior whitespace collapses",
			raw:       "New    York",
			canonical: "new york",
			tokens:    []string{"new", "york"},
			multi:     true,
		},
		{
			name:      "empty",
			raw:       "   ",
			canonical: "",
			tokens:    []string{},
		},
		{
			name:      "unbalanced quote kept",
			raw:       `"Paris`,
			canonical: `"paris`,
			tokens:    []string{`"paris`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.NormalizeAnswer(tt.raw)
			require.Equal(t, tt.canonical, got.Canonical)
			require.Equal(t, tt.tokens, got.Tokens)
			require.Equal(t, tt.multi, got.Multi)
		})
	}
}

func TestAnswersMatch(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		submitted string
		want      bool
	}{
		{"case and padding ignored", "Paris", "  paris ", true},
		{"different answers", "Paris", "London", false},
		{"multi order insensitive", "A, B", "b a", true},
		{"multi via stored side only", "a,b", "b a", true},
		{"multi subset rejected", "a b", "a", false},
		{"multi superset rejected", "a", "a b", false},
		{"quoted key matches plain submission", `"a,b"`, "a b", true},
		{"duplicate tokens collapse to one set", "a a b", "b a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, service.AnswersMatch(tt.stored, tt.submitted))
		})
	}
}
