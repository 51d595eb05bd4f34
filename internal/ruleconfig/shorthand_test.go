package ruleconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeRuleOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		code  string
		value any
		want  any
	}{
		{name: "file length integer", code: "FileLength", value: int64(1500), want: map[string]any{"max": int64(1500)}},
		{name: "file length numeric string", code: "filelength", value: "800", want: map[string]any{"max": "800"}},
		{name: "file length float", code: "FileLength", value: float64(20), want: map[string]any{"max": float64(20)}},
		{name: "fractional float kept", code: "FileLength", value: 1.5, want: 1.5},
		{name: "abbreviation length", code: "AbbreviationAsWordInName", value: 4, want: map[string]any{"allowed-abbreviation-length": 4}},
		{name: "member format", code: "MemberName", value: "^m[A-Z]", want: map[string]any{"format": "^m[A-Z]"}},
		{name: "format needs a string", code: "TypeName", value: 3, want: 3},
		{name: "table unchanged", code: "FileLength", value: map[string]any{"max": 10}, want: map[string]any{"max": 10}},
		{name: "unknown rule", code: "NoSuchRule", value: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanonicalizeRuleOptions(tt.code, tt.value))
		})
	}
}
