package filter

import (
	"errors"
	"regexp"
	"testing"
)

func TestExpandTemplate(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`SUPPRESS CHECKSTYLE (\w+)`)

	tests := []struct {
		name     string
		template string
		text     string
		want     string
	}{
		{name: "group", template: "$1", text: "// SUPPRESS CHECKSTYLE MemberName", want: "MemberName"},
		{name: "whole match", template: "[$0]", text: "x SUPPRESS CHECKSTYLE A y", want: "[SUPPRESS CHECKSTYLE A]"},
		{name: "no match", template: "$1", text: "nothing here", want: "$1"},
		{name: "no placeholders", template: ".*", text: "// SUPPRESS CHECKSTYLE A", want: ".*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExpandTemplate(tt.template, tt.text, re); got != tt.want {
				t.Errorf("ExpandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_HighGroupsFirst(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`(a)(b)(c)(d)(e)(f)(g)(h)(i)(j)`)
	if got := ExpandTemplate("$10|$1", "abcdefghij", re); got != "j|a" {
		t.Errorf("ExpandTemplate() = %q, want %q", got, "j|a")
	}
}

func TestExpandTemplate_OptionalGroup(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`OFF(:(\w+))?`)
	if got := ExpandTemplate("<$2>", "// OFF", re); got != "<>" {
		t.Errorf("ExpandTemplate() = %q, want %q", got, "<>")
	}
}

func TestCompileTemplate_Invalid(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`SUPPRESS (\S+)`)
	_, err := CompileTemplate("$1", "// SUPPRESS [abc", re)

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
	if ce.Text != "// SUPPRESS [abc" {
		t.Errorf("ConfigError.Text = %q", ce.Text)
	}
}

func TestCompilePattern(t *testing.T) {
	t.Parallel()
	re, err := CompilePattern("checks", "")
	if err != nil || re != nil {
		t.Errorf("empty pattern = %v, %v; want nil, nil", re, err)
	}
	_, err = CompilePattern("checks", "(")
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Source != "checks" {
		t.Errorf("error = %v, want ConfigError from checks", err)
	}
}
