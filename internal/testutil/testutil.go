// Package testutil provides test helpers for Java rules.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/syntax"
)

// ParseJava parses a Java source string. The tree is closed when the test ends.
func ParseJava(tb testing.TB, file, content string) *syntax.Tree {
	tb.Helper()

	tree, err := syntax.Parse(context.Background(), file, []byte(content))
	if err != nil {
		tb.Fatalf("failed to parse Java source: %v", err)
	}
	tb.Cleanup(tree.Close)
	return tree
}

// MakeLintInput creates a LintInput for testing a rule.
func MakeLintInput(tb testing.TB, file, content string) rules.LintInput {
	tb.Helper()

	tree := ParseJava(tb, file, content)
	return rules.LintInput{
		File:   file,
		Tree:   tree,
		Source: tree.Source,
	}
}

// MakeLintInputWithConfig creates a LintInput with rule configuration.
func MakeLintInputWithConfig(tb testing.TB, file, content string, config any) rules.LintInput {
	tb.Helper()

	input := MakeLintInput(tb, file, content)
	input.Config = config
	return input
}

// RuleTestCase defines a test case for table-driven rule tests.
type RuleTestCase struct {
	// Name is the test case name.
	Name string

	// Content is the Java source to lint.
	Content string

	// Config is the optional rule configuration.
	Config any

	// WantViolations is the expected number of violations.
	// Use -1 to skip the count check.
	WantViolations int

	// WantCodes is the expected rule codes in violation order (for detailed checks).
	WantCodes []string

	// WantMessages are substrings expected in violation messages.
	WantMessages []string

	// WantLines are the expected 1-based violation lines in order.
	WantLines []int
}

// RunRuleTests runs a table of test cases against a rule.
func RunRuleTests(t *testing.T, rule rules.Rule, cases []RuleTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			input := MakeLintInputWithConfig(t, "Input.java", tc.Content, tc.Config)
			violations := rule.Check(input)

			// Check violation count
			if tc.WantViolations >= 0 && len(violations) != tc.WantViolations {
				t.Errorf("got %d violations, want %d", len(violations), tc.WantViolations)
				for i, v := range violations {
					t.Logf("  [%d] %s: %s", i, v.RuleCode, v.Message)
				}
			}

			// Check violation codes
			if len(tc.WantCodes) > 0 {
				if len(violations) != len(tc.WantCodes) {
					t.Errorf("got %d violations, want %d", len(violations), len(tc.WantCodes))
				} else {
					for i, code := range tc.WantCodes {
						if violations[i].RuleCode != code {
							t.Errorf("violation[%d].RuleCode = %q, want %q", i, violations[i].RuleCode, code)
						}
					}
				}
			}

			// Check message substrings
			if len(tc.WantMessages) > 0 {
				for i, msg := range tc.WantMessages {
					if i >= len(violations) {
						t.Errorf(
							"expected violation[%d] with message containing %q, but only got %d violations",
							i,
							msg,
							len(violations),
						)
						continue
					}
					if !strings.Contains(violations[i].Message, msg) {
						t.Errorf("violation[%d].Message = %q, want substring %q", i, violations[i].Message, msg)
					}
				}
			}

			for i, line := range tc.WantLines {
				if i >= len(violations) {
					t.Errorf("expected violation[%d] on line %d, but only got %d violations", i, line, len(violations))
					break
				}
				if violations[i].Line() != line {
					t.Errorf("violation[%d].Line() = %d, want %d", i, violations[i].Line(), line)
				}
			}
		})
	}
}

// AssertNoViolations fails the test if there are any violations.
func AssertNoViolations(tb testing.TB, violations []rules.Violation) {
	tb.Helper()
	if len(violations) > 0 {
		tb.Errorf("expected no violations, got %d:", len(violations))
		for _, v := range violations {
			tb.Logf("  - %s at line %d: %s", v.RuleCode, v.Line(), v.Message)
		}
	}
}

// AssertViolationCount fails if the violation count doesn't match.
func AssertViolationCount(tb testing.TB, violations []rules.Violation, want int) {
	tb.Helper()
	if len(violations) != want {
		tb.Errorf("got %d violations, want %d", len(violations), want)
		for _, v := range violations {
			tb.Logf("  - %s at line %d: %s", v.RuleCode, v.Line(), v.Message)
		}
	}
}
