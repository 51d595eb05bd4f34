package processor

import (
	"fmt"
	"path/filepath"

	"github.com/wharflab/javalint/internal/rules"
)

// Deduplication removes duplicate violations.
// Two violations are duplicates if they share file, position, rule code and
// message. A rule may report several names on one line ("int A, B;"), so the
// column and message are part of the key.
type Deduplication struct{}

// NewDeduplication creates a new deduplication processor.
func NewDeduplication() *Deduplication {
	return &Deduplication{}
}

// Name returns the processor's identifier.
func (p *Deduplication) Name() string {
	return "deduplication"
}

// Process removes duplicate violations, keeping the first occurrence.
func (p *Deduplication) Process(violations []rules.Violation, _ *Context) ([]rules.Violation, error) {
	seen := make(map[string]bool)
	return filterViolations(violations, func(v rules.Violation) bool {
		key := fmt.Sprintf("%s:%d:%d:%s:%s",
			filepath.ToSlash(v.Location.File), v.Line(), v.Column(), v.RuleCode, v.Message)
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	}), nil
}
