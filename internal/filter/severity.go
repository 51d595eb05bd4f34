package filter

import "github.com/wharflab/javalint/internal/rules"

// SeverityMatch accepts or rejects violations by severity.
// With AcceptOnMatch set, only violations of Severity survive; otherwise they
// are the ones dropped.
type SeverityMatch struct {
	Severity      rules.Severity
	AcceptOnMatch bool
}

// Accept implements Predicate.
func (f SeverityMatch) Accept(ev *Event) bool {
	if !ev.HasViolation() {
		return true
	}
	matched := ev.Violation.Severity == f.Severity
	return matched == f.AcceptOnMatch
}
