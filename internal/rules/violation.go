package rules

// Violation is a single finding produced by a rule.
type Violation struct {
	// Location specifies where the violation occurred.
	Location Location `json:"location"`

	// RuleCode identifies the check that produced the violation (e.g. "TypeName").
	RuleCode string `json:"rule"`

	// ModuleID is the user-assigned id of the configured check instance (optional).
	ModuleID string `json:"moduleId,omitempty"`

	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// Severity indicates how critical this violation is.
	Severity Severity `json:"severity"`

	// NodeKind is the syntax node kind the violation is anchored to (optional).
	// Structural suppressions compare it with the kind of the queried node.
	NodeKind string `json:"nodeKind,omitempty"`

	// DocURL links to documentation about this rule (optional).
	DocURL string `json:"docUrl,omitempty"`

	// SourceCode is the source snippet where the violation occurred.
	// Populated by post-processing; rules don't need to set this.
	SourceCode string `json:"sourceCode,omitempty"`
}

// NewViolation creates a new violation with the minimum required fields.
func NewViolation(loc Location, ruleCode, message string, severity Severity) Violation {
	return Violation{
		Location: loc,
		RuleCode: ruleCode,
		Message:  message,
		Severity: severity,
	}
}

// WithModuleID tags the violation with the id of the check instance.
func (v Violation) WithModuleID(id string) Violation {
	v.ModuleID = id
	return v
}

// WithNodeKind records the syntax node kind the violation points at.
func (v Violation) WithNodeKind(kind string) Violation {
	v.NodeKind = kind
	return v
}

// WithDocURL adds a documentation URL to the violation.
func (v Violation) WithDocURL(url string) Violation {
	v.DocURL = url
	return v
}

// WithSourceCode adds source code snippet to the violation.
func (v Violation) WithSourceCode(code string) Violation {
	v.SourceCode = code
	return v
}

// File returns the file path from the location.
func (v Violation) File() string {
	return v.Location.File
}

// Line returns the 1-based starting line.
func (v Violation) Line() int {
	return v.Location.Start.Line
}

// Column returns the 0-based starting column, or -1 when unset.
func (v Violation) Column() int {
	if v.Location.Start.Column < 0 {
		return -1
	}
	return v.Location.Start.Column
}
