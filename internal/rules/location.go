package rules

// Position is a point in a source file.
// Lines are 1-based. Columns are 0-based; a negative column means the
// violation carries no column information.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is a range in a source file. Start is inclusive, End exclusive.
// A point location has End.Line < 0 or End equal to Start.
type Location struct {
	File  string   `json:"file"`
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewFileLocation creates a location for file-level findings.
// Uses -1 as sentinel since lines are 1-based.
func NewFileLocation(file string) Location {
	return Location{
		File:  file,
		Start: Position{Line: -1, Column: -1},
		End:   Position{Line: -1, Column: -1},
	}
}

// NewLineLocation creates a point location on a line without column information.
func NewLineLocation(file string, line int) Location {
	return Location{
		File:  file,
		Start: Position{Line: line, Column: -1},
		End:   Position{Line: -1, Column: -1},
	}
}

// NewPointLocation creates a point location at line and column.
func NewPointLocation(file string, line, column int) Location {
	return Location{
		File:  file,
		Start: Position{Line: line, Column: column},
		End:   Position{Line: -1, Column: -1},
	}
}

// NewRangeLocation creates a location spanning multiple lines/columns.
func NewRangeLocation(file string, startLine, startCol, endLine, endCol int) Location {
	return Location{
		File:  file,
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

// IsFileLevel returns true if this is a file-level location (no specific line).
func (l Location) IsFileLevel() bool {
	return l.Start.Line < 0
}

// HasColumn reports whether the start position carries a column.
func (l Location) HasColumn() bool {
	return l.Start.Column >= 0
}

// IsPointLocation returns true if this is a single-point location.
func (l Location) IsPointLocation() bool {
	return l.End.Line < 0 || (l.End.Line == l.Start.Line && l.End.Column == l.Start.Column)
}
