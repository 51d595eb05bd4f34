// Package suppressions loads external suppression documents.
//
// A document lists pattern suppressions (<suppress>) and structural query
// suppressions (<suppress-xpath>) in the checkstyle XML format, or the same
// entries in YAML:
//
//	suppress:
//	  - files: Generated\.java
//	    checks: .*
//	suppress-query:
//	  - checks: MemberName
//	    query: (variable_declarator name: (identifier) @name)
package suppressions

import (
	"bytes"
	"encoding/xml"
	"slices"

	"github.com/wharflab/javalint/internal/filter"
)

// Entry is one suppression as written in a document. Empty fields are unset.
type Entry struct {
	Files   string `xml:"files,attr,omitempty"   yaml:"files,omitempty" koanf:"files"`
	Checks  string `xml:"checks,attr,omitempty"  yaml:"checks,omitempty" koanf:"checks"`
	Message string `xml:"message,attr,omitempty" yaml:"message,omitempty" koanf:"message"`
	ID      string `xml:"id,attr,omitempty"      yaml:"id,omitempty" koanf:"id"`
	Lines   string `xml:"lines,attr,omitempty"   yaml:"lines,omitempty" koanf:"lines"`
	Columns string `xml:"columns,attr,omitempty" yaml:"columns,omitempty" koanf:"columns"`
	Query   string `xml:"query,attr,omitempty"   yaml:"query,omitempty" koanf:"query"`
}

// Document is a loaded suppressions document. It implements filter.Filter:
// an event is rejected when any pattern element or any query element
// suppresses it.
//
// A Document is read-only after loading and safe for concurrent use.
type Document struct {
	// Location is where the document was loaded from.
	Location string
	// Patterns holds the <suppress> elements.
	Patterns *filter.FilterSet[*filter.Event]
	// Queries holds the <suppress-xpath> elements.
	Queries []*filter.QueryElement
}

func newDocument(location string) *Document {
	return &Document{Location: location, Patterns: filter.NewFilterSet[*filter.Event]()}
}

// Empty reports whether the document suppresses nothing.
func (d *Document) Empty() bool {
	return d.Patterns.Len() == 0 && len(d.Queries) == 0
}

// Accept implements filter.Filter.
func (d *Document) Accept(ev *filter.Event) (bool, error) {
	if d.Patterns.Accept(ev) {
		return false, nil
	}
	for _, q := range d.Queries {
		ok, err := q.Accept(ev)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (d *Document) addPattern(e Entry) error {
	el, err := filter.NewSuppressElement(e.Files, e.Checks, e.Message, e.ID, e.Lines, e.Columns)
	if err != nil {
		return err
	}
	d.Patterns.Add(el)
	return nil
}

func (d *Document) addQuery(e Entry) error {
	el, err := filter.NewQueryElement(e.Files, e.Checks, e.Message, e.ID, e.Query)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(d.Queries, el.Equal) {
		d.Queries = append(d.Queries, el)
	}
	return nil
}

// Equal reports whether both documents hold the same elements, ignoring order.
func (d *Document) Equal(other *Document) bool {
	if other == nil || !d.Patterns.Equal(other.Patterns) || len(d.Queries) != len(other.Queries) {
		return false
	}
	for _, q := range d.Queries {
		if !slices.ContainsFunc(other.Queries, q.Equal) {
			return false
		}
	}
	return true
}

// Entries returns the pattern and query entries the document was built from.
func (d *Document) Entries() (patterns, queries []Entry) {
	for _, m := range d.Patterns.Members() {
		el, ok := m.(*filter.SuppressElement)
		if !ok {
			continue
		}
		patterns = append(patterns, Entry{
			Files:   el.Files(),
			Checks:  el.Checks(),
			Message: el.Message(),
			ID:      el.ModuleID(),
			Lines:   el.Lines(),
			Columns: el.Columns(),
		})
	}
	for _, q := range d.Queries {
		queries = append(queries, Entry{
			Files:   q.Files(),
			Checks:  q.Checks(),
			Message: q.Message(),
			ID:      q.ModuleID(),
			Query:   q.Query(),
		})
	}
	return patterns, queries
}

const doctype = `<!DOCTYPE suppressions PUBLIC "-//Checkstyle//DTD SuppressionFilter Configuration 1.2//EN" ` +
	`"https://checkstyle.org/dtds/suppressions_1_2.dtd">`

type xmlDocument struct {
	XMLName  xml.Name `xml:"suppressions"`
	Patterns []Entry  `xml:"suppress"`
	Queries  []Entry  `xml:"suppress-xpath"`
}

// Marshal renders the document in the XML format Load reads.
func (d *Document) Marshal() ([]byte, error) {
	patterns, queries := d.Entries()
	body, err := xml.MarshalIndent(xmlDocument{Patterns: patterns, Queries: queries}, "", "  ")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(doctype)
	buf.WriteByte('\n')
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
