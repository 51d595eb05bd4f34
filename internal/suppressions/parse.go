package suppressions

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/wharflab/javalint/internal/filter"
)

// Format is the syntax of a suppressions document.
type Format int

const (
	// FormatAuto picks the format from the location's extension and content.
	FormatAuto Format = iota
	// FormatXML is the checkstyle suppressions XML format.
	FormatXML
	// FormatYAML is the YAML equivalent.
	FormatYAML
)

func detectFormat(location string, data []byte) Format {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".xml":
		return FormatXML
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
		return FormatXML
	}
	return FormatYAML
}

// Parse builds a document from data. location is only used for format
// detection and error messages.
func Parse(data []byte, location string, format Format) (*Document, error) {
	if format == FormatAuto {
		format = detectFormat(location, data)
	}
	if format == FormatYAML {
		return parseYAML(data, location)
	}
	return parseXML(data, location)
}

func parseXML(data []byte, location string) (*Document, error) {
	doc := newDocument(location)
	dec := xml.NewDecoder(bytes.NewReader(data))
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(location, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		line, _ := dec.InputPos()
		source := fmt.Sprintf("%s:%d", location, line)

		switch start.Name.Local {
		case "suppressions":
			if sawRoot {
				return nil, &filter.ConfigError{Source: source, Reason: "nested <suppressions> element"}
			}
			sawRoot = true
		case "suppress", "suppress-xpath":
			if !sawRoot {
				return nil, &filter.ConfigError{Source: source, Reason: "element outside <suppressions>", Text: start.Name.Local}
			}
			var e Entry
			if err := dec.DecodeElement(&e, &start); err != nil {
				return nil, malformed(source, err)
			}
			if err := addEntry(doc, e, start.Name.Local == "suppress-xpath", source); err != nil {
				return nil, err
			}
		default:
			return nil, &filter.ConfigError{Source: source, Reason: "unexpected element", Text: start.Name.Local}
		}
	}
	if !sawRoot {
		return nil, &filter.ConfigError{Source: location, Reason: "missing <suppressions> root element"}
	}
	return doc, nil
}

type yamlDocument struct {
	Suppress      []Entry `yaml:"suppress"`
	SuppressQuery []Entry `yaml:"suppress-query"`
}

func parseYAML(data []byte, location string) (*Document, error) {
	var raw yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, malformed(location, err)
	}
	return FromEntries(location, raw.Suppress, raw.SuppressQuery)
}

// FromEntries builds a document from entries declared outside a document,
// such as the [[filters.suppress]] tables of the configuration file.
func FromEntries(location string, patterns, queries []Entry) (*Document, error) {
	doc := newDocument(location)
	for i, e := range patterns {
		if err := addEntry(doc, e, false, fmt.Sprintf("%s: suppress[%d]", location, i)); err != nil {
			return nil, err
		}
	}
	for i, e := range queries {
		if err := addEntry(doc, e, true, fmt.Sprintf("%s: suppress-query[%d]", location, i)); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func addEntry(doc *Document, e Entry, query bool, source string) error {
	switch {
	case query && e.Checks == "" && e.ID == "" && e.Message == "":
		return &filter.ConfigError{Source: source, Reason: "missing checks, id or message attribute"}
	case !query && e.Files == "" && e.Checks == "" && e.ID == "" && e.Message == "":
		return &filter.ConfigError{Source: source, Reason: "missing files, checks, id or message attribute"}
	}
	var err error
	if query {
		if e.Lines != "" || e.Columns != "" {
			return &filter.ConfigError{Source: source, Reason: "lines and columns are not allowed on structural suppressions"}
		}
		err = doc.addQuery(e)
	} else {
		if e.Query != "" {
			return &filter.ConfigError{Source: source, Reason: "query is only allowed on structural suppressions", Text: e.Query}
		}
		err = doc.addPattern(e)
	}
	if err != nil {
		var ce *filter.ConfigError
		if errors.As(err, &ce) {
			if ce.Source == "" {
				ce.Source = source
			} else {
				ce.Source = source + " " + ce.Source
			}
		}
		return err
	}
	return nil
}

func malformed(source string, err error) error {
	return &filter.ConfigError{Source: source, Reason: "malformed suppressions document", Err: err}
}
