package linter

import (
	"context"
	"fmt"

	"github.com/wharflab/javalint/internal/config"
	"github.com/wharflab/javalint/internal/directive"
	"github.com/wharflab/javalint/internal/filter"
	"github.com/wharflab/javalint/internal/logging"
	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/suppressions"
)

// inlineLocation names the document built from [[filters.suppress]] tables.
const inlineLocation = "config filters"

// Filters holds the compiled suppression filters of a configuration.
//
// Suppression documents are read-only and shared; the marker filters cache
// per-file state, so ForFile hands out independent clones.
type Filters struct {
	severity  *filter.SeverityMatch
	documents []*suppressions.Document

	comment       *directive.CommentFilter
	nearbyComment *directive.NearbyCommentFilter
	plainText     *directive.PlainTextFilter
	nearbyText    *directive.NearbyTextFilter
}

// LoadOptions configures BuildFilters.
type LoadOptions struct {
	// Suppressions overrides the loader options for every document (FS, MaxTries).
	Suppressions suppressions.Options
}

// BuildFilters compiles the filters configured in cfg and loads every
// suppression document. Any error aborts the run before files are linted.
func BuildFilters(ctx context.Context, cfg *config.Config, opts LoadOptions) (*Filters, error) {
	fc := cfg.Filters
	f := &Filters{}

	if fc.Severity.Severity != "" {
		sev, err := rules.ParseSeverity(fc.Severity.Severity)
		if err != nil {
			return nil, &filter.ConfigError{Source: "filters.severity", Reason: "invalid severity", Text: fc.Severity.Severity}
		}
		f.severity = &filter.SeverityMatch{Severity: sev, AcceptOnMatch: fc.Severity.AcceptOnMatch}
	}

	for i, ref := range fc.Suppressions {
		lo := opts.Suppressions
		lo.Optional = ref.Optional
		if ref.MaxTries > 0 {
			lo.MaxTries = ref.MaxTries
		}
		doc, err := suppressions.Load(ctx, ref.Location, lo)
		if err != nil {
			return nil, fmt.Errorf("filters.suppressions[%d]: %w", i, err)
		}
		f.documents = append(f.documents, doc)
	}

	if len(fc.Suppress) > 0 || len(fc.SuppressQuery) > 0 {
		doc, err := suppressions.FromEntries(inlineLocation, fc.Suppress, fc.SuppressQuery)
		if err != nil {
			return nil, err
		}
		f.documents = append(f.documents, doc)
	}

	var err error
	if fc.Comment.Enabled {
		if f.comment, err = directive.NewCommentFilter(fc.Comment.CommentOptions); err != nil {
			return nil, fmt.Errorf("filters.comment: %w", err)
		}
	}
	if fc.NearbyComment.Enabled {
		if f.nearbyComment, err = directive.NewNearbyCommentFilter(fc.NearbyComment.NearbyOptions); err != nil {
			return nil, fmt.Errorf("filters.nearby-comment: %w", err)
		}
	}
	if fc.PlainText.Enabled {
		if f.plainText, err = directive.NewPlainTextFilter(fc.PlainText.PlainTextOptions); err != nil {
			return nil, fmt.Errorf("filters.plain-text: %w", err)
		}
	}
	if fc.NearbyText.Enabled {
		if f.nearbyText, err = directive.NewNearbyTextFilter(fc.NearbyText.NearbyTextOptions); err != nil {
			return nil, fmt.Errorf("filters.nearby-text: %w", err)
		}
	}

	logging.For("filters").
		WithField("documents", len(f.documents)).
		WithField("markers", f.markerCount()).
		Debug("filters ready")
	return f, nil
}

func (f *Filters) markerCount() int {
	n := 0
	for _, on := range []bool{f.comment != nil, f.nearbyComment != nil, f.plainText != nil, f.nearbyText != nil} {
		if on {
			n++
		}
	}
	return n
}

// ForFile returns a filter chain for linting one file. Chains returned by
// separate calls can be used from different goroutines.
func (f *Filters) ForFile() filter.Filter {
	if f == nil {
		return nil
	}
	chain := filter.NewChain()
	if f.severity != nil {
		chain.Add(filter.FromPredicate(*f.severity))
	}
	for _, doc := range f.documents {
		if !doc.Empty() {
			chain.Add(doc)
		}
	}
	if f.comment != nil {
		chain.Add(f.comment.Clone())
	}
	if f.nearbyComment != nil {
		chain.Add(f.nearbyComment.Clone())
	}
	if f.plainText != nil {
		chain.Add(f.plainText.Clone())
	}
	if f.nearbyText != nil {
		chain.Add(f.nearbyText.Clone())
	}
	if chain.Len() == 0 {
		return nil
	}
	return chain
}
