package config

import (
	"github.com/wharflab/javalint/internal/directive"
	"github.com/wharflab/javalint/internal/suppressions"
)

// FiltersConfig configures the violation filters. A violation is reported
// only if every enabled filter accepts it.
//
// Example TOML configuration:
//
//	[[filters.suppressions]]
//	location = "config/suppressions.xml"
//
//	[[filters.suppressions]]
//	location = "https://example.com/shared-suppressions.xml"
//	optional = true
//
//	[[filters.suppress]]
//	files = "Generated\\.java$"
//	checks = ".*"
//
//	[filters.nearby-comment]
//	enabled = true
//	influence-format = "1"
type FiltersConfig struct {
	// Suppressions lists external suppression documents.
	Suppressions []SuppressionsFile `koanf:"suppressions"`

	// Suppress declares pattern suppressions inline.
	Suppress []suppressions.Entry `koanf:"suppress"`

	// SuppressQuery declares structural query suppressions inline.
	SuppressQuery []suppressions.Entry `koanf:"suppress-query"`

	// Comment configures CHECKSTYLE:OFF / CHECKSTYLE:ON comment windows.
	Comment CommentFilterConfig `koanf:"comment"`

	// NearbyComment configures single comments that suppress nearby lines.
	NearbyComment NearbyCommentFilterConfig `koanf:"nearby-comment"`

	// PlainText configures OFF/ON markers matched against raw file lines.
	PlainText PlainTextFilterConfig `koanf:"plain-text"`

	// NearbyText configures raw text markers that suppress nearby lines.
	NearbyText NearbyTextFilterConfig `koanf:"nearby-text"`

	// Severity drops violations by severity.
	Severity SeverityFilterConfig `koanf:"severity"`
}

// SuppressionsFile references an external suppression document.
type SuppressionsFile struct {
	// Location is a local path or a URL (file://, http(s)://, s3://, gs://).
	Location string `koanf:"location"`

	// Optional ignores the document when it does not exist or cannot be fetched.
	Optional bool `koanf:"optional"`

	// MaxTries bounds fetch attempts for remote documents (0 = default).
	MaxTries uint `koanf:"max-tries"`
}

// CommentFilterConfig enables and configures the comment window filter.
type CommentFilterConfig struct {
	Enabled bool `koanf:"enabled"`

	directive.CommentOptions `koanf:",squash,flatten"`
}

// NearbyCommentFilterConfig enables and configures the nearby comment filter.
type NearbyCommentFilterConfig struct {
	Enabled bool `koanf:"enabled"`

	directive.NearbyOptions `koanf:",squash,flatten"`
}

// PlainTextFilterConfig enables and configures the plain text window filter.
type PlainTextFilterConfig struct {
	Enabled bool `koanf:"enabled"`

	directive.PlainTextOptions `koanf:",squash,flatten"`
}

// NearbyTextFilterConfig enables and configures the nearby text filter.
type NearbyTextFilterConfig struct {
	Enabled bool `koanf:"enabled"`

	directive.NearbyTextOptions `koanf:",squash,flatten"`
}

// SeverityFilterConfig drops (or keeps only) violations of one severity.
type SeverityFilterConfig struct {
	// Severity to match; empty disables the filter.
	Severity string `koanf:"severity"`

	// AcceptOnMatch keeps only matching violations when true and drops them
	// when false.
	AcceptOnMatch bool `koanf:"accept-on-match"`
}

// DefaultFilters returns the default filter configuration: comment windows
// are on, every other filter is off until configured.
func DefaultFilters() FiltersConfig {
	return FiltersConfig{
		Comment:       CommentFilterConfig{Enabled: true, CommentOptions: directive.DefaultCommentOptions()},
		NearbyComment: NearbyCommentFilterConfig{NearbyOptions: directive.DefaultNearbyOptions()},
		PlainText:     PlainTextFilterConfig{PlainTextOptions: directive.DefaultPlainTextOptions()},
		NearbyText:    NearbyTextFilterConfig{NearbyTextOptions: directive.DefaultNearbyTextOptions()},
	}
}
