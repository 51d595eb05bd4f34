package linter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/javalint/internal/config"
	"github.com/wharflab/javalint/internal/filter"
	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/suppressions"
)

const demoSource = `package com.acme;

class Demo {
  int Bad;
  // CHECKSTYLE:OFF
  int Worse;
  // CHECKSTYLE:ON
  int good;
}
`

func writeJava(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func codesAndLines(violations []rules.Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, fmt.Sprintf("%s@%d", v.RuleCode, v.Line()))
	}
	return out
}

func TestLintFile_Content(t *testing.T) {
	t.Parallel()

	res, err := LintFile(context.Background(), Input{
		FilePath: "Demo.java",
		Content:  []byte(demoSource),
		Config:   config.Default(),
	})
	require.NoError(t, err)
	t.Cleanup(res.Tree.Close)

	// Raw violations ignore suppression markers.
	assert.Equal(t, []string{"MemberName@4", "MemberName@6"}, codesAndLines(res.Violations))
	assert.Equal(t, []byte(demoSource), res.Source)
}

func TestLintFile_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := LintFile(context.Background(), Input{
		FilePath: "Bad.java",
		Content:  []byte("class A { // \xff\n}"),
		Config:   config.Default(),
	})
	require.Error(t, err)
}

func TestLintFile_RuleOptions(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Rules.Set("MemberName", config.RuleConfig{Options: map[string]any{"format": "^[A-Z][a-z]+$"}})

	res, err := LintFile(context.Background(), Input{FilePath: "Demo.java", Content: []byte(demoSource), Config: cfg})
	require.NoError(t, err)
	t.Cleanup(res.Tree.Close)
	assert.Equal(t, []string{"MemberName@8"}, codesAndLines(res.Violations))
}

func TestEnabledRuleCodes(t *testing.T) {
	t.Parallel()

	all := EnabledRuleCodes(config.Default(), rules.DefaultRegistry())
	assert.Contains(t, all, "MemberName")
	assert.Contains(t, all, "FileLength")

	cfg := config.Default()
	cfg.Rules.Exclude = []string{"naming/*"}
	cfg.Rules.Set("FileLength", config.RuleConfig{Severity: "off"})
	assert.Empty(t, EnabledRuleCodes(cfg, rules.DefaultRegistry()))

	cfg.Rules.Include = []string{"TypeName"}
	assert.Equal(t, []string{"TypeName"}, EnabledRuleCodes(cfg, rules.DefaultRegistry()))
}

func TestIsRuleEnabled_OffByDefault(t *testing.T) {
	t.Parallel()

	meta := rules.RuleMetadata{Code: "Optional", Category: "misc"}
	assert.False(t, isRuleEnabled(meta, config.Default()))
	assert.False(t, isRuleEnabled(meta, nil))

	cfg := config.Default()
	cfg.Rules.Set("Optional", config.RuleConfig{Options: map[string]any{"max": 3}})
	assert.True(t, isRuleEnabled(meta, cfg))

	cfg = config.Default()
	cfg.Rules.Set("Optional", config.RuleConfig{Severity: "error"})
	assert.True(t, isRuleEnabled(meta, cfg))
}

func TestBuildFilters_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{name: "comment marker", mutate: func(cfg *config.Config) { cfg.Filters.Comment.OffFormat = "(" }},
		{name: "inline entry", mutate: func(cfg *config.Config) {
			cfg.Filters.Suppress = []suppressions.Entry{{Files: "Demo"}}
		}},
		{name: "severity", mutate: func(cfg *config.Config) { cfg.Filters.Severity.Severity = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tt.mutate(cfg)
			_, err := BuildFilters(context.Background(), cfg, LoadOptions{})
			var ce *filter.ConfigError
			require.ErrorAs(t, err, &ce)
		})
	}
}

func TestBuildFilters_MissingDocument(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "suppressions.xml")

	cfg := config.Default()
	cfg.Filters.Suppressions = []config.SuppressionsFile{{Location: missing}}
	_, err := BuildFilters(context.Background(), cfg, LoadOptions{})
	require.ErrorIs(t, err, suppressions.ErrNotFound)

	cfg.Filters.Suppressions[0].Optional = true
	f, err := BuildFilters(context.Background(), cfg, LoadOptions{})
	require.NoError(t, err)
	assert.NotNil(t, f.ForFile())
}

func TestForFile_Empty(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Filters.Comment.Enabled = false
	f, err := BuildFilters(context.Background(), cfg, LoadOptions{})
	require.NoError(t, err)
	assert.Nil(t, f.ForFile())

	var none *Filters
	assert.Nil(t, none.ForFile())
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	demo := writeJava(t, dir, "Demo.java", demoSource)
	other := writeJava(t, dir, "Other.java", "class other {\n  void Run() {}\n}\n")
	suppressionsXML := writeJava(t, dir, "suppressions.xml", `<?xml version="1.0"?>
<suppressions>
  <suppress files="Other\.java" checks="MethodName"/>
</suppressions>
`)

	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
		want   []string
	}{
		{
			name: "defaults",
			want: []string{"MemberName@4", "TypeName@1", "MethodName@2"},
		},
		{
			name:   "suppressions document",
			mutate: func(cfg *config.Config) { cfg.Filters.Suppressions = []config.SuppressionsFile{{Location: suppressionsXML}} },
			want:   []string{"MemberName@4", "TypeName@1"},
		},
		{
			name: "inline suppress",
			mutate: func(cfg *config.Config) {
				cfg.Filters.Suppress = []suppressions.Entry{{Checks: "Name$", Lines: "1-2"}}
			},
			want: []string{"MemberName@4"},
		},
		{
			name:   "comment filter disabled",
			mutate: func(cfg *config.Config) { cfg.Filters.Comment.Enabled = false },
			want:   []string{"MemberName@4", "MemberName@6", "TypeName@1", "MethodName@2"},
		},
		{
			name: "nearby comment",
			mutate: func(cfg *config.Config) {
				cfg.Filters.Comment.Enabled = false
				cfg.Filters.NearbyComment.Enabled = true
				cfg.Filters.NearbyComment.CommentFormat = "CHECKSTYLE:OFF"
				cfg.Filters.NearbyComment.InfluenceFormat = "1"
			},
			want: []string{"MemberName@4", "TypeName@1", "MethodName@2"},
		},
		{
			name: "severity filter",
			mutate: func(cfg *config.Config) {
				cfg.Rules.Set("TypeName", config.RuleConfig{Severity: "error"})
				cfg.Filters.Severity = config.SeverityFilterConfig{Severity: "error", AcceptOnMatch: true}
			},
			want: []string{"TypeName@1"},
		},
		{
			name:   "category excluded",
			mutate: func(cfg *config.Config) { cfg.Rules.Exclude = []string{"naming/*"} },
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			filters, err := BuildFilters(context.Background(), cfg, LoadOptions{})
			require.NoError(t, err)

			report, err := Run(context.Background(), []string{other, demo}, RunOptions{
				Config:      cfg,
				Filters:     filters,
				Concurrency: 2,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, codesAndLines(report.Violations))
			assert.Equal(t, 2, report.FilesScanned)
			assert.Len(t, report.Sources, 2)
		})
	}
}

func TestRun_FailsOnUnreadableFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "Missing.java")
	_, err := Run(context.Background(), []string{missing}, RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing.java")
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	path := writeJava(t, t.TempDir(), "Demo.java", demoSource)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []string{path}, RunOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
