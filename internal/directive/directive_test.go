package directive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/javalint/internal/filter"
	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/syntax"
)

func parse(t *testing.T, file, src string) *syntax.Tree {
	t.Helper()
	tree, err := syntax.Parse(context.Background(), file, []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func event(tree *syntax.Tree, file string, line int, code, id string) *filter.Event {
	v := rules.NewViolation(rules.NewPointLocation(file, line, 4), code, code+" violation", rules.SeverityWarning).
		WithModuleID(id)
	return &filter.Event{File: file, Violation: &v, Tree: tree}
}

type acceptor interface {
	Accept(ev *filter.Event) (bool, error)
}

func assertKept(t *testing.T, f acceptor, ev *filter.Event, want bool) {
	t.Helper()
	got, err := f.Accept(ev)
	require.NoError(t, err)
	assert.Equal(t, want, got, "line %d %s", ev.Violation.Line(), ev.Violation.RuleCode)
}

const pairedSource = `public class InputSuppress {
    // CHECKSTYLE:OFF
    private int A1;
    // CHECKSTYLE:ON
    private int A2;
    /* CHECKSTYLE:OFF */
    private int A3;
}
`

func TestCommentFilter_Defaults(t *testing.T) {
	t.Parallel()
	tree := parse(t, "InputSuppress.java", pairedSource)
	f, err := NewCommentFilter(DefaultCommentOptions())
	require.NoError(t, err)

	assertKept(t, f, event(tree, "InputSuppress.java", 1, "TypeName", ""), true)
	assertKept(t, f, event(tree, "InputSuppress.java", 3, "MemberName", ""), false)
	assertKept(t, f, event(tree, "InputSuppress.java", 5, "MemberName", ""), true)
	assertKept(t, f, event(tree, "InputSuppress.java", 7, "MemberName", ""), false)
}

func TestCommentFilter_LineCommentsDisabled(t *testing.T) {
	t.Parallel()
	tree := parse(t, "InputSuppress.java", pairedSource)
	opts := DefaultCommentOptions()
	opts.CheckLineComments = false
	f, err := NewCommentFilter(opts)
	require.NoError(t, err)

	assertKept(t, f, event(tree, "InputSuppress.java", 3, "MemberName", ""), true)
	assertKept(t, f, event(tree, "InputSuppress.java", 7, "MemberName", ""), false)
}

func TestCommentFilter_ScopeFromMarker(t *testing.T) {
	t.Parallel()
	src := `class A {
    // CSOFF: MemberName
    int A1;
    // CSOFF: TypeName
    // CSON: MemberName
    int A2;
}
`
	tree := parse(t, "A.java", src)
	f, err := NewCommentFilter(CommentOptions{
		OffFormat:         `CSOFF: (\w+)`,
		OnFormat:          `CSON: (\w+)`,
		CheckFormat:       "$1",
		CheckLineComments: true,
	})
	require.NoError(t, err)

	assertKept(t, f, event(tree, "A.java", 3, "MemberName", ""), false)
	assertKept(t, f, event(tree, "A.java", 3, "TypeName", ""), true)
	assertKept(t, f, event(tree, "A.java", 6, "MemberName", ""), true)
	assertKept(t, f, event(tree, "A.java", 6, "TypeName", ""), false)
}

func TestCommentFilter_OrphanOn(t *testing.T) {
	t.Parallel()
	src := `class A {
    // CHECKSTYLE:ON
    int A1;
}
`
	tree := parse(t, "A.java", src)
	f, err := NewCommentFilter(DefaultCommentOptions())
	require.NoError(t, err)

	markers, err := f.Markers(tree)
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.False(t, markers[0].Off)
	assertKept(t, f, event(tree, "A.java", 2, "MemberName", ""), true)
	assertKept(t, f, event(tree, "A.java", 3, "MemberName", ""), true)
}

func TestCommentFilter_MultipleOffsCloseAtOneOn(t *testing.T) {
	t.Parallel()
	src := `class A {
    // CHECKSTYLE:OFF
    int A1;
    // CHECKSTYLE:OFF
    int A2;
    // CHECKSTYLE:ON
    int A3;
}
`
	tree := parse(t, "A.java", src)
	f, err := NewCommentFilter(DefaultCommentOptions())
	require.NoError(t, err)

	for line, kept := range map[int]bool{3: false, 5: false, 6: false, 7: true} {
		assertKept(t, f, event(tree, "A.java", line, "MemberName", ""), kept)
	}
}

func TestCommentFilter_OnLineIsInclusive(t *testing.T) {
	t.Parallel()
	src := `// CHECKSTYLE:OFF
class A {
    int A1;
    int A2;
    int A3;
    int A4;
    int A5;
    int A6;
    int A7;
    // CHECKSTYLE:ON
    int A8;
}
`
	tree := parse(t, "A.java", src)
	f, err := NewCommentFilter(DefaultCommentOptions())
	require.NoError(t, err)

	for line := 1; line <= 10; line++ {
		assertKept(t, f, event(tree, "A.java", line, "MemberName", ""), false)
	}
	assertKept(t, f, event(tree, "A.java", 11, "MemberName", ""), true)
}

func TestCommentFilter_NarrowOnAfterBroadOff(t *testing.T) {
	t.Parallel()
	src := `class A {
    // CSOFF: MemberName|TypeName
    int A1;
    // CSON: MemberName
    int A2;
}
`
	tree := parse(t, "A.java", src)
	f, err := NewCommentFilter(CommentOptions{
		OffFormat:         `CSOFF: ([\w|]+)`,
		OnFormat:          `CSON: ([\w|]+)`,
		CheckFormat:       "$1",
		CheckLineComments: true,
	})
	require.NoError(t, err)

	tests := []struct {
		line int
		code string
		kept bool
	}{
		{line: 3, code: "MemberName", kept: false},
		{line: 3, code: "TypeName", kept: false},
		{line: 5, code: "MemberName", kept: true},
		{line: 5, code: "TypeName", kept: false},
		{line: 5, code: "ParameterName", kept: true},
	}
	for _, tt := range tests {
		assertKept(t, f, event(tree, "A.java", tt.line, tt.code, ""), tt.kept)
	}
}

func TestCommentFilter_OffAppliesFromItsColumn(t *testing.T) {
	t.Parallel()
	src := `class A {
    int A1; // CHECKSTYLE:OFF
    int A2; int A3;
}
`
	tree := parse(t, "A.java", src)
	f, err := NewCommentFilter(DefaultCommentOptions())
	require.NoError(t, err)

	before := rules.NewViolation(rules.NewPointLocation("A.java", 2, 8), "MemberName", "m", rules.SeverityWarning)
	ok, err := f.Accept(&filter.Event{File: "A.java", Violation: &before, Tree: tree})
	require.NoError(t, err)
	assert.True(t, ok, "code left of the marker is not suppressed")

	after := rules.NewViolation(rules.NewPointLocation("A.java", 2, 30), "MemberName", "m", rules.SeverityWarning)
	ok, err = f.Accept(&filter.Event{File: "A.java", Violation: &after, Tree: tree})
	require.NoError(t, err)
	assert.False(t, ok)

	lineOnly := rules.NewViolation(rules.NewLineLocation("A.java", 2), "MemberName", "m", rules.SeverityWarning)
	ok, err = f.Accept(&filter.Event{File: "A.java", Violation: &lineOnly, Tree: tree})
	require.NoError(t, err)
	assert.False(t, ok, "a violation without a column is suppressed on the marker line")

	assertKept(t, f, event(tree, "A.java", 3, "MemberName", ""), false)
}

func TestCommentFilter_IDFormat(t *testing.T) {
	t.Parallel()
	src := `class A {
    // CSOFF naming
    int A1;
}
`
	tree := parse(t, "A.java", src)
	f, err := NewCommentFilter(CommentOptions{
		OffFormat:         `CSOFF (\w+)`,
		OnFormat:          `CSON (\w+)`,
		CheckFormat:       ".*",
		IDFormat:          "$1",
		CheckLineComments: true,
	})
	require.NoError(t, err)

	assertKept(t, f, event(tree, "A.java", 3, "MemberName", "naming"), false)
	assertKept(t, f, event(tree, "A.java", 3, "MemberName", "other"), true)
	assertKept(t, f, event(tree, "A.java", 3, "MemberName", ""), true)
}

func TestCommentFilter_InvalidExpansion(t *testing.T) {
	t.Parallel()
	src := `class A {
    // CSOFF [bad
    int A1;
}
`
	tree := parse(t, "A.java", src)
	f, err := NewCommentFilter(CommentOptions{
		OffFormat:         `CSOFF (\S+)`,
		OnFormat:          `CSON (\S+)`,
		CheckFormat:       "$1",
		CheckLineComments: true,
	})
	require.NoError(t, err)

	_, err = f.Accept(event(tree, "A.java", 3, "MemberName", ""))
	var ce *filter.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "// CSOFF [bad", ce.Text)
	assert.Equal(t, "A.java:2", ce.Source)
	assert.Contains(t, err.Error(), "unable to parse expanded comment")
}

func TestCommentFilter_InvalidMarker(t *testing.T) {
	t.Parallel()
	opts := DefaultCommentOptions()
	opts.OffFormat = "("
	_, err := NewCommentFilter(opts)
	var ce *filter.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "off-format", ce.Source)
}

func TestCommentFilter_MissingTree(t *testing.T) {
	t.Parallel()
	f, err := NewCommentFilter(DefaultCommentOptions())
	require.NoError(t, err)

	_, err = f.Accept(event(nil, "A.java", 3, "MemberName", ""))
	var se *filter.StateError
	require.ErrorAs(t, err, &se)

	ok, err := f.Accept(&filter.Event{File: "A.java"})
	require.NoError(t, err)
	assert.True(t, ok, "events without a violation pass")
}

func TestCommentFilter_CacheFollowsFile(t *testing.T) {
	t.Parallel()
	suppressedTree := parse(t, "A.java", pairedSource)
	cleanTree := parse(t, "B.java", "class B {\n    int A1;\n    int A2;\n}\n")
	f, err := NewCommentFilter(DefaultCommentOptions())
	require.NoError(t, err)

	assertKept(t, f, event(suppressedTree, "A.java", 3, "MemberName", ""), false)
	assertKept(t, f, event(cleanTree, "B.java", 3, "MemberName", ""), true)
	assertKept(t, f, event(suppressedTree, "A.java", 3, "MemberName", ""), false)

	clone := f.Clone()
	assertKept(t, clone, event(suppressedTree, "A.java", 7, "MemberName", ""), false)
}

const nearbySource = `class A {
    int A1; // SUPPRESS CHECKSTYLE MemberName
    int A2;
    int A3;
}
`

func TestNearbyCommentFilter_Defaults(t *testing.T) {
	t.Parallel()
	tree := parse(t, "A.java", nearbySource)
	f, err := NewNearbyCommentFilter(DefaultNearbyOptions())
	require.NoError(t, err)

	assertKept(t, f, event(tree, "A.java", 2, "MemberName", ""), false)
	assertKept(t, f, event(tree, "A.java", 2, "TypeName", ""), false)
	assertKept(t, f, event(tree, "A.java", 3, "MemberName", ""), true)
}

func TestNearbyCommentFilter_CheckAndInfluence(t *testing.T) {
	t.Parallel()
	tree := parse(t, "A.java", nearbySource)
	opts := DefaultNearbyOptions()
	opts.CheckFormat = "$1"
	opts.InfluenceFormat = "1"
	f, err := NewNearbyCommentFilter(opts)
	require.NoError(t, err)

	assertKept(t, f, event(tree, "A.java", 2, "TypeName", ""), true)
	assertKept(t, f, event(tree, "A.java", 3, "MemberName", ""), false)
	assertKept(t, f, event(tree, "A.java", 4, "MemberName", ""), true)
}

func TestNearbyCommentFilter_NegativeInfluence(t *testing.T) {
	t.Parallel()
	src := `class A {
    int A1;
    int A2;
    // SUPPRESS MemberName -2
}
`
	tree := parse(t, "A.java", src)
	f, err := NewNearbyCommentFilter(NearbyOptions{
		CommentFormat:     `SUPPRESS (\w+) (-?\d+)`,
		CheckFormat:       "$1",
		InfluenceFormat:   "$2",
		CheckLineComments: true,
	})
	require.NoError(t, err)

	windows, err := f.Windows(tree)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, 2, windows[0].Start)
	assert.Equal(t, 4, windows[0].End)

	assertKept(t, f, event(tree, "A.java", 1, "MemberName", ""), true)
	assertKept(t, f, event(tree, "A.java", 2, "MemberName", ""), false)
}

func TestNearbyCommentFilter_BadInfluence(t *testing.T) {
	t.Parallel()
	tree := parse(t, "A.java", nearbySource)
	opts := DefaultNearbyOptions()
	opts.InfluenceFormat = "$1"
	f, err := NewNearbyCommentFilter(opts)
	require.NoError(t, err)

	_, err = f.Accept(event(tree, "A.java", 2, "MemberName", ""))
	var ce *filter.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "unable to parse influence")
	assert.Contains(t, ce.Text, "SUPPRESS CHECKSTYLE MemberName")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPlainTextFilter(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "A.java", `class A {
    // CHECKSTYLE:OFF
    int A1;
    // CHECKSTYLE:ON
    int A2;
    // CHECKSTYLE:ON // CHECKSTYLE:OFF
    int A3;
}
`)
	f, err := NewPlainTextFilter(DefaultPlainTextOptions())
	require.NoError(t, err)

	assertKept(t, f, event(nil, path, 3, "MemberName", ""), false)
	assertKept(t, f, event(nil, path, 5, "MemberName", ""), true)
	assertKept(t, f, event(nil, path, 7, "MemberName", ""), false)
}

func TestPlainTextFilter_NarrowOnAfterBroadOff(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "A.java", `class A {
    // CSOFF: MemberName|TypeName
    int A1;
    // CSON: MemberName
    int A2;
}
`)
	f, err := NewPlainTextFilter(PlainTextOptions{
		OffFormat:   `CSOFF: ([\w|]+)`,
		OnFormat:    `CSON: ([\w|]+)`,
		CheckFormat: "$1",
	})
	require.NoError(t, err)

	assertKept(t, f, event(nil, path, 4, "MemberName", ""), false)
	assertKept(t, f, event(nil, path, 5, "MemberName", ""), true)
	assertKept(t, f, event(nil, path, 5, "TypeName", ""), false)
}

func TestPlainTextFilter_MissingFile(t *testing.T) {
	t.Parallel()
	f, err := NewPlainTextFilter(DefaultPlainTextOptions())
	require.NoError(t, err)

	_, err = f.Accept(event(nil, filepath.Join(t.TempDir(), "Gone.java"), 1, "MemberName", ""))
	var se *filter.StateError
	require.ErrorAs(t, err, &se)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPlainTextFilter_Directory(t *testing.T) {
	t.Parallel()
	f, err := NewPlainTextFilter(DefaultPlainTextOptions())
	require.NoError(t, err)

	assertKept(t, f, event(nil, t.TempDir(), 1, "MemberName", ""), true)
}

func TestNearbyTextFilter(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "A.java", `class A {
    int A1;
    int A2; // SUPPRESS CHECKSTYLE MemberName
    int A3;
}
`)
	opts := DefaultNearbyTextOptions()
	opts.CheckPattern = "$1"
	opts.LineRange = "-1"
	f, err := NewNearbyTextFilter(opts)
	require.NoError(t, err)

	assertKept(t, f, event(nil, path, 1, "MemberName", ""), true)
	assertKept(t, f, event(nil, path, 2, "MemberName", ""), false)
	assertKept(t, f, event(nil, path, 3, "MemberName", ""), false)
	assertKept(t, f, event(nil, path, 3, "TypeName", ""), true)
	assertKept(t, f, event(nil, path, 4, "MemberName", ""), true)
}

func TestNearbyTextFilter_BadLineRange(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "A.java", "int a; // SUPPRESS CHECKSTYLE MemberName\n")
	opts := DefaultNearbyTextOptions()
	opts.LineRange = "many"
	f, err := NewNearbyTextFilter(opts)
	require.NoError(t, err)

	_, err = f.Accept(event(nil, path, 1, "MemberName", ""))
	var ce *filter.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "unable to parse line range")
}
