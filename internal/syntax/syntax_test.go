package syntax

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `package com.example;

// CHECKSTYLE:OFF
public class Sample implements Runnable {
    /* block
       comment */
    private static final int MAX = 1;

    @Override
    public void run() {
        int local = MAX;
    }
}
`

func parseSample(t *testing.T) *Tree {
	t.Helper()
	tree, err := Parse(context.Background(), "Sample.java", []byte(sample))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestParse(t *testing.T) {
	t.Parallel()
	tree := parseSample(t)

	assert.False(t, tree.HasErrors())
	assert.Equal(t, "program", tree.Root().Type())
}

func TestParse_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, "Sample.java", []byte(sample))
	require.ErrorIs(t, err, context.Canceled)
}

func TestComments(t *testing.T) {
	t.Parallel()
	tree := parseSample(t)

	comments := tree.Comments()
	require.Len(t, comments, 2)

	assert.Equal(t, "// CHECKSTYLE:OFF", comments[0].Text)
	assert.Equal(t, 3, comments[0].Line)
	assert.Equal(t, 0, comments[0].Column)
	assert.False(t, comments[0].Block)

	block := comments[1]
	assert.True(t, block.Block)
	assert.Equal(t, 5, block.Line)
	assert.Equal(t, 4, block.Column)

	lines := block.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "/* block", lines[0].Text)
	assert.Equal(t, 4, lines[0].Column)
	assert.Equal(t, 6, lines[1].Line)
	assert.Equal(t, 0, lines[1].Column)
}

func findFirst(tree *Tree, kind string) *sitter.Node {
	var found *sitter.Node
	Walk(tree.Root(), func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestDeclarationHelpers(t *testing.T) {
	t.Parallel()
	tree := parseSample(t)

	field := findFirst(tree, "field_declaration")
	require.NotNil(t, field)
	assert.True(t, HasModifier(field, "static"))
	assert.True(t, HasModifier(field, "final"))
	assert.False(t, InInterface(field))

	decls := Declarators(field)
	require.Len(t, decls, 1)
	assert.Equal(t, "MAX", tree.Text(NameNode(decls[0])))

	method := findFirst(tree, "method_declaration")
	require.NotNil(t, method)
	assert.True(t, HasAnnotation(method, tree.Source, "Override"))
	assert.False(t, HasModifier(method, "static"))

	name := NameNode(method)
	require.NotNil(t, name)
	assert.Equal(t, "run", tree.Text(name))
	assert.Equal(t, 10, Line(name))
	assert.Equal(t, 16, Column(name))
}
