// Package syntax parses Java sources with tree-sitter and exposes the pieces of
// the tree that checks and suppression filters need: nodes, comments and
// declaration modifiers.
package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Language returns the Java grammar used for parsing and structural queries.
func Language() *sitter.Language {
	return java.GetLanguage()
}

// Tree is a parsed Java compilation unit.
//
// A Tree is immutable once returned by Parse and safe for concurrent reads.
type Tree struct {
	// File is the path the source was read from.
	File string
	// Source is the raw file content the tree was built from.
	Source []byte

	tree     *sitter.Tree
	comments []Comment
}

// Parse parses src as a Java compilation unit.
// Syntax errors do not fail the parse; they surface as ERROR nodes (see HasErrors).
func Parse(ctx context.Context, file string, src []byte) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(Language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}

	t := &Tree{File: file, Source: src, tree: tree}
	t.comments = collectComments(tree.RootNode(), src)
	return t, nil
}

// Root returns the compilation unit node.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Comments returns every line and block comment in source order.
func (t *Tree) Comments() []Comment {
	return t.comments
}

// HasErrors reports whether the parser had to recover from syntax errors.
func (t *Tree) HasErrors() bool {
	return t.Root().HasError()
}

// Text returns the source text covered by n.
func (t *Tree) Text(n *sitter.Node) string {
	return n.Content(t.Source)
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
	}
}

// Walk visits n and its descendants depth-first in source order.
// Returning false from visit skips the children of the visited node.
func Walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil || n.IsNull() {
		return
	}
	if !visit(n) {
		return
	}
	for i := range int(n.ChildCount()) {
		Walk(n.Child(i), visit)
	}
}
