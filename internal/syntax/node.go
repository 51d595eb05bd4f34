package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Line returns the 1-based line n starts on.
func Line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// Column returns the 0-based byte column n starts at.
func Column(n *sitter.Node) int {
	return int(n.StartPoint().Column)
}

// NameNode returns the "name" field of a declaration, or nil.
func NameNode(n *sitter.Node) *sitter.Node {
	name := n.ChildByFieldName("name")
	if name == nil || name.IsNull() {
		return nil
	}
	return name
}

// Modifiers returns the modifiers child of a declaration, or nil.
func Modifiers(n *sitter.Node) *sitter.Node {
	for i := range int(n.ChildCount()) {
		if c := n.Child(i); c.Type() == "modifiers" {
			return c
		}
	}
	return nil
}

// HasModifier reports whether the declaration carries the keyword modifier
// (e.g. "static", "final").
func HasModifier(n *sitter.Node, keyword string) bool {
	mods := Modifiers(n)
	if mods == nil {
		return false
	}
	for i := range int(mods.ChildCount()) {
		if mods.Child(i).Type() == keyword {
			return true
		}
	}
	return false
}

// HasAnnotation reports whether the declaration is annotated with name.
// Qualified annotations such as @java.lang.Override match their simple name.
func HasAnnotation(n *sitter.Node, src []byte, name string) bool {
	mods := Modifiers(n)
	if mods == nil {
		return false
	}
	for i := range int(mods.NamedChildCount()) {
		c := mods.NamedChild(i)
		if c.Type() != "marker_annotation" && c.Type() != "annotation" {
			continue
		}
		ident := NameNode(c)
		if ident == nil {
			continue
		}
		text := ident.Content(src)
		if text == name || strings.HasSuffix(text, "."+name) {
			return true
		}
	}
	return false
}

// InInterface reports whether the declaration is a direct member of an
// interface or annotation type body.
func InInterface(n *sitter.Node) bool {
	p := n.Parent()
	if p == nil || p.IsNull() {
		return false
	}
	switch p.Type() {
	case "interface_body", "annotation_type_body":
		return true
	}
	return false
}

// Declarators returns the variable_declarator children of a field or local
// variable declaration.
func Declarators(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := range int(n.NamedChildCount()) {
		if c := n.NamedChild(i); c.Type() == "variable_declarator" {
			out = append(out, c)
		}
	}
	return out
}
