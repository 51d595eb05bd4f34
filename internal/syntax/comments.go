package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Comment is a single line or block comment.
type Comment struct {
	// Text is the comment including its delimiters.
	Text string
	// Line is the 1-based line the comment starts on.
	Line int
	// Column is the 0-based byte column the comment starts at.
	Column int
	// Block is true for /* */ comments.
	Block bool
}

// CommentLine is one physical line of a comment.
type CommentLine struct {
	Text   string
	Line   int
	Column int
}

// Lines splits the comment into physical lines. Continuation lines of a block
// comment start at column 0.
func (c Comment) Lines() []CommentLine {
	parts := strings.Split(c.Text, "\n")
	out := make([]CommentLine, 0, len(parts))
	for i, p := range parts {
		line := CommentLine{Text: strings.TrimSuffix(p, "\r"), Line: c.Line + i}
		if i == 0 {
			line.Column = c.Column
		}
		out = append(out, line)
	}
	return out
}

func collectComments(root *sitter.Node, src []byte) []Comment {
	var comments []Comment
	Walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "line_comment", "block_comment", "comment":
			text := n.Content(src)
			comments = append(comments, Comment{
				Text:   text,
				Line:   Line(n),
				Column: Column(n),
				Block:  strings.HasPrefix(text, "/*"),
			})
			return false
		}
		return true
	})
	return comments
}
