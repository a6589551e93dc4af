package template

import (
	"strings"

	"github.com/shibukawa/snaptmpl/combinator"
)

// Node is a parsed region: either *TextNode or *CodeNode.
// The set is closed; no other type implements Node.
type Node interface {
	// Start returns the position of the opening delimiter.
	Start() combinator.Position
	// Text concatenates the literal words of the region and all nested
	// regions, without delimiters.
	Text() string
	node()
}

// TextNode is text with embedded code regions. The parse root is always a TextNode.
type TextNode struct {
	Pos   combinator.Position
	Lines [][]Word
}

// CodeNode is an expression with embedded text regions.
type CodeNode struct {
	Pos   combinator.Position
	Lines [][]Word
}

func (n *TextNode) Start() combinator.Position { return n.Pos }
func (n *CodeNode) Start() combinator.Position { return n.Pos }

func (n *TextNode) Text() string { return flatten(n.Lines) }
func (n *CodeNode) Text() string { return flatten(n.Lines) }

func (*TextNode) node() {}
func (*CodeNode) node() {}

// Word is one element of a line: either Literal or Nested.
// The set is closed; no other type implements Word.
type Word interface {
	word()
}

// Literal is raw source characters.
type Literal string

// Nested is a region of the opposite kind embedded in a line.
type Nested struct {
	Node Node
}

func (Literal) word() {}
func (Nested) word()  {}

func flatten(body [][]Word) string {
	var sb strings.Builder

	for i, line := range body {
		if i > 0 {
			sb.WriteByte('\n')
		}

		for _, w := range line {
			switch w := w.(type) {
			case Literal:
				sb.WriteString(string(w))
			case Nested:
				sb.WriteString(w.Node.Text())
			}
		}
	}

	return sb.String()
}
