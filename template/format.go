package template

import (
	"strings"

	"github.com/goccy/go-yaml"
)

// Format rebuilds template source from a parsed tree. For any src that
// parses with these delimiters, Format(Parse(src)) == src.
func (d Delimiters) Format(root *TextNode) string {
	var sb strings.Builder
	d.writeLines(&sb, root.Lines)

	return sb.String()
}

func (d Delimiters) writeLines(sb *strings.Builder, body [][]Word) {
	for i, line := range body {
		if i > 0 {
			sb.WriteByte('\n')
		}

		for _, w := range line {
			switch w := w.(type) {
			case Literal:
				sb.WriteString(string(w))
			case Nested:
				d.writeNode(sb, w.Node)
			}
		}
	}
}

func (d Delimiters) writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *CodeNode:
		sb.WriteString(d.OpenCode)
		d.writeLines(sb, n.Lines)
		sb.WriteString(d.CloseCode)
	case *TextNode:
		sb.WriteString(d.OpenText)
		d.writeLines(sb, n.Lines)
		sb.WriteString(d.CloseText)
	}
}

type dumpNode struct {
	Kind  string  `yaml:"kind"`
	Pos   string  `yaml:"pos"`
	Lines [][]any `yaml:"lines"`
}

// Dump renders the tree as YAML for inspection.
func Dump(n Node) ([]byte, error) {
	return yaml.Marshal(toDump(n))
}

func toDump(n Node) dumpNode {
	var (
		kind string
		body [][]Word
	)

	switch n := n.(type) {
	case *TextNode:
		kind, body = "text", n.Lines
	case *CodeNode:
		kind, body = "code", n.Lines
	}

	out := dumpNode{Kind: kind, Pos: n.Start().String(), Lines: make([][]any, 0, len(body))}
	for _, line := range body {
		words := make([]any, 0, len(line))
		for _, w := range line {
			switch w := w.(type) {
			case Literal:
				words = append(words, string(w))
			case Nested:
				words = append(words, toDump(w.Node))
			}
		}

		out.Lines = append(out.Lines, words)
	}

	return out
}
