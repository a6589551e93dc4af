package renderer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/cel-go/cel"

	"github.com/shibukawa/snaptmpl/combinator"
	"github.com/shibukawa/snaptmpl/template"
)

// span maps a range of the assembled expression (in runes) back to the code
// region it came from.
type span struct {
	start, end int
	pos        combinator.Position
}

// builder assembles a single expression from a template tree.
//
// A text region becomes one flat list of quoted string constants and code
// results, with a "\n" element between lines, joined into a string. A flat
// list keeps the parser depth constant however many lines the template has.
// Code regions are spliced in raw and wrapped in stringify(...); text nested
// in code is parenthesized so it keeps its precedence.
type builder struct {
	sb     strings.Builder
	offset int
	spans  []span
}

func (b *builder) String() string {
	return b.sb.String()
}

func (b *builder) write(s string) {
	b.sb.WriteString(s)
	b.offset += utf8.RuneCountInString(s)
}

func (b *builder) node(n template.Node) {
	switch n := n.(type) {
	case *template.TextNode:
		b.text(n)
	case *template.CodeNode:
		b.code(n)
	default:
		panic(fmt.Errorf("%w: %T", ErrUnknownNode, n))
	}
}

func (b *builder) text(n *template.TextNode) {
	dedent := n.Pos.Column - 1

	b.write("[")

	for i, line := range n.Lines {
		if i > 0 {
			b.write(`, "\n", `)
		}

		empty := true

		for j, w := range line {
			switch w := w.(type) {
			case template.Literal:
				s := string(w)
				if j == 0 {
					s = unindent(s, dedent)
				}

				if s == "" {
					continue
				}

				if !empty {
					b.write(", ")
				}

				b.write(strconv.Quote(s))
			case template.Nested:
				if !empty {
					b.write(", ")
				}

				b.node(w.Node)
			}

			empty = false
		}

		if empty {
			b.write(`""`)
		}
	}

	b.write("].join()")
}

func (b *builder) code(n *template.CodeNode) {
	if blank(n) {
		b.write(`""`)
		return
	}

	start := b.offset

	b.write("stringify(")

	for _, line := range n.Lines {
		for _, w := range line {
			switch w := w.(type) {
			case template.Literal:
				b.write(string(w))
			case template.Nested:
				b.write("(")
				b.node(w.Node)
				b.write(")")
			}
		}
	}

	b.write(")")

	b.spans = append(b.spans, span{start: start, end: b.offset, pos: n.Pos})
}

// locate returns the opening position of the innermost code region covering
// the expression column.
func (b *builder) locate(column int) (combinator.Position, bool) {
	var (
		found bool
		best  span
	)

	for _, s := range b.spans {
		if column < s.start || column > s.end {
			continue
		}

		if !found || s.end-s.start < best.end-best.start {
			best, found = s, true
		}
	}

	return best.pos, found
}

func (b *builder) codeErrors(iss *cel.Issues, root *template.TextNode) error {
	errs := make([]error, 0, len(iss.Errors()))

	for _, e := range iss.Errors() {
		pos, ok := b.locate(e.Location.Column())
		if !ok {
			pos = root.Pos
		}

		errs = append(errs, &CodeError{Pos: pos, Message: e.Message})
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return errors.Join(errs...)
}

// unindent strips up to n leading spaces.
func unindent(s string, n int) string {
	i := 0
	for i < n && i < len(s) && s[i] == ' ' {
		i++
	}

	return s[i:]
}

func blank(n *template.CodeNode) bool {
	for _, line := range n.Lines {
		for _, w := range line {
			lit, ok := w.(template.Literal)
			if !ok || strings.TrimSpace(string(lit)) != "" {
				return false
			}
		}
	}

	return true
}
