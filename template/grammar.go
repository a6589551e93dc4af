// Package template parses hybrid text/code documents into a tree of
// TextNode and CodeNode regions.
package template

import (
	"fmt"
	"unicode/utf8"

	c "github.com/shibukawa/snaptmpl/combinator"
)

type lines = [][]Word

// Grammar parses documents for one set of delimiters.
// It is immutable after NewGrammar and safe for concurrent use.
type Grammar struct {
	delims     Delimiters
	document   c.Parser[lines]
	codeRegion c.Parser[Word]
	textRegion c.Parser[Word]
}

var defaultGrammar = mustGrammar(DefaultDelimiters)

// Parse parses src with DefaultDelimiters.
func Parse(src string) (*TextNode, error) {
	return defaultGrammar.Parse(src)
}

// NewGrammar builds the grammar:
//
//	codeBlock  := codeWord sepBy(textRegion) sepBy_(NEWLINE)
//	textBlock  := textWord sepBy(codeRegion) sepBy_(NEWLINE)
//	codeRegion := openCode codeBlock closeCode
//	textRegion := openText textBlock closeText
//	document   := textBlock EOF
func NewGrammar(d Delimiters) (*Grammar, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	openCode := c.Literal(d.OpenCode)
	closeCode := c.Literal(d.CloseCode)
	openText := c.Literal(d.OpenText)
	closeText := c.Literal(d.CloseText)
	newline := c.Literal("\n")

	codeChar := c.ButNot(c.AnyChar(), openText.Or(closeCode).Or(newline))
	textChar := c.ButNot(c.AnyChar(), openCode.Or(closeText).Or(newline))

	rules := c.NewRules[lines]()
	codeBlock := rules.Declare("codeBlock")
	textBlock := rules.Declare("textBlock")

	g := &Grammar{delims: d}

	g.codeRegion = region(openCode, rules.Ref(codeBlock), closeCode, func(pos c.Position, body lines) Node {
		return &CodeNode{Pos: pos, Lines: body}
	})
	g.textRegion = region(openText, rules.Ref(textBlock), closeText, func(pos c.Position, body lines) Node {
		return &TextNode{Pos: pos, Lines: body}
	})

	rules.Define(codeBlock, func() c.Parser[lines] {
		return block(word(codeChar), g.textRegion, newline)
	})
	rules.Define(textBlock, func() c.Parser[lines] {
		return block(word(textChar), g.codeRegion, newline)
	})

	g.document = c.Left(rules.Ref(textBlock), c.EOF())

	return g, nil
}

func mustGrammar(d Delimiters) *Grammar {
	g, err := NewGrammar(d)
	if err != nil {
		panic(err)
	}

	return g
}

// Delimiters returns the delimiters the grammar recognizes.
func (g *Grammar) Delimiters() Delimiters {
	return g.delims
}

// Parse parses a whole document. The root TextNode starts at 1:1.
func (g *Grammar) Parse(src string) (*TextNode, error) {
	if err := checkEncoding(src); err != nil {
		return nil, err
	}

	res := g.document(c.NewStream(src))
	if res.Ok() {
		return &TextNode{Pos: c.StartPosition(), Lines: res.Value}, nil
	}

	return nil, g.diagnose(res.Stream, res.Err)
}

// checkEncoding reports the first byte that is not UTF-8.
func checkEncoding(src string) error {
	if utf8.ValidString(src) {
		return nil
	}

	for i, r := range src {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(src[i:]); size == 1 {
				pos := c.StartPosition().Advance(utf8.RuneCountInString(src[:i]), src)
				return fmt.Errorf("%w: %w at %s", ErrSyntax, ErrInvalidEncoding, pos)
			}
		}
	}

	return fmt.Errorf("%w: %w", ErrSyntax, ErrInvalidEncoding)
}

// word is one or more characters joined into a literal. It matches the empty
// string too, so an empty line is a single empty literal.
func word(char c.Parser[string]) c.Parser[Word] {
	return c.Map(c.Join(c.Many(char), ""), func(s string) Word {
		return Literal(s)
	})
}

// block is lines separated by newlines; each line interleaves words with
// nested regions of the opposite kind.
func block(w, nested c.Parser[Word], newline c.Parser[string]) c.Parser[lines] {
	return c.SepByDrop(c.SepBy(w, nested), newline)
}

// region records the position of the opening delimiter.
func region(open c.Parser[string], body c.Parser[lines], close c.Parser[string], build func(c.Position, lines) Node) c.Parser[Word] {
	return c.Then(c.GetPosition(), func(pos c.Position) c.Parser[Word] {
		return c.Map(c.Left(c.Right(open, body), close), func(body lines) Word {
			return Nested{Node: build(pos, body)}
		})
	})
}

// diagnose explains why the document stopped at rest.
func (g *Grammar) diagnose(rest c.Stream, cause error) error {
	if rest.HasPrefix(g.delims.CloseText) {
		return fmt.Errorf("%w: %w %q at %s", ErrSyntax, ErrUnexpectedDelimiter, g.delims.CloseText, rest.Position())
	}

	if err := g.explain(rest, false); err != nil {
		return fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	return fmt.Errorf("%w: %w", ErrSyntax, cause)
}

// explain re-runs the nested region that stopped a block at s and descends
// into it, returning the innermost committed failure. Blocks stop silently
// when a nested region fails, so this is where that failure is recovered.
func (g *Grammar) explain(s c.Stream, inCode bool) error {
	nested, open := g.codeRegion, g.delims.OpenCode
	if inCode {
		nested, open = g.textRegion, g.delims.OpenText
	}

	if !s.HasPrefix(open) {
		return nil
	}

	res := nested(s)
	if res.Ok() {
		return nil
	}

	if inner := g.explain(res.Stream, !inCode); inner != nil {
		return inner
	}

	return res.Err
}
