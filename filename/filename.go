// Package filename derives a processing mode from a template file name.
//
// A file name is split on "__" into positional parts:
//
//	<base>__<prefix>__<args>__<postfix>
//
// Missing parts are empty and args is a comma separated list. Parts beyond
// the fourth are kept in FilePresent.Parts but otherwise ignored.
package filename

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	pc "github.com/shibukawa/parsercombinator"
)

// Separator splits the parts of a file name.
const Separator = "__"

// Sentinel errors
var (
	ErrEmptyPath       = errors.New("empty path")
	ErrInvalidFileName = errors.New("invalid file name")
)

// FilePresent is a template file and the parts of its name.
type FilePresent struct {
	// Path is slash separated and relative to the template directory.
	Path        string
	PathParts   []string
	FileNameRaw string
	Parts       []string

	Base    string
	Prefix  string
	Args    []string
	Postfix string
}

// Dir is the slash separated directory of Path ("." for top level files).
func (f FilePresent) Dir() string {
	return path.Dir(f.Path)
}

// Arg returns the i-th argument or "".
func (f FilePresent) Arg(i int) string {
	if i < 0 || i >= len(f.Args) {
		return ""
	}

	return f.Args[i]
}

// OutputName is Base followed by Postfix. Names without a separator are
// used as they are.
func (f FilePresent) OutputName() string {
	if len(f.Parts) < 2 {
		return f.FileNameRaw
	}

	return f.Base + f.Postfix
}

type segment struct {
	text string
	sep  bool
}

func segmentOf(sep bool) pc.Parser[segment] {
	return func(pctx *pc.ParseContext[segment], tokens []pc.Token[segment]) (int, []pc.Token[segment], error) {
		if len(tokens) > 0 && tokens[0].Val.sep == sep {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func tag(typeStr string, p ...pc.Parser[segment]) pc.Parser[segment] {
	return pc.Trans(pc.Seq(p...), func(pctx *pc.ParseContext[segment], src []pc.Token[segment]) ([]pc.Token[segment], error) {
		if len(src) > 0 {
			src[0].Type = typeStr
		}

		return src, nil
	})
}

var (
	part = segmentOf(false)
	sep  = segmentOf(true)

	fileName = pc.Seq(
		tag("base", part),
		pc.Optional(pc.Seq(
			sep, tag("prefix", part),
			pc.Optional(pc.Seq(
				sep, tag("args", part),
				pc.Optional(pc.Seq(
					sep, tag("postfix", part),
				)),
			)),
		)),
		pc.ZeroOrMore("rest", pc.Seq(sep, tag("rest", part))),
		pc.EOS[segment](),
	)
)

func tokenize(name string) []pc.Token[segment] {
	parts := strings.Split(name, Separator)
	tokens := make([]pc.Token[segment], 0, len(parts)*2-1)
	col := 1

	for i, p := range parts {
		if i > 0 {
			tokens = append(tokens, pc.Token[segment]{
				Type: "sep",
				Pos:  &pc.Pos{Line: 1, Col: col, Index: col - 1},
				Val:  segment{text: Separator, sep: true},
				Raw:  Separator,
			})
			col += len(Separator)
		}

		tokens = append(tokens, pc.Token[segment]{
			Type: "part",
			Pos:  &pc.Pos{Line: 1, Col: col, Index: col - 1},
			Val:  segment{text: p},
			Raw:  p,
		})
		col += len(p)
	}

	return tokens
}

// Parse splits p (an OS or slash separated relative path) into a FilePresent.
func Parse(p string) (FilePresent, error) {
	if p == "" {
		return FilePresent{}, ErrEmptyPath
	}

	slashed := filepath.ToSlash(p)
	pathParts := strings.Split(slashed, "/")
	raw := pathParts[len(pathParts)-1]

	if raw == "" {
		return FilePresent{}, fmt.Errorf("%w: %q has no file name", ErrInvalidFileName, p)
	}

	result := FilePresent{
		Path:        slashed,
		PathParts:   pathParts,
		FileNameRaw: raw,
		Parts:       strings.Split(raw, Separator),
	}

	pctx := pc.NewParseContext[segment]()

	_, matched, err := fileName(pctx, tokenize(raw))
	if err != nil {
		return FilePresent{}, fmt.Errorf("%w: %q: %w", ErrInvalidFileName, raw, err)
	}

	for _, token := range matched {
		switch token.Type {
		case "base":
			result.Base = token.Val.text
		case "prefix":
			result.Prefix = token.Val.text
		case "args":
			if token.Val.text != "" {
				result.Args = strings.Split(token.Val.text, ",")
			}
		case "postfix":
			result.Postfix = token.Val.text
		}
	}

	return result, nil
}
