package processor

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/shibukawa/snaptmpl/filename"
)

var (
	markdownOnce   sync.Once
	markdownEngine goldmark.Markdown
	htmlPolicy     *bluemonday.Policy
)

func markdown() (goldmark.Markdown, *bluemonday.Policy) {
	markdownOnce.Do(func() {
		markdownEngine = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		)
		htmlPolicy = bluemonday.UGCPolicy()
	})

	return markdownEngine, htmlPolicy
}

// Markdown renders "<base>__md__..." templates and converts the Markdown
// result to sanitized HTML. Without a postfix the output gets ".html".
type Markdown struct{}

func (Markdown) Name() string   { return "md" }
func (Markdown) Prefix() string { return "md" }
func (Markdown) Priority() int  { return 10 }

func (Markdown) Run(ctx context.Context, file filename.FilePresent, env Env) ([]Task, error) {
	src, err := renderFile(ctx, file, env)
	if err != nil {
		return nil, err
	}

	html, err := ToHTML(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}

	name := file.OutputName()
	if file.Postfix == "" {
		name = file.Base + ".html"
	}

	return nil, writeOutput(env.outputPath(file, name), html)
}

// ToHTML converts GitHub flavored Markdown to HTML safe for embedding.
func ToHTML(src string) ([]byte, error) {
	md, policy := markdown()

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	return policy.SanitizeBytes(buf.Bytes()), nil
}
