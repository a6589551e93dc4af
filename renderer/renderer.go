// Package renderer compiles a parsed template into a reusable Renderer.
//
// Code regions are CEL expressions. Config keys are the only free variables
// and every key is declared up front, so unknown names are reported at
// compile time with the template position of the offending region.
package renderer

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/shibukawa/snaptmpl/template"
)

const defaultInterruptCheckFrequency = 100

// Renderer is a compiled template. It is immutable and safe for concurrent use.
type Renderer struct {
	expr    string
	keys    []string
	program cel.Program
}

type options struct {
	delims         template.Delimiters
	interruptEvery uint
}

// Option configures Compile and CompileString.
type Option func(*options)

// WithDelimiters selects the grammar used by CompileString.
func WithDelimiters(d template.Delimiters) Option {
	return func(o *options) {
		o.delims = d
	}
}

// WithInterruptCheckFrequency sets how many comprehension iterations run
// between context cancellation checks.
func WithInterruptCheckFrequency(n uint) Option {
	return func(o *options) {
		o.interruptEvery = n
	}
}

func newOptions(opts []Option) options {
	o := options{
		delims:         template.DefaultDelimiters,
		interruptEvery: defaultInterruptCheckFrequency,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Compile assembles the tree into one expression with a variable per key.
// Keys must be unique CEL identifiers.
func Compile(root *template.TextNode, keys []string, opts ...Option) (*Renderer, error) {
	o := newOptions(opts)

	if err := validateKeys(keys); err != nil {
		return nil, err
	}

	var b builder
	b.text(root)

	env, err := environment(keys)
	if err != nil {
		return nil, err
	}

	expr := b.String()

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, b.codeErrors(iss, root)
	}

	program, err := env.Program(ast, cel.InterruptCheckFrequency(o.interruptEvery))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}

	return &Renderer{
		expr:    expr,
		keys:    slices.Clone(keys),
		program: program,
	}, nil
}

// CompileString parses src and compiles it.
func CompileString(src string, keys []string, opts ...Option) (*Renderer, error) {
	o := newOptions(opts)

	grammar, err := template.NewGrammar(o.delims)
	if err != nil {
		return nil, err
	}

	root, err := grammar.Parse(src)
	if err != nil {
		return nil, err
	}

	return Compile(root, keys, opts...)
}

// Expression returns the assembled expression source.
func (r *Renderer) Expression() string {
	return r.expr
}

// Keys returns the declared config keys in order.
func (r *Renderer) Keys() []string {
	return slices.Clone(r.keys)
}

// Render evaluates the template. Every declared key must be present in values;
// extra entries are ignored.
func (r *Renderer) Render(values map[string]any) (string, error) {
	return r.RenderContext(context.Background(), values)
}

// RenderContext is Render with cancellation. Long comprehensions check ctx
// periodically.
func (r *Renderer) RenderContext(ctx context.Context, values map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	vars := make(map[string]any, len(r.keys))

	for _, key := range r.keys {
		v, ok := values[key]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingValue, key)
		}

		vars[key] = v
	}

	out, _, err := r.program.ContextEval(ctx, vars)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %w", ErrEvaluation, ctxErr)
		}

		return "", fmt.Errorf("%w: %w", ErrEvaluation, err)
	}

	s, ok := out.(types.String)
	if !ok {
		return "", fmt.Errorf("%w: got %s", ErrUnexpectedResult, out.Type().TypeName())
	}

	return string(s), nil
}
