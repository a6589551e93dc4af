package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/snaptmpl"
	"github.com/shibukawa/snaptmpl/renderer"
	"github.com/shibukawa/snaptmpl/template"
)

// RenderCmd represents the render command
type RenderCmd struct {
	File           string   `arg:"" help:"Template file" type:"existingfile"`
	Values         []string `help:"Additional values files, applied after the configured ones" type:"existingfile"`
	Set            []string `help:"Set a string value (key=value)" short:"s"`
	Output         string   `short:"o" help:"Write to this file instead of stdout" type:"path"`
	ShowExpression bool     `help:"Print the compiled expression instead of rendering"`
}

// Run executes the render command
func (cmd *RenderCmd) Run(ctx *Context) error {
	config, values, err := loadProject(ctx)
	if err != nil {
		return err
	}

	for _, path := range cmd.Values {
		extra, err := snaptmpl.LoadValuesFile(path)
		if err != nil {
			return err
		}

		values.Merge(extra)
	}

	if err := applySetFlags(values, cmd.Set); err != nil {
		return err
	}

	src, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	if ctx.Verbose {
		color.Blue("Rendering %s with %d value(s)", cmd.File, len(values.Keys()))
	}

	r, err := compileTemplate(config.Delimiters, string(src), values.Keys())
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.File, err)
	}

	if cmd.ShowExpression {
		_, err = fmt.Fprintln(ctx.Out, r.Expression())
		return err
	}

	out, err := r.Render(values.Map())
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.File, err)
	}

	if cmd.Output == "" {
		_, err = fmt.Fprint(ctx.Out, out)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cmd.Output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(cmd.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !ctx.Quiet {
		color.Green("Rendered %s", cmd.Output)
	}

	return nil
}

func compileTemplate(delims template.Delimiters, src string, keys []string) (*renderer.Renderer, error) {
	return renderer.CompileString(src, keys, renderer.WithDelimiters(delims.WithDefaults()))
}

func applySetFlags(values *snaptmpl.Values, flags []string) error {
	for _, flag := range flags {
		key, value, ok := strings.Cut(flag, "=")
		if !ok || key == "" {
			return fmt.Errorf("%w: %q", ErrInvalidSetFlag, flag)
		}

		if err := renderer.ValidateKey(key); err != nil {
			return err
		}

		values.Set(key, value)
	}

	return nil
}
