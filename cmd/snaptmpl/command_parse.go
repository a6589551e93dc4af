package main

import (
	"fmt"
	"os"

	"github.com/shibukawa/snaptmpl/template"
)

// ParseCmd represents the parse command
type ParseCmd struct {
	File string `arg:"" help:"Template file" type:"existingfile"`
}

// Run executes the parse command
func (cmd *ParseCmd) Run(ctx *Context) error {
	config, _, err := loadProject(ctx)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	grammar, err := template.NewGrammar(config.Delimiters.WithDefaults())
	if err != nil {
		return err
	}

	root, err := grammar.Parse(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.File, err)
	}

	dump, err := template.Dump(root)
	if err != nil {
		return fmt.Errorf("failed to dump parse tree: %w", err)
	}

	_, err = ctx.Out.Write(dump)

	return err
}
