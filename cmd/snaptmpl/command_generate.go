package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/shibukawa/snaptmpl/processor"
)

// GenerateCmd represents the generate command
type GenerateCmd struct {
	TemplateDir string `help:"Template directory (overrides template_dir)" type:"path"`
	ResultDir   string `help:"Result directory (overrides result_dir)" type:"path"`
	DryRun      bool   `help:"List the planned tasks without running them"`
}

// Run executes the generate command
func (g *GenerateCmd) Run(ctx *Context) error {
	config, values, err := loadProject(ctx)
	if err != nil {
		return err
	}

	env := processor.Env{
		TemplateDir: config.TemplateDir,
		ResultDir:   config.ResultDir,
		Delimiters:  config.Delimiters,
		Keys:        values.Keys(),
		Values:      values.Map(),
	}

	if g.TemplateDir != "" {
		env.TemplateDir = g.TemplateDir
	}

	if g.ResultDir != "" {
		env.ResultDir = g.ResultDir
	}

	if ctx.Verbose {
		color.Blue("Processing %s into %s", env.TemplateDir, env.ResultDir)
	}

	paths, err := processor.Walk(env.TemplateDir)
	if err != nil {
		return err
	}

	registry := processor.DefaultRegistry()

	tasks, err := registry.Plan(paths)
	if err != nil {
		return err
	}

	if g.DryRun {
		for _, task := range tasks {
			fmt.Fprintln(ctx.Out, task)
		}

		return nil
	}

	var done, failed int

	dispatcher := &processor.Dispatcher{
		Registry: registry,
		Env:      env,
		MaxTasks: config.Dispatch.MaxTasks,
		Reporter: func(e processor.Event) {
			if e.Err != nil {
				failed++

				if !ctx.Quiet {
					color.Red("✗ %s: %v", e.Task, e.Err)
				}

				return
			}

			done++

			if ctx.Verbose {
				color.Blue("✓ %s (%d follow-up)", e.Task, e.FollowUps)
			}
		},
	}

	err = dispatcher.Run(context.Background(), tasks)
	if err != nil {
		if failed > 0 {
			return fmt.Errorf("%w: %d of %d: %w", ErrGenerateFailed, failed, failed+done, err)
		}

		return err
	}

	if !ctx.Quiet {
		color.Green("Generated %d task(s) into %s", done, env.ResultDir)
	}

	return nil
}
