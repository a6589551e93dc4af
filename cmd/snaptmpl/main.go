package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/shibukawa/snaptmpl"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	// Out receives command results such as rendered text.
	Out io.Writer
}

// CLI represents the command-line interface
var CLI struct {
	Config   string      `help:"Configuration file path" default:"snaptmpl.yaml"`
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Quiet    bool        `help:"Suppress output" short:"q"`
	Render   RenderCmd   `cmd:"" help:"Render one template file"`
	Parse    ParseCmd    `cmd:"" help:"Print the parse tree of a template file"`
	Generate GenerateCmd `cmd:"" help:"Process the template directory into the result directory"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("snaptmpl v0.1.0")
	return nil
}

func loadProject(ctx *Context) (*snaptmpl.Config, *snaptmpl.Values, error) {
	config, err := snaptmpl.LoadConfig(ctx.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	values, err := config.LoadValues()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load values: %w", err)
	}

	return config, values, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("snaptmpl"),
		kong.Description("Render text templates with embedded expressions"),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Out:     os.Stdout,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
