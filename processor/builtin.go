package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shibukawa/snaptmpl/filename"
	"github.com/shibukawa/snaptmpl/renderer"
)

// Render renders files without a prefix as templates.
type Render struct{}

func (Render) Name() string   { return "render" }
func (Render) Prefix() string { return "" }
func (Render) Priority() int  { return 10 }

func (Render) Run(ctx context.Context, file filename.FilePresent, env Env) ([]Task, error) {
	out, err := renderFile(ctx, file, env)
	if err != nil {
		return nil, err
	}

	return nil, writeOutput(env.outputPath(file, file.OutputName()), []byte(out))
}

// Copy copies "<base>__copy__..." files verbatim.
type Copy struct{}

func (Copy) Name() string   { return "copy" }
func (Copy) Prefix() string { return "copy" }
func (Copy) Priority() int  { return 10 }

func (Copy) Run(ctx context.Context, file filename.FilePresent, env Env) ([]Task, error) {
	data, err := os.ReadFile(env.sourcePath(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Path, err)
	}

	return nil, writeOutput(env.outputPath(file, file.OutputName()), data)
}

func renderFile(ctx context.Context, file filename.FilePresent, env Env) (string, error) {
	src, err := os.ReadFile(env.sourcePath(file))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file.Path, err)
	}

	r, err := renderer.CompileString(string(src), env.Keys, renderer.WithDelimiters(env.Delimiters.WithDefaults()))
	if err != nil {
		return "", fmt.Errorf("%s: %w", file.Path, err)
	}

	return r.RenderContext(ctx, env.Values)
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
