// Package processor turns a template directory into a result directory.
//
// Every file name is parsed with package filename; its prefix selects the
// processors that handle it. Processors run as tasks and may return
// follow-up tasks, which the Dispatcher runs until the queue is empty.
package processor

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/shibukawa/snaptmpl/filename"
	"github.com/shibukawa/snaptmpl/template"
)

// Env is the project state shared by all tasks.
type Env struct {
	TemplateDir string
	ResultDir   string
	Delimiters  template.Delimiters
	// Keys are the config keys in declaration order.
	Keys   []string
	Values map[string]any
	// Output replaces the output file name derived from the file name.
	Output string
}

// withTask layers the task overrides on top of the env.
func (e Env) withTask(t Task) Env {
	values := make(map[string]any, len(e.Values)+len(t.Values))
	maps.Copy(values, e.Values)

	keys := slices.Clone(e.Keys)
	for _, key := range slices.Sorted(maps.Keys(t.Values)) {
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}

		values[key] = t.Values[key]
	}

	e.Keys = keys
	e.Values = values
	e.Output = t.Output

	return e
}

// Processor handles files whose name prefix equals Prefix.
type Processor interface {
	Name() string
	Prefix() string
	// Priority orders processors matching the same file; lower runs first.
	Priority() int
	Run(ctx context.Context, file filename.FilePresent, env Env) ([]Task, error)
}

// Task is one processor run over one file.
type Task struct {
	ID        uuid.UUID
	File      filename.FilePresent
	Processor string
	// Values are extra config values visible to this task only.
	Values map[string]any
	// Output overrides the output file name.
	Output string
}

// NewTask creates a task with a fresh ID.
func NewTask(file filename.FilePresent, processor string) Task {
	return Task{
		ID:        uuid.New(),
		File:      file,
		Processor: processor,
	}
}

func (t Task) String() string {
	return fmt.Sprintf("%s(%s)", t.Processor, t.File.Path)
}

// Registry holds the known processors.
type Registry struct {
	processors []Processor
}

// NewRegistry returns a registry with the given processors.
func NewRegistry(processors ...Processor) (*Registry, error) {
	r := &Registry{}
	for _, p := range processors {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// DefaultRegistry has the render, copy, rpt and md processors.
func DefaultRegistry() *Registry {
	return &Registry{processors: []Processor{
		Render{},
		Copy{},
		Repeat{},
		Markdown{},
	}}
}

// Register adds p. Names must be unique.
func (r *Registry) Register(p Processor) error {
	if _, ok := r.Lookup(p.Name()); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProcessor, p.Name())
	}

	r.processors = append(r.processors, p)

	return nil
}

// Lookup finds a processor by name.
func (r *Registry) Lookup(name string) (Processor, bool) {
	for _, p := range r.processors {
		if p.Name() == name {
			return p, true
		}
	}

	return nil, false
}

// Match returns the processors whose prefix equals the file prefix, by
// priority and then name.
func (r *Registry) Match(file filename.FilePresent) []Processor {
	var matched []Processor

	for _, p := range r.processors {
		if p.Prefix() == file.Prefix {
			matched = append(matched, p)
		}
	}

	slices.SortStableFunc(matched, func(a, b Processor) int {
		if a.Priority() != b.Priority() {
			return a.Priority() - b.Priority()
		}

		return strings.Compare(a.Name(), b.Name())
	})

	return matched
}

// Plan parses every path and creates one task per matching processor.
// Files no processor matches are skipped.
func (r *Registry) Plan(paths []string) ([]Task, error) {
	var tasks []Task

	for _, path := range paths {
		file, err := filename.Parse(path)
		if err != nil {
			return nil, err
		}

		for _, p := range r.Match(file) {
			tasks = append(tasks, NewTask(file, p.Name()))
		}
	}

	return tasks, nil
}

func (e Env) sourcePath(file filename.FilePresent) string {
	return filepath.Join(e.TemplateDir, filepath.FromSlash(file.Path))
}

func (e Env) outputPath(file filename.FilePresent, name string) string {
	if e.Output != "" {
		name = e.Output
	}

	return filepath.Join(e.ResultDir, filepath.FromSlash(file.Dir()), name)
}
