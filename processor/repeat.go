package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/google/uuid"

	"github.com/shibukawa/snaptmpl/filename"
)

// Repeat expands "<base>__rpt__<key>[,<field>]__<postfix>" into one render
// task per element of the list-valued config key. Each task sees the element
// as item and its position as index, and writes <base><name><postfix>, where
// name is the element itself or, when field is given, item[field].
type Repeat struct{}

func (Repeat) Name() string   { return "rpt" }
func (Repeat) Prefix() string { return "rpt" }
func (Repeat) Priority() int  { return 2 }

func (Repeat) Run(ctx context.Context, file filename.FilePresent, env Env) ([]Task, error) {
	key := file.Arg(0)
	if key == "" {
		return nil, fmt.Errorf("%w: %s needs the name of a list value", ErrMissingArgument, file.FileNameRaw)
	}

	value, ok := env.Values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotList, key)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %s is %T", ErrNotList, key, value)
	}

	field := file.Arg(1)
	tasks := make([]Task, 0, rv.Len())

	// Reverse order so the LIFO queue renders the first element first.
	for i := rv.Len() - 1; i >= 0; i-- {
		item := rv.Index(i).Interface()

		name := file.Base + itemName(item, field) + file.Postfix
		if !filepath.IsLocal(name) {
			return nil, fmt.Errorf("%w: item %d of %s gives %q", ErrUnsafeOutput, i, key, name)
		}

		tasks = append(tasks, Task{
			ID:        uuid.New(),
			File:      file,
			Processor: Render{}.Name(),
			Values:    map[string]any{"item": item, "index": i},
			Output:    name,
		})
	}

	return tasks, nil
}

func itemName(item any, field string) string {
	if field != "" {
		if m, ok := item.(map[string]any); ok {
			item = m[field]
		}
	}

	if s, ok := item.(string); ok {
		return s
	}

	return fmt.Sprint(item)
}
