package processor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shibukawa/snaptmpl/filename"
)

func generate(t *testing.T, env Env, files map[string]string) {
	t.Helper()

	writeFiles(t, env.TemplateDir, files)

	paths, err := Walk(env.TemplateDir)
	require.NoError(t, err)

	registry := DefaultRegistry()

	tasks, err := registry.Plan(paths)
	require.NoError(t, err)

	d := &Dispatcher{Registry: registry, Env: env, MaxTasks: 100}
	require.NoError(t, d.Run(context.Background(), tasks))
}

func TestRenderProcessor(t *testing.T) {
	env := newEnv(t, map[string]any{"name": "World"}, "name")
	generate(t, env, map[string]string{
		"greeting.txt":     "Hello, {% name %}!",
		"sub/nested.txt":   "{% name.upperAscii() %}",
		"raw__copy____.js": "const x = '{% not rendered %}';",
	})

	assert.Equal(t, "Hello, World!", readFile(t, filepath.Join(env.ResultDir, "greeting.txt")))
	assert.Equal(t, "WORLD", readFile(t, filepath.Join(env.ResultDir, "sub", "nested.txt")))
	assert.Equal(t, "const x = '{% not rendered %}';", readFile(t, filepath.Join(env.ResultDir, "raw.js")))
}

func TestRepeatProcessor(t *testing.T) {
	env := newEnv(t, map[string]any{"items": []any{"apple", "banana"}, "shop": "fruits"}, "items", "shop")
	generate(t, env, map[string]string{
		"hello__rpt__items__.md": "{% index %}: {% item %} from {% shop %}",
	})

	assert.Equal(t, "0: apple from fruits", readFile(t, filepath.Join(env.ResultDir, "helloapple.md")))
	assert.Equal(t, "1: banana from fruits", readFile(t, filepath.Join(env.ResultDir, "hellobanana.md")))
}

func TestRepeatProcessorField(t *testing.T) {
	posts := []any{
		map[string]any{"slug": "first", "title": "First post"},
		map[string]any{"slug": "second", "title": "Second post"},
	}
	env := newEnv(t, map[string]any{"posts": posts}, "posts")
	generate(t, env, map[string]string{
		"posts/post-__rpt__posts,slug__.txt": "# {% item.title %}",
	})

	assert.Equal(t, "# First post", readFile(t, filepath.Join(env.ResultDir, "posts", "post-first.txt")))
	assert.Equal(t, "# Second post", readFile(t, filepath.Join(env.ResultDir, "posts", "post-second.txt")))
}

func TestRepeatProcessorErrors(t *testing.T) {
	env := newEnv(t, map[string]any{"name": "x"}, "name")
	writeFiles(t, env.TemplateDir, map[string]string{"a__rpt__name__.txt": "", "b__rpt": ""})

	registry := DefaultRegistry()

	tasks, err := registry.Plan([]string{"a__rpt__name__.txt", "b__rpt"})
	require.NoError(t, err)

	d := &Dispatcher{Registry: registry, Env: env}
	err = d.Run(context.Background(), tasks)
	require.ErrorIs(t, err, ErrNotList)
	require.ErrorIs(t, err, ErrMissingArgument)
}

func TestRepeatProcessorRejectsEscapingNames(t *testing.T) {
	file, err := filename.Parse("page__rpt__items__.txt")
	require.NoError(t, err)

	env := newEnv(t, map[string]any{"items": []any{"ok", "/../../../escape"}}, "items")

	tasks, err := Repeat{}.Run(context.Background(), file, env)
	require.ErrorIs(t, err, ErrUnsafeOutput)
	assert.Empty(t, tasks)

	env.Values["items"] = []any{"ok", "/sub/page"}

	tasks, err = Repeat{}.Run(context.Background(), file, env)
	require.NoError(t, err)
	assert.Equal(t, "page/sub/page.txt", tasks[0].Output)
}

func TestMarkdownProcessor(t *testing.T) {
	env := newEnv(t, map[string]any{"title": "Hello"}, "title")
	generate(t, env, map[string]string{
		"about__md": "# {% title %}\n\nSome **bold** text.\n\n<script>alert(1)</script>\n",
	})

	html := readFile(t, filepath.Join(env.ResultDir, "about.html"))
	assert.Contains(t, html, "Hello</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}

func TestRenderProcessorReportsTemplateErrors(t *testing.T) {
	env := newEnv(t, nil)
	writeFiles(t, env.TemplateDir, map[string]string{"broken.txt": "{% unclosed"})

	registry := DefaultRegistry()

	tasks, err := registry.Plan([]string{"broken.txt"})
	require.NoError(t, err)

	d := &Dispatcher{Registry: registry, Env: env}
	err = d.Run(context.Background(), tasks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.txt")
}

func TestToHTMLTable(t *testing.T) {
	html, err := ToHTML("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")
	assert.Contains(t, string(html), "<td>1</td>")
}
