package snaptmpl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/snaptmpl/renderer"
	"github.com/shibukawa/snaptmpl/testhelper"
)

func TestParseValues_KeepsOrder(t *testing.T) {
	values, err := ParseValues([]byte(testhelper.TrimIndent(t, `
		zebra: 1
		apple: two
		mango:
		    - x
		    - y
		nested:
		    key: value
	`)))
	assert.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango", "nested"}, values.Keys())

	v, ok := values.Get("mango")
	assert.True(t, ok)
	assert.Equal(t, []any{"x", "y"}, v.([]any))

	v, _ = values.Get("nested")
	assert.Equal(t, map[string]any{"key": "value"}, v.(map[string]any))
}

func TestParseValues_Empty(t *testing.T) {
	values, err := ParseValues(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(values.Keys()))
}

func TestParseValues_Errors(t *testing.T) {
	_, err := ParseValues([]byte("- a\n- b\n"))
	assert.IsError(t, err, ErrExpectedMappingNode)

	_, err = ParseValues([]byte("not-valid: 1\n"))
	assert.IsError(t, err, ErrInvalidValueKey)

	_, err = ParseValues([]byte("in: 1\n"))
	assert.IsError(t, err, ErrInvalidValueKey)
}

func TestValues_Merge(t *testing.T) {
	base := NewValues()
	base.Set("a", 1)
	base.Set("b", 2)

	other := NewValues()
	other.Set("c", 3)
	other.Set("a", 10)

	base.Merge(other)
	assert.Equal(t, []string{"a", "b", "c"}, base.Keys())
	assert.Equal(t, map[string]any{"a": 10, "b": 2, "c": 3}, base.Map())
}

func TestConfig_LoadValues(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	assert.NoError(t, os.WriteFile(first, []byte("site: demo\nitems: [a]\n"), 0o644))
	assert.NoError(t, os.WriteFile(second, []byte("items: [b, c]\nauthor: me\n"), 0o644))

	config, err := ParseConfig([]byte("values:\n  site: inline\n  extra: true\n"))
	assert.NoError(t, err)

	config.ValuesFiles = []string{first, second}

	values, err := config.LoadValues()
	assert.NoError(t, err)
	assert.Equal(t, []string{"site", "items", "author", "extra"}, values.Keys())

	site, _ := values.Get("site")
	assert.Equal(t, "inline", site.(string))

	items, _ := values.Get("items")
	assert.Equal(t, []any{"b", "c"}, items.([]any))
}

func TestConfig_LoadValuesInlineNumbers(t *testing.T) {
	config, err := ParseConfig([]byte(testhelper.TrimIndent(t, `
		values:
		    count: 3
		    offset: -2
		    sizes: [1, 2]
		    page:
		        limit: 10
	`)))
	assert.NoError(t, err)

	values, err := config.LoadValues()
	assert.NoError(t, err)

	r, err := renderer.CompileString("{% count + 1 %} {% offset * count %} {% sizes[1] + page.limit %}", values.Keys())
	assert.NoError(t, err)

	out, err := r.Render(values.Map())
	assert.NoError(t, err)
	assert.Equal(t, "4 -6 12", out)

	fromFile, err := ParseValues([]byte("count: 3\n"))
	assert.NoError(t, err)

	inline, _ := values.Get("count")
	file, _ := fromFile.Get("count")
	assert.Equal(t, file, inline)
}

func TestLoadValuesFile_Missing(t *testing.T) {
	_, err := LoadValuesFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
