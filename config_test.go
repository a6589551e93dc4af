package snaptmpl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/snaptmpl/template"
	"github.com/shibukawa/snaptmpl/testhelper"
)

func TestLoadConfig_DefaultWhenMissing(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, "./templates", config.TemplateDir)
	assert.Equal(t, "./result", config.ResultDir)
	assert.Equal(t, template.DefaultDelimiters, config.Delimiters)
	assert.Equal(t, 10000, config.Dispatch.MaxTasks)
}

func TestParseConfig(t *testing.T) {
	t.Setenv("SITE_ROOT", "/srv/site")

	config, err := ParseConfig([]byte(testhelper.TrimIndent(t, `
		template_dir: ${SITE_ROOT}/templates
		result_dir: $SITE_ROOT/public
		delimiters:
		    open_code: "<<"
		    close_code: ">>"
		values:
		    title: Hello
		    items: [a, b]
		values_files:
		    - ${SITE_ROOT}/values.yaml
		dispatch:
		    max_tasks: 50
	`)))
	assert.NoError(t, err)
	assert.Equal(t, "/srv/site/templates", config.TemplateDir)
	assert.Equal(t, "/srv/site/public", config.ResultDir)
	assert.Equal(t, template.Delimiters{OpenCode: "<<", CloseCode: ">>", OpenText: "%{", CloseText: "}%"}, config.Delimiters)
	assert.Equal(t, []string{"/srv/site/values.yaml"}, config.ValuesFiles)
	assert.Equal(t, 50, config.Dispatch.MaxTasks)
	assert.Equal(t, 2, len(config.Values))
	assert.Equal(t, "title", config.Values[0].Key.(string))
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		validation bool
	}{
		{
			name: "unknown field",
			yaml: "template_directory: x\n",
		},
		{
			name:       "duplicate delimiters",
			yaml:       "delimiters:\n  open_code: \"%{\"\n",
			validation: true,
		},
		{
			name:       "negative max tasks",
			yaml:       "dispatch:\n  max_tasks: -1\n",
			validation: true,
		},
		{
			name:       "value name is not an identifier",
			yaml:       "values:\n  my-title: x\n",
			validation: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)

			if tt.validation {
				assert.IsError(t, err, ErrConfigValidation)
			} else {
				assert.NotIsError(t, err, ErrConfigValidation)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SNAPTMPL_A", "alpha")

	assert.Equal(t, "alpha/alpha/", expandEnvVars("${SNAPTMPL_A}/$SNAPTMPL_A/$SNAPTMPL_UNSET"))
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snaptmpl.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("result_dir: out\n"), 0o644))

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "out", config.ResultDir)
	assert.Equal(t, "./templates", config.TemplateDir)
}
