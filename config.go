package snaptmpl

import (
	"fmt"
	"math"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/shibukawa/snaptmpl/template"
)

// DefaultConfigFile is read when no --config flag is given.
const DefaultConfigFile = "snaptmpl.yaml"

const (
	defaultTemplateDir = "./templates"
	defaultResultDir   = "./result"
	defaultMaxTasks    = 10000
)

// Config represents the snaptmpl.yaml project configuration
type Config struct {
	TemplateDir string              `yaml:"template_dir"`
	ResultDir   string              `yaml:"result_dir"`
	Delimiters  template.Delimiters `yaml:"delimiters"`
	// Values are inline config values. They override values_files.
	Values      yaml.MapSlice  `yaml:"values"`
	ValuesFiles []string       `yaml:"values_files"`
	Dispatch    DispatchConfig `yaml:"dispatch"`
}

// DispatchConfig represents task queue settings
type DispatchConfig struct {
	// MaxTasks stops runaway follow-up tasks. 0 means unlimited.
	MaxTasks int `yaml:"max_tasks"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses snaptmpl.yaml content. Unknown fields are errors.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	expandConfigEnvVars(&config)

	return &config, nil
}

func validateConfig(config *Config) error {
	if err := config.Delimiters.Validate(); err != nil {
		return fmt.Errorf("%w: delimiters: %w", ErrConfigValidation, err)
	}

	if config.Dispatch.MaxTasks < 0 {
		return fmt.Errorf("%w: dispatch.max_tasks must be non-negative, got %d", ErrConfigValidation, config.Dispatch.MaxTasks)
	}

	for _, item := range config.Values {
		key, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("%w: values: key %v is not a string", ErrConfigValidation, item.Key)
		}

		if err := validateValueKey(key); err != nil {
			return fmt.Errorf("%w: values: %w", ErrConfigValidation, err)
		}
	}

	return nil
}

func getDefaultConfig() *Config {
	return &Config{
		TemplateDir: defaultTemplateDir,
		ResultDir:   defaultResultDir,
		Delimiters:  template.DefaultDelimiters,
		Dispatch: DispatchConfig{
			MaxTasks: defaultMaxTasks,
		},
	}
}

func applyDefaults(config *Config) {
	if config.TemplateDir == "" {
		config.TemplateDir = defaultTemplateDir
	}

	if config.ResultDir == "" {
		config.ResultDir = defaultResultDir
	}

	config.Delimiters = config.Delimiters.WithDefaults()

	if config.Dispatch.MaxTasks == 0 {
		config.Dispatch.MaxTasks = defaultMaxTasks
	}
}

func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.TemplateDir = expandEnvVars(config.TemplateDir)
	config.ResultDir = expandEnvVars(config.ResultDir)

	for i, file := range config.ValuesFiles {
		config.ValuesFiles[i] = expandEnvVars(file)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// inlineValue converts a value decoded from the inline values section to the
// shapes values files produce: unsigned integers become int when they fit and
// nested maps become map[string]any.
func inlineValue(v any) any {
	switch v := v.(type) {
	case uint64:
		if v <= math.MaxInt {
			return int(v)
		}

		return v
	case int64:
		return int(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = inlineValue(item)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = inlineValue(item)
		}

		return out
	case yaml.MapSlice:
		out := make(map[string]any, len(v))
		for _, item := range v {
			out[fmt.Sprint(item.Key)] = inlineValue(item.Value)
		}

		return out
	default:
		return v
	}
}
