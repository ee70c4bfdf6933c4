package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/wetigu/ai-playground/internal/errors"
	"github.com/wetigu/ai-playground/pkg/api"
)

const (
	// DefaultEnvFile is the dotenv file read from the working directory.
	DefaultEnvFile = ".env"

	// DefaultOutput is the default CLI output format.
	DefaultOutput = "table"
)

// Output formats accepted by the CLI.
var OutputFormats = []string{"table", "json", "yaml"}

type (
	// Config is the complete storefront configuration.
	Config struct {
		API    api.Config `yaml:"api"`
		Log    Log        `yaml:"log"`
		Output string     `yaml:"output" env:"STOREFRONT_OUTPUT" env-default:"table" env-description:"CLI output format: table, json or yaml"`

		// path is the file the config was read from, if any.
		path string
	}

	// Log configures the process logger.
	Log struct {
		Level  string `yaml:"level" env:"STOREFRONT_LOG_LEVEL" env-default:"warn" env-description:"Log level: debug, info, warn or error"`
		Format string `yaml:"format" env:"STOREFRONT_LOG_FORMAT" env-default:"text" env-description:"Log format: text or json"`
	}
)

// Load reads the YAML file at path, if path is non-empty, then the
// environment. DefaultEnvFile is preloaded into the environment when it
// exists.
func Load(path string) (*Config, error) {
	return LoadWithEnvFile(path, DefaultEnvFile)
}

// LoadWithEnvFile is like Load but reads envFile instead of DefaultEnvFile.
// An empty envFile skips dotenv loading.
func LoadWithEnvFile(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New("S003").
				WithDetail(fmt.Sprintf("Could not parse %s.", envFile)).
				Wrap(err)
		}
	}

	cfg := &Config{path: path}
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, errors.New("S001").
				WithDetail(fmt.Sprintf("Could not load %s.", path)).
				Wrap(err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errors.New("S001").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the configuration was read from, or "".
func (c *Config) Path() string {
	return c.path
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return invalid(err)
	}
	if _, err := c.Log.level(); err != nil {
		return invalid(err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return invalid(fmt.Errorf("log format must be text or json, got %q", c.Log.Format))
	}
	if !ValidOutput(c.Output) {
		return errors.New("S140").
			WithDetail(fmt.Sprintf("Output format %q is not supported.", c.Output))
	}
	return nil
}

func invalid(err error) error {
	return errors.New("S002").WithDetail(err.Error()).Wrap(err)
}

// ValidOutput reports whether format is a supported output format.
func ValidOutput(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// Logger builds a logger writing to w according to the log settings.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Log.level()
	if err != nil {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(c.Log.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Usage returns a description of every environment variable.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return err.Error()
	}
	return text
}
