package main

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	errgo "gopkg.in/errgo.v1"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/infix"
)

// config is the tool configuration, read from an optional YAML file and then
// overridden by flags.
type config struct {
	// Strict rejects expressions with malformed tokens.
	Strict bool `yaml:"strict"`
	// MaxTokens limits expression length. 0 means no limit.
	MaxTokens int `yaml:"max_tokens"`
	// Format is the fmt verb for printing results.
	Format string `yaml:"format"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
	// Listen is the address for the serve command.
	Listen string `yaml:"listen"`
}

func defaultConfig() config {
	return config{
		Format:   "%g",
		LogLevel: "info",
		Listen:   "localhost:8080",
	}
}

// loadConfig reads the configuration file at path over the defaults. An empty
// path gives the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, errgo.Notef(err, "cannot read configuration")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return config{}, errgo.Notef(err, "cannot parse configuration %q", path)
	}
	if err := cfg.validate(); err != nil {
		return config{}, errgo.Notef(err, "invalid configuration %q", path)
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.MaxTokens < 0 {
		return errgo.Newf("max_tokens must not be negative, got %d", c.MaxTokens)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errgo.Mask(err)
	}
	if c.Format == "" {
		return errgo.New("format must not be empty")
	}
	return nil
}

// options converts the configuration to evaluator options.
func (c config) options(log zerolog.Logger) []infix.Option {
	opts := []infix.Option{infix.MaxTokens(c.MaxTokens), infix.Logger(log)}
	if c.Strict {
		opts = append(opts, infix.Strict())
	}
	return opts
}

// newLogger creates a console logger on w at the configured level.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), errgo.Notef(err, "bad log level")
	}
	out := zerolog.ConsoleWriter{Out: w}
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl), nil
}
