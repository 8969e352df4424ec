package main

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the driver configuration. It can be loaded from a YAML file and is overridden by command-line flags.
type Config struct {
	Verbose bool     `yaml:"verbose"`
	Color   string   `yaml:"color"`
	Consult []string `yaml:"consult"`
	Prompt  string   `yaml:"prompt"`
}

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

func defaultConfig() Config {
	return Config{
		Color:  colorAuto,
		Prompt: "?- ",
	}
}

// loadConfig reads the YAML file at path on top of the default configuration. An empty path means no file.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config")
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}

	if err := cfg.validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Color {
	case colorAuto, colorAlways, colorNever:
	default:
		return errors.Errorf("unknown color mode: %q", c.Color)
	}
	if c.Prompt == "" {
		return errors.New("empty prompt")
	}
	return nil
}

// colorize decides whether the output to f gets colored.
func (c *Config) colorize(f *os.File) bool {
	switch c.Color {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// palette prints the results of top-level commands.
type palette struct {
	yes, no, fail func(format string, a ...interface{}) string
}

func newPalette(enabled bool) palette {
	yes := color.New(color.FgGreen)
	no := color.New(color.FgYellow)
	fail := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{yes, no, fail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return palette{
		yes:  yes.SprintfFunc(),
		no:   no.SprintfFunc(),
		fail: fail.SprintfFunc(),
	}
}
