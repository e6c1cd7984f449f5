// Package settings holds the interpreter configuration, built from
// defaults, an optional YAML file and command line flags, in that order
package settings

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/navionguy/linebasic/object"
	"gopkg.in/yaml.v3"
)

// Config is everything that can be tuned
type Config struct {
	Listen     string `yaml:"listen"`      // server address, empty runs the REPL
	StorageDir string `yaml:"storage_dir"` // where SAVE/LOAD and OPEN files live
	Library    string `yaml:"library"`     // sqlite program library for the server
	Charset    string `yaml:"charset"`     // console character set, "" or "cp437"
	LogLevel   string `yaml:"log_level"`   // debug, info, warn or error
	Trace      bool   `yaml:"trace"`       // start with TRACE ON

	ZoneWidth int   `yaml:"zone_width"`
	MaxLines  int   `yaml:"max_lines"`
	MaxVars   int   `yaml:"max_vars"`
	MaxArrays int   `yaml:"max_arrays"`
	MaxDims   int   `yaml:"max_dims"`
	MaxStack  int   `yaml:"max_stack"`
	MaxFiles  int   `yaml:"max_files"`
	Seed      int64 `yaml:"seed"`
}

// Default gives the classic settings
func Default() Config {
	lim := object.DefaultLimits()
	return Config{
		StorageDir: ".",
		Library:    "library.db",
		LogLevel:   "info",
		ZoneWidth:  lim.ZoneWidth,
		MaxLines:   lim.MaxLines,
		MaxVars:    lim.MaxVars,
		MaxArrays:  lim.MaxArrays,
		MaxDims:    lim.MaxDims,
		MaxStack:   lim.MaxStack,
		MaxFiles:   lim.MaxFiles,
		Seed:       lim.Seed,
	}
}

// Parse builds the configuration from args, the flags win over
// anything in the -config file. What's left after the flags is returned.
func Parse(name string, args []string) (Config, []string, error) {
	cfg := Default()
	var file string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&file, "config", "", "YAML settings file")
	cfg.bind(fs)

	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}
	if len(file) == 0 {
		return cfg, fs.Args(), nil
	}

	if err := cfg.Load(file); err != nil {
		return cfg, nil, err
	}
	// flags again so they override the file
	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}
	return cfg, fs.Args(), nil
}

func (c *Config) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Listen, "listen", c.Listen, "listen address, e.g. :8080, runs the session server")
	fs.StringVar(&c.StorageDir, "dir", c.StorageDir, "directory for programs and data files")
	fs.StringVar(&c.Library, "library", c.Library, "sqlite program library used by the server")
	fs.StringVar(&c.Charset, "charset", c.Charset, "console character set (cp437)")
	fs.StringVar(&c.LogLevel, "loglevel", c.LogLevel, "server log level")
	fs.BoolVar(&c.Trace, "T", c.Trace, "trace each line as it runs")
	fs.IntVar(&c.ZoneWidth, "zone", c.ZoneWidth, "PRINT zone width")
	fs.IntVar(&c.MaxLines, "maxlines", c.MaxLines, "most program lines")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "RND seed")
}

// Load overlays the settings found in a YAML file
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("settings %s: %w", path, err)
	}
	return nil
}

// Limits turns the table sizes into session limits
func (c Config) Limits() object.Limits {
	return object.Limits{
		MaxLines:  c.MaxLines,
		MaxVars:   c.MaxVars,
		MaxArrays: c.MaxArrays,
		MaxDims:   c.MaxDims,
		MaxStack:  c.MaxStack,
		MaxFiles:  c.MaxFiles,
		ZoneWidth: c.ZoneWidth,
		Seed:      c.Seed,
	}
}

// Level maps LogLevel for slog, unknown names mean info
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
