package config

import (
	"git.home.luguber.info/inful/mksite/internal/transform"
)

// FileName is the default configuration file name.
const FileName = "mksite.toml"

// Config is the configuration of one mksite project.
type Config struct {
	Dirs    Dirs           `toml:"dirs" yaml:"dirs"`
	Ignores Ignores        `toml:"ignores" yaml:"ignores"`
	Build   BuildConfig    `toml:"build" yaml:"build"`
	Data    map[string]any `toml:"data" yaml:"data"`
	// Transforms maps a source extension to target extensions and the
	// transform producing each one. Extensions are written without the dot.
	Transforms map[string]map[string]transform.Transform `toml:"transforms" yaml:"transforms"`

	// path is the absolute path of the loaded file (empty for in-memory configs).
	path string
}

// Dirs holds the four directory roots of a project.
type Dirs struct {
	Src    string `toml:"src" yaml:"src"`       // template sources
	Out    string `toml:"out" yaml:"out"`       // generated output
	Static string `toml:"static" yaml:"static"` // copied verbatim into out
	Layout string `toml:"layout" yaml:"layout"` // layout templates
}

// Ignores lists paths skipped by individual pipeline steps.
//
// Template and Transform entries name source pages (src/index.html), Layout
// entries name output pages (out/index.html).
type Ignores struct {
	Template  []string `toml:"template" yaml:"template"`
	Transform []string `toml:"transform" yaml:"transform"`
	Layout    []string `toml:"layout" yaml:"layout"`
}

// BuildConfig holds pipeline options.
type BuildConfig struct {
	Jobs        int    `toml:"jobs" yaml:"jobs"`                 // parallel transforms; 0 or 1 runs sequentially
	StrictExit  bool   `toml:"strict_exit" yaml:"strict_exit"`   // non-zero transform exit fails the build
	MetricsFile string `toml:"metrics_file" yaml:"metrics_file"` // Prometheus textfile, empty disables
	History     string `toml:"history" yaml:"history"`           // SQLite build history, empty disables
}

// Path returns the absolute path the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// TransformsFor returns the configured target extensions for a source
// extension (without dot).
func (c *Config) TransformsFor(ext string) map[string]transform.Transform {
	return c.Transforms[ext]
}

// Parallelism returns the effective number of concurrent transforms.
func (c *Config) Parallelism() int {
	if c.Build.Jobs < 1 {
		return 1
	}
	return c.Build.Jobs
}
