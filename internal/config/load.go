package config

import (
	stdErrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/logfields"
)

// envFiles are loaded in order before the configuration is read. Variables
// already set in the process environment are not overridden.
var envFiles = []string{".env", ".env.local"}

// Load reads, expands, decodes, defaults, resolves and validates the
// configuration at path. TOML is used unless the extension is .yaml or .yml.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided config location.
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return nil, errors.ConfigError("configuration file not found").
				WithCause(err).
				WithContext("file", path).
				Build()
		}
		return nil, errors.FileSystemError("cannot read configuration file").
			WithCause(err).
			WithContext("file", path).
			Build()
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	if abs, absErr := filepath.Abs(path); absErr == nil {
		cfg.path = abs
	}

	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Resolve(""); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse expands ${VAR} references in data and decodes it. name selects the
// decoder by extension. Defaults are not applied.
func Parse(name string, data []byte) (*Config, error) {
	expanded := expandEnv(string(data))

	var cfg Config
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.ConfigError("cannot decode YAML configuration").
				WithCause(err).
				WithContext("file", name).
				Build()
		}
	default:
		md, err := toml.Decode(expanded, &cfg)
		if err != nil {
			return nil, errors.ConfigError("cannot decode TOML configuration").
				WithCause(err).
				WithContext("file", name).
				Build()
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			slog.Warn("Unknown configuration keys ignored",
				logfields.Path(name),
				slog.String("keys", strings.Join(keys, ", ")))
		}
	}
	return &cfg, nil
}

var envRef = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}`)

// expandEnv replaces ${NAME} references with the value of the environment
// variable NAME. Any other $ is kept, so shell commands such as
// awk '{print $1}' reach the transform runner unchanged.
func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

// Exists reports whether a configuration file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func loadEnvFiles() {
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil {
			if !stdErrors.Is(err, fs.ErrNotExist) {
				slog.Warn("Cannot load environment file", logfields.Path(name), logfields.Error(err))
			}
			continue
		}
		slog.Debug("Loaded environment file", logfields.Path(name))
	}
}
