package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mksite/internal/transform"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{}
	require.NoError(t, ApplyDefaults(cfg))
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty src", mutate: func(c *Config) { c.Dirs.Src = "" }, wantErr: "Src: cannot be blank"},
		{name: "negative jobs", mutate: func(c *Config) { c.Build.Jobs = -1 }, wantErr: "Jobs"},
		{
			name: "dotted extension",
			mutate: func(c *Config) {
				c.Transforms[".md"] = map[string]transform.Transform{"html": transform.NewSingle("cat")}
			},
			wantErr: "leading dot",
		},
		{
			name: "empty target",
			mutate: func(c *Config) {
				c.Transforms["md"] = map[string]transform.Transform{"": transform.NewSingle("cat")}
			},
			wantErr: "target extension",
		},
		{
			name: "blank command",
			mutate: func(c *Config) {
				c.Transforms["md"] = map[string]transform.Transform{"html": transform.NewChain("cat", " ")}
			},
			wantErr: "blank",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolve_KeepsAbsolutePaths(t *testing.T) {
	cfg := validConfig(t)
	cfg.Dirs.Out = "/srv/site/../www"
	cfg.Ignores.Transform = []string{"src/a.md"}
	require.NoError(t, cfg.Resolve("/work"))
	assert.Equal(t, "/srv/www", cfg.Dirs.Out)
	assert.Equal(t, "/work/src", cfg.Dirs.Src)
	assert.Equal(t, []string{"/work/src/a.md"}, cfg.Ignores.Transform)
}
