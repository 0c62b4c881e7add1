package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/transform"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeConfig(t, dir, FileName, `
[dirs]
src = "content"

[ignores]
template = ["content/raw.bin"]
layout = ["out/index.html"]

[build]
jobs = 4

[data]
title = "Example"

[transforms.md]
html = "@markdown"
txt = ["rev", "tr a-z A-Z"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "content"), cfg.Dirs.Src)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.Dirs.Out)
	assert.Equal(t, filepath.Join(dir, "static"), cfg.Dirs.Static)
	assert.Equal(t, filepath.Join(dir, "layout"), cfg.Dirs.Layout)
	assert.Equal(t, []string{filepath.Join(dir, "content", "raw.bin")}, cfg.Ignores.Template)
	assert.Equal(t, []string{filepath.Join(dir, "out", "index.html")}, cfg.Ignores.Layout)
	assert.Equal(t, 4, cfg.Parallelism())
	assert.Equal(t, "Example", cfg.Data["title"])
	assert.Equal(t, transform.NewSingle("@markdown"), cfg.TransformsFor("md")["html"])
	assert.Equal(t, transform.NewChain("rev", "tr a-z A-Z"), cfg.TransformsFor("md")["txt"])
	assert.Equal(t, path, cfg.Path())
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeConfig(t, dir, "mksite.yaml", `
dirs:
  out: public
data:
  nested:
    key: value
transforms:
  md:
    html: "@markdown"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "public"), cfg.Dirs.Out)
	assert.Equal(t, map[string]any{"key": "value"}, cfg.Data["nested"])
	assert.Equal(t, transform.KindSingle, cfg.TransformsFor("md")["html"].Kind())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MKSITE_TEST_TITLE", "From env")
	path := writeConfig(t, dir, FileName, "[data]\ntitle = \"${MKSITE_TEST_TITLE}\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From env", cfg.Data["title"])
}

func TestLoad_KeepsShellDollarTokens(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MKSITE_TEST_SEP", ",")
	t.Setenv("HOME", "/home/site")
	path := writeConfig(t, dir, FileName, `
[data]
price = "$5"
home = "${HOME}"

[transforms.csv]
txt = "awk -F${MKSITE_TEST_SEP} '{print $1}'"
sh = ["sh -c 'echo $0 $@ $HOME'", "sed 's/$/;/'"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, transform.NewSingle("awk -F, '{print $1}'"), cfg.TransformsFor("csv")["txt"])
	assert.Equal(t, transform.NewChain("sh -c 'echo $0 $@ $HOME'", "sed 's/$/;/'"), cfg.TransformsFor("csv")["sh"])
	assert.Equal(t, "$5", cfg.Data["price"])
	assert.Equal(t, "/home/site", cfg.Data["home"])
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MKSITE_TEST_KEEP", "process")
	writeConfig(t, dir, ".env", "MKSITE_TEST_KEEP=dotenv\nMKSITE_TEST_NEW=dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("MKSITE_TEST_NEW") })
	path := writeConfig(t, dir, FileName, "[data]\nkeep = \"${MKSITE_TEST_KEEP}\"\nnew = \"${MKSITE_TEST_NEW}\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "process", cfg.Data["keep"])
	assert.Equal(t, "dotenv", cfg.Data["new"])
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeConfig(t, dir, FileName, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src"), cfg.Dirs.Src)
	assert.NotNil(t, cfg.Data)
	assert.NotNil(t, cfg.Transforms)
	assert.Equal(t, 1, cfg.Parallelism())
	assert.False(t, cfg.Build.StrictExit)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeConfig(t, dir, FileName, "[dirs\nsrc = ")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_EmptyChainRejected(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeConfig(t, dir, FileName, "[transforms.md]\nhtml = []\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, err.Error(), "transforms.md.html")
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Exists(filepath.Join(dir, FileName)))
	assert.False(t, Exists(dir))
	path := writeConfig(t, dir, FileName, "")
	assert.True(t, Exists(path))
}
