package site

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyStatic(t *testing.T) {
	p := newProject(t)
	p.write(t, "static/css/site.css", "new")
	p.write(t, "static/favicon.ico", "ico")
	p.write(t, "out/css/site.css", "old")
	require.NoError(t, os.Chmod(p.path("static/favicon.ico"), 0o640))

	n, err := CopyStatic(context.Background(), p.cfg.Dirs.Static, p.cfg.Dirs.Out, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "new", p.read(t, "out/css/site.css"))

	info, err := os.Stat(p.path("out/favicon.ico"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestCopyStatic_Missing(t *testing.T) {
	p := newProject(t)
	n, err := CopyStatic(context.Background(), p.cfg.Dirs.Static, p.cfg.Dirs.Out, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoDirExists(t, p.cfg.Dirs.Out)
}

func TestCopyStatic_ReadOnlyAssetRebuilt(t *testing.T) {
	p := newProject(t)
	p.write(t, "static/robots.txt", "User-agent: *")
	require.NoError(t, os.Chmod(p.path("static/robots.txt"), 0o444))

	for range 2 {
		n, err := CopyStatic(context.Background(), p.cfg.Dirs.Static, p.cfg.Dirs.Out, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}
	assert.Equal(t, "User-agent: *", p.read(t, "out/robots.txt"))
}
