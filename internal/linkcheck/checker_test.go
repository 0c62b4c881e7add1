package linkcheck

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSite(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	writeSite(t, root, map[string]string{
		"index.html": `<a href="/about/">a</a> <a href="blog/post">b</a> <a href="https://example.com">c</a>
<img src="/img/missing.png"> <a href="#top">t</a> <a href="docs/guide.html#intro">g</a>`,
		"about/index.html":  `<a href="../index.html">home</a> <a href="team.html">team</a>`,
		"blog/post.html":    `<link href="/css/site.css" rel="stylesheet"><a href="my%20file.txt">f</a>`,
		"blog/my file.txt":  "x",
		"css/site.css":      "body{}",
		"docs/guide.html":   `ok`,
		"assets/readme.txt": `<a href="/nowhere">not html, not checked</a>`,
	})

	res, err := Check(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Pages)
	assert.Equal(t, 8, res.Links)
	assert.False(t, res.OK())

	require.Len(t, res.Broken, 2)
	assert.Equal(t, filepath.Join(root, "about", "index.html"), res.Broken[0].Page)
	assert.Equal(t, "team.html", res.Broken[0].Link.URL)
	assert.Equal(t, filepath.Join(root, "about", "team.html"), res.Broken[0].Target)
	assert.Equal(t, filepath.Join(root, "index.html"), res.Broken[1].Page)
	assert.Equal(t, "/img/missing.png", res.Broken[1].Link.URL)
}

func TestCheck_CleanSite(t *testing.T) {
	root := t.TempDir()
	writeSite(t, root, map[string]string{
		"index.html": `<a href="page.html">p</a>`,
		"page.html":  `<a href="/">home</a>`,
	})
	res, err := Check(context.Background(), root)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 2, res.Links)
}

func TestCheck_MissingOut(t *testing.T) {
	_, err := Check(context.Background(), filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
}
