package render

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mksite/internal/fsutil"
)

func TestRenderer_PageContext(t *testing.T) {
	root := t.TempDir()
	paths := writeFiles(t, root, map[string]string{
		"blog/post.md": "{{ .data.title }} {{ .page.path }} {{ .page.name }} {{ .page.ext }}",
	})

	r, err := NewRenderer(root, paths, fsutil.NewPathSet(), map[string]any{"title": "T"})
	require.NoError(t, err)

	page, err := r.Render(filepath.Join(root, "blog", "post.md"))
	require.NoError(t, err)
	assert.False(t, page.Raw)
	assert.Equal(t, "T blog/post.md post.md md", string(page.Content))
}

func TestRenderer_TemplateIgnoredPagesAreRaw(t *testing.T) {
	root := t.TempDir()
	paths := writeFiles(t, root, map[string]string{
		"raw.html":  "{{ this is not a template",
		"blob.bin":  "\xff\xfe\x00binary",
		"page.html": "ok",
	})
	ignored := fsutil.NewPathSet(filepath.Join(root, "raw.html"), filepath.Join(root, "blob.bin"))

	r, err := NewRenderer(root, paths, ignored, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"page.html"}, r.Namespace().Names())

	page, err := r.Render(filepath.Join(root, "raw.html"))
	require.NoError(t, err)
	assert.True(t, page.Raw)
	assert.Equal(t, "{{ this is not a template", string(page.Content))

	page, err = r.Render(filepath.Join(root, "blob.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\xff\xfe\x00binary"), page.Content)
}

func TestRenderer_IsPure(t *testing.T) {
	root := t.TempDir()
	paths := writeFiles(t, root, map[string]string{"a.txt": `{{ range $k, $v := .data }}{{ $k }}={{ $v }};{{ end }}`})
	r, err := NewRenderer(root, paths, nil, map[string]any{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)

	first, err := r.Render(paths[0])
	require.NoError(t, err)
	second, err := r.Render(paths[0])
	require.NoError(t, err)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, "a=1;b=2;c=3;", string(first.Content))
}

func TestLayoutContext(t *testing.T) {
	ctx := LayoutContext(map[string]any{"k": "v"}, "<p>x</p>", "blog/post.html", "/s/blog/post.md", "/o/blog/post.html", "blog/_.html")
	page := ctx["page"].(map[string]any)
	assert.Equal(t, "<p>x</p>", page["content"])
	assert.Equal(t, "blog/_.html", page["layout"])
	assert.Equal(t, map[string]any{"k": "v"}, ctx["data"])
}
