package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

func TestSwapPrefix(t *testing.T) {
	tests := []struct {
		name string
		path string
		old  string
		new  string
		want string
	}{
		{"nested file", "/site/src/blog/post.md", "/site/src", "/site/out", "/site/out/blog/post.md"},
		{"top-level file", "/site/src/index.html", "/site/src", "/site/out", "/site/out/index.html"},
		{"trailing slash on root", "/site/src/a.txt", "/site/src/", "/site/layout", "/site/layout/a.txt"},
		{"root itself", "/site/src", "/site/src", "/site/out", "/site/out"},
		{"relative roots", "src/a/b.md", "src", "out", "out/a/b.md"},
		{"filesystem root", "/a/b", "/", "/x", "/x/a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SwapPrefix(filepath.FromSlash(tt.path), filepath.FromSlash(tt.old), filepath.FromSlash(tt.new))
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestSwapPrefix_NotUnderRoot(t *testing.T) {
	cases := [][2]string{
		{"/site/other/a.md", "/site/src"},
		{"/site/src2/a.md", "/site/src"},
		{"src", "src/sub"},
	}
	for _, c := range cases {
		_, err := SwapPrefix(filepath.FromSlash(c[0]), filepath.FromSlash(c[1]), "/out")
		require.Error(t, err, c[0])
		assert.True(t, errors.HasCategory(err, errors.CategoryPath))
		assert.Contains(t, err.Error(), "cannot strip prefix")
	}
}

func TestSwapPrefix_RoundTrip(t *testing.T) {
	a := filepath.FromSlash("/site/src")
	b := filepath.FromSlash("/tmp/build/out")
	paths := []string{
		"/site/src/index.html",
		"/site/src/blog/2024/post.md",
		"/site/src/no-ext",
		"/site/src/.hidden/file",
	}
	for _, p := range paths {
		p = filepath.FromSlash(p)
		swapped, err := SwapPrefix(p, a, b)
		require.NoError(t, err)
		back, err := SwapPrefix(swapped, b, a)
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("/site/out", "/site/out/a.html"))
	assert.True(t, Contains("/site/out", "/site/out"))
	assert.False(t, Contains("/site/out", "/site/output/a.html"))
}
