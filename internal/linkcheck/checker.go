package linkcheck

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/mksite/internal/fsutil"
)

// BrokenLink is an internal link whose target does not exist.
type BrokenLink struct {
	Page   string // HTML file containing the link
	Link   Link
	Target string // filesystem path that was looked up
}

// Result summarizes a check run.
type Result struct {
	Pages  int
	Links  int // internal links checked
	Broken []BrokenLink
}

// OK reports whether no broken links were found.
func (r *Result) OK() bool { return len(r.Broken) == 0 }

// Check scans every .html/.htm file under outRoot.
func Check(ctx context.Context, outRoot string) (*Result, error) {
	files, err := fsutil.WalkFiles(outRoot)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	res := &Result{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ext := strings.ToLower(filepath.Ext(f))
		if ext != ".html" && ext != ".htm" {
			continue
		}
		res.Pages++

		links, err := ExtractLinks(f)
		if err != nil {
			return nil, err
		}
		for _, l := range links {
			if !IsInternal(l.URL) {
				continue
			}
			res.Links++
			target, ok := resolve(outRoot, f, l.URL)
			if !ok {
				res.Broken = append(res.Broken, BrokenLink{Page: f, Link: l, Target: target})
			}
		}
	}
	return res, nil
}

// resolve maps a link to the file it names and reports whether it exists.
// Root-relative links resolve against outRoot, others against the page's
// directory. Directory links resolve to their index.html; extensionless
// links also match "<link>.html".
func resolve(outRoot, page, link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return link, false
	}
	p := u.Path
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}

	var target string
	if strings.HasPrefix(p, "/") {
		target = filepath.Join(outRoot, filepath.FromSlash(path.Clean(p)))
	} else {
		target = filepath.Join(filepath.Dir(page), filepath.FromSlash(p))
	}

	candidates := []string{target}
	if strings.HasSuffix(p, "/") {
		candidates = []string{filepath.Join(target, "index.html")}
	} else if filepath.Ext(target) == "" {
		candidates = append(candidates, filepath.Join(target, "index.html"), target+".html")
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, true
		}
	}
	return target, false
}
