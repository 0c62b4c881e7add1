package render

import (
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/fsutil"
)

// Page is one source file after the render step.
type Page struct {
	Source  string // absolute source path
	Content []byte
	// Raw is set for template-ignored pages, whose bytes are passed through.
	Raw bool
}

// Renderer renders the source pages of one build.
type Renderer struct {
	ns      *Namespace
	data    map[string]any
	ignored fsutil.PathSet
}

// NewRenderer registers every source not in ignored into a page namespace
// rooted at srcRoot.
func NewRenderer(srcRoot string, sources []string, ignored fsutil.PathSet, data map[string]any) (*Renderer, error) {
	templated := make([]string, 0, len(sources))
	for _, s := range sources {
		if !ignored.Has(s) {
			templated = append(templated, s)
		}
	}
	ns, err := NewNamespace(srcRoot, templated)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	return &Renderer{ns: ns, data: data, ignored: ignored}, nil
}

// Namespace returns the compiled page namespace.
func (r *Renderer) Namespace() *Namespace { return r.ns }

// Render renders one source page. Template-ignored pages are read verbatim.
func (r *Renderer) Render(source string) (Page, error) {
	if r.ignored.Has(source) {
		// #nosec G304 -- source comes from walking the src directory.
		raw, err := os.ReadFile(source)
		if err != nil {
			return Page{}, errors.FileSystemError("cannot read page").
				WithCause(err).
				WithContext("path", source).
				Build()
		}
		return Page{Source: source, Content: raw, Raw: true}, nil
	}

	name, err := TemplateName(r.ns.Root(), source)
	if err != nil {
		return Page{}, err
	}
	out, err := r.ns.Render(name, PageContext(r.data, name, source))
	if err != nil {
		return Page{}, err
	}
	return Page{Source: source, Content: out}, nil
}

// PageContext builds the template context of a source page:
//
//	.data            site data from the configuration
//	.page.path       path relative to src, slash separated
//	.page.source     absolute source path
//	.page.name       file name
//	.page.ext        extension without the dot
func PageContext(data map[string]any, name, source string) map[string]any {
	return map[string]any{
		"data": data,
		"page": map[string]any{
			"path":   name,
			"source": source,
			"name":   filepath.Base(source),
			"ext":    strings.TrimPrefix(fsutil.Ext(source), "."),
		},
	}
}

// LayoutContext builds the template context of a layout wrapping content:
//
//	.page.content      the page body as text
//	.page.path         destination path relative to out, slash separated
//	.page.source       absolute source path
//	.page.destination  absolute destination path
//	.page.layout       layout template name
func LayoutContext(data map[string]any, content, path, source, destination, layout string) map[string]any {
	return map[string]any{
		"data": data,
		"page": map[string]any{
			"content":     content,
			"path":        path,
			"source":      source,
			"destination": destination,
			"layout":      layout,
		},
	}
}
