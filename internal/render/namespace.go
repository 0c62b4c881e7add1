package render

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/fsutil"
)

// Namespace is a set of templates registered under their relative names.
type Namespace struct {
	root  string
	tmpl  *template.Template
	names []string
}

// NewNamespace reads and parses every path (which must lie under root) into
// one template set. Parse failures name the offending template. Names made
// with {{define}} share the set with the file names, so a name defined by two
// files is an error instead of one silently replacing the other.
func NewNamespace(root string, paths []string) (*Namespace, error) {
	ns := &Namespace{root: root}
	ns.tmpl = ns.newTemplate("")

	owners := make(map[string]string, len(paths))
	for _, p := range paths {
		name, err := TemplateName(root, p)
		if err != nil {
			return nil, err
		}
		// #nosec G304 -- paths come from walking the project directories.
		body, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.FileSystemError("cannot read template").
				WithCause(err).
				WithContext("path", p).
				Build()
		}
		parsed, err := ns.newTemplate(name).Parse(string(body))
		if err != nil {
			return nil, errors.TemplateError("cannot parse template").
				WithCause(err).
				WithContext("template", name).
				Build()
		}
		for _, t := range parsed.Templates() {
			if t.Tree == nil {
				continue
			}
			if owner, dup := owners[t.Name()]; dup {
				return nil, errors.TemplateError("template defined more than once").
					WithContext("template", t.Name()).
					WithContext("path", p).
					WithContext("defined_in", owner).
					Build()
			}
			owners[t.Name()] = p
			if _, err := ns.tmpl.AddParseTree(t.Name(), t.Tree); err != nil {
				return nil, errors.TemplateError("cannot register template").
					WithCause(err).
					WithContext("template", t.Name()).
					Build()
			}
		}
		ns.names = append(ns.names, name)
	}
	sort.Strings(ns.names)
	return ns, nil
}

// newTemplate returns an empty template with the namespace's functions and
// options.
func (ns *Namespace) newTemplate(name string) *template.Template {
	return template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{"include": ns.include}).
		Option("missingkey=error")
}

// TemplateName returns the registered name of path: its slash-separated path
// relative to root. Names must be valid UTF-8.
func TemplateName(root, path string) (string, error) {
	rel, err := fsutil.StripPrefix(path, root)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(rel) {
		return "", errors.PathConversionError("path is not valid UTF-8").
			WithContext("path", path).
			Build()
	}
	return filepath.ToSlash(rel), nil
}

// Root returns the directory template names are relative to.
func (ns *Namespace) Root() string { return ns.root }

// Names returns the registered template names in sorted order.
func (ns *Namespace) Names() []string {
	out := make([]string, len(ns.names))
	copy(out, ns.names)
	return out
}

// Render executes the template registered as name with data.
func (ns *Namespace) Render(name string, data any) ([]byte, error) {
	t := ns.tmpl.Lookup(name)
	if t == nil {
		return nil, errors.TemplateError("template not registered").
			WithContext("template", name).
			Build()
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, errors.TemplateError("cannot render template").
			WithCause(err).
			WithContext("template", name).
			Build()
	}
	return buf.Bytes(), nil
}

// include renders another template to a string so it can be piped.
func (ns *Namespace) include(name string, data any) (string, error) {
	t := ns.tmpl.Lookup(name)
	if t == nil {
		return "", errors.TemplateError("template not registered").
			WithContext("template", name).
			Build()
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
