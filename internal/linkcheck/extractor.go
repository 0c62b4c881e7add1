// Package linkcheck finds internal links and asset references in generated
// HTML that do not resolve to a file in the output directory.
package linkcheck

import (
	"bytes"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

// Link is a URL referenced by an HTML element.
type Link struct {
	URL       string // The URL or path as written
	Tag       string // HTML tag (a, img, script, link, etc.)
	Attribute string // Attribute containing the link (href, src)
	Line      int    // Line of the element in the HTML source
}

// linkAttrs lists the attribute carrying a URL for each checked tag.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"video":  "src",
	"audio":  "src",
	"source": "src",
	"iframe": "src",
}

// ExtractLinks extracts all links from an HTML file.
func ExtractLinks(htmlPath string) ([]Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.FileSystemError("failed to open HTML file").
			WithCause(err).
			WithContext("path", htmlPath).
			Build()
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()

	return ExtractLinksFromReader(file)
}

// ExtractLinksFromReader extracts all links from an HTML reader. Lines are
// counted from the tokenizer, so they match the source even for malformed
// markup.
func ExtractLinksFromReader(r io.Reader) ([]Link, error) {
	z := html.NewTokenizer(r)
	line := 1
	var links []Link
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				return links, nil
			}
			return nil, errors.WrapError(z.Err(), errors.CategoryValidation, "failed to parse HTML").Build()
		}
		// Token may rewrite the raw buffer, so count newlines first.
		newlines := bytes.Count(z.Raw(), []byte("\n"))
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			tok := z.Token()
			if attr, ok := linkAttrs[tok.Data]; ok {
				if v := getAttr(tok, attr); v != "" {
					links = append(links, Link{URL: v, Tag: tok.Data, Attribute: attr, Line: line})
				}
			}
		}
		line += newlines
	}
}

// getAttr retrieves an attribute value from a token.
func getAttr(t html.Token, key string) string {
	for _, attr := range t.Attr {
		if attr.Key == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

// IsInternal reports whether link points into the site itself: no scheme,
// no host, and not a pure fragment.
func IsInternal(link string) bool {
	if link == "" || strings.HasPrefix(link, "#") || strings.HasPrefix(link, "//") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && u.Path != ""
}
