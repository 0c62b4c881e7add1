package transform

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Builtin is an in-process transform command. args excludes the command name.
type Builtin func(ctx context.Context, args []string, input []byte) ([]byte, error)

func defaultBuiltins() map[string]Builtin {
	return map[string]Builtin{
		"@markdown": markdownBuiltin,
		"@identity": identityBuiltin,
	}
}

// markdownBuiltin renders CommonMark with the GFM extensions. Raw HTML in the
// source is passed through unless "--safe" is given. "--hard-wraps" turns soft
// line breaks into <br>.
func markdownBuiltin(_ context.Context, args []string, input []byte) ([]byte, error) {
	safe := false
	var rendererOpts []renderer.Option
	for _, a := range args {
		switch a {
		case "--safe":
			safe = true
		case "--hard-wraps":
			rendererOpts = append(rendererOpts, html.WithHardWraps())
		default:
			return nil, fmt.Errorf("unknown @markdown argument %q", a)
		}
	}
	if !safe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	var buf bytes.Buffer
	if err := md.Convert(input, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func identityBuiltin(_ context.Context, args []string, input []byte) ([]byte, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("@identity takes no arguments")
	}
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}
