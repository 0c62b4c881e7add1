package transform

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

func requireTools(t *testing.T, tools ...string) {
	t.Helper()
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not available: %v", tool, err)
		}
	}
}

func TestRunner_Single(t *testing.T) {
	requireTools(t, "rev")
	out, err := NewRunner().Apply(context.Background(), NewSingle("rev"), []byte("abc\n"))
	require.NoError(t, err)
	assert.Equal(t, "cba\n", string(out))
}

func TestRunner_ChainIsLeftFold(t *testing.T) {
	requireTools(t, "rev", "tr")
	r := NewRunner()
	ctx := context.Background()
	input := []byte("abc\n")

	chained, err := r.Apply(ctx, NewChain("rev", "tr a-z A-Z"), input)
	require.NoError(t, err)

	reversed, err := r.Apply(ctx, NewSingle("rev"), input)
	require.NoError(t, err)
	manual, err := r.Apply(ctx, NewSingle("tr a-z A-Z"), reversed)
	require.NoError(t, err)

	assert.Equal(t, manual, chained)
	assert.Equal(t, "CBA\n", string(chained))
}

func TestRunner_ShellQuoting(t *testing.T) {
	requireTools(t, "tr")
	out, err := NewRunner().Apply(context.Background(), NewSingle(`tr "a b" 'x_'`), []byte("a b"))
	require.NoError(t, err)
	assert.Equal(t, "x_x", string(out))
}

func TestRunner_LargeInputDoesNotDeadlock(t *testing.T) {
	requireTools(t, "cat")
	input := bytes.Repeat([]byte("0123456789abcdef"), 1<<16) // 1 MiB, well above pipe buffers

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	out, err := NewRunner().Apply(ctx, NewSingle("cat"), input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestRunner_ParseError(t *testing.T) {
	_, err := NewRunner().Apply(context.Background(), NewSingle(`rev "unterminated`), []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryShell))
}

func TestRunner_SpawnError(t *testing.T) {
	_, err := NewRunner().Apply(context.Background(), NewSingle("mksite-no-such-binary-xyz"), []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryTransform))
	assert.Contains(t, err.Error(), "mksite-no-such-binary-xyz")
}

func TestRunner_EmptyChainRejected(t *testing.T) {
	_, err := NewRunner().Apply(context.Background(), NewChain(), []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestRunner_NonZeroExitIsPermissive(t *testing.T) {
	requireTools(t, "sh")
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	cmd := `sh -c 'printf partial; echo broken >&2; exit 3'`
	out, err := NewRunner(WithLogger(logger)).Apply(context.Background(), NewSingle(cmd), nil)
	require.NoError(t, err)
	assert.Equal(t, "partial", string(out))
	assert.Contains(t, logs.String(), "non-zero status")
	assert.Contains(t, logs.String(), "broken")
	assert.Contains(t, logs.String(), "exit_code=3")
}

func TestRunner_NonZeroExitStrict(t *testing.T) {
	requireTools(t, "sh")
	cmd := `sh -c 'echo broken >&2; exit 4'`
	_, err := NewRunner(WithStrictExit(true)).Apply(context.Background(), NewSingle(cmd), nil)
	require.Error(t, err)

	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryTransform, ce.Category())
	assert.Equal(t, 4, ce.Context()["exit_code"])
	assert.Equal(t, "broken", ce.Context()["stderr"])
}

func TestRunner_ChildIgnoringStdin(t *testing.T) {
	requireTools(t, "echo")
	input := bytes.Repeat([]byte("x"), 1<<20)
	out, err := NewRunner().Apply(context.Background(), NewSingle("echo done"), input)
	require.NoError(t, err)
	assert.Equal(t, "done\n", string(out))
}

func TestRunner_Canceled(t *testing.T) {
	requireTools(t, "sleep")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner().Apply(ctx, NewSingle("sleep 5"), nil)
	require.Error(t, err)
}

func TestRunner_Builtins(t *testing.T) {
	r := NewRunner()
	ctx := context.Background()

	out, err := r.Apply(ctx, NewSingle("@identity"), []byte("same"))
	require.NoError(t, err)
	assert.Equal(t, "same", string(out))

	out, err = r.Apply(ctx, NewSingle("@markdown"), []byte("# Title\n\n~~gone~~ <b>raw</b>\n"))
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, `<h1 id="title">Title</h1>`)
	assert.Contains(t, html, "<del>gone</del>")
	assert.Contains(t, html, "<b>raw</b>")

	out, err = r.Apply(ctx, NewSingle("@markdown --safe"), []byte("<b>raw</b>\n"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<b>raw</b>")
}

func TestRunner_BuiltinInChain(t *testing.T) {
	requireTools(t, "tr")
	out, err := NewRunner().Apply(context.Background(), NewChain("@markdown", "tr a-z A-Z"), []byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, "<P>HELLO</P>", strings.TrimSpace(string(out)))
}

func TestRunner_UnknownBuiltin(t *testing.T) {
	_, err := NewRunner().Apply(context.Background(), NewSingle("@nope"), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryTransform))

	_, err = NewRunner().Apply(context.Background(), NewSingle("@markdown --bogus"), nil)
	require.Error(t, err)
}

func TestRunner_CustomBuiltin(t *testing.T) {
	upper := func(_ context.Context, _ []string, in []byte) ([]byte, error) {
		return bytes.ToUpper(in), nil
	}
	out, err := NewRunner(WithBuiltin("@upper", upper)).Apply(context.Background(), NewSingle("@upper"), []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ABC", string(out))
}
