package transform

import (
	"bytes"
	"context"
	stdErrors "errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/logfields"
	"git.home.luguber.info/inful/mksite/internal/metrics"
)

// maxStderrContext bounds the stderr excerpt attached to logs and errors.
const maxStderrContext = 2048

// Runner executes transforms.
type Runner struct {
	strict   bool
	logger   *slog.Logger
	recorder metrics.Recorder
	builtins map[string]Builtin
}

// Option configures a Runner.
type Option func(*Runner)

// WithStrictExit makes a non-zero child exit status a transform error.
func WithStrictExit(strict bool) Option {
	return func(r *Runner) { r.strict = strict }
}

// WithLogger sets the logger used for exit status warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Runner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithBuiltin registers an additional in-process command. name must start
// with "@".
func WithBuiltin(name string, fn Builtin) Option {
	return func(r *Runner) { r.builtins[name] = fn }
}

// NewRunner returns a Runner with the default builtins registered.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		builtins: defaultBuiltins(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply runs t over input and returns the final output. Chains are applied
// strictly in order.
func (r *Runner) Apply(ctx context.Context, t Transform, input []byte) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out := input
	for _, command := range t.commands {
		var err error
		out, err = r.run(ctx, command, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Runner) run(ctx context.Context, command string, input []byte) ([]byte, error) {
	args, err := shellwords.Parse(command)
	if err != nil {
		return nil, errors.ShellError("cannot parse command").
			WithCause(err).
			WithContext("command", command).
			Build()
	}
	if len(args) == 0 {
		return nil, errors.ShellError("command is empty").
			WithContext("command", command).
			Build()
	}

	if strings.HasPrefix(args[0], "@") {
		return r.runBuiltin(ctx, command, args, input)
	}

	start := time.Now()
	out, err := r.runProcess(ctx, command, args, input)
	r.recorder.ObserveTransformDuration("process", time.Since(start), err == nil)
	return out, err
}

func (r *Runner) runBuiltin(ctx context.Context, command string, args []string, input []byte) ([]byte, error) {
	fn, ok := r.builtins[args[0]]
	if !ok {
		return nil, errors.TransformError("unknown builtin command").
			WithContext("command", command).
			Build()
	}
	start := time.Now()
	out, err := fn(ctx, args[1:], input)
	r.recorder.ObserveTransformDuration("builtin", time.Since(start), err == nil)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTransform, "builtin command failed").
			Fatal().
			WithContext("command", command).
			Build()
	}
	return out, nil
}

func (r *Runner) runProcess(ctx context.Context, command string, args []string, input []byte) ([]byte, error) {
	// #nosec G204 -- transform commands come from the site configuration.
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	// exec copies Stdin on its own goroutine, so large inputs cannot block
	// on a full stdout pipe.
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, errors.TransformError("cannot spawn command").
			WithCause(err).
			WithContext("command", command).
			Build()
	}

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.RuntimeError("transform canceled").
				WithCause(ctxErr).
				WithContext("command", command).
				Build()
		}
		var exitErr *exec.ExitError
		if !stdErrors.As(err, &exitErr) {
			return nil, errors.FileSystemError("cannot pipe command input or output").
				WithCause(err).
				WithContext("command", command).
				Build()
		}
		excerpt := truncate(strings.TrimSpace(stderr.String()), maxStderrContext)
		if r.strict {
			return nil, errors.TransformError("command exited with non-zero status").
				WithCause(err).
				WithContext("command", command).
				WithContext("exit_code", exitErr.ExitCode()).
				WithContext("stderr", excerpt).
				Build()
		}
		r.logger.Warn("Transform command exited with non-zero status, using its output",
			logfields.Command(command),
			slog.Int("exit_code", exitErr.ExitCode()),
			slog.String("stderr", excerpt))
	}
	return stdout.Bytes(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
