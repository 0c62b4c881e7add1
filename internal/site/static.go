package site

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/mksite/internal/fsutil"
	"git.home.luguber.info/inful/mksite/internal/logfields"
)

// CopyStatic copies every file under staticRoot to the same relative path
// under outRoot, overwriting existing files. A missing static directory is
// logged and skipped. It returns the number of files copied.
func CopyStatic(ctx context.Context, staticRoot, outRoot string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !fsutil.DirExists(staticRoot) {
		logger.Warn("Static directory not found, skipping static files", logfields.Path(staticRoot))
		return 0, nil
	}
	files, err := fsutil.WalkFiles(staticRoot)
	if err != nil {
		return 0, err
	}
	copied := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return copied, err
		}
		dest, err := fsutil.SwapPrefix(f, staticRoot, outRoot)
		if err != nil {
			return copied, err
		}
		if err := fsutil.CopyFile(f, dest); err != nil {
			return copied, err
		}
		copied++
	}
	logger.Debug("Copied static files", logfields.Count(copied))
	return copied, nil
}

func stageStatic(ctx context.Context, s *Site) error {
	n, err := CopyStatic(ctx, s.cfg.Dirs.Static, s.cfg.Dirs.Out, s.logger)
	s.report.StaticFiles = n
	return err
}
