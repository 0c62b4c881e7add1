package fsutil

import (
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

// CopyFile copies src to dst byte for byte, creating parent directories and
// overwriting any existing file. The source permission bits are preserved.
func CopyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return ioError(err, "cannot stat", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return ioError(err, "cannot create directory", filepath.Dir(dst))
	}

	// #nosec G304 -- src comes from walking a configured directory.
	srcFile, err := os.Open(src)
	if err != nil {
		return ioError(err, "cannot open", src)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	if err := clearReadOnly(dst); err != nil {
		return err
	}
	// #nosec G304 -- dst is derived from the configured output root.
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return ioError(err, "cannot create", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return ioError(err, "cannot copy", dst)
	}
	if err := dstFile.Close(); err != nil {
		return ioError(err, "cannot write", dst)
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return ioError(err, "cannot chmod", dst)
	}
	return nil
}

// WriteFile writes data to path, creating parent directories as needed and
// replacing an existing read-only file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ioError(err, "cannot create directory", dir)
	}
	if err := clearReadOnly(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ioError(err, "cannot write", path)
	}
	return nil
}

// clearReadOnly removes path when it is a file the owner cannot write, so it
// can be recreated.
func clearReadOnly(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return ioError(err, "cannot stat", path)
	}
	if info.IsDir() || info.Mode().Perm()&0o200 != 0 {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return ioError(err, "cannot replace read-only file", path)
	}
	return nil
}

func ioError(err error, msg, path string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, msg).
		Fatal().
		WithContext("path", path).
		Build()
}
