// Package fsutil holds the filesystem helpers shared by the build pipeline:
// enumerating every file under a directory, moving a path from one root to
// another, and byte-for-byte file copies.
package fsutil
