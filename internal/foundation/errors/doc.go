// Package errors provides the classified error primitives used across mksite.
//
// Every failure surfaced by a build carries a category (which kind of thing went
// wrong), a severity and a structured context naming the file, stage or command
// involved. Errors are created through a fluent builder:
//
//	err := errors.FileSystemError("cannot read directory").
//		WithCause(ioErr).
//		WithContext("path", dir).
//		Build()
//
// The CLI adapter turns a classified error into a process exit code and a
// user-facing message.
package errors
