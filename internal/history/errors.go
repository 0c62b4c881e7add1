package history

import (
	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

var (
	// ErrDatabaseOpenFailed indicates the SQLite database could not be opened.
	ErrDatabaseOpenFailed = errors.StoreError("could not open build history database").Build()

	// ErrInitializeSchemaFailed indicates the database schema could not be initialized.
	ErrInitializeSchemaFailed = errors.StoreError("failed to initialize build history schema").Build()

	// ErrRecordFailed indicates inserting a build failed.
	ErrRecordFailed = errors.StoreError("failed to record build").Build()

	// ErrQueryFailed indicates querying builds failed.
	ErrQueryFailed = errors.StoreError("failed to query build history").Build()

	// ErrNotFound indicates no build with the requested id exists.
	ErrNotFound = errors.NotFoundError("build not found in history").Build()
)

func wrap(sentinel *errors.ClassifiedError, err error) error {
	return errors.WrapError(err, sentinel.Category(), sentinel.Message()).Build()
}
