package site

import (
	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

// withPath attaches a file path to a classified error so the failing file is
// reported. Other errors are returned unchanged.
func withPath(err error, key, path string) error {
	if ce, ok := errors.AsClassified(err); ok {
		if _, exists := ce.Context().Get(key); exists {
			return err
		}
		return ce.WithContext(key, path)
	}
	return err
}
