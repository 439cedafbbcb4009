package vfs

import (
	"errors"
	"io/fs"
)

// Classified errors every backend reports through.
//
// These reuse the standard library's sentinels directly — the io/fs ones
// os.Open and friends already return, plus [errors.ErrUnsupported] — rather
// than declaring a parallel taxonomy, so callers can keep using errors.Is
// the way they do against io/fs and os.
var (
	ErrNotFound         = fs.ErrNotExist
	ErrAlreadyExists    = fs.ErrExist
	ErrInvalidInput     = fs.ErrInvalid
	ErrPermissionDenied = fs.ErrPermission
	ErrUnsupported      = errors.ErrUnsupported

	// ErrInvalidData reports a corrupt archive or otherwise malformed
	// on-disk structure. io/fs has no equivalent sentinel.
	ErrInvalidData = errors.New("vfs: invalid data")
)

// PathError records an error and the operation and path that caused it.
//
// This is an alias for [fs.PathError], the same wrap-with-op-and-path idiom
// os.Open and friends use.
type PathError = fs.PathError

// pathErr wraps err in a *PathError, or returns nil if err is nil.
func pathErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Op: op, Path: path, Err: err}
}
