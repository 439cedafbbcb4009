package vfs

import "errors"

// FileSystem is a filesystem with a directory tree.
//
// Unlike io/fs.FS, which exposes a single required Open method and
// discovers everything else through optional type assertions, FileSystem
// requires the full six-operation contract from every backend. A backend
// that can't honor part of it (a read-only archive, a union of layers, a
// mount composite) fails those calls with [ErrUnsupported] instead of
// omitting the method — callers always have a single interface to program
// against.
type FileSystem interface {
	// CreateDir creates a directory at path. It fails with
	// [ErrAlreadyExists] if an entry already occupies that name, or
	// [ErrNotFound] if the parent does not exist.
	CreateDir(path string) error

	// Metadata returns the metadata for the entry at path.
	Metadata(path string) (Metadata, error)

	// OpenFileOptions opens the file at path with the given options.
	OpenFileOptions(path string, opts OpenOptions) (File, error)

	// ReadDir lists the immediate children of the directory at path.
	// Order is unspecified; callers that need a stable order must sort.
	ReadDir(path string) ([]DirEntry, error)

	// RemoveDir removes the directory at path.
	RemoveDir(path string) error

	// RemoveFile removes the file at path.
	RemoveFile(path string) error
}

// CreateDirAll creates path and all necessary parents.
//
// If fsys has its own CreateDirAll(string) error method (memfs does,
// delegating to its tree to avoid O(depth²) re-walking), that's used
// directly. Otherwise CreateDirAll falls back to walking
// parent-to-child and calling CreateDir on each, swallowing
// [ErrAlreadyExists] along the way, per the generic algorithm every backend
// without a tree shortcut uses.
func CreateDirAll(fsys FileSystem, path string) error {
	if cdafs, ok := fsys.(interface{ CreateDirAll(string) error }); ok {
		return cdafs.CreateDirAll(path)
	}
	return createDirAllFallback(fsys, path)
}

func createDirAllFallback(fsys FileSystem, path string) error {
	normalized := normalizeForWalk(path)
	for _, p := range ancestorsRootDown(normalized) {
		if err := fsys.CreateDir(p); err != nil {
			if !errors.Is(err, ErrAlreadyExists) {
				return err
			}
		}
	}
	return nil
}

// CreateFile creates (or truncates) the file at path for writing.
//
// Equivalent to OpenFileOptions(path, DefaultOpenOptions().WithCreate(true).WithTruncate(true)).
func CreateFile(fsys FileSystem, path string) (File, error) {
	return fsys.OpenFileOptions(path, DefaultOpenOptions().WithCreate(true).WithTruncate(true))
}

// OpenFile opens the file at path for reading.
//
// Equivalent to OpenFileOptions(path, DefaultOpenOptions()).
func OpenFile(fsys FileSystem, path string) (File, error) {
	return fsys.OpenFileOptions(path, DefaultOpenOptions())
}

// Exists reports whether an entry exists at path.
//
// Exists distinguishes [ErrNotFound] (returns false, nil) from any other
// error (propagated), per the invariant that exists(p) is true iff
// metadata(p) succeeds.
func Exists(fsys FileSystem, path string) (bool, error) {
	_, err := fsys.Metadata(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}
