// Package tarfs implements [lesiw.io/vfs.FileSystem] as a read-only view
// materialized from a tar archive.
//
// Because the result is backed by memory, every entry is read in full at
// construction — exactly the same tradeoff the archive port this is based
// on (tar_fs.rs) warns about: large archives should be filtered with
// [WithFilter] rather than loaded whole.
package tarfs

import (
	"archive/tar"
	"io"

	"lesiw.io/vfs"
	"lesiw.io/vfs/memfs"
	"lesiw.io/vfs/vfspath"
)

// Option configures [New].
type Option func(*config)

type config struct {
	filter func(path string) bool
}

// WithFilter restricts the materialized filesystem to entries for which
// include returns true. Directories are still created as needed to hold
// the entries that pass.
func WithFilter(include func(path string) bool) Option {
	return func(c *config) { c.filter = include }
}

// New drains r as a tar archive into an in-memory filesystem. Only regular
// files are materialized; symlinks, devices, and other non-regular entries
// are skipped, matching the archive port this is grounded on.
func New(r io.Reader, opts ...Option) (vfs.FileSystem, error) {
	cfg := config{filter: func(string) bool { return true }}
	for _, opt := range opts {
		opt(&cfg)
	}

	fsys := memfs.New()
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &vfs.PathError{Op: "open", Path: "", Err: vfs.ErrInvalidData}
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := vfspath.Normalize(hdr.Name)
		if name == "" || !cfg.filter(name) {
			continue
		}

		if parent := vfspath.Dir(name); parent != "" {
			if err := vfs.CreateDirAll(fsys, parent); err != nil {
				return nil, err
			}
		}

		f, err := vfs.CreateFile(fsys, name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(f, tr); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
	}

	return &FS{memfs: fsys}, nil
}

// FS is a read-only tar-backed [lesiw.io/vfs.FileSystem].
//
// Reads and listing delegate to an internal [lesiw.io/vfs/memfs.FS]; every
// write path fails with [vfs.ErrUnsupported].
type FS struct {
	memfs vfs.FileSystem
}

func (f *FS) CreateDir(path string) error {
	return wrapErr("mkdir", path, vfs.ErrUnsupported)
}

func (f *FS) Metadata(path string) (vfs.Metadata, error) {
	return f.memfs.Metadata(path)
}

func (f *FS) OpenFileOptions(path string, opts vfs.OpenOptions) (vfs.File, error) {
	if opts.Write {
		return nil, wrapErr("open", path, vfs.ErrUnsupported)
	}
	return f.memfs.OpenFileOptions(path, opts)
}

func (f *FS) ReadDir(path string) ([]vfs.DirEntry, error) {
	return f.memfs.ReadDir(path)
}

func (f *FS) RemoveDir(path string) error {
	return wrapErr("rmdir", path, vfs.ErrUnsupported)
}

func (f *FS) RemoveFile(path string) error {
	return wrapErr("remove", path, vfs.ErrUnsupported)
}

func wrapErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &vfs.PathError{Op: op, Path: path, Err: err}
}
