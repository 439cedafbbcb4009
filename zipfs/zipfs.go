// Package zipfs implements [lesiw.io/vfs.FileSystem] as a read-only view
// over a ZIP archive, using the standard library's archive/zip the same
// way rclone's own zip backend does.
package zipfs

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"lesiw.io/vfs"
	"lesiw.io/vfs/vfspath"
)

// Option configures [New].
type Option func(*config)

type config struct {
	caseInsensitiveFallback bool
}

// CaseInsensitiveFallback makes lookups that miss an exact-case match fall
// back to an O(n) case-insensitive scan of the archive's entries, for
// archives built on case-insensitive filesystems.
func CaseInsensitiveFallback() Option {
	return func(c *config) { c.caseInsensitiveFallback = true }
}

// New opens the ZIP archive read from r (size bytes long) as a filesystem.
// Directories are synthesized from every entry's ancestor paths — ZIP
// archives need not carry explicit directory entries.
func New(r io.ReaderAt, size int64, opts ...Option) (vfs.FileSystem, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &vfs.PathError{Op: "open", Path: "", Err: vfs.ErrInvalidData}
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	files := make(map[string]*zip.File, len(zr.File))
	dirs := map[string]struct{}{"": {}}
	for _, zf := range zr.File {
		name := vfspath.Normalize(zf.Name)
		if name == "" {
			continue
		}
		for _, parent := range vfspath.ParentIter(name) {
			dirs[parent] = struct{}{}
		}
		if strings.HasSuffix(zf.Name, "/") {
			dirs[name] = struct{}{}
			continue
		}
		files[name] = zf
	}

	return &FS{files: files, dirs: dirs, caseInsensitiveFallback: cfg.caseInsensitiveFallback}, nil
}

// FS is a read-only ZIP-backed [lesiw.io/vfs.FileSystem].
type FS struct {
	files                   map[string]*zip.File
	dirs                    map[string]struct{}
	caseInsensitiveFallback bool
}

func wrapErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &vfs.PathError{Op: op, Path: path, Err: err}
}

// lookup resolves a normalized path to an archive entry, applying the
// case-insensitive fallback if configured and the exact-case match misses.
func (f *FS) lookup(normalized string) (*zip.File, bool) {
	if zf, ok := f.files[normalized]; ok {
		return zf, true
	}
	if !f.caseInsensitiveFallback {
		return nil, false
	}
	for name, zf := range f.files {
		if strings.EqualFold(name, normalized) {
			return zf, true
		}
	}
	return nil, false
}

func (f *FS) CreateDir(path string) error {
	return wrapErr("mkdir", path, vfs.ErrUnsupported)
}

func (f *FS) Metadata(path string) (vfs.Metadata, error) {
	normalized := vfspath.Normalize(path)
	if _, ok := f.dirs[normalized]; ok {
		return vfs.DirMetadata(), nil
	}
	zf, ok := f.lookup(normalized)
	if !ok {
		return vfs.Metadata{}, wrapErr("stat", path, vfs.ErrNotFound)
	}
	return vfs.FileMetadata(zf.UncompressedSize64), nil
}

func (f *FS) OpenFileOptions(path string, opts vfs.OpenOptions) (vfs.File, error) {
	if opts.Write {
		return nil, wrapErr("open", path, vfs.ErrUnsupported)
	}
	zf, ok := f.lookup(vfspath.Normalize(path))
	if !ok {
		return nil, wrapErr("open", path, vfs.ErrNotFound)
	}

	rc, err := zf.Open()
	if err != nil {
		return nil, wrapErr("open", path, vfs.ErrInvalidData)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, wrapErr("open", path, vfs.ErrInvalidData)
	}
	return &fileHandle{r: bytes.NewReader(data), path: path, size: int64(len(data))}, nil
}

func (f *FS) ReadDir(path string) ([]vfs.DirEntry, error) {
	normalized := vfspath.Normalize(path)
	if _, ok := f.dirs[normalized]; !ok {
		return nil, wrapErr("readdir", path, vfs.ErrNotFound)
	}

	byName := make(map[string]vfs.DirEntry)
	for name := range f.dirs {
		if name == "" || vfspath.Dir(name) != normalized {
			continue
		}
		base := vfspath.Base(name)
		byName[base] = vfs.DirEntry{Name: base, Metadata: vfs.DirMetadata()}
	}
	for name, zf := range f.files {
		if vfspath.Dir(name) != normalized {
			continue
		}
		base := vfspath.Base(name)
		byName[base] = vfs.DirEntry{Name: base, Metadata: vfs.FileMetadata(zf.UncompressedSize64)}
	}

	entries := make([]vfs.DirEntry, 0, len(byName))
	for _, e := range byName {
		entries = append(entries, e)
	}
	return entries, nil
}

func (f *FS) RemoveDir(path string) error {
	return wrapErr("rmdir", path, vfs.ErrUnsupported)
}

func (f *FS) RemoveFile(path string) error {
	return wrapErr("remove", path, vfs.ErrUnsupported)
}

// fileHandle is a read-only in-memory cursor over one decoded ZIP entry.
type fileHandle struct {
	r    *bytes.Reader
	path string
	size int64
}

func (h *fileHandle) Read(p []byte) (int, error) { return h.r.Read(p) }

func (h *fileHandle) Write([]byte) (int, error) {
	return 0, wrapErr("write", h.path, vfs.ErrUnsupported)
}

func (h *fileHandle) Seek(offset int64, whence int) (int64, error) {
	return h.r.Seek(offset, whence)
}

func (h *fileHandle) Close() error { return nil }

func (h *fileHandle) Metadata() (vfs.Metadata, error) {
	return vfs.FileMetadata(uint64(h.size)), nil
}
