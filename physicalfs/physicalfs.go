// Package physicalfs implements [lesiw.io/vfs.FileSystem] as a thin adapter
// over a directory on the host filesystem.
package physicalfs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"lesiw.io/vfs"
	"lesiw.io/vfs/vfspath"
)

// New returns a filesystem rooted at root on the host. Paths are appended
// to root without any bounds checking — a path like "../../etc/passwd"
// escapes root exactly as it would under plain os.Open. Use [NewSandboxed]
// to forbid that.
func New(root string) vfs.FileSystem {
	return &FS{root: filepath.Clean(root), resolve: unrestrictedResolve}
}

// NewSandboxed returns a filesystem rooted at root on the host that
// rejects any path resolving outside of root, including via symlinks.
// root must exist and be resolvable; NewSandboxed canonicalizes it once up
// front.
func NewSandboxed(root string) (vfs.FileSystem, error) {
	canonicalRoot, err := filepath.EvalSymlinks(filepath.Clean(root))
	if err != nil {
		return nil, err
	}
	return &FS{root: canonicalRoot, resolve: sandboxedResolve}, nil
}

// FS is a host-directory-backed [lesiw.io/vfs.FileSystem].
type FS struct {
	root    string
	resolve func(root, path string) (string, error)
}

func unrestrictedResolve(root, path string) (string, error) {
	return filepath.Join(root, filepath.FromSlash(vfspath.MakeRelative(path))), nil
}

// sandboxedResolve joins path onto root and then canonicalizes the result,
// rejecting it unless the canonical form still lives under root. This
// defeats both "../" backtracking and symlinks that point outside root.
func sandboxedResolve(root, path string) (string, error) {
	joined := filepath.Join(root, filepath.FromSlash(vfspath.MakeRelative(path)))
	canonical, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", err
	}
	if canonical != root && !strings.HasPrefix(canonical, root+string(filepath.Separator)) {
		return "", wrapErr("resolve", path, vfs.ErrPermissionDenied)
	}
	return canonical, nil
}

func wrapErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &vfs.PathError{Op: op, Path: path, Err: err}
}

func (f *FS) CreateDir(path string) error {
	hostPath, err := f.resolve(f.root, path)
	if err != nil {
		return wrapErr("mkdir", path, err)
	}
	return os.Mkdir(hostPath, 0o755)
}

func (f *FS) Metadata(path string) (vfs.Metadata, error) {
	hostPath, err := f.resolve(f.root, path)
	if err != nil {
		return vfs.Metadata{}, wrapErr("stat", path, err)
	}
	info, err := os.Stat(hostPath)
	if err != nil {
		return vfs.Metadata{}, err
	}
	return metadataFromInfo(info), nil
}

func metadataFromInfo(info os.FileInfo) vfs.Metadata {
	switch {
	case info.IsDir():
		return vfs.DirMetadata()
	case info.Mode().IsRegular():
		return vfs.FileMetadata(uint64(info.Size()))
	default:
		return vfs.Metadata{Type: vfs.Unknown}
	}
}

func (f *FS) OpenFileOptions(path string, opts vfs.OpenOptions) (vfs.File, error) {
	hostPath, err := f.resolve(f.root, path)
	if err != nil {
		return nil, wrapErr("open", path, err)
	}
	flag := hostFlag(opts)
	file, err := os.OpenFile(hostPath, flag, 0o644)
	if err != nil {
		return nil, err
	}
	return &fileHandle{file: file}, nil
}

func hostFlag(opts vfs.OpenOptions) int {
	var flag int
	switch {
	case opts.Read && opts.Write:
		flag = os.O_RDWR
	case opts.Write:
		flag = os.O_WRONLY
	default:
		flag = os.O_RDONLY
	}
	if opts.Create {
		flag |= os.O_CREATE
	}
	if opts.Truncate {
		flag |= os.O_TRUNC
	}
	if opts.Append {
		flag |= os.O_APPEND
	}
	return flag
}

func (f *FS) ReadDir(path string) ([]vfs.DirEntry, error) {
	hostPath, err := f.resolve(f.root, path)
	if err != nil {
		return nil, wrapErr("readdir", path, err)
	}
	hostEntries, err := os.ReadDir(hostPath)
	if err != nil {
		return nil, err
	}
	entries := make([]vfs.DirEntry, 0, len(hostEntries))
	for _, e := range hostEntries {
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		entries = append(entries, vfs.DirEntry{Name: e.Name(), Metadata: metadataFromInfo(info)})
	}
	return entries, nil
}

func (f *FS) RemoveDir(path string) error {
	hostPath, err := f.resolve(f.root, path)
	if err != nil {
		return wrapErr("rmdir", path, err)
	}
	return os.Remove(hostPath)
}

func (f *FS) RemoveFile(path string) error {
	hostPath, err := f.resolve(f.root, path)
	if err != nil {
		return wrapErr("remove", path, err)
	}
	return os.Remove(hostPath)
}

type fileHandle struct {
	file *os.File
}

func (h *fileHandle) Read(p []byte) (int, error)  { return h.file.Read(p) }
func (h *fileHandle) Write(p []byte) (int, error) { return h.file.Write(p) }
func (h *fileHandle) Close() error                { return h.file.Close() }

func (h *fileHandle) Seek(offset int64, whence int) (int64, error) {
	return h.file.Seek(offset, whence)
}

func (h *fileHandle) Metadata() (vfs.Metadata, error) {
	info, err := h.file.Stat()
	if err != nil {
		return vfs.Metadata{}, err
	}
	return metadataFromInfo(info), nil
}

var _ io.ReadWriteSeeker = (*fileHandle)(nil)
