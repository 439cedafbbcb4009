// Package mountfs implements [lesiw.io/vfs.FileSystem] as a tree of
// directories that can have other filesystems mounted into them — a file
// path that descends past a mount point is routed, remainder and all,
// into the filesystem mounted there.
package mountfs

import (
	"lesiw.io/vfs"
	"lesiw.io/vfs/vfspath"
	"lesiw.io/vfs/vfstree"
)

// splitParentChild splits path into its parent directory and leaf name.
// isRoot reports whether path names the root itself, which has no parent
// and so can never be a mount point.
func splitParentChild(path string) (parent, name string, isRoot bool) {
	normalized := vfspath.Normalize(path)
	if normalized == "" {
		return "", "", true
	}
	return vfspath.Dir(normalized), vfspath.Base(normalized), false
}

// New returns an empty mount composite. Mount sub-filesystems into it with
// [FS.Mount].
func New() *FS {
	return &FS{tree: vfstree.New[vfs.FileSystem]()}
}

// FS routes paths into sub-filesystems mounted at tree positions.
//
// Directories that aren't themselves mount points are plain routing nodes:
// [FS.Metadata] and [FS.ReadDir] report them as directories, and
// [FS.ReadDir] lists both routing-node children and mounted filesystems'
// roots the same way — both are "directories" from the caller's
// perspective. The mount composite itself never holds file bytes, so
// every write path beyond [FS.Mount] fails with [vfs.ErrUnsupported]; a
// mounted filesystem that supports writes is still reached by
// [FS.OpenFileOptions] and writable through the handle it returns.
type FS struct {
	tree *vfstree.FilesystemTree[vfs.FileSystem]
}

// Mount grafts fsys into the tree at path, which must not already be
// occupied and must not be the root itself.
func (m *FS) Mount(path string, fsys vfs.FileSystem) error {
	parent, name, isRoot := splitParentChild(path)
	if isRoot {
		return wrapErr("mount", path, vfs.ErrInvalidInput)
	}
	err := m.tree.CreateDirAll(parent, func(dir *vfstree.Directory[vfs.FileSystem]) error {
		return dir.SetLeaf(name, fsys)
	})
	return wrapErr("mount", path, err)
}

func (m *FS) CreateDir(path string) error {
	return wrapErr("mkdir", path, vfs.ErrUnsupported)
}

func (m *FS) Metadata(path string) (vfs.Metadata, error) {
	var md vfs.Metadata
	err := m.tree.WithEntry(path, func(e vfstree.EntryView[vfs.FileSystem]) error {
		if e.IsDir() {
			md = vfs.DirMetadata()
			return nil
		}
		fsys, remainder, _ := e.Leaf()
		if remainder == "" {
			md = vfs.DirMetadata()
			return nil
		}
		var err error
		md, err = fsys.Metadata(remainder)
		return err
	})
	return md, err
}

func (m *FS) OpenFileOptions(path string, opts vfs.OpenOptions) (vfs.File, error) {
	var file vfs.File
	err := m.tree.WithEntry(path, func(e vfstree.EntryView[vfs.FileSystem]) error {
		if e.IsDir() {
			// A plain routing directory, not a mounted filesystem — there's
			// nothing here to open as a file.
			return vfs.ErrNotFound
		}
		fsys, remainder, _ := e.Leaf()
		var err error
		file, err = fsys.OpenFileOptions(remainder, opts)
		return err
	})
	return file, err
}

func (m *FS) ReadDir(path string) ([]vfs.DirEntry, error) {
	var entries []vfs.DirEntry
	err := m.tree.WithEntry(path, func(e vfstree.EntryView[vfs.FileSystem]) error {
		if dir, ok := e.Directory(); ok {
			for _, name := range dir.Names() {
				entries = append(entries, vfs.DirEntry{Name: name, Metadata: vfs.DirMetadata()})
			}
			return nil
		}
		fsys, remainder, _ := e.Leaf()
		var err error
		entries, err = fsys.ReadDir(remainder)
		return err
	})
	return entries, err
}

func (m *FS) RemoveDir(path string) error {
	return wrapErr("rmdir", path, vfs.ErrUnsupported)
}

func (m *FS) RemoveFile(path string) error {
	return wrapErr("remove", path, vfs.ErrUnsupported)
}

func wrapErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &vfs.PathError{Op: op, Path: path, Err: err}
}
