// Package memfs implements [lesiw.io/vfs.FileSystem] as an in-memory tree
// of byte buffers.
package memfs

import (
	"sync"

	"lesiw.io/vfs"
	"lesiw.io/vfs/vfspath"
	"lesiw.io/vfs/vfstree"
)

// New returns a new, empty in-memory filesystem.
func New() vfs.FileSystem {
	return &FS{tree: vfstree.New[*fileBody]()}
}

// FS is an in-memory [lesiw.io/vfs.FileSystem].
//
// Every regular file is a *fileBody guarded by its own mutex, which an open
// handle holds for its entire lifetime — at most one handle may be open on
// a given file at a time. Directories are nodes in a single
// [lesiw.io/vfs/vfstree.FilesystemTree], guarded by one coarse lock for the
// duration of each tree operation.
type FS struct {
	tree *vfstree.FilesystemTree[*fileBody]
}

// fileBody holds one file's bytes behind a mutex. An open handle locks mu
// for its entire lifetime and unlocks it on Close, giving at most one
// handle exclusive access to a file at a time.
type fileBody struct {
	mu   sync.Mutex
	data []byte
}

func wrapErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &vfs.PathError{Op: op, Path: path, Err: err}
}

// splitParentChild splits path into its parent directory and leaf name.
// isRoot reports whether path names the root itself, which has no parent.
func splitParentChild(path string) (parent, name string, isRoot bool) {
	normalized := vfspath.Normalize(path)
	if normalized == "" {
		return "", "", true
	}
	return vfspath.Dir(normalized), vfspath.Base(normalized), false
}

func (f *FS) CreateDir(path string) error {
	parent, name, isRoot := splitParentChild(path)
	if isRoot {
		return wrapErr("mkdir", path, vfs.ErrAlreadyExists)
	}
	err := f.tree.WithDirectory(parent, func(dir *vfstree.Directory[*fileBody]) error {
		return dir.MakeDir(name)
	})
	return wrapErr("mkdir", path, err)
}

// CreateDirAll is the method [lesiw.io/vfs.CreateDirAll] looks for and
// calls in place of its generic fallback, so creating a deep path doesn't
// re-walk its prefix once per level.
func (f *FS) CreateDirAll(path string) error {
	err := f.tree.CreateDirAll(path, func(*vfstree.Directory[*fileBody]) error { return nil })
	return wrapErr("mkdir", path, err)
}

func (f *FS) Metadata(path string) (vfs.Metadata, error) {
	parent, name, isRoot := splitParentChild(path)
	if isRoot {
		return vfs.DirMetadata(), nil
	}
	var md vfs.Metadata
	err := f.tree.WithDirectory(parent, func(dir *vfstree.Directory[*fileBody]) error {
		entry, ok := dir.Get(name)
		if !ok {
			return vfs.ErrNotFound
		}
		if entry.IsDir() {
			md = vfs.DirMetadata()
			return nil
		}
		body, _, _ := entry.Leaf()
		body.mu.Lock()
		defer body.mu.Unlock()
		md = vfs.FileMetadata(uint64(len(body.data)))
		return nil
	})
	return md, wrapErr("stat", path, err)
}

func (f *FS) OpenFileOptions(path string, opts vfs.OpenOptions) (vfs.File, error) {
	parent, name, isRoot := splitParentChild(path)
	if isRoot {
		return nil, wrapErr("open", path, vfs.ErrUnsupported)
	}

	var body *fileBody
	err := f.tree.WithDirectory(parent, func(dir *vfstree.Directory[*fileBody]) error {
		entry, ok := dir.Get(name)
		if ok {
			if entry.IsDir() {
				return vfs.ErrNotFound
			}
			body, _, _ = entry.Leaf()
			return nil
		}
		if !opts.Create {
			return vfs.ErrNotFound
		}
		body = &fileBody{}
		return dir.SetLeaf(name, body)
	})
	if err != nil {
		return nil, wrapErr("open", path, err)
	}

	body.mu.Lock()
	if opts.Truncate {
		body.data = body.data[:0]
	}
	pos := 0
	if opts.Append {
		pos = len(body.data)
	}
	return &fileHandle{body: body, opts: opts, pos: pos, path: path}, nil
}

func (f *FS) ReadDir(path string) ([]vfs.DirEntry, error) {
	var entries []vfs.DirEntry
	err := f.tree.WithDirectory(path, func(dir *vfstree.Directory[*fileBody]) error {
		for _, name := range dir.Names() {
			entry, _ := dir.Get(name)
			if entry.IsDir() {
				entries = append(entries, vfs.DirEntry{Name: name, Metadata: vfs.DirMetadata()})
				continue
			}
			body, _, _ := entry.Leaf()
			body.mu.Lock()
			length := len(body.data)
			body.mu.Unlock()
			entries = append(entries, vfs.DirEntry{Name: name, Metadata: vfs.FileMetadata(uint64(length))})
		}
		return nil
	})
	return entries, wrapErr("readdir", path, err)
}

func (f *FS) RemoveDir(path string) error {
	parent, name, isRoot := splitParentChild(path)
	if isRoot {
		return wrapErr("rmdir", path, vfs.ErrUnsupported)
	}
	err := f.tree.WithDirectory(parent, func(dir *vfstree.Directory[*fileBody]) error {
		entry, ok := dir.Get(name)
		if !ok || !entry.IsDir() {
			return vfs.ErrNotFound
		}
		dir.Remove(name)
		return nil
	})
	return wrapErr("rmdir", path, err)
}

func (f *FS) RemoveFile(path string) error {
	parent, name, isRoot := splitParentChild(path)
	if isRoot {
		return wrapErr("remove", path, vfs.ErrNotFound)
	}
	err := f.tree.WithDirectory(parent, func(dir *vfstree.Directory[*fileBody]) error {
		entry, ok := dir.Get(name)
		if !ok || entry.IsDir() {
			return vfs.ErrNotFound
		}
		dir.Remove(name)
		return nil
	})
	return wrapErr("remove", path, err)
}
