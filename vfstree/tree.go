// Package vfstree implements the generic, mutex-guarded directory tree
// shared by the backends that need one: memfs keys its tree on file bodies,
// mountfs keys its tree on mounted sub-filesystems.
//
// A FilesystemTree holds one node per path component under a single lock,
// taken for the duration of the caller's callback and never released mid-
// traversal. The lock is exposed through CreateDirAll, WithDirectory, and
// WithEntry so a caller can make several tree mutations atomically instead
// of re-acquiring it per operation.
package vfstree

import (
	"sync"

	"lesiw.io/vfs"
	"lesiw.io/vfs/vfspath"
)

// node is either a directory (children non-nil) or a leaf holding a T.
type node[T any] struct {
	children map[string]*node[T]
	value    T
}

func newDirNode[T any]() *node[T] {
	return &node[T]{children: make(map[string]*node[T])}
}

func (n *node[T]) isDir() bool { return n.children != nil }

// FilesystemTree is a generic tree of directories and leaves of type T,
// guarded by a single mutex.
type FilesystemTree[T any] struct {
	mu   sync.Mutex
	root *node[T]
}

// New returns an empty FilesystemTree whose root is a directory.
func New[T any]() *FilesystemTree[T] {
	return &FilesystemTree[T]{root: newDirNode[T]()}
}

// CreateDirAll creates every directory named by path, including the
// trailing component, then calls f with the resulting directory.
//
// Specialized rather than built from repeated WithDirectory calls, so
// creating a deep path doesn't re-walk its prefix at every level.
func (t *FilesystemTree[T]) CreateDirAll(path string, f func(*Directory[T]) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.root
	for _, component := range vfspath.ComponentIter(path) {
		if !n.isDir() {
			return vfs.ErrNotFound
		}
		child, ok := n.children[component]
		if !ok {
			child = newDirNode[T]()
			n.children[component] = child
		}
		n = child
	}
	if !n.isDir() {
		return vfs.ErrNotFound
	}
	return f(&Directory[T]{node: n})
}

// WithDirectory calls f with the directory at path. It fails with
// [vfs.ErrNotFound] if path doesn't resolve to a directory.
func (t *FilesystemTree[T]) WithDirectory(path string, f func(*Directory[T]) error) error {
	return t.WithEntry(path, func(e EntryView[T]) error {
		dir, ok := e.Directory()
		if !ok {
			return vfs.ErrNotFound
		}
		return f(dir)
	})
}

// WithEntry calls f with a view of the entry at path.
//
// If traversal reaches a leaf before path is fully consumed, f is still
// called — with a view over that leaf and the unconsumed remainder of
// path — rather than failing. mountfs relies on this to route a path that
// descends into a mounted sub-filesystem: the mount point is a leaf, and
// everything past it is the remainder handed to that sub-filesystem.
func (t *FilesystemTree[T]) WithEntry(path string, f func(EntryView[T]) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	components := vfspath.ComponentIter(path)
	n := t.root
	for i, component := range components {
		if !n.isDir() {
			return f(EntryView[T]{
				hasLeaf:   true,
				value:     n.value,
				remainder: vfspath.Join(components[i:]...),
			})
		}
		child, ok := n.children[component]
		if !ok {
			return vfs.ErrNotFound
		}
		n = child
	}
	if n.isDir() {
		return f(EntryView[T]{dir: &Directory[T]{node: n}})
	}
	return f(EntryView[T]{hasLeaf: true, value: n.value})
}

// Directory is a mutable view of one directory node in a FilesystemTree,
// valid only for the duration of the callback it was handed to.
type Directory[T any] struct {
	node *node[T]
}

// Names returns the directory's immediate child names, in no particular
// order.
func (d *Directory[T]) Names() []string {
	names := make([]string, 0, len(d.node.children))
	for name := range d.node.children {
		names = append(names, name)
	}
	return names
}

// Get returns a view of the child named name.
func (d *Directory[T]) Get(name string) (EntryView[T], bool) {
	child, ok := d.node.children[name]
	if !ok {
		return EntryView[T]{}, false
	}
	if child.isDir() {
		return EntryView[T]{dir: &Directory[T]{node: child}}, true
	}
	return EntryView[T]{hasLeaf: true, value: child.value}, true
}

// MakeDir creates an empty subdirectory named name, failing with
// [vfs.ErrAlreadyExists] if an entry of either kind already occupies that
// name.
func (d *Directory[T]) MakeDir(name string) error {
	if _, exists := d.node.children[name]; exists {
		return vfs.ErrAlreadyExists
	}
	d.node.children[name] = newDirNode[T]()
	return nil
}

// SetLeaf sets name to a leaf holding value, failing with
// [vfs.ErrAlreadyExists] if an entry of either kind already occupies that
// name.
func (d *Directory[T]) SetLeaf(name string, value T) error {
	if _, exists := d.node.children[name]; exists {
		return vfs.ErrAlreadyExists
	}
	d.node.children[name] = &node[T]{value: value}
	return nil
}

// Remove deletes the child named name, reporting whether one existed.
func (d *Directory[T]) Remove(name string) bool {
	if _, exists := d.node.children[name]; !exists {
		return false
	}
	delete(d.node.children, name)
	return true
}

// EntryView is an immutable view of one entry reached by [FilesystemTree.WithEntry].
type EntryView[T any] struct {
	dir       *Directory[T]
	hasLeaf   bool
	value     T
	remainder string
}

// IsDir reports whether the view is over a directory.
func (e EntryView[T]) IsDir() bool { return e.dir != nil }

// Directory returns the view's directory and true, or the zero value and
// false if the view is over a leaf.
func (e EntryView[T]) Directory() (*Directory[T], bool) {
	return e.dir, e.dir != nil
}

// Leaf returns the view's leaf value, the unconsumed remainder of the
// lookup path (empty if the leaf was the exact target), and true — or the
// zero value and false if the view is over a directory.
func (e EntryView[T]) Leaf() (value T, remainder string, ok bool) {
	return e.value, e.remainder, e.hasLeaf
}
