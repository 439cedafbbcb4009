// Package unionfs implements [lesiw.io/vfs.FileSystem] as a read-only,
// ordered union of layers — the first layer with an answer for a given
// path wins for metadata and open, while directory listings concatenate
// every layer's entries without deduplication.
//
// This is the read-only simplification of an overlay filesystem: no
// whiteout files, no write layer, just first-match lookups across a
// fixed stack of layers.
package unionfs

import (
	"errors"

	"lesiw.io/vfs"
)

// New returns a union of layers, consulted in order: the first layer that
// can answer a given path wins for [vfs.FileSystem.Metadata] and
// [vfs.FileSystem.OpenFileOptions]. [vfs.FileSystem.ReadDir] instead
// concatenates every layer's listing for a directory, skipping layers that
// don't have it, so the result reflects every layer's contents at once.
func New(layers ...vfs.FileSystem) vfs.FileSystem {
	return &FS{layers: layers}
}

// FS is a read-only union of layered [lesiw.io/vfs.FileSystem]s.
type FS struct {
	layers []vfs.FileSystem
}

func wrapErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &vfs.PathError{Op: op, Path: path, Err: err}
}

func (f *FS) CreateDir(path string) error {
	return wrapErr("mkdir", path, vfs.ErrUnsupported)
}

func (f *FS) Metadata(path string) (vfs.Metadata, error) {
	var md vfs.Metadata
	err := forEachLayer(f.layers, path, func(layer vfs.FileSystem, path string) error {
		var err error
		md, err = layer.Metadata(path)
		return err
	})
	return md, err
}

func (f *FS) OpenFileOptions(path string, opts vfs.OpenOptions) (vfs.File, error) {
	var file vfs.File
	err := forEachLayer(f.layers, path, func(layer vfs.FileSystem, path string) error {
		var err error
		file, err = layer.OpenFileOptions(path, opts)
		return err
	})
	return file, err
}

// forEachLayer calls op against each layer in order, returning the first
// success. A layer that fails with [vfs.ErrNotFound] is skipped; any other
// error is returned immediately. If every layer is exhausted without a
// success, forEachLayer reports [vfs.ErrNotFound].
func forEachLayer(layers []vfs.FileSystem, path string, op func(vfs.FileSystem, string) error) error {
	for _, layer := range layers {
		err := op(layer, path)
		if err == nil {
			return nil
		}
		if errors.Is(err, vfs.ErrNotFound) {
			continue
		}
		return err
	}
	return vfs.ErrNotFound
}

// ReadDir concatenates every layer's listing for path, in layer order,
// without deduplicating names that appear in more than one layer — a
// caller that wants shadowing semantics (a higher layer hiding a lower
// one's entry of the same name) must dedupe itself. A layer missing path
// entirely contributes nothing rather than failing the whole call; any
// other per-layer error aborts immediately. If every layer is missing
// path, ReadDir succeeds with an empty list rather than failing.
func (f *FS) ReadDir(path string) ([]vfs.DirEntry, error) {
	var entries []vfs.DirEntry
	for _, layer := range f.layers {
		layerEntries, err := layer.ReadDir(path)
		if err != nil {
			if errors.Is(err, vfs.ErrNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, layerEntries...)
	}
	return entries, nil
}

func (f *FS) RemoveDir(path string) error {
	return wrapErr("rmdir", path, vfs.ErrUnsupported)
}

func (f *FS) RemoveFile(path string) error {
	return wrapErr("remove", path, vfs.ErrUnsupported)
}
