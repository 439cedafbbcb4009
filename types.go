// Package vfs provides a filesystem abstraction over heterogeneous backends:
// a physical directory, an in-memory tree, a ZIP archive, a tarball, a
// read-only union of filesystems, and a mountable composite.
//
// Package vfs follows io/fs's philosophy of a minimal core interface, but
// unlike io/fs it requires every backend to implement the full read/write
// contract: create, stat, open, list, remove directory, remove file.
// Backends that can't honor part of that contract (a read-only archive, a
// union of layers, a mount composite) fail those calls with
// [ErrUnsupported] rather than omitting the method.
//
// # Paths
//
// Paths are forward-slash-separated strings. The memory, archive, union,
// and mount backends normalize each path with the [lesiw.io/vfs/vfspath]
// subpackage: leading slashes and backslashes are trimmed, ".." components
// cancel the preceding component without ever escaping the synthetic root,
// and backslashes are treated as separators. The empty path, ".", and "/"
// all denote the root directory. [lesiw.io/vfs/physicalfs] only trims
// leading separators and joins the rest onto its host root with
// path/filepath, so ".." is resolved against the host directory and can
// leave the root under the unrestricted resolver.
//
// # Backends
//
//   - [lesiw.io/vfs/memfs] — a writable, in-memory tree of byte buffers.
//   - [lesiw.io/vfs/physicalfs] — a thin adapter over the host filesystem,
//     with an optional sandboxed path resolver.
//   - [lesiw.io/vfs/zipfs] — a read-only view over a ZIP archive.
//   - [lesiw.io/vfs/tarfs] — a read-only view materialized from a tarball.
//   - [lesiw.io/vfs/unionfs] — an ordered, read-only union of layers.
//   - [lesiw.io/vfs/mountfs] — a composite that routes into mounted
//     sub-filesystems by path prefix.
//
// # Testing
//
// [lesiw.io/vfs/vfstest] provides a conformance suite for implementations:
//
//	func TestMyFS(t *testing.T) {
//	    vfstest.TestFS(t, func() vfs.FileSystem { return myfs.New() })
//	}
package vfs

// FileType classifies a filesystem entry.
type FileType int

const (
	// Unknown entries are neither directories nor regular files — the
	// host filesystem's device files, FIFOs, and sockets all map here.
	Unknown FileType = iota
	// Directory entries hold other entries.
	Directory
	// RegularFile entries hold bytes.
	RegularFile
)

// String returns a human-readable name for the file type.
func (t FileType) String() string {
	switch t {
	case Directory:
		return "directory"
	case RegularFile:
		return "file"
	default:
		return "unknown"
	}
}

// Metadata describes a filesystem entry's type and size.
//
// Directories always report Len == 0. Non-regular host entries are mapped
// to [Unknown] rather than reporting a misleading length.
type Metadata struct {
	Type FileType
	Len  uint64
}

// DirMetadata returns the metadata for a directory.
func DirMetadata() Metadata { return Metadata{Type: Directory} }

// FileMetadata returns the metadata for a file of the given length.
func FileMetadata(length uint64) Metadata { return Metadata{Type: RegularFile, Len: length} }

// IsDir reports whether the entry is a directory.
func (m Metadata) IsDir() bool { return m.Type == Directory }

// IsFile reports whether the entry is a regular file.
func (m Metadata) IsFile() bool { return m.Type == RegularFile }

// DirEntry is one entry returned by [FileSystem.ReadDir].
//
// Name is the leaf name only — the final path component inside the listed
// directory — never a full path.
type DirEntry struct {
	Name     string
	Metadata Metadata
}

// OpenOptions configures [FileSystem.OpenFileOptions].
//
// [DefaultOpenOptions] is read-only: Read is true and every other field is
// false. The zero value has every field false, Read included. Use the
// With* builders, which enforce the invariants
// that toggling Append, Truncate, or Create to true forces Write to true,
// and that Append and Truncate are mutually exclusive.
type OpenOptions struct {
	Read     bool
	Write    bool
	Append   bool
	Truncate bool
	Create   bool
}

// DefaultOpenOptions returns the read-only default: Read=true, all else false.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{Read: true}
}

// WithRead sets whether the file may be read.
func (o OpenOptions) WithRead(read bool) OpenOptions {
	o.Read = read
	return o
}

// WithWrite sets whether the file may be written.
func (o OpenOptions) WithWrite(write bool) OpenOptions {
	o.Write = write
	return o
}

// WithAppend sets whether writes are positioned at the end of the file.
// Setting append to true implies Write=true and clears Truncate.
func (o OpenOptions) WithAppend(append bool) OpenOptions {
	if append {
		o.Write = true
		o.Truncate = false
	}
	o.Append = append
	return o
}

// WithTruncate sets whether the file is cleared on open. Setting truncate
// to true implies Write=true and clears Append.
func (o OpenOptions) WithTruncate(truncate bool) OpenOptions {
	if truncate {
		o.Write = true
		o.Append = false
	}
	o.Truncate = truncate
	return o
}

// WithCreate sets whether the file is created if absent. Setting create to
// true implies Write=true. Setting create to false always clears it, even
// if Write remains set from an earlier call.
func (o OpenOptions) WithCreate(create bool) OpenOptions {
	if create {
		o.Write = true
	}
	o.Create = create
	return o
}
