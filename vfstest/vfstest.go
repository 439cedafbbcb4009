// Package vfstest provides a conformance suite that any
// [lesiw.io/vfs.FileSystem] implementation can run against itself.
package vfstest

import (
	"errors"
	"testing"

	"lesiw.io/vfs"
)

// config holds the options a backend's conformance run can set.
type config struct {
	readOnly        bool
	caseInsensitive bool
}

// Option configures [TestFS].
type Option func(*config)

// ReadOnly skips every test that mutates the filesystem, for backends like
// zipfs and tarfs that only support reading.
func ReadOnly() Option {
	return func(c *config) { c.readOnly = true }
}

// CaseInsensitive marks a backend whose lookups fold case, such as a zipfs
// opened with zipfs.CaseInsensitiveFallback. Together with [ReadOnly] it
// adds one more subtest that checks a missing path still reports
// [lesiw.io/vfs.ErrNotFound]; it relaxes no other assertion, and without
// ReadOnly it has no effect.
func CaseInsensitive() Option {
	return func(c *config) { c.caseInsensitive = true }
}

// TestFS runs the conformance suite, calling new once per subtest to get a
// fresh filesystem to run it against. new must not be nil, read-only
// backends included.
//
//	func TestMyFS(t *testing.T) {
//	    vfstest.TestFS(t, func() vfs.FileSystem { return myfs.New() })
//	}
func TestFS(t *testing.T, new func() vfs.FileSystem, opts ...Option) {
	t.Helper()
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	t.Run("RootExists", func(t *testing.T) { testRootExists(t, new()) })
	t.Run("MetadataNotFound", func(t *testing.T) { testMetadataNotFound(t, new()) })
	t.Run("OpenMissingNotFound", func(t *testing.T) { testOpenMissingNotFound(t, new()) })

	if cfg.readOnly {
		t.Run("WritesUnsupported", func(t *testing.T) { testWritesUnsupported(t, new()) })
		if cfg.caseInsensitive {
			t.Run("MetadataNotFoundIgnoresCaseInsensitivity", func(t *testing.T) {
				testMetadataNotFound(t, new())
			})
		}
		return
	}

	t.Run("CreateAndReadFile", func(t *testing.T) { testCreateAndReadFile(t, new()) })
	t.Run("CreateDirAndList", func(t *testing.T) { testCreateDirAndList(t, new()) })
	t.Run("CreateDirAllNested", func(t *testing.T) { testCreateDirAllNested(t, new()) })
	t.Run("RemoveFile", func(t *testing.T) { testRemoveFile(t, new()) })
	t.Run("RemoveDir", func(t *testing.T) { testRemoveDir(t, new()) })
	t.Run("TruncateOnCreate", func(t *testing.T) { testTruncateOnCreate(t, new()) })
}

func testRootExists(t *testing.T, fsys vfs.FileSystem) {
	t.Helper()
	md, err := fsys.Metadata("")
	if err != nil {
		t.Fatalf("Metadata(\"\"): %v", err)
	}
	if !md.IsDir() {
		t.Fatalf("Metadata(\"\") = %+v, want directory", md)
	}
}

func testMetadataNotFound(t *testing.T, fsys vfs.FileSystem) {
	t.Helper()
	_, err := fsys.Metadata("does/not/exist")
	if !errors.Is(err, vfs.ErrNotFound) {
		t.Fatalf("Metadata(missing) = %v, want ErrNotFound", err)
	}
}

func testOpenMissingNotFound(t *testing.T, fsys vfs.FileSystem) {
	t.Helper()
	_, err := vfs.OpenFile(fsys, "does/not/exist")
	if !errors.Is(err, vfs.ErrNotFound) {
		t.Fatalf("OpenFile(missing) = %v, want ErrNotFound", err)
	}
}

func testWritesUnsupported(t *testing.T, fsys vfs.FileSystem) {
	t.Helper()
	if err := fsys.CreateDir("newdir"); !errors.Is(err, vfs.ErrUnsupported) {
		t.Errorf("CreateDir = %v, want ErrUnsupported", err)
	}
	if err := fsys.RemoveDir("anydir"); !errors.Is(err, vfs.ErrUnsupported) {
		t.Errorf("RemoveDir = %v, want ErrUnsupported", err)
	}
	if err := fsys.RemoveFile("anyfile"); !errors.Is(err, vfs.ErrUnsupported) {
		t.Errorf("RemoveFile = %v, want ErrUnsupported", err)
	}
}

func testCreateAndReadFile(t *testing.T, fsys vfs.FileSystem) {
	t.Helper()
	f, err := vfs.CreateFile(fsys, "greeting.txt")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if _, err := f.Write([]byte("hello, vfs")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rf, err := vfs.OpenFile(fsys, "greeting.txt")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	got, err := vfs.ReadAllString(rf)
	if err != nil {
		t.Fatalf("ReadAllString: %v", err)
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got != "hello, vfs" {
		t.Fatalf("got %q, want %q", got, "hello, vfs")
	}
}

func testCreateDirAndList(t *testing.T, fsys vfs.FileSystem) {
	t.Helper()
	if err := fsys.CreateDir("dir"); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}
	entries, err := fsys.ReadDir("")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	found := false
	for _, e := range entries {
		if e.Name == "dir" && e.Metadata.IsDir() {
			found = true
		}
	}
	if !found {
		t.Fatalf("ReadDir = %v, want an entry named dir", entries)
	}
}

func testCreateDirAllNested(t *testing.T, fsys vfs.FileSystem) {
	t.Helper()
	if err := vfs.CreateDirAll(fsys, "a/b/c"); err != nil {
		t.Fatalf("CreateDirAll: %v", err)
	}
	if ok, err := vfs.Exists(fsys, "a/b/c"); err != nil || !ok {
		t.Fatalf("Exists(a/b/c) = %v, %v", ok, err)
	}
	if err := vfs.CreateDirAll(fsys, "a/b/c"); err != nil {
		t.Fatalf("CreateDirAll repeated: %v", err)
	}
}

func testRemoveFile(t *testing.T, fsys vfs.FileSystem) {
	t.Helper()
	if _, err := vfs.CreateFile(fsys, "gone.txt"); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if err := fsys.RemoveFile("gone.txt"); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if ok, _ := vfs.Exists(fsys, "gone.txt"); ok {
		t.Fatal("file still exists after RemoveFile")
	}
}

func testRemoveDir(t *testing.T, fsys vfs.FileSystem) {
	t.Helper()
	if err := fsys.CreateDir("emptydir"); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}
	if err := fsys.RemoveDir("emptydir"); err != nil {
		t.Fatalf("RemoveDir: %v", err)
	}
	if ok, _ := vfs.Exists(fsys, "emptydir"); ok {
		t.Fatal("directory still exists after RemoveDir")
	}
}

func testTruncateOnCreate(t *testing.T, fsys vfs.FileSystem) {
	t.Helper()
	f, err := vfs.CreateFile(fsys, "trunc.txt")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if _, err := f.Write([]byte("long contents")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err = vfs.CreateFile(fsys, "trunc.txt")
	if err != nil {
		t.Fatalf("CreateFile (again): %v", err)
	}
	if _, err := f.Write([]byte("hi")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rf, err := vfs.OpenFile(fsys, "trunc.txt")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	got, err := vfs.ReadAllString(rf)
	if err != nil {
		t.Fatalf("ReadAllString: %v", err)
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got != "hi" {
		t.Fatalf("got %q, want hi (truncated)", got)
	}
}
