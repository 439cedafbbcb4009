package memfs_test

import (
	"errors"
	"io"
	"sort"
	"testing"

	"lesiw.io/vfs"
	"lesiw.io/vfs/memfs"
)

func populated(t *testing.T) vfs.FileSystem {
	t.Helper()
	fsys := memfs.New()

	f, err := vfs.CreateFile(fsys, "file")
	if err != nil {
		t.Fatalf("CreateFile(file): %v", err)
	}
	if _, err := f.Write([]byte("something interesting")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := vfs.CreateDirAll(fsys, "folder/and/it/goes/deeper"); err != nil {
		t.Fatalf("CreateDirAll: %v", err)
	}
	f, err = vfs.CreateFile(fsys, "folder/and/it/goes/desc")
	if err != nil {
		t.Fatalf("CreateFile(desc): %v", err)
	}
	if _, err := f.Write([]byte("goes")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return fsys
}

func TestMetadata(t *testing.T) {
	fsys := populated(t)

	for _, name := range []string{"file", "/file", "./file", "test/../file"} {
		md, err := fsys.Metadata(name)
		if err != nil {
			t.Fatalf("Metadata(%q): %v", name, err)
		}
		if !md.IsFile() || md.Len != 21 {
			t.Errorf("Metadata(%q) = %+v, want file of length 21", name, md)
		}
	}

	for _, name := range []string{"folder", "/folder", "./folder", "test/../folder"} {
		md, err := fsys.Metadata(name)
		if err != nil {
			t.Fatalf("Metadata(%q): %v", name, err)
		}
		if !md.IsDir() {
			t.Errorf("Metadata(%q) = %+v, want directory", name, md)
		}
	}

	for _, name := range []string{
		"folder/and/it/goes/desc",
		"/folder/and/it/goes/desc",
		"./folder/and/it/goes/desc",
		"test/../folder/and/it/goes/desc",
	} {
		md, err := fsys.Metadata(name)
		if err != nil {
			t.Fatalf("Metadata(%q): %v", name, err)
		}
		if !md.IsFile() || md.Len != 4 {
			t.Errorf("Metadata(%q) = %+v, want file of length 4", name, md)
		}
	}
}

func readNames(t *testing.T, fsys vfs.FileSystem, dir string) []string {
	t.Helper()
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%q): %v", dir, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	sort.Strings(names)
	return names
}

func TestReadDir(t *testing.T) {
	fsys := populated(t)

	for _, name := range []string{"", "/", "./", "//", `\`} {
		got := readNames(t, fsys, name)
		want := []string{"file", "folder"}
		if !equal(got, want) {
			t.Errorf("ReadDir(%q) = %v, want %v", name, got, want)
		}
	}

	for _, name := range []string{
		"folder/and/it/goes",
		"/folder/and/it/goes",
		"./folder/and/it/goes/",
		"///folder/and/it/goes///",
		`\folder\and\it\goes\`,
	} {
		got := readNames(t, fsys, name)
		want := []string{"deeper", "desc"}
		if !equal(got, want) {
			t.Errorf("ReadDir(%q) = %v, want %v", name, got, want)
		}
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRemoveDir(t *testing.T) {
	fsys := populated(t)

	if ok, _ := vfs.Exists(fsys, "folder/and/it/goes"); !ok {
		t.Fatal("expected folder/and/it/goes to exist")
	}
	if err := fsys.RemoveDir("folder/and/it"); err != nil {
		t.Fatalf("RemoveDir: %v", err)
	}
	for _, name := range []string{"folder/and/it/goes", "folder/and/it", "folder/and/it/goes/desc"} {
		if ok, _ := vfs.Exists(fsys, name); ok {
			t.Errorf("%q still exists after RemoveDir", name)
		}
	}
}

func TestRemoveFile(t *testing.T) {
	fsys := populated(t)

	if err := fsys.RemoveFile("folder/and/it/goes/desc"); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if ok, _ := vfs.Exists(fsys, "folder/and/it/goes/deeper"); !ok {
		t.Error("sibling directory removed along with file")
	}
	if ok, _ := vfs.Exists(fsys, "folder/and/it/goes/desc"); ok {
		t.Error("file still exists after RemoveFile")
	}
}

func TestRemoveFileRejectsDirectory(t *testing.T) {
	fsys := populated(t)
	err := fsys.RemoveFile("folder")
	if !errors.Is(err, vfs.ErrNotFound) {
		t.Fatalf("RemoveFile(folder) = %v, want ErrNotFound", err)
	}
}

func TestRemoveDirRejectsFile(t *testing.T) {
	fsys := populated(t)
	err := fsys.RemoveDir("file")
	if !errors.Is(err, vfs.ErrNotFound) {
		t.Fatalf("RemoveDir(file) = %v, want ErrNotFound", err)
	}
}

func TestCreateDirAlreadyExists(t *testing.T) {
	fsys := memfs.New()
	if err := fsys.CreateDir("a"); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}
	err := fsys.CreateDir("a")
	if !errors.Is(err, vfs.ErrAlreadyExists) {
		t.Fatalf("CreateDir(a) again = %v, want ErrAlreadyExists", err)
	}
}

func TestOpenFileOptionsWithoutCreateFails(t *testing.T) {
	fsys := memfs.New()
	_, err := fsys.OpenFileOptions("missing", vfs.DefaultOpenOptions())
	if !errors.Is(err, vfs.ErrNotFound) {
		t.Fatalf("open missing without create = %v, want ErrNotFound", err)
	}
}

func TestAppendPositionsAtEnd(t *testing.T) {
	fsys := memfs.New()
	f, err := vfs.CreateFile(fsys, "log")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if _, err := f.Write([]byte("abc")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err = fsys.OpenFileOptions("log", vfs.DefaultOpenOptions().WithAppend(true))
	if err != nil {
		t.Fatalf("OpenFileOptions append: %v", err)
	}
	if _, err := f.Write([]byte("def")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rf := mustOpen(t, fsys, "log")
	got, err := vfs.ReadAllString(rf)
	if err != nil {
		t.Fatalf("ReadAllString: %v", err)
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got != "abcdef" {
		t.Fatalf("got %q, want abcdef", got)
	}
}

func TestWriteClipsCursorToLength(t *testing.T) {
	fsys := memfs.New()
	f, err := vfs.CreateFile(fsys, "f")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if _, err := f.Write([]byte("abc")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := f.Seek(10, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if _, err := f.Write([]byte("XY")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rf := mustOpen(t, fsys, "f")
	got, err := vfs.ReadAllString(rf)
	if err != nil {
		t.Fatalf("ReadAllString: %v", err)
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got != "abcXY" {
		t.Fatalf("got %q, want abcXY", got)
	}
}

func mustOpen(t *testing.T, fsys vfs.FileSystem, path string) vfs.File {
	t.Helper()
	f, err := vfs.OpenFile(fsys, path)
	if err != nil {
		t.Fatalf("OpenFile(%q): %v", path, err)
	}
	return f
}
