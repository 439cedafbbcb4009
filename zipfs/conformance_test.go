package zipfs_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"lesiw.io/vfs"
	"lesiw.io/vfs/vfstest"
	"lesiw.io/vfs/zipfs"
)

func TestConformance(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("seed")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("seed")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data := buf.Bytes()

	vfstest.TestFS(t, func() vfs.FileSystem {
		fsys, err := zipfs.New(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return fsys
	}, vfstest.ReadOnly())
}
