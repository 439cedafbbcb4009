package vfs_test

import (
	"testing"

	"lesiw.io/vfs"
)

func TestFileTypeString(t *testing.T) {
	for _, tt := range []struct {
		ft   vfs.FileType
		want string
	}{
		{vfs.Directory, "directory"},
		{vfs.RegularFile, "file"},
		{vfs.Unknown, "unknown"},
	} {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.ft, got, tt.want)
		}
	}
}

func TestMetadataIsDirIsFile(t *testing.T) {
	dir := vfs.DirMetadata()
	if !dir.IsDir() || dir.IsFile() {
		t.Errorf("DirMetadata() = %+v, want IsDir true, IsFile false", dir)
	}

	file := vfs.FileMetadata(42)
	if file.IsDir() || !file.IsFile() {
		t.Errorf("FileMetadata(42) = %+v, want IsDir false, IsFile true", file)
	}
	if file.Len != 42 {
		t.Errorf("FileMetadata(42).Len = %d, want 42", file.Len)
	}
}

func TestDefaultOpenOptionsIsReadOnly(t *testing.T) {
	opts := vfs.DefaultOpenOptions()
	if !opts.Read {
		t.Error("DefaultOpenOptions().Read = false, want true")
	}
	if opts.Write || opts.Append || opts.Truncate || opts.Create {
		t.Errorf("DefaultOpenOptions() = %+v, want only Read set", opts)
	}
}

func TestWithAppendImpliesWrite(t *testing.T) {
	opts := vfs.DefaultOpenOptions().WithAppend(true)
	if !opts.Write || !opts.Append {
		t.Errorf("WithAppend(true) = %+v, want Write and Append set", opts)
	}
}

func TestWithTruncateImpliesWrite(t *testing.T) {
	opts := vfs.DefaultOpenOptions().WithTruncate(true)
	if !opts.Write || !opts.Truncate {
		t.Errorf("WithTruncate(true) = %+v, want Write and Truncate set", opts)
	}
}

func TestAppendAndTruncateAreMutuallyExclusive(t *testing.T) {
	opts := vfs.DefaultOpenOptions().WithAppend(true).WithTruncate(true)
	if opts.Append {
		t.Error("WithTruncate(true) after WithAppend(true) left Append set")
	}
	if !opts.Truncate {
		t.Error("WithTruncate(true) after WithAppend(true) did not set Truncate")
	}

	opts = vfs.DefaultOpenOptions().WithTruncate(true).WithAppend(true)
	if opts.Truncate {
		t.Error("WithAppend(true) after WithTruncate(true) left Truncate set")
	}
	if !opts.Append {
		t.Error("WithAppend(true) after WithTruncate(true) did not set Append")
	}
}

func TestWithCreateAlwaysAssignsArgument(t *testing.T) {
	opts := vfs.DefaultOpenOptions().WithCreate(true)
	if !opts.Create || !opts.Write {
		t.Errorf("WithCreate(true) = %+v, want Create and Write set", opts)
	}

	// Setting create back to false must actually clear it, not just leave
	// it true because Write was already set.
	opts = opts.WithCreate(false)
	if opts.Create {
		t.Error("WithCreate(false) left Create set")
	}
}
