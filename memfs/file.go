package memfs

import (
	"io"

	"lesiw.io/vfs"
)

// fileHandle is the handle [FS.OpenFileOptions] returns. It holds
// body.mu locked from construction until Close.
type fileHandle struct {
	body   *fileBody
	opts   vfs.OpenOptions
	pos    int
	path   string
	closed bool
}

func (h *fileHandle) Read(p []byte) (int, error) {
	if !h.opts.Read {
		return 0, wrapErr("read", h.path, vfs.ErrUnsupported)
	}
	if h.pos >= len(h.body.data) {
		return 0, io.EOF
	}
	n := copy(p, h.body.data[h.pos:])
	h.pos += n
	return n, nil
}

func (h *fileHandle) Write(p []byte) (int, error) {
	if !h.opts.Write {
		return 0, wrapErr("write", h.path, vfs.ErrUnsupported)
	}
	pos := min(h.pos, len(h.body.data))
	needed := pos + len(p)
	if needed > len(h.body.data) {
		grown := make([]byte, needed)
		copy(grown, h.body.data)
		h.body.data = grown
	}
	copy(h.body.data[pos:needed], p)
	h.pos = needed
	return len(p), nil
}

func (h *fileHandle) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = int64(h.pos)
	case io.SeekEnd:
		base = int64(len(h.body.data))
	default:
		return 0, wrapErr("seek", h.path, vfs.ErrInvalidInput)
	}
	pos := base + offset
	if pos < 0 {
		return 0, wrapErr("seek", h.path, vfs.ErrInvalidInput)
	}
	h.pos = int(pos)
	return pos, nil
}

func (h *fileHandle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.body.mu.Unlock()
	return nil
}

func (h *fileHandle) Metadata() (vfs.Metadata, error) {
	return vfs.FileMetadata(uint64(len(h.body.data))), nil
}
