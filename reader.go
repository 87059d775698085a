// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import (
	"io"
	"sync"

	"golang.org/x/xerrors"
)

// SeekReaderAt is the capability a backing archive reader must provide:
// random access plus sequential reads from wherever Seek last landed.
type SeekReaderAt interface {
	io.Reader
	io.Seeker
}

// lockedReader serializes access to a single shared backing reader, the
// same way the teacher guards its file handle across ExtractFile calls
// that may run from multiple goroutines.
type lockedReader struct {
	mu sync.Mutex
	r  SeekReaderAt
}

func newLockedReader(r SeekReaderAt) *lockedReader {
	return &lockedReader{r: r}
}

// readAt seeks to offset and reads exactly len(p) bytes under the lock.
func (l *lockedReader) readAt(offset int64, p []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.r.Seek(offset, io.SeekStart); err != nil {
		return xerrors.Errorf("seek to 0x%X: %w", offset, err)
	}
	if _, err := io.ReadFull(l.r, p); err != nil {
		return xerrors.Errorf("read at 0x%X: %w", offset, err)
	}
	return nil
}

// withReaderAt seeks to offset and calls fn with the backing reader
// positioned there, holding the lock for the duration of fn. Used where the caller needs to
// stream an unknown number of bytes (e.g. zstd decoding straight off
// the backing reader) rather than into a fixed-size buffer.
func (l *lockedReader) withReaderAt(offset int64, fn func(io.Reader) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.r.Seek(offset, io.SeekStart); err != nil {
		return xerrors.Errorf("seek to 0x%X: %w", offset, err)
	}
	return fn(l.r)
}

func (l *lockedReader) close() error {
	if c, ok := l.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
