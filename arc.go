// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import (
	"io"
	"os"

	"golang.org/x/xerrors"
)

// Arc is an opened data.arc archive: its container header, the parsed
// FileSystem tables, and a mutex-guarded handle onto the backing file
// for on-demand payload reads.
type Arc struct {
	header *archiveHeader
	fs     *FileSystem
	reader *lockedReader
}

// Open opens the archive at path and parses its FileSystem tables. The
// returned Arc owns the file handle; call Close when done.
func Open(path string) (*Arc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("open %s: %w", path, err)
	}
	a, err := FromReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return a, nil
}

// FromReader parses an archive already available through r, taking
// ownership of it: if r implements io.Closer, Close closes it too.
func FromReader(r SeekReaderAt) (*Arc, error) {
	lr := newLockedReader(r)

	var hdr *archiveHeader
	var fs *FileSystem

	err := lr.withReaderAt(0, func(rd io.Reader) error {
		h, err := readArchiveHeader(rd)
		if err != nil {
			return err
		}
		hdr = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = lr.withReaderAt(int64(hdr.FsBlobOffset), func(rd io.Reader) error {
		blobHdr, err := readCompBlobHeader(rd)
		if err != nil {
			return err
		}
		decompressed, err := zstdCopyDecode(rd, int(blobHdr.CompSize), int(blobHdr.DecompSize))
		if err != nil {
			return xerrors.Errorf("decode filesystem blob: %w", err)
		}
		parsed, err := parseFileSystem(decompressed)
		if err != nil {
			return err
		}
		fs = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Arc{header: hdr, fs: fs, reader: lr}, nil
}

// Close releases the backing reader, if it is closeable.
func (a *Arc) Close() error {
	return a.reader.close()
}

// FileSystem exposes the archive's parsed tables for callers that need
// direct table access beyond the lookup helpers (e.g. building a
// directory tree).
func (a *Arc) FileSystem() *FileSystem {
	return a.fs
}
