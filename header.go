// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import (
	"encoding/binary"
	"io"

	"golang.org/x/xerrors"
)

// archiveMagic is the 8-byte magic at offset 0 of the container.
const archiveMagic = 0xABCDEF9876543210

// compBlobMagic precedes the zstd-compressed FileSystem blob.
const compBlobMagic = 0x10

// archiveHeader is the root container header: magic, the three section
// offsets, the offset of the compressed FileSystem blob, and the
// patch-section offset. All fields are little-endian u64.
type archiveHeader struct {
	Magic               uint64
	StreamSectionOffset uint64
	FileSectionOffset   uint64
	SharedSectionOffset uint64
	FsBlobOffset        uint64
	PatchSectionOffset  uint64
}

const archiveHeaderSize = 8 * 6

func readArchiveHeader(r io.Reader) (*archiveHeader, error) {
	h := &archiveHeader{}
	if err := binary.Read(r, binary.LittleEndian, h); err != nil {
		return nil, xerrors.Errorf("read archive header: %w", err)
	}
	if h.Magic != archiveMagic {
		return nil, xerrors.Errorf("%w: bad magic 0x%016X", ErrMalformedArchive, h.Magic)
	}
	return h, nil
}

// compBlobHeader precedes the zstd-compressed FileSystem: magic 0x10,
// then the decompressed size, compressed size, and section size.
type compBlobHeader struct {
	Magic       uint32
	DecompSize  uint32
	CompSize    uint32
	SectionSize uint32
}

func readCompBlobHeader(r io.Reader) (*compBlobHeader, error) {
	h := &compBlobHeader{}
	if err := binary.Read(r, binary.LittleEndian, h); err != nil {
		return nil, xerrors.Errorf("read comp blob header: %w", err)
	}
	if h.Magic != compBlobMagic {
		return nil, xerrors.Errorf("%w: bad comp blob magic 0x%X", ErrMalformedArchive, h.Magic)
	}
	return h, nil
}

// fileSystemHeader drives the sizing of every table in the decompressed
// FileSystem blob. unk1_10/unk2_10/padding/padding2/version/unk are
// observed as 0x10/zero in practice but are never validated: a
// non-canonical value here must not fail parsing (see SPEC_FULL.md §9).
type fileSystemHeader struct {
	TableFileSize          uint32
	FileInfoPathCount      uint32
	FileInfoIndexCount     uint32
	FolderCount            uint32
	FolderOffsetCount1     uint32
	HashFolderCount        uint32
	FileInfoCount          uint32
	FileInfoSubIndexCount  uint32
	FileDataCount          uint32
	FolderOffsetCount2     uint32
	FileDataCount2         uint32
	Padding                uint32
	Unk1_10                uint32
	Unk2_10                uint32
	RegionalCount1         uint8
	RegionalCount2         uint8
	Padding2               uint16
	Version                uint32
	ExtraFolder            uint32
	ExtraCount             uint32
	Unk                    [2]uint32
	ExtraCount2            uint32
	ExtraSubCount          uint32
}

func readFileSystemHeader(r io.Reader) (*fileSystemHeader, error) {
	h := &fileSystemHeader{}
	if err := binary.Read(r, binary.LittleEndian, h); err != nil {
		return nil, xerrors.Errorf("read filesystem header: %w", err)
	}
	return h, nil
}

// streamHeader sizes the four stream sub-tables.
type streamHeader struct {
	QuickDirCount          uint32
	StreamHashCount        uint32
	StreamFileIndexCount   uint32
	StreamOffsetEntryCount uint32
}

func readStreamHeader(r io.Reader) (*streamHeader, error) {
	h := &streamHeader{}
	if err := binary.Read(r, binary.LittleEndian, h); err != nil {
		return nil, xerrors.Errorf("read stream header: %w", err)
	}
	return h, nil
}
