// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import "encoding/binary"

// The records in this file are fixed-width, little-endian on disk, and
// pack sub-byte fields LSB-first. Rather than relying on Go struct
// layout (which has no portable bitfield support), each record is read
// as its raw bytes/words and exposes shift-and-mask accessors, the same
// way the teacher's archiveHeader composes a 64-bit table offset out of
// two raw 32-bit halves (format.go: getHashTableOffset64).

// HashToIndex bridges a Hash40 to a row index: hash:32, length:8, index:24,
// packed into 8 bytes (hash, then length, then the 24-bit index).
type HashToIndex struct {
	hash   uint32
	length uint8
	index  uint32 // only the low 24 bits are meaningful
}

const hashToIndexSize = 8

func readHashToIndex(b []byte) HashToIndex {
	_ = b[hashToIndexSize-1]
	idx := uint32(b[5]) | uint32(b[6])<<8 | uint32(b[7])<<16
	return HashToIndex{
		hash:   binary.LittleEndian.Uint32(b[0:4]),
		length: b[4],
		index:  idx,
	}
}

// Hash40 reconstructs the full Hash40 from the hash/length fields.
func (h HashToIndex) Hash40() Hash40 {
	return Hash40(uint64(h.hash) | (uint64(h.length) << 32))
}

// Index returns the 24-bit row index this entry points at.
func (h HashToIndex) Index() uint32 {
	return h.index
}

// QuickDir is a top-level stream directory: hash:32, name_length:8,
// count:24, then a trailing plain u32 index. 12 bytes.
type QuickDir struct {
	hash       uint32
	nameLength uint8
	count      uint32 // low 24 bits
	Index      uint32
}

const quickDirSize = 12

func readQuickDir(b []byte) QuickDir {
	_ = b[quickDirSize-1]
	count := uint32(b[5]) | uint32(b[6])<<8 | uint32(b[7])<<16
	return QuickDir{
		hash:       binary.LittleEndian.Uint32(b[0:4]),
		nameLength: b[4],
		count:      count,
		Index:      binary.LittleEndian.Uint32(b[8:12]),
	}
}

// Hash40 reconstructs the full Hash40 of this directory's path.
func (q QuickDir) Hash40() Hash40 {
	return Hash40(uint64(q.hash) | (uint64(q.nameLength) << 32))
}

// Count returns the number of stream entries under this directory.
func (q QuickDir) Count() uint32 {
	return q.count
}

// StreamEntry is a stream hash row: hash:32, name_length:8, index:24,
// flags:32. 12 bytes.
type StreamEntry struct {
	hash       uint32
	nameLength uint8
	index      uint32 // low 24 bits
	Flags      uint32
}

const streamEntrySize = 12

func readStreamEntry(b []byte) StreamEntry {
	_ = b[streamEntrySize-1]
	idx := uint32(b[5]) | uint32(b[6])<<8 | uint32(b[7])<<16
	return StreamEntry{
		hash:       binary.LittleEndian.Uint32(b[0:4]),
		nameLength: b[4],
		index:      idx,
		Flags:      binary.LittleEndian.Uint32(b[8:12]),
	}
}

// Hash40 reconstructs the full Hash40 this entry was hashed from.
func (s StreamEntry) Hash40() Hash40 {
	return Hash40(uint64(s.hash) | (uint64(s.nameLength) << 32))
}

// Index returns the index into stream_file_indices for this entry.
func (s StreamEntry) Index() uint32 {
	return s.index
}

// fileInfoToFileDataBitfield packs file_info_idx:24, load_type:8 into a
// single little-endian u32.
type fileInfoToFileDataBitfield uint32

func (f fileInfoToFileDataBitfield) fileInfoIdx() uint32 {
	return uint32(f) & 0x00FFFFFF
}

func (f fileInfoToFileDataBitfield) loadType() uint8 {
	return uint8(f >> 24)
}

// FileInfoFlags are the per-file descriptor flag bits.
type FileInfoFlags uint32

// IsRedirect reports whether the file is a redirect to another file.
func (f FileInfoFlags) IsRedirect() bool { return f&(1<<4) != 0 }

// IsRegional reports whether the file's payload varies by region.
func (f FileInfoFlags) IsRegional() bool { return f&(1<<15) != 0 }

// IsLocalized reports whether the file's payload varies by language.
func (f FileInfoFlags) IsLocalized() bool { return f&(1<<16) != 0 }

// FileDataFlags describe how a FileData's payload is stored.
type FileDataFlags uint32

// Compressed reports whether the payload is compressed at all.
func (f FileDataFlags) Compressed() bool { return f&(1<<0) != 0 }

// UseZstd reports whether the compressed payload uses zstd. Per the
// format's invariant, compressed-but-not-zstd payloads cannot be read.
func (f FileDataFlags) UseZstd() bool { return f&(1<<1) != 0 }

// DirInfoFlags describe directory redirection.
type DirInfoFlags uint32

// Redirected reports whether this directory's storage lives at a
// separate DirectoryOffset entry.
func (f DirInfoFlags) Redirected() bool { return f&(1<<26) != 0 }

// IsSymlink reports whether this directory is itself a symlink to
// another DirInfo.
func (f DirInfoFlags) IsSymlink() bool { return f&(1<<28) != 0 }
