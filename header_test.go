// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestReadArchiveHeaderBadMagic(t *testing.T) {
	h := archiveHeader{Magic: 0xBADBADBADBADBAD0}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		t.Fatalf("write header: %v", err)
	}

	_, err := readArchiveHeader(&buf)
	if !errors.Is(err, ErrMalformedArchive) {
		t.Errorf("readArchiveHeader(bad magic) = %v, want ErrMalformedArchive", err)
	}
}

func TestReadArchiveHeaderRoundTrip(t *testing.T) {
	want := archiveHeader{
		Magic:               archiveMagic,
		StreamSectionOffset: 0x100,
		FileSectionOffset:   0x200,
		SharedSectionOffset: 0x300,
		FsBlobOffset:        0x400,
		PatchSectionOffset:  0x500,
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, want); err != nil {
		t.Fatalf("write header: %v", err)
	}

	got, err := readArchiveHeader(&buf)
	if err != nil {
		t.Fatalf("readArchiveHeader: %v", err)
	}
	if *got != want {
		t.Errorf("readArchiveHeader = %+v, want %+v", *got, want)
	}
}

func TestReadCompBlobHeaderBadMagic(t *testing.T) {
	h := compBlobHeader{Magic: 0xFF}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		t.Fatalf("write header: %v", err)
	}

	_, err := readCompBlobHeader(&buf)
	if !errors.Is(err, ErrMalformedArchive) {
		t.Errorf("readCompBlobHeader(bad magic) = %v, want ErrMalformedArchive", err)
	}
}

// TestStreamOnlyHashMiss checks that a hash present only in the stream
// listing (quick_dirs/stream_entries), never in file_hash_to_path_index,
// resolves via GetStreamListing and via GetFileContents' stream fallback,
// reading the payload verbatim from the backing reader.
func TestStreamOnlyHashMiss(t *testing.T) {
	streamHash := Hash40FromStr("stream:/sound/bgm/bgm_crs_result.nus3audio")
	dirHash := Hash40FromStr("stream:/sound/bgm")

	const offset = 0x5000
	const size = 1024

	fs := &FileSystem{
		QuickDirs: []QuickDir{
			{hash: dirHash.CRC32(), nameLength: dirHash.Len(), count: 1, Index: 0},
		},
		StreamEntries: []StreamEntry{
			{hash: streamHash.CRC32(), nameLength: streamHash.Len(), index: 0},
		},
		StreamFileIndices: []uint32{0},
		StreamDatas:       []StreamData{{Size: size, Offset: offset}},
	}

	backing := make([]byte, offset+size)
	want := bytes.Repeat([]byte{0xAB}, size)
	copy(backing[offset:], want)

	a := &Arc{
		fs:     fs,
		header: &archiveHeader{},
		reader: newLockedReader(bytes.NewReader(backing)),
	}

	got, err := a.GetFileContents(streamHash, RegionNone)
	if err != nil {
		t.Fatalf("GetFileContents(stream-only hash) = %v, want success", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("GetFileContents(stream-only hash) = %d bytes, want %d bytes matching stream payload", len(got), len(want))
	}

	meta, err := a.GetFileMetadata(streamHash, RegionNone)
	if err != nil {
		t.Fatalf("GetFileMetadata(stream-only hash): %v", err)
	}
	if !meta.IsStream || meta.Offset != offset || meta.CompSize != size || meta.DecompSize != size {
		t.Errorf("GetFileMetadata(stream-only hash) = %+v, want IsStream with Offset=%#x Size=%d", meta, offset, size)
	}

	listing, err := a.GetStreamListing(dirHash)
	if err != nil {
		t.Fatalf("GetStreamListing: %v", err)
	}
	if len(listing) != 1 || listing[0].Hash != streamHash || listing[0].Offset != 0x5000 {
		t.Errorf("GetStreamListing = %+v, want one entry for %s at 0x5000", listing, streamHash)
	}
}
