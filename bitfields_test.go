// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import (
	"encoding/binary"
	"testing"
)

func encodeHashToIndex(hash uint32, length uint8, index uint32) []byte {
	b := make([]byte, hashToIndexSize)
	binary.LittleEndian.PutUint32(b[0:4], hash)
	b[4] = length
	b[5] = byte(index)
	b[6] = byte(index >> 8)
	b[7] = byte(index >> 16)
	return b
}

func TestHashToIndexRoundTrip(t *testing.T) {
	tests := []struct {
		hash   uint32
		length uint8
		index  uint32
	}{
		{0x12345678, 42, 0},
		{0, 0, 0xFFFFFF},
		{0xDEADBEEF, 255, 0x00ABCD},
	}

	for _, test := range tests {
		b := encodeHashToIndex(test.hash, test.length, test.index)
		got := readHashToIndex(b)

		if got.Index() != test.index {
			t.Errorf("Index() = 0x%X, want 0x%X", got.Index(), test.index)
		}
		wantHash := Hash40(uint64(test.hash) | uint64(test.length)<<32)
		if got.Hash40() != wantHash {
			t.Errorf("Hash40() = %s, want %s", got.Hash40(), wantHash)
		}
	}
}

func TestFileInfoToFileDataBitfield(t *testing.T) {
	tests := []struct {
		packed   uint32
		wantIdx  uint32
		wantLoad uint8
	}{
		{0x00000000, 0, 0},
		{0x00FFFFFF, 0xFFFFFF, 0},
		{0xFF000001, 1, 0xFF},
		{0x02ABCDEF, 0xABCDEF, 2},
	}

	for _, test := range tests {
		f := fileInfoToFileDataBitfield(test.packed)
		if got := f.fileInfoIdx(); got != test.wantIdx {
			t.Errorf("fileInfoIdx(0x%08X) = 0x%X, want 0x%X", test.packed, got, test.wantIdx)
		}
		if got := f.loadType(); got != test.wantLoad {
			t.Errorf("loadType(0x%08X) = %d, want %d", test.packed, got, test.wantLoad)
		}
	}
}

func TestFileInfoFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags FileInfoFlags
		want  func(FileInfoFlags) bool
		exp   bool
	}{
		{"redirect bit set", FileInfoFlags(1 << 4), FileInfoFlags.IsRedirect, true},
		{"redirect bit clear", FileInfoFlags(0), FileInfoFlags.IsRedirect, false},
		{"regional bit set", FileInfoFlags(1 << 15), FileInfoFlags.IsRegional, true},
		{"localized bit set", FileInfoFlags(1 << 16), FileInfoFlags.IsLocalized, true},
	}

	for _, test := range tests {
		if got := test.want(test.flags); got != test.exp {
			t.Errorf("%s: got %v, want %v", test.name, got, test.exp)
		}
	}
}

func TestDirInfoFlags(t *testing.T) {
	redirected := DirInfoFlags(1 << 26)
	symlink := DirInfoFlags(1 << 28)

	if !redirected.Redirected() {
		t.Error("Redirected() = false, want true")
	}
	if redirected.IsSymlink() {
		t.Error("IsSymlink() = true, want false")
	}
	if !symlink.IsSymlink() {
		t.Error("IsSymlink() = false, want true")
	}
}
