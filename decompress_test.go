// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestZstdDecodeAllRoundTrip(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	defer enc.Close()

	original := bytes.Repeat([]byte("smash ultimate archive payload "), 64)
	compressed := enc.EncodeAll(original, nil)

	got, err := zstdDecodeAll(compressed, len(original))
	if err != nil {
		t.Fatalf("zstdDecodeAll: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(original))
	}
}

func TestZstdCopyDecodeRoundTrip(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	defer enc.Close()

	original := []byte("a small payload")
	compressed := enc.EncodeAll(original, nil)

	r := bytes.NewReader(compressed)
	got, err := zstdCopyDecode(r, len(compressed), len(original))
	if err != nil {
		t.Fatalf("zstdCopyDecode: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("round trip mismatch: got %q, want %q", got, original)
	}
}
