// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import (
	"io"

	"github.com/mostynb/zstdpool-freelist"
	"golang.org/x/xerrors"
)

// decoderPool hands out pooled *zstd.Decoder instances so concurrent
// payload reads don't each pay the cost of spinning up a fresh decoder.
// Mirrors the pooling shape used for large-archive zstd payloads
// elsewhere in the ecosystem (see DESIGN.md).
var decoderPool = zstdpool.NewDecoderPool()

// zstdDecodeAll decodes a complete zstd frame into a buffer of the
// expected decompressed size.
func zstdDecodeAll(data []byte, expectedSize int) ([]byte, error) {
	dec, err := decoderPool.Get(nil)
	if err != nil {
		return nil, xerrors.Errorf("get zstd decoder: %w", err)
	}
	defer decoderPool.Put(dec)

	out := make([]byte, 0, expectedSize)
	out, err = dec.DecodeAll(data, out)
	if err != nil {
		return nil, xerrors.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

// zstdCopyDecode reads compSize compressed bytes from r and decodes
// them into a buffer with capacity expectedSize, used for payload reads
// where the compressed bytes live directly on the backing reader.
func zstdCopyDecode(r io.Reader, compSize, expectedSize int) ([]byte, error) {
	compressed, err := readExact(r, compSize)
	if err != nil {
		return nil, xerrors.Errorf("read compressed payload: %w", err)
	}
	return zstdDecodeAll(compressed, expectedSize)
}
