// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import "errors"

// Sentinel errors returned by lookup and parse operations. Wrap these
// with xerrors.Errorf for additional context; errors.Is still matches
// through the wrap chain.
var (
	// ErrMissing indicates no row matches the requested hash in either
	// the file or stream tables.
	ErrMissing = errors.New("arc: requested resource not found")

	// ErrUnsupported indicates the file is compressed with a non-zstd
	// algorithm, which this package cannot decode.
	ErrUnsupported = errors.New("arc: unsupported compression")

	// ErrMalformedArchive indicates a header field or cross-index was
	// out of range during parsing.
	ErrMalformedArchive = errors.New("arc: malformed archive")
)
