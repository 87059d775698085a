// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

/*
Package arc provides pure Go support for reading the proprietary,
zstd-compressed, table-driven game archive format used by Super Smash
Bros. Ultimate (commonly called "data.arc").

The archive packs hundreds of thousands of addressable files, many of
which are de-duplicated, regionally localized, or streamed from a
separate region of the container. Directory and file lookups are driven
by a precomputed 40-bit hash (32-bit CRC32 + 8-bit length) over a graph
of ten inter-indexed tables.

# Features

  - Pure Go implementation, no CGO
  - Read-only: opens an archive and resolves file/directory lookups
  - Regional variants, redirected/symlinked directories, and the shared
    payload region are all understood by the resolution engine
  - Safe for concurrent use: lookups against the immutable tables never
    block; payload reads serialize on the backing reader

# Basic Usage

	archive, err := arc.Open("data.arc")
	if err != nil {
		log.Fatal(err)
	}
	defer archive.Close()

	data, err := archive.GetFileContents(arc.Hash40FromStr("fighter/mario/model/body/c00/model.numatb"), arc.RegionNone)
	if err != nil {
		log.Fatal(err)
	}

# Regions

Some files vary by region (see [Region]). Pass [RegionNone] for
non-regional lookups; the resolution engine adds the region ordinal to
the base index only when the file is actually regional.

# Limitations

This package is read-only: it never writes, repacks, or otherwise
modifies an archive. The FFI surface, the fuzzy search cache, and
directory-tree construction are not part of this package; the optional
hash-label dictionary lives in the arc/labels subpackage.
*/
package arc
