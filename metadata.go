// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

// FileMetadata summarizes everything knowable about a file entry
// without reading its payload.
type FileMetadata struct {
	PathHash     Hash40
	ExtHash      Hash40
	ParentHash   Hash40
	FileNameHash Hash40

	Offset     uint64
	CompSize   uint32
	DecompSize uint32

	// IsStream is true when this record was resolved through the stream
	// tables rather than file_hash_to_path_index; in that case only
	// PathHash (the requested hash), Offset, CompSize, and DecompSize
	// (both equal to the stream payload's size) are meaningful.
	IsStream     bool
	IsShared     bool
	IsRedirect   bool
	IsRegional   bool
	IsLocalized  bool
	IsCompressed bool
	UsesZstd     bool
}

// GetFileMetadata resolves hash to a file and reports its layout and
// flag metadata for region, without decompressing its payload. A hash
// that resolves only through the stream tables falls back to a
// stream-flavored record.
func (a *Arc) GetFileMetadata(hash Hash40, region Region) (*FileMetadata, error) {
	pathIdx, err := getFilePathIndex(a.fs, hash)
	if err != nil {
		if err == ErrMissing {
			if data, serr := getStreamData(a.fs, hash); serr == nil {
				return &FileMetadata{
					PathHash:   hash,
					Offset:     data.Offset,
					CompSize:   uint32(data.Size),
					DecompSize: uint32(data.Size),
					IsStream:   true,
				}, nil
			}
		}
		return nil, err
	}
	path := a.fs.FilePaths[pathIdx]

	_, info, err := getFileInfoFromPathIndex(a.fs, pathIdx)
	if err != nil {
		return nil, err
	}

	data, err := getFileData(a.fs, info, region)
	if err != nil {
		return nil, err
	}
	folderOff, err := getFolderOffset(a.fs, info, region)
	if err != nil {
		return nil, err
	}

	absoluteOffset := folderOff.Offset + a.header.FileSectionOffset + uint64(data.OffsetInFolder)<<2

	return &FileMetadata{
		PathHash:     path.Path.Hash40(),
		ExtHash:      path.Ext.Hash40(),
		ParentHash:   path.Parent.Hash40(),
		FileNameHash: path.FileName.Hash40(),

		Offset:     absoluteOffset,
		CompSize:   data.CompSize,
		DecompSize: data.DecompSize,

		IsShared:     isShared(absoluteOffset, a.header.SharedSectionOffset),
		IsRedirect:   info.Flags.IsRedirect(),
		IsRegional:   info.Flags.IsRegional(),
		IsLocalized:  info.Flags.IsLocalized(),
		IsCompressed: data.Flags.Compressed(),
		UsesZstd:     data.Flags.UseZstd(),
	}, nil
}
