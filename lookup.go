// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import (
	"io"
	"sort"
)

// getBucketForHash returns the slice of fs.FileHashToPathIndex backing
// hash's bucket, selected by hash % len(fs.FileInfoBuckets).
func getBucketForHash(fs *FileSystem, hash Hash40) []HashToIndex {
	if len(fs.FileInfoBuckets) == 0 {
		return nil
	}
	bucketIdx := hash.AsU64() % uint64(len(fs.FileInfoBuckets))
	bucket := fs.FileInfoBuckets[bucketIdx]
	n := len(fs.FileHashToPathIndex)
	start, end := bucket.rangeOf(n)
	if start < 0 || start > n || end < start {
		return nil
	}
	return fs.FileHashToPathIndex[start:end]
}

// getFilePathIndex resolves hash to an index into fs.FilePaths by
// binary-searching the hash's bucket.
func getFilePathIndex(fs *FileSystem, hash Hash40) (uint32, error) {
	entries := getBucketForHash(fs, hash)
	if entries == nil {
		return 0, ErrMissing
	}
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Hash40() >= hash
	})
	if i >= len(entries) || entries[i].Hash40() != hash {
		return 0, ErrMissing
	}
	return entries[i].Index(), nil
}

// getFileInfoFromPathIndex resolves a FilePaths row to its owning
// FileInfo.
func getFileInfoFromPathIndex(fs *FileSystem, pathIndex uint32) (uint32, *FileInfo, error) {
	if int(pathIndex) >= len(fs.FilePaths) {
		return 0, nil, ErrMissing
	}
	indiceIdx := fs.FilePaths[pathIndex].Path.Index()
	if int(indiceIdx) >= len(fs.FileInfoIndices) {
		return 0, nil, ErrMissing
	}
	infoIdx := fs.FileInfoIndices[indiceIdx].FileInfoIndex
	if int(infoIdx) >= len(fs.FileInfos) {
		return 0, nil, ErrMissing
	}
	info := fs.FileInfos[infoIdx]
	return infoIdx, &info, nil
}

// regionalInfoToDataIndex applies the regional offset rule: a file
// whose FileInfoFlags mark it regional stores one FileInfoToFileData row
// per region, contiguous starting at info.InfoToDataIdx, ordered the
// same as the Region enum.
func regionalInfoToDataIndex(info *FileInfo, region Region) uint32 {
	if info.Flags.IsRegional() {
		return info.InfoToDataIdx + uint32(region)
	}
	return info.InfoToDataIdx
}

// getFileInfoToData resolves a FileInfo plus region selector to its
// FileInfoToFileData row.
func getFileInfoToData(fs *FileSystem, info *FileInfo, region Region) (*FileInfoToFileData, error) {
	idx := regionalInfoToDataIndex(info, region)
	if int(idx) >= len(fs.FileInfoToDatas) {
		return nil, ErrMissing
	}
	row := fs.FileInfoToDatas[idx]
	return &row, nil
}

// getFileData resolves a FileInfo plus region selector to its FileData
// row.
func getFileData(fs *FileSystem, info *FileInfo, region Region) (*FileData, error) {
	bridge, err := getFileInfoToData(fs, info, region)
	if err != nil {
		return nil, err
	}
	if int(bridge.FileDataIdx) >= len(fs.FileDatas) {
		return nil, ErrMissing
	}
	fd := fs.FileDatas[bridge.FileDataIdx]
	return &fd, nil
}

// getFolderOffset resolves a FileInfo plus region selector to the
// DirectoryOffset backing its folder.
func getFolderOffset(fs *FileSystem, info *FileInfo, region Region) (*DirectoryOffset, error) {
	bridge, err := getFileInfoToData(fs, info, region)
	if err != nil {
		return nil, err
	}
	if int(bridge.FolderOffsetIdx) >= len(fs.FolderOffsets) {
		return nil, ErrMissing
	}
	off := fs.FolderOffsets[bridge.FolderOffsetIdx]
	return &off, nil
}

// getDirInfo resolves a directory's path hash to its DirInfo row via a
// binary search over fs.DirHashToInfoIndex, which is sorted by hash the
// same way the file bucket entries are.
func getDirInfo(fs *FileSystem, hash Hash40) (uint32, *DirInfo, error) {
	entries := fs.DirHashToInfoIndex
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Hash40() >= hash
	})
	if i >= len(entries) || entries[i].Hash40() != hash {
		return 0, nil, ErrMissing
	}
	idx := entries[i].Index()
	if int(idx) >= len(fs.DirInfos) {
		return 0, nil, ErrMissing
	}
	info := fs.DirInfos[idx]
	return idx, &info, nil
}

// getStreamData resolves hash to its stream_datas row by linear search
// over stream_entries, then stream_file_indices. Stream hashes are not
// bucketed the way file_hash_to_path_index is.
func getStreamData(fs *FileSystem, hash Hash40) (*StreamData, error) {
	for i := range fs.StreamEntries {
		if fs.StreamEntries[i].Hash40() != hash {
			continue
		}
		fileIdxPos := fs.StreamEntries[i].Index()
		if int(fileIdxPos) >= len(fs.StreamFileIndices) {
			return nil, ErrMalformedArchive
		}
		dataIdx := fs.StreamFileIndices[fileIdxPos]
		if int(dataIdx) >= len(fs.StreamDatas) {
			return nil, ErrMalformedArchive
		}
		data := fs.StreamDatas[dataIdx]
		return &data, nil
	}
	return nil, ErrMissing
}

// GetStreamData resolves hash to its stream payload location and size.
func (a *Arc) GetStreamData(hash Hash40) (*StreamData, error) {
	return getStreamData(a.fs, hash)
}

// readStreamData reads a stream payload verbatim: stream data is never
// compressed, so the bytes at data.Offset are the file's full contents.
func (a *Arc) readStreamData(data *StreamData) ([]byte, error) {
	buf := make([]byte, data.Size)
	if err := a.reader.readAt(int64(data.Offset), buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// GetFileContents reads and, if necessary, decompresses the full
// contents of the file named by hash, for the given region. A hash that
// resolves only through the stream tables (never through
// file_hash_to_path_index) falls back to its stream payload, read
// verbatim.
func (a *Arc) GetFileContents(hash Hash40, region Region) ([]byte, error) {
	pathIdx, err := getFilePathIndex(a.fs, hash)
	if err != nil {
		if err == ErrMissing {
			if data, serr := getStreamData(a.fs, hash); serr == nil {
				return a.readStreamData(data)
			}
		}
		return nil, err
	}
	_, info, err := getFileInfoFromPathIndex(a.fs, pathIdx)
	if err != nil {
		return nil, err
	}
	return a.readFileInfo(info, region)
}

func (a *Arc) readFileInfo(info *FileInfo, region Region) ([]byte, error) {
	data, err := getFileData(a.fs, info, region)
	if err != nil {
		return nil, err
	}
	folderOff, err := getFolderOffset(a.fs, info, region)
	if err != nil {
		return nil, err
	}

	absoluteOffset := folderOff.Offset + a.header.FileSectionOffset + uint64(data.OffsetInFolder)<<2

	if !data.Flags.Compressed() {
		buf := make([]byte, data.CompSize)
		if err := a.reader.readAt(int64(absoluteOffset), buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	if !data.Flags.UseZstd() {
		return nil, ErrUnsupported
	}

	var out []byte
	err = a.reader.withReaderAt(int64(absoluteOffset), func(r io.Reader) error {
		decoded, derr := zstdCopyDecode(r, int(data.CompSize), int(data.DecompSize))
		if derr != nil {
			return derr
		}
		out = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StreamEntryInfo is a resolved directory-of-streams listing row.
type StreamEntryInfo struct {
	Hash   Hash40
	Size   uint64
	Offset uint64
}

// GetStreamListing returns the stream entries registered under the
// directory named by dirHash (e.g. "stream:/sound/bgm"), resolved
// through quick_dirs -> stream_entries -> stream_file_indices ->
// stream_datas.
func (a *Arc) GetStreamListing(dirHash Hash40) ([]StreamEntryInfo, error) {
	fs := a.fs
	var dir *QuickDir
	for i := range fs.QuickDirs {
		if fs.QuickDirs[i].Hash40() == dirHash {
			dir = &fs.QuickDirs[i]
			break
		}
	}
	if dir == nil {
		return nil, ErrMissing
	}

	start := dir.Index
	count := dir.Count()
	out := make([]StreamEntryInfo, 0, count)
	for i := uint32(0); i < count; i++ {
		entryIdx := start + i
		if int(entryIdx) >= len(fs.StreamEntries) {
			return nil, ErrMalformedArchive
		}
		entry := fs.StreamEntries[entryIdx]
		fileIdxPos := entry.Index()
		if int(fileIdxPos) >= len(fs.StreamFileIndices) {
			return nil, ErrMalformedArchive
		}
		dataIdx := fs.StreamFileIndices[fileIdxPos]
		if int(dataIdx) >= len(fs.StreamDatas) {
			return nil, ErrMalformedArchive
		}
		data := fs.StreamDatas[dataIdx]
		out = append(out, StreamEntryInfo{
			Hash:   entry.Hash40(),
			Size:   data.Size,
			Offset: data.Offset,
		})
	}
	return out, nil
}

// GetSharedFiles returns the hash of every other file whose resolved
// FileData row is the same as hash's: files that share a single stored
// payload. Resolution failures and files with no sharers return an
// empty list, never an error.
func (a *Arc) GetSharedFiles(hash Hash40, region Region) []Hash40 {
	fs := a.fs

	pathIdx, err := getFilePathIndex(fs, hash)
	if err != nil {
		return nil
	}
	_, info, err := getFileInfoFromPathIndex(fs, pathIdx)
	if err != nil {
		return nil
	}
	target, err := getFileInfoToData(fs, info, region)
	if err != nil {
		return nil
	}

	var shared []Hash40
	for _, entry := range fs.FileHashToPathIndex {
		otherHash := entry.Hash40()
		if otherHash == hash {
			continue
		}
		otherPathIdx := entry.Index()
		_, otherInfo, err := getFileInfoFromPathIndex(fs, otherPathIdx)
		if err != nil {
			continue
		}
		otherData, err := getFileInfoToData(fs, otherInfo, region)
		if err != nil {
			continue
		}
		if otherData.FileDataIdx == target.FileDataIdx {
			shared = append(shared, otherHash)
		}
	}
	return shared
}
