// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

import (
	"bytes"
	"encoding/binary"
	"io"

	"golang.org/x/xerrors"
)

// FilePath is a per-file path record: path, extension, parent directory,
// and file-name hashes, each bridging to a row index via HashToIndex.
type FilePath struct {
	Path     HashToIndex
	Ext      HashToIndex
	Parent   HashToIndex
	FileName HashToIndex
}

const filePathSize = hashToIndexSize * 4

// FileInfoIndex bridges a path to a FileInfo, by way of a directory
// offset index and a file-info index.
type FileInfoIndex struct {
	DirOffsetIndex uint32
	FileInfoIndex  uint32
}

const fileInfoIndexSize = 8

// FileInfo is a per-file descriptor.
type FileInfo struct {
	FilePathIdx        uint32
	FileInfoIndiceIdx  uint32
	InfoToDataIdx      uint32
	Flags              FileInfoFlags
}

const fileInfoSize = 16

// FileInfoToFileData bridges a FileInfo to its folder offset and
// FileData row, region-indexed for regional/localized files.
type FileInfoToFileData struct {
	FolderOffsetIdx uint32
	FileDataIdx     uint32
	packed          fileInfoToFileDataBitfield
}

const fileInfoToFileDataSize = 12

// FileInfoIdx24 returns the 24-bit file-info index packed alongside the
// load type.
func (f FileInfoToFileData) FileInfoIdx24() uint32 { return f.packed.fileInfoIdx() }

// LoadType returns the load-type byte packed alongside the file-info
// index.
func (f FileInfoToFileData) LoadType() uint8 { return f.packed.loadType() }

// FileData locates a file's payload within its folder.
type FileData struct {
	OffsetInFolder uint32
	CompSize       uint32
	DecompSize     uint32
	Flags          FileDataFlags
}

const fileDataSize = 16

// DirInfo is a directory node.
type DirInfo struct {
	Path              HashToIndex
	Name              Hash40
	Parent            Hash40
	ExtraDisRe        uint32
	ExtraDisReLen     uint32
	FileInfoStart     uint32
	FileCount         uint32
	ChildDirStart     uint32
	ChildDirCount     uint32
	Flags             DirInfoFlags
}

const dirInfoSize = hashToIndexSize + 8 + 8 + 4*7

// DirectoryOffset is a folder's backing region. DirectoryIdx means a
// DirInfo index, except in the folder_offsets row named by a Redirected
// DirInfo's Path.Index(), where it is the index of the folder_offsets
// row that really backs the directory — see redirect.go.
type DirectoryOffset struct {
	Offset        uint64
	DecompSize    uint32
	Size          uint32
	FileStartIdx  uint32
	FileCount     uint32
	DirectoryIdx  uint32
}

const directoryOffsetSize = 8 + 4*5

// FileInfoBucket is a hash-bucket slice into file_hash_to_path_index.
type FileInfoBucket struct {
	Start uint32
	Count uint32
}

const fileInfoBucketSize = 8

func (b FileInfoBucket) rangeOf(n int) (int, int) {
	start := int(b.Start)
	end := start + int(b.Count)
	if end > n {
		end = n
	}
	return start, end
}

// StreamData locates a stream payload by size and absolute offset.
type StreamData struct {
	Size   uint64
	Offset uint64
}

const streamDataSize = 16

// FileSystem holds the ten primary tables plus the stream sub-section,
// decoded once from the archive's compressed FS blob and immutable for
// the lifetime of the handle.
type FileSystem struct {
	Header       fileSystemHeader
	StreamHeader streamHeader

	QuickDirs           []QuickDir
	StreamHashToEntries []HashToIndex
	StreamEntries       []StreamEntry
	StreamFileIndices   []uint32
	StreamDatas         []StreamData

	FileInfoBuckets       []FileInfoBucket
	FileHashToPathIndex   []HashToIndex
	FilePaths             []FilePath
	FileInfoIndices       []FileInfoIndex
	DirHashToInfoIndex    []HashToIndex
	DirInfos              []DirInfo
	FolderOffsets         []DirectoryOffset
	FolderChildHashes     []HashToIndex
	FileInfos             []FileInfo
	FileInfoToDatas       []FileInfoToFileData
	FileDatas             []FileData
}

// parseFileSystem decodes the decompressed FS blob according to the
// fixed table order in SPEC_FULL.md §4.3 (unchanged from spec.md §4.2).
func parseFileSystem(blob []byte) (*FileSystem, error) {
	r := bytes.NewReader(blob)

	fsHeader, err := readFileSystemHeader(r)
	if err != nil {
		return nil, err
	}

	if err := alignReaderTo(r, 0x100); err != nil {
		return nil, err
	}

	streamHdr, err := readStreamHeader(r)
	if err != nil {
		return nil, err
	}

	fs := &FileSystem{Header: *fsHeader, StreamHeader: *streamHdr}

	fs.QuickDirs, err = readFixedSlice(r, int(streamHdr.QuickDirCount), quickDirSize, readQuickDir)
	if err != nil {
		return nil, xerrors.Errorf("quick_dirs: %w", err)
	}
	fs.StreamHashToEntries, err = readHashToIndexSlice(r, int(streamHdr.StreamHashCount))
	if err != nil {
		return nil, xerrors.Errorf("stream_hash_to_entries: %w", err)
	}
	fs.StreamEntries, err = readFixedSlice(r, int(streamHdr.StreamHashCount), streamEntrySize, readStreamEntry)
	if err != nil {
		return nil, xerrors.Errorf("stream_entries: %w", err)
	}
	fs.StreamFileIndices, err = readU32Slice(r, int(streamHdr.StreamFileIndexCount))
	if err != nil {
		return nil, xerrors.Errorf("stream_file_indices: %w", err)
	}
	fs.StreamDatas, err = readStreamDataSlice(r, int(streamHdr.StreamOffsetEntryCount))
	if err != nil {
		return nil, xerrors.Errorf("stream_datas: %w", err)
	}

	var hashIndexGroupCount, bucketCount uint32
	if err := binary.Read(r, binary.LittleEndian, &hashIndexGroupCount); err != nil {
		return nil, xerrors.Errorf("hash_index_group_count: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &bucketCount); err != nil {
		return nil, xerrors.Errorf("bucket_count: %w", err)
	}

	fs.FileInfoBuckets, err = readFileInfoBucketSlice(r, int(bucketCount))
	if err != nil {
		return nil, xerrors.Errorf("file_info_buckets: %w", err)
	}
	fs.FileHashToPathIndex, err = readHashToIndexSlice(r, int(hashIndexGroupCount))
	if err != nil {
		return nil, xerrors.Errorf("file_hash_to_path_index: %w", err)
	}
	fs.FilePaths, err = readFilePathSlice(r, int(fsHeader.FileInfoPathCount))
	if err != nil {
		return nil, xerrors.Errorf("file_paths: %w", err)
	}
	fs.FileInfoIndices, err = readFileInfoIndexSlice(r, int(fsHeader.FileInfoIndexCount))
	if err != nil {
		return nil, xerrors.Errorf("file_info_indices: %w", err)
	}
	fs.DirHashToInfoIndex, err = readHashToIndexSlice(r, int(fsHeader.FolderCount))
	if err != nil {
		return nil, xerrors.Errorf("dir_hash_to_info_index: %w", err)
	}
	fs.DirInfos, err = readDirInfoSlice(r, int(fsHeader.FolderCount))
	if err != nil {
		return nil, xerrors.Errorf("dir_infos: %w", err)
	}

	folderOffsetCount := int(fsHeader.FolderOffsetCount1) + int(fsHeader.FolderOffsetCount2) + int(fsHeader.ExtraFolder)
	fs.FolderOffsets, err = readDirectoryOffsetSlice(r, folderOffsetCount)
	if err != nil {
		return nil, xerrors.Errorf("folder_offsets: %w", err)
	}
	fs.FolderChildHashes, err = readHashToIndexSlice(r, int(fsHeader.HashFolderCount))
	if err != nil {
		return nil, xerrors.Errorf("folder_child_hashes: %w", err)
	}

	fileInfoCount := int(fsHeader.FileInfoCount) + int(fsHeader.FileDataCount2) + int(fsHeader.ExtraCount)
	fs.FileInfos, err = readFileInfoSlice(r, fileInfoCount)
	if err != nil {
		return nil, xerrors.Errorf("file_infos: %w", err)
	}

	infoToDataCount := int(fsHeader.FileInfoSubIndexCount) + int(fsHeader.FileDataCount2) + int(fsHeader.ExtraCount2)
	fs.FileInfoToDatas, err = readFileInfoToFileDataSlice(r, infoToDataCount)
	if err != nil {
		return nil, xerrors.Errorf("file_info_to_datas: %w", err)
	}

	fileDataCount := int(fsHeader.FileDataCount) + int(fsHeader.FileDataCount2) + int(fsHeader.ExtraSubCount)
	fs.FileDatas, err = readFileDataSlice(r, fileDataCount)
	if err != nil {
		return nil, xerrors.Errorf("file_datas: %w", err)
	}

	return fs, nil
}

func alignReaderTo(r *bytes.Reader, align int64) error {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return xerrors.Errorf("align seek: %w", err)
	}
	rem := pos % align
	if rem == 0 {
		return nil
	}
	if _, err := r.Seek(align-rem, io.SeekCurrent); err != nil {
		return xerrors.Errorf("align seek: %w", err)
	}
	return nil
}

func readExact(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func readFixedSlice[T any](r io.Reader, count, recordSize int, parse func([]byte) T) ([]T, error) {
	out := make([]T, count)
	for i := 0; i < count; i++ {
		b, err := readExact(r, recordSize)
		if err != nil {
			return nil, err
		}
		out[i] = parse(b)
	}
	return out, nil
}

func readHashToIndexSlice(r io.Reader, count int) ([]HashToIndex, error) {
	return readFixedSlice(r, count, hashToIndexSize, readHashToIndex)
}

func readU32Slice(r io.Reader, count int) ([]uint32, error) {
	out := make([]uint32, count)
	for i := range out {
		b, err := readExact(r, 4)
		if err != nil {
			return nil, err
		}
		out[i] = binary.LittleEndian.Uint32(b)
	}
	return out, nil
}

func readStreamDataSlice(r io.Reader, count int) ([]StreamData, error) {
	return readFixedSlice(r, count, streamDataSize, func(b []byte) StreamData {
		return StreamData{
			Size:   binary.LittleEndian.Uint64(b[0:8]),
			Offset: binary.LittleEndian.Uint64(b[8:16]),
		}
	})
}

func readFileInfoBucketSlice(r io.Reader, count int) ([]FileInfoBucket, error) {
	return readFixedSlice(r, count, fileInfoBucketSize, func(b []byte) FileInfoBucket {
		return FileInfoBucket{
			Start: binary.LittleEndian.Uint32(b[0:4]),
			Count: binary.LittleEndian.Uint32(b[4:8]),
		}
	})
}

func readFilePathSlice(r io.Reader, count int) ([]FilePath, error) {
	return readFixedSlice(r, count, filePathSize, func(b []byte) FilePath {
		return FilePath{
			Path:     readHashToIndex(b[0:8]),
			Ext:      readHashToIndex(b[8:16]),
			Parent:   readHashToIndex(b[16:24]),
			FileName: readHashToIndex(b[24:32]),
		}
	})
}

func readFileInfoIndexSlice(r io.Reader, count int) ([]FileInfoIndex, error) {
	return readFixedSlice(r, count, fileInfoIndexSize, func(b []byte) FileInfoIndex {
		return FileInfoIndex{
			DirOffsetIndex: binary.LittleEndian.Uint32(b[0:4]),
			FileInfoIndex:  binary.LittleEndian.Uint32(b[4:8]),
		}
	})
}

func readDirInfoSlice(r io.Reader, count int) ([]DirInfo, error) {
	return readFixedSlice(r, count, dirInfoSize, func(b []byte) DirInfo {
		return DirInfo{
			Path:          readHashToIndex(b[0:8]),
			Name:          Hash40(binary.LittleEndian.Uint64(b[8:16])),
			Parent:        Hash40(binary.LittleEndian.Uint64(b[16:24])),
			ExtraDisRe:    binary.LittleEndian.Uint32(b[24:28]),
			ExtraDisReLen: binary.LittleEndian.Uint32(b[28:32]),
			FileInfoStart: binary.LittleEndian.Uint32(b[32:36]),
			FileCount:     binary.LittleEndian.Uint32(b[36:40]),
			ChildDirStart: binary.LittleEndian.Uint32(b[40:44]),
			ChildDirCount: binary.LittleEndian.Uint32(b[44:48]),
			Flags:         DirInfoFlags(binary.LittleEndian.Uint32(b[48:52])),
		}
	})
}

func readDirectoryOffsetSlice(r io.Reader, count int) ([]DirectoryOffset, error) {
	return readFixedSlice(r, count, directoryOffsetSize, func(b []byte) DirectoryOffset {
		return DirectoryOffset{
			Offset:       binary.LittleEndian.Uint64(b[0:8]),
			DecompSize:   binary.LittleEndian.Uint32(b[8:12]),
			Size:         binary.LittleEndian.Uint32(b[12:16]),
			FileStartIdx: binary.LittleEndian.Uint32(b[16:20]),
			FileCount:    binary.LittleEndian.Uint32(b[20:24]),
			DirectoryIdx: binary.LittleEndian.Uint32(b[24:28]),
		}
	})
}

func readFileInfoSlice(r io.Reader, count int) ([]FileInfo, error) {
	return readFixedSlice(r, count, fileInfoSize, func(b []byte) FileInfo {
		return FileInfo{
			FilePathIdx:       binary.LittleEndian.Uint32(b[0:4]),
			FileInfoIndiceIdx: binary.LittleEndian.Uint32(b[4:8]),
			InfoToDataIdx:     binary.LittleEndian.Uint32(b[8:12]),
			Flags:             FileInfoFlags(binary.LittleEndian.Uint32(b[12:16])),
		}
	})
}

func readFileInfoToFileDataSlice(r io.Reader, count int) ([]FileInfoToFileData, error) {
	return readFixedSlice(r, count, fileInfoToFileDataSize, func(b []byte) FileInfoToFileData {
		return FileInfoToFileData{
			FolderOffsetIdx: binary.LittleEndian.Uint32(b[0:4]),
			FileDataIdx:     binary.LittleEndian.Uint32(b[4:8]),
			packed:          fileInfoToFileDataBitfield(binary.LittleEndian.Uint32(b[8:12])),
		}
	})
}

func readFileDataSlice(r io.Reader, count int) ([]FileData, error) {
	return readFixedSlice(r, count, fileDataSize, func(b []byte) FileData {
		return FileData{
			OffsetInFolder: binary.LittleEndian.Uint32(b[0:4]),
			CompSize:       binary.LittleEndian.Uint32(b[4:8]),
			DecompSize:     binary.LittleEndian.Uint32(b[8:12]),
			Flags:          FileDataFlags(binary.LittleEndian.Uint32(b[12:16])),
		}
	})
}
