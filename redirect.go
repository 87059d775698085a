// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package arc

const maxRedirectDepth = 32

// resolveDirInfo follows a chain of directory symlinks (DirInfo.Flags
// IsSymlink) to the DirInfo that actually owns file entries. A directory
// is a symlink when its ExtraDisRe field names another DirInfo index
// rather than real file-range bookkeeping of its own.
func resolveDirInfo(fs *FileSystem, idx uint32) (uint32, *DirInfo, error) {
	seen := 0
	for {
		if int(idx) >= len(fs.DirInfos) {
			return 0, nil, ErrMissing
		}
		info := fs.DirInfos[idx]
		if !info.Flags.IsSymlink() {
			return idx, &info, nil
		}
		seen++
		if seen > maxRedirectDepth {
			return 0, nil, ErrMalformedArchive
		}
		idx = info.ExtraDisRe
	}
}

// resolveDirectoryOffset resolves a DirInfo to the DirectoryOffset that
// actually backs its file payload offsets. DirInfo.Path.Index() names a
// folder_offsets row directly; when the owning DirInfo is Redirected,
// that row's DirectoryIdx names the real folder_offsets row to use
// instead of being a directory_index in its own right.
func resolveDirectoryOffset(fs *FileSystem, dirInfoIdx uint32) (*DirectoryOffset, error) {
	if int(dirInfoIdx) >= len(fs.DirInfos) {
		return nil, ErrMissing
	}
	info := fs.DirInfos[dirInfoIdx]
	offsetIdx := info.Path.Index()

	if int(offsetIdx) >= len(fs.FolderOffsets) {
		return nil, ErrMissing
	}
	off := fs.FolderOffsets[offsetIdx]
	if !info.Flags.Redirected() {
		return &off, nil
	}

	if int(off.DirectoryIdx) >= len(fs.FolderOffsets) {
		return nil, ErrMissing
	}
	real := fs.FolderOffsets[off.DirectoryIdx]
	return &real, nil
}

// isShared reports whether a file payload at absoluteOffset is a shared
// resource: one stored once and referenced by multiple logical files.
// The format carries no explicit "shared" flag — sharing is inferred
// purely from the payload's absolute offset falling past the archive's
// shared-section boundary.
func isShared(absoluteOffset, sharedSectionOffset uint64) bool {
	return absoluteOffset >= sharedSectionOffset
}
