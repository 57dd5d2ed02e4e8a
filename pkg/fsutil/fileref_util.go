// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"time"
)

type InMemFileReference struct {
	fs.FileInfo
	MFullName string
	MContent  []byte
}

func (fr *InMemFileReference) FullName() string { return fr.MFullName }
func (fr *InMemFileReference) Name() string     { return path.Base(fr.MFullName) }
func (fr *InMemFileReference) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(fr.MContent)), nil
}

var _ FileReference = (*InMemFileReference)(nil)

// NewInMemFile returns a regular file with the given content.
func NewInMemFile(fullName string, mode fs.FileMode, mtime time.Time, content []byte) *InMemFileReference {
	return &InMemFileReference{
		FileInfo: (&tar.Header{
			Typeflag: tar.TypeReg,
			Name:     fullName,
			Mode:     int64(mode.Perm()),
			Size:     int64(len(content)),
			ModTime:  mtime,
		}).FileInfo(),
		MFullName: fullName,
		MContent:  content,
	}
}

// NewInMemDir returns a directory entry.
func NewInMemDir(fullName string, mtime time.Time) *InMemFileReference {
	return &InMemFileReference{
		FileInfo: (&tar.Header{
			Typeflag: tar.TypeDir,
			Name:     fullName,
			Mode:     0o755,
			ModTime:  mtime,
		}).FileInfo(),
		MFullName: fullName,
	}
}

// OSFileReference is a file on the local filesystem, presented under a different name.
type OSFileReference struct {
	fs.FileInfo
	MFullName string
	OSPath    string
}

// NewOSFileReference stats osPath (following symlinks) and returns a reference that will be
// named fullName in an archive.
func NewOSFileReference(fullName, osPath string) (*OSFileReference, error) {
	info, err := os.Stat(osPath)
	if err != nil {
		return nil, err
	}
	return &OSFileReference{
		FileInfo:  info,
		MFullName: fullName,
		OSPath:    osPath,
	}, nil
}

func (fr *OSFileReference) FullName() string { return fr.MFullName }
func (fr *OSFileReference) Name() string     { return path.Base(fr.MFullName) }
func (fr *OSFileReference) Open() (io.ReadCloser, error) {
	return os.Open(fr.OSPath)
}

var _ FileReference = (*OSFileReference)(nil)

// Renamed returns a reference to the same content under a different name.
func Renamed(ref FileReference, fullName string) FileReference {
	return &renamed{FileReference: ref, fullName: fullName}
}

type renamed struct {
	FileReference
	fullName string
}

func (fr *renamed) FullName() string { return fr.fullName }
func (fr *renamed) Name() string     { return path.Base(fr.fullName) }
