// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package fsutil holds the in-memory file trees that build targets assemble, and the writers
// that turn them in to reproducible archives (.tar.gz, .zip, and OCI image layers).
package fsutil

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
	"sort"
	"strings"
	"time"

	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"
)

type FileReference interface {
	fs.FileInfo

	// FullName should follow io/fs rules: it should use forward-slashes, and it should be an
	// absolute path but without the leading "/".
	FullName() string

	Open() (io.ReadCloser, error)
}

// SortFileReferences sorts the list in-place by FullName.
//
// It does a part-wise comparison, rather than a simple string compare on .FullName(), because
// "-" < "/" < EOF; a part-wise comparison keeps a directory's contents adjacent to the
// directory.
func SortFileReferences(vfs []FileReference) {
	sort.SliceStable(vfs, func(i, j int) bool {
		return lessPath(vfs[i].FullName(), vfs[j].FullName())
	})
}

func lessPath(a, b string) bool {
	aParts := strings.Split(a, "/")
	bParts := strings.Split(b, "/")
	for idx := 0; idx < len(aParts) || idx < len(bParts); idx++ {
		var aPart, bPart string
		if idx < len(aParts) {
			aPart = aParts[idx]
		}
		if idx < len(bParts) {
			bPart = bParts[idx]
		}
		if aPart != bPart {
			return aPart < bPart
		}
	}
	return false
}

// LayerFromFileReferences builds an (uncompressed-tar) OCI image layer from the file tree.
// Timestamps later than clampTime are clamped to it; ownership information is taken from the
// FileReferences' Sys() (if it is a *tar.Header).
func LayerFromFileReferences(
	vfs []FileReference,
	clampTime time.Time,
	opts ...ociv1tarball.LayerOption,
) (ociv1.Layer, error) {
	SortFileReferences(vfs)

	var byteWriter bytes.Buffer
	tarWriter := tar.NewWriter(&byteWriter)

	for _, file := range vfs {
		header, err := tar.FileInfoHeader(file, "")
		if err != nil {
			return nil, err
		}
		header.Name = file.FullName()
		if header.Typeflag == tar.TypeDir {
			header.Name += "/"
		}
		header.ModTime = clampTo(header.ModTime, clampTime)
		header.AccessTime = clampTo(header.AccessTime, clampTime)
		header.ChangeTime = clampTo(header.ChangeTime, clampTime)
		if err := tarWriter.WriteHeader(header); err != nil {
			return nil, err
		}
		if header.Typeflag == tar.TypeReg {
			if err := copyContent(tarWriter, file); err != nil {
				return nil, err
			}
		}
	}

	if err := tarWriter.Close(); err != nil {
		return nil, err
	}

	byteSlice := byteWriter.Bytes()
	return ociv1tarball.LayerFromOpener(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(byteSlice)), nil
	}, opts...)
}

func clampTo(t, clamp time.Time) time.Time {
	if t.After(clamp) {
		return clamp
	}
	return t
}

func copyContent(dst io.Writer, file FileReference) error {
	reader, err := file.Open()
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, reader); err != nil {
		_ = reader.Close()
		return err
	}
	return reader.Close()
}
