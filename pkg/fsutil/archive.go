// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/datawire/pybuild/pkg/python"
)

// zipEpoch is the earliest timestamp that a ZIP file can encode.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// NormalizeMode reduces a regular file's mode to either 0644 or 0755, depending on whether
// the owner-execute bit is set.
func NormalizeMode(mode fs.FileMode) fs.FileMode {
	if mode&0o100 != 0 {
		return 0o755
	}
	return 0o644
}

func archiveTime(file FileReference, modTime time.Time) time.Time {
	if !modTime.IsZero() {
		return modTime.UTC()
	}
	return file.ModTime().UTC()
}

// WriteTarGz writes the regular files in vfs (in the order given) to dst as a gzipped PAX
// tarball.  Directories are implied, and are not written.  If modTime is non-zero, it is used
// as the timestamp of every entry.  Owners are normalized to root, and modes are normalized
// with NormalizeMode.  The gzip header carries neither a filename nor a timestamp.
func WriteTarGz(dst io.Writer, vfs []FileReference, modTime time.Time) (err error) {
	gzWriter, err := gzip.NewWriterLevel(dst, gzip.BestCompression)
	if err != nil {
		return err
	}
	defer func() {
		if _err := gzWriter.Close(); _err != nil && err == nil {
			err = _err
		}
	}()

	tarWriter := tar.NewWriter(gzWriter)
	for _, file := range vfs {
		if !file.Mode().IsRegular() {
			continue
		}
		header := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     file.FullName(),
			Size:     file.Size(),
			Mode:     int64(NormalizeMode(file.Mode())),
			ModTime:  archiveTime(file, modTime).Truncate(time.Second),
			Format:   tar.FormatPAX,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return fmt.Errorf("%s: %w", file.FullName(), err)
		}
		if err := copyContent(tarWriter, file); err != nil {
			return fmt.Errorf("%s: %w", file.FullName(), err)
		}
	}
	return tarWriter.Close()
}

// ZipWriter writes a ZIP archive one entry at a time, stamping every entry the same way.
type ZipWriter struct {
	zip     *zip.Writer
	modTime time.Time
}

// NewZipWriter returns a ZipWriter that uses modTime (if non-zero) as the timestamp of every
// entry.
func NewZipWriter(dst io.Writer, modTime time.Time) *ZipWriter {
	return &ZipWriter{
		zip:     zip.NewWriter(dst),
		modTime: modTime,
	}
}

// Add writes a regular file to the archive.
func (zw *ZipWriter) Add(file FileReference) error {
	mtime := archiveTime(file, zw.modTime)
	if mtime.Before(zipEpoch) {
		mtime = zipEpoch
	}
	header := &zip.FileHeader{
		Name:     file.FullName(),
		Method:   zip.Deflate,
		Modified: mtime.Truncate(2 * time.Second),
		// Creator=UNIX, so that the external attributes are read as a stat(2) mode.
		CreatorVersion: 3 << 8,
	}
	header.ExternalAttrs = python.ZIPAttributes(NormalizeMode(file.Mode())).Raw()
	writer, err := zw.zip.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("%s: %w", file.FullName(), err)
	}
	if err := copyContent(writer, file); err != nil {
		return fmt.Errorf("%s: %w", file.FullName(), err)
	}
	return nil
}

func (zw *ZipWriter) Close() error {
	return zw.zip.Close()
}

// WriteZip writes the regular files in vfs (in the order given) to dst.
func WriteZip(dst io.Writer, vfs []FileReference, modTime time.Time) error {
	zw := NewZipWriter(dst, modTime)
	for _, file := range vfs {
		if !file.Mode().IsRegular() {
			continue
		}
		if err := zw.Add(file); err != nil {
			return err
		}
	}
	return zw.Close()
}
