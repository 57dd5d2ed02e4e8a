// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package bdist

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"
	"time"

	"github.com/datawire/pybuild/pkg/fsutil"
	"github.com/datawire/pybuild/pkg/reproducible"
)

// Writer writes a wheel archive.  Files are written in the order that they are added; the
// RECORD is written last, on Close, placing the .dist-info at the end of the archive.
type Writer struct {
	zip         *fsutil.ZipWriter
	distInfoDir string
	modTime     time.Time

	record Record
	seen   map[string]struct{}
}

// NewWriter returns a Writer that writes to dst.  distInfoDir is the
// "{distribution}-{version}.dist-info" directory name (see DistInfoDir).  If modTime is
// non-zero, every entry is stamped with it.
func NewWriter(dst io.Writer, distInfoDir string, modTime time.Time) *Writer {
	return &Writer{
		zip:         fsutil.NewZipWriter(dst, modTime),
		distInfoDir: distInfoDir,
		modTime:     modTime,
		seen:        make(map[string]struct{}),
	}
}

// DistInfoDir returns the name of the .dist-info directory.
func (w *Writer) DistInfoDir() string {
	return w.distInfoDir
}

// Add writes a file to the archive, and records it in the RECORD.  A path may only be added
// once.
func (w *Writer) Add(file fsutil.FileReference) error {
	name := file.FullName()
	if _, dup := w.seen[name]; dup {
		return fmt.Errorf("bdist.Writer: duplicate file in wheel: %q", name)
	}
	hashsum, size, err := HashFile("sha256", file.Open)
	if err != nil {
		return fmt.Errorf("bdist.Writer: %s: %w", name, err)
	}
	if err := w.zip.Add(file); err != nil {
		return fmt.Errorf("bdist.Writer: %w", err)
	}
	w.seen[name] = struct{}{}
	w.record = append(w.record, RecordRow{
		Path: name,
		Hash: hashsum,
		Size: strconv.FormatInt(size, 10),
	})
	return nil
}

// generatedTime is the timestamp of files that don't exist on disk.
func (w *Writer) generatedTime() time.Time {
	if w.modTime.IsZero() {
		return reproducible.Now()
	}
	return w.modTime
}

// AddBytes is a convenience wrapper around Add.
func (w *Writer) AddBytes(name string, mode fs.FileMode, content []byte) error {
	return w.Add(fsutil.NewInMemFile(name, mode, w.generatedTime(), content))
}

// AddDistInfo adds a file within the .dist-info directory.
func (w *Writer) AddDistInfo(name string, content []byte) error {
	return w.AddBytes(path.Join(w.distInfoDir, name), 0o644, content)
}

// Close writes the RECORD and finishes the archive.  It does not close the underlying
// io.Writer.
func (w *Writer) Close() error {
	recordName := path.Join(w.distInfoDir, "RECORD")
	w.record = append(w.record, RecordRow{Path: recordName})
	content, err := w.record.Bytes()
	if err != nil {
		return fmt.Errorf("bdist.Writer: RECORD: %w", err)
	}
	if err := w.zip.Add(fsutil.NewInMemFile(recordName, 0o644, w.generatedTime(), content)); err != nil {
		return fmt.Errorf("bdist.Writer: %w", err)
	}
	return w.zip.Close()
}
