// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package bdist

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/datawire/pybuild/pkg/fsutil"
	"github.com/datawire/pybuild/pkg/python"
)

// wheelEntry is a member of a wheel that is being installed.  The zip header is a copy, so
// that installing may move the file or rewrite its content without touching the wheel.
type wheelEntry struct {
	zip.FileHeader
	open func() (io.ReadCloser, error)
}

var _ fsutil.FileReference = (*wheelEntry)(nil)

func (e *wheelEntry) FullName() string             { return path.Clean(e.FileHeader.Name) }
func (e *wheelEntry) Name() string                 { return path.Base(e.FullName()) }
func (e *wheelEntry) Size() int64                  { return int64(e.UncompressedSize64) }
func (e *wheelEntry) IsDir() bool                  { return e.Mode().IsDir() }
func (e *wheelEntry) Sys() interface{}             { return &e.FileHeader }
func (e *wheelEntry) Open() (io.ReadCloser, error) { return e.open() }

func (e *wheelEntry) ModTime() time.Time { return e.Modified }

func (e *wheelEntry) setFullName(name string, dir bool) {
	e.FileHeader.Name = name
	if dir {
		e.FileHeader.Name += "/"
	}
}

// replacePrefix makes the content start with prefix in place of its first n bytes.
func (e *wheelEntry) replacePrefix(n int, prefix string) {
	open := e.open
	e.open = func() (io.ReadCloser, error) {
		body, err := open()
		if err != nil {
			return nil, err
		}
		if _, err := io.CopyN(io.Discard, body, int64(n)); err != nil {
			_ = body.Close()
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{io.MultiReader(strings.NewReader(prefix), body), body}, nil
	}
	e.UncompressedSize64 = e.UncompressedSize64 - uint64(n) + uint64(len(prefix))
}

func (e *wheelEntry) setExecutable() {
	attrs := python.ParseZIPExternalAttributes(e.ExternalAttrs)
	attrs.UNIX |= 0o111
	e.ExternalAttrs = attrs.Raw()
}

// installTree is the file tree of a wheel being installed, keyed by FullName.
type installTree map[string]fsutil.FileReference

// add puts a wheel member in the tree at name.  Like pip, it keeps only the executable bit of
// the member's permissions, and stamps it with mtime unless that is zero.
func (t installTree) add(name string, mtime time.Time, entry *wheelEntry) {
	dir := strings.HasSuffix(entry.FileHeader.Name, "/")
	mode := fs.FileMode(0o644)
	switch {
	case dir:
		mode = fs.ModeDir | 0o755
	case python.ParseZIPExternalAttributes(entry.ExternalAttrs).UNIX.IsExecutable():
		mode = 0o755
	}
	entry.setFullName(name, dir)
	entry.CreatorVersion = 3 << 8 // UNIX
	entry.ExternalAttrs = python.ZIPAttributes(mode).Raw()
	if !mtime.IsZero() {
		entry.Modified = mtime
	}
	t[name] = entry
}

// move renames a wheel member within the tree.
func (t installTree) move(oldName, newName string) error {
	entry, ok := t[oldName].(*wheelEntry)
	if !ok {
		return &os.LinkError{Op: "rename", Old: oldName, New: newName, Err: os.ErrNotExist}
	}
	entry.setFullName(newName, entry.IsDir())
	delete(t, oldName)
	t[newName] = entry
	return nil
}

// ownedEntry is a file as it goes in to a layer: LayerFromFileReferences takes ownership from
// a *tar.Header in Sys().
type ownedEntry struct {
	fsutil.FileReference
	owner *tar.Header
}

func (e ownedEntry) Sys() interface{} { return e.owner }

// chown returns the files of the tree, owned by the platform's user and group.
func (t installTree) chown(plat python.Platform) []fsutil.FileReference {
	owner := &tar.Header{
		Uid:   plat.UID,
		Gid:   plat.GID,
		Uname: plat.UName,
		Gname: plat.GName,
	}
	refs := make([]fsutil.FileReference, 0, len(t))
	for _, file := range t {
		refs = append(refs, ownedEntry{FileReference: file, owner: owner})
	}
	return refs
}

// layerScheme validates plat and makes its install scheme relative, as io/fs paths within a
// layer.
func layerScheme(plat python.Platform) (python.Platform, error) {
	if err := plat.Init(); err != nil {
		return plat, err
	}
	for _, dir := range []*string{
		&plat.Scheme.PureLib,
		&plat.Scheme.PlatLib,
		&plat.Scheme.Headers,
		&plat.Scheme.Scripts,
		&plat.Scheme.Data,
	} {
		*dir = strings.TrimPrefix(filepath.ToSlash(*dir), "/")
	}
	return plat, nil
}
