// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pyinspect

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/datawire/dlib/dexec"
)

// NativeFS is the FS of the machine we are running on.
type NativeFS struct{}

var _ FS = NativeFS{}

func (NativeFS) Split(path string) (dir, file string) { return filepath.Split(path) }
func (NativeFS) Join(elem ...string) string           { return filepath.Join(elem...) }

func (NativeFS) LookPath(file string) (string, error) {
	val, err := dexec.LookPath(file)
	var eerr *dexec.Error
	if errors.As(err, &eerr) {
		err = &fs.PathError{Op: "lookpath", Path: file, Err: eerr.Err}
	}
	return val, err
}
