// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"io"
	"io/fs"
	"os"

	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"
)

// WriteLayer writes the uncompressed tarball of a layer to dst.
func WriteLayer(layer ociv1.Layer, dst io.Writer) (err error) {
	src, err := layer.Uncompressed()
	if err != nil {
		return err
	}
	defer func() {
		if _err := src.Close(); _err != nil && err == nil {
			err = _err
		}
	}()
	_, err = io.Copy(dst, src)
	return err
}

// OpenLayer opens a layer tarball (uncompressed or gzipped) that was written to disk, such as by
// the layer build target.
func OpenLayer(filename string) (ociv1.Layer, error) {
	layer, err := ociv1tarball.LayerFromOpener(func() (io.ReadCloser, error) {
		return os.Open(filename)
	})
	if err != nil {
		return nil, &fs.PathError{Op: "open layer", Path: filename, Err: err}
	}
	return layer, nil
}
