// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package fsutil_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/fsutil"
	"github.com/datawire/pybuild/pkg/reproducible"
)

func names(vfs []fsutil.FileReference) []string {
	ret := make([]string, 0, len(vfs))
	for _, file := range vfs {
		ret = append(ret, file.FullName())
	}
	return ret
}

func TestSortFileReferences(t *testing.T) {
	t.Parallel()
	mtime := reproducible.DefaultEpoch
	vfs := []fsutil.FileReference{
		fsutil.NewInMemFile("a-b/c", 0o644, mtime, nil),
		fsutil.NewInMemFile("a/b", 0o644, mtime, nil),
		fsutil.NewInMemDir("a", mtime),
		fsutil.NewInMemFile("a.py", 0o644, mtime, nil),
	}
	fsutil.SortFileReferences(vfs)
	assert.Equal(t, []string{"a", "a/b", "a-b/c", "a.py"}, names(vfs))
}

func TestNormalizeMode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, fs.FileMode(0o644), fsutil.NormalizeMode(0o600))
	assert.Equal(t, fs.FileMode(0o644), fsutil.NormalizeMode(0o666))
	assert.Equal(t, fs.FileMode(0o755), fsutil.NormalizeMode(0o700))
	assert.Equal(t, fs.FileMode(0o755), fsutil.NormalizeMode(0o775))
}

func TestWriteTarGz(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.sh"), []byte("#!/bin/sh\n"), 0o700))
	osFile, err := fsutil.NewOSFileReference("pkg-1.0/script.sh", filepath.Join(dir, "script.sh"))
	require.NoError(t, err)

	vfs := []fsutil.FileReference{
		fsutil.NewInMemDir("pkg-1.0", time.Now()),
		fsutil.NewInMemFile("pkg-1.0/PKG-INFO", 0o600, time.Now(), []byte("Name: pkg\n")),
		osFile,
	}

	var first, second bytes.Buffer
	require.NoError(t, fsutil.WriteTarGz(&first, vfs, reproducible.DefaultEpoch))
	require.NoError(t, fsutil.WriteTarGz(&second, vfs, reproducible.DefaultEpoch))
	assert.Equal(t, first.Bytes(), second.Bytes())

	gzReader, err := gzip.NewReader(&first)
	require.NoError(t, err)
	assert.Equal(t, "", gzReader.Header.Name)
	assert.True(t, gzReader.Header.ModTime.IsZero() || gzReader.Header.ModTime.Unix() == 0)

	type entry struct {
		Name    string
		Mode    int64
		ModTime time.Time
		Uid     int
		Content string
	}
	var actual []entry
	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(tarReader)
		require.NoError(t, err)
		actual = append(actual, entry{
			Name:    header.Name,
			Mode:    header.Mode,
			ModTime: header.ModTime.UTC(),
			Uid:     header.Uid,
			Content: string(content),
		})
	}
	assert.Equal(t, []entry{
		{Name: "pkg-1.0/PKG-INFO", Mode: 0o644, ModTime: reproducible.DefaultEpoch, Content: "Name: pkg\n"},
		{Name: "pkg-1.0/script.sh", Mode: 0o755, ModTime: reproducible.DefaultEpoch, Content: "#!/bin/sh\n"},
	}, actual)
}

func TestWriteZipOldTimestamps(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	vfs := []fsutil.FileReference{
		fsutil.NewInMemFile("old.txt", 0o644, time.Unix(0, 0), []byte("old\n")),
	}
	require.NoError(t, fsutil.WriteZip(&buf, vfs, time.Time{}))
	assert.NotZero(t, buf.Len())
}

func TestLayers(t *testing.T) {
	t.Parallel()
	mkLayer := func(content string, mtime time.Time) []fsutil.FileReference {
		return []fsutil.FileReference{
			fsutil.NewInMemFile("usr/lib/a.py", 0o644, mtime, []byte(content)),
			fsutil.NewInMemDir("usr/lib", mtime),
			fsutil.NewInMemDir("usr", mtime),
		}
	}
	early := reproducible.DefaultEpoch
	late := early.Add(time.Hour)
	diffID := func(layer ociv1.Layer) string {
		t.Helper()
		digest, err := layer.DiffID()
		require.NoError(t, err)
		return digest.String()
	}

	aLayer, err := fsutil.LayerFromFileReferences(mkLayer("a = 1\n", late), early)
	require.NoError(t, err)
	bLayer, err := fsutil.LayerFromFileReferences(mkLayer("a = 1\n", late.Add(time.Hour)), early)
	require.NoError(t, err)
	assert.Equal(t, diffID(aLayer), diffID(bLayer), "timestamps after the clamp time are clamped")

	dLayer, err := fsutil.LayerFromFileReferences(mkLayer("a = 2\n", early), early)
	require.NoError(t, err)
	assert.NotEqual(t, diffID(aLayer), diffID(dLayer))

	// written out and read back in
	filename := filepath.Join(t.TempDir(), "layer.tar")
	file, err := os.Create(filename)
	require.NoError(t, err)
	require.NoError(t, fsutil.WriteLayer(aLayer, file))
	require.NoError(t, file.Close())
	cLayer, err := fsutil.OpenLayer(filename)
	require.NoError(t, err)
	assert.Equal(t, diffID(aLayer), diffID(cLayer))

	_, err = fsutil.OpenLayer(filepath.Join(t.TempDir(), "missing.tar"))
	assert.Error(t, err)
}
