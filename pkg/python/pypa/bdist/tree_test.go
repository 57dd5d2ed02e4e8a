// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package bdist

import (
	"archive/tar"
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python"
)

func newWheelEntry(name string, mode fs.FileMode, content string) *wheelEntry {
	return &wheelEntry{
		FileHeader: zip.FileHeader{
			Name:               name,
			CreatorVersion:     3 << 8,
			ExternalAttrs:      python.ZIPAttributes(mode).Raw(),
			UncompressedSize64: uint64(len(content)),
		},
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestInstallTreeAdd(t *testing.T) {
	t.Parallel()
	mtime := time.Date(2022, 2, 2, 0, 0, 0, 0, time.UTC)
	testcases := map[string]struct {
		Member string
		Mode   fs.FileMode
		Want   fs.FileMode
	}{
		"dir":        {"demo/", fs.ModeDir | 0o700, fs.ModeDir | 0o755},
		"executable": {"demo/run", 0o750, 0o755},
		"private":    {"demo/a.py", 0o600, 0o644},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tree := make(installTree)
			tree.add("usr/lib/"+strings.TrimSuffix(tc.Member, "/"), mtime, newWheelEntry(tc.Member, tc.Mode, ""))
			require.Len(t, tree, 1)
			for fullName, file := range tree {
				assert.Equal(t, fullName, file.FullName())
				assert.Equal(t, tc.Want, file.Mode())
				assert.Equal(t, tc.Want.IsDir(), file.IsDir())
				assert.Equal(t, mtime, file.ModTime())
			}
		})
	}
}

func TestInstallTreeMove(t *testing.T) {
	t.Parallel()
	tree := make(installTree)
	tree.add("site/demo-1.0.data/scripts/tool", time.Time{}, newWheelEntry("demo-1.0.data/scripts/tool", 0o644, "x"))

	require.NoError(t, tree.move("site/demo-1.0.data/scripts/tool", "bin/tool"))
	assert.NotContains(t, tree, "site/demo-1.0.data/scripts/tool")
	require.Contains(t, tree, "bin/tool")
	assert.Equal(t, "bin/tool", tree["bin/tool"].FullName())
	assert.Equal(t, "tool", tree["bin/tool"].Name())

	err := tree.move("site/missing", "bin/missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReplacePrefix(t *testing.T) {
	t.Parallel()
	entry := newWheelEntry("demo-1.0.data/scripts/tool", 0o644, "#!pythonw\nprint(1)\n")
	entry.replacePrefix(len("#!pythonw"), "#!/usr/bin/python3")
	entry.setExecutable()

	reader, err := entry.Open()
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "#!/usr/bin/python3\nprint(1)\n", string(content))
	assert.Equal(t, int64(len(content)), entry.Size())
	assert.Equal(t, fs.FileMode(0o755), entry.Mode())

	short := newWheelEntry("demo-1.0.data/scripts/short", 0o644, "#!")
	short.replacePrefix(len("#!python"), "#!/usr/bin/python3")
	_, err = short.Open()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestChown(t *testing.T) {
	t.Parallel()
	tree := make(installTree)
	tree.add("usr/bin/tool", time.Time{}, newWheelEntry("tool", 0o755, "x"))
	refs := tree.chown(python.Platform{UID: 1000, GID: 100, UName: "app", GName: "users"})
	require.Len(t, refs, 1)

	header, err := tar.FileInfoHeader(refs[0], "")
	require.NoError(t, err)
	assert.Equal(t, 1000, header.Uid)
	assert.Equal(t, 100, header.Gid)
	assert.Equal(t, "app", header.Uname)
	assert.Equal(t, "users", header.Gname)
	assert.Equal(t, int64(1), header.Size)
}
