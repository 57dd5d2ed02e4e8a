// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package dists_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python/dists"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func TestSiteSource(t *testing.T) {
	t.Parallel()
	site1 := t.TempDir()
	site2 := t.TempDir()
	writeFile(t, filepath.Join(site1, "foo-1.0.dist-info", "METADATA"),
		"Metadata-Version: 2.1\nName: foo\nVersion: 1.0\nProvides-Extra: Test_Extra\n")
	writeFile(t, filepath.Join(site1, "foo", "__init__.py"), "")
	writeFile(t, filepath.Join(site2, "bar-2.0.dist-info", "METADATA"),
		"Metadata-Version: 2.1\nName: bar\nVersion: 2.0\n")
	writeFile(t, filepath.Join(site2, "bar-2.0.dist-info", "direct_url.json"),
		`{"url": "https://example.com/bar.git", "vcs_info": {"vcs": "git", "commit_id": "abc123"}}`)
	writeFile(t, filepath.Join(site2, "python.zip"), "")

	src := &dists.SiteSource{Path: []string{
		site1,
		filepath.Join(site1, "does-not-exist"),
		filepath.Join(site2, "python.zip"),
		site2,
	}}

	foo, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "foo", foo.Name)
	assert.True(t, foo.ProvidesExtra("test-extra"))
	assert.Nil(t, foo.DirectURL)

	bar, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "bar", bar.Name)
	require.NotNil(t, bar.DirectURL)
	assert.Equal(t, "abc123", bar.DirectURL.VCSInfo.CommitID)

	_, err = src.Next()
	assert.True(t, errors.Is(err, io.EOF))
}
