// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package backend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/backend"
	"github.com/datawire/pybuild/pkg/builder"
	"github.com/datawire/pybuild/pkg/testutil"
)

const pyprojectTOML = `
[build-system]
requires = ["pybuild"]

[project]
name = "hello-world"
version = "0.3.1"
dependencies = ["attrs"]

[tool.hatch.build.targets.wheel]
dependencies = ["cffi"]
`

func newBackend(t *testing.T, pyproject string) *backend.Backend {
	t.Helper()
	root := t.TempDir()
	for name, content := range map[string]string{
		"pyproject.toml":          pyproject,
		"hello_world/__init__.py": "GREETING = 'hi'\n",
	} {
		filename := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0o755))
		require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	}
	return &backend.Backend{Root: root}
}

func TestGetRequires(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	b := newBackend(t, pyprojectTOML+"dev-mode-exact = true\n")

	reqs, err := b.GetRequiresForBuildSdist(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, reqs)

	reqs, err = b.GetRequiresForBuildWheel(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"cffi"}, reqs)

	reqs, err = b.GetRequiresForBuildEditable(ctx, backend.ConfigSettings{"ignored": {"yes"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"cffi", builder.EditablesRequirement}, reqs)
}

func TestBuildHooks(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Hook     string
		Filename string
		Contains string
	}{
		"sdist":    {"build_sdist", "hello_world-0.3.1.tar.gz", "hello_world-0.3.1/PKG-INFO"},
		"wheel":    {"build_wheel", "hello_world-0.3.1-py3-none-any.whl", "hello_world/__init__.py"},
		"editable": {"build_editable", "hello_world-0.3.1-py3-none-any.whl", "_hello_world.pth"},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := dlog.NewTestContext(t, true)
			b := newBackend(t, pyprojectTOML)
			dist := t.TempDir()

			result, err := b.Call(ctx, tc.Hook, dist, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.Filename, result)
			assert.Contains(t, testutil.ArchiveNames(t, filepath.Join(dist, tc.Filename)), tc.Contains)
			// Nothing lands in the project's own dist directory.
			assert.NoDirExists(t, filepath.Join(b.Root, "dist"))
		})
	}
}

func TestPrepareMetadata(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	b := newBackend(t, pyprojectTOML+"dev-mode-exact = true\n")

	dir := t.TempDir()
	distInfo, err := b.PrepareMetadataForBuildWheel(ctx, dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello_world-0.3.1.dist-info", distInfo)
	content, err := os.ReadFile(filepath.Join(dir, distInfo, "METADATA"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Name: hello-world\nVersion: 0.3.1\n")
	assert.Contains(t, string(content), "Requires-Dist: attrs\n")
	assert.NotContains(t, string(content), builder.EditablesRequirement)

	dir = t.TempDir()
	distInfo, err = b.PrepareMetadataForBuildEditable(ctx, dir, nil)
	require.NoError(t, err)
	content, err = os.ReadFile(filepath.Join(dir, distInfo, "METADATA"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Requires-Dist: attrs\nRequires-Dist: "+builder.EditablesRequirement+"\n")
}

func TestCallErrors(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)

	_, err := newBackend(t, pyprojectTOML).Call(ctx, "build_everything", t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown hook "build_everything"`)

	_, err = (&backend.Backend{Root: t.TempDir()}).Call(ctx, "build_wheel", t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build_wheel: ")
}
