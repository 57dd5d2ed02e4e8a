// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/python/pep440"
	"github.com/datawire/pybuild/pkg/testutil"
	"github.com/datawire/pybuild/pkg/version"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func table(opts map[string]interface{}) config.Table {
	return config.NewTable("tool.hatch.version", opts)
}

const aboutPy = `# SPDX-License-Identifier: MIT
"""Package metadata."""

__author__ = "someone"
__version__ = "1.2.3"
__all__ = ["__version__"]
`

func TestRegexSource(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg", "__about__.py"), aboutPy)

	src := &version.RegexSource{Root: root, Config: table(map[string]interface{}{"path": "pkg/__about__.py"})}
	data, err := src.GetVersionData(ctx)
	require.NoError(t, err)
	ver, err := data.Version()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", ver)

	require.NoError(t, src.SetVersion(ctx, "1.3.0", data))
	content, err := os.ReadFile(filepath.Join(root, "pkg", "__about__.py"))
	require.NoError(t, err)
	assert.Equal(t, `# SPDX-License-Identifier: MIT
"""Package metadata."""

__author__ = "someone"
__version__ = "1.3.0"
__all__ = ["__version__"]
`, string(content))
}

func TestRegexSourcePatterns(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	testcases := map[string]struct {
		Content string
		Pattern string
		Want    string
	}{
		"single-quotes": {Content: "VERSION = 'v0.1.0'\n", Want: "0.1.0"},
		"lower-case":    {Content: "version = \"2.0\"\n", Want: "2.0"},
		"no-spaces":     {Content: "x = 1\n__version__=\"3.0a1\"\n", Want: "3.0a1"},
		"skip-mismatched-quotes": {
			Content: "__version__ = \"1.0'\nVERSION = '2.0'\n",
			Want:    "2.0",
		},
		"other-quote-inside": {Content: "__version__ = \"1.0'dev\"\n", Want: "1.0'dev"},
		"custom": {
			Content: "[metadata]\nrelease: 4.5.6\n",
			Pattern: `release: (?P<version>\S+)`,
			Want:    "4.5.6",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			writeFile(t, filepath.Join(root, "v.py"), tcData.Content)
			opts := map[string]interface{}{"path": "v.py"}
			if tcData.Pattern != "" {
				opts["pattern"] = tcData.Pattern
			}
			src := &version.RegexSource{Root: root, Config: table(opts)}
			data, err := src.GetVersionData(ctx)
			require.NoError(t, err)
			assert.Equal(t, tcData.Want, data["version"])
		})
	}
}

func TestRegexSourceErrors(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "v.py"), "nothing here\n")

	var cfgErr *config.Error
	var typeErr *config.TypeError

	_, err := (&version.RegexSource{Root: root, Config: table(nil)}).GetVersionData(ctx)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "tool.hatch.version.path", cfgErr.Path)

	_, err = (&version.RegexSource{Root: root, Config: table(map[string]interface{}{"path": int64(1)})}).GetVersionData(ctx)
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "tool.hatch.version.path", typeErr.Path)

	_, err = (&version.RegexSource{Root: root, Config: table(map[string]interface{}{"path": "v.py", "pattern": true})}).GetVersionData(ctx)
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "tool.hatch.version.pattern", typeErr.Path)

	// a missing file is reported before the pattern is even compiled
	_, err = (&version.RegexSource{Root: root, Config: table(map[string]interface{}{"path": "missing.py", "pattern": "("})}).GetVersionData(ctx)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = (&version.RegexSource{Root: root, Config: table(map[string]interface{}{"path": "v.py", "pattern": "here"})}).GetVersionData(ctx)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "tool.hatch.version.pattern", cfgErr.Path)

	_, err = (&version.RegexSource{Root: root, Config: table(map[string]interface{}{"path": "v.py"})}).GetVersionData(ctx)
	assert.Contains(t, err.Error(), "unable to parse the version from the file")

	writeFile(t, filepath.Join(root, "mismatched.py"), "__version__ = \"1.0'\n")
	_, err = (&version.RegexSource{Root: root, Config: table(map[string]interface{}{"path": "mismatched.py"})}).GetVersionData(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to parse the version from the file")
}

func TestRegexSourceRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	root := t.TempDir()
	const prefix = "# header\nimport os\n\n__version__ = '"
	const suffix = "'\n\nprint(os.getcwd())\n"
	testutil.QuickCheck(t, func(orig, next pep440.LocalVersion) bool {
		filename := filepath.Join(root, "v.py")
		if err := os.WriteFile(filename, []byte(prefix+orig.String()+suffix), 0o644); err != nil {
			return false
		}
		src := &version.RegexSource{Root: root, Config: table(map[string]interface{}{"path": "v.py"})}
		data, err := src.GetVersionData(ctx)
		if err != nil || data["version"] != orig.String() {
			return false
		}
		if err := src.SetVersion(ctx, next.String(), data); err != nil {
			return false
		}
		data, err = src.GetVersionData(ctx)
		if err != nil || data["version"] != next.String() {
			return false
		}
		content, err := os.ReadFile(filename)
		return err == nil && string(content) == prefix+next.String()+suffix
	}, testutil.QuickConfig{MaxCount: 50})
}

func TestEnvSource(t *testing.T) {
	ctx := dlog.NewTestContext(t, true)
	t.Setenv("MY_PROJECT_VERSION", "4.5.6")

	src := &version.EnvSource{Config: table(map[string]interface{}{"variable": "MY_PROJECT_VERSION"})}
	data, err := src.GetVersionData(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4.5.6", data["version"])
	assert.True(t, errors.Is(src.SetVersion(ctx, "5.0", data), version.ErrReadOnly))

	_, err = (&version.EnvSource{Config: table(map[string]interface{}{"variable": "PYBUILD_TEST_UNSET_VARIABLE"})}).GetVersionData(ctx)
	assert.EqualError(t, err, "version.EnvSource: environment variable PYBUILD_TEST_UNSET_VARIABLE is not set")

	var cfgErr *config.Error
	_, err = (&version.EnvSource{Config: table(nil)}).GetVersionData(ctx)
	assert.True(t, errors.As(err, &cfgErr))
}

func TestCodeSource(t *testing.T) {
	t.Parallel()
	if _, err := dexec.LookPath("python3"); err != nil {
		t.Skip("python3 is not installed")
	}
	ctx := dlog.NewTestContext(t, true)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "helper.py"), "BASE = (1, 4)\n")
	writeFile(t, filepath.Join(root, "pkg", "version.py"),
		"from helper import BASE\n__version__ = '.'.join(map(str, BASE))\nVERSION_INFO = BASE\n")

	src := &version.CodeSource{Root: root, Config: table(map[string]interface{}{
		"path":         "pkg/version.py",
		"search-paths": []interface{}{"lib"},
	})}
	data, err := src.GetVersionData(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.4", data["version"])
	assert.True(t, errors.Is(src.SetVersion(ctx, "2.0", data), version.ErrReadOnly))

	src = &version.CodeSource{Root: root, Config: table(map[string]interface{}{
		"path":         "pkg/version.py",
		"expression":   "'%d.%d.0' % VERSION_INFO",
		"search-paths": []interface{}{"lib"},
	})}
	data, err = src.GetVersionData(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", data["version"])

	_, err = (&version.CodeSource{Root: root, Config: table(map[string]interface{}{"path": "pkg/version.py"})}).GetVersionData(ctx)
	assert.Error(t, err, "helper is not importable without search-paths")
}

func TestCodeSourceOptionErrors(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	root := t.TempDir()

	var cfgErr *config.Error
	var typeErr *config.TypeError

	_, err := (&version.CodeSource{Root: root, Config: table(nil)}).GetVersionData(ctx)
	assert.True(t, errors.As(err, &cfgErr))

	_, err = (&version.CodeSource{Root: root, Config: table(map[string]interface{}{"path": "v.py", "expression": int64(3)})}).GetVersionData(ctx)
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "tool.hatch.version.expression", typeErr.Path)

	_, err = (&version.CodeSource{Root: root, Config: table(map[string]interface{}{"path": "v.py", "search-paths": "lib"})}).GetVersionData(ctx)
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "tool.hatch.version.search-paths", typeErr.Path)

	_, err = (&version.CodeSource{Root: root, Config: table(map[string]interface{}{"path": "v.py"})}).GetVersionData(ctx)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
