// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package metadata_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/derror"
	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/metadata"
	"github.com/datawire/pybuild/pkg/plugin"
	"github.com/datawire/pybuild/pkg/python/spdx"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		filename := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0o755))
		require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	}
}

func loadProject(t *testing.T, reg *plugin.Registry, settings *config.Settings, files map[string]string) *metadata.Project {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, files)
	proj, err := metadata.Load(root, reg, settings)
	require.NoError(t, err)
	return proj
}

const fullPyproject = `
[project]
name = "My.App"
version = "1.0.0-rc1"
description = "An app"
readme = "README.md"
requires-python = ">=3.8"
license = "mit OR apache-2.0"
keywords = ["b", "a", "b"]
authors = [{name = "Jane"}, {name = "Bob", email = "bob@example.com"}]
classifiers = ["Private :: X", "Programming Language :: Python :: 3"]
dependencies = ["requests>=2", "click"]

[project.optional-dependencies]
dev = ["pytest; python_version >= '3.8'"]

[project.urls]
Source = "https://example.com/src"
Homepage = "https://example.com"

[project.scripts]
my-app = "my_app.cli:main"

[project.entry-points."pytest11"]
myplugin = "my_app.plugin"
`

func TestCoreMetadata(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	proj := loadProject(t, nil, nil, map[string]string{
		"pyproject.toml": fullPyproject,
		"README.md":      "# My App\n",
		"LICENSE.txt":    "MIT\n",
		"NOTES.txt":      "not a license\n",
	})
	assert.Equal(t, "my-app", proj.Name())
	assert.Equal(t, "My.App", proj.RawName())

	core, err := proj.Core(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0rc1", core.Version)

	assert.Equal(t, ``+
		"Metadata-Version: 2.1\n"+
		"Name: My.App\n"+
		"Version: 1.0.0rc1\n"+
		"Summary: An app\n"+
		"Project-URL: Source, https://example.com/src\n"+
		"Project-URL: Homepage, https://example.com\n"+
		"Author: Jane\n"+
		"Author-email: Bob <bob@example.com>\n"+
		"License-Expression: MIT OR Apache-2.0\n"+
		"License-File: LICENSE.txt\n"+
		"Keywords: a,b\n"+
		"Classifier: Programming Language :: Python :: 3\n"+
		"Classifier: Private :: X\n"+
		"Requires-Python: >=3.8\n"+
		"Requires-Dist: requests>=2\n"+
		"Requires-Dist: click\n"+
		"Provides-Extra: dev\n"+
		"Requires-Dist: pytest; (python_version >= \"3.8\") and extra == \"dev\"\n"+
		"Description-Content-Type: text/markdown\n"+
		"\n"+
		"# My App\n",
		string(core.CoreMetadata().Bytes()))

	assert.Equal(t, ``+
		"[console_scripts]\n"+
		"my-app = my_app.cli:main\n"+
		"\n"+
		"[pytest11]\n"+
		"myplugin = my_app.plugin\n",
		string(core.EntryPointsTxt()))

	m := core.Map()
	assert.Equal(t, "my-app", m["name"])
	assert.Equal(t, "MIT OR Apache-2.0", m["license"])
	assert.Equal(t, []string{"requests>=2", "click"}, m["dependencies"])
}

func TestVersion(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Files  map[string]string
		Expect string
		Err    string
	}{
		"static": {
			Files:  map[string]string{"pyproject.toml": "[project]\nname = \"a\"\nversion = \"v1.0\"\n"},
			Expect: "1.0",
		},
		"dynamic": {
			Files: map[string]string{
				"pyproject.toml": "[project]\nname = \"a\"\ndynamic = [\"version\"]\n[tool.hatch.version]\npath = \"a.py\"\n",
				"a.py":           "__version__ = '2.0.post1'\n",
			},
			Expect: "2.0.post1",
		},
		"both": {
			Files: map[string]string{"pyproject.toml": "[project]\nname = \"a\"\nversion = \"1\"\ndynamic = [\"version\"]\n"},
			Err:   "field `project.version` cannot be both statically defined and listed in field `project.dynamic`",
		},
		"neither": {
			Files: map[string]string{"pyproject.toml": "[project]\nname = \"a\"\n"},
			Err:   "field `project.version` is required",
		},
		"invalid": {
			Files: map[string]string{"pyproject.toml": "[project]\nname = \"a\"\nversion = \"one\"\n"},
			Err:   "invalid version `one` from field `project.version`",
		},
		"invalid-dynamic": {
			Files: map[string]string{
				"pyproject.toml": "[project]\nname = \"a\"\ndynamic = [\"version\"]\n[tool.hatch.version]\npath = \"a.py\"\n",
				"a.py":           "__version__ = 'nope'\n",
			},
			Err: "invalid version `nope` from source `regex`",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ctx := dlog.NewTestContext(t, true)
			proj := loadProject(t, nil, nil, tcData.Files)
			ver, err := proj.Version(ctx)
			if tcData.Err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tcData.Err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tcData.Expect, ver)
		})
	}
}

func TestUpdateVersion(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)

	static := loadProject(t, nil, nil, map[string]string{
		"pyproject.toml": "[project]\nname = \"a\"\nversion = \"1.0\"\n",
	})
	_, _, err := static.UpdateVersion(ctx, "minor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statically defined")

	dynamic := loadProject(t, nil, nil, map[string]string{
		"pyproject.toml": "[project]\nname = \"a\"\ndynamic = [\"version\"]\n[tool.hatch.version]\npath = \"a.py\"\n",
		"a.py":           "__version__ = '1.0.0'\n",
	})
	oldVer, newVer, err := dynamic.UpdateVersion(ctx, "minor")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", oldVer)
	assert.Equal(t, "1.1.0", newVer)
	ver, err := dynamic.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", ver)
}

func TestName(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"pyproject.toml": "[project]\nname = \"-bad\"\n"})
	_, err := metadata.Load(root, nil, nil)
	var cfgErr *config.Error
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "project.name", cfgErr.Path)

	writeFiles(t, root, map[string]string{"pyproject.toml": "[project]\n"})
	_, err = metadata.Load(root, nil, nil)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "field `project.name` is required", err.Error())
}

func TestInvalidFields(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Project string
		Err     string
	}{
		"dynamic-name":     {`dynamic = ["name"]`, "must not contain `name`"},
		"static-dynamic":   {"description = \"x\"\ndynamic = [\"description\"]", "field `project.description` cannot be both"},
		"multiline-desc":   {`description = "a\nb"`, "must be a single line"},
		"readme-ext":       {`readme = "README.doc"`, "unable to determine the content-type"},
		"readme-missing":   {`readme = "README.md"`, "readme file does not exist: README.md"},
		"readme-both":      {`readme = {content-type = "text/plain", text = "a", file = "b"}`, "must contain only one of `file` or `text`"},
		"readme-type":      {`readme = {content-type = "text/html", text = "a"}`, "field `project.readme.content-type` must be one of"},
		"requires-python":  {`requires-python = ">=three"`, "field `project.requires-python` is invalid"},
		"license-unknown":  {`license = "MIT OR Nope-1.0"`, "unknown license: nope-1.0"},
		"license-table":    {`license = {}`, "must contain either `file` or `text`"},
		"author-key":       {`authors = [{name = "a", url = "b"}]`, "field `project.authors[0]` must only contain"},
		"author-empty":     {`authors = [{}]`, "must have at least one of"},
		"classifier":       {`classifiers = ["Made Up :: Thing"]`, "unknown classifiers: Made Up :: Thing"},
		"dev-status":       {`classifiers = ["Development Status :: 8 - Legendary"]`, "unknown classifiers"},
		"console-scripts":  {"[project.entry-points.console_scripts]\na = \"b:c\"", "must be defined as `project.scripts` instead"},
		"bad-script":       {"[project.scripts]\na = \"not valid!\"", "field `project.scripts.a`"},
		"bad-extra":        {"[project.optional-dependencies]\n\"-x\" = []", "is not a valid extra name"},
		"duplicate-extras": {"[project.optional-dependencies]\nA_B = []\na-b = []", "duplicates optional dependency group \"a-b\""},
		"direct-reference": {`dependencies = ["foo @ https://example.com/foo.whl"]`, "cannot be a direct reference"},
		"license-files":    {`license-files = {paths = ["NOPE"]}`, "license file does not exist: NOPE"},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ctx := dlog.NewTestContext(t, true)
			content := "[project]\nname = \"a\"\nversion = \"1\"\n" + tcData.Project + "\n"
			proj := loadProject(t, nil, nil, map[string]string{"pyproject.toml": content})
			_, err := proj.Core(ctx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tcData.Err)
		})
	}
}

func TestLicenseUnknownIsSPDXError(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	proj := loadProject(t, nil, nil, map[string]string{
		"pyproject.toml": "[project]\nname = \"a\"\nversion = \"1\"\nlicense = \"Nope-1.0\"\n",
	})
	_, err := proj.Core(ctx)
	var spdxErr *spdx.Error
	assert.True(t, errors.As(err, &spdxErr))
}

func TestDependencyErrorsAggregate(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	proj := loadProject(t, nil, nil, map[string]string{
		"pyproject.toml": "[project]\nname = \"a\"\nversion = \"1\"\ndependencies = [\"ok\", \"bad[\", \">=1.0\"]\n",
	})
	_, err := proj.Core(ctx)
	var multi derror.MultiError
	require.True(t, errors.As(err, &multi))
	assert.Len(t, multi, 2)
	assert.Contains(t, multi[0].Error(), "Dependency #2 of field `project.dependencies` is invalid")
	assert.Contains(t, multi[1].Error(), "Dependency #3 of field `project.dependencies` is invalid")
}

func TestDirectReferencesAllowed(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	proj := loadProject(t, nil, nil, map[string]string{
		"pyproject.toml": `
[project]
name = "a"
version = "1"
dependencies = ["foo @ https://example.com/foo.whl"]
[project.optional-dependencies]
x = ["bar @ https://example.com/bar.whl"]
[tool.hatch.metadata]
allow-direct-references = true
`,
	})
	core, err := proj.Core(ctx)
	require.NoError(t, err)
	md := core.CoreMetadata()
	assert.Equal(t, []string{
		"foo@ https://example.com/foo.whl",
		"bar@ https://example.com/bar.whl ; extra == \"x\"",
	}, md.GetAll("Requires-Dist"))
}

func TestClassifiersNoVerify(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	settings := config.NewSettings()
	settings.Set(config.EnvClassifiersNoVerify, true)
	proj := loadProject(t, nil, settings, map[string]string{
		"pyproject.toml": "[project]\nname = \"a\"\nversion = \"1\"\nclassifiers = [\"Made Up :: Thing\"]\n",
	})
	core, err := proj.Core(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Made Up :: Thing"}, core.Classifiers)
}

func TestLicenseFiles(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	proj := loadProject(t, nil, nil, map[string]string{
		"pyproject.toml":   "[project]\nname = \"a\"\nversion = \"1\"\nlicense-files = [\"LICENSES/*\", \"COPYING\"]\n",
		"LICENSES/MIT.txt": "MIT",
		"LICENSES/BSD.txt": "BSD",
		"COPYING":          "GPL",
		"LICENSE":          "not matched, since license-files is explicit",
	})
	core, err := proj.Core(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"COPYING", "LICENSES/BSD.txt", "LICENSES/MIT.txt"}, core.LicenseFiles)
}

type descriptionHook struct {
	field string
}

func (h descriptionHook) Update(_ context.Context, md map[string]interface{}) error {
	md[h.field] = "from a hook"
	return nil
}

func (h descriptionHook) KnownClassifiers() []string {
	return []string{"Made Up :: By Hook"}
}

type descriptionHookClass struct {
	field string
}

func (descriptionHookClass) PluginName() string { return "describe" }

func (c descriptionHookClass) NewMetadataHook(_ context.Context, base hooks.MetadataHookBase) (hooks.MetadataHook, error) {
	return descriptionHook{field: c.field}, nil
}

func TestMetadataHooks(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)

	// The version comes from the built-in "regex" source, so start from the default registry.
	reg := plugin.Default.Clone()
	reg.Register(plugin.TypeMetadataHook.Group(), descriptionHookClass{field: "description"})
	proj := loadProject(t, reg, nil, map[string]string{
		"pyproject.toml": `
[project]
name = "a"
dynamic = ["version", "description"]
classifiers = ["Private :: Hook Was Here"]
[tool.hatch.version]
path = "a.py"
[tool.hatch.metadata.hooks.describe]
`,
		"a.py": "__version__ = '3.0'\n",
	})
	core, err := proj.Core(ctx)
	require.NoError(t, err)
	assert.Equal(t, "from a hook", core.Description)
	assert.Equal(t, "3.0", core.Version)
	assert.Empty(t, core.Dynamic)

	reg = plugin.NewRegistry()
	reg.Register(plugin.TypeMetadataHook.Group(), descriptionHookClass{field: "description"})
	proj = loadProject(t, reg, nil, map[string]string{
		"pyproject.toml": `
[project]
name = "a"
version = "1"
[tool.hatch.metadata.hooks.describe]
`,
	})
	_, err = proj.Core(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field `project.description` was set dynamically and therefore must be listed in field `project.dynamic`")
}

func TestMetadataHookClassifiers(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	reg := plugin.NewRegistry()
	reg.Register(plugin.TypeMetadataHook.Group(), descriptionHookClass{field: "summary-note"})
	proj := loadProject(t, reg, nil, map[string]string{
		"pyproject.toml": `
[project]
name = "a"
version = "1"
dynamic = ["summary-note"]
classifiers = ["Made Up :: By Hook"]
[tool.hatch.metadata.hooks.describe]
`,
	})
	core, err := proj.Core(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Made Up :: By Hook"}, core.Classifiers)
}
