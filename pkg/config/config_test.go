// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/config"
)

const pyproject = `
[build-system]
requires = ["hatchling"]
build-backend = "hatchling.build"

[project]
name = "demo"
dynamic = ["version"]

[tool.hatch.version]
path = "demo/__about__.py"
validate-bump = "yes"
pattern = 7

[[tool.hatch.build.hooks.custom.items]]
a = 1

[tool.hatch.build.targets.wheel]
packages = ["src/demo", 3]
`

func TestTable(t *testing.T) {
	t.Parallel()
	proj, err := config.ParseProject("/src", pyproject)
	require.NoError(t, err)

	hatch, err := proj.Hatch()
	require.NoError(t, err)
	assert.Equal(t, "tool.hatch", hatch.Path())

	ver, err := hatch.Table("version")
	require.NoError(t, err)

	path, err := ver.RequiredString("path")
	require.NoError(t, err)
	assert.Equal(t, "demo/__about__.py", path)

	_, err = ver.RequiredString("expression")
	var cfgErr *config.Error
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "tool.hatch.version.expression", cfgErr.Path)
	assert.EqualError(t, err, "field `tool.hatch.version.expression` is required")

	_, _, err = ver.String("pattern")
	var typeErr *config.TypeError
	require.True(t, errors.As(err, &typeErr))
	assert.EqualError(t, err, "field `tool.hatch.version.pattern` must be a string, not a number")

	_, err = ver.Bool("validate-bump", true)
	assert.EqualError(t, err, "field `tool.hatch.version.validate-bump` must be a boolean, not a string")

	def, err := ver.Bool("missing", true)
	require.NoError(t, err)
	assert.True(t, def)

	wheel, err := hatch.Lookup("build", "targets", "wheel")
	require.NoError(t, err)
	assert.Equal(t, "tool.hatch.build.targets.wheel", wheel.Path())
	_, err = wheel.StringSlice("packages")
	assert.EqualError(t, err, "field `tool.hatch.build.targets.wheel.packages` must be an array of strings, not an array")

	items, err := hatch.Lookup("build", "hooks", "custom")
	require.NoError(t, err)
	list, err := items.Array("items")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty, err := hatch.Lookup("envs", "default")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, "tool.hatch.envs.default", empty.Path())

	_, err = proj.Document().Table("project")
	require.NoError(t, err)
	project, _ := proj.ProjectTable()
	_, err = project.Table("name")
	assert.EqualError(t, err, "field `project.name` must be a table, not a string")
}

func TestMerge(t *testing.T) {
	t.Parallel()
	base := config.NewTable("tool.hatch.build", map[string]interface{}{"a": "1", "b": "2"})
	over := config.NewTable("tool.hatch.build.targets.wheel", map[string]interface{}{"b": "3"})
	merged := base.Merge(over)
	assert.Equal(t, map[string]interface{}{"a": "1", "b": "3"}, merged.Map())
	assert.Equal(t, []string{"a", "b"}, merged.Keys())
	assert.Equal(t, "2", base.Map()["b"])
}

func TestLoadProject(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := config.LoadProject(dir)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(pyproject), 0o644))
	proj, err := config.LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, proj.Root)

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("[project\n"), 0o644))
	_, err = config.LoadProject(dir)
	assert.Error(t, err)
}

func TestSettings(t *testing.T) {
	t.Setenv(config.EnvBuildClean, "true")
	t.Setenv(config.EnvVersionValidateBump, "false")
	t.Setenv(config.EnvBuildHookEnablePfx+"CUSTOM", "1")

	settings := config.NewSettings()
	assert.True(t, settings.BuildClean())
	assert.False(t, settings.HooksOnly())
	assert.Equal(t, "", settings.BuildLocation())

	validate, set := settings.ValidateBump()
	assert.True(t, set)
	assert.False(t, validate)

	enabled, set := settings.HookEnabled("custom")
	assert.True(t, set)
	assert.True(t, enabled)

	_, set = settings.HookEnabled("version")
	assert.False(t, set)

	settings.Set(config.EnvBuildLocation, "out")
	assert.Equal(t, "out", settings.BuildLocation())
}

func TestSettingsPython(t *testing.T) {
	t.Setenv(config.EnvPython, `"/opt/my python/bin/python3" -I`)
	args, err := config.NewSettings().Python()
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/my python/bin/python3", "-I"}, args)

	var nilSettings *config.Settings
	args, err = nilSettings.Python()
	require.NoError(t, err)
	assert.Equal(t, []string{"python3"}, args)

	t.Setenv(config.EnvPython, `"unterminated`)
	_, err = config.NewSettings().Python()
	assert.Error(t, err)
}

func TestKeyOrder(t *testing.T) {
	t.Parallel()
	proj, err := config.ParseProject("/src", `
[tool.hatch.build.hooks.zeta]
[tool.hatch.build.hooks.alpha]
x = 1
[tool.hatch.build.hooks.mid]
`)
	require.NoError(t, err)
	hooks, err := proj.Document().Lookup("tool", "hatch", "build", "hooks")
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, hooks.Keys())

	merged := hooks.Merge(config.NewTable("", map[string]interface{}{"beta": map[string]interface{}{}}))
	assert.Equal(t, []string{"zeta", "alpha", "mid", "beta"}, merged.Keys())
}

func TestKeyOrderDeepTables(t *testing.T) {
	t.Parallel()
	proj, err := config.ParseProject("/src", `
[tool.hatch.build.targets.wheel]
sources = {"lib" = ""}
only-include = ["lib"]
bypass-selection = true

[tool.hatch.build.targets.wheel.force-include]
"../LICENSE" = "pkg/LICENSE"
"bin/tool" = "pkg/tool"
"a.b" = "pkg/ab"

[tool.hatch.build.targets.sdist.hooks.zeta]
[tool.hatch.build.targets.custom]
`)
	require.NoError(t, err)

	wheel, err := proj.Document().Lookup("tool", "hatch", "build", "targets", "wheel")
	require.NoError(t, err)
	assert.Equal(t, []string{"sources", "only-include", "bypass-selection", "force-include"}, wheel.Keys())

	forced, err := wheel.Table("force-include")
	require.NoError(t, err)
	assert.Equal(t, []string{"../LICENSE", "bin/tool", "a.b"}, forced.Keys())

	// "sdist" is only implied by its hooks table.
	targets, err := proj.Document().Lookup("tool", "hatch", "build", "targets")
	require.NoError(t, err)
	assert.Equal(t, []string{"wheel", "sdist", "custom"}, targets.Keys())
}
