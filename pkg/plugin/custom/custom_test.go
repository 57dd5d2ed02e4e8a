// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package custom_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/plugin/custom"
)

func needPython(t *testing.T) {
	t.Helper()
	if _, err := dexec.LookPath("python3"); err != nil {
		t.Skip("python3 is not installed")
	}
}

func writeScript(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

type fixedMetadata struct{}

func (fixedMetadata) Name() string { return "my-app" }

func (fixedMetadata) Version(context.Context) (string, error) { return "0.1.0", nil }

const buildHookScript = `
from hatchling.builders.hooks.plugin.interface import BuildHookInterface

class Hook(BuildHookInterface):
    PLUGIN_NAME = 'custom'

    def initialize(self, version, build_data):
        print('this goes to the log, not the protocol')
        build_data['artifacts'].append('/generated.txt')
        build_data['pure_python'] = False
        build_data['tag'] = 'py3-none-' + self.config['platform']
        with open(self.root + '/generated.txt', 'w') as f:
            f.write(self.metadata.name + '==' + self.metadata.version + ' ' + self.target_name)

    def finalize(self, version, build_data, artifact_path):
        with open(artifact_path, 'w') as f:
            f.write(version)
`

func TestBuildHook(t *testing.T) {
	t.Parallel()
	needPython(t)
	ctx := dlog.NewTestContext(t, true)
	root := t.TempDir()
	writeScript(t, root, custom.DefaultPath, buildHookScript)

	proj, err := config.ParseProject(root, `
[tool.hatch.build.hooks.custom]
platform = "linux_x86_64"
`)
	require.NoError(t, err)
	hooksTable, err := proj.Document().Lookup("tool", "hatch", "build", "hooks")
	require.NoError(t, err)

	hs, err := hooks.LoadBuildHooks(ctx, nil, config.NewSettings(), hooksTable, hooks.BuildHookBase{
		Root:       root,
		TargetName: "wheel",
		Metadata:   fixedMetadata{},
	})
	require.NoError(t, err)
	defer func() { assert.NoError(t, hs.Close()) }()

	buildData := hooks.NewWheelBuildData(hs.Names())
	require.NoError(t, hs.Initialize(ctx, "standard", buildData))
	assert.Equal(t, []string{"/generated.txt"}, buildData.StringSlice("artifacts"))
	assert.False(t, buildData.Bool("pure_python"))
	assert.Equal(t, "py3-none-linux_x86_64", buildData.String("tag"))
	assert.Equal(t, []string{"custom"}, buildData.StringSlice("build_hooks"))

	generated, err := os.ReadFile(filepath.Join(root, "generated.txt"))
	require.NoError(t, err)
	assert.Equal(t, "my-app==0.1.0 wheel", string(generated))

	artifact := filepath.Join(root, "artifact")
	require.NoError(t, hs.Finalize(ctx, "standard", buildData, artifact))
	content, err := os.ReadFile(artifact)
	require.NoError(t, err)
	assert.Equal(t, "standard", string(content))
}

func TestMetadataHook(t *testing.T) {
	t.Parallel()
	needPython(t)
	ctx := dlog.NewTestContext(t, true)
	root := t.TempDir()
	writeScript(t, root, "meta.py", `
from hatchling.metadata.plugin.interface import MetadataHookInterface

class Hook(MetadataHookInterface):
    def update(self, metadata):
        metadata['description'] = self.config['description']
        metadata['dynamic'].remove('description')

    def get_known_classifiers(self):
        return ['Private :: Do Not Upload']
`)
	hooksTable := config.NewTable("tool.hatch.metadata.hooks", map[string]interface{}{
		"custom": map[string]interface{}{
			"path":        "meta.py",
			"description": "hello",
		},
	})
	hs, err := hooks.LoadMetadataHooks(ctx, nil, config.NewSettings(), root, hooksTable)
	require.NoError(t, err)
	defer func() { assert.NoError(t, hs.Close()) }()

	metadata := map[string]interface{}{
		"name":    "my-app",
		"dynamic": []interface{}{"description"},
	}
	classifiers, err := hs.Update(ctx, metadata)
	require.NoError(t, err)
	assert.Equal(t, []string{"Private :: Do Not Upload"}, classifiers)
	assert.Equal(t, map[string]interface{}{
		"name":        "my-app",
		"description": "hello",
		"dynamic":     []interface{}{},
	}, metadata)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	needPython(t)
	testcases := map[string]struct {
		Script string
		Err    string
	}{
		"none": {
			Script: "x = 1\n",
			Err:    "no subclass of BuildHookInterface found in ",
		},
		"multiple": {
			Script: `
from hatchling.builders.hooks.plugin.interface import BuildHookInterface
class A(BuildHookInterface): pass
class B(BuildHookInterface): pass
`,
			Err: "multiple subclasses of BuildHookInterface found in ",
		},
		"raises": {
			Script: "raise ValueError('broken script')\n",
			Err:    "ValueError: broken script",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ctx := dlog.NewTestContext(t, true)
			root := t.TempDir()
			writeScript(t, root, custom.DefaultPath, tcData.Script)
			hooksTable := config.NewTable("hooks", map[string]interface{}{
				"custom": map[string]interface{}{},
			})
			_, err := hooks.LoadBuildHooks(ctx, nil, config.NewSettings(), hooksTable, hooks.BuildHookBase{Root: root})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tcData.Err)
		})
	}
}

func TestFactoryWins(t *testing.T) {
	t.Parallel()
	needPython(t)
	ctx := dlog.NewTestContext(t, true)
	root := t.TempDir()
	writeScript(t, root, custom.DefaultPath, `
from hatchling.builders.hooks.plugin.interface import BuildHookInterface
class A(BuildHookInterface):
    def initialize(self, version, build_data):
        build_data['tag'] = 'A'
class B(BuildHookInterface):
    def initialize(self, version, build_data):
        build_data['tag'] = 'B'
def get_build_hook():
    return B
`)
	hooksTable := config.NewTable("hooks", map[string]interface{}{
		"custom": map[string]interface{}{},
	})
	hs, err := hooks.LoadBuildHooks(ctx, nil, config.NewSettings(), hooksTable, hooks.BuildHookBase{Root: root})
	require.NoError(t, err)
	defer func() { assert.NoError(t, hs.Close()) }()
	buildData := hooks.NewWheelBuildData(hs.Names())
	require.NoError(t, hs.Initialize(ctx, "standard", buildData))
	assert.Equal(t, "B", buildData.String("tag"))
}

func TestHookException(t *testing.T) {
	t.Parallel()
	needPython(t)
	ctx := dlog.NewTestContext(t, true)
	root := t.TempDir()
	writeScript(t, root, custom.DefaultPath, `
from hatchling.builders.hooks.plugin.interface import BuildHookInterface
class Hook(BuildHookInterface):
    def initialize(self, version, build_data):
        raise RuntimeError('no way')
`)
	hooksTable := config.NewTable("hooks", map[string]interface{}{
		"custom": map[string]interface{}{},
	})
	hs, err := hooks.LoadBuildHooks(ctx, nil, config.NewSettings(), hooksTable, hooks.BuildHookBase{Root: root})
	require.NoError(t, err)
	defer func() { assert.NoError(t, hs.Close()) }()
	err = hs.Initialize(ctx, "standard", hooks.NewBuildData(hs.Names()))
	var scriptErr *custom.ScriptError
	require.True(t, errors.As(err, &scriptErr))
	assert.Equal(t, "RuntimeError", scriptErr.Type)
	assert.Equal(t, "no way", scriptErr.Msg)
	assert.Contains(t, scriptErr.Traceback, "Traceback")
}

func TestMissingScript(t *testing.T) {
	t.Parallel()
	_, err := custom.ScriptPath(t.TempDir(), config.NewTable("x", nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), custom.DefaultPath)
}

func TestBuilder(t *testing.T) {
	t.Parallel()
	needPython(t)
	ctx := dlog.NewTestContext(t, true)
	root := t.TempDir()
	dist := filepath.Join(root, "dist")
	require.NoError(t, os.Mkdir(dist, 0o755))
	writeScript(t, root, custom.DefaultPath, `
import os
from hatchling.builders.plugin.interface import BuilderInterface

class Builder(BuilderInterface):
    def get_version_api(self):
        return {'fast': self.build_fast, 'slow': self.build_slow}

    def get_default_versions(self):
        return ['fast']

    def build_fast(self, directory, **build_data):
        path = os.path.join(directory, self.metadata.name + '.txt')
        with open(path, 'w') as f:
            f.write(','.join(build_data['build_hooks']))
        return path

    def build_slow(self, directory, **build_data):
        raise NotImplementedError
`)
	b, err := custom.LoadBuilder(ctx, config.NewSettings(), root, config.NewTable("tool.hatch.build.targets.custom", nil), fixedMetadata{})
	require.NoError(t, err)
	defer func() { assert.NoError(t, b.Close()) }()

	all, defaults, err := b.Versions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fast", "slow"}, all)
	assert.Equal(t, []string{"fast"}, defaults)

	artifact, err := b.Build(ctx, "fast", dist, hooks.NewBuildData([]string{"version"}))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dist, "my-app.txt"), artifact)
	content, err := os.ReadFile(artifact)
	require.NoError(t, err)
	assert.Equal(t, "version", string(content))

	_, err = b.Build(ctx, "nope", dist, hooks.NewBuildData(nil))
	assert.Error(t, err)
}
