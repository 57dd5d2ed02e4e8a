// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package custom

import (
	"context"
	"path/filepath"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/plugin"
)

// Builder is a build target defined by a script.
type Builder struct {
	proc *Process
}

// LoadBuilder instantiates the builder class from the script named by cfg (the target's
// table).
func LoadBuilder(ctx context.Context, settings *config.Settings, root string, cfg config.Table, md hooks.ProjectMetadata) (*Builder, error) {
	path, err := ScriptPath(root, cfg)
	if err != nil {
		return nil, err
	}
	mdArgs, err := metadataArgs(ctx, md)
	if err != nil {
		return nil, err
	}
	proc, err := Load(ctx, settings, path, plugin.TypeBuilder, map[string]interface{}{
		"root":     root,
		"config":   cfg.Map(),
		"metadata": mdArgs,
	})
	if err != nil {
		return nil, err
	}
	return &Builder{proc: proc}, nil
}

// Versions returns every version the builder supports, and those it builds by default.
func (b *Builder) Versions(ctx context.Context) (all, defaults []string, err error) {
	var out struct {
		API     []string `json:"api"`
		Default []string `json:"default"`
	}
	if err := b.proc.Call(ctx, "versions", nil, &out); err != nil {
		return nil, nil, err
	}
	return out.API, out.Default, nil
}

// Build builds one version in to directory, and returns the path of the artifact.  A
// relative path from the script is relative to the script's directory.
func (b *Builder) Build(ctx context.Context, version, directory string, buildData hooks.BuildData) (string, error) {
	var out struct {
		Artifact string `json:"artifact"`
	}
	err := b.proc.Call(ctx, "build", map[string]interface{}{
		"version":    version,
		"directory":  directory,
		"build_data": buildData,
	}, &out)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(out.Artifact) {
		out.Artifact = filepath.Join(filepath.Dir(b.proc.path), out.Artifact)
	}
	return out.Artifact, nil
}

// Clean has the script remove its artifacts of the given versions from directory.
func (b *Builder) Clean(ctx context.Context, directory string, versions []string) error {
	return b.proc.Call(ctx, "clean", map[string]interface{}{
		"directory": directory,
		"versions":  versions,
	}, nil)
}

func (b *Builder) Close() error {
	return b.proc.Close()
}
