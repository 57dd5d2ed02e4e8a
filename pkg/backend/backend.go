// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package backend implements the PEP 517 build-backend hooks (and the PEP 660 editable
// hooks) on top of package builder.
//
// Each hook loads the project afresh from Root, as a frontend calls every hook in a new
// process.  Config settings are accepted and logged, but no setting changes behavior.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/datawire/dlib/dlog"
	"github.com/natefinch/atomic"

	"github.com/datawire/pybuild/pkg/builder"
	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/metadata"
	"github.com/datawire/pybuild/pkg/plugin"
	"github.com/datawire/pybuild/pkg/python/pep440"
	"github.com/datawire/pybuild/pkg/python/pypa/bdist"
)

// ConfigSettings are the frontend's config_settings.
type ConfigSettings map[string][]string

// Hooks lists the hook names, as a frontend spells them.
var Hooks = []string{
	"get_requires_for_build_sdist",
	"get_requires_for_build_wheel",
	"get_requires_for_build_editable",
	"prepare_metadata_for_build_wheel",
	"prepare_metadata_for_build_editable",
	"build_sdist",
	"build_wheel",
	"build_editable",
}

// Backend answers hooks for the project in Root.
type Backend struct {
	Root     string
	Registry *plugin.Registry // nil means plugin.Default
	Settings *config.Settings // nil means config.NewSettings()
}

func (b *Backend) load(ctx context.Context, hook string, configSettings ConfigSettings) (*metadata.Project, error) {
	if len(configSettings) > 0 {
		keys := make([]string, 0, len(configSettings))
		for k := range configSettings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		dlog.Debugf(ctx, "%s: ignoring config settings %v", hook, keys)
	}
	project, err := metadata.Load(b.Root, b.Registry, b.Settings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hook, err)
	}
	return project, nil
}

func (b *Backend) requires(ctx context.Context, hook, target, version string, configSettings ConfigSettings) ([]string, error) {
	project, err := b.load(ctx, hook, configSettings)
	if err != nil {
		return nil, err
	}
	reqs, err := builder.New(project).Requires(ctx, target, version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hook, err)
	}
	if reqs == nil {
		reqs = []string{}
	}
	return reqs, nil
}

func (b *Backend) GetRequiresForBuildSdist(ctx context.Context, configSettings ConfigSettings) ([]string, error) {
	return b.requires(ctx, "get_requires_for_build_sdist", "sdist", "standard", configSettings)
}

func (b *Backend) GetRequiresForBuildWheel(ctx context.Context, configSettings ConfigSettings) ([]string, error) {
	return b.requires(ctx, "get_requires_for_build_wheel", "wheel", "standard", configSettings)
}

func (b *Backend) GetRequiresForBuildEditable(ctx context.Context, configSettings ConfigSettings) ([]string, error) {
	return b.requires(ctx, "get_requires_for_build_editable", "wheel", "editable", configSettings)
}

// build builds exactly one version of a target in to directory and returns the artifact's
// base name.
func (b *Backend) build(ctx context.Context, hook, target, version, directory string, configSettings ConfigSettings) (string, error) {
	project, err := b.load(ctx, hook, configSettings)
	if err != nil {
		return "", err
	}
	directory, err = filepath.Abs(directory)
	if err != nil {
		return "", fmt.Errorf("%s: %w", hook, err)
	}
	artifacts := builder.New(project).Build(ctx, builder.BuildOptions{
		Target:    target,
		Versions:  []string{version},
		Directory: directory,
	})
	defer func() { _ = artifacts.Close() }()
	var artifact string
	for artifacts.Next() {
		artifact = artifacts.Path()
	}
	if err := artifacts.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", hook, err)
	}
	if artifact == "" {
		return "", fmt.Errorf("%s: the %s target produced no artifact", hook, target)
	}
	if err := artifacts.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", hook, err)
	}
	return filepath.Base(artifact), nil
}

func (b *Backend) BuildSdist(ctx context.Context, sdistDirectory string, configSettings ConfigSettings) (string, error) {
	return b.build(ctx, "build_sdist", "sdist", "standard", sdistDirectory, configSettings)
}

// BuildWheel builds a wheel.  The metadataDirectory from an earlier
// PrepareMetadataForBuildWheel call is not reused, as the build regenerates the same
// metadata.
func (b *Backend) BuildWheel(ctx context.Context, wheelDirectory string, configSettings ConfigSettings, metadataDirectory string) (string, error) {
	return b.build(ctx, "build_wheel", "wheel", "standard", wheelDirectory, configSettings)
}

func (b *Backend) BuildEditable(ctx context.Context, wheelDirectory string, configSettings ConfigSettings, metadataDirectory string) (string, error) {
	return b.build(ctx, "build_editable", "wheel", "editable", wheelDirectory, configSettings)
}

// prepareMetadata writes "{name}-{version}.dist-info/METADATA" in to metadataDirectory and
// returns the .dist-info directory's base name.
func (b *Backend) prepareMetadata(ctx context.Context, hook, version, metadataDirectory string, configSettings ConfigSettings) (string, error) {
	project, err := b.load(ctx, hook, configSettings)
	if err != nil {
		return "", err
	}
	core, err := project.Core(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", hook, err)
	}
	ver, err := pep440.ParseVersion(core.Version)
	if err != nil {
		return "", fmt.Errorf("%s: %w", hook, err)
	}
	var extraDeps []string
	if version == "editable" {
		// The editable wheel's own extra dependencies.
		if extraDeps, err = builder.New(project).EditableDependencies(ctx); err != nil {
			return "", fmt.Errorf("%s: %w", hook, err)
		}
	}
	distInfo := bdist.DistInfoDir(core.Name, *ver)
	dir := filepath.Join(metadataDirectory, distInfo)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", hook, err)
	}
	md := builder.MetadataFile(core, extraDeps)
	if err := atomic.WriteFile(filepath.Join(dir, "METADATA"), bytes.NewReader(md)); err != nil {
		return "", fmt.Errorf("%s: %w", hook, err)
	}
	dlog.Infof(ctx, "%s: wrote %s", hook, filepath.Join(dir, "METADATA"))
	return distInfo, nil
}

func (b *Backend) PrepareMetadataForBuildWheel(ctx context.Context, metadataDirectory string, configSettings ConfigSettings) (string, error) {
	return b.prepareMetadata(ctx, "prepare_metadata_for_build_wheel", "standard", metadataDirectory, configSettings)
}

func (b *Backend) PrepareMetadataForBuildEditable(ctx context.Context, metadataDirectory string, configSettings ConfigSettings) (string, error) {
	return b.prepareMetadata(ctx, "prepare_metadata_for_build_editable", "editable", metadataDirectory, configSettings)
}

// Call runs a hook by name.  List-valued results (requirements) are returned as a
// []string; everything else is a string naming what was written to directory.
func (b *Backend) Call(ctx context.Context, hook, directory string, configSettings ConfigSettings) (interface{}, error) {
	switch hook {
	case "get_requires_for_build_sdist":
		return b.GetRequiresForBuildSdist(ctx, configSettings)
	case "get_requires_for_build_wheel":
		return b.GetRequiresForBuildWheel(ctx, configSettings)
	case "get_requires_for_build_editable":
		return b.GetRequiresForBuildEditable(ctx, configSettings)
	case "prepare_metadata_for_build_wheel":
		return b.PrepareMetadataForBuildWheel(ctx, directory, configSettings)
	case "prepare_metadata_for_build_editable":
		return b.PrepareMetadataForBuildEditable(ctx, directory, configSettings)
	case "build_sdist":
		return b.BuildSdist(ctx, directory, configSettings)
	case "build_wheel":
		return b.BuildWheel(ctx, directory, configSettings, "")
	case "build_editable":
		return b.BuildEditable(ctx, directory, configSettings, "")
	default:
		return nil, fmt.Errorf("unknown hook %q; valid hooks are %v", hook, Hooks)
	}
}
