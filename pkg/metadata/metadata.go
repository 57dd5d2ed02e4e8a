// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package metadata resolves a project's [project] table in to validated core metadata,
// running the version source and any metadata hooks along the way.
package metadata

import (
	"context"
	"fmt"
	"sort"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/plugin"
	"github.com/datawire/pybuild/pkg/python/pep440"
	"github.com/datawire/pybuild/pkg/python/pep508"
	"github.com/datawire/pybuild/pkg/version"
)

// Project is a loaded pyproject.toml.  Resolved values are cached.
type Project struct {
	Root     string
	File     *config.Project
	Registry *plugin.Registry
	Settings *config.Settings

	table     config.Table // [project]
	hatch     config.Table // [tool.hatch]
	rawName   string
	version   *string
	versionCf *version.Config
	core      *Core
}

var _ hooks.ProjectMetadata = (*Project)(nil)

// Load reads root/pyproject.toml.
func Load(root string, reg *plugin.Registry, settings *config.Settings) (*Project, error) {
	file, err := config.LoadProject(root)
	if err != nil {
		return nil, err
	}
	return New(file, reg, settings)
}

// New wraps an already-parsed pyproject.toml.  Only the project name is validated up front;
// everything else is validated on first use.
func New(file *config.Project, reg *plugin.Registry, settings *config.Settings) (*Project, error) {
	if reg == nil {
		reg = plugin.Default
	}
	if settings == nil {
		settings = config.NewSettings()
	}
	p := &Project{
		Root:     file.Root,
		File:     file,
		Registry: reg,
		Settings: settings,
	}
	var err error
	if p.table, err = file.ProjectTable(); err != nil {
		return nil, err
	}
	if p.hatch, err = file.Hatch(); err != nil {
		return nil, err
	}
	var c Core
	if err := c.parseName(p.table, coreOptions{}); err != nil {
		return nil, err
	}
	p.rawName = c.RawName
	return p, nil
}

// Name returns the normalized project name.
func (p *Project) Name() string {
	return pep508.NormalizeName(p.rawName)
}

// RawName returns the project name as written.
func (p *Project) RawName() string {
	return p.rawName
}

// Raw returns a copy of the [project] table.
func (p *Project) Raw() map[string]interface{} {
	return p.table.Copy()
}

// Hatch returns the [tool.hatch] table.
func (p *Project) Hatch() config.Table {
	return p.hatch
}

func (p *Project) dynamic() ([]string, error) {
	return p.table.StringSlice("dynamic")
}

func contains(list []string, item string) bool {
	for _, x := range list {
		if x == item {
			return true
		}
	}
	return false
}

// VersionIsDynamic reports whether the version comes from a version source rather than
// project.version.
func (p *Project) VersionIsDynamic() (bool, error) {
	dynamic, err := p.dynamic()
	if err != nil {
		return false, err
	}
	return contains(dynamic, "version") && !p.table.Has("version"), nil
}

// VersionConfig returns the [tool.hatch.version] configuration.
func (p *Project) VersionConfig() (*version.Config, error) {
	if p.versionCf == nil {
		table, err := p.hatch.Table("version")
		if err != nil {
			return nil, err
		}
		p.versionCf = version.NewConfig(p.Root, table, p.Registry, p.Settings)
	}
	return p.versionCf, nil
}

func normalizeVersion(raw, source string) (string, error) {
	ver, err := pep440.ParseVersion(raw)
	if err != nil {
		return "", fmt.Errorf("invalid version `%s` from %s, see https://peps.python.org/pep-0440/: %w", raw, source, err)
	}
	return ver.String(), nil
}

// Version returns the normalized project version, from project.version or from the version
// source.
func (p *Project) Version(ctx context.Context) (string, error) {
	if p.core != nil {
		return p.core.Version, nil
	}
	if p.version != nil {
		return *p.version, nil
	}
	raw, static, err := p.table.String("version")
	if err != nil {
		return "", err
	}
	dynamic, err := p.dynamic()
	if err != nil {
		return "", err
	}
	var source string
	switch {
	case static && contains(dynamic, "version"):
		return "", &config.Error{
			Path: p.table.KeyPath("version"),
			Msg:  "cannot be both statically defined and listed in field `" + p.table.KeyPath("dynamic") + "`",
		}
	case static:
		source = "field `" + p.table.KeyPath("version") + "`"
	case contains(dynamic, "version"):
		cfg, err := p.VersionConfig()
		if err != nil {
			return "", err
		}
		if raw, err = cfg.Read(ctx); err != nil {
			return "", err
		}
		name, _ := cfg.SourceName()
		source = "source `" + name + "`"
	default:
		return "", &config.Error{
			Path: p.table.KeyPath("version"),
			Msg:  "is required, unless it is listed in field `" + p.table.KeyPath("dynamic") + "`",
		}
	}
	ver, err := normalizeVersion(raw, source)
	if err != nil {
		return "", err
	}
	p.version = &ver
	return ver, nil
}

// UpdateVersion applies a version directive (see version.Config.Update); it fails if the
// version is static.
func (p *Project) UpdateVersion(ctx context.Context, desired string) (oldVersion, newVersion string, err error) {
	if p.table.Has("version") {
		return "", "", fmt.Errorf("cannot set version when it is statically defined by the `%s` field",
			p.table.KeyPath("version"))
	}
	dynamic, err := p.VersionIsDynamic()
	if err != nil {
		return "", "", err
	}
	if !dynamic {
		return "", "", &config.Error{Path: p.table.KeyPath("dynamic"), Msg: "must contain `version` in order to update it"}
	}
	cfg, err := p.VersionConfig()
	if err != nil {
		return "", "", err
	}
	oldVersion, newVersion, err = cfg.Update(ctx, desired)
	if err != nil {
		return "", "", err
	}
	p.version = nil
	p.core = nil
	return oldVersion, newVersion, nil
}

// Core resolves and validates the full metadata, running metadata hooks.
func (p *Project) Core(ctx context.Context) (*Core, error) {
	if p.core != nil {
		return p.core, nil
	}
	hooksTable, err := p.hatch.Lookup("metadata", "hooks")
	if err != nil {
		return nil, err
	}
	metaTable, err := p.hatch.Table("metadata")
	if err != nil {
		return nil, err
	}
	opts := coreOptions{
		root:     p.Root,
		noVerify: p.Settings.ClassifiersNoVerify(),
	}
	if opts.allowDirectRefs, err = metaTable.Bool("allow-direct-references", false); err != nil {
		return nil, err
	}

	table := p.table
	if hooksTable.Len() > 0 {
		table, opts.extraClassifiers, err = p.runHooks(ctx, hooksTable)
		if err != nil {
			return nil, err
		}
	}

	raw, static, err := table.String("version")
	if err != nil {
		return nil, err
	}
	if static {
		opts.version, err = normalizeVersion(raw, "field `"+table.KeyPath("version")+"`")
	} else {
		opts.version, err = p.Version(ctx)
	}
	if err != nil {
		return nil, err
	}

	core, err := parseCore(table, opts)
	if err != nil {
		return nil, err
	}
	p.core = core
	return core, nil
}

func (p *Project) runHooks(ctx context.Context, hooksTable config.Table) (config.Table, []string, error) {
	hs, err := hooks.LoadMetadataHooks(ctx, p.Registry, p.Settings, p.Root, hooksTable)
	if err != nil {
		return config.Table{}, nil, err
	}
	defer func() { _ = hs.Close() }()

	data := p.table.Copy()
	dynamic, err := p.dynamic()
	if err != nil {
		return config.Table{}, nil, err
	}
	if contains(dynamic, "version") && !p.table.Has("version") {
		ver, err := p.Version(ctx)
		if err != nil {
			return config.Table{}, nil, err
		}
		data["version"] = ver
		dynamic = remove(dynamic, "version")
	}
	data["dynamic"] = toInterfaces(dynamic)
	before := make(map[string]bool, len(data))
	for k := range data {
		before[k] = true
	}

	classifiers, err := hs.Update(ctx, data)
	if err != nil {
		return config.Table{}, nil, err
	}

	table := p.table.WithData(data)
	if dynamic, err = table.StringSlice("dynamic"); err != nil {
		return config.Table{}, nil, err
	}
	var added []string
	for k := range data {
		if !before[k] {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	for _, k := range added {
		if !contains(dynamic, k) {
			return config.Table{}, nil, &config.Error{
				Path: table.KeyPath(k),
				Msg:  "was set dynamically and therefore must be listed in field `" + table.KeyPath("dynamic") + "`",
			}
		}
		dynamic = remove(dynamic, k)
	}
	data["dynamic"] = toInterfaces(dynamic)
	return table, classifiers, nil
}

func remove(list []string, item string) []string {
	ret := make([]string, 0, len(list))
	for _, x := range list {
		if x != item {
			ret = append(ret, x)
		}
	}
	return ret
}

func toInterfaces(list []string) []interface{} {
	ret := make([]interface{}, 0, len(list))
	for _, x := range list {
		ret = append(ret, x)
	}
	return ret
}
