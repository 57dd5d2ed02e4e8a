// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package builder assembles build artifacts (sdists, wheels, OCI layers, and script-defined
// artifacts) from a project.
//
// Each kind of artifact is a "builder" plugin implementing Target.  A build of one target
// runs that target's build hooks around each version it builds:
//
//	clean       if requested; the target's own Clean too, unless hooks-only
//	initialize  before the target assembles its files
//	build       skipped for a hooks-only build
//	finalize    after the artifact is written; skipped for a hooks-only build
//	clean       of just that version, if clean-hooks-after was requested
//
// Artifacts are reproducible by default: entries are sorted, owners and permissions are
// normalized, and timestamps come from $SOURCE_DATE_EPOCH (or a fixed date).
package builder

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/datawire/dlib/derror"
	"github.com/datawire/dlib/dlog"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/metadata"
	"github.com/datawire/pybuild/pkg/plugin"
)

// DefaultTargets are built when neither the caller nor the project names any.
var DefaultTargets = []string{"sdist", "wheel"}

// Builder builds the targets of one project.
type Builder struct {
	Project *metadata.Project
}

func New(project *metadata.Project) *Builder {
	return &Builder{Project: project}
}

// BuildOptions says what to build.  The boolean options are also turned on by the
// corresponding HATCH_BUILD_* settings.
type BuildOptions struct {
	Target    string   // a builder plugin name, such as "wheel"
	Versions  []string // empty means the target's configured (or default) versions
	Directory string   // overrides HATCH_BUILD_LOCATION and the configured directory

	Clean           bool
	CleanHooksAfter bool
	HooksOnly       bool
	CleanOnly       bool
}

// Targets returns the names of every available target.
func (b *Builder) Targets(ctx context.Context) []string {
	return b.Project.Registry.Names(ctx, plugin.TypeBuilder)
}

// ConfiguredTargets returns the targets named in [tool.hatch.build.targets], or
// DefaultTargets if there are none.
func (b *Builder) ConfiguredTargets() ([]string, error) {
	targets, err := b.Project.Hatch().Lookup("build", "targets")
	if err != nil {
		return nil, err
	}
	if names := targets.Keys(); len(names) > 0 {
		return names, nil
	}
	return DefaultTargets, nil
}

func (b *Builder) targetConfig(name, directory string) (*TargetConfig, error) {
	buildTable, err := b.Project.Hatch().Table("build")
	if err != nil {
		return nil, err
	}
	if directory == "" {
		directory = b.Project.Settings.BuildLocation()
	}
	return loadTargetConfig(b.Project.Root, name, buildTable, directory)
}

func (b *Builder) newTarget(ctx context.Context, cfg *TargetConfig) (Target, error) {
	class, err := b.Project.Registry.Get(ctx, plugin.TypeBuilder, cfg.Name)
	if err != nil {
		return nil, err
	}
	targetClass, ok := class.(TargetClass)
	if !ok {
		return nil, fmt.Errorf("builder plugin %q (%T) does not implement a build target", cfg.Name, class)
	}
	return targetClass.NewTarget(ctx, TargetBase{
		Root:     b.Project.Root,
		Config:   cfg,
		Project:  b.Project,
		Settings: b.Project.Settings,
	})
}

func closeTarget(target Target) error {
	if closer, ok := target.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Build returns the artifacts of a build.  Nothing happens until the first call to Next; a
// build that fails partway stops at the failure, and its partial output should not be
// trusted.
func (b *Builder) Build(ctx context.Context, opts BuildOptions) *Artifacts {
	settings := b.Project.Settings
	opts.Clean = opts.Clean || settings.BuildClean()
	opts.CleanHooksAfter = opts.CleanHooksAfter || settings.BuildCleanHooksAfter()
	opts.HooksOnly = opts.HooksOnly || settings.HooksOnly()
	return &Artifacts{
		ctx:     ctx,
		builder: b,
		opts:    opts,
	}
}

// Artifacts is a lazily built sequence of artifact paths:
//
//	artifacts := b.Build(ctx, opts)
//	defer artifacts.Close()
//	for artifacts.Next() {
//		use(artifacts.Path())
//	}
//	if err := artifacts.Err(); err != nil {
//		...
//	}
type Artifacts struct {
	ctx     context.Context
	builder *Builder
	opts    BuildOptions

	started bool
	done    bool
	err     error
	path    string

	cfg      *TargetConfig
	target   Target
	hooks    *hooks.BuildHooks
	versions []string
	idx      int
}

// Next builds the next artifact, and reports whether there was one.
func (a *Artifacts) Next() bool {
	if a.done {
		return false
	}
	a.path = ""
	if !a.started {
		a.started = true
		if err := a.setup(); err != nil {
			return a.fail(err)
		}
		if a.opts.CleanOnly {
			a.done = true
			return false
		}
	}
	for a.idx < len(a.versions) {
		version := a.versions[a.idx]
		a.idx++
		artifact, err := a.buildVersion(version)
		if err != nil {
			return a.fail(err)
		}
		if artifact != "" {
			a.path = artifact
			return true
		}
	}
	a.done = true
	return false
}

// Path is the artifact that the most recent successful Next built.
func (a *Artifacts) Path() string {
	return a.path
}

// Err is the error that ended the sequence, if any.
func (a *Artifacts) Err() error {
	return a.err
}

// Close releases the target and its hooks; it is safe to call more than once.
func (a *Artifacts) Close() error {
	a.done = true
	var errs derror.MultiError
	if a.hooks != nil {
		if err := a.hooks.Close(); err != nil {
			errs = append(errs, err)
		}
		a.hooks = nil
	}
	if a.target != nil {
		if err := closeTarget(a.target); err != nil {
			errs = append(errs, err)
		}
		a.target = nil
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (a *Artifacts) fail(err error) bool {
	a.err = fmt.Errorf("build %s: %w", a.opts.Target, err)
	a.done = true
	_ = a.Close()
	return false
}

func (a *Artifacts) setup() error {
	ctx := a.ctx
	project := a.builder.Project
	var err error
	if a.cfg, err = a.builder.targetConfig(a.opts.Target, a.opts.Directory); err != nil {
		return err
	}
	if a.target, err = a.builder.newTarget(ctx, a.cfg); err != nil {
		return err
	}

	all, defaults, err := a.target.Versions(ctx)
	if err != nil {
		return err
	}
	a.versions = a.opts.Versions
	if len(a.versions) == 0 {
		a.versions = a.cfg.Versions
	}
	if len(a.versions) == 0 {
		a.versions = defaults
	}
	known := make(map[string]bool, len(all))
	for _, version := range all {
		known[version] = true
	}
	var unknown []string
	for _, version := range a.versions {
		if !known[version] {
			unknown = append(unknown, version)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown versions for target `%s`: %s", a.cfg.Name, strings.Join(unknown, ", "))
	}

	base := hooks.BuildHookBase{
		Root:        project.Root,
		BuildConfig: a.cfg.Table,
		TargetName:  a.cfg.Name,
		Directory:   a.cfg.Directory,
		Metadata:    project,
		Settings:    project.Settings,
	}
	if a.hooks, err = hooks.LoadBuildHooks(ctx, project.Registry, project.Settings, a.cfg.GlobalHooks, base); err != nil {
		return err
	}
	targetHooks, err := hooks.LoadBuildHooks(ctx, project.Registry, project.Settings, a.cfg.TargetHooks, base)
	if err != nil {
		return err
	}
	a.hooks.Extend(targetHooks)
	dlog.Debugf(ctx, "target %s: versions %v, hooks %v", a.cfg.Name, a.versions, a.hooks.Names())

	if a.opts.Clean || a.opts.CleanOnly {
		if !a.opts.HooksOnly {
			dlog.Infof(ctx, "cleaning %s artifacts in %s", a.cfg.Name, a.cfg.Directory)
			if err := a.target.Clean(ctx, a.cfg.Directory, a.versions); err != nil {
				return err
			}
		}
		if err := a.hooks.Clean(ctx, a.versions); err != nil {
			return err
		}
	}
	return nil
}

// buildVersion runs one version through the lifecycle; it returns "" for a hooks-only build.
func (a *Artifacts) buildVersion(version string) (string, error) {
	ctx := a.ctx
	buildData := a.target.DefaultBuildData(a.hooks.Names())
	if err := a.hooks.Initialize(ctx, version, buildData); err != nil {
		return "", err
	}
	if a.opts.HooksOnly {
		return "", nil
	}
	dlog.Infof(ctx, "building %s:%s", a.cfg.Name, version)
	artifact, err := a.target.Build(ctx, version, a.cfg.Directory, buildData)
	if err != nil {
		return "", err
	}
	if err := a.hooks.Finalize(ctx, version, buildData, artifact); err != nil {
		return "", err
	}
	if a.opts.CleanHooksAfter {
		if err := a.hooks.Clean(ctx, []string{version}); err != nil {
			return "", err
		}
	}
	return artifact, nil
}

// Requires returns the extra requirements for building a version of a target: the target's
// dependencies option, the dependencies of its enabled build hooks, the project's runtime
// dependencies if requested, and whatever the target itself needs.
func (b *Builder) Requires(ctx context.Context, targetName, version string) ([]string, error) {
	cfg, err := b.targetConfig(targetName, "")
	if err != nil {
		return nil, err
	}
	var reqs []string
	seen := make(map[string]bool)
	add := func(strs ...string) {
		for _, str := range strs {
			if !seen[str] {
				seen[str] = true
				reqs = append(reqs, str)
			}
		}
	}
	add(cfg.Dependencies...)

	runtime := cfg.RequireRuntimeDependencies
	for _, hooksTable := range []config.Table{cfg.GlobalHooks, cfg.TargetHooks} {
		names, err := hooks.Enabled(hooksTable, b.Project.Settings)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			hookCfg, err := hooksTable.Table(name)
			if err != nil {
				return nil, err
			}
			deps, err := hookCfg.StringSlice("dependencies")
			if err != nil {
				return nil, err
			}
			add(deps...)
			hookRuntime, err := hookCfg.Bool("require-runtime-dependencies", false)
			if err != nil {
				return nil, err
			}
			runtime = runtime || hookRuntime
		}
	}

	if runtime || len(cfg.RequireRuntimeFeatures) > 0 {
		core, err := b.Project.Core(ctx)
		if err != nil {
			return nil, err
		}
		if runtime {
			for _, req := range core.Dependencies {
				add(req.String())
			}
		}
		for _, feature := range cfg.RequireRuntimeFeatures {
			featureReqs, ok := core.OptionalDependencies[feature]
			if !ok {
				return nil, &config.Error{
					Path: cfg.Table.KeyPath("require-runtime-features"),
					Msg:  fmt.Sprintf("feature %q is not defined in project.optional-dependencies", feature),
				}
			}
			for _, req := range featureReqs {
				add(req.String())
			}
		}
	}

	if cfg.DevModeExact && version == "editable" {
		target, err := b.newTarget(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer func() { _ = closeTarget(target) }()
		if requirer, ok := target.(Requirer); ok {
			extra, err := requirer.Requires(ctx, version)
			if err != nil {
				return nil, err
			}
			add(extra...)
		}
	}
	return reqs, nil
}

// EditableDependencies returns the Requires-Dist entries that an editable wheel adds to the
// project's own.
func (b *Builder) EditableDependencies(ctx context.Context) ([]string, error) {
	cfg, err := b.targetConfig("wheel", "")
	if err != nil {
		return nil, err
	}
	if cfg.DevModeExact {
		return []string{EditablesRequirement}, nil
	}
	return nil, nil
}
