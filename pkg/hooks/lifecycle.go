// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package hooks

import (
	"context"
	"strings"

	"github.com/datawire/dlib/derror"
	"github.com/datawire/dlib/dlog"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/plugin"
)

// Enabled filters a hooks table (name => hook config) down to the hooks that should run:
//
//   - HATCH_BUILD_NO_HOOKS disables everything;
//   - otherwise a hook runs if its enable-by-default option is true (the default), or if
//     HATCH_BUILD_HOOKS_ENABLE or HATCH_BUILD_HOOK_ENABLE_<NAME> is set.
//
// The names are returned in document order.
func Enabled(table config.Table, settings *config.Settings) ([]string, error) {
	if settings == nil {
		settings = config.NewSettings()
	}
	if settings.NoHooks() {
		return nil, nil
	}
	var names []string
	for _, name := range table.Keys() {
		hookCfg, err := table.Table(name)
		if err != nil {
			return nil, err
		}
		byDefault, err := hookCfg.Bool("enable-by-default", true)
		if err != nil {
			return nil, err
		}
		enabled, _ := settings.HookEnabled(name)
		if byDefault || enabled || settings.HooksEnable() {
			names = append(names, name)
		}
	}
	return names, nil
}

type namedBuildHook struct {
	name string
	hook BuildHook
}

// BuildHooks are the build hooks of one target, in the order they run.
type BuildHooks struct {
	hooks []namedBuildHook
}

// LoadBuildHooks instantiates the enabled hooks from hooksTable; base supplies everything but
// each hook's Config.
func LoadBuildHooks(ctx context.Context, reg *plugin.Registry, settings *config.Settings, hooksTable config.Table, base BuildHookBase) (*BuildHooks, error) {
	if reg == nil {
		reg = plugin.Default
	}
	names, err := Enabled(hooksTable, settings)
	if err != nil {
		return nil, err
	}
	ret := &BuildHooks{}
	for _, name := range names {
		hookCfg, err := hooksTable.Table(name)
		if err != nil {
			_ = ret.Close()
			return nil, err
		}
		class, err := reg.Get(ctx, plugin.TypeBuildHook, name)
		if err != nil {
			_ = ret.Close()
			return nil, err
		}
		hookClass, ok := class.(BuildHookClass)
		if !ok {
			_ = ret.Close()
			return nil, &config.Error{Path: hooksTable.KeyPath(name), Msg: "does not name a build hook plugin"}
		}
		hookBase := base
		hookBase.Config = hookCfg
		if hookBase.Settings == nil {
			hookBase.Settings = settings
		}
		var hook BuildHook
		err = call(name, "load", func() error {
			var err error
			hook, err = hookClass.NewBuildHook(ctx, hookBase)
			return err
		})
		if err != nil {
			_ = ret.Close()
			return nil, err
		}
		ret.hooks = append(ret.hooks, namedBuildHook{name: name, hook: hook})
	}
	return ret, nil
}

// Add appends an already-constructed hook.
func (hs *BuildHooks) Add(name string, hook BuildHook) {
	hs.hooks = append(hs.hooks, namedBuildHook{name: name, hook: hook})
}

// Extend appends other's hooks; other should not be used afterward.
func (hs *BuildHooks) Extend(other *BuildHooks) {
	hs.hooks = append(hs.hooks, other.hooks...)
	other.hooks = nil
}

// Names returns the names of the hooks, in order.
func (hs *BuildHooks) Names() []string {
	names := make([]string, 0, len(hs.hooks))
	for _, h := range hs.hooks {
		names = append(names, h.name)
	}
	return names
}

func (hs *BuildHooks) Len() int {
	return len(hs.hooks)
}

func (hs *BuildHooks) Clean(ctx context.Context, versions []string) error {
	for _, h := range hs.hooks {
		h := h
		dlog.Debugf(ctx, "build hook %q: clean %s", h.name, strings.Join(versions, ","))
		if err := call(h.name, "clean", func() error { return h.hook.Clean(ctx, versions) }); err != nil {
			return err
		}
	}
	return nil
}

func (hs *BuildHooks) Initialize(ctx context.Context, version string, buildData BuildData) error {
	for _, h := range hs.hooks {
		h := h
		dlog.Debugf(ctx, "build hook %q: initialize %s", h.name, version)
		if err := call(h.name, "initialize", func() error { return h.hook.Initialize(ctx, version, buildData) }); err != nil {
			return err
		}
	}
	return nil
}

func (hs *BuildHooks) Finalize(ctx context.Context, version string, buildData BuildData, artifactPath string) error {
	for _, h := range hs.hooks {
		h := h
		dlog.Debugf(ctx, "build hook %q: finalize %s", h.name, version)
		if err := call(h.name, "finalize", func() error {
			return h.hook.Finalize(ctx, version, buildData, artifactPath)
		}); err != nil {
			return err
		}
	}
	return nil
}

// Close releases any resources (such as interpreter processes) held by the hooks.
func (hs *BuildHooks) Close() error {
	var errs derror.MultiError
	for _, h := range hs.hooks {
		if err := closeHook(h.hook); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type namedMetadataHook struct {
	name string
	hook MetadataHook
}

// MetadataHooks are the metadata hooks of a project, in the order they run.
type MetadataHooks struct {
	hooks []namedMetadataHook
}

// LoadMetadataHooks instantiates every hook in hooksTable ([tool.hatch.metadata.hooks]).
func LoadMetadataHooks(ctx context.Context, reg *plugin.Registry, settings *config.Settings, root string, hooksTable config.Table) (*MetadataHooks, error) {
	if reg == nil {
		reg = plugin.Default
	}
	ret := &MetadataHooks{}
	for _, name := range hooksTable.Keys() {
		hookCfg, err := hooksTable.Table(name)
		if err != nil {
			_ = ret.Close()
			return nil, err
		}
		class, err := reg.Get(ctx, plugin.TypeMetadataHook, name)
		if err != nil {
			_ = ret.Close()
			return nil, err
		}
		hookClass, ok := class.(MetadataHookClass)
		if !ok {
			_ = ret.Close()
			return nil, &config.Error{Path: hooksTable.KeyPath(name), Msg: "does not name a metadata hook plugin"}
		}
		var hook MetadataHook
		err = call(name, "load", func() error {
			var err error
			hook, err = hookClass.NewMetadataHook(ctx, MetadataHookBase{Root: root, Config: hookCfg, Settings: settings})
			return err
		})
		if err != nil {
			_ = ret.Close()
			return nil, err
		}
		ret.hooks = append(ret.hooks, namedMetadataHook{name: name, hook: hook})
	}
	return ret, nil
}

// Add appends an already-constructed hook.
func (hs *MetadataHooks) Add(name string, hook MetadataHook) {
	hs.hooks = append(hs.hooks, namedMetadataHook{name: name, hook: hook})
}

func (hs *MetadataHooks) Len() int {
	return len(hs.hooks)
}

// Update runs every hook's Update, in order, and returns the union of their known
// classifiers.
func (hs *MetadataHooks) Update(ctx context.Context, metadata map[string]interface{}) ([]string, error) {
	var classifiers []string
	for _, h := range hs.hooks {
		h := h
		dlog.Debugf(ctx, "metadata hook %q: update", h.name)
		if err := call(h.name, "update", func() error { return h.hook.Update(ctx, metadata) }); err != nil {
			return nil, err
		}
		classifiers = append(classifiers, h.hook.KnownClassifiers()...)
	}
	return classifiers, nil
}

func (hs *MetadataHooks) Close() error {
	var errs derror.MultiError
	for _, h := range hs.hooks {
		if err := closeHook(h.hook); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
