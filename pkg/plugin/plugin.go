// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package plugin is the registry of named extension points: builders, build hooks, metadata
// hooks, version sources, and version schemes.
//
// Plugins are found in two places.  The primary registry is scoped by type: a plugin package
// calls Register("hatch.<type>", class) from its init().  The legacy registry is a single flat
// list of modules, each of which may export a fixed per-type hook method (such as
// HatchRegisterBuilder) returning classes.  Legacy entries never override primary entries.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/datawire/dlib/dlog"
)

// Type is a kind of plugin.
type Type string

const (
	TypeBuilder       Type = "builder"
	TypeBuildHook     Type = "build_hook"
	TypeMetadataHook  Type = "metadata_hook"
	TypeVersionSource Type = "version_source"
	TypeVersionScheme Type = "version_scheme"

	// These namespaces are recognized, but nothing in this program consumes them.
	TypeEnvironment          Type = "environment"
	TypeEnvironmentCollector Type = "environment_collector"
	TypePublisher            Type = "publisher"
)

// Types lists every recognized plugin type.
var Types = []Type{
	TypeBuilder,
	TypeBuildHook,
	TypeMetadataHook,
	TypeVersionSource,
	TypeVersionScheme,
	TypeEnvironment,
	TypeEnvironmentCollector,
	TypePublisher,
}

// Namespace is the prefix of primary registry groups.
const Namespace = "hatch"

// Group returns the primary registry group name for the type, such as "hatch.builder".
func (t Type) Group() string {
	return Namespace + "." + string(t)
}

// ParseType parses either a bare type name ("builder") or a group name ("hatch.builder").
func ParseType(str string) (Type, error) {
	str = strings.TrimPrefix(str, Namespace+".")
	for _, typ := range Types {
		if string(typ) == str {
			return typ, nil
		}
	}
	return "", fmt.Errorf("unknown plugin type: %q", str)
}

// A Class is a registered plugin implementation.  Each plugin type defines its own richer
// interface (with a constructor method) that its classes implement.
type Class interface {
	PluginName() string
}

// ErrUnknownPlugin is returned by Get when no plugin of the type has the requested name.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Registry holds both registries.  The zero Registry is not usable; use NewRegistry.
type Registry struct {
	mu      sync.Mutex
	primary map[string][]Class
	legacy  []LegacyModule

	scanned      map[Type]map[string]Class
	legacyWarned map[Type]bool
}

func NewRegistry() *Registry {
	return &Registry{
		primary:      make(map[string][]Class),
		scanned:      make(map[Type]map[string]Class),
		legacyWarned: make(map[Type]bool),
	}
}

// Clone returns a new registry that starts with everything registered in r; registering into
// the clone does not affect r.
func (r *Registry) Clone() *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := NewRegistry()
	for group, classes := range r.primary {
		ret.primary[group] = append([]Class(nil), classes...)
	}
	ret.legacy = append([]LegacyModule(nil), r.legacy...)
	return ret
}

// Default is the process-wide registry that the package-level functions use.
var Default = NewRegistry()

// Register adds class to the primary registry under group (such as "hatch.builder").
func Register(group string, class Class) {
	Default.Register(group, class)
}

// RegisterLegacy adds a module to the legacy registry.
func RegisterLegacy(mod LegacyModule) {
	Default.RegisterLegacy(mod)
}

func (r *Registry) Register(group string, class Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.primary[group] = append(r.primary[group], class)
	r.invalidate()
}

func (r *Registry) RegisterLegacy(mod LegacyModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.legacy = append(r.legacy, mod)
	r.invalidate()
}

func (r *Registry) invalidate() {
	r.scanned = make(map[Type]map[string]Class)
}

// Classes returns every plugin of the given type, by name.  The result is computed once per
// type and cached; the returned map is a copy.
func (r *Registry) Classes(ctx context.Context, typ Type) map[string]Class {
	r.mu.Lock()
	defer r.mu.Unlock()

	classes, ok := r.scanned[typ]
	if !ok {
		classes = r.scan(ctx, typ)
		r.scanned[typ] = classes
	}

	ret := make(map[string]Class, len(classes))
	for name, class := range classes {
		ret[name] = class
	}
	return ret
}

func (r *Registry) scan(ctx context.Context, typ Type) map[string]Class {
	classes := make(map[string]Class)

	for _, class := range r.primary[typ.Group()] {
		name := class.PluginName()
		if name == "" {
			dlog.Warnf(ctx, "plugin %T in group %q has no name; ignoring it", class, typ.Group())
			continue
		}
		if prev, dup := classes[name]; dup {
			dlog.Warnf(ctx, "plugin name %q in group %q is already used by %T; ignoring %T",
				name, typ.Group(), prev, class)
			continue
		}
		classes[name] = class
	}

	usedLegacy := false
	legacyNames := make(map[string]struct{})
	for _, mod := range r.legacy {
		for _, class := range legacyClasses(mod, typ) {
			name := class.PluginName()
			if name == "" {
				dlog.Warnf(ctx, "plugin %T from legacy module %q has no name; ignoring it",
					class, mod.ModuleName())
				continue
			}
			if _, dup := legacyNames[name]; dup {
				continue
			}
			legacyNames[name] = struct{}{}
			if _, claimed := classes[name]; claimed {
				continue
			}
			classes[name] = class
			usedLegacy = true
		}
	}
	if usedLegacy && !r.legacyWarned[typ] {
		r.legacyWarned[typ] = true
		dlog.Warnf(ctx, "%s plugins were registered through the legacy %q registry; "+
			"register them under the %q group instead", typ, LegacyGroup, typ.Group())
	}

	return classes
}

// Get returns the plugin of the given type and name.
func (r *Registry) Get(ctx context.Context, typ Type, name string) (Class, error) {
	class, ok := r.Classes(ctx, typ)[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownPlugin, typ, name)
	}
	return class, nil
}

// Names returns the sorted names of every plugin of the given type.
func (r *Registry) Names(ctx context.Context, typ Type) []string {
	classes := r.Classes(ctx, typ)
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
