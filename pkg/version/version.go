// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package version reads, computes, and writes a project's version.
//
// A Source knows where the authoritative version lives (a file matched by a regular expression,
// a file that is executed, an environment variable).  A Scheme knows how to compute the next
// version from an update directive such as "minor" or "major,rc".
package version

import (
	"context"
	"errors"
	"fmt"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/plugin"
)

// Data is produced by Source.GetVersionData and handed back to Source.SetVersion; beyond the
// "version" key, its contents are private to the Source.
type Data map[string]interface{}

// Version returns the "version" entry.
func (d Data) Version() (string, error) {
	ver, ok := d["version"].(string)
	if !ok {
		return "", errors.New("version data has no \"version\" string")
	}
	return ver, nil
}

type Source interface {
	GetVersionData(ctx context.Context) (Data, error)
	SetVersion(ctx context.Context, newVersion string, data Data) error
}

type Scheme interface {
	// Update computes the version that results from applying the directive desired to
	// original.
	Update(desired, original string, data Data) (string, error)
}

// SourceClass is a plugin.Class for the "version_source" type.
type SourceClass interface {
	plugin.Class
	NewSource(root string, cfg config.Table, settings *config.Settings) Source
}

// SchemeClass is a plugin.Class for the "version_scheme" type.
type SchemeClass interface {
	plugin.Class
	NewScheme(root string, cfg config.Table, settings *config.Settings) Scheme
}

var (
	// ErrReadOnly is returned by SetVersion on sources that cannot be written to.
	ErrReadOnly = errors.New("version source is read-only")

	// ErrBumpNotHigher is returned by a Scheme when an explicit version does not move
	// forward.
	ErrBumpNotHigher = errors.New("version is not higher than the original version")
)

type sourceClass struct {
	name string
	fn   func(root string, cfg config.Table, settings *config.Settings) Source
}

func (c sourceClass) PluginName() string { return c.name }
func (c sourceClass) NewSource(root string, cfg config.Table, settings *config.Settings) Source {
	return c.fn(root, cfg, settings)
}

type schemeClass struct {
	name string
	fn   func(root string, cfg config.Table, settings *config.Settings) Scheme
}

func (c schemeClass) PluginName() string { return c.name }
func (c schemeClass) NewScheme(root string, cfg config.Table, settings *config.Settings) Scheme {
	return c.fn(root, cfg, settings)
}

func init() {
	plugin.Register(plugin.TypeVersionSource.Group(), sourceClass{"regex",
		func(root string, cfg config.Table, _ *config.Settings) Source {
			return &RegexSource{Root: root, Config: cfg}
		}})
	plugin.Register(plugin.TypeVersionSource.Group(), sourceClass{"code",
		func(root string, cfg config.Table, settings *config.Settings) Source {
			return &CodeSource{Root: root, Config: cfg, Settings: settings}
		}})
	plugin.Register(plugin.TypeVersionSource.Group(), sourceClass{"env",
		func(root string, cfg config.Table, _ *config.Settings) Source {
			return &EnvSource{Config: cfg}
		}})
	plugin.Register(plugin.TypeVersionScheme.Group(), schemeClass{"standard",
		func(_ string, cfg config.Table, settings *config.Settings) Scheme {
			return &StandardScheme{Config: cfg, Settings: settings}
		}})
}

func wrongClass(typ plugin.Type, class plugin.Class) error {
	return fmt.Errorf("plugin %q registered as %s is a %T", class.PluginName(), typ, class)
}
