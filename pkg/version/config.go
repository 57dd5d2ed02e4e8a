// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"context"
	"fmt"

	"github.com/datawire/dlib/dlog"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/plugin"
)

// Config is a project's [tool.hatch.version] table.  The source and scheme are resolved on
// first use and cached; the setters discard the cache.
type Config struct {
	Root     string
	Table    config.Table
	Registry *plugin.Registry
	Settings *config.Settings

	sourceName *string
	schemeName *string
	source     Source
	scheme     Scheme
}

// NewConfig returns a Config that resolves plugins from reg (plugin.Default if nil).
func NewConfig(root string, table config.Table, reg *plugin.Registry, settings *config.Settings) *Config {
	if reg == nil {
		reg = plugin.Default
	}
	return &Config{
		Root:     root,
		Table:    table,
		Registry: reg,
		Settings: settings,
	}
}

// SourceName is the "source" option, defaulting to "regex".
func (c *Config) SourceName() (string, error) {
	if c.sourceName == nil {
		name, err := c.Table.StringDefault("source", "regex")
		if err != nil {
			return "", err
		}
		if name == "" {
			return "", &config.Error{Path: c.Table.KeyPath("source"), Msg: "must not be empty if defined"}
		}
		c.sourceName = &name
	}
	return *c.sourceName, nil
}

func (c *Config) SetSourceName(name string) {
	c.sourceName = &name
	c.source = nil
}

// SchemeName is the "scheme" option, defaulting to "standard".
func (c *Config) SchemeName() (string, error) {
	if c.schemeName == nil {
		name, err := c.Table.StringDefault("scheme", "standard")
		if err != nil {
			return "", err
		}
		if name == "" {
			return "", &config.Error{Path: c.Table.KeyPath("scheme"), Msg: "must not be empty if defined"}
		}
		c.schemeName = &name
	}
	return *c.schemeName, nil
}

func (c *Config) SetSchemeName(name string) {
	c.schemeName = &name
	c.scheme = nil
}

func (c *Config) Source(ctx context.Context) (Source, error) {
	if c.source == nil {
		name, err := c.SourceName()
		if err != nil {
			return nil, err
		}
		class, err := c.Registry.Get(ctx, plugin.TypeVersionSource, name)
		if err != nil {
			return nil, err
		}
		srcClass, ok := class.(SourceClass)
		if !ok {
			return nil, wrongClass(plugin.TypeVersionSource, class)
		}
		c.source = srcClass.NewSource(c.Root, c.Table, c.Settings)
	}
	return c.source, nil
}

// SetSource overrides the source outright.
func (c *Config) SetSource(src Source) {
	c.source = src
}

func (c *Config) Scheme(ctx context.Context) (Scheme, error) {
	if c.scheme == nil {
		name, err := c.SchemeName()
		if err != nil {
			return nil, err
		}
		class, err := c.Registry.Get(ctx, plugin.TypeVersionScheme, name)
		if err != nil {
			return nil, err
		}
		schemeClass, ok := class.(SchemeClass)
		if !ok {
			return nil, wrongClass(plugin.TypeVersionScheme, class)
		}
		c.scheme = schemeClass.NewScheme(c.Root, c.Table, c.Settings)
	}
	return c.scheme, nil
}

// SetScheme overrides the scheme outright.
func (c *Config) SetScheme(scheme Scheme) {
	c.scheme = scheme
}

// Read returns the current version according to the source.
func (c *Config) Read(ctx context.Context) (string, error) {
	src, err := c.Source(ctx)
	if err != nil {
		return "", fmt.Errorf("version.Config.Read: %w", err)
	}
	data, err := src.GetVersionData(ctx)
	if err != nil {
		return "", fmt.Errorf("version.Config.Read: %w", err)
	}
	ver, err := data.Version()
	if err != nil {
		return "", fmt.Errorf("version.Config.Read: %w", err)
	}
	return ver, nil
}

// Update applies the directive desired to the current version and writes the result back
// through the source.
func (c *Config) Update(ctx context.Context, desired string) (oldVersion, newVersion string, err error) {
	src, err := c.Source(ctx)
	if err != nil {
		return "", "", fmt.Errorf("version.Config.Update: %w", err)
	}
	scheme, err := c.Scheme(ctx)
	if err != nil {
		return "", "", fmt.Errorf("version.Config.Update: %w", err)
	}
	data, err := src.GetVersionData(ctx)
	if err != nil {
		return "", "", fmt.Errorf("version.Config.Update: %w", err)
	}
	oldVersion, err = data.Version()
	if err != nil {
		return "", "", fmt.Errorf("version.Config.Update: %w", err)
	}
	newVersion, err = scheme.Update(desired, oldVersion, data)
	if err != nil {
		return "", "", fmt.Errorf("version.Config.Update: %w", err)
	}
	if err := src.SetVersion(ctx, newVersion, data); err != nil {
		return "", "", fmt.Errorf("version.Config.Update: %w", err)
	}
	dlog.Debugf(ctx, "version updated from %s to %s", oldVersion, newVersion)
	return oldVersion, newVersion, nil
}
