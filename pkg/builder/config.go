// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/datawire/pybuild/pkg/config"
)

// ForceInclude maps a file or directory on disk in to the archive.
type ForceInclude struct {
	Source string // absolute, or relative to the project root
	Dest   string // slash-separated path within the archive
}

// TargetConfig is the configuration of one build target: the [tool.hatch.build] table
// overlaid with [tool.hatch.build.targets.<name>].
type TargetConfig struct {
	Name string

	// Table is the merged configuration; Target is only the target's own table.
	Table  config.Table
	Target config.Table
	// Hooks are the global hooks (minus any that the target redefines) and the target's hooks.
	GlobalHooks config.Table
	TargetHooks config.Table

	Directory string // absolute

	Include      []string
	Exclude      []string
	Packages     []string
	OnlyInclude  []string
	Artifacts    []string
	Sources      map[string]string // slash-terminated prefix => slash-terminated (or empty) replacement
	ForceInclude []ForceInclude

	// Wheel-only.
	SharedData    []ForceInclude // Dest is relative to the .data/data/ directory
	ExtraMetadata []ForceInclude // Dest is relative to the .dist-info/extra_metadata/ directory

	IgnoreVCS        bool
	Reproducible     bool
	SkipExcludedDirs bool
	OnlyPackages     bool

	DevModeDirs  []string
	DevModeExact bool

	Versions []string

	Dependencies               []string
	RequireRuntimeDependencies bool
	RequireRuntimeFeatures     []string
}

// globalOnly are keys of [tool.hatch.build] that don't get inherited by targets.
var globalOnly = map[string]bool{
	"targets": true,
	"hooks":   true,
}

func loadTargetConfig(root, name string, buildTable config.Table, directory string) (*TargetConfig, error) {
	targets, err := buildTable.Table("targets")
	if err != nil {
		return nil, err
	}
	target, err := targets.Table(name)
	if err != nil {
		return nil, err
	}
	inherited := make(map[string]interface{})
	for k, v := range buildTable.Map() {
		if !globalOnly[k] {
			inherited[k] = v
		}
	}
	merged := target.WithData(buildTable.WithData(inherited).Merge(target).Map())
	// Errors should name the table that the bad value actually came from.
	lookup := func(key string) config.Table {
		if target.Has(key) {
			return target
		}
		return buildTable
	}

	cfg := &TargetConfig{
		Name:   name,
		Table:  merged,
		Target: target,
	}

	globalHooks, err := buildTable.Table("hooks")
	if err != nil {
		return nil, err
	}
	if cfg.TargetHooks, err = target.Table("hooks"); err != nil {
		return nil, err
	}
	remaining := make(map[string]interface{})
	for k, v := range globalHooks.Map() {
		if !cfg.TargetHooks.Has(k) {
			remaining[k] = v
		}
	}
	cfg.GlobalHooks = globalHooks.WithData(remaining)

	if directory == "" {
		if directory, err = lookup("directory").StringDefault("directory", ""); err != nil {
			return nil, err
		}
	}
	if directory == "" {
		directory = "dist"
	}
	if !filepath.IsAbs(directory) {
		directory = filepath.Join(root, directory)
	}
	cfg.Directory = filepath.Clean(directory)

	for _, list := range []struct {
		key string
		ptr *[]string
	}{
		{"include", &cfg.Include},
		{"exclude", &cfg.Exclude},
		{"packages", &cfg.Packages},
		{"only-include", &cfg.OnlyInclude},
		{"artifacts", &cfg.Artifacts},
		{"dev-mode-dirs", &cfg.DevModeDirs},
		{"versions", &cfg.Versions},
		{"dependencies", &cfg.Dependencies},
		{"require-runtime-features", &cfg.RequireRuntimeFeatures},
	} {
		if *list.ptr, err = lookup(list.key).StringSlice(list.key); err != nil {
			return nil, err
		}
	}
	for _, pkg := range cfg.Packages {
		if pkg == "" || path.IsAbs(pkg) || strings.Contains(pkg, "..") {
			return nil, &config.Error{Path: lookup("packages").KeyPath("packages"), Msg: "must contain relative paths within the project"}
		}
	}

	for _, flag := range []struct {
		key string
		def bool
		ptr *bool
	}{
		{"ignore-vcs", false, &cfg.IgnoreVCS},
		{"reproducible", true, &cfg.Reproducible},
		{"skip-excluded-dirs", false, &cfg.SkipExcludedDirs},
		{"only-packages", false, &cfg.OnlyPackages},
		{"dev-mode-exact", false, &cfg.DevModeExact},
		{"require-runtime-dependencies", false, &cfg.RequireRuntimeDependencies},
	} {
		if *flag.ptr, err = lookup(flag.key).Bool(flag.key, flag.def); err != nil {
			return nil, err
		}
	}

	if cfg.Sources, err = parseSources(lookup("sources")); err != nil {
		return nil, err
	}
	pkgs := cfg.Packages
	cfg.Packages = nil
	for _, pkg := range pkgs {
		cfg.addPackage(pkg)
	}

	for _, table := range []struct {
		key string
		ptr *[]ForceInclude
	}{
		{"force-include", &cfg.ForceInclude},
		{"shared-data", &cfg.SharedData},
		{"extra-metadata", &cfg.ExtraMetadata},
	} {
		if *table.ptr, err = parseForceInclude(lookup(table.key), table.key); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(filepath.ToSlash(prefix), "/")
	if prefix == "" || prefix == "." {
		return ""
	}
	return prefix + "/"
}

// parseSources accepts either a list of prefixes to strip, or a table of prefix rewrites.
func parseSources(table config.Table) (map[string]string, error) {
	ret := make(map[string]string)
	raw, ok := table.Raw("sources")
	if !ok {
		return ret, nil
	}
	if _, isTable := raw.(map[string]interface{}); isTable {
		sources, err := table.Table("sources")
		if err != nil {
			return nil, err
		}
		for _, from := range sources.Keys() {
			// An empty destination strips the prefix.
			to, _, err := sources.String(from)
			if err != nil {
				return nil, err
			}
			ret[normalizePrefix(from)] = normalizePrefix(to)
		}
		return ret, nil
	}
	list, err := table.StringSlice("sources")
	if err != nil {
		return nil, &config.TypeError{Path: table.KeyPath("sources"), Want: "an array of strings or a table", Got: raw}
	}
	for _, from := range list {
		ret[normalizePrefix(from)] = ""
	}
	return ret, nil
}

// addPackage adds a package directory; a package in a sub-directory is shipped at the top
// level.
func (cfg *TargetConfig) addPackage(pkg string) {
	pkg = strings.Trim(pkg, "/")
	cfg.Packages = append(cfg.Packages, pkg)
	if dir := path.Dir(pkg); dir != "." {
		if _, set := cfg.Sources[dir+"/"]; !set {
			cfg.Sources[dir+"/"] = ""
		}
	}
}

// parseForceInclude parses a table of source => destination paths, in document order.
func parseForceInclude(table config.Table, key string) ([]ForceInclude, error) {
	forced, err := table.Table(key)
	if err != nil {
		return nil, err
	}
	ret := make([]ForceInclude, 0, forced.Len())
	for _, src := range forced.Keys() {
		dst, _, err := forced.String(src)
		if err != nil {
			return nil, err
		}
		dst = strings.Trim(filepath.ToSlash(dst), "/")
		if dst == "" {
			return nil, &config.Error{Path: forced.KeyPath(src), Msg: "cannot be an empty string"}
		}
		ret = append(ret, ForceInclude{Source: src, Dest: dst})
	}
	return ret, nil
}

// DistPath rewrites a project-relative path according to the configured sources; the longest
// matching prefix wins.
func (cfg *TargetConfig) DistPath(rel string) string {
	prefixes := make([]string, 0, len(cfg.Sources))
	for prefix := range cfg.Sources {
		prefixes = append(prefixes, prefix)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	for _, prefix := range prefixes {
		if prefix == "" || strings.HasPrefix(rel, prefix) {
			return cfg.Sources[prefix] + strings.TrimPrefix(rel, prefix)
		}
	}
	return rel
}
