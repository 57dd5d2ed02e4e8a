// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/natefinch/atomic"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/metadata"
	"github.com/datawire/pybuild/pkg/plugin"
	"github.com/datawire/pybuild/pkg/python/pep440"
	"github.com/datawire/pybuild/pkg/reproducible"
)

// Target builds one kind of artifact.  A target may support several versions (such as a
// wheel's "standard" and "editable"); each Build call produces one artifact.
type Target interface {
	// Versions returns every version the target supports, and the ones built by default.
	Versions(ctx context.Context) (all, defaults []string, err error)
	// DefaultBuildData returns the build data that hooks start out with.
	DefaultBuildData(hookNames []string) hooks.BuildData
	// Build writes an artifact in to directory and returns its path.
	Build(ctx context.Context, version, directory string, buildData hooks.BuildData) (string, error)
	// Clean removes artifacts of this target from directory.
	Clean(ctx context.Context, directory string, versions []string) error
}

// A Requirer is a Target that needs extra build dependencies for a version.
type Requirer interface {
	Requires(ctx context.Context, version string) ([]string, error)
}

// TargetBase is what every target is constructed from.
type TargetBase struct {
	Root     string
	Config   *TargetConfig
	Project  *metadata.Project
	Settings *config.Settings
}

// TargetClass is a plugin.Class for the "builder" type.
type TargetClass interface {
	plugin.Class
	NewTarget(ctx context.Context, base TargetBase) (Target, error)
}

type targetClass struct {
	name string
	fn   func(ctx context.Context, base TargetBase) (Target, error)
}

func (c targetClass) PluginName() string { return c.name }

func (c targetClass) NewTarget(ctx context.Context, base TargetBase) (Target, error) {
	return c.fn(ctx, base)
}

func init() {
	for _, class := range []targetClass{
		{"sdist", newSdist},
		{"wheel", newWheel},
		{"layer", newLayer},
		{"custom", newCustom},
	} {
		plugin.Register(plugin.TypeBuilder.Group(), class)
	}
}

// modTime is the timestamp to stamp on archive entries; zero means "use each file's own".
func (b TargetBase) modTime() time.Time {
	if b.Config.Reproducible {
		return reproducible.Epoch()
	}
	return time.Time{}
}

// version returns the project version, parsed.
func (b TargetBase) version(ctx context.Context) (*pep440.Version, error) {
	str, err := b.Project.Version(ctx)
	if err != nil {
		return nil, err
	}
	return pep440.ParseVersion(str)
}

// selectFiles runs file selection, then adds the force-included files: first the configured
// ones, then the ones from build data, then extra.
func (b TargetBase) selectFiles(buildData hooks.BuildData, extra ...ForceInclude) ([]SelectedFile, error) {
	selector := newFileSelector(b.Root, b.Config, buildData.StringSlice("artifacts"))
	selected, err := selector.Select()
	if err != nil {
		return nil, err
	}
	forcedCfg := append([]ForceInclude(nil), b.Config.ForceInclude...)
	forcedCfg = append(forcedCfg, mapForceInclude(buildData.StringMap("force_include"))...)
	forcedCfg = append(forcedCfg, extra...)
	forced, err := selector.forced(forcedCfg)
	if err != nil {
		return nil, err
	}
	return combine(selected, forced), nil
}

// mapForceInclude turns a source => dest map from build data in to a stable list.
func mapForceInclude(m map[string]string) []ForceInclude {
	ret := make([]ForceInclude, 0, len(m))
	for src, dst := range m {
		ret = append(ret, ForceInclude{Source: src, Dest: strings.Trim(filepath.ToSlash(dst), "/")})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Source < ret[j].Source })
	return ret
}

// writeArtifact renders an artifact in memory and then atomically puts it in place as
// directory/name, so that a failed build never leaves a partial artifact behind.
func writeArtifact(ctx context.Context, directory, name string, render func(io.Writer) error) (string, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return "", err
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", err
	}
	filename := filepath.Join(directory, name)
	if err := atomic.WriteFile(filename, &buf); err != nil {
		return "", err
	}
	dlog.Infof(ctx, "wrote %s (%d bytes)", filename, buf.Len())
	return filename, nil
}

// removeArtifacts deletes the files in directory whose names end with suffix.
func removeArtifacts(ctx context.Context, directory, suffix string) error {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		filename := filepath.Join(directory, entry.Name())
		dlog.Debugf(ctx, "removing %s", filename)
		if err := os.Remove(filename); err != nil {
			return err
		}
	}
	return nil
}

func unknownVersion(target, version string) error {
	return fmt.Errorf("target %q: unknown version %q", target, version)
}
