// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/datawire/dlib/dlog"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/fsutil"
	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/python"
	"github.com/datawire/pybuild/pkg/python/pep376"
	"github.com/datawire/pybuild/pkg/python/pyinspect"
	"github.com/datawire/pybuild/pkg/python/pypa/bdist"
	"github.com/datawire/pybuild/pkg/python/pypa/entry_points"
	"github.com/datawire/pybuild/pkg/python/pypa/recording_installs"
)

// Installer is written to the INSTALLER file of distributions installed in to a layer.
const Installer = "pybuild"

// layerTarget builds the project's wheel and installs it in to an OCI image layer, as a
// "{name}-{version}-layer.tar" tarball.
//
//	[tool.hatch.build.targets.layer]
//	python = "/usr/bin/python3"   # shebang for scripts
//	python-version = "3.9"
//	prefix = "/usr/local"
//	uid = 0
//	gid = 0
//	user = "root"
//	group = "root"
//	inspect = false               # take the install scheme from HATCH_PYTHON instead
type layerTarget struct {
	TargetBase
	wheel *wheelTarget
}

func newLayer(_ context.Context, base TargetBase) (Target, error) {
	return &layerTarget{
		TargetBase: base,
		wheel:      &wheelTarget{TargetBase: base},
	}, nil
}

func (t *layerTarget) Versions(context.Context) (all, defaults []string, err error) {
	return []string{"standard"}, []string{"standard"}, nil
}

func (t *layerTarget) DefaultBuildData(hookNames []string) hooks.BuildData {
	return hooks.NewWheelBuildData(hookNames)
}

func (t *layerTarget) Clean(ctx context.Context, directory string, _ []string) error {
	return removeArtifacts(ctx, directory, "-layer.tar")
}

func intOption(table config.Table, key string, def int) (int, error) {
	raw, ok := table.Raw(key)
	if !ok {
		return def, nil
	}
	switch val := raw.(type) {
	case int64:
		return int(val), nil
	case int:
		return val, nil
	default:
		return 0, &config.TypeError{Path: table.KeyPath(key), Want: "an integer", Got: raw}
	}
}

// platform returns where and how the wheel gets installed.
func (t *layerTarget) platform(ctx context.Context) (python.Platform, error) {
	cfg := t.Config.Table
	inspect, err := cfg.Bool("inspect", false)
	if err != nil {
		return python.Platform{}, err
	}
	var plat python.Platform
	if inspect {
		interp, err := t.Settings.Python()
		if err != nil {
			return python.Platform{}, err
		}
		if plat, err = pyinspect.Platform(ctx, pyinspect.NativeFS{}, interp...); err != nil {
			return python.Platform{}, err
		}
	} else {
		shebang, err := cfg.StringDefault("python", "/usr/bin/python3")
		if err != nil {
			return python.Platform{}, err
		}
		pyVersion, err := cfg.StringDefault("python-version", "3.9")
		if err != nil {
			return python.Platform{}, err
		}
		prefix, err := cfg.StringDefault("prefix", "/usr/local")
		if err != nil {
			return python.Platform{}, err
		}
		if !path.IsAbs(prefix) {
			return python.Platform{}, &config.Error{Path: cfg.KeyPath("prefix"), Msg: "must be an absolute path"}
		}
		sitePackages := path.Join(prefix, "lib", "python"+pyVersion, "site-packages")
		plat = python.Platform{
			ConsoleShebang:   shebang,
			GraphicalShebang: shebang,
			Scheme: python.Scheme{
				PureLib: sitePackages,
				PlatLib: sitePackages,
				Headers: path.Join(prefix, "include", "python"+pyVersion, t.Project.Name()),
				Scripts: path.Join(prefix, "bin"),
				Data:    prefix,
			},
		}
	}
	if plat.UID, err = intOption(cfg, "uid", plat.UID); err != nil {
		return python.Platform{}, err
	}
	if plat.GID, err = intOption(cfg, "gid", plat.GID); err != nil {
		return python.Platform{}, err
	}
	if plat.UName, err = cfg.StringDefault("user", strings.TrimSpace(plat.UName)); err != nil {
		return python.Platform{}, err
	}
	if plat.GName, err = cfg.StringDefault("group", strings.TrimSpace(plat.GName)); err != nil {
		return python.Platform{}, err
	}
	if plat.UName == "" && plat.UID == 0 {
		plat.UName = "root"
	}
	if plat.GName == "" && plat.GID == 0 {
		plat.GName = "root"
	}
	if err := plat.Init(); err != nil {
		return python.Platform{}, err
	}
	if plat.VersionInfo != nil {
		dlog.Debugf(ctx, "layer: installing for Python %s", plat.VersionInfo.MajorMinor())
	}
	return plat, nil
}

func (t *layerTarget) Build(ctx context.Context, version, directory string, buildData hooks.BuildData) (string, error) {
	if version != "standard" {
		return "", unknownVersion(t.Config.Name, version)
	}
	plat, err := t.platform(ctx)
	if err != nil {
		return "", fmt.Errorf("layer: %w", err)
	}

	tmpdir, err := os.MkdirTemp("", "pybuild-layer.")
	if err != nil {
		return "", err
	}
	defer func() {
		if err := os.RemoveAll(tmpdir); err != nil {
			dlog.Errorf(ctx, "layer: removing temporary directory: %v", err)
		}
	}()
	wheelfile, err := t.wheel.buildStandard(ctx, tmpdir, buildData)
	if err != nil {
		return "", err
	}

	var maxTime time.Time
	if t.Config.Reproducible {
		maxTime = t.modTime()
	}
	layer, err := bdist.InstallWheel(ctx, plat, time.Time{}, maxTime, wheelfile,
		bdist.PostInstallHooks(
			entry_points.CreateScripts(plat),
			pep376.RecordRequested(""),
			recording_installs.Record("sha256", Installer, nil),
		))
	if err != nil {
		return "", fmt.Errorf("layer: %w", err)
	}

	ver, err := t.version(ctx)
	if err != nil {
		return "", err
	}
	name := bdist.EscapeName(t.Project.Name()) + "-" + ver.String() + "-layer.tar"
	return writeArtifact(ctx, directory, name, func(w io.Writer) error {
		return fsutil.WriteLayer(layer, w)
	})
}
