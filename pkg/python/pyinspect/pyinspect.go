// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package pyinspect determines information about a Python environment.
package pyinspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/datawire/dlib/dexec"

	"github.com/datawire/pybuild/pkg/python"
	"github.com/datawire/pybuild/pkg/python/pep425"
	"github.com/datawire/pybuild/pkg/python/pep508"
)

// FS is the part of the filesystem that Shebangs looks at.
type FS interface {
	Split(path string) (dir, file string)
	Join(elem ...string) string
	// LookPath mimics os/exec.LookPath, but io/fs.PathError is used instead of exec.Error.
	LookPath(file string) (string, error)
}

// Shebangs takes an interpreter command (like "python3") and turns it in to a pair of paths to put
// after the "#!" in a shebang.
func Shebangs(sys FS, generic string) (console, graphical string, err error) {
	generic, err = sys.LookPath(generic)
	if err != nil {
		return "", "", err
	}

	console = generic
	if dirPart, filePart := sys.Split(console); strings.HasPrefix(filePart, "pythonw") {
		withoutW := sys.Join(dirPart, "python"+strings.TrimPrefix(filePart, "pythonw"))
		if withoutW, err := sys.LookPath(withoutW); err == nil {
			console = withoutW
		}
	}

	graphical = generic
	if dirPart, filePart := sys.Split(console); strings.HasPrefix(filePart, "python") &&
		!strings.HasPrefix(filePart, "pythonw") {
		withW := sys.Join(dirPart, "pythonw"+strings.TrimPrefix(filePart, "python"))
		if withW, err := sys.LookPath(withW); err == nil {
			graphical = withW
		}
	}

	return console, graphical, nil
}

// DynamicInfo is what we learn by asking a live interpreter about itself.
type DynamicInfo struct {
	Tags              pep425.Installer
	VersionInfo       python.VersionInfo
	Scheme            python.Scheme
	SysPath           []string
	MarkerEnvironment pep508.Environment
}

const dynamicScript = `
import json
import os
import platform
import sys
import sysconfig

try:
    from packaging.tags import sys_tags
    tags = [str(tag) for tag in sys_tags()]
except ImportError:
    tags = []

def format_full_version(info):
    version = '{0.major}.{0.minor}.{0.micro}'.format(info)
    kind = info.releaselevel
    if kind != 'final':
        version += kind[0] + str(info.serial)
    return version

version_info_slots = ['major', 'minor', 'micro', 'releaselevel', 'serial']
paths = sysconfig.get_paths()

json.dump({
  "Tags": tags,
  "VersionInfo": {slot: getattr(sys.version_info, slot) for slot in version_info_slots},
  "Scheme": {
    "purelib": paths["purelib"],
    "platlib": paths["platlib"],
    "headers": paths["include"],
    "scripts": paths["scripts"],
    "data": paths["data"],
  },
  "SysPath": [entry for entry in sys.path if entry],
  "MarkerEnvironment": {
    "implementation_name": sys.implementation.name,
    "implementation_version": format_full_version(sys.implementation.version),
    "os_name": os.name,
    "platform_machine": platform.machine(),
    "platform_python_implementation": platform.python_implementation(),
    "platform_release": platform.release(),
    "platform_system": platform.system(),
    "platform_version": platform.version(),
    "python_full_version": platform.python_version(),
    "python_version": '.'.join(platform.python_version_tuple()[:2]),
    "sys_platform": sys.platform,
  },
}, sys.stdout)
`

// Dynamic runs the interpreter given by cmdline (such as []string{"python3"}) and reports on
// it.
func Dynamic(ctx context.Context, cmdline ...string) (*DynamicInfo, error) {
	bs, err := runPython(ctx, cmdline, dynamicScript)
	if err != nil {
		return nil, fmt.Errorf("pyinspect.Dynamic: %w", err)
	}
	var data DynamicInfo
	if err := json.Unmarshal(bs, &data); err != nil {
		return nil, fmt.Errorf("pyinspect.Dynamic: %w", err)
	}
	return &data, nil
}

// MarkerEnvironment returns the values that PEP 508 environment markers evaluate against for
// the given interpreter.
func MarkerEnvironment(ctx context.Context, cmdline ...string) (pep508.Environment, error) {
	info, err := Dynamic(ctx, cmdline...)
	if err != nil {
		return nil, err
	}
	return info.MarkerEnvironment, nil
}

// Platform returns a python.Platform for installing in to the given interpreter's default
// scheme, owned by root.
func Platform(ctx context.Context, sys FS, cmdline ...string) (python.Platform, error) {
	info, err := Dynamic(ctx, cmdline...)
	if err != nil {
		return python.Platform{}, err
	}
	console, graphical, err := Shebangs(sys, cmdline[0])
	if err != nil {
		return python.Platform{}, fmt.Errorf("pyinspect.Platform: %w", err)
	}
	plat := python.Platform{
		ConsoleShebang:   console,
		GraphicalShebang: graphical,
		Scheme:           info.Scheme,
		UName:            "root",
		GName:            "root",
		VersionInfo:      &info.VersionInfo,
		Tags:             info.Tags,
	}
	if err := plat.Init(); err != nil {
		return python.Platform{}, fmt.Errorf("pyinspect.Platform: %w", err)
	}
	return plat, nil
}

func runPython(ctx context.Context, cmdline []string, script string) ([]byte, error) {
	if len(cmdline) == 0 {
		return nil, errors.New("no Python interpreter specified")
	}
	cmd := dexec.CommandContext(ctx, cmdline[0], append(cmdline[1:], "-c", script)...)
	cmd.DisableLogging = true
	bs, err := cmd.Output()
	if err != nil {
		var exitErr *dexec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("%w:\n > %s", err,
				strings.Join(strings.Split(string(exitErr.Stderr), "\n"), "\n > "))
		}
		return nil, fmt.Errorf("running Python: %w", err)
	}
	return bs, nil
}
