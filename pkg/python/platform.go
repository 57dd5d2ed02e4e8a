// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package python

import (
	"fmt"
	"path"

	"github.com/datawire/pybuild/pkg/python/pep425"
)

// A Platform describes where and how a wheel gets installed: the interpreter that scripts run
// with, the directory layout, and who owns the files.
type Platform struct {
	ConsoleShebang   string // "/usr/bin/python3"
	GraphicalShebang string // "/usr/bin/python3"

	Scheme Scheme

	UID   int
	GID   int
	UName string
	GName string

	// VersionInfo and Tags are only known when the platform was inspected from a live
	// interpreter; they are nil otherwise.
	VersionInfo *VersionInfo
	Tags        pep425.Installer
}

// VersionInfo is Python's `sys.version_info`.
type VersionInfo struct {
	Major        int    `json:"major"`
	Minor        int    `json:"minor"`
	Micro        int    `json:"micro"`
	ReleaseLevel string `json:"releaselevel"` // 'alpha', 'beta', 'candidate', or 'final'
	Serial       int    `json:"serial"`
}

// MajorMinor returns "X.Y", as used in "lib/pythonX.Y/site-packages".
func (vi VersionInfo) MajorMinor() string {
	return fmt.Sprintf("%d.%d", vi.Major, vi.Minor)
}

// Scheme is an installation scheme, as in `sysconfig.get_paths()`.  The paths are absolute and
// slash-separated, since they name locations inside of a layer rather than on the build host.
type Scheme struct {
	PureLib string `json:"purelib"` // "/usr/lib/python3.9/site-packages"
	PlatLib string `json:"platlib"` // "/usr/lib64/python3.9/site-packages"
	Headers string `json:"headers"` // "/usr/include/python3.9/$name/"
	Scripts string `json:"scripts"` // "/usr/bin"
	Data    string `json:"data"`    // "/usr"
}

// Init fills in whichever shebang is missing from the other, and validates that the scheme has
// absolute paths.
func (plat *Platform) Init() error {
	if plat.ConsoleShebang == "" && plat.GraphicalShebang == "" {
		return fmt.Errorf("platform does not specify an interpreter to use for shebangs")
	}
	if plat.ConsoleShebang == "" {
		plat.ConsoleShebang = plat.GraphicalShebang
	}
	if plat.GraphicalShebang == "" {
		plat.GraphicalShebang = plat.ConsoleShebang
	}
	for _, dir := range []struct {
		Name string
		Path string
	}{
		{"purelib", plat.Scheme.PureLib},
		{"platlib", plat.Scheme.PlatLib},
		{"headers", plat.Scheme.Headers},
		{"scripts", plat.Scheme.Scripts},
		{"data", plat.Scheme.Data},
	} {
		if !path.IsAbs(dir.Path) {
			return fmt.Errorf("platform install scheme %q is not an absolute path: %q", dir.Name, dir.Path)
		}
	}
	return nil
}
