// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/datawire/pybuild/pkg/fsutil"
	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/python/pypa/bdist"
	"github.com/datawire/pybuild/pkg/reproducible"
)

// sdistTarget builds a source distribution: a "{name}-{version}.tar.gz" holding the selected
// files under a "{name}-{version}/" prefix, plus a PKG-INFO.
type sdistTarget struct {
	TargetBase
}

func newSdist(_ context.Context, base TargetBase) (Target, error) {
	return &sdistTarget{TargetBase: base}, nil
}

func (t *sdistTarget) Versions(context.Context) (all, defaults []string, err error) {
	return []string{"standard"}, []string{"standard"}, nil
}

func (t *sdistTarget) DefaultBuildData(hookNames []string) hooks.BuildData {
	return hooks.NewBuildData(hookNames)
}

func (t *sdistTarget) Clean(ctx context.Context, directory string, _ []string) error {
	return removeArtifacts(ctx, directory, ".tar.gz")
}

// alwaysIncluded returns the files that an sdist ships even if excluded.
func (t *sdistTarget) alwaysIncluded(readme string, licenseFiles []string) []ForceInclude {
	var ret []ForceInclude
	for _, rel := range append([]string{"pyproject.toml", ".gitignore", readme}, licenseFiles...) {
		if rel == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(t.Root, filepath.FromSlash(rel))); err != nil {
			continue
		}
		ret = append(ret, ForceInclude{Source: rel, Dest: rel})
	}
	return ret
}

func (t *sdistTarget) Build(ctx context.Context, version, directory string, buildData hooks.BuildData) (string, error) {
	if version != "standard" {
		return "", unknownVersion(t.Config.Name, version)
	}
	core, err := t.Project.Core(ctx)
	if err != nil {
		return "", err
	}
	ver, err := t.version(ctx)
	if err != nil {
		return "", err
	}
	base := bdist.EscapeName(core.Name) + "-" + ver.String()

	files, err := t.selectFiles(buildData, t.alwaysIncluded(core.Readme.Path, core.LicenseFiles)...)
	if err != nil {
		return "", fmt.Errorf("sdist: %w", err)
	}
	refs := make([]fsutil.FileReference, 0, len(files)+1)
	for _, file := range files {
		if file.Dest == "PKG-INFO" {
			continue
		}
		ref, err := file.Reference(base)
		if err != nil {
			return "", fmt.Errorf("sdist: %w", err)
		}
		refs = append(refs, ref)
	}
	pkgInfoTime := t.modTime()
	if pkgInfoTime.IsZero() {
		pkgInfoTime = reproducible.Now()
	}
	refs = append(refs, fsutil.NewInMemFile(base+"/PKG-INFO", 0o644, pkgInfoTime, core.CoreMetadata().Bytes()))
	fsutil.SortFileReferences(refs)

	return writeArtifact(ctx, directory, base+".tar.gz", func(w io.Writer) error {
		return fsutil.WriteTarGz(w, refs, t.modTime())
	})
}
