// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package bdist

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/datawire/dlib/dlog"
	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"

	"github.com/datawire/pybuild/pkg/fsutil"
	"github.com/datawire/pybuild/pkg/python"
	"github.com/datawire/pybuild/pkg/reproducible"
)

// PostInstallHook is called after a wheel has been unpacked and spread, and may add files to
// or remove files from vfs.
//
// vfs is a map[filename]FileReference where filename==FileReference.FullName().
//
// As a reminder, FileFeference.FullName() returns io/fs paths: (1) forward-slashes and (2) absolute
// paths but without the leading "/".
type PostInstallHook func(
	ctx context.Context,
	clampTime time.Time,
	vfs map[string]fsutil.FileReference,
	installedDistInfoDir string,
) error

// PostInstallHooks chains several hooks in to one; they are run in order, stopping at the
// first error.
func PostInstallHooks(hooks ...PostInstallHook) PostInstallHook {
	if len(hooks) == 0 {
		return nil
	}
	return func(
		ctx context.Context,
		clampTime time.Time,
		vfs map[string]fsutil.FileReference,
		installedDistInfoDir string,
	) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			if err := hook(ctx, clampTime, vfs, installedDistInfoDir); err != nil {
				return err
			}
		}
		return nil
	}
}

// InstallWheel installs a wheel file in to an OCI image layer, laid out according to plat.
//
// Files are not byte-compiled.  If maxTime is zero, it is derived from the newest timestamp
// in the wheel.
func InstallWheel(
	ctx context.Context,
	plat python.Platform,
	minTime, maxTime time.Time,
	wheelfilename string,
	hook PostInstallHook,
	opts ...ociv1tarball.LayerOption,
) (ociv1.Layer, error) {
	plat, err := layerScheme(plat)
	if err != nil {
		return nil, fmt.Errorf("bdist.InstallWheel: validate python.Platform: %w", err)
	}

	zipReader, err := zip.OpenReader(wheelfilename)
	if err != nil {
		return nil, fmt.Errorf("bdist.InstallWheel: open wheel: %w", err)
	}
	defer zipReader.Close()
	zr := &zipReader.Reader

	if err := Verify(zr); err != nil {
		return nil, fmt.Errorf("bdist.InstallWheel: wheel integrity: %w", err)
	}

	if maxTime.IsZero() {
		var maxWheelTime time.Time
		for _, file := range zr.File {
			if file.Modified.After(maxWheelTime) {
				maxWheelTime = file.Modified
			}
		}
		if maxWheelTime.IsZero() {
			maxTime = reproducible.Now()
		} else {
			maxTime = maxWheelTime.Truncate(time.Second)
			if maxTime.Before(maxWheelTime) {
				maxTime = maxTime.Add(time.Second)
			}
		}
	}

	vfs, installedDistInfoDir, err := installToVFS(ctx, zr, plat, minTime)
	if err != nil {
		return nil, fmt.Errorf("bdist.InstallWheel: %w", err)
	}

	if hook != nil {
		if err := hook(ctx, maxTime, vfs, installedDistInfoDir); err != nil {
			return nil, fmt.Errorf("bdist.InstallWheel: post-install hook: %w", err)
		}
	}

	// ensure that parent directories exist
	for filename := range vfs {
		for dir := path.Dir(filename); dir != "."; dir = path.Dir(dir) {
			if _, exists := vfs[dir]; !exists {
				vfs[dir] = fsutil.NewInMemDir(dir, maxTime)
			}
		}
	}

	layer, err := fsutil.LayerFromFileReferences(vfs.chown(plat), maxTime, opts...)
	if err != nil {
		return nil, fmt.Errorf("bdist.InstallWheel: generate layer: %w", err)
	}
	return layer, nil
}

func installToVFS(
	ctx context.Context,
	zr *zip.Reader,
	plat python.Platform,
	minTime time.Time,
) (installTree, string, error) {
	// Unpack.
	//
	//   a. Parse ``distribution-1.0.dist-info/WHEEL``.
	infoDir, err := distInfoDir(zr)
	if err != nil {
		return nil, "", err
	}
	wheelFile, err := openZipFile(zr, path.Join(infoDir, "WHEEL"))
	if err != nil {
		return nil, "", fmt.Errorf("parse .dist-info/WHEEL: %w", err)
	}
	metadata, wheelVersion, err := ParseWheelFile(wheelFile)
	_ = wheelFile.Close()
	if err != nil {
		return nil, "", fmt.Errorf("parse .dist-info/WHEEL: %w", err)
	}
	//   b. Check that installer is compatible with Wheel-Version.  Warn if
	//      minor version is greater, abort if major version is greater.
	if wheelVersion.Major() > SpecVersion.Major() {
		return nil, "", fmt.Errorf("wheel file's Wheel-Version (%s) is not compatible with this wheel parser",
			wheelVersion)
	}
	if wheelVersion.Cmp(*SpecVersion) > 0 {
		dlog.Warnf(ctx, "wheel file's Wheel-Version (%s) is newer than this wheel parser", wheelVersion)
	}
	//   c. If Root-Is-Purelib == 'true', unpack archive into purelib
	//      (site-packages).
	//   d. Else unpack archive into platlib (site-packages).
	dstDir := plat.Scheme.PlatLib
	if metadata.RootIsPurelib {
		dstDir = plat.Scheme.PureLib
	}
	vfs := make(installTree)
	for _, file := range zr.File {
		vfs.add(path.Join(dstDir, file.FileHeader.Name), minTime, &wheelEntry{
			FileHeader: file.FileHeader,
			open:       file.Open,
		})
	}

	// Spread.
	//
	//   Move each subtree of ``distribution-1.0.data/`` onto its destination path.
	vfsTypes := make(map[string]string)
	dataName := strings.TrimSuffix(infoDir, ".dist-info") + ".data"
	dataDir := path.Join(dstDir, dataName)
	for fullName := range vfs {
		if !strings.HasPrefix(fullName, dataDir+"/") {
			continue
		}
		relName := strings.TrimPrefix(fullName, dataDir+"/")
		parts := strings.SplitN(relName, "/", 2)
		key := parts[0]
		var rest string
		if len(parts) > 1 {
			rest = parts[1]
		}

		var dstDataDir string
		switch key {
		case "purelib":
			dstDataDir = plat.Scheme.PureLib
		case "platlib":
			dstDataDir = plat.Scheme.PlatLib
		case "headers":
			dstDataDir = plat.Scheme.Headers
		case "scripts":
			dstDataDir = plat.Scheme.Scripts
		case "data":
			dstDataDir = plat.Scheme.Data
		default:
			return nil, "", fmt.Errorf("unsupported wheel data type %q: %q",
				key, path.Join(dataName, relName))
		}
		newFullName := path.Join(dstDataDir, rest)
		vfsTypes[newFullName] = key
		if err := vfs.move(fullName, newFullName); err != nil {
			return nil, "", fmt.Errorf("spread: %w", err)
		}
	}
	//   Update scripts starting with ``#!python`` to point to the correct interpreter.
	if err := rewritePython(plat, vfs, vfsTypes); err != nil {
		return nil, "", fmt.Errorf("rewrite shebangs: %w", err)
	}
	//   The RECORD gets re-written by a PostInstallHook, with the installed paths.
	delete(vfs, path.Join(dstDir, infoDir, "RECORD"))
	delete(vfs, path.Join(dstDir, infoDir, "RECORD.jws"))
	delete(vfs, path.Join(dstDir, infoDir, "RECORD.p7s"))
	//   Remove empty ``distribution-1.0.data`` directory.
	delete(vfs, dataDir)

	return vfs, path.Join(dstDir, infoDir), nil
}

// rewritePython rewrites "#!python" (and "#!pythonw", for GUI scripts) at the start of
// files in scripts/, and adds the +x bit.
func rewritePython(plat python.Platform, vfs installTree, vfsTypes map[string]string) error {
	for filename, key := range vfsTypes {
		if key != "scripts" {
			continue
		}
		header, err := func() ([]byte, error) {
			fh, err := vfs[filename].Open()
			if err != nil {
				return nil, err
			}
			defer fh.Close()
			return io.ReadAll(io.LimitReader(fh, int64(len("#!pythonw"))))
		}()
		if err != nil {
			return err
		}
		if !bytes.HasPrefix(header, []byte("#!python")) {
			continue
		}

		entry := vfs[filename].(*wheelEntry) //nolint:forcetypeassert // only wheel members are spread

		shebang, skip := plat.ConsoleShebang, len("#!python")
		if bytes.Equal(header, []byte("#!pythonw")) {
			shebang, skip = plat.GraphicalShebang, len("#!pythonw")
		}
		entry.replacePrefix(skip, "#!"+shebang)
		entry.setExecutable()
	}
	return nil
}
