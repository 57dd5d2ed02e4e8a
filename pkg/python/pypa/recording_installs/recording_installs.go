// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package recording_installs implements the PyPA specification Recording installed projects.
//
// https://packaging.python.org/en/latest/specifications/recording-installed-packages/
package recording_installs //nolint:revive,stylecheck // underscore matches the PyPA document name

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/datawire/pybuild/pkg/fsutil"
	"github.com/datawire/pybuild/pkg/python/pypa/bdist"
	"github.com/datawire/pybuild/pkg/python/pypa/direct_url"
)

const defaultHashAlgorithm = "sha256"

func recordFile(file fsutil.FileReference, hashName, baseDir string) (bdist.RecordRow, error) {
	name := strings.TrimPrefix(file.FullName(), baseDir+"/")
	if !strings.HasPrefix(file.FullName(), baseDir+"/") {
		// Outside of site-packages (scripts, headers, data); use a relative path.
		name = relPath(baseDir, file.FullName())
	}
	row := bdist.RecordRow{Path: name}
	if strings.HasSuffix(name, ".pyc") {
		return row, nil
	}
	hashsum, size, err := bdist.HashFile(hashName, file.Open)
	if err != nil {
		return row, err
	}
	row.Hash = hashsum
	row.Size = strconv.FormatInt(size, 10)
	return row, nil
}

// relPath is path/filepath.Rel for io/fs paths that are both known to be absolute.
func relPath(base, target string) string {
	baseParts := strings.Split(base, "/")
	targetParts := strings.Split(target, "/")
	common := 0
	for common < len(baseParts) && common < len(targetParts) && baseParts[common] == targetParts[common] {
		common++
	}
	parts := make([]string, 0, len(baseParts)-common+len(targetParts)-common)
	for i := common; i < len(baseParts); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targetParts[common:]...)
	return path.Join(parts...)
}

// Record returns a post-install hook that writes the INSTALLER file, the direct_url.json
// file (if urlData is non-nil), and finally a RECORD listing every installed file.
func Record(hashName, installer string, urlData *direct_url.DirectURL) bdist.PostInstallHook {
	if hashName == "" {
		hashName = defaultHashAlgorithm
	}
	return func(ctx context.Context, clampTime time.Time, vfs map[string]fsutil.FileReference, installedDistInfoDir string) error {
		// The .dist-info directory and the METADATA file: trust the wheel to have them.

		// The INSTALLER file
		name := path.Join(installedDistInfoDir, "INSTALLER")
		vfs[name] = fsutil.NewInMemFile(name, 0o644, clampTime, []byte(installer+"\n"))

		// The direct_url.json file
		if urlData != nil {
			if err := direct_url.Record(*urlData)(ctx, clampTime, vfs, installedDistInfoDir); err != nil {
				return fmt.Errorf("recording-installed-packages: direct_url.json: %w", err)
			}
		}

		// The RECORD file; do this last.
		baseDir := path.Dir(installedDistInfoDir)
		recordName := path.Join(installedDistInfoDir, "RECORD")
		record := bdist.Record{
			{Path: path.Join(path.Base(installedDistInfoDir), "RECORD")},
		}
		for _, file := range vfs {
			if file.IsDir() || file.FullName() == recordName {
				continue
			}
			row, err := recordFile(file, hashName, baseDir)
			if err != nil {
				return fmt.Errorf("recording-installed-packages: recording file %q: %w", file.FullName(), err)
			}
			record = append(record, row)
		}
		sort.Slice(record, func(i, j int) bool {
			return record[i].Path < record[j].Path
		})
		content, err := record.Bytes()
		if err != nil {
			return fmt.Errorf("recording-installed-packages: %w", err)
		}
		vfs[recordName] = fsutil.NewInMemFile(recordName, 0o644, clampTime, content)

		return nil
	}
}
