// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package direct_url implements the PyPA direct_url.json specification (originally PEP 610),
// which records where an installed distribution came from when it was not installed from an
// index.
//
// https://packaging.python.org/en/latest/specifications/direct-url/
package direct_url //nolint:revive,stylecheck // underscore matches the PyPA document name

import (
	"archive/tar"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/datawire/pybuild/pkg/fsutil"
	"github.com/datawire/pybuild/pkg/python/pypa/bdist"
)

// FileName is the name of the file within a .dist-info directory.
const FileName = "direct_url.json"

type DirectURL struct {
	URL         string       `json:"url"`
	VCSInfo     *VCSInfo     `json:"vcs_info,omitempty"`     // if URL is a VCS reference
	ArchiveInfo *ArchiveInfo `json:"archive_info,omitempty"` // if URL is a sdist or bdist
	DirInfo     *DirInfo     `json:"dir_info,omitempty"`     // if URL is a local directory
}

type VCSInfo struct {
	VCS               string `json:"vcs"`
	RequestedRevision string `json:"requested_revision,omitempty"`
	CommitID          string `json:"commit_id"`
}

type ArchiveInfo struct {
	Hash string `json:"hash,omitempty"`
}

type DirInfo struct {
	Editable bool `json:"editable,omitempty"`
}

// Parse parses the contents of a direct_url.json file.
func Parse(content []byte) (*DirectURL, error) {
	var ret DirectURL
	if err := json.Unmarshal(content, &ret); err != nil {
		return nil, fmt.Errorf("direct_url.Parse: %w", err)
	}
	if ret.URL == "" {
		return nil, fmt.Errorf("direct_url.Parse: missing required %q key", "url")
	}
	if ret.VCSInfo != nil && (ret.VCSInfo.VCS == "" || ret.VCSInfo.CommitID == "") {
		return nil, fmt.Errorf("direct_url.Parse: vcs_info: missing required %q or %q key", "vcs", "commit_id")
	}
	return &ret, nil
}

// Dumps serializes the record the way pip writes it.
func (d DirectURL) Dumps() ([]byte, error) {
	return jsonDumps(d)
}

// VCSRequirementURLs returns the requirement URL spellings that pin exactly this VCS
// checkout, most specific first:
//
//	<vcs>+<url>@<requested_revision>#<commit_id>
//	<vcs>+<url>@<commit_id>
//
// It returns nil if the record is not a VCS record.
func (d DirectURL) VCSRequirementURLs() []string {
	if d.VCSInfo == nil {
		return nil
	}
	base := d.VCSInfo.VCS + "+" + d.URL
	var ret []string
	if d.VCSInfo.RequestedRevision != "" {
		ret = append(ret, base+"@"+d.VCSInfo.RequestedRevision+"#"+d.VCSInfo.CommitID)
	}
	return append(ret, base+"@"+d.VCSInfo.CommitID)
}

// Record returns a post-install hook that writes direct_url.json in to the installed
// .dist-info directory.
func Record(urlData DirectURL) bdist.PostInstallHook {
	return func(_ context.Context, clampTime time.Time, vfs map[string]fsutil.FileReference, installedDistInfoDir string) error {
		bs, err := urlData.Dumps()
		if err != nil {
			return err
		}
		header := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     path.Join(installedDistInfoDir, FileName),
			Mode:     0o644,
			Size:     int64(len(bs)),
			ModTime:  clampTime,
		}
		vfs[header.Name] = &fsutil.InMemFileReference{
			FileInfo:  header.FileInfo(),
			MFullName: header.Name,
			MContent:  bs,
		}
		return nil
	}
}
