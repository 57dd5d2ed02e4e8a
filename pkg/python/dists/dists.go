// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package dists finds installed Python distributions.
package dists

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/datawire/pybuild/pkg/python/pep440"
	"github.com/datawire/pybuild/pkg/python/pep508"
	"github.com/datawire/pybuild/pkg/python/pypa/core_metadata"
	"github.com/datawire/pybuild/pkg/python/pypa/direct_url"
)

// Distribution is an installed distribution, as described by its .dist-info directory.
type Distribution struct {
	Name      string
	Version   string
	Metadata  *core_metadata.Metadata
	DirectURL *direct_url.DirectURL // nil if the distribution was installed from an index

	// Path is the .dist-info directory; empty for distributions that were not read from
	// disk.
	Path string
}

// ParsedVersion parses the Version.
func (d *Distribution) ParsedVersion() (*pep440.Version, error) {
	return pep440.ParseVersion(d.Version)
}

// RequiresDist returns the parsed Requires-Dist fields.
func (d *Distribution) RequiresDist() ([]*pep508.Requirement, error) {
	var ret []*pep508.Requirement
	for _, str := range d.Metadata.GetAll("Requires-Dist") {
		req, err := pep508.ParseRequirement(str)
		if err != nil {
			return nil, fmt.Errorf("%s: Requires-Dist: %w", d.Name, err)
		}
		ret = append(ret, req)
	}
	return ret, nil
}

// ProvidesExtra reports whether the distribution declares the given extra.
func (d *Distribution) ProvidesExtra(extra string) bool {
	extra = pep508.NormalizeName(extra)
	for _, provided := range d.Metadata.GetAll("Provides-Extra") {
		if pep508.NormalizeName(provided) == extra {
			return true
		}
	}
	return false
}

// NewDistribution builds a Distribution from already-parsed metadata.
func NewDistribution(md *core_metadata.Metadata, directURL *direct_url.DirectURL) *Distribution {
	return &Distribution{
		Name:      md.Get("Name"),
		Version:   md.Get("Version"),
		Metadata:  md,
		DirectURL: directURL,
	}
}

// ReadDistInfo reads a .dist-info directory.
func ReadDistInfo(dir string) (*Distribution, error) {
	content, err := os.ReadFile(filepath.Join(dir, "METADATA"))
	if err != nil {
		return nil, err
	}
	md, err := core_metadata.ParseBytes(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	var directURL *direct_url.DirectURL
	if content, err := os.ReadFile(filepath.Join(dir, direct_url.FileName)); err == nil {
		directURL, err = direct_url.Parse(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dir, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	dist := NewDistribution(md, directURL)
	dist.Path = dir
	return dist, nil
}

// A Source yields distributions one at a time; Next returns io.EOF when there are no more.
type Source interface {
	Next() (*Distribution, error)
}

// SliceSource is a Source over a fixed list.
type SliceSource struct {
	Dists []*Distribution
	pos   int
}

func (s *SliceSource) Next() (*Distribution, error) {
	if s.pos >= len(s.Dists) {
		return nil, io.EOF
	}
	dist := s.Dists[s.pos]
	s.pos++
	return dist, nil
}

// SiteSource walks a search path (such as sys.path) for *.dist-info directories.  Directories
// are listed lazily, one search path entry at a time; entries that do not exist, or that are not
// directories (zip files), are skipped.  Within a directory, entries are visited in sorted order.
type SiteSource struct {
	Path []string

	pending []string
}

func (s *SiteSource) Next() (*Distribution, error) {
	for len(s.pending) == 0 {
		if len(s.Path) == 0 {
			return nil, io.EOF
		}
		dir := s.Path[0]
		s.Path = s.Path[1:]
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
				continue
			}
			return nil, fmt.Errorf("dists.SiteSource: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() && strings.HasSuffix(entry.Name(), ".dist-info") {
				s.pending = append(s.pending, filepath.Join(dir, entry.Name()))
			}
		}
		sort.Strings(s.pending)
	}
	dir := s.pending[0]
	s.pending = s.pending[1:]
	dist, err := ReadDistInfo(dir)
	if err != nil {
		return nil, fmt.Errorf("dists.SiteSource: %w", err)
	}
	return dist, nil
}
