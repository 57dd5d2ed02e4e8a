// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/datawire/pybuild/pkg/fsutil"
)

// alwaysExcludedDirs are never descended in to.
var alwaysExcludedDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".svn":          true,
	".bzr":          true,
	"__pycache__":   true,
	".tox":          true,
	".nox":          true,
	".venv":         true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".ruff_cache":   true,
}

// defaultExclude is excluded unless matched by an artifacts pattern.
var defaultExclude = []string{
	"*.py[cdo]",
	".DS_Store",
}

// anchorPattern makes a gitignore-style pattern behave the way git does: a pattern with a
// slash anywhere but at the end is relative to the directory it is defined for, rather than
// matching at any depth.
func anchorPattern(line string) string {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return line
	}
	neg := ""
	if strings.HasPrefix(line, "!") {
		neg, line = "!", line[1:]
	}
	if !strings.HasPrefix(line, "/") && !strings.HasPrefix(line, "**/") &&
		strings.Contains(strings.TrimSuffix(line, "/"), "/") {
		line = "/" + line
	}
	return neg + line
}

// rebasePattern rewrites a pattern from dir/.gitignore so that it can be matched against
// paths relative to the project root.
func rebasePattern(dir, line string) string {
	line = anchorPattern(line)
	if dir == "" || line == "" || strings.HasPrefix(line, "#") {
		return line
	}
	neg := ""
	if strings.HasPrefix(line, "!") {
		neg, line = "!", line[1:]
	}
	if strings.HasPrefix(line, "/") {
		return neg + "/" + dir + line
	}
	return neg + "/" + dir + "/**/" + strings.TrimPrefix(line, "**/")
}

func compilePatterns(lines []string) *ignore.GitIgnore {
	if len(lines) == 0 {
		return nil
	}
	anchored := make([]string, 0, len(lines))
	for _, line := range lines {
		anchored = append(anchored, anchorPattern(line))
	}
	return ignore.CompileIgnoreLines(anchored...)
}

func matches(spec *ignore.GitIgnore, rel string) bool {
	return spec != nil && spec.MatchesPath(rel)
}

func readLines(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	var ret []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		ret = append(ret, scanner.Text())
	}
	return ret, scanner.Err()
}

// vcsSpec is the accumulated .gitignore patterns of a directory and its parents.
type vcsSpec struct {
	lines []string
	spec  *ignore.GitIgnore
}

func (v vcsSpec) load(root, dir string) (vcsSpec, error) {
	lines, err := readLines(filepath.Join(root, filepath.FromSlash(dir), ".gitignore"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return v, err
	}
	all := make([]string, 0, len(v.lines)+len(lines))
	all = append(all, v.lines...)
	for _, line := range lines {
		all = append(all, rebasePattern(dir, line))
	}
	return vcsSpec{lines: all, spec: ignore.CompileIgnoreLines(all...)}, nil
}

// SelectedFile is a file chosen for an archive.
type SelectedFile struct {
	Source string // absolute path on disk
	Dest   string // slash-separated path within the archive
}

// Reference returns the file as a fsutil.FileReference named by its Dest, following symlinks.
func (f SelectedFile) Reference(prefix string) (fsutil.FileReference, error) {
	return fsutil.NewOSFileReference(path.Join(prefix, f.Dest), f.Source)
}

type fileSelector struct {
	root string
	cfg  *TargetConfig

	include   *ignore.GitIgnore
	exclude   *ignore.GitIgnore
	artifacts *ignore.GitIgnore
	defaults  *ignore.GitIgnore

	pruned map[string]bool // absolute directories never to descend in to
}

func newFileSelector(root string, cfg *TargetConfig, extraArtifacts []string) *fileSelector {
	include := append([]string(nil), cfg.Include...)
	for _, pkg := range cfg.Packages {
		include = append(include, "/"+strings.Trim(pkg, "/"))
	}
	artifacts := append(append([]string(nil), cfg.Artifacts...), extraArtifacts...)
	return &fileSelector{
		root:      root,
		cfg:       cfg,
		include:   compilePatterns(include),
		exclude:   compilePatterns(cfg.Exclude),
		artifacts: compilePatterns(artifacts),
		defaults:  compilePatterns(defaultExclude),
		pruned: map[string]bool{
			cfg.Directory: true,
		},
	}
}

func (s *fileSelector) inPackages(rel string) bool {
	if !s.cfg.OnlyPackages || len(s.cfg.Packages) == 0 {
		return true
	}
	for _, pkg := range s.cfg.Packages {
		if strings.HasPrefix(rel, strings.Trim(pkg, "/")+"/") {
			return true
		}
	}
	return false
}

func (s *fileSelector) isIncluded(rel string, explicit bool, vcs vcsSpec) bool {
	if matches(s.artifacts, rel) {
		return true
	}
	if matches(s.defaults, rel) {
		return false
	}
	if !explicit && s.include != nil && !s.include.MatchesPath(rel) {
		return false
	}
	if !s.inPackages(rel) {
		return false
	}
	if matches(s.exclude, rel) {
		return false
	}
	if !s.cfg.IgnoreVCS && matches(vcs.spec, rel) {
		return false
	}
	return true
}

func (s *fileSelector) isPrunedDir(rel string, vcs vcsSpec) bool {
	if alwaysExcludedDirs[path.Base(rel)] || s.pruned[filepath.Join(s.root, filepath.FromSlash(rel))] {
		return true
	}
	if !s.cfg.SkipExcludedDirs {
		return false
	}
	return matches(s.exclude, rel+"/") || (!s.cfg.IgnoreVCS && matches(vcs.spec, rel+"/"))
}

// Select walks the project (or just the only-include paths), and returns the selected files
// sorted by Dest.
func (s *fileSelector) Select() ([]SelectedFile, error) {
	var ret []SelectedFile
	rootVCS := vcsSpec{}
	if !s.cfg.IgnoreVCS {
		var err error
		if rootVCS, err = rootVCS.load(s.root, ""); err != nil {
			return nil, err
		}
	}
	if len(s.cfg.OnlyInclude) > 0 {
		for _, only := range s.cfg.OnlyInclude {
			rel := strings.Trim(filepath.ToSlash(only), "/")
			info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, err
			}
			if info.IsDir() {
				if err := s.walk(rel, true, rootVCS, &ret); err != nil {
					return nil, err
				}
			} else if s.isIncluded(rel, true, rootVCS) {
				ret = append(ret, s.selected(rel))
			}
		}
	} else if err := s.walk("", false, rootVCS, &ret); err != nil {
		return nil, err
	}
	sortSelected(ret)
	return dedupe(ret), nil
}

func (s *fileSelector) selected(rel string) SelectedFile {
	return SelectedFile{
		Source: filepath.Join(s.root, filepath.FromSlash(rel)),
		Dest:   s.cfg.DistPath(rel),
	}
}

func (s *fileSelector) walk(dir string, explicit bool, vcs vcsSpec, ret *[]SelectedFile) error {
	if dir != "" && !s.cfg.IgnoreVCS {
		var err error
		if vcs, err = vcs.load(s.root, dir); err != nil {
			return err
		}
	}
	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(dir)))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		rel := path.Join(dir, entry.Name())
		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
			if err != nil {
				continue // dangling
			}
			isDir = info.IsDir()
		}
		switch {
		case isDir:
			if s.isPrunedDir(rel, vcs) {
				continue
			}
			if err := s.walk(rel, explicit, vcs, ret); err != nil {
				return err
			}
		case entry.Type().IsRegular() || entry.Type()&fs.ModeSymlink != 0:
			if s.isIncluded(rel, explicit, vcs) {
				*ret = append(*ret, s.selected(rel))
			}
		}
	}
	return nil
}

// forced resolves force-include entries; directories are included recursively, and a
// missing source is an error.
func (s *fileSelector) forced(entries []ForceInclude) ([]SelectedFile, error) {
	var ret []SelectedFile
	for _, entry := range entries {
		src := entry.Source
		if !filepath.IsAbs(src) {
			src = filepath.Join(s.root, filepath.FromSlash(src))
		}
		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("forced include not found: %s: %w", src, err)
		}
		if !info.IsDir() {
			ret = append(ret, SelectedFile{Source: src, Dest: entry.Dest})
			continue
		}
		var files []SelectedFile
		err = filepath.WalkDir(src, func(filename string, dirEntry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if dirEntry.IsDir() {
				if filename != src && alwaysExcludedDirs[dirEntry.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(src, filename)
			if err != nil {
				return err
			}
			files = append(files, SelectedFile{
				Source: filename,
				Dest:   path.Join(entry.Dest, filepath.ToSlash(rel)),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
		sortSelected(files)
		ret = append(ret, files...)
	}
	return ret, nil
}

func sortSelected(files []SelectedFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return lessPath(files[i].Dest, files[j].Dest)
	})
}

// lessPath compares part-wise, so that a directory's contents stay adjacent.
func lessPath(a, b string) bool {
	aParts := strings.Split(a, "/")
	bParts := strings.Split(b, "/")
	for idx := 0; idx < len(aParts) && idx < len(bParts); idx++ {
		if aParts[idx] != bParts[idx] {
			return aParts[idx] < bParts[idx]
		}
	}
	return len(aParts) < len(bParts)
}

func dedupe(files []SelectedFile) []SelectedFile {
	seen := make(map[string]struct{}, len(files))
	ret := files[:0]
	for _, file := range files {
		if _, dup := seen[file.Dest]; dup {
			continue
		}
		seen[file.Dest] = struct{}{}
		ret = append(ret, file)
	}
	return ret
}

// combine appends forced files to selected ones; a forced file replaces a selected file with
// the same Dest.
func combine(selected, forced []SelectedFile) []SelectedFile {
	forcedDests := make(map[string]struct{}, len(forced))
	for _, file := range forced {
		forcedDests[file.Dest] = struct{}{}
	}
	ret := make([]SelectedFile, 0, len(selected)+len(forced))
	for _, file := range selected {
		if _, isForced := forcedDests[file.Dest]; !isForced {
			ret = append(ret, file)
		}
	}
	return dedupe(append(ret, forced...))
}
