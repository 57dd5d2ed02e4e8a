// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/natefinch/atomic"

	"github.com/datawire/pybuild/pkg/config"
)

// DefaultPattern matches assignments such as `__version__ = "1.2.3"` or `VERSION = 'v1.2.3'`.
// The closing quote must match the opening one, so there is a "version" group for each.
const DefaultPattern = `(?im)^(?:__version__|VERSION) *= *(?:"v?(?P<version>[^"\n]+)"|'v?(?P<version>[^'\n]+)')`

// RegexSource finds the version in a file with a regular expression, and rewrites it in
// place.
//
// Options:
//
//	path     (required) file, relative to Root
//	pattern  (optional) Go regular expression with a named group "version"; if several
//	         groups have that name, the first one that matched is the version
type RegexSource struct {
	Root   string
	Config config.Table
}

var _ Source = (*RegexSource)(nil)

func (s *RegexSource) options() (filename string, pattern *regexp.Regexp, err error) {
	relpath, err := s.Config.RequiredString("path")
	if err != nil {
		return "", nil, err
	}
	patternStr, err := s.Config.StringDefault("pattern", DefaultPattern)
	if err != nil {
		return "", nil, err
	}
	filename = filepath.Join(s.Root, relpath)
	if _, err := os.Stat(filename); err != nil {
		return "", nil, fmt.Errorf("file does not exist: %s: %w", relpath, err)
	}
	pattern, err = regexp.Compile(patternStr)
	if err != nil {
		return "", nil, &config.Error{Path: s.Config.KeyPath("pattern"), Msg: fmt.Sprintf("is not a valid pattern: %v", err)}
	}
	if pattern.SubexpIndex("version") < 0 {
		return "", nil, &config.Error{Path: s.Config.KeyPath("pattern"), Msg: "does not define a named group `version`"}
	}
	return filename, pattern, nil
}

func (s *RegexSource) GetVersionData(_ context.Context) (Data, error) {
	filename, pattern, err := s.options()
	if err != nil {
		return nil, fmt.Errorf("version.RegexSource: %w", err)
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("version.RegexSource: %w", err)
	}
	start, end, ok := versionSpan(pattern, pattern.FindSubmatchIndex(content))
	if !ok {
		return nil, fmt.Errorf("version.RegexSource: unable to parse the version from the file: %s", filename)
	}
	return Data{
		"version":       string(content[start:end]),
		"file_contents": content,
		"version_start": start,
		"version_end":   end,
	}, nil
}

// versionSpan returns the location of the first "version" group that took part in the match.
func versionSpan(pattern *regexp.Regexp, loc []int) (start, end int, ok bool) {
	if loc == nil {
		return 0, 0, false
	}
	for i, name := range pattern.SubexpNames() {
		if name == "version" && loc[2*i] >= 0 {
			return loc[2*i], loc[2*i+1], true
		}
	}
	return 0, 0, false
}

func (s *RegexSource) SetVersion(_ context.Context, newVersion string, data Data) error {
	filename, _, err := s.options()
	if err != nil {
		return fmt.Errorf("version.RegexSource: %w", err)
	}
	content, okContent := data["file_contents"].([]byte)
	start, okStart := data["version_start"].(int)
	end, okEnd := data["version_end"].(int)
	if !okContent || !okStart || !okEnd {
		return fmt.Errorf("version.RegexSource: version data did not come from GetVersionData")
	}
	var buf bytes.Buffer
	buf.Grow(len(content) - (end - start) + len(newVersion))
	buf.Write(content[:start])
	buf.WriteString(newVersion)
	buf.Write(content[end:])
	if err := atomic.WriteFile(filename, &buf); err != nil {
		return fmt.Errorf("version.RegexSource: %w", err)
	}
	return nil
}
