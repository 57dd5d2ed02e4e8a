// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package entry_points implements the PyPA Entry points specification.
//
// https://packaging.python.org/en/latest/specifications/entry-points/
package entry_points //nolint:revive,stylecheck // underscore matches the PyPA document name

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/datawire/pybuild/pkg/fsutil"
	"github.com/datawire/pybuild/pkg/python"
	"github.com/datawire/pybuild/pkg/python/pypa/bdist"
)

// Groups maps group name => entry point name => object reference.
type Groups map[string]map[string]string

const (
	ConsoleScripts = "console_scripts"
	GUIScripts     = "gui_scripts"
)

// EntryPoint is a parsed object reference "module:attr.attr [extras]".
type EntryPoint struct {
	Module string
	Attr   string // may be empty
}

var reObjectRef = regexp.MustCompile(`^(?P<module>[\w.]+)\s*(?::\s*(?P<attr>[\w.]+))?\s*(?:\[[^\]]*\])?$`)

// ParseEntryPoint parses an object reference.
func ParseEntryPoint(ref string) (EntryPoint, error) {
	match := reObjectRef.FindStringSubmatch(strings.TrimSpace(ref))
	if match == nil {
		return EntryPoint{}, fmt.Errorf("invalid entry point object reference: %q", ref)
	}
	return EntryPoint{
		Module: match[reObjectRef.SubexpIndex("module")],
		Attr:   match[reObjectRef.SubexpIndex("attr")],
	}, nil
}

// Parse reads an entry_points.txt file.  The format is INI-like: "[group]" headers followed by
// "name = object reference" lines.  Names are case-sensitive, and "#" or ";" starts a comment
// line.
func Parse(r io.Reader) (Groups, error) {
	ret := make(Groups)
	var group map[string]string
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			name := strings.TrimSpace(line[1 : len(line)-1])
			if _, dup := ret[name]; dup {
				return nil, fmt.Errorf("entry_points.Parse: line %d: duplicate group %q", lineno, name)
			}
			group = make(map[string]string)
			ret[name] = group
		default:
			if group == nil {
				return nil, fmt.Errorf("entry_points.Parse: line %d: entry point outside of a group", lineno)
			}
			eq := strings.IndexByte(line, '=')
			if eq <= 0 {
				return nil, fmt.Errorf("entry_points.Parse: line %d: invalid line: %q", lineno, line)
			}
			name := strings.TrimSpace(line[:eq])
			if _, dup := group[name]; dup {
				return nil, fmt.Errorf("entry_points.Parse: line %d: duplicate entry point %q", lineno, name)
			}
			group[name] = strings.TrimSpace(line[eq+1:])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("entry_points.Parse: %w", err)
	}
	return ret, nil
}

// GroupNames returns the groups in the order that Format writes them: console_scripts and
// gui_scripts first, then the rest alphabetically.
func (g Groups) GroupNames() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	rank := func(name string) int {
		switch name {
		case ConsoleScripts:
			return 0
		case GUIScripts:
			return 1
		default:
			return 2
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if ri, rj := rank(names[i]), rank(names[j]); ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

// Format renders an entry_points.txt file; it is deterministic.  Empty groups are omitted.
func Format(g Groups) []byte {
	var buf bytes.Buffer
	for _, group := range g.GroupNames() {
		entries := g[group]
		if len(entries) == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "[%s]\n", group)
		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&buf, "%s = %s\n", name, entries[name])
		}
	}
	return buf.Bytes()
}

var scriptTmpl = template.Must(template.
	New("entry_point.py").
	Parse(`#!{{ .Shebang }}
# -*- coding: utf-8 -*-
import re
import sys
from {{ .Module }} import {{ .ImportName }}
if __name__ == '__main__':
    sys.argv[0] = re.sub(r'(-script\.pyw|\.exe)?$', '', sys.argv[0])
    sys.exit({{ .Func }}())
`))

// Script renders the launcher script for a console or GUI entry point.
func Script(shebang string, ep EntryPoint) ([]byte, error) {
	if ep.Attr == "" {
		return nil, fmt.Errorf("entry point %q does not name a function", ep.Module)
	}
	importName := strings.SplitN(ep.Attr, ".", 2)[0]
	var buf bytes.Buffer
	if err := scriptTmpl.Execute(&buf, map[string]string{
		"Shebang":    shebang,
		"Module":     ep.Module,
		"ImportName": importName,
		"Func":       ep.Attr,
	}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CreateScripts is a post-install hook that writes launcher scripts for the installed
// distribution's console_scripts and gui_scripts.
func CreateScripts(plat python.Platform) bdist.PostInstallHook {
	return func(_ context.Context, clampTime time.Time, vfs map[string]fsutil.FileReference, installedDistInfoDir string) error {
		if err := plat.Init(); err != nil {
			return err
		}
		configFile, ok := vfs[path.Join(installedDistInfoDir, "entry_points.txt")]
		if !ok {
			return nil
		}
		configReader, err := configFile.Open()
		if err != nil {
			return err
		}
		groups, err := Parse(configReader)
		_ = configReader.Close()
		if err != nil {
			return err
		}

		interesting := map[string]string{
			ConsoleScripts: plat.ConsoleShebang,
			GUIScripts:     plat.GraphicalShebang,
		}

		for sectionName, shebang := range interesting {
			for k, v := range groups[sectionName] {
				ep, err := ParseEntryPoint(v)
				if err != nil {
					return fmt.Errorf("%s: %s: %w", sectionName, k, err)
				}
				content, err := Script(shebang, ep)
				if err != nil {
					return fmt.Errorf("%s: %s: %w", sectionName, k, err)
				}
				header := &tar.Header{
					Typeflag: tar.TypeReg,
					Name:     path.Join(plat.Scheme.Scripts[1:], k),
					Mode:     0o755,
					Size:     int64(len(content)),
					ModTime:  clampTime,
				}
				vfs[header.Name] = &fsutil.InMemFileReference{
					FileInfo:  header.FileInfo(),
					MFullName: header.Name,
					MContent:  content,
				}
			}
		}
		return nil
	}
}
