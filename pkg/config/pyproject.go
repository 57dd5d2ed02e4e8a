// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file, relative to the project root.
const FileName = "pyproject.toml"

// Project is a loaded pyproject.toml.
type Project struct {
	Root string
	doc  Table
}

// LoadProject reads root/pyproject.toml.
func LoadProject(root string) (*Project, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("config.LoadProject: %w", err)
	}
	var data map[string]interface{}
	md, err := toml.DecodeFile(filepath.Join(root, FileName), &data)
	if err != nil {
		return nil, fmt.Errorf("config.LoadProject: %w", err)
	}
	return &Project{Root: root, doc: newDocument(data, md)}, nil
}

// ParseProject parses the contents of a pyproject.toml for a project rooted at root.
func ParseProject(root, content string) (*Project, error) {
	var data map[string]interface{}
	md, err := toml.Decode(content, &data)
	if err != nil {
		return nil, fmt.Errorf("config.ParseProject: %w", err)
	}
	return &Project{Root: root, doc: newDocument(data, md)}, nil
}

func newDocument(data map[string]interface{}, md toml.MetaData) Table {
	order := make(map[string]int)
	for i, key := range md.Keys() {
		// Tables that are only implied by a dotted header or key take the position of the first
		// thing defined under them.
		for n := 1; n <= len(key); n++ {
			path := strings.Join(key[:n], ".")
			if _, dup := order[path]; !dup {
				order[path] = i
			}
		}
	}
	return Table{data: data, order: order}
}

// Document returns the whole file as a table.
func (p *Project) Document() Table {
	return p.doc
}

// ProjectTable returns the [project] table.
func (p *Project) ProjectTable() (Table, error) {
	return p.doc.Table("project")
}

// Hatch returns the [tool.hatch] table.
func (p *Project) Hatch() (Table, error) {
	return p.doc.Lookup("tool", "hatch")
}

// BuildSystem returns the [build-system] table.
func (p *Project) BuildSystem() (Table, error) {
	return p.doc.Table("build-system")
}
