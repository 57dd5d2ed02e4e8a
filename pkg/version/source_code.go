// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datawire/dlib/dexec"

	"github.com/datawire/pybuild/pkg/config"
)

// CodeSource loads a Python file in a fresh interpreter and evaluates an expression in the
// resulting module namespace.  It cannot write the version back.
//
// Options:
//
//	path          (required) file, relative to Root
//	expression    (optional) defaults to "__version__"
//	search-paths  (optional) directories, relative to Root, to put at the front of sys.path
type CodeSource struct {
	Root     string
	Config   config.Table
	Settings *config.Settings
}

var _ Source = (*CodeSource)(nil)

const codeScript = `
import json
import os
import sys
from importlib.util import module_from_spec, spec_from_file_location

path, expression = sys.argv[1], sys.argv[2]
search_paths = json.loads(sys.argv[3])

spec = spec_from_file_location(os.path.splitext(path)[0], path)
module = module_from_spec(spec)
sys.path[:] = [*search_paths, os.path.dirname(path), *sys.path]
spec.loader.exec_module(module)

json.dump({"version": str(eval(expression, vars(module)))}, sys.stdout)
`

func (s *CodeSource) GetVersionData(ctx context.Context) (Data, error) {
	relpath, err := s.Config.RequiredString("path")
	if err != nil {
		return nil, fmt.Errorf("version.CodeSource: %w", err)
	}
	expression, err := s.Config.StringDefault("expression", "__version__")
	if err != nil {
		return nil, fmt.Errorf("version.CodeSource: %w", err)
	}
	searchPaths, err := s.Config.StringSlice("search-paths")
	if err != nil {
		return nil, fmt.Errorf("version.CodeSource: %w", err)
	}
	filename := filepath.Join(s.Root, relpath)
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("version.CodeSource: file does not exist: %s: %w", relpath, err)
	}
	absSearchPaths := make([]string, 0, len(searchPaths))
	for _, dir := range searchPaths {
		absSearchPaths = append(absSearchPaths, filepath.Join(s.Root, dir))
	}
	searchPathsJSON, err := json.Marshal(absSearchPaths)
	if err != nil {
		return nil, fmt.Errorf("version.CodeSource: %w", err)
	}

	python, err := s.Settings.Python()
	if err != nil {
		return nil, fmt.Errorf("version.CodeSource: %w", err)
	}
	args := append(python[1:], "-c", codeScript, filename, expression, string(searchPathsJSON))
	cmd := dexec.CommandContext(ctx, python[0], args...)
	cmd.Dir = s.Root
	cmd.DisableLogging = true
	out, err := cmd.Output()
	if err != nil {
		var exitErr *dexec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("%w:\n > %s", err,
				strings.Join(strings.Split(strings.TrimSpace(string(exitErr.Stderr)), "\n"), "\n > "))
		}
		return nil, fmt.Errorf("version.CodeSource: %s: %w", relpath, err)
	}
	var data struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(out, &data); err != nil {
		return nil, fmt.Errorf("version.CodeSource: %w", err)
	}
	return Data{"version": data.Version}, nil
}

func (s *CodeSource) SetVersion(context.Context, string, Data) error {
	return fmt.Errorf("version.CodeSource: %w: cannot rewrite a version that is computed by code", ErrReadOnly)
}
