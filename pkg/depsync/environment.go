// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package depsync

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/datawire/pybuild/pkg/python/pep508"
)

// LoadEnvironment reads a YAML (or JSON) mapping of marker variable names to values, such
// as:
//
//	python_version: "3.9"
//	sys_platform: linux
func LoadEnvironment(filename string) (pep508.Environment, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("depsync.LoadEnvironment: %w", err)
	}
	env, err := ParseEnvironment(content)
	if err != nil {
		return nil, fmt.Errorf("depsync.LoadEnvironment: %s: %w", filename, err)
	}
	return env, nil
}

// ParseEnvironment is like LoadEnvironment, but takes the file contents.
func ParseEnvironment(content []byte) (pep508.Environment, error) {
	var env pep508.Environment
	if err := yaml.UnmarshalStrict(content, &env); err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(pep508.Variables))
	for _, name := range pep508.Variables {
		known[name] = struct{}{}
	}
	for name := range env {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown environment marker variable %q", name)
		}
	}
	if env == nil {
		env = make(pep508.Environment)
	}
	return env, nil
}
