// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"context"
	"fmt"
	"os"

	"github.com/datawire/pybuild/pkg/config"
)

// EnvSource reads the version from the environment variable named by the "variable" option.
type EnvSource struct {
	Config config.Table
}

var _ Source = (*EnvSource)(nil)

func (s *EnvSource) GetVersionData(context.Context) (Data, error) {
	variable, err := s.Config.RequiredString("variable")
	if err != nil {
		return nil, fmt.Errorf("version.EnvSource: %w", err)
	}
	val, ok := os.LookupEnv(variable)
	if !ok {
		return nil, fmt.Errorf("version.EnvSource: environment variable %s is not set", variable)
	}
	return Data{"version": val}, nil
}

func (s *EnvSource) SetVersion(context.Context, string, Data) error {
	return fmt.Errorf("version.EnvSource: %w: cannot set environment variable", ErrReadOnly)
}
