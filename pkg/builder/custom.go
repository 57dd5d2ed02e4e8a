// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"context"
	"os"

	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/plugin/custom"
)

// customTarget is a target implemented by a project-local script.
type customTarget struct {
	TargetBase
	script *custom.Builder
}

func newCustom(ctx context.Context, base TargetBase) (Target, error) {
	script, err := custom.LoadBuilder(ctx, base.Settings, base.Root, base.Config.Table, base.Project)
	if err != nil {
		return nil, err
	}
	return &customTarget{TargetBase: base, script: script}, nil
}

func (t *customTarget) Versions(ctx context.Context) (all, defaults []string, err error) {
	return t.script.Versions(ctx)
}

func (t *customTarget) DefaultBuildData(hookNames []string) hooks.BuildData {
	return hooks.NewBuildData(hookNames)
}

func (t *customTarget) Build(ctx context.Context, version, directory string, buildData hooks.BuildData) (string, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", err
	}
	return t.script.Build(ctx, version, directory, buildData)
}

func (t *customTarget) Clean(ctx context.Context, directory string, versions []string) error {
	return t.script.Clean(ctx, directory, versions)
}

func (t *customTarget) Close() error {
	return t.script.Close()
}
