// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package hooks defines metadata hooks and build hooks, and runs them in order.
//
// Metadata hooks run once, while the project metadata is resolved; each may rewrite the
// metadata and may declare extra valid classifiers.  Build hooks are bound to a single build
// target, and for each version of that target run:
//
//	Clean       only if cleaning was requested
//	Initialize  before the target assembles its files
//	Finalize    after the artifact is written; skipped for a hooks-only build
package hooks

import (
	"context"
	"fmt"
	"io"

	"github.com/datawire/dlib/derror"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/plugin"
)

// ProjectMetadata is the view of the project's resolved metadata that build hooks get.
type ProjectMetadata interface {
	Name() string
	Version(ctx context.Context) (string, error)
}

// BuildHookBase is what every build hook is constructed from.
type BuildHookBase struct {
	Root        string       // project directory
	Config      config.Table // the hook's own table, target-level settings overlaid on global ones
	BuildConfig config.Table // the target's table
	TargetName  string       // "wheel", "sdist", ...
	Directory   string       // where artifacts are written
	Metadata    ProjectMetadata
	Settings    *config.Settings
}

type BuildHook interface {
	Clean(ctx context.Context, versions []string) error
	Initialize(ctx context.Context, version string, buildData BuildData) error
	Finalize(ctx context.Context, version string, buildData BuildData, artifactPath string) error
}

// BuildHookClass is a plugin.Class for the "build_hook" type.
type BuildHookClass interface {
	plugin.Class
	NewBuildHook(ctx context.Context, base BuildHookBase) (BuildHook, error)
}

// MetadataHookBase is what every metadata hook is constructed from.
type MetadataHookBase struct {
	Root     string
	Config   config.Table
	Settings *config.Settings
}

type MetadataHook interface {
	// Update may modify metadata, which is the [project] table being resolved.
	Update(ctx context.Context, metadata map[string]interface{}) error
	KnownClassifiers() []string
}

// MetadataHookClass is a plugin.Class for the "metadata_hook" type.
type MetadataHookClass interface {
	plugin.Class
	NewMetadataHook(ctx context.Context, base MetadataHookBase) (MetadataHook, error)
}

// BuildHookFuncs adapts plain functions to a BuildHook; nil functions do nothing.
type BuildHookFuncs struct {
	CleanFunc      func(ctx context.Context, versions []string) error
	InitializeFunc func(ctx context.Context, version string, buildData BuildData) error
	FinalizeFunc   func(ctx context.Context, version string, buildData BuildData, artifactPath string) error
}

func (f BuildHookFuncs) Clean(ctx context.Context, versions []string) error {
	if f.CleanFunc == nil {
		return nil
	}
	return f.CleanFunc(ctx, versions)
}

func (f BuildHookFuncs) Initialize(ctx context.Context, version string, buildData BuildData) error {
	if f.InitializeFunc == nil {
		return nil
	}
	return f.InitializeFunc(ctx, version, buildData)
}

func (f BuildHookFuncs) Finalize(ctx context.Context, version string, buildData BuildData, artifactPath string) error {
	if f.FinalizeFunc == nil {
		return nil
	}
	return f.FinalizeFunc(ctx, version, buildData, artifactPath)
}

// call runs fn, turning a panic in to an error.
func call(name, event string, fn func() error) (err error) {
	defer func() {
		if perr := derror.PanicToError(recover()); perr != nil {
			err = perr
		}
		if err != nil {
			err = fmt.Errorf("hook %q: %s: %w", name, event, err)
		}
	}()
	return fn()
}

func closeHook(hook interface{}) error {
	if closer, ok := hook.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
