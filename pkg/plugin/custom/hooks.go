// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package custom

import (
	"context"

	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/plugin"
)

// metadataArgs describes the project to the script's ProjectMetadata object.
func metadataArgs(ctx context.Context, md hooks.ProjectMetadata) (map[string]interface{}, error) {
	if md == nil {
		return map[string]interface{}{}, nil
	}
	ver, err := md.Version(ctx)
	if err != nil {
		return nil, err
	}
	ret := map[string]interface{}{
		"name":    md.Name(),
		"version": ver,
	}
	if raw, ok := md.(interface{ Raw() map[string]interface{} }); ok {
		ret["core"] = raw.Raw()
	}
	return ret, nil
}

// replaceMap makes dst hold exactly the entries of src.
func replaceMap(dst, src map[string]interface{}) {
	for k := range dst {
		delete(dst, k)
	}
	for k, v := range src {
		dst[k] = v
	}
}

// BuildHook is a build hook defined by a script.
type BuildHook struct {
	proc *Process
}

var _ hooks.BuildHook = (*BuildHook)(nil)

func (h *BuildHook) Clean(ctx context.Context, versions []string) error {
	return h.proc.Call(ctx, "clean", map[string]interface{}{"versions": versions}, nil)
}

func (h *BuildHook) Initialize(ctx context.Context, version string, buildData hooks.BuildData) error {
	var out map[string]interface{}
	err := h.proc.Call(ctx, "initialize", map[string]interface{}{
		"version":    version,
		"build_data": buildData,
	}, &out)
	if err != nil {
		return err
	}
	replaceMap(buildData, out)
	return nil
}

func (h *BuildHook) Finalize(ctx context.Context, version string, buildData hooks.BuildData, artifactPath string) error {
	var out map[string]interface{}
	err := h.proc.Call(ctx, "finalize", map[string]interface{}{
		"version":       version,
		"build_data":    buildData,
		"artifact_path": artifactPath,
	}, &out)
	if err != nil {
		return err
	}
	replaceMap(buildData, out)
	return nil
}

func (h *BuildHook) Close() error {
	return h.proc.Close()
}

type buildHookClass struct{}

func (buildHookClass) PluginName() string { return Name }

func (buildHookClass) NewBuildHook(ctx context.Context, base hooks.BuildHookBase) (hooks.BuildHook, error) {
	path, err := ScriptPath(base.Root, base.Config)
	if err != nil {
		return nil, err
	}
	md, err := metadataArgs(ctx, base.Metadata)
	if err != nil {
		return nil, err
	}
	proc, err := Load(ctx, base.Settings, path, plugin.TypeBuildHook, map[string]interface{}{
		"root":         base.Root,
		"config":       base.Config.Map(),
		"build_config": base.BuildConfig.Map(),
		"metadata":     md,
		"directory":    base.Directory,
		"target_name":  base.TargetName,
	})
	if err != nil {
		return nil, err
	}
	return &BuildHook{proc: proc}, nil
}

// MetadataHook is a metadata hook defined by a script.
type MetadataHook struct {
	proc        *Process
	classifiers []string
}

var _ hooks.MetadataHook = (*MetadataHook)(nil)

func (h *MetadataHook) Update(ctx context.Context, metadata map[string]interface{}) error {
	var out struct {
		Metadata         map[string]interface{} `json:"metadata"`
		KnownClassifiers []string               `json:"known_classifiers"`
	}
	if err := h.proc.Call(ctx, "update", map[string]interface{}{"metadata": metadata}, &out); err != nil {
		return err
	}
	replaceMap(metadata, out.Metadata)
	h.classifiers = out.KnownClassifiers
	return nil
}

// KnownClassifiers returns the classifiers that the script reported after its last Update.
func (h *MetadataHook) KnownClassifiers() []string {
	return h.classifiers
}

func (h *MetadataHook) Close() error {
	return h.proc.Close()
}

type metadataHookClass struct{}

func (metadataHookClass) PluginName() string { return Name }

func (metadataHookClass) NewMetadataHook(ctx context.Context, base hooks.MetadataHookBase) (hooks.MetadataHook, error) {
	path, err := ScriptPath(base.Root, base.Config)
	if err != nil {
		return nil, err
	}
	proc, err := Load(ctx, base.Settings, path, plugin.TypeMetadataHook, map[string]interface{}{
		"root":   base.Root,
		"config": base.Config.Map(),
	})
	if err != nil {
		return nil, err
	}
	return &MetadataHook{proc: proc}, nil
}

func init() {
	plugin.Register(plugin.TypeBuildHook.Group(), buildHookClass{})
	plugin.Register(plugin.TypeMetadataHook.Group(), metadataHookClass{})
}
