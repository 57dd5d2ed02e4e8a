// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package hooks

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/plugin"
	"github.com/datawire/pybuild/pkg/version"
)

// DefaultVersionTemplate is what the "version" build hook writes when neither "template" nor
// "pattern" is configured.  "{version}" is replaced by the version, and "{version!r}" by the
// version as a quoted Python string.
const DefaultVersionTemplate = `# This file is auto-generated by pybuild. As such, do not:
#   - modify
#   - track in version control e.g. be sure to add to .gitignore
__version__ = VERSION = {version!r}
`

// VersionHook is the built-in "version" build hook: it writes the project version in to a
// file, and includes that file in the artifact even if it is VCS-ignored.
//
// Options:
//
//	path      (required) the file to write, relative to the project root
//	template  (optional) file contents, see DefaultVersionTemplate
//	pattern   (optional) true, or a regular expression; rewrite only the version in the
//	          existing file rather than writing a whole new file
type VersionHook struct {
	BuildHookBase
}

func (h *VersionHook) Clean(context.Context, []string) error {
	return nil
}

func (h *VersionHook) Initialize(ctx context.Context, _ string, buildData BuildData) error {
	relpath, err := h.Config.RequiredString("path")
	if err != nil {
		return err
	}
	template, hasTemplate, err := h.Config.String("template")
	if err != nil {
		return err
	}
	pattern, hasPattern, err := h.pattern()
	if err != nil {
		return err
	}
	if hasTemplate && hasPattern {
		return &config.Error{Path: h.Config.KeyPath("template"), Msg: "cannot be used together with `pattern`"}
	}
	if h.Metadata == nil {
		return fmt.Errorf("no project metadata")
	}
	ver, err := h.Metadata.Version(ctx)
	if err != nil {
		return err
	}

	if hasPattern {
		opts := map[string]interface{}{"path": relpath}
		if pattern != "" {
			opts["pattern"] = pattern
		}
		src := &version.RegexSource{Root: h.Root, Config: config.NewTable(h.Config.Path(), opts)}
		data, err := src.GetVersionData(ctx)
		if err != nil {
			return err
		}
		if err := src.SetVersion(ctx, ver, data); err != nil {
			return err
		}
	} else {
		if !hasTemplate {
			template = DefaultVersionTemplate
		}
		content := strings.NewReplacer(
			"{version!r}", pyRepr(ver),
			"{version}", ver,
		).Replace(template)
		filename := filepath.Join(h.Root, filepath.FromSlash(relpath))
		if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
			return err
		}
		if err := atomic.WriteFile(filename, strings.NewReader(content)); err != nil {
			return err
		}
	}

	buildData.AppendString("artifacts", "/"+path.Clean(filepath.ToSlash(relpath)))
	return nil
}

func (h *VersionHook) Finalize(context.Context, string, BuildData, string) error {
	return nil
}

// pattern returns the "pattern" option; "" with ok=true means the default pattern.
func (h *VersionHook) pattern() (pattern string, ok bool, err error) {
	raw, ok := h.Config.Raw("pattern")
	if !ok {
		return "", false, nil
	}
	switch val := raw.(type) {
	case bool:
		return "", val, nil
	case string:
		return val, val != "", nil
	default:
		return "", false, &config.TypeError{Path: h.Config.KeyPath("pattern"), Want: "a string or a boolean", Got: raw}
	}
}

// pyRepr quotes a string the way Python's repr() does for simple strings.
func pyRepr(str string) string {
	if strings.Contains(str, "'") && !strings.Contains(str, `"`) {
		return `"` + str + `"`
	}
	return "'" + strings.ReplaceAll(strings.ReplaceAll(str, `\`, `\\`), "'", `\'`) + "'"
}

type versionHookClass struct{}

func (versionHookClass) PluginName() string { return "version" }

func (versionHookClass) NewBuildHook(_ context.Context, base BuildHookBase) (BuildHook, error) {
	return &VersionHook{BuildHookBase: base}, nil
}

func init() {
	plugin.Register(plugin.TypeBuildHook.Group(), versionHookClass{})
}
