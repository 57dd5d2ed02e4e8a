// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/datawire/dlib/dlog"

	"github.com/datawire/pybuild/pkg/hooks"
	"github.com/datawire/pybuild/pkg/metadata"
	"github.com/datawire/pybuild/pkg/python/pep425"
	"github.com/datawire/pybuild/pkg/python/pep440"
	"github.com/datawire/pybuild/pkg/python/pyinspect"
	"github.com/datawire/pybuild/pkg/python/pypa/bdist"
	"github.com/datawire/pybuild/pkg/python/pypa/core_metadata"
)

// Generator is written to the Generator field of each wheel's WHEEL file.
var Generator = "pybuild"

// EditablesRequirement is what an exact editable install needs at runtime.
const EditablesRequirement = "editables~=0.3"

type wheelTarget struct {
	TargetBase
}

func newWheel(_ context.Context, base TargetBase) (Target, error) {
	return &wheelTarget{TargetBase: base}, nil
}

func (t *wheelTarget) Versions(context.Context) (all, defaults []string, err error) {
	return []string{"standard", "editable"}, []string{"standard"}, nil
}

func (t *wheelTarget) DefaultBuildData(hookNames []string) hooks.BuildData {
	return hooks.NewWheelBuildData(hookNames)
}

func (t *wheelTarget) Clean(ctx context.Context, directory string, _ []string) error {
	return removeArtifacts(ctx, directory, ".whl")
}

func (t *wheelTarget) Requires(_ context.Context, version string) ([]string, error) {
	if version == "editable" && t.Config.DevModeExact {
		return []string{EditablesRequirement}, nil
	}
	return nil, nil
}

func (t *wheelTarget) Build(ctx context.Context, version, directory string, buildData hooks.BuildData) (string, error) {
	switch version {
	case "standard":
		return t.buildStandard(ctx, directory, buildData)
	case "editable":
		return t.buildEditable(ctx, directory, buildData)
	default:
		return "", unknownVersion(t.Config.Name, version)
	}
}

// detectPackages picks what to ship when nothing is configured: a package or module named
// after the project, at the top level or under src/.
func (t *wheelTarget) detectPackages(core *metadata.Core) error {
	cfg := t.Config
	if len(cfg.Include) > 0 || len(cfg.Packages) > 0 || len(cfg.OnlyInclude) > 0 {
		return nil
	}
	name := bdist.EscapeName(core.Name)
	exists := func(rel string) bool {
		_, err := os.Stat(filepath.Join(t.Root, filepath.FromSlash(rel)))
		return err == nil
	}
	switch {
	case exists(name + "/__init__.py"):
		cfg.addPackage(name)
	case exists("src/" + name + "/__init__.py"):
		cfg.addPackage("src/" + name)
	case exists(name + ".py"):
		cfg.OnlyInclude = []string{name + ".py"}
	case exists("src/" + name + ".py"):
		cfg.OnlyInclude = []string{"src/" + name + ".py"}
		cfg.Sources["src/"] = ""
	default:
		return fmt.Errorf("unable to determine which files to ship inside the wheel using the following heuristics: "+
			"a package %[1]q or \"src/%[1]s\" with an __init__.py, or a module %[1]q or \"src/%[1]s\" ending in .py.  "+
			"The most likely cause of this is that there is no directory that matches the name of your project (%[1]s).  "+
			"Configure the files to include with the packages, include, or only-include options",
			name)
	}
	return nil
}

// tag picks the compatibility tag: an explicit tag from build data, then the interpreter's
// best tag if infer_tag is set, then py3-none-any.
func (t *wheelTarget) tag(ctx context.Context, buildData hooks.BuildData) (pep425.Tag, error) {
	if str := buildData.String("tag"); str != "" {
		return pep425.ParseTag(str)
	}
	if !buildData.Bool("infer_tag") {
		return pep425.PurePython, nil
	}
	python, err := t.Settings.Python()
	if err != nil {
		return pep425.Tag{}, err
	}
	info, err := pyinspect.Dynamic(ctx, python...)
	if err != nil {
		return pep425.Tag{}, fmt.Errorf("infer_tag: %w", err)
	}
	best, ok := info.Tags.Best()
	if !ok {
		return pep425.Tag{}, fmt.Errorf("infer_tag: %q did not report any supported tags; "+
			"the 'packaging' library must be installed for it", strings.Join(python, " "))
	}
	return best, nil
}

// MetadataFile renders METADATA, with extra Requires-Dist entries placed alongside the
// project's own.
func MetadataFile(core *metadata.Core, extraDeps []string) []byte {
	md := core.CoreMetadata()
	if len(extraDeps) == 0 {
		return md.Bytes()
	}
	idx := len(md.Fields)
	for i, field := range md.Fields {
		if field.Key == "Provides-Extra" || field.Key == "Description-Content-Type" {
			idx = i
			break
		}
	}
	fields := make([]core_metadata.Field, 0, len(md.Fields)+len(extraDeps))
	fields = append(fields, md.Fields[:idx]...)
	for _, dep := range extraDeps {
		fields = append(fields, core_metadata.Field{Key: "Requires-Dist", Value: dep})
	}
	md.Fields = append(fields, md.Fields[idx:]...)
	return md.Bytes()
}

type wheelPlan struct {
	core     *metadata.Core
	version  *pep440.Version
	tag      pep425.Tag
	filename string
	writer   *bdist.Writer
}

func (t *wheelTarget) plan(ctx context.Context, tag pep425.Tag) (*wheelPlan, error) {
	core, err := t.Project.Core(ctx)
	if err != nil {
		return nil, err
	}
	ver, err := t.version(ctx)
	if err != nil {
		return nil, err
	}
	filename, err := bdist.GenerateFilename(bdist.FileNameData{
		Distribution:     core.Name,
		Version:          *ver,
		CompatibilityTag: tag,
	})
	if err != nil {
		return nil, err
	}
	return &wheelPlan{
		core:     core,
		version:  ver,
		tag:      tag,
		filename: filename,
	}, nil
}

// addForced writes force-included files (shared data, extra metadata) under prefix.
func (t *wheelTarget) addForced(w *bdist.Writer, prefix string, entries []ForceInclude) error {
	files, err := newFileSelector(t.Root, t.Config, nil).forced(entries)
	if err != nil {
		return err
	}
	for _, file := range files {
		ref, err := file.Reference(prefix)
		if err != nil {
			return err
		}
		if err := w.Add(ref); err != nil {
			return err
		}
	}
	return nil
}

// writeDistInfo writes everything in .dist-info except the RECORD.
func (t *wheelTarget) writeDistInfo(p *wheelPlan, buildData hooks.BuildData, extraDeps []string) error {
	w := p.writer
	wheelFile := bdist.WheelFile{
		Generator:     Generator,
		RootIsPurelib: buildData.Bool("pure_python"),
		Tags:          []pep425.Tag{p.tag},
	}
	if err := w.AddDistInfo("WHEEL", wheelFile.Bytes()); err != nil {
		return err
	}
	if err := w.AddDistInfo("METADATA", MetadataFile(p.core, extraDeps)); err != nil {
		return err
	}
	if entryPoints := p.core.EntryPointsTxt(); entryPoints != nil {
		if err := w.AddDistInfo("entry_points.txt", entryPoints); err != nil {
			return err
		}
	}
	licenses := make([]ForceInclude, 0, len(p.core.LicenseFiles))
	for _, rel := range p.core.LicenseFiles {
		licenses = append(licenses, ForceInclude{Source: rel, Dest: rel})
	}
	if err := t.addForced(w, path.Join(w.DistInfoDir(), "licenses"), licenses); err != nil {
		return err
	}
	extraMetadata := append(append([]ForceInclude(nil), t.Config.ExtraMetadata...),
		mapForceInclude(buildData.StringMap("extra_metadata"))...)
	return t.addForced(w, path.Join(w.DistInfoDir(), "extra_metadata"), extraMetadata)
}

func (t *wheelTarget) buildStandard(ctx context.Context, directory string, buildData hooks.BuildData) (string, error) {
	tag, err := t.tag(ctx, buildData)
	if err != nil {
		return "", fmt.Errorf("wheel: %w", err)
	}
	p, err := t.plan(ctx, tag)
	if err != nil {
		return "", err
	}
	if err := t.detectPackages(p.core); err != nil {
		return "", err
	}
	files, err := t.selectFiles(buildData)
	if err != nil {
		return "", fmt.Errorf("wheel: %w", err)
	}
	distInfo := bdist.DistInfoDir(p.core.Name, *p.version)
	dataDir := strings.TrimSuffix(distInfo, ".dist-info") + ".data"

	return writeArtifact(ctx, directory, p.filename, func(dst io.Writer) error {
		p.writer = bdist.NewWriter(dst, distInfo, t.modTime())
		for _, file := range files {
			ref, err := file.Reference("")
			if err != nil {
				return err
			}
			if err := p.writer.Add(ref); err != nil {
				return err
			}
		}
		sharedData := append(append([]ForceInclude(nil), t.Config.SharedData...),
			mapForceInclude(buildData.StringMap("shared_data"))...)
		if err := t.addForced(p.writer, path.Join(dataDir, "data"), sharedData); err != nil {
			return err
		}
		if err := t.writeDistInfo(p, buildData, buildData.StringSlice("dependencies")); err != nil {
			return err
		}
		return p.writer.Close()
	})
}

// devModeDirs returns the absolute directories to put on sys.path for an editable install:
// dev-mode-dirs if configured, or else the directories that the selected files are shipped
// relative to.
func (t *wheelTarget) devModeDirs(files []SelectedFile) []string {
	set := make(map[string]struct{})
	if len(t.Config.DevModeDirs) > 0 {
		for _, dir := range t.Config.DevModeDirs {
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(t.Root, filepath.FromSlash(dir))
			}
			set[filepath.Clean(dir)] = struct{}{}
		}
	} else {
		for _, file := range files {
			src := filepath.ToSlash(file.Source)
			if !strings.HasSuffix(src, "/"+file.Dest) {
				continue
			}
			set[filepath.FromSlash(strings.TrimSuffix(src, "/"+file.Dest))] = struct{}{}
		}
		if len(set) == 0 {
			set[t.Root] = struct{}{}
		}
	}
	ret := make([]string, 0, len(set))
	for dir := range set {
		ret = append(ret, dir)
	}
	sort.Strings(ret)
	return ret
}

// topLevelModules maps each top-level module in files to the file that defines it: a
// package's __init__.py, or a plain module's .py file.
func topLevelModules(files []SelectedFile) map[string]string {
	ret := make(map[string]string)
	for _, file := range files {
		parts := strings.Split(file.Dest, "/")
		switch {
		case len(parts) == 1 && strings.HasSuffix(parts[0], ".py"):
			ret[strings.TrimSuffix(parts[0], ".py")] = file.Source
		case len(parts) == 2 && parts[1] == "__init__.py":
			ret[parts[0]] = file.Source
		}
	}
	return ret
}

var editableShim = template.Must(template.New("shim").Parse(`from editables.redirector import RedirectingFinder as F
F.install()
{{- range .}}
F.map_module({{.Name | printf "%q"}}, {{.Path | printf "%q"}})
{{- end}}
`))

func (t *wheelTarget) buildEditable(ctx context.Context, directory string, buildData hooks.BuildData) (string, error) {
	p, err := t.plan(ctx, pep425.PurePython)
	if err != nil {
		return "", err
	}
	if err := t.detectPackages(p.core); err != nil {
		return "", err
	}
	selected, err := newFileSelector(t.Root, t.Config, buildData.StringSlice("artifacts")).Select()
	if err != nil {
		return "", fmt.Errorf("wheel: %w", err)
	}
	name := bdist.EscapeName(p.core.Name)
	distInfo := bdist.DistInfoDir(p.core.Name, *p.version)

	var pth bytes.Buffer
	extraDeps := append([]string(nil), buildData.StringSlice("dependencies")...)
	var shim []byte
	if t.Config.DevModeExact {
		modules := topLevelModules(selected)
		names := make([]string, 0, len(modules))
		for module := range modules {
			names = append(names, module)
		}
		sort.Strings(names)
		type mapping struct{ Name, Path string }
		mappings := make([]mapping, 0, len(names))
		for _, module := range names {
			mappings = append(mappings, mapping{Name: module, Path: modules[module]})
		}
		var buf bytes.Buffer
		if err := editableShim.Execute(&buf, mappings); err != nil {
			return "", err
		}
		shim = buf.Bytes()
		fmt.Fprintf(&pth, "import _editable_impl_%s\n", name)
		extraDeps = append(extraDeps, EditablesRequirement)
	} else {
		for _, dir := range t.devModeDirs(selected) {
			fmt.Fprintln(&pth, dir)
		}
	}
	dlog.Debugf(ctx, "editable .pth for %s:\n%s", name, pth.String())

	return writeArtifact(ctx, directory, p.filename, func(dst io.Writer) error {
		p.writer = bdist.NewWriter(dst, distInfo, t.modTime())
		if err := p.writer.AddBytes("_"+name+".pth", 0o644, pth.Bytes()); err != nil {
			return err
		}
		if shim != nil {
			if err := p.writer.AddBytes("_editable_impl_"+name+".py", 0o644, shim); err != nil {
				return err
			}
		}
		if err := t.addForced(p.writer, "", mapForceInclude(buildData.StringMap("force_include_editable"))); err != nil {
			return err
		}
		if err := t.writeDistInfo(p, buildData, extraDeps); err != nil {
			return err
		}
		return p.writer.Close()
	})
}
