// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/datawire/dlib/derror"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/python/pep440"
	"github.com/datawire/pybuild/pkg/python/pep508"
	"github.com/datawire/pybuild/pkg/python/pypa/entry_points"
	"github.com/datawire/pybuild/pkg/python/spdx"
)

// Person is an entry of project.authors or project.maintainers.
type Person struct {
	Name  string
	Email string
}

// URL is an entry of project.urls.
type URL struct {
	Label string
	URL   string
}

// Readme is the long description.
type Readme struct {
	Text        string
	ContentType string
	Path        string // slash-separated and relative to the project root; empty for inline text
}

// Core is fully resolved and validated project metadata.
type Core struct {
	RawName        string
	Name           string // normalized
	Version        string // normalized
	Description    string
	Readme         Readme
	RequiresPython string

	License           string // free-form license text
	LicenseExpression string // normalized SPDX expression
	LicenseFiles      []string

	Authors     []Person
	Maintainers []Person
	Keywords    []string
	Classifiers []string
	URLs        []URL

	Dependencies         []*pep508.Requirement
	OptionalDependencies map[string][]*pep508.Requirement
	Extras               []string // the keys of OptionalDependencies, in order

	Scripts     map[string]string
	GUIScripts  map[string]string
	EntryPoints entry_points.Groups

	Dynamic []string
}

// DefaultLicenseFiles are the globs used when project.license-files is not set.
var DefaultLicenseFiles = []string{"LICEN[CS]E*", "COPYING*", "NOTICE*", "AUTHORS*"}

var reValidName = regexp.MustCompile(`(?i)^([A-Z0-9]|[A-Z0-9][A-Z0-9._-]*[A-Z0-9])$`)

var readmeContentTypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".rst":      "text/x-rst",
	".txt":      "text/plain",
}

type coreOptions struct {
	root             string
	version          string
	allowDirectRefs  bool
	noVerify         bool
	extraClassifiers []string
}

// parseCore validates the [project] table.  The version has already been resolved.
func parseCore(table config.Table, opts coreOptions) (*Core, error) {
	c := &Core{Version: opts.version}
	for _, step := range []func(config.Table, coreOptions) error{
		c.parseName,
		c.parseDynamic,
		c.parseDescription,
		c.parseReadme,
		c.parseRequiresPython,
		c.parseLicense,
		c.parseLicenseFiles,
		c.parsePeople,
		c.parseKeywords,
		c.parseClassifiers,
		c.parseURLs,
		c.parseDependencies,
		c.parseOptionalDependencies,
		c.parseEntryPoints,
	} {
		if err := step(table, opts); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Core) parseName(table config.Table, _ coreOptions) error {
	name, err := table.RequiredString("name")
	if err != nil {
		return err
	}
	if !reValidName.MatchString(name) {
		return &config.Error{
			Path: table.KeyPath("name"),
			Msg: "must only contain ASCII letters/digits, underscores, hyphens, and periods, " +
				"and must begin and end with ASCII letters/digits",
		}
	}
	c.RawName = name
	c.Name = pep508.NormalizeName(name)
	return nil
}

func (c *Core) parseDynamic(table config.Table, _ coreOptions) error {
	dynamic, err := table.StringSlice("dynamic")
	if err != nil {
		return err
	}
	for _, field := range dynamic {
		switch {
		case field == "name":
			return &config.Error{Path: table.KeyPath("dynamic"), Msg: "must not contain `name`, which must be static"}
		case table.Has(field):
			return &config.Error{
				Path: table.KeyPath(field),
				Msg:  "cannot be both statically defined and listed in field `" + table.KeyPath("dynamic") + "`",
			}
		}
	}
	c.Dynamic = dynamic
	return nil
}

func (c *Core) parseDescription(table config.Table, _ coreOptions) error {
	desc, err := table.StringDefault("description", "")
	if err != nil {
		return err
	}
	if strings.ContainsAny(desc, "\r\n") {
		return &config.Error{Path: table.KeyPath("description"), Msg: "must be a single line"}
	}
	c.Description = desc
	return nil
}

func readProjectFile(root, relpath string) (string, error) {
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relpath)))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (c *Core) parseReadme(table config.Table, opts coreOptions) error {
	raw, ok := table.Raw("readme")
	if !ok {
		return nil
	}
	switch readme := raw.(type) {
	case string:
		contentType, ok := readmeContentTypes[strings.ToLower(path.Ext(readme))]
		if !ok {
			return &config.Error{
				Path: table.KeyPath("readme"),
				Msg:  fmt.Sprintf("unable to determine the content-type based on the extension of readme file: %s", readme),
			}
		}
		text, err := readProjectFile(opts.root, readme)
		if err != nil {
			return fmt.Errorf("readme file does not exist: %s: %w", readme, err)
		}
		c.Readme = Readme{Text: text, ContentType: contentType, Path: readme}
	case map[string]interface{}:
		sub, err := table.Table("readme")
		if err != nil {
			return err
		}
		contentType, err := sub.RequiredString("content-type")
		if err != nil {
			return err
		}
		switch contentType {
		case "text/markdown", "text/x-rst", "text/plain":
		default:
			return &config.Error{Path: sub.KeyPath("content-type"), Msg: "must be one of: text/markdown, text/x-rst, text/plain"}
		}
		if _, err := sub.StringDefault("charset", "utf-8"); err != nil {
			return err
		}
		file, hasFile, err := sub.String("file")
		if err != nil {
			return err
		}
		text, hasText, err := sub.String("text")
		if err != nil {
			return err
		}
		switch {
		case hasFile && hasText:
			return &config.Error{Path: sub.Path(), Msg: "must contain only one of `file` or `text`"}
		case hasFile:
			text, err = readProjectFile(opts.root, file)
			if err != nil {
				return fmt.Errorf("readme file does not exist: %s: %w", file, err)
			}
		case !hasText:
			return &config.Error{Path: sub.Path(), Msg: "must contain either `file` or `text`"}
		}
		c.Readme = Readme{Text: text, ContentType: contentType, Path: file}
	default:
		return &config.TypeError{Path: table.KeyPath("readme"), Want: "a string or a table", Got: raw}
	}
	return nil
}

func (c *Core) parseRequiresPython(table config.Table, _ coreOptions) error {
	str, ok, err := table.String("requires-python")
	if err != nil || !ok {
		return err
	}
	spec, err := pep440.ParseSpecifier(str)
	if err != nil {
		return &config.Error{Path: table.KeyPath("requires-python"), Msg: fmt.Sprintf("is invalid: %v", err)}
	}
	c.RequiresPython = spec.String()
	return nil
}

func (c *Core) parseLicense(table config.Table, opts coreOptions) error {
	raw, ok := table.Raw("license")
	if !ok {
		return nil
	}
	switch license := raw.(type) {
	case string:
		expr, err := spdx.Normalize(license)
		if err != nil {
			return fmt.Errorf("field `%s`: %w", table.KeyPath("license"), err)
		}
		c.LicenseExpression = expr
	case map[string]interface{}:
		sub, err := table.Table("license")
		if err != nil {
			return err
		}
		file, hasFile, err := sub.String("file")
		if err != nil {
			return err
		}
		text, hasText, err := sub.String("text")
		if err != nil {
			return err
		}
		switch {
		case hasFile && hasText:
			return &config.Error{Path: sub.Path(), Msg: "must contain only one of `file` or `text`"}
		case hasFile:
			text, err = readProjectFile(opts.root, file)
			if err != nil {
				return fmt.Errorf("license file does not exist: %s: %w", file, err)
			}
		case !hasText:
			return &config.Error{Path: sub.Path(), Msg: "must contain either `file` or `text`"}
		}
		c.License = text
	default:
		return &config.TypeError{Path: table.KeyPath("license"), Want: "a string or a table", Got: raw}
	}
	return nil
}

func globFiles(root, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
	if err != nil {
		return nil, err
	}
	var ret []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		rel, err := filepath.Rel(root, match)
		if err != nil {
			return nil, err
		}
		ret = append(ret, filepath.ToSlash(rel))
	}
	return ret, nil
}

func (c *Core) parseLicenseFiles(table config.Table, opts coreOptions) error {
	var (
		globs []string
		paths []string
	)
	raw, ok := table.Raw("license-files")
	switch val := raw.(type) {
	case nil:
		if ok {
			return &config.TypeError{Path: table.KeyPath("license-files"), Want: "an array or a table", Got: raw}
		}
		globs = DefaultLicenseFiles
	case []interface{}:
		var err error
		if globs, err = table.StringSlice("license-files"); err != nil {
			return err
		}
	case map[string]interface{}:
		sub, err := table.Table("license-files")
		if err != nil {
			return err
		}
		if sub.Has("paths") && sub.Has("globs") {
			return &config.Error{Path: sub.Path(), Msg: "must contain only one of `paths` or `globs`"}
		}
		if paths, err = sub.StringSlice("paths"); err != nil {
			return err
		}
		if globs, err = sub.StringSlice("globs"); err != nil {
			return err
		}
	default:
		return &config.TypeError{Path: table.KeyPath("license-files"), Want: "an array or a table", Got: val}
	}

	seen := make(map[string]bool)
	for _, p := range paths {
		p = path.Clean(p)
		if _, err := os.Stat(filepath.Join(opts.root, filepath.FromSlash(p))); err != nil {
			return fmt.Errorf("license file does not exist: %s: %w", p, err)
		}
		seen[p] = true
	}
	for _, g := range globs {
		matches, err := globFiles(opts.root, g)
		if err != nil {
			return &config.Error{Path: table.KeyPath("license-files"), Msg: fmt.Sprintf("invalid glob %q: %v", g, err)}
		}
		for _, m := range matches {
			seen[m] = true
		}
	}
	for p := range seen {
		c.LicenseFiles = append(c.LicenseFiles, p)
	}
	sort.Strings(c.LicenseFiles)
	return nil
}

func parsePeople(table config.Table, key string) ([]Person, error) {
	list, err := table.Array(key)
	if err != nil {
		return nil, err
	}
	var ret []Person
	for i, item := range list {
		itemPath := fmt.Sprintf("%s[%d]", table.KeyPath(key), i)
		data, ok := item.(map[string]interface{})
		if !ok {
			return nil, &config.TypeError{Path: itemPath, Want: "a table", Got: item}
		}
		entry := config.NewTable(itemPath, data)
		for _, k := range entry.Keys() {
			if k != "name" && k != "email" {
				return nil, &config.Error{Path: itemPath, Msg: "must only contain the `name` and/or `email` keys"}
			}
		}
		var person Person
		if person.Name, err = entry.StringDefault("name", ""); err != nil {
			return nil, err
		}
		if person.Email, err = entry.StringDefault("email", ""); err != nil {
			return nil, err
		}
		if person.Name == "" && person.Email == "" {
			return nil, &config.Error{Path: itemPath, Msg: "must have at least one of `name` or `email`"}
		}
		ret = append(ret, person)
	}
	return ret, nil
}

func (c *Core) parsePeople(table config.Table, _ coreOptions) error {
	var err error
	if c.Authors, err = parsePeople(table, "authors"); err != nil {
		return err
	}
	if c.Maintainers, err = parsePeople(table, "maintainers"); err != nil {
		return err
	}
	return nil
}

func uniqueSorted(in []string) []string {
	set := make(map[string]bool, len(in))
	var ret []string
	for _, s := range in {
		if !set[s] {
			set[s] = true
			ret = append(ret, s)
		}
	}
	sort.Strings(ret)
	return ret
}

func (c *Core) parseKeywords(table config.Table, _ coreOptions) error {
	keywords, err := table.StringSlice("keywords")
	if err != nil {
		return err
	}
	c.Keywords = uniqueSorted(keywords)
	return nil
}

func (c *Core) parseClassifiers(table config.Table, opts coreOptions) error {
	classifiers, err := table.StringSlice("classifiers")
	if err != nil {
		return err
	}
	classifiers = uniqueSorted(classifiers)
	if !opts.noVerify {
		extra := make(map[string]bool, len(opts.extraClassifiers))
		for _, cl := range opts.extraClassifiers {
			extra[cl] = true
		}
		var unknown []string
		for _, cl := range classifiers {
			if !knownClassifier(cl, extra) {
				unknown = append(unknown, cl)
			}
		}
		if len(unknown) > 0 {
			return &config.Error{
				Path: table.KeyPath("classifiers"),
				Msg:  "contains unknown classifiers: " + strings.Join(unknown, ", "),
			}
		}
	}
	// Private classifiers go last.
	sort.SliceStable(classifiers, func(i, j int) bool {
		return !IsPrivateClassifier(classifiers[i]) && IsPrivateClassifier(classifiers[j])
	})
	c.Classifiers = classifiers
	return nil
}

func (c *Core) parseURLs(table config.Table, _ coreOptions) error {
	urls, err := table.Table("urls")
	if err != nil {
		return err
	}
	for _, label := range urls.Keys() {
		u, _, err := urls.String(label)
		if err != nil {
			return err
		}
		c.URLs = append(c.URLs, URL{Label: label, URL: u})
	}
	return nil
}

func parseRequirements(table config.Table, key, what string, allowDirectRefs bool) ([]*pep508.Requirement, error) {
	strs, err := table.StringSlice(key)
	if err != nil {
		return nil, err
	}
	var (
		ret  []*pep508.Requirement
		errs derror.MultiError
		seen = make(map[string]bool)
	)
	for i, str := range strs {
		req, err := pep508.ParseRequirement(str)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s #%d of field `%s` is invalid: %w", what, i+1, table.KeyPath(key), err))
			continue
		}
		if req.URL != "" && !allowDirectRefs {
			errs = append(errs, fmt.Errorf("%s #%d of field `%s` cannot be a direct reference unless "+
				"field `tool.hatch.metadata.allow-direct-references` is set to `true`",
				what, i+1, table.KeyPath(key)))
			continue
		}
		if canonical := req.String(); !seen[canonical] {
			seen[canonical] = true
			ret = append(ret, req)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return ret, nil
}

func (c *Core) parseDependencies(table config.Table, opts coreOptions) error {
	deps, err := parseRequirements(table, "dependencies", "Dependency", opts.allowDirectRefs)
	if err != nil {
		return err
	}
	c.Dependencies = deps
	return nil
}

func (c *Core) parseOptionalDependencies(table config.Table, opts coreOptions) error {
	optional, err := table.Table("optional-dependencies")
	if err != nil {
		return err
	}
	c.OptionalDependencies = make(map[string][]*pep508.Requirement)
	var errs derror.MultiError
	for _, option := range optional.Keys() {
		if !pep508.IsValidName(option) {
			errs = append(errs, &config.Error{
				Path: optional.KeyPath(option),
				Msg:  "is not a valid extra name; it must begin and end with ASCII letters/digits",
			})
			continue
		}
		extra := pep508.NormalizeName(option)
		if _, dup := c.OptionalDependencies[extra]; dup {
			errs = append(errs, &config.Error{
				Path: optional.KeyPath(option),
				Msg:  fmt.Sprintf("duplicates optional dependency group %q after normalization", extra),
			})
			continue
		}
		deps, err := parseRequirements(optional, option, "Dependency", opts.allowDirectRefs)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.OptionalDependencies[extra] = deps
		c.Extras = append(c.Extras, extra)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func stringMap(table config.Table, key string) (map[string]string, error) {
	sub, err := table.Table(key)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]string, sub.Len())
	for _, name := range sub.Keys() {
		val, _, err := sub.String(name)
		if err != nil {
			return nil, err
		}
		if _, err := entry_points.ParseEntryPoint(val); err != nil {
			return nil, &config.Error{Path: sub.KeyPath(name), Msg: err.Error()}
		}
		ret[name] = val
	}
	return ret, nil
}

func (c *Core) parseEntryPoints(table config.Table, _ coreOptions) error {
	var err error
	if c.Scripts, err = stringMap(table, "scripts"); err != nil {
		return err
	}
	if c.GUIScripts, err = stringMap(table, "gui-scripts"); err != nil {
		return err
	}
	eps, err := table.Table("entry-points")
	if err != nil {
		return err
	}
	c.EntryPoints = make(entry_points.Groups)
	for _, group := range eps.Keys() {
		switch group {
		case entry_points.ConsoleScripts:
			return &config.Error{Path: eps.KeyPath(group), Msg: "must be defined as `project.scripts` instead"}
		case entry_points.GUIScripts:
			return &config.Error{Path: eps.KeyPath(group), Msg: "must be defined as `project.gui-scripts` instead"}
		}
		if c.EntryPoints[group], err = stringMap(eps, group); err != nil {
			return err
		}
	}
	return nil
}

// AllEntryPoints returns scripts, gui-scripts and entry-points combined in to the groups of
// an entry_points.txt file.
func (c *Core) AllEntryPoints() entry_points.Groups {
	ret := make(entry_points.Groups, len(c.EntryPoints)+2)
	if len(c.Scripts) > 0 {
		ret[entry_points.ConsoleScripts] = c.Scripts
	}
	if len(c.GUIScripts) > 0 {
		ret[entry_points.GUIScripts] = c.GUIScripts
	}
	for group, entries := range c.EntryPoints {
		if len(entries) > 0 {
			ret[group] = entries
		}
	}
	return ret
}
