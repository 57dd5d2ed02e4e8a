// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"fmt"
	"strings"

	"github.com/datawire/pybuild/pkg/python/pep508"
	"github.com/datawire/pybuild/pkg/python/pypa/core_metadata"
	"github.com/datawire/pybuild/pkg/python/pypa/entry_points"
)

func (p Person) String() string {
	switch {
	case p.Email == "":
		return p.Name
	case p.Name == "":
		return p.Email
	default:
		return fmt.Sprintf("%s <%s>", p.Name, p.Email)
	}
}

// splitPeople splits a list of people in to the "Author"-style and "Author-email"-style
// header values.
func splitPeople(people []Person) (names, emails string) {
	var nameList, emailList []string
	for _, person := range people {
		if person.Email == "" {
			nameList = append(nameList, person.Name)
		} else {
			emailList = append(emailList, person.String())
		}
	}
	return strings.Join(nameList, ", "), strings.Join(emailList, ", ")
}

// extraRequirement renders a requirement of an optional dependency group.
func extraRequirement(req *pep508.Requirement, extra string) string {
	cond := fmt.Sprintf("extra == %q", extra)
	switch {
	case req.Marker != nil:
		bare := *req
		bare.Marker = nil
		return fmt.Sprintf("%s; (%s) and %s", bare.String(), req.Marker.String(), cond)
	case req.URL != "":
		return req.String() + " ; " + cond
	default:
		return req.String() + "; " + cond
	}
}

// CoreMetadata returns the METADATA (or PKG-INFO) file for the project.
func (c *Core) CoreMetadata() *core_metadata.Metadata {
	md := &core_metadata.Metadata{}
	md.Add("Metadata-Version", core_metadata.Version)
	md.Add("Name", c.RawName)
	md.Add("Version", c.Version)
	if c.Description != "" {
		md.Add("Summary", c.Description)
	}
	for _, u := range c.URLs {
		md.Add("Project-URL", u.Label+", "+u.URL)
	}
	if names, emails := splitPeople(c.Authors); names != "" || emails != "" {
		if names != "" {
			md.Add("Author", names)
		}
		if emails != "" {
			md.Add("Author-email", emails)
		}
	}
	if names, emails := splitPeople(c.Maintainers); names != "" || emails != "" {
		if names != "" {
			md.Add("Maintainer", names)
		}
		if emails != "" {
			md.Add("Maintainer-email", emails)
		}
	}
	if c.License != "" {
		md.Add("License", strings.TrimRight(c.License, "\n"))
	}
	if c.LicenseExpression != "" {
		md.Add("License-Expression", c.LicenseExpression)
	}
	md.AddAll("License-File", c.LicenseFiles)
	if len(c.Keywords) > 0 {
		md.Add("Keywords", strings.Join(c.Keywords, ","))
	}
	md.AddAll("Classifier", c.Classifiers)
	if c.RequiresPython != "" {
		md.Add("Requires-Python", c.RequiresPython)
	}
	for _, req := range c.Dependencies {
		md.Add("Requires-Dist", req.String())
	}
	for _, extra := range c.Extras {
		md.Add("Provides-Extra", extra)
		for _, req := range c.OptionalDependencies[extra] {
			md.Add("Requires-Dist", extraRequirement(req, extra))
		}
	}
	if c.Readme.Text != "" {
		md.Add("Description-Content-Type", c.Readme.ContentType)
		md.Body = c.Readme.Text
	}
	return md
}

// EntryPointsTxt returns the contents of the entry_points.txt file, or nil if the project
// has no entry points.
func (c *Core) EntryPointsTxt() []byte {
	groups := c.AllEntryPoints()
	if len(groups) == 0 {
		return nil
	}
	return entry_points.Format(groups)
}

func requirementStrings(reqs []*pep508.Requirement) []string {
	ret := make([]string, 0, len(reqs))
	for _, req := range reqs {
		ret = append(ret, req.String())
	}
	return ret
}

func peopleMaps(people []Person) []map[string]string {
	ret := make([]map[string]string, 0, len(people))
	for _, person := range people {
		entry := make(map[string]string, 2)
		if person.Name != "" {
			entry["name"] = person.Name
		}
		if person.Email != "" {
			entry["email"] = person.Email
		}
		ret = append(ret, entry)
	}
	return ret
}

// Map returns the metadata in the shape of a [project] table, with every dynamic field
// filled in; empty fields are omitted.
func (c *Core) Map() map[string]interface{} {
	ret := map[string]interface{}{
		"name":    c.Name,
		"version": c.Version,
	}
	if c.Description != "" {
		ret["description"] = c.Description
	}
	if c.Readme.Text != "" {
		ret["readme"] = map[string]interface{}{
			"content-type": c.Readme.ContentType,
			"text":         c.Readme.Text,
		}
	}
	if c.RequiresPython != "" {
		ret["requires-python"] = c.RequiresPython
	}
	switch {
	case c.LicenseExpression != "":
		ret["license"] = c.LicenseExpression
	case c.License != "":
		ret["license"] = map[string]interface{}{"text": c.License}
	}
	if len(c.LicenseFiles) > 0 {
		ret["license-files"] = c.LicenseFiles
	}
	if len(c.Authors) > 0 {
		ret["authors"] = peopleMaps(c.Authors)
	}
	if len(c.Maintainers) > 0 {
		ret["maintainers"] = peopleMaps(c.Maintainers)
	}
	if len(c.Keywords) > 0 {
		ret["keywords"] = c.Keywords
	}
	if len(c.Classifiers) > 0 {
		ret["classifiers"] = c.Classifiers
	}
	if len(c.URLs) > 0 {
		urls := make(map[string]string, len(c.URLs))
		for _, u := range c.URLs {
			urls[u.Label] = u.URL
		}
		ret["urls"] = urls
	}
	if len(c.Dependencies) > 0 {
		ret["dependencies"] = requirementStrings(c.Dependencies)
	}
	if len(c.Extras) > 0 {
		optional := make(map[string][]string, len(c.Extras))
		for _, extra := range c.Extras {
			optional[extra] = requirementStrings(c.OptionalDependencies[extra])
		}
		ret["optional-dependencies"] = optional
	}
	if len(c.Scripts) > 0 {
		ret["scripts"] = c.Scripts
	}
	if len(c.GUIScripts) > 0 {
		ret["gui-scripts"] = c.GUIScripts
	}
	if len(c.EntryPoints) > 0 {
		ret["entry-points"] = c.EntryPoints
	}
	if len(c.Dynamic) > 0 {
		ret["dynamic"] = c.Dynamic
	}
	return ret
}
