// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep508

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/datawire/pybuild/pkg/python/pep440"
)

// Requirement is a parsed dependency specification, such as
//
//	requests[security,socks] >= 2.8.1, == 2.8.* ; python_version < "2.7"
//
// A Requirement has either a URL or a Specifier, never both.
type Requirement struct {
	Name      string
	Extras    []string // sorted, de-duplicated
	Specifier pep440.Specifier
	URL       string
	Marker    *Marker
}

var reLeadingName = regexp.MustCompile(`(?i)^[A-Z0-9](?:[A-Z0-9._-]*[A-Z0-9])?`)

// ParseRequirement parses a PEP 508 requirement string.
func ParseRequirement(str string) (*Requirement, error) {
	req, err := parseRequirement(str)
	if err != nil {
		return nil, fmt.Errorf("pep508.ParseRequirement: %q: %w", str, err)
	}
	return req, nil
}

// MustParseRequirement is like ParseRequirement, but panics on error.
func MustParseRequirement(str string) *Requirement {
	req, err := ParseRequirement(str)
	if err != nil {
		panic(err)
	}
	return req
}

func parseRequirement(str string) (*Requirement, error) {
	var ret Requirement
	rest := strings.TrimSpace(str)

	ret.Name = reLeadingName.FindString(rest)
	if ret.Name == "" {
		return nil, fmt.Errorf("expected package name at the start of dependency specifier")
	}
	rest = strings.TrimLeft(rest[len(ret.Name):], " \t")

	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("expected closing ']' after extras")
		}
		extras := map[string]struct{}{}
		for _, extra := range strings.Split(rest[1:end], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				continue
			}
			if !IsValidName(extra) {
				return nil, fmt.Errorf("invalid extra name: %q", extra)
			}
			extras[extra] = struct{}{}
		}
		for extra := range extras {
			ret.Extras = append(ret.Extras, extra)
		}
		sort.Strings(ret.Extras)
		rest = strings.TrimLeft(rest[end+1:], " \t")
	}

	var markerStr string
	if strings.HasPrefix(rest, "@") {
		rest = strings.TrimLeft(rest[1:], " \t")
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			end = len(rest)
		}
		ret.URL = rest[:end]
		if ret.URL == "" {
			return nil, fmt.Errorf("expected URL after '@'")
		}
		rest = strings.TrimLeft(rest[end:], " \t")
		if rest != "" {
			if !strings.HasPrefix(rest, ";") {
				return nil, fmt.Errorf("expected ';' or end of string after URL, got %q", rest)
			}
			markerStr = rest[1:]
		}
	} else {
		specStr := rest
		if semi := strings.IndexByte(rest, ';'); semi >= 0 {
			specStr, markerStr = rest[:semi], rest[semi+1:]
			if strings.TrimSpace(markerStr) == "" {
				return nil, fmt.Errorf("expected marker after ';'")
			}
		}
		specStr = strings.TrimSpace(specStr)
		if strings.HasPrefix(specStr, "(") {
			if !strings.HasSuffix(specStr, ")") {
				return nil, fmt.Errorf("expected closing ')' after version specifier")
			}
			specStr = specStr[1 : len(specStr)-1]
		}
		spec, err := pep440.ParseSpecifier(specStr)
		if err != nil {
			return nil, err
		}
		if len(spec) > 0 {
			ret.Specifier = spec
		}
	}

	if markerStr != "" {
		marker, err := parseMarker(markerStr)
		if err != nil {
			return nil, err
		}
		ret.Marker = marker
	}

	return &ret, nil
}

// NormalizedName returns the PEP 503 normalized distribution name.
func (req Requirement) NormalizedName() string {
	return NormalizeName(req.Name)
}

// String returns the canonical textual form of the requirement.
func (req Requirement) String() string {
	var ret strings.Builder
	ret.WriteString(req.Name)
	if len(req.Extras) > 0 {
		ret.WriteString("[" + strings.Join(req.Extras, ",") + "]")
	}
	if len(req.Specifier) > 0 {
		ret.WriteString(req.Specifier.String())
	}
	if req.URL != "" {
		ret.WriteString("@ " + req.URL)
		if req.Marker != nil {
			ret.WriteString(" ")
		}
	}
	if req.Marker != nil {
		ret.WriteString("; " + req.Marker.String())
	}
	return ret.String()
}
