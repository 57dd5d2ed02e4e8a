// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package pep425 implements PEP 425 -- Compatibility Tags for Built Distributions.
//
// https://www.python.org/dev/peps/pep-0425/
package pep425

import (
	"fmt"
	"strings"
)

type Tag struct {
	Python   string
	ABI      string
	Platform string
}

// PurePython is the tag of a wheel that contains no compiled code and runs on any Python 3.
var PurePython = Tag{Python: "py3", ABI: "none", Platform: "any"}

// ParseTag parses a "{python}-{abi}-{platform}" string; each part may be a compressed
// "."-separated set.
func ParseTag(str string) (Tag, error) {
	parts := strings.Split(str, "-")
	if len(parts) != 3 {
		return Tag{}, fmt.Errorf("pep425.ParseTag: invalid tag: %q", str)
	}
	for _, part := range parts {
		if part == "" || strings.Contains(part, "..") || strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") {
			return Tag{}, fmt.Errorf("pep425.ParseTag: invalid tag: %q", str)
		}
	}
	return Tag{Python: parts[0], ABI: parts[1], Platform: parts[2]}, nil
}

func (t *Tag) UnmarshalText(text []byte) error {
	tag, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t Tag) Decompress() []Tag {
	var ret []Tag
	for _, x := range strings.Split(t.Python, ".") {
		for _, y := range strings.Split(t.ABI, ".") {
			for _, z := range strings.Split(t.Platform, ".") {
				ret = append(ret, Tag{x, y, z})
			}
		}
	}
	return ret
}

func (t Tag) String() string {
	return t.Python + "-" + t.ABI + "-" + t.Platform
}

// Intersect returns whether any tag in tag-list 'a' matches any tag in tag-list 'b'; considering
// compressed tag sets.
func Intersect(a, b []Tag) bool {
	for _, a1 := range a {
		for _, a2 := range a1.Decompress() {
			for _, b1 := range b {
				for _, b2 := range b1.Decompress() {
					if a2 == b2 {
						return true
					}
				}
			}
		}
	}
	return false
}

// Installer is a list of tags that an interpreter supports, ordered from most-preferred to
// least-preferred.
//
// To get this for a live Python install, use the command:
//
//	python -c $'import packaging.tags\nfor tag in packaging.tags.sys_tags(): print(tag)'
type Installer []Tag

func (inst Installer) Supports(t Tag) bool {
	return Intersect([]Tag(inst), []Tag{t})
}

// Best returns the most specific tag that the interpreter supports; this is the tag to give
// a wheel containing compiled extensions built for that interpreter.
func (inst Installer) Best() (Tag, bool) {
	if len(inst) == 0 {
		return Tag{}, false
	}
	return inst[0], true
}
