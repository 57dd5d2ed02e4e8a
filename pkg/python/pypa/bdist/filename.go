// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package bdist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/datawire/pybuild/pkg/python/pep425"
	"github.com/datawire/pybuild/pkg/python/pep440"
)

// The wheel filename is "{distribution}-{version}(-{build tag})?-{python tag}-{abi
// tag}-{platform tag}.whl".
type FileNameData struct {
	Distribution     string
	Version          pep440.Version
	BuildTag         *BuildTag
	CompatibilityTag pep425.Tag
}

var reFilename = regexp.MustCompile(regexp.MustCompile(`\s+`).ReplaceAllString(`
		^(?P<distribution>[^-]+)
		-(?P<version>[^-]+)
		(?:-(?P<build_n>[0-9]+)(?P<build_l>[^-0-9][^-]*)?)?
		-(?P<python>[^-]+)
		-(?P<abi>[^-]+)
		-(?P<platform>[^-]+)
		\.whl$`, ``))

func ParseFilename(filename string) (*FileNameData, error) {
	match := reFilename.FindStringSubmatch(filename)
	if match == nil {
		return nil, fmt.Errorf("invalid wheel filename: %q", filename)
	}
	group := func(name string) string {
		return match[reFilename.SubexpIndex(name)]
	}

	ver, err := pep440.ParseVersion(group("version"))
	if err != nil {
		return nil, fmt.Errorf("invalid wheel filename: %q: %w", filename, err)
	}
	ret := &FileNameData{
		Distribution: group("distribution"),
		Version:      *ver,
		CompatibilityTag: pep425.Tag{
			Python:   group("python"),
			ABI:      group("abi"),
			Platform: group("platform"),
		},
	}
	if buildN := group("build_n"); buildN != "" {
		n, _ := strconv.Atoi(buildN)
		ret.BuildTag = &BuildTag{
			Int: n,
			Str: group("build_l"),
		}
	}
	return ret, nil
}

// A BuildTag acts as a tie-breaker if two wheel file names are the same in all other respects.
// It sorts as an empty tuple if unspecified (nil), else as an (int, str) tuple.
type BuildTag struct {
	Int int
	Str string
}

// ParseBuildTag parses a build tag, which must start with a digit.
func ParseBuildTag(str string) (*BuildTag, error) {
	digits := str[:len(str)-len(strings.TrimLeft(str, "0123456789"))]
	if digits == "" {
		return nil, fmt.Errorf("invalid build tag: must start with a digit: %q", str)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil, fmt.Errorf("invalid build tag: %q: %w", str, err)
	}
	return &BuildTag{Int: n, Str: str[len(digits):]}, nil
}

func (t BuildTag) String() string {
	return fmt.Sprintf("%d%s", t.Int, t.Str)
}

func (t *BuildTag) Cmp(o *BuildTag) int {
	switch {
	case t == nil && o == nil:
		return 0
	case t == nil:
		return -1
	case o == nil:
		return 1
	}
	if d := t.Int - o.Int; d != 0 {
		return d
	}
	return strings.Compare(t.Str, o.Str)
}

var reNameRun = regexp.MustCompile(`[-_.]+`)

// EscapeName escapes a distribution name for use as a filename component: any run of "-_."
// characters is replaced with "_", and the result is lower-cased.  This is equivalent to PEP
// 503 normalization followed by replacing "-" with "_".
func EscapeName(name string) string {
	return strings.ToLower(reNameRun.ReplaceAllLiteralString(name, "_"))
}

// DistInfoDir returns the "{name}-{version}.dist-info" directory name for a distribution.
func DistInfoDir(name string, version pep440.Version) string {
	return EscapeName(name) + "-" + version.String() + ".dist-info"
}

func GenerateFilename(data FileNameData) (string, error) {
	var ret strings.Builder
	ret.WriteString(EscapeName(data.Distribution))
	// Normalized version numbers cannot contain "-".
	ret.WriteString("-")
	ret.WriteString(data.Version.String())
	// The remaining components may not contain "-" characters, so no escaping is necessary;
	// but verify that they don't.
	if data.BuildTag != nil {
		build := data.BuildTag.String()
		if strings.Contains(build, "-") {
			return "", fmt.Errorf("invalid build tag: contains dash: %q", build)
		}
		ret.WriteString("-")
		ret.WriteString(build)
	}
	compat := data.CompatibilityTag.String()
	if strings.Count(compat, "-") != 2 {
		return "", fmt.Errorf("invalid compatibility tag: %q", compat)
	}
	ret.WriteString("-")
	ret.WriteString(compat)
	ret.WriteString(".whl")
	return ret.String(), nil
}
