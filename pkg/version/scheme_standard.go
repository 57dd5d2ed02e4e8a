// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/python/pep440"
)

// StandardScheme applies a comma-separated list of directives to a PEP 440 version:
//
//	release                       drop pre/post/dev/local
//	major, minor, micro           bump a release segment (patch and fix mean micro)
//	a, b, c, rc, alpha, beta,
//	pre, preview                  start or bump a pre-release
//	post, rev, r                  start or bump a post-release
//	dev                           start or bump a dev-release
//	<version>                     set an explicit version; must be the only directive
//
// Setting one part of the version resets every later part (in the order release, pre, post,
// dev, local) to absent, unless a later directive sets it again.
//
// The option validate-bump (default true; HATCH_VERSION_VALIDATE_BUMP overrides it) requires
// an explicit version to be higher than the original.
type StandardScheme struct {
	Config   config.Table
	Settings *config.Settings
}

var _ Scheme = (*StandardScheme)(nil)

func (s *StandardScheme) validateBump() (bool, error) {
	if s.Settings != nil {
		if validate, set := s.Settings.ValidateBump(); set {
			return validate, nil
		}
	}
	return s.Config.Bool("validate-bump", true)
}

func (s *StandardScheme) Update(desired, original string, _ Data) (string, error) {
	orig, err := pep440.ParseVersion(original)
	if err != nil {
		return "", fmt.Errorf("version.StandardScheme: original version: %w", err)
	}
	ver := copyVersion(*orig)

	directives := strings.Split(desired, ",")
	for _, directive := range directives {
		directive = strings.TrimSpace(directive)
		switch directive {
		case "release":
			ver = resetParts(ver, partRelease, func(*pep440.Version) {})
		case "major":
			ver = resetParts(ver, partRelease, func(v *pep440.Version) {
				v.Release = updateRelease(ver, []int{ver.Major() + 1})
			})
		case "minor":
			ver = resetParts(ver, partRelease, func(v *pep440.Version) {
				v.Release = updateRelease(ver, []int{ver.Major(), ver.Minor() + 1})
			})
		case "micro", "patch", "fix":
			ver = resetParts(ver, partRelease, func(v *pep440.Version) {
				v.Release = updateRelease(ver, []int{ver.Major(), ver.Minor(), ver.Micro() + 1})
			})
		case "a", "b", "c", "rc", "alpha", "beta", "pre", "preview":
			phase, _ := pep440.NormalizeLetter(directive)
			number := 0
			if ver.Pre != nil && ver.Pre.L == phase {
				number = ver.Pre.N + 1
			}
			ver = resetParts(ver, partPre, func(v *pep440.Version) {
				v.Pre = &pep440.PreRelease{L: phase, N: number}
			})
		case "post", "rev", "r":
			number := 0
			if ver.Post != nil {
				number = *ver.Post + 1
			}
			ver = resetParts(ver, partPost, func(v *pep440.Version) {
				v.Post = &number
			})
		case "dev":
			number := 0
			if ver.Dev != nil {
				number = *ver.Dev + 1
			}
			ver = resetParts(ver, partDev, func(v *pep440.Version) {
				v.Dev = &number
			})
		default:
			if len(directives) > 1 {
				return "", fmt.Errorf("version.StandardScheme: cannot specify multiple update operations with an explicit version")
			}
			next, err := pep440.ParseVersion(directive)
			if err != nil {
				return "", fmt.Errorf("version.StandardScheme: %w", err)
			}
			validate, err := s.validateBump()
			if err != nil {
				return "", fmt.Errorf("version.StandardScheme: %w", err)
			}
			if validate && next.Cmp(*orig) <= 0 {
				return "", fmt.Errorf("version.StandardScheme: %w: version `%s` is not higher than the original version `%s`",
					ErrBumpNotHigher, directive, original)
			}
			return next.String(), nil
		}
	}
	return ver.String(), nil
}

type part int

const (
	partRelease part = iota
	partPre
	partPost
	partDev
)

// resetParts applies set to a copy of ver, after clearing every part that comes after from.
func resetParts(ver pep440.Version, from part, set func(*pep440.Version)) pep440.Version {
	ret := copyVersion(ver)
	if from < partPre {
		ret.Pre = nil
	}
	if from < partPost {
		ret.Post = nil
	}
	if from < partDev {
		ret.Dev = nil
	}
	ret.Local = nil
	set(&ret)
	return ret
}

// updateRelease pads newRelease with zeros out to the length of the current release.
func updateRelease(orig pep440.Version, newRelease []int) []int {
	for len(newRelease) < len(orig.Release) {
		newRelease = append(newRelease, 0)
	}
	return newRelease
}

func copyVersion(ver pep440.Version) pep440.Version {
	ret := ver
	ret.Release = append([]int(nil), ver.Release...)
	if ver.Pre != nil {
		pre := *ver.Pre
		ret.Pre = &pre
	}
	if ver.Post != nil {
		post := *ver.Post
		ret.Post = &post
	}
	if ver.Dev != nil {
		dev := *ver.Dev
		ret.Dev = &dev
	}
	ret.Local = append([]intstr.IntOrString(nil), ver.Local...)
	return ret
}
