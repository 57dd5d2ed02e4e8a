// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep440

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// reVersion is the permissive pattern from PEP 440 Appendix B; whitespace and comments are
// stripped before compiling.
var reVersion = regexp.MustCompile(`(?i)^\s*` + regexp.MustCompile(`(?:\s+|#.*)`).ReplaceAllString(`
	v?
	(?:
	    (?:(?P<epoch>[0-9]+)!)?                     # epoch
	    (?P<release>[0-9]+(?:\.[0-9]+)*)            # release segment
	    (?P<pre>                                    # pre-release
	        [-_\.]?
	        (?P<pre_l>alpha|beta|preview|pre|rc|a|b|c)
	        [-_\.]?
	        (?P<pre_n>[0-9]+)?
	    )?
	    (?P<post>                                   # post release
	        (?:-(?P<post_n1>[0-9]+))
	        |
	        (?:
	            [-_\.]?
	            (?P<post_l>post|rev|r)
	            [-_\.]?
	            (?P<post_n2>[0-9]+)?
	        )
	    )?
	    (?P<dev>                                    # dev release
	        [-_\.]?
	        (?P<dev_l>dev)
	        [-_\.]?
	        (?P<dev_n>[0-9]+)?
	    )?
	)
	(?:\+(?P<local>[a-z0-9]+(?:[-_\.][a-z0-9]+)*))? # local version
`, ``) + `\s*$`)

// letterSpellings maps every accepted spelling of a pre/post/dev label to its normal form.
var letterSpellings = map[string]string{
	"a":       "a",
	"alpha":   "a",
	"b":       "b",
	"beta":    "b",
	"rc":      "rc",
	"c":       "rc",
	"pre":     "rc",
	"preview": "rc",
	"post":    "post",
	"rev":     "post",
	"r":       "post",
	"":        "post", // implicit post release: "1.0-1"
	"dev":     "dev",
}

// NormalizeLetter returns the normal form of a pre-release, post-release, or dev-release label
// ("alpha" becomes "a", "c" becomes "rc", "rev" becomes "post", and so on).
func NormalizeLetter(letter string) (string, bool) {
	if letter == "" {
		return "", false
	}
	norm, ok := letterSpellings[strings.ToLower(letter)]
	return norm, ok
}

func parseLetterNumber(letter, number string) (string, int, bool, error) {
	if letter == "" && number == "" {
		return "", 0, false, nil
	}
	norm, ok := letterSpellings[strings.ToLower(letter)]
	if !ok {
		return "", 0, false, fmt.Errorf("invalid string-part: %q", letter)
	}
	n := 0
	if number != "" {
		var err error
		if n, err = strconv.Atoi(number); err != nil {
			return "", 0, false, err
		}
	}
	return norm, n, true, nil
}

func parseVersion(str string) (*Version, error) {
	match := reVersion.FindStringSubmatch(str)
	if match == nil {
		return nil, fmt.Errorf("invalid version: %q", str)
	}
	group := func(name string) string {
		return match[reVersion.SubexpIndex(name)]
	}

	var ver Version
	if epoch := group("epoch"); epoch != "" {
		var err error
		if ver.Epoch, err = strconv.Atoi(epoch); err != nil {
			return nil, err
		}
	}
	for _, segStr := range strings.Split(group("release"), ".") {
		seg, err := strconv.Atoi(segStr)
		if err != nil {
			return nil, err
		}
		ver.Release = append(ver.Release, seg)
	}

	if l, n, ok, err := parseLetterNumber(group("pre_l"), group("pre_n")); err != nil {
		return nil, fmt.Errorf("pre-release: %w", err)
	} else if ok {
		ver.Pre = &PreRelease{L: l, N: n}
	}
	if _, n, ok, err := parseLetterNumber(group("post_l"), group("post_n1")+group("post_n2")); err != nil {
		return nil, fmt.Errorf("post-release: %w", err)
	} else if ok {
		ver.Post = &n
	}
	if _, n, ok, err := parseLetterNumber(group("dev_l"), group("dev_n")); err != nil {
		return nil, fmt.Errorf("dev-release: %w", err)
	} else if ok {
		ver.Dev = &n
	}

	for _, part := range strings.FieldsFunc(group("local"), func(r rune) bool {
		return strings.ContainsRune("-_.", r)
	}) {
		ver.Local = append(ver.Local, intstr.Parse(strings.ToLower(part)))
	}

	return &ver, nil
}

// MustParseVersion is like ParseVersion, but panics on error.  It is meant for version
// constants.
func MustParseVersion(str string) Version {
	ver, err := ParseVersion(str)
	if err != nil {
		panic(err)
	}
	return *ver
}
