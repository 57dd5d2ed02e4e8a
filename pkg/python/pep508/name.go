// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package pep508 implements PEP 508 -- Dependency specification for Python Software Packages.
//
// https://peps.python.org/pep-0508/
package pep508

import (
	"regexp"
	"strings"
)

var (
	reName          = regexp.MustCompile(`(?i)^[A-Z0-9](?:[A-Z0-9._-]*[A-Z0-9])?$`)
	reNameSeparator = regexp.MustCompile(`[-_.]+`)
)

// IsValidName reports whether str is a syntactically valid distribution name (or extra name).
func IsValidName(str string) bool {
	return reName.MatchString(str)
}

// NormalizeName returns the PEP 503 normalized form of a distribution name: lower-case, with
// every run of "-", "_", and "." collapsed in to a single "-".
func NormalizeName(name string) string {
	return strings.ToLower(reNameSeparator.ReplaceAllLiteralString(name, "-"))
}
