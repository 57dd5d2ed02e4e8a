// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package spdx validates and normalizes SPDX license expressions, as used in the
// License-Expression core metadata field.
//
// https://spdx.github.io/spdx-spec/v2.3/SPDX-license-expressions/
package spdx

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type entry struct {
	ID         string
	Deprecated bool
}

// The non-SPDX identifiers that are also accepted as licenses.
const (
	PublicDomain = "LicenseRef-Public-Domain"
	Proprietary  = "LicenseRef-Proprietary"
)

func init() {
	for _, id := range []string{PublicDomain, Proprietary} {
		licenses[strings.ToLower(id)] = entry{ID: id}
	}
}

var (
	ErrInvalidExpression = errors.New("invalid license expression")
	ErrUnknownLicense    = errors.New("unknown license")
	ErrUnknownException  = errors.New("unknown license exception")
)

// Error is returned from Normalize.  Kind is one of ErrInvalidExpression, ErrUnknownLicense,
// or ErrUnknownException, and may be checked for with errors.Is.
type Error struct {
	Kind  error
	Value string // the whole expression for ErrInvalidExpression, or the offending ID
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Value)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// IsKnownLicense reports whether id (case-insensitively, without any "+" suffix) is a known
// license ID.
func IsKnownLicense(id string) bool {
	_, ok := licenses[strings.ToLower(id)]
	return ok
}

// IsKnownException reports whether id (case-insensitively) is a known license exception ID.
func IsKnownException(id string) bool {
	_, ok := exceptions[strings.ToLower(id)]
	return ok
}

// Licenses returns the canonical IDs of all known licenses, sorted.
func Licenses() []string {
	ret := make([]string, 0, len(licenses))
	for _, ent := range licenses {
		ret = append(ret, ent.ID)
	}
	sort.Strings(ret)
	return ret
}

// Normalize validates a license expression and returns it with canonical ID casing,
// upper-case operators, and tight parenthesis.  An empty expression normalizes to the empty
// string.
//
//	Normalize("mit or (apache-2.0 with llvm-exception)")
//	    => "MIT OR (Apache-2.0 WITH LLVM-exception)"
func Normalize(expr string) (string, error) {
	if expr == "" {
		return "", nil
	}

	tokens := tokenize(expr)

	for i, tok := range tokens {
		if tok == "(" && i > 0 && tokens[i-1] != "and" && tokens[i-1] != "or" {
			return "", &Error{Kind: ErrInvalidExpression, Value: expr}
		}
	}
	if !validate(tokens) {
		return "", &Error{Kind: ErrInvalidExpression, Value: expr}
	}

	normalized := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		switch {
		case isOperator(tok):
			normalized = append(normalized, strings.ToUpper(tok))
		case i > 0 && tokens[i-1] == "with":
			ent, ok := exceptions[tok]
			if !ok {
				return "", &Error{Kind: ErrUnknownException, Value: tok}
			}
			normalized = append(normalized, ent.ID)
		default:
			id, suffix := tok, ""
			if strings.HasSuffix(id, "+") {
				id, suffix = strings.TrimSuffix(id, "+"), "+"
			}
			ent, ok := licenses[id]
			if !ok {
				return "", &Error{Kind: ErrUnknownLicense, Value: id}
			}
			normalized = append(normalized, ent.ID+suffix)
		}
	}

	ret := strings.Join(normalized, " ")
	ret = strings.ReplaceAll(ret, "( ", "(")
	ret = strings.ReplaceAll(ret, " )", ")")
	return ret, nil
}

func tokenize(expr string) []string {
	expr = strings.ToLower(expr)
	expr = strings.ReplaceAll(expr, "(", " ( ")
	expr = strings.ReplaceAll(expr, ")", " ) ")
	return strings.Fields(expr)
}

func isOperator(tok string) bool {
	switch tok {
	case "and", "or", "with", "(", ")":
		return true
	default:
		return false
	}
}
