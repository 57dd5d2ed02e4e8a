// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep440

import (
	"fmt"
	"strings"
)

// Specifier is a comma-separated list of clauses; a version matches the specifier if it matches
// every clause.  An empty Specifier matches everything.
type Specifier []SpecifierClause

// ParseSpecifier parses a version specifier such as ">=1.0, !=1.3.*, <2".
func ParseSpecifier(str string) (Specifier, error) {
	clauseStrs := strings.Split(str, ",")
	ret := make(Specifier, 0, len(clauseStrs))
	for _, clauseStr := range clauseStrs {
		clauseStr = strings.TrimSpace(clauseStr)
		if clauseStr == "" {
			continue
		}
		clause, err := parseSpecifierClause(clauseStr)
		if err != nil {
			return nil, fmt.Errorf("pep440.ParseSpecifier: %w", err)
		}
		ret = append(ret, clause)
	}
	return ret, nil
}

func (spec Specifier) String() string {
	clauses := make([]string, 0, len(spec))
	for _, clause := range spec {
		clauses = append(clauses, clause.String())
	}
	return strings.Join(clauses, ",")
}

// Match reports whether ver satisfies every clause, without any pre-release filtering.
func (spec Specifier) Match(ver Version) bool {
	for _, clause := range spec {
		if !clause.Match(ver) {
			return false
		}
	}
	return true
}

// PreReleases reports whether the specifier explicitly mentions a pre-release in an inclusive
// clause (==, ~=, <=, >=), which opts in to pre-release candidates.
func (spec Specifier) PreReleases() bool {
	for _, clause := range spec {
		switch clause.CmpOp {
		case CmpOpCompatible, CmpOpStrictMatch, CmpOpPrefixMatch, CmpOpLE, CmpOpGE:
			if clause.Version.IsPreRelease() {
				return true
			}
		}
	}
	return false
}

// Contains is like Match, but rejects pre-release versions unless the specifier itself
// opts in to them (see PreReleases).  This is the check an installer applies to an already
// installed distribution.
func (spec Specifier) Contains(ver Version) bool {
	if ver.IsPreRelease() && !spec.PreReleases() {
		return false
	}
	return spec.Match(ver)
}

type CmpOp int

const (
	CmpOpCompatible CmpOp = iota
	CmpOpStrictMatch
	CmpOpPrefixMatch
	CmpOpStrictExclude
	CmpOpPrefixExclude
	CmpOpLE
	CmpOpGE
	CmpOpLT
	CmpOpGT
	_CmpOpEnd
)

var cmpOpStrings = map[CmpOp]string{
	CmpOpCompatible:    "~=",
	CmpOpStrictMatch:   "==",
	CmpOpPrefixMatch:   "==",
	CmpOpStrictExclude: "!=",
	CmpOpPrefixExclude: "!=",
	CmpOpLE:            "<=",
	CmpOpGE:            ">=",
	CmpOpLT:            "<",
	CmpOpGT:            ">",
}

func (op CmpOp) String() string {
	str, ok := cmpOpStrings[op]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", op))
	}
	switch op {
	case CmpOpPrefixMatch, CmpOpPrefixExclude:
		return "prefix " + str
	case CmpOpStrictMatch, CmpOpStrictExclude:
		return "strict " + str
	}
	return str
}

func (op CmpOp) match(spec, ver Version) bool {
	fn, ok := map[CmpOp]func(spec, ver Version) bool{
		CmpOpCompatible:    matchCompatible,
		CmpOpStrictMatch:   matchStrictMatch,
		CmpOpPrefixMatch:   matchPrefixMatch,
		CmpOpStrictExclude: matchStrictExclude,
		CmpOpPrefixExclude: matchPrefixExclude,
		CmpOpLE:            matchLE,
		CmpOpGE:            matchGE,
		CmpOpLT:            matchLT,
		CmpOpGT:            matchGT,
	}[op]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", op))
	}
	return fn(spec, ver)
}

type SpecifierClause struct {
	CmpOp   CmpOp
	Version Version
}

// ParseSpecifierClause parses a single "<op><version>" clause.
func ParseSpecifierClause(str string) (SpecifierClause, error) {
	clause, err := parseSpecifierClause(str)
	if err != nil {
		return clause, fmt.Errorf("pep440.ParseSpecifierClause: %w", err)
	}
	return clause, nil
}

func parseSpecifierClause(str string) (SpecifierClause, error) {
	var ret SpecifierClause
	str = strings.TrimSpace(str)

	minSegments := 1
	devOK := true
	localOK := false
	prefixOK := false

	switch {
	case strings.HasPrefix(str, "==="):
		return ret, fmt.Errorf("arbitrary equality (===) is not supported: %q", str)
	case strings.HasPrefix(str, "~="):
		ret.CmpOp = CmpOpCompatible
		str = str[2:]
		minSegments = 2
	case strings.HasPrefix(str, "=="):
		ret.CmpOp = CmpOpStrictMatch
		str = str[2:]
		localOK = true
		prefixOK = true
	case strings.HasPrefix(str, "!="):
		ret.CmpOp = CmpOpStrictExclude
		str = str[2:]
		localOK = true
		prefixOK = true
	case strings.HasPrefix(str, "<="):
		ret.CmpOp = CmpOpLE
		str = str[2:]
	case strings.HasPrefix(str, ">="):
		ret.CmpOp = CmpOpGE
		str = str[2:]
	case strings.HasPrefix(str, "<"):
		ret.CmpOp = CmpOpLT
		str = str[1:]
	case strings.HasPrefix(str, ">"):
		ret.CmpOp = CmpOpGT
		str = str[1:]
	default:
		return ret, fmt.Errorf("invalid comparison operator: %q", str)
	}

	str = strings.TrimSpace(str)
	if prefixOK && strings.HasSuffix(str, ".*") {
		str = strings.TrimSuffix(str, ".*")
		if ret.CmpOp == CmpOpStrictMatch {
			ret.CmpOp = CmpOpPrefixMatch
		} else {
			ret.CmpOp = CmpOpPrefixExclude
		}
		devOK = false
		localOK = false
	}

	ver, err := parseVersion(str)
	if err != nil {
		return ret, err
	}
	if len(ver.Release) < minSegments {
		return ret, fmt.Errorf("at least %d release segments required in %s specifier clauses",
			minSegments, ret.CmpOp)
	}
	if ver.Dev != nil && !devOK {
		return ret, fmt.Errorf("dev-part not permitted in %s specifier clauses", ret.CmpOp)
	}
	if len(ver.Local) > 0 && !localOK {
		return ret, fmt.Errorf("local-part not permitted in %s specifier clauses", ret.CmpOp)
	}
	ret.Version = *ver
	return ret, nil
}

func (spec SpecifierClause) String() string {
	opStr, ok := cmpOpStrings[spec.CmpOp]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", spec.CmpOp))
	}
	ret := opStr + spec.Version.String()
	if spec.CmpOp == CmpOpPrefixMatch || spec.CmpOp == CmpOpPrefixExclude {
		ret += ".*"
	}
	return ret
}

func (spec SpecifierClause) Match(ver Version) bool {
	return spec.CmpOp.match(spec.Version, ver)
}

// matchCompatible implements "~=V.N", which is ">=V.N, ==V.*".
func matchCompatible(spec, ver Version) bool {
	prefix := spec
	prefix.Release = prefix.Release[:len(prefix.Release)-1]
	prefix.Pre = nil
	prefix.Post = nil
	prefix.Dev = nil
	return matchGE(spec, ver) && matchPrefixMatch(prefix, ver)
}

// matchStrictMatch ignores the candidate's local label unless the clause has one.
func matchStrictMatch(spec, ver Version) bool {
	if len(spec.Local) == 0 {
		return spec.PublicVersion.Cmp(ver.PublicVersion) == 0
	}
	return spec.Cmp(ver) == 0
}

func matchPrefixMatch(_spec, _ver Version) bool {
	spec, ver := _spec.PublicVersion, _ver.PublicVersion

	if cmpEpoch(spec, ver) != 0 {
		return false
	}
	if spec.Pre == nil && spec.Post == nil {
		if len(ver.Release) > len(spec.Release) {
			ver.Release = ver.Release[:len(spec.Release)]
		}
		return cmpRelease(spec, ver) == 0
	}
	if cmpRelease(spec, ver) != 0 {
		return false
	}
	samePre := (spec.Pre == nil && ver.Pre == nil) ||
		(spec.Pre != nil && ver.Pre != nil && *spec.Pre == *ver.Pre)
	if !samePre {
		return false
	}
	if spec.Post == nil {
		return true
	}
	return cmpPostRelease(spec, ver) == 0
}

func matchStrictExclude(spec, ver Version) bool {
	return !matchStrictMatch(spec, ver)
}

func matchPrefixExclude(spec, ver Version) bool {
	return !matchPrefixMatch(spec, ver)
}

func matchLE(spec, ver Version) bool {
	return spec.PublicVersion.Cmp(ver.PublicVersion) >= 0
}

func matchGE(spec, ver Version) bool {
	return spec.PublicVersion.Cmp(ver.PublicVersion) <= 0
}

// matchLT is exclusive: "<V" does not match pre-releases of V unless V is itself a
// pre-release.
func matchLT(spec, ver Version) bool {
	if spec.PublicVersion.Cmp(ver.PublicVersion) <= 0 {
		return false
	}
	if !spec.IsPreRelease() && ver.IsPreRelease() &&
		cmpEpoch(spec.PublicVersion, ver.PublicVersion) == 0 &&
		cmpRelease(spec.PublicVersion, ver.PublicVersion) == 0 {
		return false
	}
	return true
}

// matchGT is exclusive: ">V" does not match post-releases of V unless V is itself a
// post-release, and never matches V with a local label.
func matchGT(spec, ver Version) bool {
	if spec.PublicVersion.Cmp(ver.PublicVersion) >= 0 {
		return false
	}
	sameBase := cmpEpoch(spec.PublicVersion, ver.PublicVersion) == 0 &&
		cmpRelease(spec.PublicVersion, ver.PublicVersion) == 0
	if sameBase && !spec.IsPostRelease() && ver.IsPostRelease() {
		return false
	}
	if sameBase && len(ver.Local) > 0 {
		return false
	}
	return true
}
