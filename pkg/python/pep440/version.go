// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep440

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// Version is the full version type; most callers want this rather than PublicVersion.
type Version = LocalVersion

// ParseVersion parses and normalizes a version string.
func ParseVersion(str string) (*Version, error) {
	ver, err := parseVersion(str)
	if err != nil {
		return nil, fmt.Errorf("pep440.ParseVersion: %w", err)
	}
	return ver, nil
}

// PublicVersion is a version without a local part; it is what an index knows about.
type PublicVersion struct {
	Epoch   int
	Release []int
	Pre     *PreRelease
	Post    *int
	Dev     *int
}

// PreRelease holds a normalized phase letter ("a", "b", or "rc") and its number.
type PreRelease struct {
	L string
	N int
}

func (ver PublicVersion) GoString() string {
	pre := "nil"
	if ver.Pre != nil {
		pre = fmt.Sprintf("&%#v", *ver.Pre)
	}
	post := "nil"
	if ver.Post != nil {
		post = fmt.Sprintf("intPtr(%#v)", *ver.Post)
	}
	dev := "nil"
	if ver.Dev != nil {
		dev = fmt.Sprintf("intPtr(%#v)", *ver.Dev)
	}
	return fmt.Sprintf("pep440.PublicVersion{Epoch:%d, Release:%#v, Pre:%s, Post:%s, Dev:%s}",
		ver.Epoch, ver.Release, pre, post, dev)
}

func (ver PublicVersion) writeTo(ret *strings.Builder) {
	if ver.Epoch > 0 {
		fmt.Fprintf(ret, "%d!", ver.Epoch)
	}
	if len(ver.Release) == 0 {
		panic("invalid version: no release segments")
	}
	fmt.Fprintf(ret, "%d", ver.Release[0])
	for _, segment := range ver.Release[1:] {
		fmt.Fprintf(ret, ".%d", segment)
	}
	if ver.Pre != nil {
		fmt.Fprintf(ret, "%s%d", ver.Pre.L, ver.Pre.N)
	}
	if ver.Post != nil {
		fmt.Fprintf(ret, ".post%d", *ver.Post)
	}
	if ver.Dev != nil {
		fmt.Fprintf(ret, ".dev%d", *ver.Dev)
	}
}

// String returns the normalized form.
func (ver PublicVersion) String() string {
	var ret strings.Builder
	ver.writeTo(&ret)
	return ret.String()
}

// BaseVersion returns just the epoch and release segment; "1!2.0rc1.post3+x" becomes "1!2.0".
func (ver PublicVersion) BaseVersion() PublicVersion {
	return PublicVersion{
		Epoch:   ver.Epoch,
		Release: ver.Release,
	}
}

// LocalVersion is a PublicVersion plus an optional "+local" label.
type LocalVersion struct {
	PublicVersion
	Local []intstr.IntOrString
}

func (ver LocalVersion) GoString() string {
	return fmt.Sprintf("pep440.LocalVersion{PublicVersion:%#v, Local:%#v}",
		ver.PublicVersion, ver.Local)
}

// String returns the normalized form.
func (ver LocalVersion) String() string {
	var ret strings.Builder
	ver.PublicVersion.writeTo(&ret)
	sep := "+"
	for _, local := range ver.Local {
		ret.WriteString(sep)
		ret.WriteString(local.String())
		sep = "."
	}
	return ret.String()
}

func (ver PublicVersion) releaseSegment(n int) int {
	if n < len(ver.Release) {
		return ver.Release[n]
	}
	return 0
}

func (ver PublicVersion) Major() int { return ver.releaseSegment(0) }
func (ver PublicVersion) Minor() int { return ver.releaseSegment(1) }
func (ver PublicVersion) Micro() int { return ver.releaseSegment(2) }

// IsPreRelease reports whether the version is a pre-release or a developmental release.
func (ver PublicVersion) IsPreRelease() bool {
	return ver.Pre != nil || ver.Dev != nil
}

func (ver PublicVersion) IsPostRelease() bool {
	return ver.Post != nil
}

func (ver PublicVersion) IsFinal() bool {
	return ver.Pre == nil && ver.Post == nil && ver.Dev == nil
}

func (ver LocalVersion) IsFinal() bool {
	return ver.PublicVersion.IsFinal() && len(ver.Local) == 0
}

// Cmp returns <0 if a sorts before b, >0 if after, and 0 if they are equivalent.
func (a PublicVersion) Cmp(b PublicVersion) int {
	for _, cmp := range []func(a, b PublicVersion) int{
		cmpEpoch,
		cmpRelease,
		cmpPreRelease,
		cmpPostRelease,
		cmpDevRelease,
	} {
		if d := cmp(a, b); d != 0 {
			return d
		}
	}
	return 0
}

// Cmp is like PublicVersion.Cmp, but also considers the local label.
func (a LocalVersion) Cmp(b LocalVersion) int {
	if d := a.PublicVersion.Cmp(b.PublicVersion); d != 0 {
		return d
	}
	return cmpLocal(a, b)
}

func cmpEpoch(a, b PublicVersion) int {
	return a.Epoch - b.Epoch
}

// cmpRelease treats missing trailing segments as zero, so "1.0" == "1.0.0".
func cmpRelease(a, b PublicVersion) int {
	for i := 0; i < len(a.Release) || i < len(b.Release); i++ {
		if diff := a.releaseSegment(i) - b.releaseSegment(i); diff != 0 {
			return diff
		}
	}
	return 0
}

var preReleaseOrder = map[string]int{
	"a":  -3,
	"b":  -2,
	"rc": -1,
}

// preReleaseKey returns a sort key for the phase; a bare ".devN" (with no pre or post part)
// sorts before every pre-release of the same release.
func preReleaseKey(ver PublicVersion) (int, int) {
	switch {
	case ver.Pre != nil:
		l, ok := preReleaseOrder[ver.Pre.L]
		if !ok {
			panic(fmt.Errorf("invalid pre-release string: %q", ver.Pre.L))
		}
		return l, ver.Pre.N
	case ver.Dev != nil && ver.Post == nil:
		return -4, 0
	default:
		return 0, 0
	}
}

func cmpPreRelease(a, b PublicVersion) int {
	aL, aN := preReleaseKey(a)
	bL, bN := preReleaseKey(b)
	if aL != bL {
		return aL - bL
	}
	return aN - bN
}

func cmpPostRelease(a, b PublicVersion) int {
	aPost, bPost := -1, -1
	if a.Post != nil {
		aPost = *a.Post
	}
	if b.Post != nil {
		bPost = *b.Post
	}
	return aPost - bPost
}

func cmpDevRelease(a, b PublicVersion) int {
	switch {
	case a.Dev == nil && b.Dev == nil:
		return 0
	case a.Dev == nil:
		return 1
	case b.Dev == nil:
		return -1
	default:
		return *a.Dev - *b.Dev
	}
}

// cmpLocalSegment orders a missing segment first, then strings (lexically), then integers
// (numerically).
func cmpLocalSegment(a, b *intstr.IntOrString) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch {
	case a.Type == intstr.Int && b.Type == intstr.Int:
		return int(a.IntVal) - int(b.IntVal)
	case a.Type == intstr.String && b.Type == intstr.String:
		return strings.Compare(a.StrVal, b.StrVal)
	case a.Type == intstr.Int:
		return 1
	default:
		return -1
	}
}

func cmpLocal(a, b LocalVersion) int {
	for i := 0; i < len(a.Local) || i < len(b.Local); i++ {
		var aSeg, bSeg *intstr.IntOrString
		if i < len(a.Local) {
			aSeg = &a.Local[i]
		}
		if i < len(b.Local) {
			bSeg = &b.Local[i]
		}
		if d := cmpLocalSegment(aSeg, bSeg); d != 0 {
			return d
		}
	}
	return 0
}
