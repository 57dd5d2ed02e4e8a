// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package bdist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/textproto"
	"strings"

	"github.com/datawire/pybuild/pkg/python/pep425"
	"github.com/datawire/pybuild/pkg/python/pep440"
)

// SpecVersion is the Wheel-Version that this package reads and writes.
var SpecVersion, _ = pep440.ParseVersion("1.0")

// WheelFile is the content of "{distribution}-{version}.dist-info/WHEEL", the metadata
// about the archive itself:
//
//	Wheel-Version: 1.0
//	Generator: bdist_wheel 1.0
//	Root-Is-Purelib: true
//	Tag: py2-none-any
//	Tag: py3-none-any
//	Build: 1
type WheelFile struct {
	// Generator is the name and optionally the version of the software that produced the
	// archive.
	Generator string
	// RootIsPurelib is true if the top level directory of the archive should be installed
	// into purelib; otherwise the root should be installed into platlib.
	RootIsPurelib bool
	// Tags is the wheel's expanded compatibility tags.
	Tags []pep425.Tag
	// Build is the build number, or nil.
	Build *BuildTag
}

// Bytes renders the WHEEL file.
func (w WheelFile) Bytes() []byte {
	var ret bytes.Buffer
	fmt.Fprintf(&ret, "Wheel-Version: %s\n", SpecVersion)
	fmt.Fprintf(&ret, "Generator: %s\n", w.Generator)
	fmt.Fprintf(&ret, "Root-Is-Purelib: %t\n", w.RootIsPurelib)
	for _, compressed := range w.Tags {
		for _, tag := range compressed.Decompress() {
			fmt.Fprintf(&ret, "Tag: %s\n", tag)
		}
	}
	if w.Build != nil {
		fmt.Fprintf(&ret, "Build: %s\n", w.Build)
	}
	return ret.Bytes()
}

// ParseWheelFile parses a WHEEL file.  The Wheel-Version is returned separately so that the
// caller can decide whether it is compatible.
func ParseWheelFile(r io.Reader) (*WheelFile, *pep440.Version, error) {
	// textproto.Reader.ReadMIMEHeader() expects a blank line to mark the end of the header and
	// the start of the body.  But in WHEEL there is no body, so the blank line should be
	// optional.  So use an io.MultiReader to add a few trailing CRLFs to keep ReadMIMEHeader
	// happy no matter what WHEEL's trailing newline situation is.
	kvReader := textproto.NewReader(bufio.NewReader(io.MultiReader(
		r,
		strings.NewReader("\r\n\r\n\r\n"),
	)))
	header, err := kvReader.ReadMIMEHeader()
	if err != nil {
		return nil, nil, err
	}

	wheelVersion, err := pep440.ParseVersion(header.Get("Wheel-Version"))
	if err != nil {
		return nil, nil, fmt.Errorf("parse Wheel-Version: %w", err)
	}
	ret := &WheelFile{
		Generator:     header.Get("Generator"),
		RootIsPurelib: header.Get("Root-Is-Purelib") == "true",
	}
	for _, str := range header.Values("Tag") {
		tag, err := pep425.ParseTag(str)
		if err != nil {
			return nil, nil, err
		}
		ret.Tags = append(ret.Tags, tag)
	}
	if build := header.Get("Build"); build != "" {
		ret.Build, err = ParseBuildTag(build)
		if err != nil {
			return nil, nil, err
		}
	}
	return ret, wheelVersion, nil
}
