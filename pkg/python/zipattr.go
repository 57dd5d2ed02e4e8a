// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package python

import (
	"io/fs"
)

// A StatMode is a file's mode and permission bits as Python's `stat` module and the Linux kernel
// lay them out, which is what wheel and sdist readers expect to find in a ZIP member's external
// attributes.
type StatMode uint16

const (
	ModeFmt StatMode = 0o17_0000 // mask for the type bits

	ModeFmtDir     StatMode = 0o04_0000
	ModeFmtRegular StatMode = 0o10_0000
	ModeFmtSymlink StatMode = 0o12_0000

	ModePerm StatMode = 0o00_7777 // mask for permission bits
)

// ModeFromGo translates an fs.FileMode to a StatMode.  Special files (devices, pipes, sockets)
// have no representation in an archive we write, and get no type bits.
func ModeFromGo(gm fs.FileMode) StatMode {
	pm := StatMode(gm.Perm())
	switch gm.Type() {
	case fs.ModeDir:
		pm |= ModeFmtDir
	case fs.ModeSymlink:
		pm |= ModeFmtSymlink
	case 0:
		pm |= ModeFmtRegular
	}
	return pm
}

func (pm StatMode) IsDir() bool     { return pm&ModeFmt == ModeFmtDir }
func (pm StatMode) IsRegular() bool { return pm&ModeFmt == ModeFmtRegular }

// IsExecutable reports whether pm is a regular file with any of the execute bits set; this is
// the test that pip applies when unpacking a wheel.
func (pm StatMode) IsExecutable() bool {
	return pm.IsRegular() && pm&0o111 != 0
}

// DOSDirectory is the MS-DOS attribute bit that marks a directory.
const DOSDirectory uint8 = 1 << 4

// ZIPExternalAttributes is the 4-byte "external file attributes" field of a ZIP member.  With
// the UNIX "version made by", the upper 2 bytes hold a StatMode; the low byte holds MS-DOS
// attributes.  Python's zipfile reads both halves regardless of the creator.
type ZIPExternalAttributes struct {
	UNIX   StatMode
	Unused uint8
	MSDOS  uint8
}

// ZIPAttributes returns the external attributes to record for a file with the given mode.
func ZIPAttributes(gm fs.FileMode) ZIPExternalAttributes {
	attrs := ZIPExternalAttributes{UNIX: ModeFromGo(gm)}
	if gm.IsDir() {
		attrs.MSDOS = DOSDirectory
	}
	return attrs
}

func (ea ZIPExternalAttributes) Raw() uint32 {
	return uint32(ea.UNIX)<<16 | uint32(ea.Unused)<<8 | uint32(ea.MSDOS)
}

func ParseZIPExternalAttributes(raw uint32) ZIPExternalAttributes {
	return ZIPExternalAttributes{
		UNIX:   StatMode(raw >> 16),
		Unused: uint8(raw >> 8),
		MSDOS:  uint8(raw),
	}
}
