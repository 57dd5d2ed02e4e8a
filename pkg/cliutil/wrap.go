// Copyright (C) 2020  Ambassador Labs (for Telepresence)
// Copyright (C) 2021-2022  Ambassador Labs (for pybuild)
//
// SPDX-License-Identifier: Apache-2.0
//
// GetTerminalWidth is based on
// https://github.com/telepresenceio/telepresence/blob/b6dfa04ff014915b47386191cc3d8b1352522fea/pkg/client/cli/command_group.go#L35-L63

package cliutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

// GetTerminalWidth returns the width of the terminal that help text should be wrapped to, or 0
// if it should not be wrapped.
func GetTerminalWidth() int {
	// COLUMNS wins if the shell or user sets it.
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil {
		return cols
	}
	// Size up stdout, not stdin; that is where the help goes.
	if cols, _, err := term.GetSize(1); err == nil {
		return cols
	}
	if term.IsTerminal(1) {
		return 80
	}
	// Not a terminal: don't wrap.
	return 0
}

// Wrap wraps the string s to fit in w columns.  Pass w == 0 to do no wrapping.
//
// Lines are kept a few columns short of w, so that a short word is less likely to end up on a
// line by itself.
func Wrap(w int, s string) string {
	return WrapIndent(0, w, s)
}

// WrapIndent is like Wrap, but continuation lines are indented by i columns.  The first line is
// not indented; the caller has already written something there.
func WrapIndent(i, w int, s string) string {
	lim := w - i - 6
	if w == 0 || lim < 1 {
		return s
	}
	wrapped := wordwrap.WrapString(s, uint(lim))
	if i == 0 {
		return wrapped
	}
	return strings.ReplaceAll(wrapped, "\n", "\n"+strings.Repeat(" ", i))
}
