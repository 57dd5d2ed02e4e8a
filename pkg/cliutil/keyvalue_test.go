// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datawire/pybuild/pkg/cliutil"
)

func TestParseKeyValues(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Input  []string
		Output map[string][]string
		Err    string
	}{
		"empty":    {nil, map[string][]string{}, ""},
		"basic":    {[]string{"a=1", "b=2"}, map[string][]string{"a": {"1"}, "b": {"2"}}, ""},
		"repeated": {[]string{"a=1", "a=2"}, map[string][]string{"a": {"1", "2"}}, ""},
		"equals":   {[]string{"a=b=c", "d="}, map[string][]string{"a": {"b=c"}, "d": {""}}, ""},
		"no-equal": {[]string{"a"}, nil, `invalid KEY=VALUE pair: "a"`},
		"no-key":   {[]string{"=a"}, nil, `invalid KEY=VALUE pair: "=a"`},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := cliutil.ParseKeyValues(tc.Input)
			if tc.Err != "" {
				assert.EqualError(t, err, tc.Err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Output, out)
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()
	text := "Longer description of program.  This is a paragraph.  " +
		"Because it is a paragraph, it may be quite long."
	assert.Equal(t, text, cliutil.Wrap(0, text))
	assert.Equal(t, ""+
		"Longer description of program.  This is a paragraph.  Because it is a\n"+
		"paragraph, it may be quite long.",
		cliutil.Wrap(80, text))
	assert.Equal(t, ""+
		"Longer description of program.  This is a\n"+
		"    paragraph.  Because it is a paragraph, it may\n"+
		"    be quite long.",
		cliutil.WrapIndent(4, 56, text))
}
