// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep508_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python/pep508"
)

func TestNormalizeName(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"foo":             "foo",
		"Foo_Bar":         "foo-bar",
		"foo.bar":         "foo-bar",
		"foo--_.bar":      "foo-bar",
		"Django-REST_api": "django-rest-api",
	}
	for in, exp := range testcases {
		assert.Equal(t, exp, pep508.NormalizeName(in), in)
	}
}

func TestParseRequirement(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Input     string
		Name      string
		Extras    []string
		Specifier string
		URL       string
		Marker    string
		String    string
	}{
		"bare": {
			Input:  "foo",
			Name:   "foo",
			String: "foo",
		},
		"specifier": {
			Input:     "foo >= 1.0, < 2",
			Name:      "foo",
			Specifier: ">=1.0,<2",
			String:    "foo>=1.0,<2",
		},
		"parenthesized": {
			Input:     "foo (==1.2.0)",
			Name:      "foo",
			Specifier: "==1.2.0",
			String:    "foo==1.2.0",
		},
		"extras": {
			Input:  "requests[socks, security]",
			Name:   "requests",
			Extras: []string{"security", "socks"},
			String: "requests[security,socks]",
		},
		"marker": {
			Input:     `foo==1.2.0; python_version < '3.0'`,
			Name:      "foo",
			Specifier: "==1.2.0",
			Marker:    `python_version < "3.0"`,
			String:    `foo==1.2.0; python_version < "3.0"`,
		},
		"url": {
			Input:  "pip @ git+https://github.com/pypa/pip.git@1.3.1#7921be1537eac1e97bc40179a57f0349c2aee67d",
			Name:   "pip",
			URL:    "git+https://github.com/pypa/pip.git@1.3.1#7921be1537eac1e97bc40179a57f0349c2aee67d",
			String: "pip@ git+https://github.com/pypa/pip.git@1.3.1#7921be1537eac1e97bc40179a57f0349c2aee67d",
		},
		"url-marker": {
			Input:  `name[quux] @ file:///tmp/x ; os_name=="posix" and extra == "test"`,
			Name:   "name",
			Extras: []string{"quux"},
			URL:    "file:///tmp/x",
			Marker: `os_name == "posix" and extra == "test"`,
			String: `name[quux]@ file:///tmp/x ; os_name == "posix" and extra == "test"`,
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			req, err := pep508.ParseRequirement(tc.Input)
			require.NoError(t, err)
			assert.Equal(t, tc.Name, req.Name)
			assert.Equal(t, tc.Extras, req.Extras)
			assert.Equal(t, tc.Specifier, req.Specifier.String())
			assert.Equal(t, tc.URL, req.URL)
			if tc.Marker == "" {
				assert.Nil(t, req.Marker)
			} else if assert.NotNil(t, req.Marker) {
				assert.Equal(t, tc.Marker, req.Marker.String())
			}
			assert.Equal(t, tc.String, req.String())

			again, err := pep508.ParseRequirement(req.String())
			require.NoError(t, err)
			assert.Equal(t, req.String(), again.String())
		})
	}
}

func TestParseRequirementErrors(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"empty":         ``,
		"no-name":       `>=1.0`,
		"open-extras":   `foo[bar`,
		"bad-extra":     `foo[-bar]`,
		"bad-specifier": `foo =! 1`,
		"empty-marker":  `foo;`,
		"bad-marker":    `foo; python_version <`,
		"bad-variable":  `foo; python_versoin < "3"`,
		"url-no-space":  `foo @ https://example.com/foo.whl;os_name=="nt" junk`,
	}
	for tcName, input := range testcases {
		input := input
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			req, err := pep508.ParseRequirement(input)
			assert.Error(t, err)
			assert.Nil(t, req)
		})
	}
}
