// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep440_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python/pep440"
	"github.com/datawire/pybuild/pkg/testutil"
)

func TestParseSpecifier(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		InStr  string
		OutVal pep440.Specifier
		OutErr string
	}{
		"empty":       {"", pep440.Specifier{}, ""},
		"whitespace":  {"  ", pep440.Specifier{}, ""},
		"emptycommas": {", ,", pep440.Specifier{}, ""},
		"eq":          {"==1.0", pep440.Specifier{{pep440.CmpOpStrictMatch, mustParseVersion(t, "1.0")}}, ""},
		"lt":          {"<2", pep440.Specifier{{pep440.CmpOpLT, mustParseVersion(t, "2")}}, ""},
		"spaced":      {">= 1.0 , != 1.3.*", pep440.Specifier{{pep440.CmpOpGE, mustParseVersion(t, "1.0")}, {pep440.CmpOpPrefixExclude, mustParseVersion(t, "1.3")}}, ""},
		"missing-op":  {"1.0", nil, `pep440.ParseSpecifier: invalid comparison operator: "1.0"`},
		"1seg-bad":    {"~=1", nil, `pep440.ParseSpecifier: at least 2 release segments required in ~= specifier clauses`},
		"bad-dev":     {"==1.0dev.*", nil, `pep440.ParseSpecifier: dev-part not permitted in prefix == specifier clauses`},
		"bad-loc":     {">=1.0+loc", nil, `pep440.ParseSpecifier: local-part not permitted in >= specifier clauses`},
		"arbitrary":   {"===foo", nil, `pep440.ParseSpecifier: arbitrary equality (===) is not supported: "===foo"`},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			val, err := pep440.ParseSpecifier(tc.InStr)
			assert.Equal(t, tc.OutVal, val)
			if tc.OutErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.OutErr)
			}
		})
	}
}

func TestSpecifierString(t *testing.T) {
	t.Parallel()
	spec, err := pep440.ParseSpecifier(">= 1.0, != 1.3.*, <2")
	require.NoError(t, err)
	assert.Equal(t, ">=1.0,!=1.3.*,<2", spec.String())
}

func TestEquivalentSpecifiers(t *testing.T) {
	t.Parallel()
	pairs := [][2]string{
		{"~= 2.2", ">= 2.2, == 2.*"},
		{"~= 1.4.5", ">= 1.4.5, == 1.4.*"},
		{"~= 2.2.post3", ">= 2.2.post3, == 2.*"},
		{"~= 1.4.5a4", ">= 1.4.5a4, == 1.4.*"},
		{"~= 2.2.0", ">= 2.2.0, == 2.2.*"},
	}
	statics := [][]interface{}{
		{mustParseVersion(t, "2.2")},
		{mustParseVersion(t, "2.3rc1")},
		{mustParseVersion(t, "1.4.5+local.7")},
	}
	for i, pair := range pairs {
		pair := pair
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Parallel()
			a, err := pep440.ParseSpecifier(pair[0])
			require.NoError(t, err)
			b, err := pep440.ParseSpecifier(pair[1])
			require.NoError(t, err)
			testutil.QuickCheckEqual(t, a.Match, b.Match, testutil.QuickConfig{}, statics...)
		})
	}
}

func TestSpecifiers(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		InVer    string
		InSpec   string
		OutMatch bool
	}{
		{"1.1.post1", "== 1.1", false},
		{"1.1.post1", "== 1.1.post1", true},
		{"1.1.post1", "== 1.1.*", true},

		{"1.1a1", "== 1.1", false},
		{"1.1a1", "== 1.1a1", true},
		{"1.1a1", "== 1.1.*", true},

		{"1.1", "== 1.1", true},
		{"1.1", "== 1.1.0", true},
		{"1.1", "== 1.1.dev1", false},
		{"1.1", "== 1.1.*", true},
		{"1.1+local", "== 1.1", true},
		{"1.1+local", "== 1.1+other", false},

		{"1.1.post1", "!= 1.1", true},
		{"1.1.post1", "!= 1.1.*", false},

		{"1.7.2", "> 1.7", true},
		{"1.7.post1", "> 1.7", false},
		{"1.7+local", "> 1.7", false},
		{"1.7a1", "< 1.7", false},
		{"1.6", "< 1.7", true},
		{"1.7a1", "< 1.7rc1", true},

		{"1!1.2", "== 1.*", false},
		{"1.2", "== 1.*", true},
		{"1.0", "<= 2.0", true},
		{"1.1rc0", "== 1.1rc.*", true},
		{"1.1rc1", "== 1.1rc.*", false},
		{"1.1post0", "== 1.1post.*", true},
		{"1.1post1", "== 1.1post.*", false},
		{"1rc1", "", true},
	}
	for i, tc := range testcases {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Parallel()
			ver := mustParseVersion(t, tc.InVer)
			spec, err := pep440.ParseSpecifier(tc.InSpec)
			require.NoError(t, err)
			assert.Equal(t, tc.OutMatch, spec.Match(ver), "(%s %s)", tc.InVer, tc.InSpec)
		})
	}
}

func TestContains(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		InVer  string
		InSpec string
		Out    bool
	}{
		{"1.2.0", "==1.2.0", true},
		{"1.2.0rc1", ">=1.0", false},
		{"1.2.0rc1", ">=1.2.0rc1", true},
		{"1.2.0.dev3", "!=1.0", false},
		{"1.3.0", "==1.2.0", false},
	}
	for i, tc := range testcases {
		tc := tc
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Parallel()
			spec, err := pep440.ParseSpecifier(tc.InSpec)
			require.NoError(t, err)
			assert.Equal(t, tc.Out, spec.Contains(mustParseVersion(t, tc.InVer)))
		})
	}
}
