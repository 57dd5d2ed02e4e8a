// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package spdx_test

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python/spdx"
	"github.com/datawire/pybuild/pkg/testutil"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Input  string
		Output string
		Err    error
		ErrStr string
	}{
		"empty":       {Input: "", Output: ""},
		"simple":      {Input: "mit", Output: "MIT"},
		"or-later":    {Input: "gpl-2.0+", Output: "GPL-2.0+"},
		"operators":   {Input: "mit or apache-2.0 and bsd-3-clause", Output: "MIT OR Apache-2.0 AND BSD-3-Clause"},
		"parens":      {Input: "(MIT or Apache-2.0) AND ( bsd-3-clause )", Output: "(MIT OR Apache-2.0) AND (BSD-3-Clause)"},
		"with":        {Input: "Apache-2.0 with LLVM-exception", Output: "Apache-2.0 WITH LLVM-exception"},
		"licenseref":  {Input: "licenseref-proprietary", Output: "LicenseRef-Proprietary"},
		"public":      {Input: "LICENSEREF-PUBLIC-DOMAIN OR mit", Output: "LicenseRef-Public-Domain OR MIT"},
		"or":          {Input: "or", Err: spdx.ErrInvalidExpression, ErrStr: "invalid license expression: or"},
		"trailing-or": {Input: "mit or", Err: spdx.ErrInvalidExpression, ErrStr: "invalid license expression: mit or"},
		"open-paren":  {Input: "(mit", Err: spdx.ErrInvalidExpression, ErrStr: "invalid license expression: (mit"},
		"close-paren": {Input: "mit)", Err: spdx.ErrInvalidExpression, ErrStr: "invalid license expression: mit)"},
		"double-or":   {Input: "mit or or apache-2.0", Err: spdx.ErrInvalidExpression, ErrStr: "invalid license expression: mit or or apache-2.0"},
		"adjacent":    {Input: "mit apache-2.0", Err: spdx.ErrInvalidExpression},
		"paren-after": {Input: "mit (apache-2.0)", Err: spdx.ErrInvalidExpression},
		"nested":      {Input: "((mit))", Err: spdx.ErrInvalidExpression},
		"empty-paren": {Input: "()", Err: spdx.ErrInvalidExpression},
		"with-paren":  {Input: "mit with (llvm-exception)", Err: spdx.ErrInvalidExpression},
		"unknown":     {Input: "mit or foobar", Err: spdx.ErrUnknownLicense, ErrStr: "unknown license: foobar"},
		"unknown-exc": {Input: "mit with foobar", Err: spdx.ErrUnknownException, ErrStr: "unknown license exception: foobar"},
		"exc-as-lic":  {Input: "llvm-exception", Err: spdx.ErrUnknownLicense},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			out, err := spdx.Normalize(tc.Input)
			if tc.Err == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.Output, out)
				return
			}
			assert.True(t, errors.Is(err, tc.Err), "%v", err)
			var spdxErr *spdx.Error
			assert.True(t, errors.As(err, &spdxErr))
			if tc.ErrStr != "" {
				assert.EqualError(t, err, tc.ErrStr)
			}
			assert.Equal(t, "", out)
		})
	}
}

// expr is a randomly generated, syntactically valid license expression.
type expr string

var exprAtoms = []string{"mit", "Apache-2.0", "BSD-3-clause", "gpl-3.0+", "LicenseRef-Proprietary", "ISC"}

func randExpr(rand *rand.Rand, depth int) string {
	if depth <= 0 || rand.Intn(3) == 0 {
		atom := exprAtoms[rand.Intn(len(exprAtoms))]
		if rand.Intn(4) == 0 {
			atom = strings.ToUpper(atom)
		}
		if rand.Intn(5) == 0 {
			atom += " with classpath-exception-2.0"
		}
		return atom
	}
	lhs := randExpr(rand, depth-1)
	rhs := randExpr(rand, depth-1)
	if rand.Intn(3) == 0 {
		rhs = "(" + rhs + ")"
	}
	return lhs + []string{" and ", " or ", " AND ", " Or "}[rand.Intn(4)] + rhs
}

// Generate implements testing/quick.Generator.
func (expr) Generate(rand *rand.Rand, size int) reflect.Value {
	return reflect.ValueOf(expr(randExpr(rand, size%6)))
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()
	testutil.QuickCheck(t,
		func(in expr) bool {
			once, err := spdx.Normalize(string(in))
			if err != nil {
				t.Logf("%q: %v", in, err)
				return false
			}
			twice, err := spdx.Normalize(once)
			if err != nil || twice != once {
				t.Logf("%q: %q != %q (%v)", in, once, twice, err)
				return false
			}
			for _, tok := range strings.Fields(strings.NewReplacer("(", " ", ")", " ").Replace(once)) {
				switch tok {
				case "AND", "OR", "WITH":
					continue
				}
				if !spdx.IsKnownLicense(strings.TrimSuffix(tok, "+")) && !spdx.IsKnownException(tok) {
					return false
				}
			}
			return true
		},
		testutil.QuickConfig{},
		[]interface{}{expr("mit")},
		[]interface{}{expr("(mit or isc) and apache-2.0 with llvm-exception")})
}

func TestLicenses(t *testing.T) {
	t.Parallel()
	lics := spdx.Licenses()
	assert.Contains(t, lics, "MIT")
	assert.Contains(t, lics, spdx.PublicDomain)
	assert.True(t, spdx.IsKnownLicense("apache-2.0"))
	assert.False(t, spdx.IsKnownLicense("llvm-exception"))
	assert.True(t, spdx.IsKnownException("LLVM-exception"))
}
