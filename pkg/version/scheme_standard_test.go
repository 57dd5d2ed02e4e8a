// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/python/pep440"
	"github.com/datawire/pybuild/pkg/testutil"
	"github.com/datawire/pybuild/pkg/version"
)

func TestStandardScheme(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		Original string
		Desired  string
		Want     string
	}{
		{"9000.0.0-rc.1", "major,rc", "9001.0.0rc0"},
		{"1.2.3", "minor", "1.3.0"},
		{"1.2.3", "major", "2.0.0"},
		{"1.2.3", "micro", "1.2.4"},
		{"1.2.3", "patch", "1.2.4"},
		{"1.2.3", "fix", "1.2.4"},
		{"1.2", "micro", "1.2.1"},
		{"1", "minor", "1.1"},
		{"1!1.2.3", "major", "1!2.0.0"},
		{"1.2.3rc1.post2.dev3+local", "release", "1.2.3"},
		{"1.2.3", "a", "1.2.3a0"},
		{"1.2.3a0", "alpha", "1.2.3a1"},
		{"1.2.3a4", "b", "1.2.3b0"},
		{"1.2.3rc1", "c", "1.2.3rc2"},
		{"1.2.3rc1", "preview", "1.2.3rc2"},
		{"1.2.3rc1.post1.dev1", "rc", "1.2.3rc2"},
		{"1.2.3", "post", "1.2.3.post0"},
		{"1.2.3.post0", "rev", "1.2.3.post1"},
		{"1.2.3.post0.dev5", "r", "1.2.3.post1"},
		{"1.2.3", "dev", "1.2.3.dev0"},
		{"1.2.3.dev0", "dev", "1.2.3.dev1"},
		{"1.2.3", "minor,dev", "1.3.0.dev0"},
		{"1.2.3", "minor,b,post,dev", "1.3.0b0.post0.dev0"},
		{"1.2.3+abc", "dev", "1.2.3.dev0"},
		{"1.2.3", "1.2.4", "1.2.4"},
		{"1.2.3", "v2.0-RC1", "2.0rc1"},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.Original+"/"+tc.Desired, func(t *testing.T) {
			t.Parallel()
			scheme := &version.StandardScheme{}
			got, err := scheme.Update(tc.Desired, tc.Original, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.Want, got)
		})
	}
}

func TestStandardSchemeErrors(t *testing.T) {
	t.Parallel()
	scheme := &version.StandardScheme{}

	_, err := scheme.Update("1.2.3", "1.2.3", nil)
	assert.True(t, errors.Is(err, version.ErrBumpNotHigher))
	assert.Contains(t, err.Error(), "version `1.2.3` is not higher than the original version `1.2.3`")

	_, err = scheme.Update("1.0", "1.2.3", nil)
	assert.True(t, errors.Is(err, version.ErrBumpNotHigher))

	_, err = scheme.Update("minor,2.0", "1.2.3", nil)
	assert.EqualError(t, err, "version.StandardScheme: cannot specify multiple update operations with an explicit version")

	_, err = scheme.Update("bogus", "1.2.3", nil)
	assert.Error(t, err)

	_, err = scheme.Update("minor", "not a version", nil)
	assert.Error(t, err)
}

func TestStandardSchemeValidateBump(t *testing.T) {
	noValidate := &version.StandardScheme{
		Config: config.NewTable("tool.hatch.version", map[string]interface{}{"validate-bump": false}),
	}
	got, err := noValidate.Update("1.0", "1.2.3", nil)
	require.NoError(t, err)
	assert.Equal(t, "1.0", got)

	// the environment wins over the project configuration
	t.Setenv(config.EnvVersionValidateBump, "true")
	withEnv := &version.StandardScheme{
		Config:   noValidate.Config,
		Settings: config.NewSettings(),
	}
	_, err = withEnv.Update("1.0", "1.2.3", nil)
	assert.True(t, errors.Is(err, version.ErrBumpNotHigher))

	bad := &version.StandardScheme{
		Config: config.NewTable("tool.hatch.version", map[string]interface{}{"validate-bump": "no"}),
	}
	_, err = bad.Update("2.0", "1.2.3", nil)
	var typeErr *config.TypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestStandardSchemeMonotonic(t *testing.T) {
	t.Parallel()
	scheme := &version.StandardScheme{}
	testutil.QuickCheck(t, func(orig pep440.LocalVersion, kind uint8) bool {
		directive := []string{"major", "minor", "micro"}[int(kind)%3]
		got, err := scheme.Update(directive, orig.String(), nil)
		if err != nil {
			return false
		}
		next, err := pep440.ParseVersion(got)
		if err != nil {
			return false
		}
		return next.Cmp(orig) > 0
	}, testutil.QuickConfig{MaxCount: 500})
}
