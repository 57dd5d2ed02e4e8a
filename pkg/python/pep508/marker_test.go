// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep508_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python/pep508"
)

func TestMarkerEvaluate(t *testing.T) {
	t.Parallel()
	env := pep508.Environment{
		"python_version":                 "3.11",
		"python_full_version":            "3.11.4",
		"os_name":                        "posix",
		"sys_platform":                   "linux",
		"platform_system":                "Linux",
		"platform_machine":               "x86_64",
		"platform_python_implementation": "CPython",
		"platform_release":               "6.1.0-13-amd64",
		"implementation_name":            "cpython",
	}
	testcases := map[string]bool{
		`python_version < "3.0"`:                                           false,
		`python_version >= "3.8"`:                                          true,
		`python_version > "3.9" and sys_platform == "linux"`:               true,
		`python_version < "3" or os_name == "nt"`:                          false,
		`(python_version < "3" or os_name == "posix") and extra == "test"`: false,
		`"linux" in sys_platform`:                                          true,
		`"win" not in sys_platform`:                                        true,
		`platform_release >= "6"`:                                          true,
		`python_full_version == "3.11.*"`:                                  true,
		`extra == ""`:                                                      true,
		`os.name == "posix"`:                                               true,
		`platform_machine == 'x86_64'`:                                     true,
	}
	for input, exp := range testcases {
		input, exp := input, exp
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			marker, err := pep508.ParseMarker(input)
			require.NoError(t, err)
			act, err := marker.Evaluate(env)
			require.NoError(t, err)
			assert.Equal(t, exp, act)
		})
	}
}

func TestMarkerExtraNormalization(t *testing.T) {
	t.Parallel()
	marker, err := pep508.ParseMarker(`extra == "Dev_Tools"`)
	require.NoError(t, err)
	act, err := marker.Evaluate(pep508.Environment{"extra": "dev-tools"})
	require.NoError(t, err)
	assert.True(t, act)
	assert.True(t, marker.References("extra"))
	assert.False(t, marker.References("python_version"))
}

func TestMarkerUndefined(t *testing.T) {
	t.Parallel()
	marker, err := pep508.ParseMarker(`python_version < "3" and os_name == "nt"`)
	require.NoError(t, err)
	_, err = marker.Evaluate(pep508.Environment{"python_version": "3.11"})
	assert.True(t, errors.Is(err, pep508.ErrUndefinedVariable))
}

func TestMarkerString(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		`python_version<'3'`: `python_version < "3"`,
		`(os_name=="nt" or os_name=="posix") and extra=='a'`: `(os_name == "nt" or os_name == "posix") and extra == "a"`,
		`os_name=="nt" or (os_name=="posix" and extra=='a')`: `os_name == "nt" or os_name == "posix" and extra == "a"`,
		`sys.platform == "win32"`:                            `sys_platform == "win32"`,
	}
	for input, exp := range testcases {
		marker, err := pep508.ParseMarker(input)
		require.NoError(t, err, input)
		assert.Equal(t, exp, marker.String(), input)
	}
}
