// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package python_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python"
)

func TestPlatformInit(t *testing.T) {
	t.Parallel()
	scheme := python.Scheme{
		PureLib: "/usr/lib/python3.10/site-packages",
		PlatLib: "/usr/lib/python3.10/site-packages",
		Headers: "/usr/include/python3.10/demo",
		Scripts: "/usr/bin",
		Data:    "/usr",
	}

	plat := python.Platform{GraphicalShebang: "/usr/bin/python3", Scheme: scheme}
	require.NoError(t, plat.Init())
	assert.Equal(t, "/usr/bin/python3", plat.ConsoleShebang)

	plat = python.Platform{Scheme: scheme}
	assert.Error(t, plat.Init())

	scheme.Scripts = "bin"
	plat = python.Platform{ConsoleShebang: "/usr/bin/python3", Scheme: scheme}
	assert.EqualError(t, plat.Init(), `platform install scheme "scripts" is not an absolute path: "bin"`)

	assert.Equal(t, "3.10", python.VersionInfo{Major: 3, Minor: 10, Micro: 4}.MajorMinor())
}
