// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pyinspect_test

import (
	"testing"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python/pyinspect"
)

func TestShebangs(t *testing.T) {
	t.Parallel()
	if _, err := dexec.LookPath("python3"); err != nil {
		t.Skip("python3 is not installed")
	}
	console, graphical, err := pyinspect.Shebangs(pyinspect.NativeFS{}, "python3")
	require.NoError(t, err)
	assert.NotEmpty(t, console)
	assert.NotEmpty(t, graphical)
}

func TestDynamic(t *testing.T) {
	t.Parallel()
	if _, err := dexec.LookPath("python3"); err != nil {
		t.Skip("python3 is not installed")
	}
	ctx := dlog.NewTestContext(t, true)
	info, err := pyinspect.Dynamic(ctx, "python3")
	require.NoError(t, err)
	assert.Equal(t, 3, info.VersionInfo.Major)
	assert.NotEmpty(t, info.SysPath)
	assert.NotEmpty(t, info.Scheme.PureLib)
	for _, key := range []string{"python_version", "sys_platform", "os_name", "implementation_name"} {
		assert.NotEmpty(t, info.MarkerEnvironment[key], key)
	}
}

func TestDynamicBadInterpreter(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	_, err := pyinspect.Dynamic(ctx, "/nonexistent/python")
	assert.Error(t, err)
	_, err = pyinspect.Dynamic(ctx)
	assert.Error(t, err)
}
