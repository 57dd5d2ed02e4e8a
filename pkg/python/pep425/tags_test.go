// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep425_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python/pep425"
)

func TestParseTag(t *testing.T) {
	t.Parallel()
	tag, err := pep425.ParseTag("py2.py3-none-any")
	require.NoError(t, err)
	assert.Equal(t, pep425.Tag{Python: "py2.py3", ABI: "none", Platform: "any"}, tag)
	assert.Equal(t, "py2.py3-none-any", tag.String())
	assert.Len(t, tag.Decompress(), 2)

	for _, bad := range []string{"", "py3", "py3-none", "py3--any", "py3-none-any-x", ".py3-none-any"} {
		_, err := pep425.ParseTag(bad)
		assert.Error(t, err, bad)
	}
}

func TestInstaller(t *testing.T) {
	t.Parallel()
	var inst pep425.Installer
	require.NoError(t, json.Unmarshal([]byte(`["cp39-cp39-manylinux_2_17_x86_64", "py3-none-any"]`), &inst))
	assert.True(t, inst.Supports(pep425.PurePython))
	assert.True(t, inst.Supports(pep425.Tag{Python: "py2.py3", ABI: "none", Platform: "any"}))
	assert.False(t, inst.Supports(pep425.Tag{Python: "cp38", ABI: "cp38", Platform: "win32"}))

	best, ok := inst.Best()
	assert.True(t, ok)
	assert.Equal(t, "cp39-cp39-manylinux_2_17_x86_64", best.String())

	_, ok = pep425.Installer(nil).Best()
	assert.False(t, ok)
}
