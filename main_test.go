// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTargetArg(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Target   string
		Versions []string
	}{
		"wheel":                    {"wheel", nil},
		"wheel:":                   {"wheel", nil},
		"wheel:editable":           {"wheel", []string{"editable"}},
		"wheel:standard, editable": {"wheel", []string{"standard", "editable"}},
		"custom:a,,b":              {"custom", []string{"a", "b"}},
	}
	for arg, tc := range testcases {
		arg, tc := arg, tc
		t.Run(arg, func(t *testing.T) {
			t.Parallel()
			target, versions := parseTargetArg(arg)
			assert.Equal(t, tc.Target, target)
			assert.Equal(t, tc.Versions, versions)
		})
	}
}

func TestWriteStructured(t *testing.T) {
	t.Parallel()
	data := map[string]interface{}{
		"name":     "demo",
		"keywords": []string{"a", "b"},
	}

	var out bytes.Buffer
	require.NoError(t, writeStructured(&out, "json", data))
	assert.Equal(t, "{\n  \"keywords\": [\n    \"a\",\n    \"b\"\n  ],\n  \"name\": \"demo\"\n}\n", out.String())

	out.Reset()
	require.NoError(t, writeStructured(&out, "yaml", data))
	assert.Equal(t, "keywords:\n- a\n- b\nname: demo\n", out.String())

	assert.EqualError(t, writeStructured(&out, "toml", data), `invalid --format "toml"; must be 'json' or 'yaml'`)
}
