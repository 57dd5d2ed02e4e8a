// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package direct_url

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONDumps(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Input  interface{}
		Output string
	}{
		"archive": {
			Input: DirectURL{
				URL:         "file:///tmp/dist/Flask-1.1.2-py2.py3-none-any.whl",
				ArchiveInfo: &ArchiveInfo{},
			},
			Output: `{"archive_info": {}, "url": "file:///tmp/dist/Flask-1.1.2-py2.py3-none-any.whl"}`,
		},
		"nested": {
			Input:  map[string]interface{}{"b": []interface{}{1, "x", nil, true}, "a": map[string]int{}},
			Output: `{"a": {}, "b": [1, "x", null, true]}`,
		},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := jsonDumps(tc.Input)
			require.NoError(t, err)
			assert.Equal(t, tc.Output, string(out))
		})
	}
}
