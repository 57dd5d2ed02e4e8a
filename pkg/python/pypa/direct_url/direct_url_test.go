// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package direct_url_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python/pypa/direct_url"
)

func TestParse(t *testing.T) {
	t.Parallel()
	rec, err := direct_url.Parse([]byte(`{
		"url": "https://github.com/pypa/pip.git",
		"vcs_info": {"vcs": "git", "requested_revision": "1.3.1", "commit_id": "7921be1537eac1e97bc40179a57f0349c2aee67d"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"git+https://github.com/pypa/pip.git@1.3.1#7921be1537eac1e97bc40179a57f0349c2aee67d",
		"git+https://github.com/pypa/pip.git@7921be1537eac1e97bc40179a57f0349c2aee67d",
	}, rec.VCSRequirementURLs())

	bs, err := rec.Dumps()
	require.NoError(t, err)
	assert.Equal(t,
		`{"url": "https://github.com/pypa/pip.git", "vcs_info": {"commit_id": "7921be1537eac1e97bc40179a57f0349c2aee67d", "requested_revision": "1.3.1", "vcs": "git"}}`,
		string(bs))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	for input, errStr := range map[string]string{
		`{`:                `direct_url.Parse: unexpected end of JSON input`,
		`{"dir_info": {}}`: `direct_url.Parse: missing required "url" key`,
		`{"url": "x", "vcs_info": {"vcs": "git"}}`: `direct_url.Parse: vcs_info: missing required "vcs" or "commit_id" key`,
	} {
		_, err := direct_url.Parse([]byte(input))
		assert.EqualError(t, err, errStr, input)
	}
}

func TestNotVCS(t *testing.T) {
	t.Parallel()
	rec := direct_url.DirectURL{URL: "file:///tmp/foo", DirInfo: &direct_url.DirInfo{Editable: true}}
	assert.Nil(t, rec.VCSRequirementURLs())
}
