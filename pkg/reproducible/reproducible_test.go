// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package reproducible_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/datawire/pybuild/pkg/reproducible"
)

func TestEpoch(t *testing.T) {
	t.Setenv("SOURCE_DATE_EPOCH", "")
	assert.Equal(t, time.Date(2020, 2, 2, 0, 0, 0, 0, time.UTC), reproducible.Epoch())

	t.Setenv("SOURCE_DATE_EPOCH", "1234567890")
	assert.Equal(t, int64(1234567890), reproducible.Epoch().Unix())
	assert.Equal(t, int64(1234567890), reproducible.Clamp(time.Now()).Unix())
	assert.Equal(t, int64(1000), reproducible.Clamp(time.Unix(1000, 0)).Unix())
}
