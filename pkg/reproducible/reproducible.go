// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package reproducible provides the timestamps that get stamped in to build artifacts.
//
// https://reproducible-builds.org/docs/source-date-epoch/
package reproducible

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// DefaultEpoch is the timestamp used for reproducible artifacts when SOURCE_DATE_EPOCH is not
// set: 2020-02-02T00:00:00Z.  It is well after 1980, the earliest time a ZIP file can encode.
var DefaultEpoch = time.Unix(1580601600, 0).UTC()

var (
	nowOnce sync.Once
	now     time.Time
)

// Now returns the current time, or the time in $SOURCE_DATE_EPOCH if it is set.  The result is
// computed once per process.
func Now() time.Time {
	nowOnce.Do(func() {
		if t, ok := sourceDateEpoch(); ok {
			now = t
		} else {
			now = time.Now().UTC()
		}
	})
	return now
}

// Epoch returns the timestamp to stamp in to a reproducible artifact: $SOURCE_DATE_EPOCH if it
// is set, or DefaultEpoch otherwise.
func Epoch() time.Time {
	if t, ok := sourceDateEpoch(); ok {
		return t
	}
	return DefaultEpoch
}

// Clamp returns t, but no later than Epoch().
func Clamp(t time.Time) time.Time {
	if epoch := Epoch(); t.After(epoch) {
		return epoch
	}
	return t
}

func sourceDateEpoch() (time.Time, bool) {
	secs, err := strconv.ParseInt(os.Getenv("SOURCE_DATE_EPOCH"), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}
