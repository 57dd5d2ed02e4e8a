// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package dists_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python/dists"
	"github.com/datawire/pybuild/pkg/python/pypa/core_metadata"
)

type countingSource struct {
	inner dists.Source
	calls int
}

func (s *countingSource) Next() (*dists.Distribution, error) {
	s.calls++
	return s.inner.Next()
}

func mkDist(name, version string) *dists.Distribution {
	md := &core_metadata.Metadata{}
	md.Add("Name", name)
	md.Add("Version", version)
	return dists.NewDistribution(md, nil)
}

func TestCacheLazy(t *testing.T) {
	t.Parallel()
	src := &countingSource{inner: &dists.SliceSource{Dists: []*dists.Distribution{
		mkDist("Foo_Bar", "1.0"),
		mkDist("baz", "2.0"),
		mkDist("foo-bar", "3.0"),
		mkDist("qux", "4.0"),
	}}}
	cache := dists.NewCache(src)

	dist, ok, err := cache.Get("foo.bar")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1.0", dist.Version)
	assert.Equal(t, 1, src.calls, "should stop as soon as the name is found")

	dist, ok, err = cache.Get("BAZ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2.0", dist.Version)
	assert.Equal(t, 2, src.calls)

	// already indexed; no more iteration
	_, ok, err = cache.Get("foo-bar")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, src.calls)

	// first-seen wins over the later duplicate
	dist, _, _ = cache.Get("qux")
	assert.Equal(t, "4.0", dist.Version)
	dist, _, _ = cache.Get("FOO-BAR")
	assert.Equal(t, "1.0", dist.Version)
}

func TestCacheExhaustion(t *testing.T) {
	t.Parallel()
	src := &countingSource{inner: &dists.SliceSource{Dists: []*dists.Distribution{
		mkDist("a", "1"),
		mkDist("b", "1"),
		mkDist("c", "1"),
	}}}
	cache := dists.NewCache(src)

	_, ok, err := cache.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 4, src.calls, "3 distributions plus the io.EOF")

	for _, name := range []string{"missing", "other", "also-missing"} {
		_, ok, err := cache.Get(name)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 4, src.calls, "no re-scan after exhaustion")

	_, ok, err = cache.Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, src.calls)
}

type errSource struct{}

func (errSource) Next() (*dists.Distribution, error) {
	return nil, errors.New("boom")
}

func TestCacheSourceError(t *testing.T) {
	t.Parallel()
	_, _, err := dists.NewCache(errSource{}).Get("a")
	assert.EqualError(t, err, "dists.Cache.Get: boom")
	assert.False(t, errors.Is(err, io.EOF))
}
