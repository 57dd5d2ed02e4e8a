// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package dists

import (
	"errors"
	"fmt"
	"io"

	"github.com/datawire/pybuild/pkg/python/pep508"
)

// Cache indexes the distributions from a Source by normalized name.  The Source is drained
// lazily: a lookup only reads as far as it needs to, and once the Source is exhausted further
// misses return immediately.  Across all lookups the Source is read at most once.
//
// When several distributions have the same normalized name, the first one seen wins, matching
// search-path precedence.
//
// A Cache is not safe for concurrent use.
type Cache struct {
	src       Source
	dists     map[string]*Distribution
	exhausted bool
}

func NewCache(src Source) *Cache {
	return &Cache{
		src:   src,
		dists: make(map[string]*Distribution),
	}
}

// Get looks up a distribution by name; the name need not be normalized.
func (c *Cache) Get(name string) (*Distribution, bool, error) {
	key := pep508.NormalizeName(name)
	if dist, ok := c.dists[key]; ok {
		return dist, true, nil
	}
	if c.exhausted {
		return nil, false, nil
	}
	for {
		dist, err := c.src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.exhausted = true
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("dists.Cache.Get: %w", err)
		}
		if dist.Name == "" {
			continue
		}
		distKey := pep508.NormalizeName(dist.Name)
		if _, dup := c.dists[distKey]; !dup {
			c.dists[distKey] = dist
		}
		if distKey == key {
			return c.dists[distKey], true, nil
		}
	}
}
