// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package depsync decides whether the distributions installed in an environment satisfy a set
// of requirements, without installing anything.
package depsync

import (
	"context"
	"time"

	"github.com/datawire/dlib/dlog"

	"github.com/datawire/pybuild/pkg/python/dists"
	"github.com/datawire/pybuild/pkg/python/pep508"
)

// DefaultRemoteTimeout bounds each remote VCS lookup.
const DefaultRemoteTimeout = 30 * time.Second

// Checker checks requirements against the distributions in Dists.
type Checker struct {
	Dists *dists.Cache

	// Resolver looks up the current commit of a VCS reference that a requirement names
	// without pinning a commit.  If nil, such requirements are never in sync.
	Resolver RemoteResolver

	// RemoteTimeout bounds each call to Resolver; zero means DefaultRemoteTimeout.
	RemoteTimeout time.Duration
}

// DependenciesInSync reports whether every requirement is in sync; it stops at the first one
// that is not.
func (c *Checker) DependenciesInSync(ctx context.Context, reqs []*pep508.Requirement, env pep508.Environment) bool {
	for _, req := range reqs {
		if !c.InSync(ctx, req, env) {
			return false
		}
	}
	return true
}

// InSync reports whether the requirement is satisfied by what is installed.  Failures to read
// the installed distributions, or to reach a remote repository, count as "not in sync".
func (c *Checker) InSync(ctx context.Context, req *pep508.Requirement, env pep508.Environment) bool {
	return c.inSync(ctx, req, env, make(map[string]struct{}))
}

// visitKey identifies a requirement as evaluated in an environment; two requirements on the same
// distribution with different specifiers, URLs, or markers are different visits.
func visitKey(req *pep508.Requirement, env pep508.Environment) string {
	return req.String() + "\x00" + env["extra"]
}

func (c *Checker) inSync(ctx context.Context, req *pep508.Requirement, env pep508.Environment, visited map[string]struct{}) bool {
	if req.Marker != nil {
		applies, err := req.Marker.Evaluate(env)
		if err != nil {
			dlog.Debugf(ctx, "requirement %q: %v", req, err)
			return false
		}
		if !applies {
			return true
		}
	}

	// visited holds the requirements on the path from the top-level requirement to here.  A
	// requirement cycle through extras (foo[a] -> bar[b] -> foo[a]) is satisfied as far as
	// the inner visit is concerned; the outer visit reports the real answer.
	key := visitKey(req, env)
	if _, onPath := visited[key]; onPath {
		return true
	}
	visited[key] = struct{}{}
	defer delete(visited, key)

	dist, ok, err := c.Dists.Get(req.Name)
	if err != nil {
		dlog.Debugf(ctx, "requirement %q: %v", req, err)
		return false
	}
	if !ok {
		dlog.Debugf(ctx, "requirement %q: not installed", req)
		return false
	}

	if len(req.Extras) > 0 && !c.extrasInSync(ctx, req, dist, env, visited) {
		return false
	}

	if len(req.Specifier) > 0 {
		ver, err := dist.ParsedVersion()
		if err != nil {
			dlog.Debugf(ctx, "requirement %q: installed version: %v", req, err)
			return false
		}
		if !req.Specifier.Contains(*ver) {
			dlog.Debugf(ctx, "requirement %q: installed version %s does not match", req, ver)
			return false
		}
	}

	if req.URL != "" {
		return c.urlInSync(ctx, req, dist)
	}

	return true
}

func (c *Checker) extrasInSync(ctx context.Context, req *pep508.Requirement, dist *dists.Distribution, env pep508.Environment, visited map[string]struct{}) bool {
	transitive, err := dist.RequiresDist()
	if err != nil {
		dlog.Debugf(ctx, "requirement %q: %v", req, err)
		return false
	}
	if len(transitive) == 0 {
		return false
	}
	for _, extra := range req.Extras {
		if !dist.ProvidesExtra(extra) {
			dlog.Debugf(ctx, "requirement %q: %s does not provide extra %q", req, dist.Name, extra)
			return false
		}
	}
	for _, sub := range transitive {
		if sub.Marker == nil || !sub.Marker.References("extra") {
			continue
		}
		for _, extra := range req.Extras {
			extraEnv := make(pep508.Environment, len(env)+1)
			for k, v := range env {
				extraEnv[k] = v
			}
			extraEnv["extra"] = extra
			if !c.inSync(ctx, sub, extraEnv, visited) {
				return false
			}
		}
	}
	return true
}

func (c *Checker) urlInSync(ctx context.Context, req *pep508.Requirement, dist *dists.Distribution) bool {
	record := dist.DirectURL
	if record == nil || record.VCSInfo == nil {
		// Installed from an archive or a local directory; there is nothing to compare
		// against.
		return true
	}
	for _, pinned := range record.VCSRequirementURLs() {
		if req.URL == pinned {
			return true
		}
	}

	base := record.VCSInfo.VCS + "+" + record.URL
	if req.URL != base && req.URL != base+"@"+record.VCSInfo.RequestedRevision {
		return false
	}
	if c.Resolver == nil {
		return false
	}

	timeout := c.RemoteTimeout
	if timeout == 0 {
		timeout = DefaultRemoteTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	latest, err := c.Resolver.LatestCommit(ctx, record.VCSInfo.VCS, record.URL, record.VCSInfo.RequestedRevision)
	if err != nil {
		dlog.Debugf(ctx, "requirement %q: %v", req, err)
		return false
	}
	return latest == record.VCSInfo.CommitID
}
