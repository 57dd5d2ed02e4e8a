// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package depsync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/datawire/dlib/dexec"
)

// ErrUnsupportedVCS is returned by a RemoteResolver that does not know how to talk to a
// version control system.
var ErrUnsupportedVCS = errors.New("unsupported version control system")

// RemoteResolver looks up the commit that a revision currently points at in a remote
// repository.  An empty rev means the default branch.
type RemoteResolver interface {
	LatestCommit(ctx context.Context, vcs, url, rev string) (string, error)
}

// GitResolver is a RemoteResolver that runs `git ls-remote`.
type GitResolver struct{}

func (GitResolver) LatestCommit(ctx context.Context, vcs, url, rev string) (string, error) {
	if vcs != "git" {
		return "", fmt.Errorf("depsync.GitResolver: %w: %q", ErrUnsupportedVCS, vcs)
	}
	args := []string{"ls-remote", url}
	if rev != "" {
		args = append(args, rev)
	}
	cmd := dexec.CommandContext(ctx, "git", args...)
	cmd.DisableLogging = true
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("depsync.GitResolver: %w", err)
	}
	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return "", fmt.Errorf("depsync.GitResolver: %q: no such revision %q", url, rev)
	}
	return fields[0], nil
}
