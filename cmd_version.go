// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datawire/pybuild/pkg/cliutil"
	"github.com/datawire/pybuild/pkg/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version [flags] [DESIRED]",
		Short: "View or set the project's version",
		Long: "With no arguments, print the project's version." +
			"\n\n" +
			"With an argument, update a dynamic version through its version source.  " +
			"DESIRED is either an explicit version, or a comma-separated list of " +
			"segments to bump (release, major, minor, micro/patch/fix, a/alpha, " +
			"b/beta, c/rc, post, dev).  Unless HATCH_VERSION_VALIDATE_BUMP=false, the " +
			"new version must be higher than the old one.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			project, err := loadProject()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				version, err := project.Version(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), version)
				return err
			}
			oldVersion, newVersion, err := project.UpdateVersion(ctx, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Old: %s\nNew: %s\n", oldVersion, newVersion)
			return err
		},
	}
	cliutil.SetEnv(cmd, config.EnvVersionValidateBump)
	argparser.AddCommand(cliutil.SetGroup(cmd, groupBuild))
}
