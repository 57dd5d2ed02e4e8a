// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datawire/pybuild/pkg/cliutil"
	"github.com/datawire/pybuild/pkg/python/spdx"
)

var argparserLicense = &cobra.Command{
	Use:   "license {[flags]|SUBCOMMAND...}",
	Short: "Work with SPDX license expressions",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(cliutil.SetGroup(argparserLicense, groupProject))

	argparserLicense.AddCommand(&cobra.Command{
		Use:   "normalize [flags] EXPRESSION...",
		Short: "Print the canonical form of an SPDX license expression",
		Long: "Validate an SPDX license expression, and print it with canonical " +
			"capitalization of license identifiers, exceptions, and operators.  " +
			"Multiple arguments are joined with spaces, so the expression need not be " +
			"quoted.",
		Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized, err := spdx.Normalize(strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), normalized)
			return err
		},
	})
}
