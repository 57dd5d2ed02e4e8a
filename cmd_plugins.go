// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datawire/pybuild/pkg/cliutil"
	"github.com/datawire/pybuild/pkg/plugin"
)

var argparserPlugins = &cobra.Command{
	Use:   "plugins {[flags]|SUBCOMMAND...}",
	Short: "Inspect the plugin registries",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(cliutil.SetGroup(argparserPlugins, groupProject))

	var format string
	cmd := &cobra.Command{
		Use:   "list [flags] [TYPE...]",
		Short: "List the available plugins",
		Long: "List the plugins of each TYPE (default: every type), from both the primary " +
			"and the legacy registries.  A TYPE is a bare type name such as 'builder', " +
			"or a group name such as 'hatch.builder'.",
		Args: cliutil.WrapPositionalArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			types := plugin.Types
			if len(args) > 0 {
				types = nil
				for _, arg := range args {
					typ, err := plugin.ParseType(arg)
					if err != nil {
						return err
					}
					types = append(types, typ)
				}
			}
			if format == "" {
				for _, typ := range types {
					for _, name := range plugin.Default.Names(ctx, typ) {
						if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", typ, name); err != nil {
							return err
						}
					}
				}
				return nil
			}
			data := make(map[string][]string, len(types))
			for _, typ := range types {
				names := plugin.Default.Names(ctx, typ)
				if names == nil {
					names = []string{}
				}
				data[string(typ)] = names
			}
			return writeStructured(cmd.OutOrStdout(), format, data)
		},
	}
	cmd.Flags().StringVar(&format, "format", "",
		"Print a `FORMAT` ('json' or 'yaml') mapping of type to names, instead of a table")
	argparserPlugins.AddCommand(cmd)
}
