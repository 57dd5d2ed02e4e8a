// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/datawire/pybuild/pkg/cliutil"
	"github.com/datawire/pybuild/pkg/config"
)

func writeStructured(w io.Writer, format string, data interface{}) error {
	var bs []byte
	var err error
	switch format {
	case "json":
		bs, err = json.MarshalIndent(data, "", "  ")
		bs = append(bs, '\n')
	case "yaml":
		bs, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid --format %q; must be 'json' or 'yaml'", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(bs)
	return err
}

func init() {
	var format string
	cmd := &cobra.Command{
		Use:   "metadata [flags] [FIELD]",
		Short: "Display the project's resolved metadata",
		Long: "Print the project's metadata, in the shape of a [project] table, after " +
			"resolving the version and running any metadata hooks.  With FIELD, print " +
			"just that field; string fields are printed bare.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			project, err := loadProject()
			if err != nil {
				return err
			}
			core, err := project.Core(ctx)
			if err != nil {
				return err
			}
			data := core.Map()
			if len(args) == 0 {
				return writeStructured(cmd.OutOrStdout(), format, data)
			}
			val, ok := data[args[0]]
			if !ok {
				fields := make([]string, 0, len(data))
				for field := range data {
					fields = append(fields, field)
				}
				sort.Strings(fields)
				return fmt.Errorf("unknown metadata field: %q (the project has: %s)",
					args[0], strings.Join(fields, ", "))
			}
			if str, isStr := val.(string); isStr {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), str)
				return err
			}
			return writeStructured(cmd.OutOrStdout(), format, val)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output `FORMAT`: 'json' or 'yaml'")
	cliutil.SetEnv(cmd, config.EnvClassifiersNoVerify)
	argparser.AddCommand(cliutil.SetGroup(cmd, groupProject))
}
