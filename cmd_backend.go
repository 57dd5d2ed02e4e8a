// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datawire/pybuild/pkg/backend"
	"github.com/datawire/pybuild/pkg/cliutil"
	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/plugin"
)

func init() {
	var configSettings []string
	cmd := &cobra.Command{
		Use:   "backend [flags] HOOK [DEST_DIR]",
		Short: "Run a PEP 517 build-backend hook",
		Long: "Run one of the PEP 517/660 build-backend hooks against the project, for " +
			"use by a thin in-process shim that a frontend imports.  HOOK is one of: " +
			strings.Join(backend.Hooks, ", ") + "." +
			"\n\n" +
			"The build_* and prepare_metadata_* hooks write to DEST_DIR and print the " +
			"base name of what they wrote.  The get_requires_* hooks print a JSON list of " +
			"requirements.",
		Example: "" +
			"  pybuild backend get_requires_for_build_wheel\n" +
			"  pybuild backend --config-setting editable_mode=strict build_editable dist/\n",
		Args: cliutil.WrapPositionalArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			hook := args[0]
			var directory string
			if len(args) > 1 {
				directory = args[1]
			} else if !strings.HasPrefix(hook, "get_requires_") {
				return cliutil.FlagErrorFunc(cmd, fmt.Errorf("hook %q requires a DEST_DIR", hook))
			}
			settingsMap, err := cliutil.ParseKeyValues(configSettings)
			if err != nil {
				return cliutil.FlagErrorFunc(cmd, fmt.Errorf("--config-setting: %w", err))
			}

			b := &backend.Backend{
				Root:     globalFlags.Project,
				Registry: plugin.Default,
				Settings: settings,
			}
			result, err := b.Call(ctx, hook, directory, backend.ConfigSettings(settingsMap))
			if err != nil {
				return err
			}
			switch result := result.(type) {
			case string:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
			default:
				var bs []byte
				if bs, err = json.Marshal(result); err == nil {
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", bs)
				}
			}
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&configSettings, "config-setting", "C", nil,
		"Pass a `KEY=VALUE` config setting to the hook; may be given more than once")
	cliutil.SetEnv(cmd, config.EnvBuildHooksEnable, config.EnvBuildNoHooks, config.EnvBuildLocation)
	argparser.AddCommand(cliutil.SetGroup(cmd, groupBuild))
}
