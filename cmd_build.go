// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/datawire/pybuild/pkg/builder"
	"github.com/datawire/pybuild/pkg/cliutil"
	"github.com/datawire/pybuild/pkg/config"
)

// parseTargetArg splits "TARGET[:VERSION,...]".
func parseTargetArg(arg string) (target string, versions []string) {
	target = arg
	if colon := strings.IndexByte(arg, ':'); colon >= 0 {
		target = arg[:colon]
		for _, version := range strings.Split(arg[colon+1:], ",") {
			if version = strings.TrimSpace(version); version != "" {
				versions = append(versions, version)
			}
		}
	}
	return target, versions
}

func init() {
	var flags struct {
		Targets   []string
		CleanOnly bool
	}
	cmd := &cobra.Command{
		Use:   "build [flags] [OUT_DIR]",
		Short: "Build the project's artifacts",
		Long: "Build one or more targets of the project, writing the artifacts to OUT_DIR " +
			"(default: each target's configured directory, usually 'dist').  The path of " +
			"each artifact is printed as it is written." +
			"\n\n" +
			"Targets are given as TARGET or TARGET:VERSION,VERSION; for example " +
			"'-t wheel:standard,editable'.  Without -t, the targets configured in " +
			"[tool.hatch.build.targets] are built, or else sdist and wheel." +
			"\n\n" +
			"The --clean, --clean-hooks-after, --hooks-only, and --no-hooks flags " +
			"override the HATCH_BUILD_CLEAN, HATCH_BUILD_CLEAN_HOOKS_AFTER, " +
			"HATCH_BUILD_HOOKS_ONLY, and HATCH_BUILD_NO_HOOKS environment variables.",
		Example: "" +
			"  pybuild build\n" +
			"  pybuild build -t wheel:standard,editable\n" +
			"  pybuild build -t sdist -t wheel dist/\n",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			project, err := loadProject()
			if err != nil {
				return err
			}
			b := builder.New(project)

			var directory string
			if len(args) > 0 {
				if directory, err = filepath.Abs(args[0]); err != nil {
					return err
				}
			}
			targets := flags.Targets
			if len(targets) == 0 {
				if targets, err = b.ConfiguredTargets(); err != nil {
					return err
				}
			}

			for _, arg := range targets {
				target, versions := parseTargetArg(arg)
				dlog.Debugf(ctx, "target %q versions %q", target, versions)
				artifacts := b.Build(ctx, builder.BuildOptions{
					Target:    target,
					Versions:  versions,
					Directory: directory,
					CleanOnly: flags.CleanOnly,
				})
				for artifacts.Next() {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), relPath(artifacts.Path())); err != nil {
						_ = artifacts.Close()
						return err
					}
				}
				if err := artifacts.Err(); err != nil {
					return err
				}
				if err := artifacts.Close(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&flags.Targets, "target", "t", nil,
		"Build `TARGET[:VERSIONS]`; may be given more than once")
	cmd.Flags().BoolVar(&flags.CleanOnly, "clean-only", false,
		"Remove existing artifacts (and run the hooks' clean step) without building")
	for _, flag := range []struct {
		Name string
		Env  string
		Help string
	}{
		{"clean", config.EnvBuildClean, "Remove existing artifacts before building"},
		{"clean-hooks-after", config.EnvBuildCleanHooksAfter, "Run the hooks' clean step after each build"},
		{"hooks-only", config.EnvBuildHooksOnly, "Run the build hooks without building anything"},
		{"no-hooks", config.EnvBuildNoHooks, "Do not run any build hooks"},
	} {
		cmd.Flags().Bool(flag.Name, false, flag.Help)
		if err := settings.BindFlag(flag.Env, cmd.Flags().Lookup(flag.Name)); err != nil {
			panic(err)
		}
	}
	cliutil.SetEnv(cmd,
		config.EnvBuildClean, config.EnvBuildCleanHooksAfter, config.EnvBuildHooksOnly,
		config.EnvBuildNoHooks, config.EnvBuildHooksEnable, config.EnvBuildHookEnablePfx+"<NAME>",
		config.EnvBuildLocation)
	argparser.AddCommand(cliutil.SetGroup(cmd, groupBuild))
}

// relPath shortens an artifact path for display, if it is within the working directory.
func relPath(filename string) string {
	rel, err := filepath.Rel(".", filename)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filename
	}
	return rel
}
