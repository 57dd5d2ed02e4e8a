// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/datawire/pybuild/pkg/cliutil"
	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/depsync"
	"github.com/datawire/pybuild/pkg/python/dists"
	"github.com/datawire/pybuild/pkg/python/pep508"
	"github.com/datawire/pybuild/pkg/python/pyinspect"
)

var argparserDep = &cobra.Command{
	Use:   "dep {[flags]|SUBCOMMAND...}",
	Short: "Inspect the project's dependencies",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(cliutil.SetGroup(argparserDep, groupProject))
}

func init() {
	var flags struct {
		EnvironmentFile string
		Python          string
	}
	cmd := &cobra.Command{
		Use:   "check [flags] [REQUIREMENT...]",
		Short: "Check whether dependencies are installed",
		Long: "Check whether an interpreter's environment satisfies the project's " +
			"dependencies (or the given PEP 508 requirements), without installing " +
			"anything.  Exits 0 if everything is in sync, and 1 if not." +
			"\n\n" +
			"Installed distributions are found on the interpreter's sys.path.  " +
			"Environment markers are evaluated against the interpreter, unless " +
			"--environment-file names a YAML file of marker variables to use instead." +
			"\n\n" +
			"Requirements on a VCS URL without a pinned commit are checked against the " +
			"remote repository with 'git ls-remote'.",
		Args: cliutil.WrapPositionalArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var reqs []*pep508.Requirement
			if len(args) > 0 {
				for _, arg := range args {
					req, err := pep508.ParseRequirement(arg)
					if err != nil {
						return fmt.Errorf("invalid requirement %q: %w", arg, err)
					}
					reqs = append(reqs, req)
				}
			} else {
				project, err := loadProject()
				if err != nil {
					return err
				}
				core, err := project.Core(ctx)
				if err != nil {
					return err
				}
				reqs = core.Dependencies
			}

			python, err := settings.Python()
			if err != nil {
				return err
			}
			if flags.Python != "" {
				if python, err = shellquote.Split(flags.Python); err != nil {
					return fmt.Errorf("--python: %w", err)
				}
			}
			info, err := pyinspect.Dynamic(ctx, python...)
			if err != nil {
				return err
			}
			env := info.MarkerEnvironment
			if flags.EnvironmentFile != "" {
				if env, err = depsync.LoadEnvironment(flags.EnvironmentFile); err != nil {
					return err
				}
			}

			checker := &depsync.Checker{
				Dists:    dists.NewCache(&dists.SiteSource{Path: info.SysPath}),
				Resolver: depsync.GitResolver{},
			}
			if !checker.DependenciesInSync(ctx, reqs, env) {
				dlog.Infof(ctx, "dependencies are not in sync")
				return cliutil.ExitCode(1)
			}
			dlog.Debugf(ctx, "all %d dependencies are in sync", len(reqs))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.EnvironmentFile, "environment-file", "",
		"Evaluate environment markers against the variables in `YAML_FILE`")
	cmd.Flags().StringVar(&flags.Python, "python", "",
		"Check the environment of the `INTERPRETER` command (default: $"+config.EnvPython+" or python3)")
	argparserDep.AddCommand(cliutil.SetEnv(cmd, config.EnvPython))
}
