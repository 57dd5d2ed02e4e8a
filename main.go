// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Command pybuild builds Python projects described by a pyproject.toml, and serves as their
// PEP 517 build backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/google/go-containerregistry/pkg/logs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/datawire/pybuild/pkg/builder"
	"github.com/datawire/pybuild/pkg/cliutil"
	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/metadata"
	"github.com/datawire/pybuild/pkg/plugin"
)

// Headings for the subcommand listing in the help text.
const (
	groupBuild   = "Build Commands"
	groupProject = "Project Commands"
)

// Version is set at link time.
var Version = "(devel)"

var globalFlags struct {
	Verbose int
	Project string
}

var (
	logger   = logrus.New()
	settings = config.NewSettings()
)

var argparser = &cobra.Command{
	Use:   "pybuild {[flags]|SUBCOMMAND...}",
	Short: "Build Python projects",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,

	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		switch {
		case globalFlags.Verbose >= 2:
			logger.SetLevel(logrus.TraceLevel)
		case globalFlags.Verbose == 1:
			logger.SetLevel(logrus.DebugLevel)
		}
	},

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc will handle it
}

func init() {
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
	argparser.PersistentFlags().CountVarP(&globalFlags.Verbose, "verbose", "v",
		"Log more; may be given twice")
	argparser.PersistentFlags().StringVarP(&globalFlags.Project, "project", "p", ".",
		"Operate on the project in `DIR`")
}

// loadProject loads the --project directory's pyproject.toml.
func loadProject() (*metadata.Project, error) {
	return metadata.Load(globalFlags.Project, plugin.Default, settings)
}

func main() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	logger.SetLevel(logrus.InfoLevel)
	ctx := dlog.WithLogger(context.Background(), dlog.WrapLogrus(logger))

	logs.Warn = dlog.StdLogger(ctx, dlog.LogLevelWarn)
	logs.Progress = dlog.StdLogger(ctx, dlog.LogLevelInfo)
	logs.Debug = dlog.StdLogger(ctx, dlog.LogLevelDebug)

	builder.Generator = "pybuild " + Version

	if err := argparser.ExecuteContext(ctx); err != nil {
		var exit cliutil.ExitCode
		if errors.As(err, &exit) {
			os.Exit(int(exit))
		}
		fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
