// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Command annotations that HelpTemplate understands.
const (
	// GroupAnnotation names the heading that a subcommand is listed under in its parent's help.
	GroupAnnotation = "pybuild.group"
	// EnvAnnotation is a comma-separated list of the environment variables a command reads.
	EnvAnnotation = "pybuild.env"
)

// DefaultGroup is the heading for subcommands without a GroupAnnotation; it is listed last.
const DefaultGroup = "Available Commands"

func annotate(cmd *cobra.Command, key, val string) {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[key] = val
}

// SetGroup sets the heading that cmd is listed under in its parent's help text.
func SetGroup(cmd *cobra.Command, group string) *cobra.Command {
	annotate(cmd, GroupAnnotation, group)
	return cmd
}

// SetEnv records the environment variables that cmd reads, for its help text.
func SetEnv(cmd *cobra.Command, vars ...string) *cobra.Command {
	annotate(cmd, EnvAnnotation, strings.Join(vars, ","))
	return cmd
}

// A CommandGroup is a heading in a help text, and the subcommands listed under it.
type CommandGroup struct {
	Title    string
	Commands []*cobra.Command
}

// CommandGroups returns cmd's available subcommands (and "help"), grouped by GroupAnnotation.
// Groups are ordered by their first subcommand, except that DefaultGroup is always last.
func CommandGroups(cmd *cobra.Command) []CommandGroup {
	var groups []CommandGroup
	index := make(map[string]int)
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() && sub.Name() != "help" {
			continue
		}
		title := sub.Annotations[GroupAnnotation]
		if title == "" {
			title = DefaultGroup
		}
		i, ok := index[title]
		if !ok {
			i = len(groups)
			index[title] = i
			groups = append(groups, CommandGroup{Title: title})
		}
		groups[i].Commands = append(groups[i].Commands, sub)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Title != DefaultGroup && groups[j].Title == DefaultGroup
	})
	return groups
}

// EnvVars returns the environment variables recorded by SetEnv, sorted.
func EnvVars(cmd *cobra.Command) []string {
	var ret []string
	for _, name := range strings.Split(cmd.Annotations[EnvAnnotation], ",") {
		if name = strings.TrimSpace(name); name != "" {
			ret = append(ret, name)
		}
	}
	sort.Strings(ret)
	return ret
}

func init() {
	cobra.AddTemplateFunc("getTerminalWidth", GetTerminalWidth)
	cobra.AddTemplateFunc("wrap", Wrap)
	cobra.AddTemplateFunc("wrapIndent", WrapIndent)
	cobra.AddTemplateFunc("commandGroups", CommandGroups)
	cobra.AddTemplateFunc("envVars", EnvVars)
	cobra.AddTemplateFunc("add", func(args ...int) int {
		ret := 0
		for _, arg := range args {
			ret += arg
		}
		return ret
	})
}

// HelpTemplate is the help text layout for every pybuild command; set it on the root command
// with SetHelpTemplate.
const HelpTemplate = `Usage: {{ .UseLine }}

{{- /* Summary ------------------------------------------------------------ */}}
{{- if .Short }}
{{ .Short }}
{{- end }}

{{- /* Description -------------------------------------------------------- */}}
{{- if .Long }}

{{ .Long | wrap getTerminalWidth | trimTrailingWhitespaces }}
{{- end }}

{{- /* Examples ----------------------------------------------------------- */}}
{{- if .HasExample }}

Examples:
{{ .Example | trimTrailingWhitespaces }}
{{- end }}

{{- /* Subcommands, by group ---------------------------------------------- */}}
{{- range commandGroups . }}

{{ .Title }}:
  {{- range .Commands }}
    {{- "\n" }}  {{ rpad .Name .NamePadding }}   {{ .Short | wrapIndent (add .NamePadding 5) getTerminalWidth }}
  {{- end }}
{{- end }}

{{- /* Flags -------------------------------------------------------------- */}}
{{- if .HasAvailableLocalFlags }}

Flags:
{{ getTerminalWidth | .LocalFlags.FlagUsagesWrapped | trimTrailingWhitespaces }}
{{- end }}
{{- if .HasAvailableInheritedFlags }}

Global Flags:
{{ getTerminalWidth | .InheritedFlags.FlagUsagesWrapped | trimTrailingWhitespaces }}
{{- end }}

{{- /* Environment -------------------------------------------------------- */}}
{{- with envVars . }}

Environment:
  {{- range . }}
    {{- "\n" }}  {{ . }}
  {{- end }}
{{- end }}

{{- /* Footer ------------------------------------------------------------- */}}
{{- if .HasAvailableSubCommands }}

Use "{{ .CommandPath }} [command] --help" for more information about a command.
{{- end }}
`
