// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Environment variables that influence builds and version updates.
const (
	EnvBuildClean           = "HATCH_BUILD_CLEAN"
	EnvBuildCleanHooksAfter = "HATCH_BUILD_CLEAN_HOOKS_AFTER"
	EnvBuildHooksOnly       = "HATCH_BUILD_HOOKS_ONLY"
	EnvBuildNoHooks         = "HATCH_BUILD_NO_HOOKS"
	EnvBuildHooksEnable     = "HATCH_BUILD_HOOKS_ENABLE"
	EnvBuildHookEnablePfx   = "HATCH_BUILD_HOOK_ENABLE_"
	EnvBuildLocation        = "HATCH_BUILD_LOCATION"
	EnvVersionValidateBump  = "HATCH_VERSION_VALIDATE_BUMP"
	EnvClassifiersNoVerify  = "HATCH_METADATA_CLASSIFIERS_NO_VERIFY"
	EnvPython               = "HATCH_PYTHON"
)

// Settings are the process-level knobs that come from the environment (or from command-line
// flags bound over them), as opposed to the project's pyproject.toml.
type Settings struct {
	v *viper.Viper
}

func envKey(env string) string {
	return strings.ToLower(strings.TrimPrefix(env, "HATCH_"))
}

// NewSettings returns Settings backed by the process environment.
func NewSettings() *Settings {
	v := viper.New()
	v.SetEnvPrefix("HATCH")
	v.AutomaticEnv()
	v.SetDefault(envKey(EnvPython), "python3")
	return &Settings{v: v}
}

// BindFlag lets a command-line flag override the environment variable env.
func (s *Settings) BindFlag(env string, flag *pflag.Flag) error {
	return s.v.BindPFlag(envKey(env), flag)
}

// Set overrides a setting; it is mostly useful for tests.
func (s *Settings) Set(env string, val interface{}) {
	s.v.Set(envKey(env), val)
}

func (s *Settings) flag(env string) bool {
	return s.v.GetBool(envKey(env))
}

func (s *Settings) BuildClean() bool           { return s.flag(EnvBuildClean) }
func (s *Settings) BuildCleanHooksAfter() bool { return s.flag(EnvBuildCleanHooksAfter) }
func (s *Settings) HooksOnly() bool            { return s.flag(EnvBuildHooksOnly) }
func (s *Settings) NoHooks() bool              { return s.flag(EnvBuildNoHooks) }
func (s *Settings) HooksEnable() bool          { return s.flag(EnvBuildHooksEnable) }
func (s *Settings) ClassifiersNoVerify() bool  { return s.flag(EnvClassifiersNoVerify) }

// BuildLocation is the HATCH_BUILD_LOCATION output directory override, or "" if unset.
func (s *Settings) BuildLocation() string {
	return s.v.GetString(envKey(EnvBuildLocation))
}

// HookEnabled reports the per-hook override HATCH_BUILD_HOOK_ENABLE_<NAME>; set is false if
// the variable is not present.
func (s *Settings) HookEnabled(name string) (enabled, set bool) {
	key := envKey(EnvBuildHookEnablePfx + strings.ToUpper(name))
	if !s.v.IsSet(key) {
		return false, false
	}
	return s.v.GetBool(key), true
}

// ValidateBump reports the HATCH_VERSION_VALIDATE_BUMP override; set is false if the
// variable is not present, in which case the project configuration decides.
func (s *Settings) ValidateBump() (validate, set bool) {
	key := envKey(EnvVersionValidateBump)
	if !s.v.IsSet(key) {
		return false, false
	}
	return s.v.GetBool(key), true
}

// Python returns the command line of the interpreter used to run Python code (code version
// sources, custom plugins).  The setting is split with shell quoting rules, so that
// HATCH_PYTHON='/opt/py/bin/python3 -I' works.  A nil Settings gives the default.
func (s *Settings) Python() ([]string, error) {
	str := "python3"
	if s != nil {
		str = s.v.GetString(envKey(EnvPython))
	}
	args, err := shellquote.Split(str)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvPython, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: empty command", EnvPython)
	}
	return args, nil
}
