// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package plugin

// LegacyGroup is the name of the single shared legacy registry.
const LegacyGroup = "hatch"

// A LegacyModule is an entry in the legacy registry.  In addition to ModuleName, it may
// implement any of the per-type hook interfaces below; a module that doesn't implement the
// hook for a type contributes nothing to that type.
type LegacyModule interface {
	ModuleName() string
}

type (
	LegacyBuilderHook interface {
		HatchRegisterBuilder() []Class
	}
	LegacyBuildHookHook interface {
		HatchRegisterBuildHook() []Class
	}
	LegacyMetadataHookHook interface {
		HatchRegisterMetadataHook() []Class
	}
	LegacyVersionSourceHook interface {
		HatchRegisterVersionSource() []Class
	}
	LegacyVersionSchemeHook interface {
		HatchRegisterVersionScheme() []Class
	}
	LegacyEnvironmentHook interface {
		HatchRegisterEnvironment() []Class
	}
	LegacyEnvironmentCollectorHook interface {
		HatchRegisterEnvironmentCollector() []Class
	}
	LegacyPublisherHook interface {
		HatchRegisterPublisher() []Class
	}
)

func legacyClasses(mod LegacyModule, typ Type) []Class {
	switch typ {
	case TypeBuilder:
		if hook, ok := mod.(LegacyBuilderHook); ok {
			return hook.HatchRegisterBuilder()
		}
	case TypeBuildHook:
		if hook, ok := mod.(LegacyBuildHookHook); ok {
			return hook.HatchRegisterBuildHook()
		}
	case TypeMetadataHook:
		if hook, ok := mod.(LegacyMetadataHookHook); ok {
			return hook.HatchRegisterMetadataHook()
		}
	case TypeVersionSource:
		if hook, ok := mod.(LegacyVersionSourceHook); ok {
			return hook.HatchRegisterVersionSource()
		}
	case TypeVersionScheme:
		if hook, ok := mod.(LegacyVersionSchemeHook); ok {
			return hook.HatchRegisterVersionScheme()
		}
	case TypeEnvironment:
		if hook, ok := mod.(LegacyEnvironmentHook); ok {
			return hook.HatchRegisterEnvironment()
		}
	case TypeEnvironmentCollector:
		if hook, ok := mod.(LegacyEnvironmentCollectorHook); ok {
			return hook.HatchRegisterEnvironmentCollector()
		}
	case TypePublisher:
		if hook, ok := mod.(LegacyPublisherHook); ok {
			return hook.HatchRegisterPublisher()
		}
	}
	return nil
}
