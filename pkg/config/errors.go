// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
)

// Error is a configuration value that is present (or absent) but unacceptable.
type Error struct {
	Path string // dotted path, such as "tool.hatch.version.path"
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("field `%s` %s", e.Path, e.Msg)
}

// TypeError is a configuration value of the wrong type.
type TypeError struct {
	Path string
	Want string // "a string", "an array of strings", ...
	Got  interface{}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("field `%s` must be %s, not %s", e.Path, e.Want, typeName(e.Got))
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int64, int, float64:
		return "a number"
	case []interface{}, []map[string]interface{}:
		return "an array"
	case map[string]interface{}:
		return "a table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
