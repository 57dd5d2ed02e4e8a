// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"fmt"
	"strings"
)

// ParseKeyValues parses repeated "KEY=VALUE" flag values (such as --config-setting) in to a
// multimap.  A value may be empty ("KEY="), but the "=" is required.
func ParseKeyValues(args []string) (map[string][]string, error) {
	ret := make(map[string][]string, len(args))
	for _, arg := range args {
		eq := strings.IndexByte(arg, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("invalid KEY=VALUE pair: %q", arg)
		}
		key := arg[:eq]
		ret[key] = append(ret[key], arg[eq+1:])
	}
	return ret, nil
}
