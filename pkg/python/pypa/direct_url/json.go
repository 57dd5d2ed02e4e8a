// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package direct_url

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// jsonDumps is like json.Marshal, but matches the whitespace of Python's `json.dumps` with the
// default separators (", " and ": ") and sorted keys.
func jsonDumps(typedObj interface{}) ([]byte, error) {
	// Round-trip through JSON to get rid of the Go types (and their field order).
	bs, err := json.Marshal(typedObj)
	if err != nil {
		return nil, err
	}
	var obj interface{}
	if err := json.Unmarshal(bs, &obj); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dumpValue(&buf, obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dumpValue(buf *bytes.Buffer, obj interface{}) error {
	switch obj := obj.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(obj))
		for key := range obj {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := dumpValue(buf, key); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := dumpValue(buf, obj[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []interface{}:
		buf.WriteByte('[')
		for i, item := range obj {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := dumpValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case nil, bool, float64, string:
		bs, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		buf.Write(bs)
	default:
		return fmt.Errorf("unexpected JSON type %T", obj)
	}
	return nil
}
