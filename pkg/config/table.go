// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"sort"
)

// Table is a TOML table that knows where it lives in the document, so that its accessors can
// report errors by dotted path.  The zero Table is an empty table at the document root.
type Table struct {
	path  string
	data  map[string]interface{}
	order map[string]int // dotted key path => position in the document
}

// NewTable wraps raw decoded TOML data.
func NewTable(path string, data map[string]interface{}) Table {
	return Table{path: path, data: data}
}

// Path returns the dotted path of the table itself.
func (t Table) Path() string {
	return t.path
}

// KeyPath returns the dotted path of key within the table.
func (t Table) KeyPath(key string) string {
	if t.path == "" {
		return key
	}
	return t.path + "." + key
}

// Map returns the underlying data; callers must not modify it.
func (t Table) Map() map[string]interface{} {
	return t.data
}

func (t Table) Len() int {
	return len(t.data)
}

// Keys returns the keys of the table in the order that they appear in the document; keys that
// didn't come from a document (or tables built with NewTable) sort alphabetically after them.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t.data))
	for k := range t.data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		iPos, iOK := t.order[t.KeyPath(keys[i])]
		jPos, jOK := t.order[t.KeyPath(keys[j])]
		switch {
		case iOK && jOK:
			return iPos < jPos
		case iOK != jOK:
			return iOK
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func (t Table) Has(key string) bool {
	_, ok := t.data[key]
	return ok
}

func (t Table) Raw(key string) (interface{}, bool) {
	val, ok := t.data[key]
	return val, ok
}

// String returns the string value of key; ok is false if the key is absent.
func (t Table) String(key string) (val string, ok bool, err error) {
	raw, ok := t.data[key]
	if !ok {
		return "", false, nil
	}
	str, isStr := raw.(string)
	if !isStr {
		return "", true, &TypeError{Path: t.KeyPath(key), Want: "a string", Got: raw}
	}
	return str, true, nil
}

// StringDefault is like String, but returns def if the key is absent.
func (t Table) StringDefault(key, def string) (string, error) {
	str, ok, err := t.String(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return str, nil
}

// RequiredString is like String, but a missing or empty value is an *Error.
func (t Table) RequiredString(key string) (string, error) {
	str, ok, err := t.String(key)
	if err != nil {
		return "", err
	}
	if !ok || str == "" {
		return "", &Error{Path: t.KeyPath(key), Msg: "is required"}
	}
	return str, nil
}

// Bool returns the boolean value of key, or def if the key is absent.
func (t Table) Bool(key string, def bool) (bool, error) {
	raw, ok := t.data[key]
	if !ok {
		return def, nil
	}
	val, isBool := raw.(bool)
	if !isBool {
		return false, &TypeError{Path: t.KeyPath(key), Want: "a boolean", Got: raw}
	}
	return val, nil
}

// StringSlice returns the array-of-strings value of key, or nil if the key is absent.
func (t Table) StringSlice(key string) ([]string, error) {
	raw, ok := t.data[key]
	if !ok {
		return nil, nil
	}
	list, err := t.Array(key)
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(list))
	for _, item := range list {
		str, isStr := item.(string)
		if !isStr {
			return nil, &TypeError{Path: t.KeyPath(key), Want: "an array of strings", Got: raw}
		}
		ret = append(ret, str)
	}
	return ret, nil
}

// Array returns the array value of key, or nil if the key is absent.
func (t Table) Array(key string) ([]interface{}, error) {
	raw, ok := t.data[key]
	if !ok {
		return nil, nil
	}
	switch list := raw.(type) {
	case []interface{}:
		return list, nil
	case []map[string]interface{}:
		ret := make([]interface{}, 0, len(list))
		for _, item := range list {
			ret = append(ret, item)
		}
		return ret, nil
	default:
		return nil, &TypeError{Path: t.KeyPath(key), Want: "an array", Got: raw}
	}
}

// Table returns the sub-table at key; an absent key yields an empty table.
func (t Table) Table(key string) (Table, error) {
	raw, ok := t.data[key]
	if !ok {
		return Table{path: t.KeyPath(key), order: t.order}, nil
	}
	sub, isMap := raw.(map[string]interface{})
	if !isMap {
		return Table{}, &TypeError{Path: t.KeyPath(key), Want: "a table", Got: raw}
	}
	return Table{path: t.KeyPath(key), data: sub, order: t.order}, nil
}

// Lookup walks a series of nested tables.
func (t Table) Lookup(keys ...string) (Table, error) {
	cur := t
	for _, key := range keys {
		var err error
		cur, err = cur.Table(key)
		if err != nil {
			return Table{}, err
		}
	}
	return cur, nil
}

// Merge returns a new table holding t's entries overlaid with those of over; t and over are
// not modified.  The result keeps t's path and key order.
func (t Table) Merge(over Table) Table {
	merged := make(map[string]interface{}, len(t.data)+len(over.data))
	for k, v := range t.data {
		merged[k] = v
	}
	for k, v := range over.data {
		merged[k] = v
	}
	return Table{path: t.path, data: merged, order: t.order}
}

// WithData returns a table at t's path, with t's key order, holding data instead of t's
// entries.
func (t Table) WithData(data map[string]interface{}) Table {
	return Table{path: t.path, data: data, order: t.order}
}

// Copy returns a deep copy of the table's data, suitable for handing to code that may modify
// it.
func (t Table) Copy() map[string]interface{} {
	return copyValue(t.data).(map[string]interface{})
}

func copyValue(val interface{}) interface{} {
	switch val := val.(type) {
	case map[string]interface{}:
		ret := make(map[string]interface{}, len(val))
		for k, v := range val {
			ret[k] = copyValue(v)
		}
		return ret
	case []map[string]interface{}:
		ret := make([]interface{}, 0, len(val))
		for _, v := range val {
			ret = append(ret, copyValue(v))
		}
		return ret
	case []interface{}:
		ret := make([]interface{}, 0, len(val))
		for _, v := range val {
			ret = append(ret, copyValue(v))
		}
		return ret
	default:
		return val
	}
}
