// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package hooks

// BuildData is the mutable state that build hooks share with the target being built.  Hooks
// (including out-of-process ones, which see it as JSON) may change these keys:
//
//	artifacts               []string           extra files to include, even if VCS-ignored
//	force_include           map[string]string  source path => archive path
//	build_hooks             []string           names of the hooks that are running (read-only)
//
// and, for wheels:
//
//	infer_tag               bool    use the most specific tag of the current interpreter
//	pure_python             bool    false means install in to platlib
//	tag                     string  explicit wheel tag
//	dependencies            []string  extra Requires-Dist entries
//	force_include_editable  map[string]string  force_include for editable wheels
//	extra_metadata          map[string]string  source => path within .dist-info/extra_metadata/
//	shared_data             map[string]string  source => path within .data/data/
type BuildData map[string]interface{}

// NewBuildData returns the BuildData a target starts with.
func NewBuildData(hookNames []string) BuildData {
	names := make([]interface{}, 0, len(hookNames))
	for _, name := range hookNames {
		names = append(names, name)
	}
	return BuildData{
		"artifacts":     []interface{}{},
		"force_include": map[string]interface{}{},
		"build_hooks":   names,
	}
}

// NewWheelBuildData is NewBuildData plus the wheel-only keys.
func NewWheelBuildData(hookNames []string) BuildData {
	data := NewBuildData(hookNames)
	data["infer_tag"] = false
	data["pure_python"] = true
	data["tag"] = ""
	data["dependencies"] = []interface{}{}
	data["force_include_editable"] = map[string]interface{}{}
	data["extra_metadata"] = map[string]interface{}{}
	data["shared_data"] = map[string]interface{}{}
	return data
}

func (d BuildData) Bool(key string) bool {
	val, _ := d[key].(bool)
	return val
}

func (d BuildData) String(key string) string {
	val, _ := d[key].(string)
	return val
}

// StringSlice returns a list-of-strings value; non-string members are ignored.
func (d BuildData) StringSlice(key string) []string {
	switch list := d[key].(type) {
	case []string:
		return list
	case []interface{}:
		ret := make([]string, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok {
				ret = append(ret, str)
			}
		}
		return ret
	default:
		return nil
	}
}

// AppendString appends to a list-of-strings value.
func (d BuildData) AppendString(key string, vals ...string) {
	list, _ := d[key].([]interface{})
	if strs, ok := d[key].([]string); ok {
		for _, str := range strs {
			list = append(list, str)
		}
	}
	for _, val := range vals {
		list = append(list, val)
	}
	d[key] = list
}

// StringMap returns a string-to-string map value; non-string values are ignored.
func (d BuildData) StringMap(key string) map[string]string {
	ret := make(map[string]string)
	switch m := d[key].(type) {
	case map[string]string:
		for k, v := range m {
			ret[k] = v
		}
	case map[string]interface{}:
		for k, v := range m {
			if str, ok := v.(string); ok {
				ret[k] = str
			}
		}
	}
	return ret
}

// SetString sets one entry of a string-to-string map value.
func (d BuildData) SetString(key, mapKey, val string) {
	m, ok := d[key].(map[string]interface{})
	if !ok {
		m = make(map[string]interface{})
		for k, v := range d.StringMap(key) {
			m[k] = v
		}
		d[key] = m
	}
	m[mapKey] = val
}
