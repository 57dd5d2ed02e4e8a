// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

type QuickConfig = quick.Config

// staticArgs converts the hand-written testcases for a function of type fnType to argument
// lists, reporting (and skipping) any that have the wrong arity.
func staticArgs(t *testing.T, fnType reflect.Type, testcases [][]interface{}) map[int][]reflect.Value {
	t.Helper()
	ret := make(map[int][]reflect.Value, len(testcases))
	for i, tc := range testcases {
		if len(tc) != fnType.NumIn() {
			t.Errorf("static#%d has %d args, but the function takes %d args", i, len(tc), fnType.NumIn())
			continue
		}
		args := make([]reflect.Value, len(tc))
		for j := range args {
			args[j] = reflect.ValueOf(tc[j])
		}
		ret[i] = args
	}
	return ret
}

// QuickCheck is testing/quick.Check, plus a list of static inputs that are always checked.
func QuickCheck(t *testing.T, fn interface{}, cfg QuickConfig, testcases ...[]interface{}) {
	t.Helper()
	err := quick.Check(fn, &cfg)
	assert.NoError(t, err)
	var setupErr quick.SetupError
	if errors.As(err, &setupErr) {
		return
	}

	fnVal := reflect.ValueOf(fn)
	for i, args := range staticArgs(t, fnVal.Type(), testcases) {
		if !fnVal.Call(args)[0].Bool() {
			assert.NoError(t, fmt.Errorf("static%w", &quick.CheckError{
				Count: i + 1,
				In:    toInterfaces(args),
			}))
		}
	}
}

// QuickCheckEqual is testing/quick.CheckEqual, plus a list of static inputs that are always
// checked.
func QuickCheckEqual(t *testing.T, fn1, fn2 interface{}, cfg QuickConfig, testcases ...[]interface{}) {
	t.Helper()
	err := quick.CheckEqual(fn1, fn2, &cfg)
	assert.NoError(t, err)
	var setupErr quick.SetupError
	if errors.As(err, &setupErr) {
		return
	}

	fn1Val, fn2Val := reflect.ValueOf(fn1), reflect.ValueOf(fn2)
	for i, args := range staticArgs(t, fn1Val.Type(), testcases) {
		out1 := toInterfaces(fn1Val.Call(args))
		out2 := toInterfaces(fn2Val.Call(args))
		if !reflect.DeepEqual(out1, out2) {
			assert.NoError(t, fmt.Errorf("static%w", &quick.CheckEqualError{
				CheckError: quick.CheckError{Count: i + 1, In: toInterfaces(args)},
				Out1:       out1,
				Out2:       out2,
			}))
		}
	}
}

func toInterfaces(values []reflect.Value) []interface{} {
	ret := make([]interface{}, len(values))
	for i, val := range values {
		ret[i] = val.Interface()
	}
	return ret
}
