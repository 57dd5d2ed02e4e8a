// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep440

import (
	"math/rand"
	"reflect"
	"testing/quick"

	"k8s.io/apimachinery/pkg/util/intstr"
)

func randBool(rand *rand.Rand) bool {
	return rand.Intn(2) == 1
}

func randSeg(rand *rand.Rand) int {
	return rand.Intn(3000)
}

func randIntPtr(rand *rand.Rand) *int {
	if !randBool(rand) {
		return nil
	}
	n := randSeg(rand)
	return &n
}

func clamp(low, val, high int) int {
	switch {
	case val < low:
		return low
	case val > high:
		return high
	default:
		return val
	}
}

func randLabel(rand *rand.Rand, size int) string {
	const (
		alpha    = "abcdefghijklmnopqrstuvwxyz"
		alphadig = alpha + "0123456789"
	)
	buf := make([]byte, 1+rand.Intn(clamp(1, size, 10)))
	buf[0] = alpha[rand.Intn(len(alpha))]
	for i := 1; i < len(buf); i++ {
		buf[i] = alphadig[rand.Intn(len(alphadig))]
	}
	return string(buf)
}

func (ver PublicVersion) generate(rand *rand.Rand, size int) PublicVersion {
	if randBool(rand) {
		ver.Epoch = randSeg(rand)
	}
	ver.Release = make([]int, 1+rand.Intn(clamp(1, size, 10)))
	for i := range ver.Release {
		ver.Release[i] = randSeg(rand)
	}
	if randBool(rand) {
		ver.Pre = &PreRelease{
			L: []string{"a", "b", "rc"}[rand.Intn(3)],
			N: randSeg(rand),
		}
	}
	ver.Post = randIntPtr(rand)
	ver.Dev = randIntPtr(rand)
	return ver
}

// Generate implements testing/quick.Generator.
func (ver PublicVersion) Generate(rand *rand.Rand, size int) reflect.Value {
	return reflect.ValueOf(ver.generate(rand, size))
}

func (ver LocalVersion) generate(rand *rand.Rand, size int) LocalVersion {
	ver.PublicVersion = ver.PublicVersion.generate(rand, size)
	if randBool(rand) {
		ver.Local = make([]intstr.IntOrString, 1+rand.Intn(clamp(1, size, 5)))
		for i := range ver.Local {
			if randBool(rand) {
				ver.Local[i] = intstr.FromInt(randSeg(rand))
			} else {
				ver.Local[i] = intstr.FromString(randLabel(rand, size))
			}
		}
	}
	return ver
}

// Generate implements testing/quick.Generator.
func (ver LocalVersion) Generate(rand *rand.Rand, size int) reflect.Value {
	return reflect.ValueOf(ver.generate(rand, size))
}

//nolint:exhaustivestruct
var _ quick.Generator = LocalVersion{}

// Generate implements testing/quick.Generator.
func (op CmpOp) Generate(rand *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(CmpOp(rand.Intn(int(_CmpOpEnd))))
}
