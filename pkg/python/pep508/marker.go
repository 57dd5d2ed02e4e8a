// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pep508

import (
	"errors"
	"fmt"
	"strings"

	"github.com/datawire/pybuild/pkg/python/pep440"
)

// Environment maps marker variable names (such as "python_version" or "sys_platform") to their
// values for a particular target interpreter.
type Environment map[string]string

// Variables is the list of environment marker variables that may appear in a marker.
var Variables = []string{
	"implementation_name",
	"implementation_version",
	"os_name",
	"platform_machine",
	"platform_python_implementation",
	"platform_release",
	"platform_system",
	"platform_version",
	"python_full_version",
	"python_version",
	"sys_platform",
	"extra",
}

var legacyVariables = map[string]string{
	"os.name":                        "os_name",
	"sys.platform":                   "sys_platform",
	"platform.version":               "platform_version",
	"platform.machine":               "platform_machine",
	"platform.python_implementation": "platform_python_implementation",
	"python_implementation":          "platform_python_implementation",
}

// ErrUndefinedVariable is returned from Evaluate when the marker refers to a variable that is
// not set in the Environment.
var ErrUndefinedVariable = errors.New("undefined environment marker variable")

// Marker is a parsed environment marker: the part of a requirement after the ";".
type Marker struct {
	expr markerExpr
}

// ParseMarker parses a PEP 508 environment marker expression.
func ParseMarker(str string) (*Marker, error) {
	marker, err := parseMarker(str)
	if err != nil {
		return nil, fmt.Errorf("pep508.ParseMarker: %w", err)
	}
	return marker, nil
}

func (m *Marker) String() string {
	var ret strings.Builder
	m.expr.writeTo(&ret, "")
	return ret.String()
}

// Evaluate evaluates the marker against env.  An unset "extra" is treated as the empty string;
// any other unset variable is an error.
func (m *Marker) Evaluate(env Environment) (bool, error) {
	ret, err := m.expr.evaluate(env)
	if err != nil {
		return false, fmt.Errorf("pep508.Marker.Evaluate: %q: %w", m.String(), err)
	}
	return ret, nil
}

// References reports whether the marker refers to the named variable anywhere.
func (m *Marker) References(variable string) bool {
	return m.expr.references(variable)
}

type markerExpr interface {
	evaluate(Environment) (bool, error)
	references(string) bool
	// writeTo writes the expression; parentOp is the boolean operator of the enclosing
	// expression, used to decide whether parenthesis are needed.
	writeTo(ret *strings.Builder, parentOp string)
}

type markerBool struct {
	op       string // "and" or "or"
	lhs, rhs markerExpr
}

func (b markerBool) evaluate(env Environment) (bool, error) {
	lhs, err := b.lhs.evaluate(env)
	if err != nil {
		return false, err
	}
	// Both sides are always evaluated, so that a reference to an undefined variable is
	// reported regardless of short-circuiting.
	rhs, err := b.rhs.evaluate(env)
	if err != nil {
		return false, err
	}
	if b.op == "and" {
		return lhs && rhs, nil
	}
	return lhs || rhs, nil
}

func (b markerBool) references(variable string) bool {
	return b.lhs.references(variable) || b.rhs.references(variable)
}

func (b markerBool) writeTo(ret *strings.Builder, parentOp string) {
	paren := parentOp == "and" && b.op == "or"
	if paren {
		ret.WriteString("(")
	}
	b.lhs.writeTo(ret, b.op)
	ret.WriteString(" " + b.op + " ")
	b.rhs.writeTo(ret, b.op)
	if paren {
		ret.WriteString(")")
	}
}

type markerValue struct {
	variable string
	literal  string
}

func (v markerValue) resolve(env Environment) (string, error) {
	if v.variable == "" {
		return v.literal, nil
	}
	val, ok := env[v.variable]
	if !ok {
		if v.variable == "extra" {
			return "", nil
		}
		return "", fmt.Errorf("%w: %q", ErrUndefinedVariable, v.variable)
	}
	return val, nil
}

func (v markerValue) String() string {
	if v.variable != "" {
		return v.variable
	}
	if strings.Contains(v.literal, `"`) {
		return "'" + v.literal + "'"
	}
	return `"` + v.literal + `"`
}

type markerCompare struct {
	lhs markerValue
	op  string
	rhs markerValue
}

func (c markerCompare) references(variable string) bool {
	return c.lhs.variable == variable || c.rhs.variable == variable
}

func (c markerCompare) writeTo(ret *strings.Builder, _ string) {
	fmt.Fprintf(ret, "%s %s %s", c.lhs, c.op, c.rhs)
}

func (c markerCompare) evaluate(env Environment) (bool, error) {
	lhs, err := c.lhs.resolve(env)
	if err != nil {
		return false, err
	}
	rhs, err := c.rhs.resolve(env)
	if err != nil {
		return false, err
	}
	if c.references("extra") {
		lhs, rhs = NormalizeName(lhs), NormalizeName(rhs)
	}

	// If both sides look like versions, compare them as versions.
	if clause, err := pep440.ParseSpecifierClause(c.op + rhs); err == nil {
		if ver, err := pep440.ParseVersion(lhs); err == nil {
			return clause.Match(*ver), nil
		}
	}

	switch c.op {
	case "==", "===":
		return lhs == rhs, nil
	case "!=":
		return lhs != rhs, nil
	case "<":
		return lhs < rhs, nil
	case "<=":
		return lhs <= rhs, nil
	case ">":
		return lhs > rhs, nil
	case ">=":
		return lhs >= rhs, nil
	case "in":
		return strings.Contains(rhs, lhs), nil
	case "not in":
		return !strings.Contains(rhs, lhs), nil
	default:
		return false, fmt.Errorf("undefined comparison: %q %s %q", lhs, c.op, rhs)
	}
}
