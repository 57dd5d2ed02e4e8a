// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package pep440 implements PEP 440 -- Version Identification and Dependency Specification.
//
// Versions parse into a normalized structure that has a total order; specifiers are
// comma-separated lists of clauses that must all match.
//
// https://peps.python.org/pep-0440/
package pep440
