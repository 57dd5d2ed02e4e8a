// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"strings"
)

// topLevelClassifiers are the root categories of the trove classifier tree.
var topLevelClassifiers = map[string]bool{
	"Development Status":   true,
	"Environment":          true,
	"Framework":            true,
	"Intended Audience":    true,
	"License":              true,
	"Natural Language":     true,
	"Operating System":     true,
	"Programming Language": true,
	"Topic":                true,
	"Typing":               true,
}

var developmentStatus = map[string]bool{
	"Development Status :: 1 - Planning":          true,
	"Development Status :: 2 - Pre-Alpha":         true,
	"Development Status :: 3 - Alpha":             true,
	"Development Status :: 4 - Beta":              true,
	"Development Status :: 5 - Production/Stable": true,
	"Development Status :: 6 - Mature":            true,
	"Development Status :: 7 - Inactive":          true,
}

// IsPrivateClassifier reports whether the classifier is in the "Private ::" namespace, which
// index servers reject and which is therefore always accepted locally.
func IsPrivateClassifier(classifier string) bool {
	return strings.HasPrefix(strings.ToLower(classifier), "private ::")
}

// knownClassifier reports whether classifier is well-formed and sits under a recognized
// category.  extra holds classifiers that metadata hooks declared valid.
func knownClassifier(classifier string, extra map[string]bool) bool {
	if IsPrivateClassifier(classifier) || extra[classifier] {
		return true
	}
	parts := strings.Split(classifier, " :: ")
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if part == "" || strings.TrimSpace(part) != part || strings.Contains(part, "::") {
			return false
		}
	}
	if !topLevelClassifiers[parts[0]] {
		return false
	}
	if parts[0] == "Development Status" {
		return developmentStatus[classifier]
	}
	return true
}
