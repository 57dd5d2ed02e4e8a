// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package entry_points_test //nolint:revive,stylecheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/pybuild/pkg/python/pypa/entry_points"
)

func TestParseEntryPoint(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Input  string
		Output entry_points.EntryPoint
		Err    bool
	}{
		"module":      {"pkg.mod", entry_points.EntryPoint{Module: "pkg.mod"}, false},
		"attr":        {"pkg.mod:main", entry_points.EntryPoint{Module: "pkg.mod", Attr: "main"}, false},
		"nested-attr": {"pkg:Cls.run", entry_points.EntryPoint{Module: "pkg", Attr: "Cls.run"}, false},
		"spaces":      {" pkg : main [extra]", entry_points.EntryPoint{Module: "pkg", Attr: "main"}, false},
		"bad":         {"not valid!", entry_points.EntryPoint{}, true},
		"empty":       {"", entry_points.EntryPoint{}, true},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ep, err := entry_points.ParseEntryPoint(tcData.Input)
			if tcData.Err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tcData.Output, ep)
		})
	}
}

func TestFormatParse(t *testing.T) {
	t.Parallel()
	groups := entry_points.Groups{
		"zz.plugins":                {"b": "pkg.b", "a": "pkg.a"},
		entry_points.GUIScripts:     {"gui": "pkg.gui:main"},
		entry_points.ConsoleScripts: {"Cli": "pkg.cli:main"},
		"empty":                     {},
	}
	formatted := string(entry_points.Format(groups))
	assert.Equal(t, ``+
		"[console_scripts]\n"+
		"Cli = pkg.cli:main\n"+
		"\n"+
		"[gui_scripts]\n"+
		"gui = pkg.gui:main\n"+
		"\n"+
		"[zz.plugins]\n"+
		"a = pkg.a\n"+
		"b = pkg.b\n",
		formatted)

	parsed, err := entry_points.Parse(strings.NewReader(formatted))
	require.NoError(t, err)
	delete(groups, "empty")
	assert.Equal(t, groups, parsed)
}

func TestScript(t *testing.T) {
	t.Parallel()
	script, err := entry_points.Script("/usr/bin/python3", entry_points.EntryPoint{Module: "pkg.cli", Attr: "App.main"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(script), "#!/usr/bin/python3\n"))
	assert.Contains(t, string(script), "from pkg.cli import App\n")
	assert.Contains(t, string(script), "sys.exit(App.main())\n")

	_, err = entry_points.Script("/usr/bin/python3", entry_points.EntryPoint{Module: "pkg"})
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"no group":        "a = pkg.a\n",
		"duplicate group": "[g]\na = pkg.a\n[g]\n",
		"duplicate name":  "[g]\na = pkg.a\na = pkg.b\n",
		"no delimiter":    "[g]\npkg.a\n",
	}
	for name, input := range testcases {
		input := input
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := entry_points.Parse(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}
