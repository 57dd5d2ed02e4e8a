// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package custom implements the "custom" plugins: a build hook, a metadata hook, and a
// builder, each defined by a project-local Python script (by default "hatch_build.py").
//
// The script is run by a long-lived interpreter process per plugin instance.  Go and the
// interpreter exchange one JSON document per line over the process's stdin and stdout; the
// interpreter side is bootstrap.py, which also provides the hatchling plugin interfaces that
// the script subclasses.
package custom

import (
	"bufio"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"

	"github.com/datawire/pybuild/pkg/config"
	"github.com/datawire/pybuild/pkg/plugin"
)

// Name is the plugin name that all of the custom plugins register as.
const Name = "custom"

// DefaultPath is the script used when the plugin's config does not set "path".
const DefaultPath = "hatch_build.py"

//go:embed bootstrap.py
var bootstrap string

// ScriptError is an exception raised by the plugin script.
type ScriptError struct {
	Path      string
	Action    string
	Type      string // the Python exception class
	Msg       string
	Traceback string
}

func (e *ScriptError) Error() string {
	if e.Type == "PluginLoadError" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s: %s: %s", e.Path, e.Action, e.Type, e.Msg)
}

type request struct {
	Action string      `json:"action"`
	Args   interface{} `json:"args,omitempty"`
}

type response struct {
	Result    json.RawMessage `json:"result"`
	Error     string          `json:"error"`
	Type      string          `json:"type"`
	Traceback string          `json:"traceback"`
}

// Process is an interpreter hosting one plugin object.
type Process struct {
	path  string
	cmd   *dexec.Cmd
	stdin io.WriteCloser
	enc   *json.Encoder
	dec   *json.Decoder
}

// ScriptPath resolves the "path" option of a custom plugin's config table, and checks that
// the script exists.
func ScriptPath(root string, cfg config.Table) (string, error) {
	relpath, err := cfg.StringDefault("path", DefaultPath)
	if err != nil {
		return "", err
	}
	if relpath == "" {
		return "", &config.Error{Path: cfg.KeyPath("path"), Msg: "must not be empty"}
	}
	filename := filepath.Join(root, filepath.FromSlash(relpath))
	info, err := os.Stat(filename)
	if err != nil {
		return "", fmt.Errorf("plugin script does not exist: %s: %w", relpath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("plugin script is a directory: %s", relpath)
	}
	return filename, nil
}

// Load starts an interpreter, and has it instantiate the plugin class of type typ from the
// script at path; init holds the constructor arguments.
func Load(ctx context.Context, settings *config.Settings, path string, typ plugin.Type, init map[string]interface{}) (*Process, error) {
	cmdline, err := settings.Python()
	if err != nil {
		return nil, err
	}
	if len(cmdline) == 0 {
		return nil, errors.New("no Python interpreter specified")
	}

	cmd := dexec.CommandContext(ctx, cmdline[0], append(cmdline[1:], "-c", bootstrap)...)
	cmd.DisableLogging = true
	cmd.Dir = filepath.Dir(path)
	cmd.Stderr = dlog.StdLogger(ctx, dlog.LogLevelInfo).Writer()
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("custom.Load: %w", err)
	}
	proc := &Process{
		path:  path,
		cmd:   cmd,
		stdin: stdin,
		enc:   json.NewEncoder(stdin),
		dec:   json.NewDecoder(bufio.NewReader(stdout)),
	}

	args := make(map[string]interface{}, len(init)+2)
	for k, v := range init {
		args[k] = v
	}
	args["path"] = path
	args["type"] = string(typ)
	var loaded struct {
		PluginName string `json:"plugin_name"`
	}
	if err := proc.Call(ctx, "load", args, &loaded); err != nil {
		_ = proc.Close()
		return nil, err
	}
	dlog.Debugf(ctx, "loaded %s plugin %q from %s", typ, loaded.PluginName, path)
	return proc, nil
}

// Call sends one request and waits for its response, decoding the result in to result (if
// non-nil).
func (p *Process) Call(ctx context.Context, action string, args, result interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.enc.Encode(request{Action: action, Args: args}); err != nil {
		return fmt.Errorf("%s: %s: %w", p.path, action, err)
	}
	var resp response
	if err := p.dec.Decode(&resp); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("%s: %s: plugin process: %w", p.path, action, err)
	}
	if resp.Error != "" || resp.Type != "" {
		dlog.Debugf(ctx, "%s: %s:\n%s", p.path, action, resp.Traceback)
		return &ScriptError{
			Path:      p.path,
			Action:    action,
			Type:      resp.Type,
			Msg:       resp.Error,
			Traceback: resp.Traceback,
		}
	}
	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("%s: %s: %w", p.path, action, err)
		}
	}
	return nil
}

// Close shuts down the interpreter.
func (p *Process) Close() error {
	if p == nil || p.cmd == nil {
		return nil
	}
	_ = p.stdin.Close()
	err := p.cmd.Wait()
	p.cmd = nil
	return err
}
