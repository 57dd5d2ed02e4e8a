// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package core_metadata reads and writes the "core metadata" files (PKG-INFO in an sdist,
// METADATA in a wheel or installed .dist-info directory).
//
// The format is a series of RFC 822 style "Key: value" headers, optionally followed by a blank
// line and a free-form message body holding the long description.  Unlike net/textproto, field
// order and repetition are preserved.
//
// https://packaging.python.org/en/latest/specifications/core-metadata/
package core_metadata //nolint:revive,stylecheck // underscore matches the PyPA document name

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Version is the Metadata-Version that Write emits.
const Version = "2.1"

// Field is a single header.
type Field struct {
	Key   string
	Value string
}

// Metadata is an ordered list of header fields plus an optional body.
type Metadata struct {
	Fields []Field
	Body   string
}

// Get returns the first value for key (case-insensitively), or "" if there is none.
func (md *Metadata) Get(key string) string {
	for _, field := range md.Fields {
		if strings.EqualFold(field.Key, key) {
			return field.Value
		}
	}
	return ""
}

// Has reports whether there are any values for key.
func (md *Metadata) Has(key string) bool {
	for _, field := range md.Fields {
		if strings.EqualFold(field.Key, key) {
			return true
		}
	}
	return false
}

// GetAll returns every value for key (case-insensitively), in order.
func (md *Metadata) GetAll(key string) []string {
	var ret []string
	for _, field := range md.Fields {
		if strings.EqualFold(field.Key, key) {
			ret = append(ret, field.Value)
		}
	}
	return ret
}

// Add appends a field.
func (md *Metadata) Add(key, value string) {
	md.Fields = append(md.Fields, Field{Key: key, Value: value})
}

// AddAll appends a field for each value.
func (md *Metadata) AddAll(key string, values []string) {
	for _, value := range values {
		md.Add(key, value)
	}
}

// Parse reads core metadata.  Continuation lines (starting with whitespace) are folded in to
// the previous field's value with a "\n".
func Parse(r io.Reader) (*Metadata, error) {
	var ret Metadata
	reader := bufio.NewReader(r)
	lineno := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("core_metadata.Parse: %w", err)
		}
		eof := err == io.EOF
		lineno++
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
			if !eof {
				body, err := io.ReadAll(reader)
				if err != nil {
					return nil, fmt.Errorf("core_metadata.Parse: %w", err)
				}
				ret.Body = string(body)
			}
			return &ret, nil
		case line[0] == ' ' || line[0] == '\t':
			if len(ret.Fields) == 0 {
				return nil, fmt.Errorf("core_metadata.Parse: line %d: continuation line before first field", lineno)
			}
			last := &ret.Fields[len(ret.Fields)-1]
			last.Value += "\n" + strings.TrimLeft(line, " \t")
		default:
			colon := strings.IndexByte(line, ':')
			if colon <= 0 {
				return nil, fmt.Errorf("core_metadata.Parse: line %d: malformed header: %q", lineno, line)
			}
			ret.Add(line[:colon], strings.TrimSpace(line[colon+1:]))
		}
		if eof {
			return &ret, nil
		}
	}
}

// ParseBytes is Parse for an in-memory file.
func ParseBytes(content []byte) (*Metadata, error) {
	return Parse(bytes.NewReader(content))
}

// WriteTo writes the metadata.  Multi-line values are folded with 8 spaces of indentation,
// which is how the License field is conventionally written.
func (md *Metadata) WriteTo(w io.Writer) (int64, error) {
	var buf strings.Builder
	for _, field := range md.Fields {
		buf.WriteString(field.Key + ": " + strings.ReplaceAll(field.Value, "\n", "\n        ") + "\n")
	}
	if md.Body != "" {
		buf.WriteString("\n")
		buf.WriteString(md.Body)
	}
	n, err := io.WriteString(w, buf.String())
	return int64(n), err
}

// Bytes returns the serialized metadata.
func (md *Metadata) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = md.WriteTo(&buf)
	return buf.Bytes()
}
