// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"testing"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"
	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/pmezard/go-difflib/difflib"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// ArchiveEntry is a single file read from a .whl, .zip, .tar, or .tar.gz archive.
type ArchiveEntry struct {
	Name    string
	Mode    fs.FileMode
	ModTime time.Time
	Content []byte
}

// ReadArchive reads every entry from an archive, in archive order.  The archive format is
// chosen based on the filename extension.
func ReadArchive(filename string) ([]ArchiveEntry, error) {
	switch {
	case strings.HasSuffix(filename, ".whl"), strings.HasSuffix(filename, ".zip"):
		return readZip(filename)
	case strings.HasSuffix(filename, ".tar.gz"):
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			return nil, err
		}
		return readTar(gzReader)
	case strings.HasSuffix(filename, ".tar"):
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return readTar(file)
	default:
		return nil, fmt.Errorf("unknown archive type: %q", filename)
	}
}

func readZip(filename string) ([]ArchiveEntry, error) {
	zipReader, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zipReader.Close()
	ret := make([]ArchiveEntry, 0, len(zipReader.File))
	for _, file := range zipReader.File {
		reader, err := file.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(reader)
		_ = reader.Close()
		if err != nil {
			return nil, err
		}
		ret = append(ret, ArchiveEntry{
			Name:    file.Name,
			Mode:    file.Mode(),
			ModTime: file.Modified.UTC(),
			Content: content,
		})
	}
	return ret, nil
}

func readTar(reader io.Reader) ([]ArchiveEntry, error) {
	var ret []ArchiveEntry
	tarReader := tar.NewReader(reader)
	for {
		header, err := tarReader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		content, err := io.ReadAll(tarReader)
		if err != nil {
			return nil, err
		}
		ret = append(ret, ArchiveEntry{
			Name:    header.Name,
			Mode:    header.FileInfo().Mode(),
			ModTime: header.ModTime.UTC(),
			Content: content,
		})
	}
	return ret, nil
}

// ArchiveNames returns the entry names of an archive, failing the test if it can't be read.
func ArchiveNames(t *testing.T, filename string) []string {
	t.Helper()
	entries, err := ReadArchive(filename)
	if err != nil {
		t.Fatalf("reading archive %q: %v", filename, err)
	}
	ret := make([]string, 0, len(entries))
	for _, entry := range entries {
		ret = append(ret, entry.Name)
	}
	return ret
}

// ArchiveFile returns the content of a single entry in an archive, failing the test if it
// can't be read or doesn't exist.
func ArchiveFile(t *testing.T, filename, name string) string {
	t.Helper()
	entries, err := ReadArchive(filename)
	if err != nil {
		t.Fatalf("reading archive %q: %v", filename, err)
	}
	for _, entry := range entries {
		if entry.Name == name {
			return string(entry.Content)
		}
	}
	t.Fatalf("archive %q does not contain %q", filename, name)
	return ""
}

func dumpListing(entries []ArchiveEntry) string {
	ret := new(strings.Builder)
	table := tabwriter.NewWriter(
		ret, // output
		0,   // minwidth
		1,   // tabwidth
		1,   // padding
		' ', // padchar
		0)   // flags
	for _, entry := range entries {
		fmt.Fprintln(table, strings.Join([]string{
			"",
			entry.Mode.String(),
			entry.ModTime.Format(time.RFC3339),
			fmt.Sprintf("% 10d", len(entry.Content)),
			entry.Name,
		}, "\t"))
	}
	_ = table.Flush()
	return ret.String()
}

func assertNoDiff(t *testing.T, what, exp, act string) bool {
	t.Helper()
	if exp == act {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	t.Errorf("%s diff:\n%s", what, diff)
	return false
}

// AssertEqualArchives asserts that two archive files have identical entries; same names,
// modes, timestamps, and content, in the same order.
func AssertEqualArchives(t *testing.T, expFilename, actFilename string) bool {
	t.Helper()
	exp, err := ReadArchive(expFilename)
	if err != nil {
		t.Errorf("error reading expected archive: %v", err)
		return false
	}
	act, err := ReadArchive(actFilename)
	if err != nil {
		t.Errorf("error reading actual archive: %v", err)
		return false
	}

	// First just compare the listings, in order to "fail fast" and give more readable output.
	if !assertNoDiff(t, "Listing", dumpListing(exp), dumpListing(act)) {
		return false
	}
	return assertNoDiff(t, "Full", spewConfig.Sdump(exp), spewConfig.Sdump(act))
}

// DumpLayerListing returns an `ls -l`-style listing of an OCI image layer.
func DumpLayerListing(layer ociv1.Layer) (str string, err error) {
	layerReader, err := layer.Uncompressed()
	if err != nil {
		return "", err
	}
	defer func() {
		if _err := layerReader.Close(); _err != nil && err == nil {
			str = ""
			err = _err
		}
	}()

	ret := new(strings.Builder)
	table := tabwriter.NewWriter(ret, 0, 1, 1, ' ', 0)
	tarReader := tar.NewReader(layerReader)
	for {
		header, err := tarReader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		if _, err := fmt.Fprintln(table, strings.Join([]string{
			"",
			header.FileInfo().Mode().String(),
			fmt.Sprintf("%d=%q", header.Uid, header.Uname),
			fmt.Sprintf("%d=%q", header.Gid, header.Gname),
			fmt.Sprintf("% 10d", header.Size),
			header.Name,
		}, "\t")); err != nil {
			return "", err
		}
	}
	if err := table.Flush(); err != nil {
		return "", err
	}
	return ret.String(), nil
}

// LayerFile returns the content of a single file in an OCI image layer.
func LayerFile(layer ociv1.Layer, name string) ([]byte, error) {
	layerReader, err := layer.Uncompressed()
	if err != nil {
		return nil, err
	}
	defer layerReader.Close()
	var content bytes.Buffer
	tarReader := tar.NewReader(layerReader)
	for {
		header, err := tarReader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %q", fs.ErrNotExist, name)
			}
			return nil, err
		}
		if header.Name == name {
			if _, err := io.Copy(&content, tarReader); err != nil {
				return nil, err
			}
			return content.Bytes(), nil
		}
	}
}
