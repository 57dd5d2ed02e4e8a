// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package bdist

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/datawire/dlib/derror"
)

// RecordRow is a single line of a RECORD file.  Hash and Size are empty for the RECORD file
// itself.
type RecordRow struct {
	Path string
	Hash string // "{algo}={urlsafe_b64encode_nopad(digest)}"
	Size string
}

// Record is the content of "{distribution}-{version}.dist-info/RECORD".
type Record []RecordRow

// Bytes renders the RECORD as CSV, with "\n" line endings.
func (r Record) Bytes() ([]byte, error) {
	var ret bytes.Buffer
	csvWriter := csv.NewWriter(&ret)
	for _, row := range r {
		if err := csvWriter.Write([]string{row.Path, row.Hash, row.Size}); err != nil {
			return nil, err
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return nil, err
	}
	return ret.Bytes(), nil
}

var strongHashes = map[string]func() hash.Hash{
	// The list is open-ended, so here's what PIP 20.3.4 pip/_internal/utils/hashes.py
	// includes:
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

// HashFile hashes the content returned by open, in RECORD format.  The default algorithm is
// sha256.
func HashFile(algo string, open func() (io.ReadCloser, error)) (hashsum string, size int64, err error) {
	if algo == "" {
		algo = "sha256"
	}
	newHasher, ok := strongHashes[algo]
	if !ok {
		return "", 0, fmt.Errorf("unsupported hash algorithm: %q", algo)
	}
	reader, err := open()
	if err != nil {
		return "", 0, err
	}
	defer func() {
		_ = reader.Close()
	}()

	hasher := newHasher()
	size, err = io.Copy(hasher, reader)
	if err != nil {
		return "", 0, err
	}
	return algo + "=" + base64.RawURLEncoding.EncodeToString(hasher.Sum(nil)), size, nil
}

// distInfoDir returns the "{name}.dist-info" directory for the wheel file.
//
// This is based off of `pip/_internal/utils/wheel.py:wheel_dist_info_dir()`, since PEP 427 doesn't
// actually have much to say about resolving ambiguity.
func distInfoDir(zr *zip.Reader) (string, error) {
	infoDirs := make(map[string]struct{})
	for _, file := range zr.File {
		dirname := strings.Split(path.Clean(file.FileHeader.Name), "/")[0]
		if !strings.HasSuffix(dirname, ".dist-info") {
			continue
		}
		infoDirs[dirname] = struct{}{}
	}
	list := make([]string, 0, len(infoDirs))
	for dir := range infoDirs {
		list = append(list, dir)
	}
	sort.Strings(list)
	switch len(list) {
	case 0:
		return "", fmt.Errorf(".dist-info directory not found")
	case 1:
		return list[0], nil
	default:
		return "", fmt.Errorf("multiple .dist-info directories found: %v", list)
	}
}

func openZipFile(zr *zip.Reader, filename string) (io.ReadCloser, error) {
	filename = path.Clean(filename)
	for _, file := range zr.File {
		if path.Clean(file.Name) == filename {
			return file.Open()
		}
	}
	return nil, fmt.Errorf("%w in wheel zip archive: %q", fs.ErrNotExist, filename)
}

// Verify checks that every file in the wheel is listed in its RECORD, with a matching hash
// and size.  All discrepancies are reported, as a derror.MultiError.
func Verify(zr *zip.Reader) error {
	infoDir, err := distInfoDir(zr)
	if err != nil {
		return err
	}

	todo := make(map[string]struct{})
	for _, file := range zr.File {
		if file.FileInfo().IsDir() {
			continue
		}
		name := path.Clean(file.Name)
		switch name {
		case path.Join(infoDir, "RECORD.jws"), path.Join(infoDir, "RECORD.p7s"):
			// signatures aren't in the RECORD
		default:
			todo[name] = struct{}{}
		}
	}

	recordName := path.Join(infoDir, "RECORD")
	recordData, err := func() ([][]string, error) {
		reader, err := openZipFile(zr, recordName)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = reader.Close()
		}()
		csvReader := csv.NewReader(reader)
		csvReader.FieldsPerRecord = -1
		return csvReader.ReadAll()
	}()
	if err != nil {
		return fmt.Errorf("read %q: %w", recordName, err)
	}

	var errs derror.MultiError
	for i, row := range recordData {
		if len(row) != 3 {
			errs = append(errs, fmt.Errorf("RECORD row %d: does not have 3 columns: %q", i, row))
			continue
		}
		name, recHashsum, recSize := path.Clean(row[0]), row[1], row[2]
		delete(todo, name)
		if name == recordName {
			continue
		}
		if recHashsum == "" || recSize == "" {
			errs = append(errs, fmt.Errorf("RECORD row %d: missing hash or size: %q", i, row))
			continue
		}
		algo := strings.SplitN(recHashsum, "=", 2)[0]
		actHashsum, actSize, err := HashFile(algo, func() (io.ReadCloser, error) {
			return openZipFile(zr, name)
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("RECORD row %d: file %q: %w", i, name, err))
			continue
		}
		if actHashsum != recHashsum {
			errs = append(errs, fmt.Errorf("RECORD row %d: file %q: checksum mismatch: RECORD=%q actual=%q",
				i, name, recHashsum, actHashsum))
		}
		if strconv.FormatInt(actSize, 10) != recSize {
			errs = append(errs, fmt.Errorf("RECORD row %d: file %q: size mismatch: RECORD=%s actual=%d",
				i, name, recSize, actSize))
		}
	}

	if len(todo) > 0 {
		todoNames := make([]string, 0, len(todo))
		for name := range todo {
			todoNames = append(todoNames, name)
		}
		sort.Strings(todoNames)
		errs = append(errs, fmt.Errorf("files not mentioned in RECORD: %q", todoNames))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
