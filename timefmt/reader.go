// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timefmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// A Reader reads timing files.
//
// Its API is modeled on bufio.Scanner. To minimize allocation, a
// Reader retains ownership of everything it creates; a caller should
// copy anything it needs to retain.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	c        *csv.Reader
	fileName string
	err      error // current fatal error

	header  *Header
	timeCol int

	record    Record
	recordErr error
}

// A SyntaxError represents a structural error on a particular line
// of a timing file, such as a malformed CSV row or a missing column.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

// A ValueError reports a field whose value cannot be interpreted as
// the type its column requires.
type ValueError struct {
	FileName string
	Line     int
	Column   string
	Value    string
	Err      error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s:%d: %s value %q: %s", e.FileName, e.Line, e.Column, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

var (
	// ErrMissingValue is the cause of a ValueError for an empty
	// field or a field holding a missing-value marker such as "NA".
	ErrMissingValue = errors.New("missing value")

	// ErrNotFinite is the cause of a ValueError for a measurement
	// that parses as an infinity.
	ErrNotFinite = errors.New("non-finite value")
)

// naValues is the set of field values that mark a missing value.
// These are the markers pandas' read_csv treats as NaN by default.
var naValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true,
	"-1.#IND": true, "-1.#QNAN": true, "-NaN": true, "-nan": true,
	"1.#IND": true, "1.#QNAN": true, "<NA>": true, "N/A": true,
	"NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// IsMissing reports whether field x, ignoring surrounding spaces, is
// empty or a missing-value marker.
func IsMissing(x string) bool {
	return naValues[strings.TrimSpace(x)]
}

var noRecord = errors.New("Reader.Scan has not been called")

// NewReader constructs a reader to parse a timing file from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. The
// header is read again from the new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.c = csv.NewReader(ior)
	r.c.ReuseRecord = true
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.err = nil
	r.header = nil
	r.timeCol = -1

	r.record = Record{FileName: fileName, Values: r.record.Values[:0]}
	r.recordErr = noRecord
}

// Scan advances the reader to the next record and reports whether a
// record was read.
// The caller should use the Record method to get the record.
// If Scan reaches EOF or a fatal error occurs, it returns false,
// in which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if r.header == nil && !r.readHeader() {
		return false
	}

	fields, err := r.c.Read()
	if err == io.EOF {
		return false
	} else if err != nil {
		r.err = r.wrap(err)
		return false
	}

	line, _ := r.c.FieldPos(0)
	r.record.Line = line
	r.record.Values = append(r.record.Values[:0], fields...)
	r.record.Time = 0

	val := fields[r.timeCol]
	t, err := parseTime(val)
	if err != nil {
		r.recordErr = &ValueError{r.fileName, line, TimeColumn, val, err}
		return true
	}
	r.record.Time = t
	r.recordErr = nil
	return true
}

func (r *Reader) readHeader() bool {
	names, err := r.c.Read()
	if err == io.EOF {
		r.err = &SyntaxError{r.fileName, 1, "missing header row"}
		return false
	} else if err != nil {
		r.err = r.wrap(err)
		return false
	}
	line, _ := r.c.FieldPos(0)

	// The csv package does not strip a byte order mark.
	names[0] = strings.TrimPrefix(names[0], "\ufeff")
	h := newHeader(names)
	pos, ok := h.Index(TimeColumn)
	if !ok {
		r.err = &SyntaxError{r.fileName, line, fmt.Sprintf("missing %q column", TimeColumn)}
		return false
	}
	r.header, r.timeCol = h, pos
	r.record.Header = h
	return true
}

func (r *Reader) wrap(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &SyntaxError{r.fileName, pe.Line, pe.Err.Error()}
	}
	return fmt.Errorf("%s: %w", r.fileName, err)
}

// Record returns the last record read, or an error if the record was
// malformed.
//
// Value errors are non-fatal, so the caller can continue to call
// Scan.
//
// The caller should not retain the Record object, as it will be
// overwritten by the next call to Scan.
func (r *Reader) Record() (*Record, error) {
	if r.recordErr != nil {
		return nil, r.recordErr
	}
	return &r.record, nil
}

// Err returns the first fatal error that was encountered by the
// Reader. Reaching EOF is not an error.
func (r *Reader) Err() error {
	return r.err
}

// Header returns the column names of the current input, or nil if
// the header has not been read yet.
func (r *Reader) Header() []string {
	if r.header == nil {
		return nil
	}
	return r.header.Names
}

// parseTime parses a measurement, ignoring surrounding spaces. It
// returns the bare strconv cause rather than a *strconv.NumError so
// that ValueError can add its own context. Only finite values are
// measurements: missing-value markers, including "NaN", yield
// ErrMissingValue and infinities yield ErrNotFinite.
func parseTime(x string) (float64, error) {
	if IsMissing(x) {
		return 0, ErrMissingValue
	}
	x = strings.TrimSpace(x)
	v, err := strconv.ParseFloat(x, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			return 0, ne.Err
		}
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}
