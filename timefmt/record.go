// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timefmt provides a strict streaming reader for timing
// measurement files.
//
// A timing file is comma-separated values with a header row. The
// header names every column; one column must be named "time" and
// hold a floating-point measurement on every row. All other columns
// are carried through uninterpreted, so that higher-level packages
// such as timeproc can group rows by them.
//
// The reader is structured as a streaming operation, like
// bufio.Scanner, and reuses the Record it returns between calls to
// Scan.
package timefmt

import "fmt"

// TimeColumn is the name of the measurement column.
const TimeColumn = "time"

// A Header is the ordered set of column names of a timing file.
type Header struct {
	Names []string

	// pos maps from column name to index in Names.
	pos map[string]int
}

func newHeader(names []string) *Header {
	h := &Header{Names: append([]string(nil), names...)}
	h.pos = make(map[string]int, len(names))
	for i, name := range h.Names {
		// If a name repeats, the first column wins.
		if _, ok := h.pos[name]; !ok {
			h.pos[name] = i
		}
	}
	return h
}

// Index returns the index of column name in h.
func (h *Header) Index(name string) (pos int, ok bool) {
	pos, ok = h.pos[name]
	return
}

// A Record is a single data row of a timing file.
//
// Records are designed to be reused by Reader to reduce allocation.
type Record struct {
	// FileName and Line locate the row, for diagnostics.
	FileName string
	Line     int

	// Header is shared by every Record read from the same file.
	Header *Header

	// Values is the raw text of each field, indexed like
	// Header.Names.
	Values []string

	// Time is the parsed value of the "time" column.
	Time float64
}

// Get returns the raw value of column name.
func (r *Record) Get(name string) (string, bool) {
	if r.Header == nil {
		return "", false
	}
	pos, ok := r.Header.Index(name)
	if !ok || pos >= len(r.Values) {
		return "", false
	}
	return r.Values[pos], true
}

// Clone makes a copy of Record that shares no mutable state with r.
// The Header is immutable and remains shared.
func (r *Record) Clone() *Record {
	r2 := *r
	r2.Values = append([]string(nil), r.Values...)
	return &r2
}

// NewRecord constructs a Record from alternating column names and
// values. It is mostly useful for tests and for callers that produce
// records from something other than a file. The "time" column, if
// present, must parse as a float.
func NewRecord(keyVals ...string) (*Record, error) {
	if len(keyVals)%2 != 0 {
		return nil, fmt.Errorf("keyVals must be alternating key/value pairs")
	}
	var names, vals []string
	for i := 0; i < len(keyVals); i += 2 {
		names = append(names, keyVals[i])
		vals = append(vals, keyVals[i+1])
	}
	rec := &Record{FileName: "<record>", Header: newHeader(names), Values: vals}
	if v, ok := rec.Get(TimeColumn); ok {
		t, err := parseTime(v)
		if err != nil {
			return nil, &ValueError{rec.FileName, 0, TimeColumn, v, err}
		}
		rec.Time = t
	}
	return rec, nil
}
