// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timeproc

import (
	"fmt"
	"strings"

	"github.com/zchee/timestat/timefmt"
)

// A Kind is the declared type of a key column.
type Kind int

const (
	// Auto accepts any non-empty value and infers the key order
	// from the observed values: numeric if every value parsed as
	// a number, lexical otherwise.
	Auto Kind = iota
	// String keys are ordered lexically.
	String
	// Number keys must parse as numbers and are ordered
	// numerically. Metric and IEC prefixes such as "2k" and "1Mi"
	// are understood.
	Number
)

func (k Kind) String() string {
	switch k {
	case Auto:
		return "auto"
	case String:
		return "string"
	case Number:
		return "number"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Schema projects the key column of timing records. It also
// implies a sort order for the projected keys.
//
// A Schema accumulates state as records are projected (interned
// values and, for Auto keys, the inferred order), so it should be
// used for a single stream of records.
type Schema struct {
	// Key is the name of the key column.
	Key string
	// Kind is the declared type of the key column.
	Kind Kind

	ext extractor

	// allNum records whether every projected value parsed as a
	// number. It only matters for Auto.
	allNum bool

	// interns is used to intern key values, which repeat across
	// many records.
	interns map[string]string
}

// NewSchema returns a Schema for key column key of the given kind.
func NewSchema(key string, kind Kind) (*Schema, error) {
	ext, err := newExtractor(key)
	if err != nil {
		return nil, err
	}
	if key == timefmt.TimeColumn {
		return nil, fmt.Errorf("cannot group by the %q column", timefmt.TimeColumn)
	}
	switch kind {
	case Auto, String, Number:
	default:
		return nil, fmt.Errorf("unknown key kind %s", kind)
	}
	return &Schema{
		Key:     key,
		Kind:    kind,
		ext:     ext,
		allNum:  true,
		interns: make(map[string]string),
	}, nil
}

// Project extracts and validates the key of record r and returns its
// canonical value. String and Auto keys are the field with
// surrounding spaces removed. Number keys are the parsed value in
// its shortest decimal form, so "64", "64.0" and " 6.4e1" all
// project to "64" and "1k" projects to "1000".
//
// If r has no key column, Project returns a *timefmt.SyntaxError.
// If the key is empty or a missing-value marker, or is not a finite
// number for a Number key, it returns a *timefmt.ValueError.
func (s *Schema) Project(r *timefmt.Record) (string, error) {
	raw, ok := s.ext(r)
	if !ok {
		return "", &timefmt.SyntaxError{FileName: r.FileName, Line: r.Line, Msg: fmt.Sprintf("missing %q column", s.Key)}
	}
	if timefmt.IsMissing(raw) {
		return "", &timefmt.ValueError{FileName: r.FileName, Line: r.Line, Column: s.Key, Value: raw, Err: timefmt.ErrMissingValue}
	}
	val := strings.TrimSpace(raw)
	switch s.Kind {
	case Number:
		v, err := parseKey(val)
		if err != nil {
			return "", &timefmt.ValueError{FileName: r.FileName, Line: r.Line, Column: s.Key, Value: raw, Err: err}
		}
		return s.intern(formatNum(v)), nil
	case Auto:
		if _, err := parseKey(val); err != nil {
			s.allNum = false
		}
	}
	return s.intern(val), nil
}

// Canonical returns the group identity of a key returned by Project.
// Once every key of an Auto schema has been numeric, keys that denote
// the same number, such as "64" and "64.0", share one canonical form.
// Otherwise key is returned unchanged.
func (s *Schema) Canonical(key string) string {
	if s.Kind != Auto || !s.allNum {
		return key
	}
	v, err := parseKey(key)
	if err != nil {
		return key
	}
	return s.intern(formatNum(v))
}

// CheckColumns returns a *timefmt.SyntaxError if the key column is
// not among the column names of file fileName. Project reports the
// same condition per record; CheckColumns also catches it for files
// with no data rows.
func (s *Schema) CheckColumns(fileName string, names []string) error {
	for _, name := range names {
		if name == s.Key {
			return nil
		}
	}
	return &timefmt.SyntaxError{FileName: fileName, Line: 1, Msg: fmt.Sprintf("missing %q column", s.Key)}
}

// Order returns the name of the built-in order used for keys of this
// Schema: "alpha" or "num".
func (s *Schema) Order() string {
	switch s.Kind {
	case Number:
		return "num"
	case Auto:
		if s.allNum {
			return "num"
		}
	}
	return "alpha"
}

// Compare returns <0 if key a sorts before key b, >0 if it sorts
// after, and 0 only if a == b.
func (s *Schema) Compare(a, b string) int {
	if a == b {
		return 0
	}
	if s.Order() == "alpha" {
		return strings.Compare(a, b)
	}
	return newNumKey(a).compare(newNumKey(b))
}

func (s *Schema) intern(v string) string {
	if str, ok := s.interns[v]; ok {
		return str
	}
	s.interns[v] = v
	return v
}
