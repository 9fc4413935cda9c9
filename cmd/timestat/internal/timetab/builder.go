// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timetab summarizes timing records as per-key mean tables.
package timetab

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/zchee/timestat/timefmt"
	"github.com/zchee/timestat/timeproc"
)

// A Builder collects timing records into groups by key.
type Builder struct {
	schema *timeproc.Schema

	// groups maps from projected key to the group's samples.
	groups map[string]*group

	// n is the number of records added.
	n int
}

type group struct {
	// values is the observed times in this group.
	values []float64
}

// NewBuilder creates a new Builder for collecting timing records.
// Each record is mapped to a group by schema s.
func NewBuilder(s *timeproc.Schema) *Builder {
	return &Builder{
		schema: s,
		groups: make(map[string]*group),
	}
}

// Add adds record to the group of its key. It returns an error, and
// leaves the Builder unchanged, if the record's key does not
// conform to the Builder's schema.
func (b *Builder) Add(record *timefmt.Record) error {
	key, err := b.schema.Project(record)
	if err != nil {
		return err
	}
	g := b.groups[key]
	if g == nil {
		g = new(group)
		b.groups[key] = g
	}
	g.values = append(g.values, record.Time)
	b.n++
	return nil
}

// Len returns the number of records added to b.
func (b *Builder) Len() int {
	return b.n
}

// TableOpts provides options for constructing a Table from a
// Builder.
type TableOpts struct {
	// Precision is the number of fractional digits kept by
	// Table.Round and shown by Table.ToFormatted.
	Precision int
}

// ToTable finalizes a Builder into a Table with one row per distinct
// key, in ascending key order. Keys that the schema settles as the
// same value, such as "64" and "64.0" under an all-numeric Auto key,
// form a single row.
func (b *Builder) ToTable(opts TableOpts) *Table {
	merged := make(map[string][]float64, len(b.groups))
	for k, g := range b.groups {
		ck := b.schema.Canonical(k)
		merged[ck] = append(merged[ck], g.values...)
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	timeproc.SortKeys(b.schema, keys)

	t := &Table{
		Opts: opts,
		Key:  b.schema.Key,
		Rows: make([]Row, 0, len(keys)),
	}
	for _, k := range keys {
		values := merged[k]
		t.Rows = append(t.Rows, Row{
			Key:   k,
			Count: len(values),
			Mean:  stats.Mean(values),
		})
	}
	return t
}
