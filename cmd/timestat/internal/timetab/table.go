// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timetab

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/zchee/timestat/timefmt"
)

// A Table is the mean time of each group of records.
type Table struct {
	// Opts is the configuration options for this table.
	Opts TableOpts

	// Key is the name of the column the records were grouped by.
	Key string

	// Rows is one entry per distinct key, in ascending key order.
	Rows []Row
}

// A Row summarizes the records sharing one key.
type Row struct {
	Key string
	// Count is the number of records with this key. It is never 0.
	Count int
	// Mean is the arithmetic mean of the records' times.
	Mean float64
}

// Count returns the total number of records summarized by t.
func (t *Table) Count() int {
	n := 0
	for _, row := range t.Rows {
		n += row.Count
	}
	return n
}

// Round returns a copy of t with every mean rounded to
// t.Opts.Precision fractional digits, rounding half to even.
func (t *Table) Round() *Table {
	t2 := *t
	t2.Rows = append([]Row(nil), t.Rows...)
	for i := range t2.Rows {
		t2.Rows[i].Mean = round(t2.Rows[i].Mean, t.Opts.Precision)
	}
	return &t2
}

// round rounds x to places fractional digits. It scales, rounds to
// the nearest integer and scales back, like numpy.round.
func round(x float64, places int) float64 {
	p := math.Pow10(places)
	y := x * p
	if math.IsNaN(y) || math.IsInf(y, 0) || math.Abs(y) >= 1<<52 {
		// x has no digits beyond places.
		return x
	}
	return math.RoundToEven(y) / p
}

// DataFrame returns t as a two-column data frame: the key column as
// strings and the "time" column as floats.
func (t *Table) DataFrame() dataframe.DataFrame {
	keys := make([]string, len(t.Rows))
	means := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		keys[i] = row.Key
		means[i] = row.Mean
	}
	return dataframe.New(
		series.New(keys, series.String, t.Key),
		series.New(means, series.Float, timefmt.TimeColumn),
	)
}

// ToText writes the raw tabular form of t to w: the records of its
// data frame under a header line, each row led by its zero-based row
// index. Every row is printed and cells are never truncated. Columns
// are right-aligned to their widest cell and separated by two spaces;
// the index column has a blank header. Means keep the data frame's
// six fractional digits.
func (t *Table) ToText(w io.Writer) error {
	df := t.DataFrame()
	if df.Err != nil {
		return df.Err
	}
	recs := df.Records()
	lines := make([][]string, len(recs))
	for i, rec := range recs {
		idx := ""
		if i > 0 {
			idx = strconv.Itoa(i - 1)
		}
		lines[i] = append([]string{idx}, rec...)
	}
	return writeAligned(w, lines, "  ")
}

// ToFormatted writes t to w without a row index: a header line of
// column names, then one line per row. Each column is right-aligned
// to its widest cell and columns are separated by a single space.
// Means are printed with exactly t.Opts.Precision fractional digits.
func (t *Table) ToFormatted(w io.Writer) error {
	lines := make([][]string, 0, len(t.Rows)+1)
	lines = append(lines, []string{t.Key, timefmt.TimeColumn})
	for _, row := range t.Rows {
		lines = append(lines, []string{row.Key, strconv.FormatFloat(row.Mean, 'f', t.Opts.Precision, 64)})
	}
	return writeAligned(w, lines, " ")
}

// writeAligned writes lines to w as a table: each column is
// right-aligned to its widest cell, measured in runes, and columns
// are joined by sep.
func writeAligned(w io.Writer, lines [][]string, sep string) error {
	var widths []int
	for _, line := range lines {
		for i, c := range line {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(c); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var buf bytes.Buffer
	for _, line := range lines {
		for i, c := range line {
			if i > 0 {
				buf.WriteString(sep)
			}
			for pad := widths[i] - utf8.RuneCountInString(c); pad > 0; pad-- {
				buf.WriteByte(' ')
			}
			buf.WriteString(c)
		}
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}
