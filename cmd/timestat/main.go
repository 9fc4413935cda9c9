// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Timestat summarizes timing measurements by route and by size.
//
// Usage:
//
//	timestat
//
// Timestat reads the file time.csv in the current directory. The file
// must be comma-separated values with a header row naming at least
// the columns "route", "size" and "time". Every row must have a
// non-empty route, a numeric size and a finite numeric time; timestat
// stops at the first row that does not. Empty fields and markers such
// as "NA" or "NaN" count as missing. Sizes may use metric or IEC
// prefixes, such as "4k" or "1Mi", and are grouped by value, so "1k"
// and "1000.0" are the same size, printed as "1000".
//
// Example
//
// Suppose time.csv contains:
//
//	route,size,time
//	/login,64,0.12
//	/search,1024,0.5
//	/login,64,0.18
//	/checkout,512,1.25
//	/search,64,0.3
//	/checkout,4096,0.75
//
// For each route, and then for each size, timestat prints the mean
// time of the rows with that key. Each report is printed twice:
// first raw, every row with its row index, and then rounded to 6
// decimal places without the index:
//
//	Average time for each route:
//	       route      time
//	0  /checkout  1.000000
//	1     /login  0.150000
//	2    /search  0.400000
//
//	Formatted output:
//	    route     time
//	/checkout 1.000000
//	   /login 0.150000
//	  /search 0.400000
//
// Routes are sorted alphabetically and sizes numerically.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/zchee/timestat/cmd/timestat/internal/timetab"
	"github.com/zchee/timestat/timefmt"
	"github.com/zchee/timestat/timeproc"
)

const inputPath = "time.csv"

// reports is the sequence of reports timestat prints. Each one groups
// the rows of the input by a single key column.
var reports = []struct {
	key  string
	kind timeproc.Kind
}{
	{"route", timeproc.String},
	{"size", timeproc.Number},
}

var tableOpts = timetab.TableOpts{Precision: 6}

func main() {
	if err := timestat(os.Stdout, inputPath); err != nil {
		fmt.Fprintf(os.Stderr, "timestat: %s\n", err)
		os.Exit(1)
	}
}

func timestat(w io.Writer, path string) error {
	for i, r := range reports {
		s, err := timeproc.NewSchema(r.key, r.kind)
		if err != nil {
			return err
		}
		// Each report reads the file on its own, so a failure
		// in a later report leaves earlier reports printed.
		table, err := readTable(path, s)
		if err != nil {
			return err
		}
		if i > 0 {
			// Blank line between reports.
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := printReport(w, table); err != nil {
			return err
		}
	}
	return nil
}

// readTable reads the timing file at path and groups its rows by the
// key of schema s. Any malformed row is an error.
func readTable(path string, s *timeproc.Schema) (*timetab.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat := timetab.NewBuilder(s)
	r := timefmt.NewReader(f, path)
	// The first Scan reads the header, so a missing key column is
	// reported against the header line before any row is examined.
	ok := r.Scan()
	if err := r.Err(); err != nil {
		return nil, err
	}
	if err := s.CheckColumns(path, r.Header()); err != nil {
		return nil, err
	}
	for ; ok; ok = r.Scan() {
		rec, err := r.Record()
		if err != nil {
			return nil, err
		}
		if err := stat.Add(rec); err != nil {
			return nil, err
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	return stat.ToTable(tableOpts), nil
}

// printReport prints the raw table, then the table rounded to its
// precision without a row index.
func printReport(w io.Writer, table *timetab.Table) error {
	if _, err := fmt.Fprintf(w, "Average time for each %s:\n", table.Key); err != nil {
		return err
	}
	if err := table.ToText(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nFormatted output:\n"); err != nil {
		return err
	}
	return table.Round().ToFormatted(w)
}
