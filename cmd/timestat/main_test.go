// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/zchee/timestat/timefmt"
	"github.com/zchee/timestat/timeproc"
)

func TestReports(t *testing.T) {
	golden(t, "basic", "basic.csv")
	golden(t, "prefixes", "prefixes.csv")
	golden(t, "numeric", "numeric.csv")
	golden(t, "many", "many.csv")

	// A header without rows gives empty tables, not an error.
	golden(t, "empty", "empty.csv")
}

func TestLayout(t *testing.T) {
	out, err := run(t, "basic.csv")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if strings.Index(out, "for each route") > strings.Index(out, "for each size") {
		t.Errorf("size report printed before route report:\n%s", out)
	}

	// One raw row per group, each led by its row index.
	checkRaw(t, out, "route", [][]string{
		{"0", "/checkout", "1.000000"},
		{"1", "/login", "0.150000"},
		{"2", "/search", "0.400000"},
	})
	checkRaw(t, out, "size", [][]string{
		{"0", "64", "0.200000"},
		{"1", "512", "1.250000"},
		{"2", "1024", "0.500000"},
		{"3", "4096", "0.750000"},
	})

	// Sizes are grouped by value, not by text.
	out, err = run(t, "numeric.csv")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	checkRaw(t, out, "size", [][]string{
		{"0", "64", "2.000000"},
		{"1", "1000", "3.000000"},
	})

	// Every group is printed in full, however many there are and
	// however wide their keys.
	out, err = run(t, "many.csv")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	var want [][]string
	for i := 0; i < 15; i++ {
		want = append(want, []string{strconv.Itoa(i), fmt.Sprintf("/r%02d", i), fmt.Sprintf("%d.000000", i)})
	}
	long := "/" + strings.Repeat("segment/", 11) + "end"
	want = append(want, []string{"15", long, "0.250000"})
	checkRaw(t, out, "route", want)
}

// checkRaw checks that the raw print of the report for key in out
// has a header line naming its columns followed by exactly the rows
// in want, given as whitespace-separated fields.
func checkRaw(t *testing.T, out, key string, want [][]string) {
	t.Helper()
	hdr := "Average time for each " + key + ":\n"
	i := strings.Index(out, hdr)
	if i < 0 {
		t.Fatalf("missing %q in output:\n%s", hdr, out)
	}
	rest := out[i+len(hdr):]
	j := strings.Index(rest, "\n\nFormatted output:\n")
	if j < 0 {
		t.Fatalf("missing formatted output after %q:\n%s", hdr, out)
	}
	lines := strings.Split(rest[:j], "\n")
	if got := strings.Fields(lines[0]); !reflect.DeepEqual(got, []string{key, "time"}) {
		t.Errorf("raw %s header: want [%s time], got %q", key, key, got)
	}
	var got [][]string
	for _, line := range lines[1:] {
		got = append(got, strings.Fields(line))
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("raw %s rows: want %d rows %q, got %d rows %q", key, len(want), want, len(got), got)
	}
}

func TestExample(t *testing.T) {
	if err := os.Chdir("testdata"); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir("..")

	s, err := timeproc.NewSchema("route", timeproc.String)
	if err != nil {
		t.Fatal(err)
	}
	table, err := readTable("example.csv", s)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(table.Rows) != 2 || table.Rows[0].Mean != 2 || table.Rows[1].Mean != 2 {
		t.Errorf("want A=2 B=2, got %+v", table.Rows)
	}

	var got bytes.Buffer
	if err := printReport(&got, table); err != nil {
		t.Fatal(err)
	}
	want := "Formatted output:\nroute     time\n    A 2.000000\n    B 2.000000\n"
	if !strings.HasSuffix(got.String(), want) {
		t.Errorf("want output ending in:\n%sgot:\n%s", want, got.String())
	}
}

func TestMissingFile(t *testing.T) {
	out, err := run(t, "nonexistent.csv")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("want ErrNotExist, got %v", err)
	}
	if out != "" {
		t.Errorf("want no output, got:\n%s", out)
	}
}

func TestBadTime(t *testing.T) {
	out, err := run(t, "badtime.csv")
	var ve *timefmt.ValueError
	if !errors.As(err, &ve) || !errors.Is(err, strconv.ErrSyntax) {
		t.Fatalf("want *ValueError(ErrSyntax), got %v", err)
	}
	if want := `badtime.csv:3: time value "fast": invalid syntax`; err.Error() != want {
		t.Errorf("want error %q, got %q", want, err)
	}
	if out != "" {
		t.Errorf("want no output, got:\n%s", out)
	}
}

func TestNonFiniteTime(t *testing.T) {
	_, err := run(t, "inftime.csv")
	if !errors.Is(err, timefmt.ErrNotFinite) {
		t.Fatalf("want ErrNotFinite, got %v", err)
	}
	if want := `inftime.csv:3: time value "inf": non-finite value`; err.Error() != want {
		t.Errorf("want error %q, got %q", want, err)
	}
}

func TestMissingColumn(t *testing.T) {
	// The route report completes before the size report fails.
	out, err := run(t, "nosize.csv")
	var se *timefmt.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("want *SyntaxError, got %v", err)
	}
	if want := `nosize.csv:1: missing "size" column`; err.Error() != want {
		t.Errorf("want error %q, got %q", want, err)
	}
	compare(t, "nosize", "formatted", []byte(formatted(out)))
}

// run runs timestat on testdata/path and returns its output.
func run(t *testing.T, path string) (string, error) {
	t.Helper()
	if err := os.Chdir("testdata"); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir("..")

	var out bytes.Buffer
	err := timestat(&out, path)
	return out.String(), err
}

func golden(t *testing.T, name, path string) {
	t.Helper()
	t.Logf("timestat %s", path)
	out, err := run(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	compare(t, name, "formatted", []byte(formatted(out)))
}

// formatted strips the raw table prints from timestat output, leaving
// the report headers and the formatted tables. The raw prints are
// checked field by field by checkRaw.
func formatted(out string) string {
	var buf strings.Builder
	skip := false
	for _, line := range strings.SplitAfter(out, "\n") {
		switch {
		case strings.HasPrefix(line, "Average time for each "):
			skip = true
			buf.WriteString(line)
		case line == "Formatted output:\n":
			skip = false
			buf.WriteString(line)
		case !skip:
			buf.WriteString(line)
		}
	}
	return buf.String()
}

func compare(t *testing.T, name, sub string, got []byte) {
	t.Helper()
	if err := os.Chdir("testdata"); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir("..")

	wantPath := name + "." + sub
	want, err := os.ReadFile(wantPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Treat a missing file as empty.
			want = nil
		} else {
			t.Fatal(err)
		}
	}

	if bytes.Equal(want, got) {
		return
	}

	// Write a "got" file for reference.
	gotPath := name + ".got-" + sub
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}

	data, err := exec.Command("diff", "-Nu", wantPath, gotPath).CombinedOutput()
	if len(data) > 0 {
		t.Errorf("diff -Nu %s %s:\n%s", wantPath, gotPath, string(data))
		return
	}
	// Most likely, "diff not found" so print the bad output so there is something.
	t.Errorf("want:\n%sgot:\n%s", string(want), string(got))
}
