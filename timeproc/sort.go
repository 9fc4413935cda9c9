// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timeproc

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/zchee/timestat/timefmt"
)

// SortKeys sorts keys projected by s in ascending order using
// s.Compare.
func SortKeys(s *Schema, keys []string) {
	if s.Order() == "alpha" {
		sort.Strings(keys)
		return
	}
	// Parse each key once rather than on every comparison.
	nks := make([]numKey, len(keys))
	for i, k := range keys {
		nks[i] = newNumKey(k)
	}
	sort.Slice(nks, func(i, j int) bool {
		return nks[i].compare(nks[j]) < 0
	})
	for i, nk := range nks {
		keys[i] = nk.s
	}
}

// A numKey is a key with its numeric value, if it has one.
type numKey struct {
	s   string
	v   float64
	num bool
}

func newNumKey(s string) numKey {
	v, err := parseKey(s)
	return numKey{s, v, err == nil}
}

// compare orders numbers by value and before non-numbers. Keys that
// are equal as numbers, or are both non-numbers, fall back to their
// text so the order is total.
func (a numKey) compare(b numKey) int {
	switch {
	case a.num && !b.num:
		return -1
	case !a.num && b.num:
		return 1
	case a.num && a.v < b.v:
		return -1
	case a.num && a.v > b.v:
		return 1
	}
	return strings.Compare(a.s, b.s)
}

// formatNum returns the shortest decimal text that parses back to v.
func formatNum(v float64) string {
	if v == 0 {
		// Fold -0 into 0.
		v = 0
	}
	if math.Abs(v) >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseKey parses a numeric key with parseNum and rejects the values
// that are not usable as a group identity.
func parseKey(x string) (float64, error) {
	v, err := parseNum(x)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, timefmt.ErrNotFinite
	}
	return v, nil
}

const numPrefixes = `KMGTPEZY`

var numRe = regexp.MustCompile(`^([0-9.]+)([k` + numPrefixes + `]i?)?[bB]?$`)

// parseNum is a fuzzy number parser. It supports common patterns in
// size columns, such as SI and IEC prefixes ("4k", "1MiB").
func parseNum(x string) (float64, error) {
	v, err := strconv.ParseFloat(x, 64)
	if err == nil {
		return v, nil
	}
	var ne *strconv.NumError
	if errors.As(err, &ne) && ne.Err == strconv.ErrRange {
		return 0, strconv.ErrRange
	}

	subs := numRe.FindStringSubmatch(x)
	if subs == nil {
		return 0, strconv.ErrSyntax
	}
	v, err = strconv.ParseFloat(subs[1], 64)
	if err != nil {
		return 0, strconv.ErrSyntax
	}
	exp := 0
	if len(subs[2]) > 0 {
		pre := subs[2][0]
		if pre == 'k' {
			pre = 'K'
		}
		exp = 1 + strings.IndexByte(numPrefixes, pre)
	}
	base := 1000.0
	if strings.HasSuffix(subs[2], "i") {
		base = 1024
	}
	return v * math.Pow(base, float64(exp)), nil
}
