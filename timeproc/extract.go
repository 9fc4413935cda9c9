// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timeproc

import (
	"fmt"

	"github.com/zchee/timestat/timefmt"
)

// An extractor returns the raw value of some column of a timing
// record, and whether the record has that column at all.
type extractor func(*timefmt.Record) (string, bool)

// newExtractor returns a function that extracts column col from a
// record.
//
// Records from one file share a Header, so the column index is
// resolved once per Header rather than once per record.
func newExtractor(col string) (extractor, error) {
	if len(col) == 0 {
		return nil, fmt.Errorf("key must not be empty")
	}

	var hdr *timefmt.Header
	pos, ok := -1, false
	return func(r *timefmt.Record) (string, bool) {
		if r.Header != hdr {
			hdr = r.Header
			pos, ok = -1, false
			if hdr != nil {
				pos, ok = hdr.Index(col)
			}
		}
		if !ok || pos >= len(r.Values) {
			return "", false
		}
		return r.Values[pos], true
	}, nil
}
