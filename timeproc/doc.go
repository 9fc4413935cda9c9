// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timeproc provides tools for grouping and sorting timing
// records by a key column.
//
// A Schema names the key column of a timefmt.Record and declares the
// type of its values. Projecting a Record through a Schema validates
// the key and returns its canonical value, which callers use to
// group records, typically in a map. At the end of the stream, the
// observed keys are sorted with SortKeys in the natural order of the
// Schema's key type: lexical for strings, numeric for numbers.
package timeproc
