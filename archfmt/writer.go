// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archfmt

import (
	"fmt"
	"io"

	"github.com/archstat/archstat/archproc"
)

// A Writer writes row datasets in canonical form: clock speeds in
// plain Hz and the FLOP field only when it is set.
type Writer struct {
	w io.Writer
}

// NewWriter returns a writer emitting the dataset format to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteConfig writes a "key: value" configuration line.
func (w *Writer) WriteConfig(key, value string) error {
	_, err := fmt.Fprintf(w.w, "%s: %s\n", key, value)
	return err
}

// WriteRow writes one Row line.
func (w *Writer) WriteRow(row archproc.Row) error {
	var err error
	if row.FLOPs != 0 {
		_, err = fmt.Fprintf(w.w, "Row %v %v %v %v\n", row.ClockHz, row.Instructions, row.Cycles, row.FLOPs)
	} else {
		_, err = fmt.Fprintf(w.w, "Row %v %v %v\n", row.ClockHz, row.Instructions, row.Cycles)
	}
	return err
}
