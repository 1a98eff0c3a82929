// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/archstat/archstat/archproc"
)

// A Table is a printable grid of cells. The first row of Rows is the
// heading. An ErrRow marks a cell index past which the row is a single
// spanned message rather than data; -1 means no row spans.
type Table struct {
	Title  string
	Rows   [][]string
	Spans  map[int]bool // row indexes whose cells past column 1 are one message
	NoRows bool
}

// tables converts a batch into its row table and summary table.
// withTitle selects a per-file heading, used when archstat is invoked
// on more than one file.
func tables(b *batch, withTitle bool) []*Table {
	title := ""
	if withTitle {
		title = b.name
	}

	rt := &Table{
		Title: title,
		Rows:  [][]string{{"row", "clock", "instructions", "cycles", "CPI", "time", "MIPS", "MFLOPS"}},
		Spans: make(map[int]bool),
	}
	for i, o := range b.res.Outcomes {
		row := b.rows[i]
		if o.Err != nil {
			rt.Spans[len(rt.Rows)] = true
			rt.Rows = append(rt.Rows, []string{fmt.Sprint(i), o.Err.Err.Error()})
			continue
		}
		rt.Rows = append(rt.Rows, []string{
			fmt.Sprint(i),
			formatClock(row.ClockHz),
			formatCount(row.Instructions),
			formatCount(row.Cycles),
			fmt.Sprintf("%.2f", o.Metrics.CPI),
			formatSeconds(o.Metrics.Seconds),
			fmt.Sprintf("%.2f", o.Metrics.MIPS),
			fmt.Sprintf("%.2f", o.Metrics.MFLOPS),
		})
	}

	sum := b.res.Summary
	if sum == nil {
		return []*Table{rt, {NoRows: true}}
	}
	st := &Table{
		Rows: [][]string{
			{fmt.Sprintf("summary (%d rows)", sum.Rows), "mean", "min", "max"},
			distRow("CPI", sum.CPI, func(v float64) string { return fmt.Sprintf("%.2f", v) }),
			distRow("time", sum.Seconds, formatSeconds),
			distRow("MIPS", sum.MIPS, func(v float64) string { return fmt.Sprintf("%.2f", v) }),
			distRow("MFLOPS", sum.MFLOPS, func(v float64) string { return fmt.Sprintf("%.2f", v) }),
			{"total cycles", formatCount(sum.TotalCycles)},
		},
	}
	return []*Table{rt, st}
}

func distRow(name string, d archproc.Dist, format func(float64) string) []string {
	return []string{name, format(d.Mean), format(d.Min), format(d.Max)}
}

// FormatText appends a fixed-width text formatting of the tables to buf.
func FormatText(buf *bytes.Buffer, tables []*Table) {
	for ti, t := range tables {
		if ti > 0 {
			fmt.Fprintf(buf, "\n")
		}
		if t.Title != "" {
			fmt.Fprintf(buf, "%s\n", t.Title)
		}
		if t.NoRows {
			fmt.Fprintf(buf, "no valid results\n")
			continue
		}

		var max []int
		for ri, row := range t.Rows {
			if t.Spans[ri] {
				continue
			}
			for len(max) < len(row) {
				max = append(max, 0)
			}
			for i, s := range row {
				n := utf8.RuneCountInString(s)
				if max[i] < n {
					max[i] = n
				}
			}
		}

		for ri, row := range t.Rows {
			for i, s := range row {
				switch {
				case i == 0:
					fmt.Fprintf(buf, "%-*s", max[0], s)
				case ri == 0 && i == len(row)-1:
					// Last heading cell is left-aligned flush.
					fmt.Fprintf(buf, "  %s", s)
				case t.Spans[ri]:
					fmt.Fprintf(buf, "  %s", s)
				case ri == 0:
					fmt.Fprintf(buf, "  %-*s", max[i], s)
				default:
					fmt.Fprintf(buf, "  %*s", max[i], s)
				}
			}
			fmt.Fprintf(buf, "\n")
		}
	}
}

// formatClock prints a clock speed in Hz with the largest suffix that
// keeps the mantissa at or above one.
func formatClock(hz float64) string {
	switch {
	case hz >= 1e9:
		return trimZeros(fmt.Sprintf("%.2f", hz/1e9)) + "GHz"
	case hz >= 1e6:
		return trimZeros(fmt.Sprintf("%.2f", hz/1e6)) + "MHz"
	case hz >= 1e3:
		return trimZeros(fmt.Sprintf("%.2f", hz/1e3)) + "kHz"
	}
	return trimZeros(fmt.Sprintf("%.2f", hz)) + "Hz"
}

// formatSeconds prints a duration with the largest unit that keeps the
// mantissa at or above one.
func formatSeconds(s float64) string {
	switch {
	case s >= 1:
		return trimZeros(fmt.Sprintf("%.3f", s)) + "s"
	case s >= 1e-3:
		return trimZeros(fmt.Sprintf("%.3f", s*1e3)) + "ms"
	case s >= 1e-6:
		return trimZeros(fmt.Sprintf("%.3f", s*1e6)) + "µs"
	}
	return trimZeros(fmt.Sprintf("%.3f", s*1e9)) + "ns"
}

// formatCount prints a row count field the way the dataset format
// writes it, without a trailing fractional part for whole numbers.
func formatCount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

func trimZeros(s string) string {
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
