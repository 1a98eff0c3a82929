// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archproc

import (
	"errors"
	"math"
	"testing"

	"github.com/archstat/archstat/archmath"
)

func TestProcess(t *testing.T) {
	// Clock speeds are in MHz in the source data; the engine is
	// unit-agnostic, CPI is unaffected.
	rows := []Row{
		{ClockHz: 2400, Instructions: 1_000_000, Cycles: 2_000_000},
		{ClockHz: 3000, Instructions: 1_500_000, Cycles: 3_000_000},
		{ClockHz: 1600, Instructions: 800_000, Cycles: 1_200_000},
	}
	var p Processor
	res := p.Process(rows)

	if len(res.Outcomes) != len(rows) {
		t.Fatalf("got %d outcomes, want %d", len(res.Outcomes), len(rows))
	}
	wantCPI := []float64{2.0, 2.0, 1.5}
	for i, o := range res.Outcomes {
		if o.Err != nil {
			t.Errorf("row %d: unexpected error %v", i, o.Err)
			continue
		}
		if o.Metrics.CPI != wantCPI[i] {
			t.Errorf("row %d: CPI = %v, want %v", i, o.Metrics.CPI, wantCPI[i])
		}
	}

	s := res.Summary
	if s == nil {
		t.Fatal("no summary for all-valid batch")
	}
	if s.Rows != 3 {
		t.Errorf("Summary.Rows = %d, want 3", s.Rows)
	}
	if want := (2.0 + 2.0 + 1.5) / 3; math.Abs(s.CPI.Mean-want) > 1e-12 {
		t.Errorf("CPI mean = %v, want %v", s.CPI.Mean, want)
	}
	if s.CPI.Min != 1.5 || s.CPI.Max != 2.0 {
		t.Errorf("CPI bounds = [%v, %v], want [1.5, 2]", s.CPI.Min, s.CPI.Max)
	}
	if want := 2.0 + 2.0 + 1.5; s.CPI.Sum != want {
		t.Errorf("CPI sum = %v, want %v", s.CPI.Sum, want)
	}
	if want := 6_200_000.0; s.TotalCycles != want {
		t.Errorf("TotalCycles = %v, want %v", s.TotalCycles, want)
	}
}

func TestProcessMetrics(t *testing.T) {
	// ClockSpeed=2.4 GHz, Instructions=1M, Cycles=2M: CPI 2.0,
	// execution time 1/1200 s, MIPS 1200.
	var p Processor
	res := p.Process([]Row{{ClockHz: 2.4e9, Instructions: 1_000_000, Cycles: 2_000_000}})
	m := res.Outcomes[0].Metrics
	if res.Outcomes[0].Err != nil {
		t.Fatal(res.Outcomes[0].Err)
	}
	if m.CPI != 2.0 {
		t.Errorf("CPI = %v, want 2", m.CPI)
	}
	if math.Abs(m.Seconds-1.0/1200) > 1e-15 {
		t.Errorf("Seconds = %v, want %v", m.Seconds, 1.0/1200)
	}
	if math.Abs(m.MIPS-1200)/1200 > 1e-6 {
		t.Errorf("MIPS = %v, want 1200", m.MIPS)
	}
	// No FLOP count: MFLOPS falls back to the instruction count.
	if m.MFLOPS != m.MIPS {
		t.Errorf("MFLOPS = %v, want %v (instruction-count fallback)", m.MFLOPS, m.MIPS)
	}
	if m.TotalCycles != 2_000_000 {
		t.Errorf("TotalCycles = %v, want 2e6", m.TotalCycles)
	}

	// With an explicit FLOP count the two diverge.
	res = p.Process([]Row{{ClockHz: 2.4e9, Instructions: 1_000_000, Cycles: 2_000_000, FLOPs: 500_000}})
	m = res.Outcomes[0].Metrics
	if math.Abs(m.MFLOPS-600)/600 > 1e-6 {
		t.Errorf("MFLOPS = %v, want 600", m.MFLOPS)
	}
}

func TestProcessRowErrors(t *testing.T) {
	rows := []Row{
		{ClockHz: 2400, Instructions: 1_000_000, Cycles: 2_000_000},
		{ClockHz: 0, Instructions: 1_000_000, Cycles: 2_000_000},
		{ClockHz: 1600, Instructions: 800_000, Cycles: 1_200_000},
	}
	var p Processor
	res := p.Process(rows)

	if res.Outcomes[0].Err != nil || res.Outcomes[2].Err != nil {
		t.Errorf("sibling rows failed: %v, %v", res.Outcomes[0].Err, res.Outcomes[2].Err)
	}
	re := res.Outcomes[1].Err
	if re == nil {
		t.Fatal("zero clock speed accepted")
	}
	if re.Index != 1 {
		t.Errorf("RowError.Index = %d, want 1", re.Index)
	}
	var dz *archmath.DivisionByZeroError
	if !errors.As(re, &dz) {
		t.Errorf("RowError wraps %T, want DivisionByZeroError", re.Err)
	}

	// Summary covers the two valid rows only.
	if res.Summary == nil || res.Summary.Rows != 2 {
		t.Fatalf("Summary = %+v, want 2 valid rows", res.Summary)
	}
	if res.Summary.TotalCycles != 3_200_000 {
		t.Errorf("TotalCycles = %v, want 3.2e6", res.Summary.TotalCycles)
	}
}

func TestProcessValidation(t *testing.T) {
	check := func(row Row) {
		t.Helper()
		var p Processor
		res := p.Process([]Row{row})
		if res.Outcomes[0].Err == nil {
			t.Errorf("row %+v accepted", row)
			return
		}
		if res.Summary != nil {
			t.Errorf("row %+v: summary over zero valid rows", row)
		}
	}

	check(Row{ClockHz: -1, Instructions: 1, Cycles: 1})
	check(Row{ClockHz: 1, Instructions: -1, Cycles: 1})
	check(Row{ClockHz: 1, Instructions: 1, Cycles: -1})
	check(Row{ClockHz: 1, Instructions: 1, Cycles: 1, FLOPs: -1})
	check(Row{ClockHz: 1, Instructions: 0, Cycles: 1})
	check(Row{ClockHz: 0, Instructions: 1, Cycles: 1})
	// Zero cycles give a zero execution time, which no rate survives.
	check(Row{ClockHz: 1, Instructions: 1, Cycles: 0})
}

func TestProcessEmpty(t *testing.T) {
	var p Processor
	res := p.Process(nil)
	if len(res.Outcomes) != 0 {
		t.Errorf("got %d outcomes for empty input", len(res.Outcomes))
	}
	if res.Summary != nil {
		t.Error("summary for empty input")
	}
}

type captureRecorder struct {
	events []Event
}

func (c *captureRecorder) Record(e Event) {
	c.events = append(c.events, e)
}

func TestRecorder(t *testing.T) {
	rows := []Row{
		{ClockHz: 2400, Instructions: 1_000_000, Cycles: 2_000_000},
		{ClockHz: 0, Instructions: 1, Cycles: 1},
	}
	var rec captureRecorder
	p := Processor{Recorder: &rec}
	p.Process(rows)

	if len(rec.events) != 3 {
		t.Fatalf("got %d events, want 3", len(rec.events))
	}
	if rec.events[0].Msg != "batch start" || rec.events[0].Rows != 2 {
		t.Errorf("first event = %+v, want batch start with 2 rows", rec.events[0])
	}
	if rec.events[1].Msg != "row failed" || rec.events[1].Row != 1 || rec.events[1].Err == nil {
		t.Errorf("second event = %+v, want failure of row 1", rec.events[1])
	}
	if rec.events[2].Msg != "batch done" || rec.events[2].Rows != 1 {
		t.Errorf("third event = %+v, want batch done with 1 valid row", rec.events[2])
	}
}
