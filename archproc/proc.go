// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archproc computes performance metrics over batches of
// measurement rows.
//
// A Processor applies the archmath formulas to every row of a dataset,
// producing exactly one outcome per row in input order. A row whose
// inputs fail validation yields a RowError carrying the row's index;
// it never aborts the rest of the batch. Summary statistics are
// computed over the successful rows only.
//
// Processing can be parallelized across contiguous chunks of the
// dataset. The parallel path is a pure performance optimization: its
// output is identical to sequential processing for every input.
package archproc

import (
	"fmt"

	"github.com/archstat/archstat/archmath"
)

// A Row is one unit of batch input: a machine clock speed and the
// instruction and cycle counts of a workload measured on it.
type Row struct {
	// ClockHz is the machine clock speed in cycles per second.
	ClockHz float64

	// Instructions is the number of instructions executed.
	Instructions float64

	// Cycles is the number of clock cycles consumed.
	Cycles float64

	// FLOPs is the number of floating-point operations executed.
	// If zero, Instructions is used in its place when computing
	// MFLOPS.
	FLOPs float64
}

// Metrics is the set of derived metrics for one row.
type Metrics struct {
	CPI         float64
	TotalCycles float64
	Seconds     float64
	MIPS        float64
	MFLOPS      float64
}

// A RowError reports a failed row: the positional index of the row in
// the input and the formula error that rejected it.
type RowError struct {
	Index int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// An Outcome is the result of processing one row: either its derived
// metrics or a RowError. Err is nil exactly when Metrics is valid.
type Outcome struct {
	Metrics Metrics
	Err     *RowError
}

// A BatchResult holds one Outcome per input row, in input order, plus
// summary statistics over the successful rows. Summary is nil when no
// row produced metrics; callers must treat that as "no valid results"
// rather than report a spurious average.
type BatchResult struct {
	Outcomes []Outcome
	Summary  *Summary
}

// A Processor computes batch metrics. The zero value processes
// sequentially and records nothing.
type Processor struct {
	// Workers is the number of chunks to process concurrently.
	// Values below 2 process sequentially; values above the row
	// count are reduced to it.
	Workers int

	// Recorder observes processing events. Nil disables recording.
	// The Recorder is only invoked from the goroutine calling
	// Process, after all workers have finished, so implementations
	// need not be safe for concurrent use.
	Recorder Recorder
}

// Process derives metrics for every row. The returned outcomes
// correspond 1:1, in order, to the input rows.
func (p *Processor) Process(rows []Row) *BatchResult {
	p.record(Event{Msg: "batch start", Row: -1, Rows: len(rows)})

	out := make([]Outcome, len(rows))
	p.fill(rows, out)

	valid := 0
	for i := range out {
		if out[i].Err != nil {
			p.record(Event{Msg: "row failed", Row: i, Err: out[i].Err})
			continue
		}
		valid++
	}

	res := &BatchResult{Outcomes: out, Summary: Summarize(out)}
	p.record(Event{Msg: "batch done", Row: -1, Rows: valid})
	return res
}

func (p *Processor) record(e Event) {
	if p.Recorder != nil {
		p.Recorder.Record(e)
	}
}

// processRow derives the metrics for the row at index i.
func processRow(i int, row Row) Outcome {
	fail := func(err error) Outcome {
		return Outcome{Err: &RowError{Index: i, Err: err}}
	}
	if err := validateRow(row); err != nil {
		return fail(err)
	}

	cpi, err := archmath.CPI(row.Cycles, row.Instructions)
	if err != nil {
		return fail(err)
	}
	secs, err := archmath.ExecutionTime(row.Cycles, row.ClockHz)
	if err != nil {
		return fail(err)
	}
	mips, err := archmath.MIPS(row.Instructions, secs)
	if err != nil {
		return fail(err)
	}
	flops := row.FLOPs
	if flops == 0 {
		flops = row.Instructions
	}
	mflops, err := archmath.MFLOPS(flops, secs)
	if err != nil {
		return fail(err)
	}

	return Outcome{Metrics: Metrics{
		CPI:         cpi,
		TotalCycles: row.Cycles,
		Seconds:     secs,
		MIPS:        mips,
		MFLOPS:      mflops,
	}}
}

// validateRow rejects negative inputs. Zero divisors are left for the
// formulas themselves so the error they report names the formula.
func validateRow(row Row) error {
	switch {
	case row.ClockHz < 0:
		return &archmath.InvalidArgumentError{Op: "process", Arg: "clock speed", Value: row.ClockHz, Msg: "must be positive"}
	case row.Instructions < 0:
		return &archmath.InvalidArgumentError{Op: "process", Arg: "instruction count", Value: row.Instructions, Msg: "must be positive"}
	case row.Cycles < 0:
		return &archmath.InvalidArgumentError{Op: "process", Arg: "cycle count", Value: row.Cycles, Msg: "must be positive"}
	case row.FLOPs < 0:
		return &archmath.InvalidArgumentError{Op: "process", Arg: "floating-point op count", Value: row.FLOPs, Msg: "must not be negative"}
	}
	return nil
}
