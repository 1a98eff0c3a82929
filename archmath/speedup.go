// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archmath

import "math"

// Speedup returns the ratio of baseline execution time to optimized
// execution time, both in the same unit.
func Speedup(baseline, optimized float64) (float64, error) {
	if optimized == 0 {
		return 0, &DivisionByZeroError{"speedup", "optimized time"}
	}
	return baseline / optimized, nil
}

// Efficiency returns the parallel efficiency, as a percentage, of
// achieving speedup on procs processors. Perfect linear scaling is
// 100%.
func Efficiency(speedup, procs float64) (float64, error) {
	if procs <= 0 {
		return 0, &InvalidArgumentError{"efficiency", "processor count", procs, "must be positive"}
	}
	return speedup / procs * 100, nil
}

// AmdahlSpeedup returns the speedup bounded by Amdahl's Law for a
// workload whose parallelizable fraction p is run on n processors
// (or, equivalently, whose enhanced fraction is sped up by a factor
// of n):
//
//	1 / ((1 - p) + p/n)
//
// p must be in [0, 1] and n must be positive and finite.
func AmdahlSpeedup(p, n float64) (float64, error) {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, &InvalidArgumentError{"amdahl", "parallel fraction", p, "must be in [0, 1]"}
	}
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &InvalidArgumentError{"amdahl", "processor count", n, "must be positive and finite"}
	}
	return 1 / ((1 - p) + p/n), nil
}

// A SpeedupResult reports a measured speedup alongside the theoretical
// bound from Amdahl's Law for the same configuration.
type SpeedupResult struct {
	// Actual is baseline time divided by optimized time.
	Actual float64
	// Theoretical is the Amdahl's Law speedup for ParallelFraction
	// of the workload on the given processor count.
	Theoretical float64
	// ParallelFraction is the fraction of the workload that was
	// parallelized, in [0, 1].
	ParallelFraction float64
	// Efficiency is Actual relative to the processor count, as a
	// percentage.
	Efficiency float64
}

// AnalyzeSpeedup compares a measured baseline/optimized time pair
// against the Amdahl's Law bound for parallelizing fraction p of the
// workload across procs processors.
func AnalyzeSpeedup(baseline, optimized, p, procs float64) (SpeedupResult, error) {
	actual, err := Speedup(baseline, optimized)
	if err != nil {
		return SpeedupResult{}, err
	}
	theoretical, err := AmdahlSpeedup(p, procs)
	if err != nil {
		return SpeedupResult{}, err
	}
	eff, err := Efficiency(actual, procs)
	if err != nil {
		return SpeedupResult{}, err
	}
	return SpeedupResult{
		Actual:           actual,
		Theoretical:      theoretical,
		ParallelFraction: p,
		Efficiency:       eff,
	}, nil
}

// A Machine describes a machine configuration for execution-time
// comparisons: its clock speed in cycles per second and its average
// cycles per instruction.
type Machine struct {
	ClockHz float64
	CPI     float64
}

// ExecutionTime returns the time in seconds for m to execute the given
// number of instructions.
func (m Machine) ExecutionTime(instructions float64) (float64, error) {
	return ExecutionTime(instructions*m.CPI, m.ClockHz)
}

// CompareMachines returns the speedup of other relative to base for a
// workload of the given instruction count. A result above 1 means
// other is faster.
func CompareMachines(base, other Machine, instructions float64) (float64, error) {
	tb, err := base.ExecutionTime(instructions)
	if err != nil {
		return 0, err
	}
	to, err := other.ExecutionTime(instructions)
	if err != nil {
		return 0, err
	}
	return Speedup(tb, to)
}
