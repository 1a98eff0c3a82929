// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archmath provides the performance-metric formulas used
// throughout archstat: CPI, execution time, MIPS, MFLOPS, speedup,
// parallel efficiency, and Amdahl's Law.
//
// Every function is pure and total over its documented domain. Inputs
// outside the domain are reported as typed errors (*DivisionByZeroError
// or *InvalidArgumentError) rather than coerced to NaN or zero, so
// callers can distinguish "the math failed" from "the math produced an
// extreme value". All arithmetic is double precision; rounding and
// formatting are presentation concerns and never happen here.
package archmath

// CPI returns the average cycles per instruction for a workload that
// consumed cycles clock cycles over instructions executed instructions.
func CPI(cycles, instructions float64) (float64, error) {
	if instructions == 0 {
		return 0, &DivisionByZeroError{"cpi", "instructions"}
	}
	return cycles / instructions, nil
}

// ExecutionTime returns the wall time in seconds for cycles clock
// cycles on a machine running at clockHz cycles per second.
func ExecutionTime(cycles, clockHz float64) (float64, error) {
	if clockHz == 0 {
		return 0, &DivisionByZeroError{"execution time", "clock speed"}
	}
	return cycles / clockHz, nil
}

// MIPS returns millions of instructions per second for instructions
// executed in seconds of wall time.
func MIPS(instructions, seconds float64) (float64, error) {
	if seconds == 0 {
		return 0, &DivisionByZeroError{"mips", "execution time"}
	}
	return instructions * 1e-6 / seconds, nil
}

// MFLOPS returns millions of floating-point operations per second for
// flops floating-point operations executed in seconds of wall time.
//
// The floating-point operation count is a distinct input; callers that
// track only an instruction count must decide for themselves whether
// the two are interchangeable for their workload.
func MFLOPS(flops, seconds float64) (float64, error) {
	if seconds == 0 {
		return 0, &DivisionByZeroError{"mflops", "execution time"}
	}
	return flops * 1e-6 / seconds, nil
}
