// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archmath

import "fmt"

// A DivisionByZeroError reports that a formula's required divisor was
// zero. Op names the formula and Divisor names the offending input.
type DivisionByZeroError struct {
	Op      string
	Divisor string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s: division by zero: %s is zero", e.Op, e.Divisor)
}

// An InvalidArgumentError reports an input outside a formula's
// documented domain.
type InvalidArgumentError struct {
	Op  string
	Arg string
	// Value is the rejected input value.
	Value float64
	// Msg says what the domain requires.
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s %v: %s", e.Op, e.Arg, e.Value, e.Msg)
}
