// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archmath

import (
	"math"
	"testing"
)

func TestAverageCPI(t *testing.T) {
	check := func(cats []Category, want float64) {
		t.Helper()
		got, err := AverageCPI(cats)
		if err != nil {
			t.Errorf("unexpected error %v", err)
			return
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	// ALU 50% at 1 cycle, Load/Store 30% at 4 cycles, Branch 20% at
	// 2 cycles: contributions 2 + 13.333... + 10, divided by the
	// three categories.
	check([]Category{
		{Name: "ALU", Percent: 50, Cycles: 1},
		{Name: "Load/Store", Percent: 30, Cycles: 4},
		{Name: "Branch", Percent: 20, Cycles: 2},
	}, (1/0.5+4/0.3+2/0.2)/3)

	// Remainder category: Branch is inferred as 100-50-30 = 20%.
	check([]Category{
		{Name: "ALU", Percent: 50, Cycles: 1},
		{Name: "Load/Store", Percent: 30, Cycles: 4},
		{Name: "Branch", Cycles: 2, Inferred: true},
	}, (1/0.5+4/0.3+2/0.2)/3)

	// A zero-share category contributes nothing but still counts.
	check([]Category{
		{Name: "ALU", Percent: 100, Cycles: 2},
		{Name: "Branch", Percent: 0, Cycles: 3},
	}, 2.0/2)

	// An inferred remainder of exactly zero is valid.
	check([]Category{
		{Name: "ALU", Percent: 100, Cycles: 2},
		{Name: "Branch", Cycles: 3, Inferred: true},
	}, 2.0/2)
}

func TestAverageCPIFinitePositive(t *testing.T) {
	// For any valid mix totaling 100 with all cycle counts >= 1 the
	// result is finite and positive.
	mixes := [][]Category{
		{{Percent: 100, Cycles: 1}},
		{{Percent: 25, Cycles: 1}, {Percent: 25, Cycles: 2}, {Percent: 25, Cycles: 3}, {Percent: 25, Cycles: 4}},
		{{Percent: 99.5, Cycles: 1.5}, {Percent: 0.5, Cycles: 20}},
		{{Percent: 60, Cycles: 7}, {Cycles: 1, Inferred: true}},
	}
	for i, m := range mixes {
		got, err := AverageCPI(m)
		if err != nil {
			t.Errorf("mix %d: unexpected error %v", i, err)
			continue
		}
		if math.IsInf(got, 0) || math.IsNaN(got) || got <= 0 {
			t.Errorf("mix %d: got %v, want finite positive", i, got)
		}
	}
}

func TestAverageCPIInvalid(t *testing.T) {
	checkErr := func(cats []Category) {
		t.Helper()
		got, err := AverageCPI(cats)
		if err == nil {
			t.Errorf("invalid mix accepted, got %v", got)
			return
		}
		if _, ok := err.(*InvalidArgumentError); !ok {
			t.Errorf("got error %T (%v), want InvalidArgumentError", err, err)
		}
	}

	// Empty mix.
	checkErr(nil)
	// Explicit shares exceed 100.
	checkErr([]Category{{Percent: 70, Cycles: 1}, {Percent: 40, Cycles: 1}})
	// Remainder would be negative.
	checkErr([]Category{{Percent: 70, Cycles: 1}, {Percent: 40, Cycles: 1}, {Cycles: 1, Inferred: true}})
	// Shares fall short of 100 with no remainder category.
	checkErr([]Category{{Percent: 70, Cycles: 1}})
	// Share outside [0, 100].
	checkErr([]Category{{Percent: -5, Cycles: 1}, {Cycles: 1, Inferred: true}})
	checkErr([]Category{{Percent: 120, Cycles: 1}})
	// Cycle count below the validation floor.
	checkErr([]Category{{Percent: 100, Cycles: 0.5}})
	// Two remainder categories.
	checkErr([]Category{{Percent: 50, Cycles: 1}, {Cycles: 1, Inferred: true}, {Cycles: 1, Inferred: true}})
}
