// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archproc

import "github.com/aclements/go-moremath/stats"

// A Dist summarizes the distribution of one metric across the
// successful rows of a batch.
type Dist struct {
	Mean float64
	Min  float64
	Max  float64
	Sum  float64
}

// A Summary aggregates the successful rows of a batch. Failed rows
// contribute nothing.
type Summary struct {
	CPI     Dist
	MIPS    Dist
	MFLOPS  Dist
	Seconds Dist

	// TotalCycles is the sum of cycles over the successful rows.
	TotalCycles float64

	// Rows is the number of successful rows.
	Rows int
}

// Summarize computes summary statistics over the successful outcomes,
// or returns nil if there are none.
func Summarize(outcomes []Outcome) *Summary {
	var cpi, mips, mflops, secs []float64
	total := 0.0
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		cpi = append(cpi, o.Metrics.CPI)
		mips = append(mips, o.Metrics.MIPS)
		mflops = append(mflops, o.Metrics.MFLOPS)
		secs = append(secs, o.Metrics.Seconds)
		total += o.Metrics.TotalCycles
	}
	if len(cpi) == 0 {
		return nil
	}
	return &Summary{
		CPI:         dist(cpi),
		MIPS:        dist(mips),
		MFLOPS:      dist(mflops),
		Seconds:     dist(secs),
		TotalCycles: total,
		Rows:        len(cpi),
	}
}

func dist(values []float64) Dist {
	min, max := stats.Bounds(values)
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return Dist{Mean: stats.Mean(values), Min: min, Max: max, Sum: sum}
}
