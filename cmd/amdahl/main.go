// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Amdahl evaluates Amdahl's Law for a parallelized workload.
//
// Usage:
//
//	amdahl -p fraction -n procs [-baseline t] [-optimized t]
//
// Given the parallelizable fraction p of a workload and a processor
// count n, amdahl prints the theoretical speedup bound
// 1 / ((1-p) + p/n).
//
// With -baseline and -optimized, the measured run times before and
// after parallelization, amdahl also prints the achieved speedup and
// the parallel efficiency of the n processors.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/archstat/archstat/archmath"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: amdahl -p fraction -n procs [-baseline t] [-optimized t]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagP         = flag.Float64("p", -1, "parallelizable `fraction` of the workload, in [0, 1]")
	flagN         = flag.Float64("n", 0, "number of `procs`")
	flagBaseline  = flag.Float64("baseline", 0, "measured serial run `time`")
	flagOptimized = flag.Float64("optimized", 0, "measured parallel run `time`")
)

func main() {
	log.SetPrefix("amdahl: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 0 || *flagP < 0 || *flagN <= 0 {
		flag.Usage()
	}
	if (*flagBaseline == 0) != (*flagOptimized == 0) {
		log.Fatal("-baseline and -optimized must be given together")
	}

	if err := report(os.Stdout, *flagP, *flagN, *flagBaseline, *flagOptimized); err != nil {
		log.Fatal(err)
	}
}

// report prints the Amdahl bound for p and n and, when measured times
// are given, the achieved speedup and efficiency.
func report(w io.Writer, p, n, baseline, optimized float64) error {
	if baseline == 0 {
		bound, err := archmath.AmdahlSpeedup(p, n)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "theoretical speedup  %.3fx\n", bound)
		return nil
	}

	res, err := archmath.AnalyzeSpeedup(baseline, optimized, p, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "theoretical speedup  %.3fx\n", res.Theoretical)
	fmt.Fprintf(w, "achieved speedup     %.3fx\n", res.Actual)
	fmt.Fprintf(w, "efficiency           %.1f%%\n", res.Efficiency)
	return nil
}
