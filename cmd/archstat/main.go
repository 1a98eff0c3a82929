// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Archstat computes CPU performance metrics for measured workloads.
//
// Usage:
//
//	archstat [-workers n] [-html] [-save file.db] [-label name] file.txt [more.txt ...]
//
// Each input file is a row dataset (see package archfmt): one line per
// measured workload giving its clock speed, instruction count, cycle
// count, and optionally its floating-point operation count.
//
// For every row archstat reports cycles per instruction, execution
// time, MIPS, and MFLOPS, followed by a summary block with the mean,
// minimum, and maximum of each metric over the valid rows. Rows that
// cannot be computed (a zero clock speed, say) are reported in place
// and excluded from the summary; one bad row never discards a dataset.
//
// The -html option causes archstat to print the results as HTML tables.
//
// The -save option records each dataset in a SQLite database, creating
// the schema on first use. Batches are labeled with -label, or with the
// dataset's "label" configuration key, or with the file name.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/go-logr/logr/funcr"
	_ "github.com/mattn/go-sqlite3"

	"github.com/archstat/archstat/archdb"
	"github.com/archstat/archstat/archfmt"
	"github.com/archstat/archstat/archproc"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: archstat [options] file.txt [more.txt ...]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagWorkers = flag.Int("workers", runtime.GOMAXPROCS(0), "compute rows on `n` goroutines")
	flagHTML    = flag.Bool("html", false, "print results as HTML tables")
	flagSave    = flag.String("save", "", "record results in SQLite database `file`")
	flagLabel   = flag.String("label", "", "label saved batches with `name` (default the file name)")
	flagVerbose = flag.Bool("v", false, "log batch progress")
)

func main() {
	log.SetPrefix("archstat: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 || *flagWorkers < 1 {
		flag.Usage()
	}

	proc := &archproc.Processor{Workers: *flagWorkers}
	if *flagVerbose {
		proc.Recorder = archproc.LogrRecorder(funcr.New(func(prefix, args string) {
			log.Println(args)
		}, funcr.Options{}))
	}

	var db *archdb.DB
	if *flagSave != "" {
		var err error
		db, err = archdb.Open("sqlite3", *flagSave)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
	}

	var batches []*batch
	for _, file := range flag.Args() {
		f, err := os.Open(file)
		if err != nil {
			log.Fatal(err)
		}
		b, err := processFile(file, f, proc)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		batches = append(batches, b)
	}

	if db != nil {
		for _, b := range batches {
			label := *flagLabel
			if label == "" {
				label = b.label
			}
			if _, err := db.SaveBatch(context.Background(), label, b.rows, b.res); err != nil {
				log.Fatal(err)
			}
		}
	}

	var buf bytes.Buffer
	if *flagHTML {
		buf.WriteString(htmlHeader)
		for _, b := range batches {
			FormatHTML(&buf, tables(b, len(batches) > 1))
		}
		buf.WriteString(htmlFooter)
	} else {
		for i, b := range batches {
			if i > 0 {
				buf.WriteByte('\n')
			}
			FormatText(&buf, tables(b, len(batches) > 1))
		}
	}
	os.Stdout.Write(buf.Bytes())
}

// A batch is one input file's rows and their computed metrics.
type batch struct {
	name  string
	label string
	rows  []archproc.Row
	res   *archproc.BatchResult
}

// processFile reads the dataset from r and computes its metrics.
// Malformed lines are logged and skipped. The returned error is an I/O
// error only.
func processFile(name string, r io.Reader, proc *archproc.Processor) (*batch, error) {
	rd := archfmt.NewReader(r, name)
	var rows []archproc.Row
	for rd.Scan() {
		row, err := rd.Row()
		if err != nil {
			log.Print(err)
			continue
		}
		rows = append(rows, row)
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	label := rd.Config("label")
	if label == "" {
		label = name
	}
	return &batch{name: name, label: label, rows: rows, res: proc.Process(rows)}, nil
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>CPU Performance Metrics</title>
<style>
.archstat { border-collapse: collapse; }
.archstat th:nth-child(1) { text-align: left; }
.archstat tbody td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
.archstat tr th { border-top: 1px solid #666; border-bottom: 1px solid #ccc; }
.archstat td.error { color: #c00; }
</style>
</head>
<body>
`
var htmlFooter = `</body>
</html>
`
