// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archfmt reads and writes archstat's row dataset format.
//
// A dataset is line-oriented text. Measurement lines have the form
//
//	Row <clock> <instructions> <cycles> [<flops>]
//
// where <clock> is a number with an optional Hz, kHz, MHz, or GHz
// suffix (a bare number is taken as Hz). Lines of the form "key: value"
// with a lower-case key carry dataset configuration. Blank lines and
// lines in neither form are ignored, so datasets can be freely
// annotated.
//
// The reader is a streaming API modeled on bufio.Scanner: a malformed
// Row line is reported as a *SyntaxError carrying its file name and
// line number, and reading continues with the next line.
package archfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/archstat/archstat/archproc"
)

// A SyntaxError reports a malformed Row line.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Reader reads row datasets.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	err      error

	row  archproc.Row
	serr *SyntaxError

	config map[string]string
}

// NewReader returns a Reader parsing the dataset from rd. fileName is
// used in error messages; it is purely diagnostic.
func NewReader(rd io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Reader{
		s:        bufio.NewScanner(rd),
		fileName: fileName,
		config:   make(map[string]string),
	}
}

// Scan advances the reader to the next Row line, malformed or not, and
// reports whether one was found. When Scan returns false the caller
// should check Err for an I/O error.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := strings.TrimRight(r.s.Text(), " \t")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "Row" {
			r.row, r.serr = r.parseRow(fields[1:])
			return true
		}
		if key, val, ok := parseConfigLine(line); ok {
			r.config[key] = val
		}
		// Anything else is ignored.
	}
	r.err = r.s.Err()
	return false
}

// Row returns the row read by the last call to Scan. For a malformed
// line it returns a *SyntaxError instead; the reader remains usable.
func (r *Reader) Row() (archproc.Row, error) {
	if r.serr != nil {
		return archproc.Row{}, r.serr
	}
	return r.row, nil
}

// Err returns the first I/O error encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}

// Config returns the most recent value of a dataset configuration key,
// or "" if the key has not appeared.
func (r *Reader) Config(key string) string {
	return r.config[key]
}

func (r *Reader) syntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

func (r *Reader) parseRow(fields []string) (archproc.Row, *SyntaxError) {
	if len(fields) < 3 || len(fields) > 4 {
		return archproc.Row{}, r.syntaxError(fmt.Sprintf("want 3 or 4 fields, got %d", len(fields)))
	}
	clock, err := ParseClock(fields[0])
	if err != nil {
		return archproc.Row{}, r.syntaxError("parsing clock speed: " + err.Error())
	}
	insts, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return archproc.Row{}, r.syntaxError("parsing instruction count: " + err.Error())
	}
	cycles, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return archproc.Row{}, r.syntaxError("parsing cycle count: " + err.Error())
	}
	row := archproc.Row{ClockHz: clock, Instructions: insts, Cycles: cycles}
	if len(fields) == 4 {
		flops, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return archproc.Row{}, r.syntaxError("parsing floating-point op count: " + err.Error())
		}
		row.FLOPs = flops
	}
	return row, nil
}

// clockScales maps clock suffixes to multipliers. Order matters: "Hz"
// is a suffix of every other entry, so it must be tried last.
var clockScales = []struct {
	suffix string
	scale  float64
}{
	{"GHz", 1e9},
	{"MHz", 1e6},
	{"kHz", 1e3},
	{"Hz", 1},
}

// ParseClock parses a clock speed with an optional Hz, kHz, MHz, or
// GHz suffix into Hz. A bare number is taken as Hz.
func ParseClock(s string) (float64, error) {
	scale := 1.0
	for _, cs := range clockScales {
		if strings.HasSuffix(s, cs.suffix) {
			s, scale = s[:len(s)-len(cs.suffix)], cs.scale
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v * scale, nil
}

// parseConfigLine attempts to parse line as a "key: value" pair. The
// key must begin with a lower-case letter and contain no spaces or
// upper-case letters, which keeps free-form prose from being misread
// as configuration.
func parseConfigLine(line string) (key, val string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i <= 0 {
		return "", "", false
	}
	key = line[:i]
	for j, c := range key {
		if j == 0 && !unicode.IsLower(c) {
			return "", "", false
		}
		if unicode.IsSpace(c) || unicode.IsUpper(c) {
			return "", "", false
		}
	}
	return key, strings.TrimSpace(line[i+1:]), true
}
