// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archproc

import "github.com/go-logr/logr"

// An Event describes one processing event: a batch starting or
// finishing, or a row failing.
type Event struct {
	// Msg labels the event.
	Msg string

	// Row is the index of the row the event concerns, or -1 for
	// batch-level events.
	Row int

	// Rows is the row count the event reports: the batch size on
	// "batch start", the valid-row count on "batch done".
	Rows int

	// Err is the failure being reported, if any.
	Err error
}

// A Recorder observes processing events. The engine never logs through
// a package-level logger; callers that want processing visibility
// inject a Recorder instead.
type Recorder interface {
	Record(e Event)
}

// LogrRecorder returns a Recorder that forwards events to a
// logr.Logger. Failures are logged at error level, everything else at
// info level.
func LogrRecorder(l logr.Logger) Recorder {
	return logrRecorder{l}
}

type logrRecorder struct {
	l logr.Logger
}

func (r logrRecorder) Record(e Event) {
	kvs := []interface{}{"rows", e.Rows}
	if e.Row >= 0 {
		kvs = append(kvs, "row", e.Row)
	}
	if e.Err != nil {
		r.l.Error(e.Err, e.Msg, kvs...)
		return
	}
	r.l.Info(e.Msg, kvs...)
}
