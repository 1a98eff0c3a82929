// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archproc

import "sync"

// fill computes an outcome for every row, writing out[i] for rows[i].
// len(out) must equal len(rows).
func (p *Processor) fill(rows []Row, out []Outcome) {
	workers := p.Workers
	if workers > len(rows) {
		workers = len(rows)
	}
	if workers < 2 {
		fillChunk(rows, out, 0)
		return
	}

	// Partition into contiguous chunks of ceil(len/workers) rows;
	// the last chunk may be shorter. Each worker writes only its own
	// slice of out, so no synchronization beyond the join is needed,
	// and the merged result is identical to the sequential one.
	chunk := (len(rows) + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < len(rows); lo += chunk {
		hi := lo + chunk
		if hi > len(rows) {
			hi = len(rows)
		}
		lo, hi := lo, hi
		wg.Add(1)
		go func() {
			defer wg.Done()
			fillChunk(rows[lo:hi], out[lo:hi], lo)
		}()
	}
	wg.Wait()
}

// fillChunk processes one chunk sequentially. base is the index of the
// chunk's first row in the full dataset, so RowErrors report positions
// in the caller's row numbering.
func fillChunk(rows []Row, out []Outcome, base int) {
	for i, row := range rows {
		out[i] = processRow(base+i, row)
	}
}
