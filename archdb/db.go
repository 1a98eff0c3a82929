// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archdb persists batch results to a SQL database so runs can
// be compared later. It speaks database/sql; sqlite3 is the driver the
// archstat command registers, but any driver accepting the same query
// syntax works.
package archdb

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/archstat/archstat/archproc"
)

// DB is a handle to a result database. It is safe for concurrent use
// by multiple goroutines.
type DB struct {
	sql *sql.DB
	// prepared statements
	insertBatch   *sql.Stmt
	insertOutcome *sql.Stmt
}

// Open opens a result database, creating any missing tables. The
// parameters are the same as for sql.Open.
func Open(driverName, dataSourceName string) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if dataSourceName == ":memory:" {
		// Each sqlite connection gets its own in-memory database;
		// a pool of them would see different schemas.
		sqlDB.SetMaxOpenConns(1)
	}
	db := &DB{sql: sqlDB}
	if err := db.createTables(driverName); err != nil {
		sqlDB.Close()
		return nil, err
	}
	if err := db.prepareStatements(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database handle and its prepared statements.
func (db *DB) Close() error {
	if db.insertBatch != nil {
		db.insertBatch.Close()
	}
	if db.insertOutcome != nil {
		db.insertOutcome.Close()
	}
	return db.sql.Close()
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name, to select driver-specific column syntax.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Batches (
	BatchID INTEGER PRIMARY KEY {{if .sqlite3}}AUTOINCREMENT{{else}}AUTO_INCREMENT{{end}},
	Label VARCHAR(255),
	Created TIMESTAMP
);
CREATE TABLE IF NOT EXISTS Outcomes (
	BatchID INTEGER,
	RowIndex INTEGER,
	ClockHz DOUBLE,
	Instructions DOUBLE,
	Cycles DOUBLE,
	FLOPs DOUBLE,
	CPI DOUBLE,
	Seconds DOUBLE,
	MIPS DOUBLE,
	MFLOPS DOUBLE,
	Error TEXT,
	PRIMARY KEY (BatchID, RowIndex),
	FOREIGN KEY (BatchID) REFERENCES Batches(BatchID) ON DELETE CASCADE
);
`))

func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements() error {
	var err error
	db.insertBatch, err = db.sql.Prepare("INSERT INTO Batches(Label, Created) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertOutcome, err = db.sql.Prepare(
		"INSERT INTO Outcomes(BatchID, RowIndex, ClockHz, Instructions, Cycles, FLOPs, CPI, Seconds, MIPS, MFLOPS, Error) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	return err
}

// A Batch describes one stored batch.
type Batch struct {
	ID      int64
	Label   string
	Created time.Time
}

// SaveBatch stores the rows of a processed batch together with their
// outcomes and returns the new batch's ID. label is free-form text
// identifying the run.
func (db *DB) SaveBatch(ctx context.Context, label string, rows []archproc.Row, res *archproc.BatchResult) (int64, error) {
	if len(rows) != len(res.Outcomes) {
		return 0, errors.New("archdb: rows and outcomes differ in length")
	}
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	r, err := tx.StmtContext(ctx, db.insertBatch).ExecContext(ctx, label, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}

	insert := tx.StmtContext(ctx, db.insertOutcome)
	for i, row := range rows {
		o := res.Outcomes[i]
		var cpi, secs, mips, mflops sql.NullFloat64
		var errText sql.NullString
		if o.Err != nil {
			errText = sql.NullString{String: o.Err.Err.Error(), Valid: true}
		} else {
			cpi = sql.NullFloat64{Float64: o.Metrics.CPI, Valid: true}
			secs = sql.NullFloat64{Float64: o.Metrics.Seconds, Valid: true}
			mips = sql.NullFloat64{Float64: o.Metrics.MIPS, Valid: true}
			mflops = sql.NullFloat64{Float64: o.Metrics.MFLOPS, Valid: true}
		}
		_, err := insert.ExecContext(ctx, id, i,
			row.ClockHz, row.Instructions, row.Cycles, row.FLOPs,
			cpi, secs, mips, mflops, errText)
		if err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Batches lists the stored batches, oldest first.
func (db *DB) Batches(ctx context.Context) ([]Batch, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT BatchID, Label, Created FROM Batches ORDER BY BatchID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var batches []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.Label, &b.Created); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// Batch reloads a stored batch's input rows and outcomes in row order.
// Failed rows come back with a RowError whose message matches the
// stored one; the original error's concrete type is not preserved.
// Summary statistics are not stored; recompute them with
// archproc.Summarize.
func (db *DB) Batch(ctx context.Context, id int64) ([]archproc.Row, []archproc.Outcome, error) {
	rows, err := db.sql.QueryContext(ctx,
		"SELECT RowIndex, ClockHz, Instructions, Cycles, FLOPs, CPI, Seconds, MIPS, MFLOPS, Error FROM Outcomes WHERE BatchID = ? ORDER BY RowIndex", id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var inputs []archproc.Row
	var outcomes []archproc.Outcome
	for rows.Next() {
		var idx int
		var in archproc.Row
		var cpi, secs, mips, mflops sql.NullFloat64
		var errText sql.NullString
		if err := rows.Scan(&idx, &in.ClockHz, &in.Instructions, &in.Cycles, &in.FLOPs,
			&cpi, &secs, &mips, &mflops, &errText); err != nil {
			return nil, nil, err
		}
		var o archproc.Outcome
		if errText.Valid {
			o.Err = &archproc.RowError{Index: idx, Err: errors.New(errText.String)}
		} else {
			o.Metrics = archproc.Metrics{
				CPI:         cpi.Float64,
				TotalCycles: in.Cycles,
				Seconds:     secs.Float64,
				MIPS:        mips.Float64,
				MFLOPS:      mflops.Float64,
			}
		}
		inputs = append(inputs, in)
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	if inputs == nil {
		return nil, nil, fmt.Errorf("archdb: no batch %d", id)
	}
	return inputs, outcomes, nil
}
