// Database stuff: an sqlite store of evaluation runs, so that runs of
// different systems and versions can be compared after the fact.
package storage

import (
	"database/sql"
	"errors"
	"math"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/semanticize/nereval/bioes"
	"github.com/semanticize/nereval/eval"
)

const create = (`
    pragma foreign_keys = on;

    create table if not exists runs (
        id        integer primary key autoincrement,
        input     text not NULL,
        benchmark text not NULL,
        started   text not NULL,
        finished  text default NULL,
        micro_f1  real default NULL,
        macro_f1  real default NULL,
        tp        integer not NULL default 0,
        fp        integer not NULL default 0,
        fn        integer not NULL default 0,
        total     integer not NULL default 0,
        correct   integer not NULL default 0,
        wrong     integer not NULL default 0,
        mismatch  integer not NULL default 0
    );

    create table if not exists sentences (
        run         integer not NULL references runs(id) on delete cascade,
        line_index  integer not NULL,
        byte_offset integer not NULL,
        verdict     integer not NULL,
        flags       integer not NULL,
        tp          integer not NULL,
        fp          integer not NULL,
        fn          integer not NULL
    );

    create table if not exists tagstats (
        run integer not NULL references runs(id) on delete cascade,
        tag text not NULL,
        tp  integer not NULL,
        fp  integer not NULL,
        fn  integer not NULL
    );

    create index if not exists sentence_run on sentences(run, line_index);
`)

// Open or create the run database at path. With overwrite, any existing
// database at path is removed first.
func MakeDB(path string, overwrite bool) (db *sql.DB, err error) {
	if overwrite {
		os.Remove(path)
	}
	db, err = sql.Open("sqlite3", path)
	if err != nil {
		return
	}
	// A connection per goroutine would each get its own :memory: database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(create)
	if err != nil {
		db.Close()
		db = nil
	}
	return
}

var ErrRunDone = errors.New("storage: run already finished")

// A run being recorded. All writes go through one transaction that Finish
// commits.
type Run struct {
	ID int64

	tx       *sql.Tx
	sentence *sql.Stmt
}

// BeginRun starts recording an evaluation of input.
func BeginRun(db *sql.DB, input, benchmark string) (run *Run, err error) {
	tx, err := db.Begin()
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			run = nil
		}
	}()

	res, err := tx.Exec(`insert into runs (input, benchmark, started)
	                     values (?, ?, ?)`,
		input, benchmark, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		return
	}
	stmt, err := tx.Prepare(`insert into sentences values (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return
	}
	return &Run{ID: id, tx: tx, sentence: stmt}, nil
}

// Sentence records the score of the sentence on input line index, which
// starts at byte offset.
func (run *Run) Sentence(index uint64, offset int64, r *eval.Result) error {
	if run.tx == nil {
		return ErrRunDone
	}
	_, err := run.sentence.Exec(run.ID, int64(index), offset,
		int(r.Verdict), int(r.Flags), r.Entities.TP, r.Entities.FP,
		r.Entities.FN)
	return err
}

// Finish stores the final statistics and commits the run.
func (run *Run) Finish(sum *eval.Summary) (err error) {
	if run.tx == nil {
		return ErrRunDone
	}
	tx := run.tx
	run.tx = nil
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var macro interface{}
	if sum.MacroDefined() {
		macro = sum.MacroF1
	}
	_, err = tx.Exec(`update runs set finished = ?, micro_f1 = ?,
	                  macro_f1 = ?, tp = ?, fp = ?, fn = ?, total = ?,
	                  correct = ?, wrong = ?, mismatch = ?
	                  where id = ?`,
		time.Now().UTC().Format(time.RFC3339), sum.MicroF1, macro,
		sum.Entities.TP, sum.Entities.FP, sum.Entities.FN,
		sum.Total, sum.Correct, sum.Wrong, sum.Mismatch, run.ID)
	if err != nil {
		return
	}

	ins, err := tx.Prepare(`insert into tagstats values (?, ?, ?, ?, ?)`)
	if err != nil {
		return
	}
	for _, tag := range bioes.Tags {
		c := sum.Tokens[tag]
		_, err = ins.Exec(run.ID, tag.String(), c.TP, c.FP, c.FN)
		if err != nil {
			return
		}
	}
	return tx.Commit()
}

// Abort discards everything recorded for the run.
func (run *Run) Abort() error {
	if run.tx == nil {
		return ErrRunDone
	}
	tx := run.tx
	run.tx = nil
	return tx.Rollback()
}

// A finished run as stored in the database.
type RunSummary struct {
	ID               int64
	Input, Benchmark string
	Summary          eval.Summary
}

// LoadRun reads back the statistics of a finished run.
func LoadRun(db *sql.DB, id int64) (*RunSummary, error) {
	rs := &RunSummary{ID: id}
	s := &rs.Summary

	var macro sql.NullFloat64
	err := db.QueryRow(`select input, benchmark, micro_f1, macro_f1, tp, fp,
	                    fn, total, correct, wrong, mismatch
	                    from runs where id = ? and finished is not NULL`, id).
		Scan(&rs.Input, &rs.Benchmark, &s.MicroF1, &macro,
			&s.Entities.TP, &s.Entities.FP, &s.Entities.FN,
			&s.Total, &s.Correct, &s.Wrong, &s.Mismatch)
	if err != nil {
		return nil, err
	}
	s.MacroF1 = math.NaN()
	if macro.Valid {
		s.MacroF1 = macro.Float64
	}

	rows, err := db.Query(`select tag, tp, fp, fn from tagstats where run = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		var c eval.Counts
		if err = rows.Scan(&tag, &c.TP, &c.FP, &c.FN); err != nil {
			return nil, err
		}
		for _, t := range bioes.Tags {
			if t.String() == tag {
				s.Tokens[t] = c
			}
		}
	}
	return rs, rows.Err()
}

// ListRuns returns the ids of all finished runs, oldest first.
func ListRuns(db *sql.DB) (ids []int64, err error) {
	rows, err := db.Query(`select id from runs where finished is not NULL
	                       order by id`)
	if err != nil {
		return
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return
		}
		ids = append(ids, id)
	}
	err = rows.Err()
	return
}
