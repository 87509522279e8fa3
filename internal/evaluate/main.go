// Package evaluate runs an evaluation: it reads a corpus of gold and
// predicted sentences, scores each one and writes the reports.
package evaluate

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/rs/zerolog"

	"github.com/semanticize/nereval/eval"
	"github.com/semanticize/nereval/internal/corpus"
	"github.com/semanticize/nereval/internal/report"
	"github.com/semanticize/nereval/linking"
	"github.com/semanticize/nereval/storage"
)

// A Sink receives the score of every sentence, in input order.
type Sink interface {
	Sentence(rec *corpus.Record, r *eval.Result) error
}

// Evaluate scores every record from r against kb, passing each result to
// the sinks, and returns the totals. Records are processed one at a time.
//
// If progress is not nil, it is called with the number of input bytes
// consumed after each record.
func Evaluate(r *corpus.Reader, kb linking.KB, progress func(int64),
	sinks ...Sink) (*eval.Accumulator, error) {

	acc := &eval.Accumulator{}
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return acc, nil
		} else if err != nil {
			return acc, err
		}

		res := eval.Score(rec.Gold, rec.Pred, kb)
		acc.Record(&res)
		for _, s := range sinks {
			if err := s.Sentence(rec, &res); err != nil {
				return acc, err
			}
		}
		if progress != nil {
			progress(r.Offset())
		}
	}
}

// runSink records each sentence in the run store.
type runSink struct{ run *storage.Run }

func (s runSink) Sentence(rec *corpus.Record, r *eval.Result) error {
	return s.run.Sentence(rec.Index, rec.Offset, r)
}

type Options struct {
	Input  string
	OutDir string

	// Path of an sqlite database to record the run in. Optional.
	DBPath string

	KB         linking.KB
	Benchmarks []string

	// Show a progress bar on stderr.
	Progress bool
}

// What Main did.
type Outcome struct {
	Layout  report.Layout
	Summary eval.Summary
	Stats   report.Stats

	// Id of the run in the database, if any.
	RunID int64
}

type fatal struct{ error }

// Main runs a complete evaluation as described by opts.
//
// All errors are I/O errors (unreadable input, output directory that can't
// be created, unwritable reports) and abort the evaluation.
func Main(opts Options, logger zerolog.Logger) (out *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(fatal)
			if !ok {
				panic(r)
			}
			out, err = nil, f.error
		}
	}()
	return realMain(opts, logger), nil
}

func realMain(opts Options, logger zerolog.Logger) *Outcome {
	var err error
	check := func(what string) {
		if err != nil {
			panic(fatal{fmt.Errorf("%s: %w", what, err)})
		}
	}

	if opts.KB.Prefix == "" {
		opts.KB = linking.DefaultKB
	}
	if opts.Benchmarks == nil {
		opts.Benchmarks = report.DefaultBenchmarks
	}

	layout := report.NewLayout(opts.Input, opts.OutDir, opts.Benchmarks)
	err = layout.MakeDir()
	check("cannot create result folder " + layout.Dir)
	logger.Info().Str("stat", layout.Stat).Str("ner_ned", layout.NerNed).
		Str("ner", layout.Ner).Msg("output paths")

	in, size, err := corpus.Open(opts.Input)
	check("opening input")
	defer in.Close()

	nerNed, err := report.Create(layout.NerNed, report.Verdicts)
	check("creating " + layout.NerNed)
	defer nerNed.Close()
	ner, err := report.Create(layout.Ner, report.TagErrors)
	check("creating " + layout.Ner)
	defer ner.Close()
	sinks := []Sink{nerNed, ner}

	var run *storage.Run
	if opts.DBPath != "" {
		var db *sql.DB
		db, err = storage.MakeDB(opts.DBPath, false)
		check("opening database " + opts.DBPath)
		defer db.Close()

		run, err = storage.BeginRun(db, opts.Input, layout.Benchmark)
		check("starting run")
		// Abort is a no-op error once Finish has run.
		defer run.Abort()
		sinks = append(sinks, runSink{run})
		logger.Debug().Int64("run", run.ID).Str("db", opts.DBPath).Msg("recording run")
	}

	var progress func(int64)
	if opts.Progress && size > 0 {
		bar := pb.New64(size).SetUnits(pb.U_BYTES)
		bar.Output = os.Stderr
		bar.Start()
		defer bar.Finish()
		progress = func(n int64) { bar.Set64(n) }
	}

	logger.Info().Str("input", opts.Input).Str("benchmark", layout.Benchmark).
		Str("kb_prefix", opts.KB.Prefix).Msg("evaluating")
	start := time.Now()

	acc, err := Evaluate(corpus.NewReader(in), opts.KB, progress, sinks...)
	check("evaluating " + opts.Input)
	sum := acc.Finalize()
	elapsed := time.Since(start)

	err = nerNed.Close()
	check("writing " + layout.NerNed)
	err = ner.Close()
	check("writing " + layout.Ner)

	stats := report.NewStats(report.RunInfo{
		Input:      opts.Input,
		Benchmark:  layout.Benchmark,
		Duration:   elapsed,
		NerNedSize: nerNed.Size(),
		NerSize:    ner.Size(),
	}, &sum)
	err = stats.WriteFile(layout.Stat)
	check("writing " + layout.Stat)

	out := &Outcome{Layout: layout, Summary: sum, Stats: stats}
	if run != nil {
		err = run.Finish(&sum)
		check("storing run")
		out.RunID = run.ID
	}

	ev := logger.Info().Int("sentences", sum.Total).Int("mismatch", sum.Mismatch).
		Float64("micro_f1", sum.MicroF1).Dur("duration", elapsed)
	if sum.MacroDefined() {
		ev = ev.Float64("macro_f1", sum.MacroF1)
	} else {
		logger.Warn().Msg("no sentence could be scored; macro F1 is undefined")
	}
	ev.Msg("done")
	return out
}
