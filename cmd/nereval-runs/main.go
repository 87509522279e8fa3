// nereval-runs: lists the evaluation runs recorded by nereval --db.
//
// Prints one line per finished run with its sentence tallies and scores, so
// that systems and versions evaluated on the same benchmark can be compared.
// With --tags, the per-tag token counts of each run follow its line.
package main

import (
	"database/sql"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"gopkg.in/alecthomas/kingpin.v1"

	"github.com/semanticize/nereval/bioes"
	"github.com/semanticize/nereval/internal/report"
	"github.com/semanticize/nereval/storage"
)

type cli struct {
	app *kingpin.Application

	dbpath *string
	run    *int64
	tags   *bool
}

func newCLI() *cli {
	app := kingpin.New("nereval-runs", "List evaluation runs stored by nereval.")
	return &cli{
		app: app,
		run: app.Flag("run", "show only the run with this id").Int64(),
		tags: app.Flag("tags", "also show token counts per BIOES tag").
			Bool(),
		dbpath: app.Arg("db", "run database written by nereval --db").
			Required().ExistingFile(),
	}
}

func formatScore(f float64) string {
	if math.IsNaN(f) {
		return report.Undefined
	}
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// printRuns writes a table of the runs with the given ids to w.
func printRuns(w io.Writer, db *sql.DB, ids []int64, tags bool) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tbenchmark\tinput\ttotal\tcorrect\twrong\tmismatch\t"+
		"tp\tfp\tfn\tmicro_F1\tmacro_F1")
	for _, id := range ids {
		rs, err := storage.LoadRun(db, id)
		if err != nil {
			return fmt.Errorf("run %d: %w", id, err)
		}
		s := &rs.Summary
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t%s\n",
			rs.ID, rs.Benchmark, rs.Input, s.Total, s.Correct, s.Wrong,
			s.Mismatch, s.Entities.TP, s.Entities.FP, s.Entities.FN,
			formatScore(s.MicroF1), formatScore(s.MacroF1))
		if !tags {
			continue
		}
		for _, tag := range bioes.Tags {
			c := s.Tokens[tag]
			fmt.Fprintf(tw, "\t%s\t\t\t\t\t\t%d\t%d\t%d\t%s\t\n",
				tag, c.TP, c.FP, c.FN, formatScore(c.F1()))
		}
	}
	return tw.Flush()
}

func run(args []string, stdout, stderr io.Writer) int {
	c := newCLI()
	if _, err := c.app.Parse(args); err != nil {
		c.app.Errorf(stderr, "%s, try --help", err)
		return 1
	}

	db, err := storage.MakeDB(*c.dbpath, false)
	if err != nil {
		c.app.Errorf(stderr, "opening %s: %s", *c.dbpath, err)
		return 1
	}
	defer db.Close()

	ids := []int64{*c.run}
	if *c.run == 0 {
		ids, err = storage.ListRuns(db)
		if err != nil {
			c.app.Errorf(stderr, "%s", err)
			return 1
		}
	}
	if err = printRuns(stdout, db, ids, *c.tags); err != nil {
		c.app.Errorf(stderr, "%s", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
