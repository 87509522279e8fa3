// nereval: scores NER+NED system output against gold-standard annotations.
//
// Takes a file of tagged sentences, one per line as
//
//	line_index <TAB> gold_tokens <TAB> predicted_tokens
//
// and writes a statistics file plus per-sentence linking and tagging details
// to a subdirectory of the results directory named after the benchmark and
// the system.
//
// Run with --help to see command-line usage.
package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/alecthomas/kingpin.v1"

	"github.com/semanticize/nereval/internal/config"
	"github.com/semanticize/nereval/internal/evaluate"
	"github.com/semanticize/nereval/linking"
)

type cli struct {
	app *kingpin.Application

	input    *string
	outdir   *string
	dbpath   *string
	kbPrefix *string
	quiet    *bool
}

func newCLI() *cli {
	app := kingpin.New("nereval",
		"Score NER+NED system output against gold-standard annotations.")
	return &cli{
		app: app,
		input: app.Arg("input",
			"system output in IOB format (tab-separated index, gold, predicted)").
			Required().String(),
		outdir: app.Arg("outdir", "directory for evaluation results").
			Required().String(),
		dbpath: app.Flag("db",
			"also record the run in this sqlite database").String(),
		kbPrefix: app.Flag("kb-prefix",
			"prefix of knowledge base identifiers (default from NEREVAL_KB_PREFIX)").
			String(),
		quiet: app.Flag("quiet", "don't show a progress bar").Bool(),
	}
}

// Command-line arguments override the environment.
func (c *cli) options(cfg *config.Config) evaluate.Options {
	kb := linking.KB{Prefix: cfg.KBPrefix}
	if *c.kbPrefix != "" {
		kb.Prefix = *c.kbPrefix
	}
	return evaluate.Options{
		Input:      *c.input,
		OutDir:     *c.outdir,
		DBPath:     *c.dbpath,
		KB:         kb,
		Benchmarks: cfg.Benchmarks,
		Progress:   cfg.Progress && !*c.quiet,
	}
}

// run returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	c := newCLI()
	if _, err := c.app.Parse(args); err != nil {
		c.app.Errorf(stderr, "%s, try --help", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		c.app.Errorf(stderr, "failed to load config: %s", err)
		return 1
	}
	logger := cfg.NewLogger()

	out, err := evaluate.Main(c.options(cfg), logger)
	if err != nil {
		logger.Error().Err(err).Msg("evaluation failed")
		return 1
	}

	fmt.Fprintf(stdout, "\nOutput path:\n%s\n%s\n%s\n", out.Layout.Stat,
		out.Layout.NerNed, out.Layout.Ner)
	fmt.Fprint(stdout, "\nDone!\n\n")
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
