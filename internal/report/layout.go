// Package report writes evaluation results: a statistics file and two
// per-sentence detail files.
package report

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Benchmarks recognized in input file names.
var DefaultBenchmarks = []string{"clueweb", "manual", "conll"}

// Benchmark name for inputs that match none of the known benchmarks.
const OtherBenchmark = "others"

// Paths of the output files for one evaluation run.
type Layout struct {
	Benchmark string
	Dir       string

	Stat, NerNed, Ner string
}

// NewLayout derives the output directory for input under root.
//
// The directory is named <benchmark>-<system>[-<split>]. The benchmark is
// the first of benchmarks occurring in input's path. System and split come
// from the file name: alg_ambiverse.testb gives ambiverse-testb. A file
// name without "alg" is used whole, minus its extension.
func NewLayout(input, root string, benchmarks []string) Layout {
	benchmark := OtherBenchmark
	for _, b := range benchmarks {
		if b != "" && strings.Contains(input, b) {
			benchmark = b
			break
		}
	}

	dir := filepath.Join(root, benchmark+"-"+runName(input))
	return Layout{
		Benchmark: benchmark,
		Dir:       dir,
		Stat:      filepath.Join(dir, "stat"),
		NerNed:    filepath.Join(dir, "detail_ner_ned"),
		Ner:       filepath.Join(dir, "detail_ner"),
	}
}

func runName(input string) string {
	base := filepath.Base(input)
	pos := strings.Index(base, "alg")
	if pos < 0 {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}

	fields := strings.Split(base[pos:], ".")
	name := strings.TrimLeft(strings.TrimPrefix(fields[0], "alg"), "_-")
	if name == "" {
		name = "alg"
	}
	if len(fields) > 1 && fields[1] != "" {
		name += "-" + fields[1]
	}
	return name
}

// MakeDir creates the output directory. An existing directory is fine.
func (l Layout) MakeDir() error {
	err := os.Mkdir(l.Dir, 0775)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	return err
}
