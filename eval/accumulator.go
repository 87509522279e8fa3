package eval

import "math"

// Accumulator holds the running totals of an evaluation. The zero value is
// ready to use.
//
// An Accumulator is not safe for concurrent use. A parallel driver should
// give each worker its own and Merge them at the end.
type Accumulator struct {
	Tokens   Confusion
	Entities Counts

	// Sum of per-sentence in-KB F1 over scored sentences.
	MacroF1Sum float64

	Total, Correct, Wrong, Mismatch int
}

// Record folds the result of one sentence into the totals.
func (acc *Accumulator) Record(r *Result) {
	acc.Total++
	switch r.Verdict {
	case Mismatch:
		acc.Mismatch++
		return
	case Correct:
		acc.Correct++
	default:
		acc.Wrong++
	}
	acc.Tokens.Add(&r.Tokens)
	acc.Entities.Add(r.Entities)
	acc.MacroF1Sum += r.F1()
}

// Merge adds the totals of o to acc.
func (acc *Accumulator) Merge(o *Accumulator) {
	acc.Tokens.Add(&o.Tokens)
	acc.Entities.Add(o.Entities)
	acc.MacroF1Sum += o.MacroF1Sum
	acc.Total += o.Total
	acc.Correct += o.Correct
	acc.Wrong += o.Wrong
	acc.Mismatch += o.Mismatch
}

// Scored is the number of sentences that were not a Mismatch.
func (acc *Accumulator) Scored() int {
	return acc.Total - acc.Mismatch
}

// Final statistics of an evaluation.
type Summary struct {
	// In-KB linking F1 over pooled counts.
	MicroF1 float64
	// Mean per-sentence in-KB linking F1. NaN if no sentence was scored.
	MacroF1 float64

	Tokens   Confusion
	Entities Counts

	Total, Correct, Wrong, Mismatch int
}

// MacroDefined reports whether any sentence contributed to MacroF1.
func (s *Summary) MacroDefined() bool {
	return !math.IsNaN(s.MacroF1)
}

// Finalize computes micro and macro F1 from the totals so far.
func (acc *Accumulator) Finalize() Summary {
	macro := math.NaN()
	if n := acc.Scored(); n > 0 {
		macro = acc.MacroF1Sum / float64(n)
	}
	return Summary{
		MicroF1:  acc.Entities.F1(),
		MacroF1:  macro,
		Tokens:   acc.Tokens,
		Entities: acc.Entities,
		Total:    acc.Total,
		Correct:  acc.Correct,
		Wrong:    acc.Wrong,
		Mismatch: acc.Mismatch,
	}
}
