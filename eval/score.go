package eval

import (
	"github.com/semanticize/nereval/bioes"
	"github.com/semanticize/nereval/linking"
	"github.com/semanticize/nereval/nlp"
)

// Token-level counts per BIOES tag.
type Confusion [bioes.NumTags]Counts

func (c *Confusion) Add(o *Confusion) {
	for i := range c {
		c[i].Add(o[i])
	}
}

// Score of a single sentence.
type Result struct {
	Verdict Verdict

	// Tagging counts and error flags.
	Tokens Confusion
	Flags  Flags

	// In-KB linking counts.
	Entities Counts

	// Mentions found on each side. Nil for a Mismatch.
	Gold, Pred linking.Spans
}

// F1 of the sentence's in-KB linking, the sentence's share of macro F1.
func (r *Result) F1() float64 {
	return r.Entities.F1()
}

// Score compares predicted against gold tokens of one sentence.
//
// Sentences whose token counts differ can't be aligned and are reported as
// a Mismatch with all counts zero.
func Score(gold, pred []nlp.Token, kb linking.KB) (r Result) {
	if len(gold) != len(pred) {
		r.Verdict = Mismatch
		return
	}

	goldIDs, predIDs := nlp.Markers(gold), nlp.Markers(pred)
	goldTags := bioes.DecodeSequence(goldIDs)
	predTags := bioes.DecodeSequence(predIDs)

	// The sentinel's tag is not counted.
	for i := range gold {
		g, p := goldTags[i], predTags[i]
		if g == p {
			r.Tokens[p].TP++
			continue
		}
		r.Tokens[p].FP++
		r.Tokens[g].FN++
		r.Flags |= FlagBit(p, FalsePositive) | FlagBit(g, FalseNegative)
	}

	r.Gold = linking.Extract(goldTags, goldIDs)
	r.Pred = linking.Extract(predTags, predIDs)
	a := kb.Align(r.Pred, r.Gold)
	r.Entities = Counts{TP: a.TP, FP: a.FP, FN: a.FN}

	r.Verdict = Correct
	if a.FP > 0 || a.FN > 0 {
		r.Verdict = Wrong
	}
	return
}
