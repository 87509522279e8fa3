// Package linking reconstructs entity mentions from tagged sentences and
// aligns predicted mentions against gold-standard ones.
package linking

import "strings"

// Prefix of knowledge base identifiers in Wikidata-linked corpora.
const DefaultPrefix = "Q"

// A knowledge base, known by the prefix shared by its identifiers.
type KB struct {
	Prefix string
}

var DefaultKB = KB{Prefix: DefaultPrefix}

// InKB reports whether id is an identifier in kb. Anything else (B, a
// placeholder for an unlinkable entity, NoLink) is out of the knowledge base.
func (kb KB) InKB(id string) bool {
	return id != NoLink && strings.HasPrefix(id, kb.Prefix)
}

// Filter returns the spans linked into kb.
func (kb KB) Filter(spans Spans) (in Spans) {
	for _, s := range spans {
		if kb.InKB(s.ID) {
			in = append(in, s)
		}
	}
	return
}

// Outcome of aligning the in-KB mentions of one sentence.
type Alignment struct {
	TP, FP, FN int
}

// Merge-join cursor over a sorted list of disjoint spans.
//
// The position only ever moves forward, and never past the last span.
type Cursor struct {
	spans Spans
	pos   int
}

func NewCursor(spans Spans) *Cursor {
	return &Cursor{spans: spans}
}

// Seek moves the cursor forward past spans that end before head and returns
// the span under the cursor: the first that may overlap head, or the last
// span if all end before it. ok is false for an empty list.
func (c *Cursor) Seek(head int) (s Span, ok bool) {
	if len(c.spans) == 0 {
		return Span{}, false
	}
	for c.spans[c.pos].End < head && c.pos < len(c.spans)-1 {
		c.pos++
	}
	return c.spans[c.pos], true
}

func (c *Cursor) Pos() int {
	return c.pos
}

// Align counts true positives, false positives and false negatives of the
// in-KB mentions in pred against those in gold.
//
// A predicted in-KB mention is a true positive if gold has the exact same
// span and identifier. If instead it lies within a gold mention that gold
// could not link (no KB identifier), it counts neither way. Otherwise it is
// a false positive. A gold in-KB mention without an exact predicted match
// is a false negative; there is no containment exemption on this side.
//
// Both lists must be sorted and disjoint, which holds for anything produced
// by Extract. Otherwise Align falls back to Reconcile.
func (kb KB) Align(pred, gold Spans) (a Alignment) {
	if pred.Validate() != nil || gold.Validate() != nil {
		return kb.Reconcile(pred, gold)
	}

	goldCur := NewCursor(gold)
	for _, p := range pred {
		if !kb.InKB(p.ID) {
			continue
		}
		g, ok := goldCur.Seek(p.Start)
		switch {
		case ok && g == p:
			a.TP++
		case ok && g.Contains(p) && !kb.InKB(g.ID):
		default:
			a.FP++
		}
	}

	predCur := NewCursor(pred)
	for _, g := range gold {
		if !kb.InKB(g.ID) {
			continue
		}
		p, ok := predCur.Seek(g.Start)
		if !ok || p != g {
			a.FN++
		}
	}
	return
}

// Reconcile is Align for span lists that are unsorted or overlapping. It
// compares every pair of spans, so it doesn't depend on order.
func (kb KB) Reconcile(pred, gold Spans) (a Alignment) {
	for _, p := range pred {
		if !kb.InKB(p.ID) {
			continue
		}
		exact, excused := false, false
		for _, g := range gold {
			if g == p {
				exact = true
				break
			}
			if g.Contains(p) && !kb.InKB(g.ID) {
				excused = true
			}
		}
		switch {
		case exact:
			a.TP++
		case !excused:
			a.FP++
		}
	}

	for _, g := range gold {
		if !kb.InKB(g.ID) {
			continue
		}
		if !contains(pred, g) {
			a.FN++
		}
	}
	return
}

func contains(spans Spans, s Span) bool {
	for _, t := range spans {
		if t == s {
			return true
		}
	}
	return false
}
