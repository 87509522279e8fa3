// Package eval scores NER+NED output sentence by sentence and accumulates
// micro and macro F1 over a corpus.
package eval

// F1 from raw counts. With nothing expected and nothing produced the score
// is a perfect 1; with no true positives but some errors it is 0.
func F1(tp, fp, fn int) float64 {
	if tp == 0 && fp == 0 && fn == 0 {
		return 1
	}
	if tp == 0 {
		return 0
	}
	p := Precision(tp, fp)
	r := Recall(tp, fn)
	return 2 * p * r / (p + r)
}

// Precision is 1 when nothing was predicted.
func Precision(tp, fp int) float64 {
	if tp+fp == 0 {
		return 1
	}
	return float64(tp) / float64(tp+fp)
}

// Recall is 1 when nothing was expected.
func Recall(tp, fn int) float64 {
	if tp+fn == 0 {
		return 1
	}
	return float64(tp) / float64(tp+fn)
}

// True positive, false positive and false negative counts.
type Counts struct {
	TP, FP, FN int
}

func (c Counts) F1() float64        { return F1(c.TP, c.FP, c.FN) }
func (c Counts) Precision() float64 { return Precision(c.TP, c.FP) }
func (c Counts) Recall() float64    { return Recall(c.TP, c.FN) }

func (c *Counts) Add(o Counts) {
	c.TP += o.TP
	c.FP += o.FP
	c.FN += o.FN
}
