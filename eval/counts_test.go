package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestF1(t *testing.T) {
	for _, c := range []struct {
		tp, fp, fn int
		want       float64
	}{
		{0, 0, 0, 1},
		{0, 5, 3, 0},
		{0, 1, 0, 0},
		{10, 0, 0, 1},
		{8, 2, 2, .8},
		{1, 1, 0, 2. / 3},
		{3, 0, 1, 6. / 7},
	} {
		got := F1(c.tp, c.fp, c.fn)
		assert.InDelta(t, c.want, got, 1e-12, "F1(%d, %d, %d)", c.tp, c.fp, c.fn)
		assert.InDelta(t, got, Counts{c.tp, c.fp, c.fn}.F1(), 1e-12)
	}
}

func TestPrecisionRecall(t *testing.T) {
	c := Counts{TP: 3, FP: 1, FN: 2}
	assert.InDelta(t, .75, c.Precision(), 1e-12)
	assert.InDelta(t, .6, c.Recall(), 1e-12)
	assert.Equal(t, 1.0, Counts{}.Precision())
	assert.Equal(t, 1.0, Counts{}.Recall())
}

func TestCountsAdd(t *testing.T) {
	c := Counts{1, 2, 3}
	c.Add(Counts{10, 20, 30})
	assert.Equal(t, Counts{11, 22, 33}, c)
}
