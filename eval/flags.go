package eval

import (
	"strings"

	"github.com/semanticize/nereval/bioes"
)

// Sentence-level outcome of entity linking.
type Verdict int

const (
	Correct Verdict = iota
	Wrong
	Mismatch
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	case Mismatch:
		return "mismatch"
	}
	return "unknown"
}

// Kind of tagging error: a tag produced where gold has another one, or a
// gold tag that wasn't produced.
type Direction int

const (
	FalsePositive Direction = iota
	FalseNegative
)

func (d Direction) String() string {
	if d == FalsePositive {
		return "fp"
	}
	return "fn"
}

// Bitmask of the tagging errors seen in a sentence, one bit per tag and
// direction.
type Flags uint16

// Bit assignment. This is part of the detail_ner file format; append new
// bits at the end.
var flagBits = [2][bioes.NumTags]Flags{
	FalsePositive: {
		bioes.Single:  1 << 0,
		bioes.Begin:   1 << 1,
		bioes.Inside:  1 << 2,
		bioes.End:     1 << 3,
		bioes.Outside: 1 << 4,
	},
	FalseNegative: {
		bioes.Single:  1 << 5,
		bioes.Begin:   1 << 6,
		bioes.Inside:  1 << 7,
		bioes.End:     1 << 8,
		bioes.Outside: 1 << 9,
	},
}

// FlagBit returns the bit for errors on tag in direction d.
func FlagBit(tag bioes.Tag, d Direction) Flags {
	if int(tag) >= bioes.NumTags || (d != FalsePositive && d != FalseNegative) {
		return 0
	}
	return flagBits[d][tag]
}

func (f Flags) Has(tag bioes.Tag, d Direction) bool {
	bit := FlagBit(tag, d)
	return bit != 0 && f&bit != 0
}

// String lists the set flags as tag_direction pairs, e.g. "B_fp|E_fn".
func (f Flags) String() string {
	var set []string
	for _, d := range []Direction{FalsePositive, FalseNegative} {
		for _, tag := range bioes.Tags {
			if f.Has(tag, d) {
				set = append(set, tag.String()+"_"+d.String())
			}
		}
	}
	return strings.Join(set, "|")
}
