// Package bioes decodes per-token entity markers into the five-state
// Begin/Inside/Outside/End/Single tagging scheme.
package bioes

import "github.com/semanticize/nereval/nlp"

// A BIOES tag.
type Tag uint8

const (
	Outside Tag = iota
	Begin
	Inside
	End
	Single

	NumTags = 5
)

// Tags in the order used for tagging error flags.
var Tags = [NumTags]Tag{Single, Begin, Inside, End, Outside}

var names = [NumTags]string{"O", "B", "I", "E", "S"}

func (t Tag) String() string {
	if int(t) < NumTags {
		return names[t]
	}
	return "?"
}

// Decode derives the tag of a token from its marker and the marker of the
// token that follows it.
//
// O stays Outside. I is Inside when followed by another I, else End. Any
// other marker (B, a link target) starts a mention: Begin when followed by
// I, else Single.
func Decode(marker, next string) Tag {
	switch marker {
	case nlp.Outside:
		return Outside
	case nlp.Inside:
		if next == nlp.Inside {
			return Inside
		}
		return End
	}
	if next == nlp.Inside {
		return Begin
	}
	return Single
}

// DecodeSequence decodes the markers of a sentence. The sentinel is appended
// first, so the result has one more tag than markers and always ends in
// Outside.
func DecodeSequence(markers []string) []Tag {
	seq := make([]string, len(markers), len(markers)+1)
	copy(seq, markers)
	seq = append(seq, nlp.Sentinel.Marker)

	tags := make([]Tag, len(seq))
	for i := range seq {
		next := nlp.Outside
		if i+1 < len(seq) {
			next = seq[i+1]
		}
		tags[i] = Decode(seq[i], next)
	}
	return tags
}
