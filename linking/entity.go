package linking

import (
	"errors"
	"fmt"

	"github.com/semanticize/nereval/bioes"
)

// Identifier of a span that doesn't carry a link of its own.
const NoLink = ""

// Represents a mention of an entity: the closed token interval
// [Start, End] and the link target assigned to it.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	ID    string `json:"id"`
}

func (s Span) String() string {
	return fmt.Sprintf("(%d,%d,%q)", s.Start, s.End, s.ID)
}

// Contains reports whether s covers all of o.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && s.End >= o.End
}

var (
	ErrInvalidSpan = errors.New("linking: span ends before it starts")
	ErrUnsorted    = errors.New("linking: spans not sorted by start")
	ErrOverlap     = errors.New("linking: spans overlap")
)

// Mentions in a sentence, in order of appearance.
type Spans []Span

// Validate checks that spans are proper intervals, sorted by start and
// pairwise disjoint. Alignment relies on all three.
func (spans Spans) Validate() error {
	for i, s := range spans {
		if s.End < s.Start {
			return fmt.Errorf("%w: %v", ErrInvalidSpan, s)
		}
		if i == 0 {
			continue
		}
		prev := spans[i-1]
		switch {
		case s.Start < prev.Start:
			return fmt.Errorf("%w: %v after %v", ErrUnsorted, s, prev)
		case s.Start <= prev.End:
			return fmt.Errorf("%w: %v and %v", ErrOverlap, prev, s)
		}
	}
	return nil
}

// Extract reconstructs mentions from a decoded tag sequence. ids holds the
// marker of each token; a mention's identifier is taken from its Begin or
// Single token.
//
// An End with no open mention closes a one-token mention at its own
// position, without a link.
func Extract(tags []bioes.Tag, ids []string) (spans Spans) {
	start, id := -1, NoLink
	idAt := func(i int) string {
		if i < len(ids) {
			return ids[i]
		}
		return NoLink
	}

	for i, tag := range tags {
		switch tag {
		case bioes.Begin:
			start, id = i, idAt(i)
		case bioes.Single:
			spans = append(spans, Span{i, i, idAt(i)})
			start, id = -1, NoLink
		case bioes.End:
			if start < 0 {
				start, id = i, NoLink
			}
			spans = append(spans, Span{start, i, id})
			start, id = -1, NoLink
		}
	}
	return
}
