// Tokenizer for tagged sentences: space-separated word\tag\marker triples.

package nlp

import "strings"

const (
	// Separates the tokens of a sentence.
	TokenSep = " "
	// Separates the fields of a single token.
	FieldSep = `\`

	// Marker of a token outside any entity mention.
	Outside = "O"
	// Marker of a token that continues an entity mention.
	Inside = "I"
	// Marker of an entity mention start that carries no link.
	Begin = "B"
)

// A single annotated token: the word, a (mostly unused) tag and the marker,
// which is O, I, B or a link target such as a knowledge base identifier.
type Token struct {
	Word, Tag, Marker string
}

func (t Token) String() string {
	return t.Word + FieldSep + t.Tag + FieldSep + t.Marker
}

// Sentinel is appended to a sentence so that the last real token has a
// successor to look ahead to.
var Sentinel = Token{Word: "du", Tag: "mm", Marker: Outside}

// Split s on sep. Empty fields between separators are kept, but a trailing
// separator doesn't produce an empty last field.
func split(s, sep string) []string {
	if s == "" {
		return nil
	}
	fields := strings.Split(s, sep)
	if fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// Tokenize splits a sentence into its raw token strings.
func Tokenize(s string) []string {
	return split(s, TokenSep)
}

// ParseToken parses a word\tag\marker triple. A token without a marker
// field is outside any mention.
func ParseToken(s string) (t Token) {
	t.Marker = Outside
	fields := split(s, FieldSep)
	if len(fields) > 0 {
		t.Word = fields[0]
	}
	if len(fields) > 1 {
		t.Tag = fields[1]
	}
	if len(fields) > 2 {
		t.Marker = fields[2]
	}
	return
}

// ParseTokens tokenizes s and parses every token in it.
func ParseTokens(s string) []Token {
	raw := Tokenize(s)
	tokens := make([]Token, 0, len(raw))
	for _, r := range raw {
		tokens = append(tokens, ParseToken(r))
	}
	return tokens
}

// Markers returns the marker field of each token.
func Markers(tokens []Token) []string {
	markers := make([]string, len(tokens))
	for i, t := range tokens {
		markers[i] = t.Marker
	}
	return markers
}
