package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	for _, c := range [][]string{
		{`Obama\?\Q76 visited\?\O Berlin\?\Q64`,
			`Obama\?\Q76`, `visited\?\O`, `Berlin\?\Q64`},
		{`New\?\B York\?\I `, `New\?\B`, `York\?\I`},
		{`a\?\O  b\?\O`, `a\?\O`, ``, `b\?\O`},
		{``},
	} {
		input, want := c[0], c[1:]
		got := Tokenize(input)
		if len(want) == 0 {
			assert.Empty(t, got, "Tokenize(%q)", input)
			continue
		}
		assert.Equal(t, want, got, "Tokenize(%q)", input)
	}
}

func TestParseToken(t *testing.T) {
	for _, c := range []struct {
		in   string
		want Token
	}{
		{`Obama\?\Q76`, Token{"Obama", "?", "Q76"}},
		{`York\?\I`, Token{"York", "?", "I"}},
		{`word\tag`, Token{"word", "tag", Outside}},
		{`word`, Token{"word", "", Outside}},
		{`word\tag\`, Token{"word", "tag", Outside}},
		{``, Token{"", "", Outside}},
	} {
		assert.Equal(t, c.want, ParseToken(c.in), "ParseToken(%q)", c.in)
	}
}

func TestParseTokens(t *testing.T) {
	tokens := ParseTokens(`w1\?\B w2\?\I w3\?\O`)
	assert.Equal(t, []string{Begin, Inside, Outside}, Markers(tokens))
	assert.Equal(t, `w2\?\I`, tokens[1].String())
	assert.Equal(t, Outside, Sentinel.Marker)
}
