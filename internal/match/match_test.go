package match

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var threeLetters = regexp.MustCompile(`^(?P<param>[A-Z]{3})`)

func letters() Matcher[string] {
	return Field(threeLetters, func(c Captures) (string, bool) {
		return c.Get("param"), true
	})
}

func TestField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantOK   bool
		wantRest string
	}{
		{name: "match at head", input: "AAABBBCCC", want: "AAA", wantOK: true, wantRest: "BBBCCC"},
		{name: "no match keeps input", input: "000111222", wantOK: false, wantRest: "000111222"},
		{name: "leading whitespace trimmed", input: "  AAA BBB  ", want: "AAA", wantOK: true, wantRest: " BBB"},
		{name: "no mid-string scanning", input: "0AAA", wantOK: false, wantRest: "0AAA"},
		{name: "untrimmed input returned on failure", input: " 0AAA ", wantOK: false, wantRest: " 0AAA "},
		{name: "empty input", input: "", wantOK: false, wantRest: ""},
	}

	m := letters()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, rest := m(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestFieldProjectionRefusal(t *testing.T) {
	m := Field(threeLetters, func(c Captures) (string, bool) {
		return "", c.Get("param") != "XXX"
	})

	_, ok, rest := m("XXX YYY")
	assert.False(t, ok)
	assert.Equal(t, "XXX YYY", rest)

	_, ok, rest = m("YYY XXX")
	assert.True(t, ok)
	assert.Equal(t, " XXX", rest)
}

func TestFieldRejectsEmptyMatch(t *testing.T) {
	optional := regexp.MustCompile(`^(?P<cavok>CAVOK)?`)
	m := Field(optional, func(c Captures) (string, bool) { return c.Get("cavok"), true })

	_, ok, rest := m("9999 FEW010")
	assert.False(t, ok)
	assert.Equal(t, "9999 FEW010", rest)

	got, ok, _ := m("CAVOK 10/05")
	assert.True(t, ok)
	assert.Equal(t, "CAVOK", got)
}

func TestRepeat(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		input    string
		want     []string
		wantRest string
	}{
		{name: "stops at limit", limit: 2, input: "AAABBBCCCDDD", want: []string{"AAA", "BBB"}, wantRest: "CCCDDD"},
		{name: "stops at first miss", limit: 10, input: "AAA BBB 123", want: []string{"AAA", "BBB"}, wantRest: " 123"},
		{name: "empty sequence", limit: 1, input: "000111222", want: []string{}, wantRest: "000111222"},
		{name: "exact limit", limit: 3, input: "AAABBBCCC", want: []string{"AAA", "BBB", "CCC"}, wantRest: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, rest := Repeat(letters(), tt.limit)(tt.input)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestRepeatInvalidLimit(t *testing.T) {
	assert.Panics(t, func() { Repeat(letters(), 0) })
	assert.Panics(t, func() { Repeat(letters(), -3) })
}

func TestCaptures(t *testing.T) {
	src := map[string]string{"n": "0042", "empty": "", "word": "VRB"}
	c := NewCaptures(src)
	src["n"] = "9"

	n, ok := c.Int("n")
	require.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = c.Int("word")
	assert.False(t, ok)
	_, ok = c.Int("missing")
	assert.False(t, ok)

	assert.Nil(t, c.IntPtr("empty"))
	require.NotNil(t, c.IntPtr("n"))
	assert.Equal(t, 42, *c.IntPtr("n"))

	assert.True(t, c.Has("word"))
	assert.False(t, c.Has("empty"))
	assert.Equal(t, "VRB", c.Get("word"))
}

func TestLiteral(t *testing.T) {
	m := Literal(regexp.MustCompile(`^CAVOK`))

	got, ok, rest := m(" CAVOK 03/M04")
	assert.True(t, ok)
	assert.Equal(t, "CAVOK", got)
	assert.Equal(t, " 03/M04", rest)

	_, ok, rest = m("9999")
	assert.False(t, ok)
	assert.Equal(t, "9999", rest)
}

func TestGlued(t *testing.T) {
	m := Repeat(Glued(threeLetters, func(c Captures) (string, bool) { return c.Get("param"), true }), 5)

	tests := []struct {
		name     string
		input    string
		want     []string
		wantRest string
	}{
		{name: "one token", input: "AAABBB CCC", want: []string{"AAA", "BBB"}, wantRest: " CCC"},
		{name: "leading whitespace ends the token", input: " AAA", want: []string{}, wantRest: " AAA"},
		{name: "empty", input: "", want: []string{}, wantRest: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, rest := m(tt.input)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestToken(t *testing.T) {
	m := Token(threeLetters, func(c Captures) (string, bool) { return c.Get("param"), true })

	tests := []struct {
		name     string
		input    string
		want     string
		wantOK   bool
		wantRest string
	}{
		{name: "followed by space", input: "AAA BBB", want: "AAA", wantOK: true, wantRest: " BBB"},
		{name: "end of input", input: " AAA ", want: "AAA", wantOK: true, wantRest: ""},
		{name: "glued to next token", input: "AAABBB", wantOK: false, wantRest: "AAABBB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, rest := m(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestAtBoundary(t *testing.T) {
	assert.True(t, AtBoundary(""))
	assert.True(t, AtBoundary(" X"))
	assert.True(t, AtBoundary("\tX"))
	assert.False(t, AtBoundary("X"))
}
