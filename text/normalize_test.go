package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldLigatures(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no ligatures", in: "plain text", want: "plain text"},
		{name: "fi", in: "ﬁnal", want: "final"},
		{name: "ff fl ffi ffl", in: "eﬀort ﬂow oﬃce baﬄe", want: "effort flow office baffle"},
		{name: "st", in: "ﬆop", want: "stop"},
		{name: "other compatibility characters survive", in: "a b ﬁ", want: "a b fi"},
		{name: "multiple spaces survive", in: "a  ﬁ", want: "a  fi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldLigatures(tt.in))
		})
	}
}

func TestFlattenBreaks(t *testing.T) {
	assert.Equal(t, "no breaks", FlattenBreaks("no breaks"))
	assert.Equal(t, "one two three four", FlattenBreaks("one\ntwo\r\nthree\rfour"))
	assert.Equal(t, "keeps  double", FlattenBreaks("keeps  double"))
}

func TestDehyphenate(t *testing.T) {
	tests := []struct {
		name   string
		left   string
		right  string
		want   string
		joined bool
	}{
		{name: "hyphenated word", left: "para-", right: "graph", want: "para", joined: true},
		{name: "capital continuation", left: "New-", right: "York", want: "New-", joined: false},
		{name: "dash after space", left: "word -", right: "next", want: "word -", joined: false},
		{name: "double dash", left: "word--", right: "next", want: "word--", joined: false},
		{name: "no hyphen", left: "word", right: "next", want: "word", joined: false},
		{name: "empty right", left: "word-", right: "", want: "word-", joined: false},
		{name: "unicode letters", left: "naï-", right: "ve", want: "naï", joined: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, joined := Dehyphenate(tt.left, tt.right)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.joined, joined)
		})
	}
}

func TestSpaceBoundaries(t *testing.T) {
	assert.True(t, StartsWithSpace(" a"))
	assert.False(t, StartsWithSpace("a "))
	assert.False(t, StartsWithSpace(""))
	assert.True(t, EndsWithSpace("a "))
	assert.False(t, EndsWithSpace(" a"))
	assert.False(t, EndsWithSpace(""))
}

func TestHasLetterAndIsDigits(t *testing.T) {
	assert.True(t, HasLetter("12 Chapter"))
	assert.False(t, HasLetter("12 34"))
	assert.True(t, IsDigits("42"))
	assert.False(t, IsDigits("4 2"))
	assert.False(t, IsDigits(""))
}
