package textproc

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunctuate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", "   "},
		{"what did you do today", "What did you do today?"},
		{"i think today was good", "I think, today. was good."},
		{"i bought bread and milk and eggs", "I bought bread, and milk, and eggs."},
		{"apples and pears", "Apples and pears."},
		{"i like red, blue and green", "I like red, blue, and green."},
		{"i went home and slept", "I went home and slept."},
		{"wow that was amazing", "Wow, that was amazing!"},
		{"um so i went to the store", "Um, so i went to the store."},
		{"already done.", "Already done."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Punctuate(tt.in))
		})
	}
}

func TestPunctuateIsNotIdempotent(t *testing.T) {
	once := Punctuate("that was amazing well i left")
	assert.Equal(t, "That was amazing! well i left.", once)
	assert.Equal(t, "That was amazing! well, i left.", Punctuate(once))
}

func TestPunctuateEndsWithTerminal(t *testing.T) {
	inputs := []string{
		"hello there",
		"so, i mean, like,",
		"how are you doing; ",
		"she said hmm and then nothing",
		"we went to paris however it rained",
	}
	for _, in := range inputs {
		out := Punctuate(in)
		require.NotEmpty(t, out, in)
		assert.Contains(t, ".!?", out[len(out)-1:], in)
		assert.False(t, strings.Contains(out, "  "), "double space in %q", out)
	}
}

func TestPunctuatePreservesWords(t *testing.T) {
	inputs := []string{
		"i think today was good",
		"i bought bread and milk and eggs and jam",
		"what do you think about the plan that we made yesterday",
		"well honestly i dont know however it was fun",
		"um uh the meeting which ran late was awful",
		"2 coffees and 3 croissants this morning",
	}
	for _, in := range inputs {
		assert.Equal(t, alnum(in), alnum(Punctuate(in)), in)
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	r := Rules()
	require.NotEmpty(t, r)
	r[0].Name = "mutated"
	assert.Equal(t, "temporal-period", Rules()[0].Name)
}

func alnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
