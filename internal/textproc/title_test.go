package textproc

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "gratitude outranks family and today",
			content: "I'm so grateful for my family today.",
			want:    "Gratitude: I'm so grateful for my family today",
		},
		{
			name:    "equal weights keep declaration order",
			content: "Um, today I went for a run with my dad.",
			want:    "Family: Today I went for a run with my dad",
		},
		{
			name:    "frequency fallback",
			content: "Programming golang channels golang compilers channels golang",
			want:    "Golang Channels Programming",
		},
		{
			name:    "journal fallback when nothing qualifies",
			content: "xyz qux",
			want:    "Journal: Xyz qux",
		},
		{
			name:    "whitespace is normalized",
			content: "  feeling\n\nso   stressed\tabout everything ",
			want:    "Struggles: Feeling so stressed about everything",
		},
		{
			name:    "blank content",
			content: " \n\t ",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.content))
		})
	}
}

func TestDeriveTitleTruncatesAnchor(t *testing.T) {
	content := "At work the quarterly planning sessions dragged on far longer than anyone expected it to"
	got := DeriveTitle(content)

	require.True(t, strings.HasPrefix(got, "Work: "), got)
	anchor := strings.TrimPrefix(got, "Work: ")
	assert.Equal(t, MaxAnchorLen, utf8.RuneCountInString(anchor))
	assert.True(t, strings.HasSuffix(anchor, "..."))
}

func TestDeriveTitleBounds(t *testing.T) {
	inputs := []string{
		"hi",
		"...",
		"Went to the gym and then the office and then the doctor and then home again.",
		"Thinking about everything. Nothing else matters tonight!",
		strings.Repeat("supercalifragilistic ", 20),
		"¿Qué tal? Ça va très bien aujourd'hui, merci beaucoup",
	}

	longestPrefix := utf8.RuneCountInString(fallbackPrefix)
	for _, p := range Patterns() {
		if n := utf8.RuneCountInString(p.Prefix); n > longestPrefix {
			longestPrefix = n
		}
	}

	for _, in := range inputs {
		got := DeriveTitle(in)
		assert.NotEmpty(t, got, in)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxAnchorLen+longestPrefix, in)
		assert.Equal(t, got, DeriveTitle(in), "deterministic for %q", in)
	}
}

func TestPatternsReturnsCopy(t *testing.T) {
	p := Patterns()
	require.NotEmpty(t, p)
	p[0].Prefix = "Changed: "
	assert.Equal(t, "Gratitude: ", Patterns()[0].Prefix)
}
