package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	p := NewPagination(45, 20, 2)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 20, p.Offset)
	start, end := p.Range()
	assert.Equal(t, 21, start)
	assert.Equal(t, 40, end)
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrev())
	assert.Equal(t, "Showing 21-40 of 45 entries (page 2 of 3)", p.FormatSummary())
	assert.Equal(t, "use --page 1 for previous, use --page 3 for next", p.FormatNavigation())
}

func TestPaginationClampsPage(t *testing.T) {
	p := NewPagination(5, 20, 9)
	assert.Equal(t, 1, p.Current)
	assert.Equal(t, "Showing 1-5 of 5 entries", p.FormatSummary())
	assert.Empty(t, p.FormatNavigation())

	p = NewPagination(0, 0, 0)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, "No entries", p.FormatSummary())

	assert.Equal(t, "Showing 1-1 of 1 entry", NewPagination(1, 10, 1).FormatSummary())
}
