package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 8)
	assert.Equal(t, Pagination{Page: 1, Limit: 8}, p)

	p = NewPagination(-3, 500, 0)
	assert.Equal(t, Pagination{Page: 1, Limit: MaxPageLimit}, p)

	p = NewPagination(3, 5, 10)
	assert.Equal(t, int64(10), p.Skip())
}

func TestNewPaginationCapsHugePage(t *testing.T) {
	p := NewPagination(1000000000000000000, 10, 0)
	assert.Equal(t, int64(math.MaxInt64/10), p.Page)
	assert.Positive(t, p.Skip())

	p = NewPagination(math.MaxInt64, MaxPageLimit, 0)
	assert.Positive(t, p.Skip())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	assert.Equal(t, int64(4), TotalPages(7, 2))
}

func TestNewPageNeverReturnsNilItems(t *testing.T) {
	page := NewPage[string](nil, Pagination{Page: 5, Limit: 10}, 12)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.Equal(t, int64(5), page.CurrentPage)
	assert.Equal(t, int64(12), page.TotalCount)
}

func TestPostFindComment(t *testing.T) {
	c1 := Comment{Text: "first"}
	c1.ID[11] = 1
	c2 := Comment{Text: "second"}
	c2.ID[11] = 2
	p := &Post{Comments: []Comment{c1, c2}}

	found := p.FindComment(c2.ID)
	if assert.NotNil(t, found) {
		assert.Equal(t, "second", found.Text)
		found.Text = "edited"
		assert.Equal(t, "edited", p.Comments[1].Text)
	}

	var missing [12]byte
	missing[11] = 9
	assert.Nil(t, p.FindComment(missing))
}

func TestIsResourceType(t *testing.T) {
	assert.True(t, IsResourceType("Roadmap"))
	assert.True(t, IsResourceType("Other"))
	assert.False(t, IsResourceType("roadmap"))
	assert.False(t, IsResourceType(""))
}
