package models

import "math"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Pagination is a 1-based page/limit pair.
type Pagination struct {
	Page  int64
	Limit int64
}

// NewPagination normalises raw query values; anything below 1 falls back to
// the defaults, the limit is capped at MaxPageLimit and the page is capped so
// that Skip cannot overflow.
func NewPagination(page, limit, defaultLimit int64) Pagination {
	if defaultLimit < 1 {
		defaultLimit = DefaultPageLimit
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if maxPage := math.MaxInt64 / limit; page > maxPage {
		page = maxPage
	}
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Skip() int64 { return (p.Page - 1) * p.Limit }

// Page is one page of a listing plus the totals needed to render a pager.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int64 `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
}

func NewPage[T any](items []T, p Pagination, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		CurrentPage: p.Page,
		TotalPages:  TotalPages(total, p.Limit),
		TotalCount:  total,
	}
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int64) int64 {
	if limit < 1 || total < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}
