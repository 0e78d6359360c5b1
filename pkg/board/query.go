package board

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type SortKey string

const (
	SortCreatedAt SortKey = "createdAt"
	SortViewCount SortKey = "viewCount"
)

func (s SortKey) Valid() bool {
	return s == SortCreatedAt || s == SortViewCount
}

// Query is a board search: an optional keyword scoped to an optional
// category, one page at a time. Results are always newest (or most viewed)
// first.
type Query struct {
	Keyword  string
	Category Category
	Page     int
	Size     int
	Sort     SortKey
}

// Normalize trims the keyword and clamps paging to the accepted range.
func (q Query) Normalize() Query {
	q.Keyword = strings.TrimSpace(q.Keyword)
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	if !q.Sort.Valid() {
		q.Sort = SortCreatedAt
	}
	if !q.Category.Valid() {
		q.Category = 0
	}
	return q
}

// SearchResult is a page of search hits already mapped to view models.
type SearchResult struct {
	Posts         []BoardPost
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
	Last          bool
}

func NewSearchResult(page Page[ApiAnimal]) SearchResult {
	return SearchResult{
		Posts:         ToBoardPosts(page.Content),
		Page:          page.Number,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Last:          page.Last,
	}
}
