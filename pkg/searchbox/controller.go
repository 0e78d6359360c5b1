package searchbox

import (
	"context"
	"sync"

	"pet-board/pkg/board"
)

// Searcher runs a board search. *boardclient.Client satisfies it.
type Searcher interface {
	SearchPosts(ctx context.Context, q board.Query) (*board.SearchResult, error)
}

// Controller owns the search state a SearchBox is bound to: the term, the
// current category, and the last result.
type Controller struct {
	ctx      context.Context
	searcher Searcher
	box      *SearchBox

	mu       sync.Mutex
	term     string
	category board.Category
	pageSize int
	result   *board.SearchResult
	err      error
	searches int
	// latest is the sequence number of the newest search started. Replies
	// from older searches are dropped.
	latest uint64
}

func NewController(ctx context.Context, searcher Searcher, trigger TriggerPolicy) *Controller {
	c := &Controller{
		ctx:      ctx,
		searcher: searcher,
		pageSize: board.DefaultPageSize,
	}
	c.box = New(Props{
		OnSearchChange: c.onSearchChange,
		OnSearch:       c.onSearch,
		Trigger:        trigger,
	})
	return c
}

func (c *Controller) Box() *SearchBox {
	return c.box
}

// SetCategory rescopes the next search. It never runs a search by itself.
func (c *Controller) SetCategory(category board.Category) {
	c.mu.Lock()
	c.category = category
	props := c.propsLocked()
	c.mu.Unlock()

	c.box.SetProps(props)
}

func (c *Controller) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pageSize = size
}

func (c *Controller) Term() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term
}

func (c *Controller) Query() board.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queryLocked()
}

// Result returns the last successful search, or nil before the first one.
func (c *Controller) Result() *board.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Controller) Searches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searches
}

func (c *Controller) onSearchChange(value string) {
	c.mu.Lock()
	c.term = value
	props := c.propsLocked()
	c.mu.Unlock()

	c.box.SetProps(props)
}

func (c *Controller) onSearch() {
	c.mu.Lock()
	q := c.queryLocked()
	c.searches++
	c.latest++
	seq := c.latest
	c.mu.Unlock()

	result, err := c.searcher.SearchPosts(c.ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.latest {
		return
	}
	if err != nil {
		c.err = err
		return
	}
	c.err = nil
	c.result = result
}

func (c *Controller) queryLocked() board.Query {
	return board.Query{
		Keyword:  c.term,
		Category: c.category,
		Size:     c.pageSize,
	}.Normalize()
}

func (c *Controller) propsLocked() Props {
	return Props{
		SearchTerm:      c.term,
		OnSearchChange:  c.onSearchChange,
		OnSearch:        c.onSearch,
		CurrentCategory: c.category.String(),
	}
}
