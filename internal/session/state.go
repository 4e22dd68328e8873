// Package session holds the state of the pair table: the chain filter, the
// pagination cursors and the currently displayed page.
package session

import (
	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/pkg/models"
)

// PageState is the pagination state of the table. It is a value; every
// transition returns a new PageState and leaves the receiver untouched.
//
// Cursor is the cursor the current page was fetched with ("" for the first
// page). Next is the cursor of the following page, taken from the scroll_id
// of the current page's first row. History holds the cursors of the pages
// before the current one, most recent last.
type PageState struct {
	Chain   string   `json:"chain"`
	Cursor  string   `json:"cursor"`
	Next    string   `json:"next"`
	History []string `json:"history"`
}

// NewPageState returns the first-page state for chain.
func NewPageState(chain string) PageState {
	return PageState{Chain: chains.Normalize(chain)}
}

// WithChain resets cursor and history for a new chain filter.
func (s PageState) WithChain(chain string) PageState {
	return NewPageState(chain)
}

// NextCursor returns the cursor of the following page, if any.
func (s PageState) NextCursor() (string, bool) {
	return s.Next, s.Next != ""
}

// HasPrev reports whether a previous page exists.
func (s PageState) HasPrev() bool {
	return len(s.History) > 0
}

// Page returns the 1-based page number.
func (s PageState) Page() int {
	return len(s.History) + 1
}

// Advance moves to the next page: the current cursor is pushed and Next
// becomes the cursor. Next is cleared until the new page is loaded.
func (s PageState) Advance() PageState {
	history := make([]string, len(s.History), len(s.History)+1)
	copy(history, s.History)
	return PageState{
		Chain:   s.Chain,
		Cursor:  s.Next,
		History: append(history, s.Cursor),
	}
}

// Back pops the previous cursor and returns the new state and the cursor
// to fetch. An empty history returns to the first page.
func (s PageState) Back() (PageState, string) {
	if len(s.History) == 0 {
		return NewPageState(s.Chain), ""
	}
	n := len(s.History) - 1
	history := make([]string, n)
	copy(history, s.History[:n])
	prev := s.History[n]
	return PageState{Chain: s.Chain, Cursor: prev, History: history}, prev
}

// Loaded records the page that was fetched for this state.
func (s PageState) Loaded(pairs []models.Pair) PageState {
	s.Next = ""
	if len(pairs) > 0 {
		s.Next = pairs[0].ScrollID
	}
	return s
}
