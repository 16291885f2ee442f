// Package paging splits an ordered list into fixed-size pages.
package paging

import "sync"

// DefaultPageSize is the number of products shown per listing page.
const DefaultPageSize = 8

// TotalPages is ceil(count/size). An empty list has zero pages.
func TotalPages(count, size int) int {
	if count <= 0 {
		return 0
	}
	if size < 1 {
		size = 1
	}
	return (count + size - 1) / size
}

// Page is one page of a list together with its position.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// Slice returns page n of items. Out of range pages are clamped into
// [1, TotalPages]; an empty list yields page 1 with no items.
func Slice[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	total := TotalPages(len(items), size)
	page = clamp(page, total)

	return Page[T]{
		Items:      window(items, page, size),
		Page:       page,
		PageSize:   size,
		TotalPages: total,
		TotalItems: len(items),
	}
}

// Paginator tracks the current page over a list. The page size is fixed
// for its lifetime. The current page always satisfies
// 1 <= page <= max(1, TotalPages).
type Paginator[T any] struct {
	mu         sync.Mutex
	items      []T
	size       int
	page       int
	onNavigate func(page int)
}

func New[T any](items []T, pageSize int) *Paginator[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator[T]{items: items, size: pageSize, page: 1}
}

// OnNavigate sets the hook called after a successful GoToPage, the place
// where a presentation layer scrolls back to the top.
func (p *Paginator[T]) OnNavigate(fn func(page int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onNavigate = fn
}

func (p *Paginator[T]) PageSize() int { return p.size }

func (p *Paginator[T]) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *Paginator[T]) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return TotalPages(len(p.items), p.size)
}

// Items returns the current page.
func (p *Paginator[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return window(p.items, p.page, p.size)
}

// GoToPage moves to page n if it exists and reports whether it moved.
// Requests outside [1, TotalPages] leave the state unchanged.
func (p *Paginator[T]) GoToPage(n int) bool {
	p.mu.Lock()
	if n < 1 || n > TotalPages(len(p.items), p.size) {
		p.mu.Unlock()
		return false
	}
	p.page = n
	fn := p.onNavigate
	p.mu.Unlock()

	if fn != nil {
		fn(n)
	}
	return true
}

func (p *Paginator[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = 1
}

// SetItems swaps the backing list without resetting the page. If the
// list shrank below the current page, the page drops to the last one.
func (p *Paginator[T]) SetItems(items []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = items
	p.page = clamp(p.page, TotalPages(len(items), p.size))
}

func clamp(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

func window[T any](items []T, page, size int) []T {
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
