// Package service implements the application's use cases on top of the
// repository layer.
package service

import (
	"strconv"

	"blogicum/internal/models"
)

// Page is one page of a post listing.
type Page struct {
	Posts      []*models.Post
	Number     int
	TotalPages int
	TotalCount int64
}

// HasPrev reports whether a previous page exists.
func (p *Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p *Page) HasNext() bool { return p.Number < p.TotalPages }

// PrevNumber returns the previous page number.
func (p *Page) PrevNumber() int { return p.Number - 1 }

// NextNumber returns the next page number.
func (p *Page) NextNumber() int { return p.Number + 1 }

// totalPages computes the page count for a listing; an empty listing still
// has one (empty) page.
func totalPages(total int64, pageSize int) int {
	if total <= 0 {
		return 1
	}
	n := int((total + int64(pageSize) - 1) / int64(pageSize))
	if n < 1 {
		n = 1
	}
	return n
}

// clampPage resolves a raw page query parameter to a real page number.
// Unparseable values fall back to the first page; numbers outside the
// valid range snap to the last page. Listings never error on a bad page.
func clampPage(raw string, total int64, pageSize int) (number, pages int) {
	pages = totalPages(total, pageSize)
	if raw == "" {
		return 1, pages
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1, pages
	}
	if n < 1 || n > pages {
		return pages, pages
	}
	return n, pages
}
