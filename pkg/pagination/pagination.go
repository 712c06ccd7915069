package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns page 1 with DefaultPerPage entries.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: DefaultPerPage}
}

// New builds Params, clamping page to >= 1 and perPage to [1, MaxPerPage].
func New(page, perPage int) Params {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage, Offset: (page - 1) * perPage}
}

// FromRequest reads page and per_page. Malformed values fall back to the
// defaults and oversized pages are capped.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	page, perPage := 1, DefaultPerPage
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil {
		perPage = v
	}
	return New(page, perPage)
}

// Window returns the [start, end) bounds of this page over n items.
func (p Params) Window(n int) (start, end int) {
	start = min(p.Offset, n)
	end = min(start+p.PerPage, n)
	return start, end
}

// Slice returns the page of items described by p.
func Slice[T any](items []T, p Params) []T {
	start, end := p.Window(len(items))
	return items[start:end]
}

// TotalPages is the number of pages of p.PerPage needed for n items.
func (p Params) TotalPages(n int) int {
	if p.PerPage < 1 {
		return 0
	}
	return (n + p.PerPage - 1) / p.PerPage
}
