package query

import (
	"strconv"
	"strings"

	"songboard/models"
)

// Window is one resolved page of a result set.
type Window struct {
	Total      int
	PerPage    int
	Page       int
	TotalPages int
}

// PageCount returns ceil(total/perPage), never less than one so that an empty
// result still has a first page.
func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 1
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}

// Paginate resolves rawPage against total records. rawPage may be a 1-based
// page number or "last".
func Paginate(total, perPage int, rawPage string) (Window, error) {
	pages := PageCount(total, perPage)

	raw := strings.TrimSpace(rawPage)
	var page int
	if raw == LastPage {
		page = pages
	} else {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > pages {
			return Window{}, ErrInvalidPage
		}
		page = n
	}

	return Window{Total: total, PerPage: perPage, Page: page, TotalPages: pages}, nil
}

// Offset is the zero-based index of the first record on the page.
func (w Window) Offset() int {
	return (w.Page - 1) * w.PerPage
}

// Len is the number of records on the page.
func (w Window) Len() int {
	return max(0, min(w.PerPage, w.Total-w.Offset()))
}

// Bounds clamps the page to a slice of length n.
func (w Window) Bounds(n int) (lo, hi int) {
	lo = min(w.Offset(), n)
	hi = min(lo+w.PerPage, n)
	return lo, hi
}

// Metadata renders the pagination block of the response envelope.
func (w Window) Metadata() models.Pagination {
	m := models.Pagination{
		TotalRecords: w.Total,
		CurrentPage:  w.Page,
		TotalPages:   w.TotalPages,
	}
	if w.Page < w.TotalPages {
		next := w.Page + 1
		m.NextPage = &next
	}
	if w.Page > 1 {
		prev := w.Page - 1
		m.PrevPage = &prev
	}
	return m
}
