// Package query turns raw listing parameters into a validated filter, sort and
// page request, and computes pagination metadata.
//
// Parameters are deliberately lenient in two places and strict in one:
// an unknown sort_key or direction silently falls back to title/asc, while a
// per_page that is not an integer rejects the whole request.
package query

import (
	"errors"
	"strconv"
	"strings"
)

// Query string keys.
const (
	KeyTitle     = "title"
	KeySortKey   = "sort_key"
	KeyDirection = "direction"
	KeyPerPage   = "per_page"
	KeyPage      = "page"
)

const (
	DefaultPerPage   = 10
	DefaultSortKey   = "title"
	DirectionAsc     = "asc"
	DirectionDesc    = "desc"
	LastPage         = "last"
	InvalidPerPage   = "Invalid per_page value. Must be an integer."
	InvalidPageValue = "Invalid page."
)

var (
	// ErrInvalidPerPage is returned by Parse when per_page is not a positive integer.
	ErrInvalidPerPage = errors.New("invalid per_page value")

	// ErrInvalidPage is returned by Paginate when page does not name an existing page.
	ErrInvalidPage = errors.New("invalid page")
)

// Params is a validated listing request.
type Params struct {
	Title   string
	Sort    Field
	Desc    bool
	PerPage int
	// Page is kept raw because it can only be checked once the filtered count is known.
	Page string
}

// Direction returns "asc" or "desc".
func (p Params) Direction() string {
	if p.Desc {
		return DirectionDesc
	}
	return DirectionAsc
}

// Parse validates raw query values. Keys absent from values take their defaults.
func Parse(values map[string]string) (Params, error) {
	p := Params{
		Title:   values[KeyTitle],
		Sort:    LookupField(DefaultSortKey),
		PerPage: DefaultPerPage,
		Page:    "1",
	}

	if key, ok := values[KeySortKey]; ok {
		p.Sort = LookupField(key)
	}

	p.Desc = values[KeyDirection] == DirectionDesc

	if raw, ok := values[KeyPerPage]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 1 {
			return Params{}, ErrInvalidPerPage
		}
		p.PerPage = n
	}

	if raw := strings.TrimSpace(values[KeyPage]); raw != "" {
		p.Page = raw
	}

	return p, nil
}
