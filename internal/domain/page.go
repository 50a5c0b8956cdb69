package domain

import "strconv"

// MaxPageLimit caps list queries; the fleet listings never return more than
// one hundred records per call.
const MaxPageLimit = 100

// PaginationParams carries page/limit values from the HTTP layer to the repo layer.
// Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// ParsePagination builds PaginationParams from raw query values.
// Missing or unparsable values fall back to page=1, limit=20; the limit is
// capped at MaxPageLimit.
func ParsePagination(page, limit string) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
		p.Limit = min(n, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
