package domain

import "strings"

// DefaultPageSize matches the grid size of the home page.
const DefaultPageSize = 12

type CatalogQuery struct {
	Text     string `json:"text"`      // Free text filter, empty means no filter
	Page     int    `json:"page"`      // 1-based page number
	PageSize int    `json:"page_size"` // Items per page
}

// HasText reports whether the query carries a non-blank text filter.
func (q CatalogQuery) HasText() bool {
	return strings.TrimSpace(q.Text) != ""
}

// Normalize fills in the page defaults. A non-positive page size falls back
// to defaultPageSize, or DefaultPageSize if that is not positive either.
func (q CatalogQuery) Normalize(defaultPageSize int) CatalogQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

type CatalogPage struct {
	Items      []AnimeSummary `json:"data"`
	Pagination Pagination     `json:"pagination"`
}
