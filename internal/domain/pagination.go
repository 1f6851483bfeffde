package domain

type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
}

// DefaultPagination is used when upstream omits pagination metadata.
func DefaultPagination(requestedPage int) Pagination {
	if requestedPage < 1 {
		requestedPage = 1
	}
	return Pagination{
		LastVisiblePage: 1,
		HasNextPage:     false,
		CurrentPage:     requestedPage,
	}
}

// PageWindow returns up to size consecutive page numbers around the current
// page, clamped to [1, LastVisiblePage]. The window is shifted left when the
// current page is close to the end so it stays size wide where possible.
func (p Pagination) PageWindow(size int) []int {
	if size <= 0 {
		return []int{}
	}

	total := max(p.LastVisiblePage, 1)
	current := max(p.CurrentPage, 1)

	start := max(1, current-size/2)
	end := min(total, start+size-1)
	if end-start < size-1 {
		start = max(1, end-size+1)
	}

	pages := make([]int, 0, end-start+1)
	for page := start; page <= end; page++ {
		pages = append(pages, page)
	}
	return pages
}
