package view

// Pagination is the page-navigation state shown under every table. It is
// computed from the full fetched list; the backend listing endpoints are not
// paged.
type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"perPage"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}

const defaultPerPage = 10

func NewPagination(page, perPage, totalItems int) Pagination {
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}

	if page > totalPages {
		page = totalPages
	}

	return Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// Bounds returns the half-open slice range of the current page.
func (p Pagination) Bounds() (int, int) {
	start := (p.Page - 1) * p.PerPage
	if start > p.TotalItems {
		start = p.TotalItems
	}

	end := start + p.PerPage
	if end > p.TotalItems {
		end = p.TotalItems
	}

	return start, end
}

// Paginate slices a full result list down to the requested page.
func Paginate[T any](items []T, page, perPage int) ([]T, Pagination) {
	pagination := NewPagination(page, perPage, len(items))
	start, end := pagination.Bounds()

	return items[start:end], pagination
}
