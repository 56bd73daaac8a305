package pagination

// Meta describes where a page sits within the full result set.
// PreviousPage and NextPage are nil when no such page exists.
type Meta struct {
	TotalRecords int  `json:"totalRecords"`
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	NextPage     *int `json:"nextPage"`
	PreviousPage *int `json:"previousPage"`
}

// New computes page metadata for totalRecords split into pages of limit.
func New(totalRecords, page, limit int) Meta {
	if totalRecords < 0 {
		totalRecords = 0
	}
	if limit < 1 {
		limit = 1
	}

	totalPages := totalRecords / limit
	if totalRecords%limit != 0 {
		totalPages++
	}

	meta := Meta{
		TotalRecords: totalRecords,
		CurrentPage:  page,
		TotalPages:   totalPages,
	}
	if page > 1 {
		prev := page - 1
		meta.PreviousPage = &prev
	}
	if page < totalPages {
		next := page + 1
		meta.NextPage = &next
	}
	return meta
}

// Unpaged describes a result set returned in full as a single page.
func Unpaged(totalRecords int) Meta {
	limit := totalRecords
	if limit < 1 {
		limit = 1
	}
	return New(totalRecords, 1, limit)
}

// Offset returns the number of records to skip for page.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	return (page - 1) * limit
}
