package services

// normalizePage clamps pagination inputs to sane bounds: page defaults
// to 1, page size defaults to 10 and is capped at 100.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// totalPages computes the page count for a total and page size.
func totalPages(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
