package calc

// Paginate returns the 1-indexed page window of items. Out-of-range pages
// clamp to the valid domain at the low end; a page past the last one yields
// an empty window rather than an error. pageSize <= 0 falls back to 10.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns ceil(count / pageSize) with a minimum of 1.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = 10
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
