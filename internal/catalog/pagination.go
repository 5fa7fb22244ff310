package catalog

// HardCap is the highest page the catalog service will serve, regardless
// of the total it reports.
const HardCap = 500

// RequestCap is the highest page that may be requested.
func RequestCap(totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return min(totalPages, HardCap)
}

// Prev returns the previous page, floored at 1.
func Prev(page int) int {
	return max(page-1, 1)
}

// Next returns the next page, ceilinged at RequestCap(totalPages).
func Next(page, totalPages int) int {
	return max(min(page+1, RequestCap(totalPages)), 1)
}

// Clamp forces page into [1, RequestCap(totalPages)].
func Clamp(page, totalPages int) int {
	return max(min(page, RequestCap(totalPages)), 1)
}

// CanPrev reports whether the Prev control is enabled.
func CanPrev(page int) bool { return page > 1 }

// CanNext reports whether the Next control is enabled.
func CanNext(page, totalPages int) bool { return page < RequestCap(totalPages) }
