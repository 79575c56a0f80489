package tablestate

// DefaultPageSize is used when a view is created without a positive size.
const DefaultPageSize = 10

// PageSpec is a 1-based page number and a positive page size.
type PageSpec struct {
	Number int
	Size   int
}

// TotalPages returns ceil(totalItems / size).
func TotalPages(totalItems, size int) int {
	if size <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + size - 1) / size
}

// Window returns the half-open index range of the page within totalItems
// items. A page past the end yields an empty range.
func (p PageSpec) Window(totalItems int) (start, end int) {
	if totalItems <= 0 || p.Size <= 0 {
		return 0, 0
	}
	n := max(p.Number, 1)
	// Compare before multiplying so huge page numbers cannot wrap.
	if n-1 > (totalItems-1)/p.Size {
		return totalItems, totalItems
	}
	start = (n - 1) * p.Size
	end = start + min(p.Size, totalItems-start)
	return start, end
}

func normalizePage(p PageSpec) PageSpec {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Number < 1 {
		p.Number = 1
	}
	return p
}
