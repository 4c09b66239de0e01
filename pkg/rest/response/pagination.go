package response

type Pagination struct {
	TotalItems int  `json:"total_items"`
	NumItems   int  `json:"num_items"`
	NumPages   int  `json:"num_pages"`
	Page       int  `json:"page"`
	Next       *int `json:"next,omitempty"`
	Previous   *int `json:"prev,omitempty"`
}

// Paginate slices items down to the requested page and describes the result.
// Page numbers are 1-based; an out-of-range page yields an empty slice.
func Paginate[T any](items []T, page, pageSize int) ([]T, Pagination) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	numPages := (total + pageSize - 1) / pageSize
	if numPages == 0 {
		numPages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := min(start+pageSize, total)

	p := Pagination{
		TotalItems: total,
		NumItems:   end - start,
		NumPages:   numPages,
		Page:       page,
	}
	if page < numPages {
		next := page + 1
		p.Next = &next
	}
	if page > 1 && page <= numPages {
		prev := page - 1
		p.Previous = &prev
	}

	return items[start:end], p
}
