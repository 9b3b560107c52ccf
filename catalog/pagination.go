package catalog

const defaultPageSize = 10

// Pagination is a 1-based page request. Zero values normalize to the first
// page with the default size, so an empty query string just works.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func (p Pagination) normalized() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	return p
}

func (p Pagination) offset() int {
	return (p.Page - 1) * p.PageSize
}

// totalPages is ceil(total / pageSize).
func totalPages(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
