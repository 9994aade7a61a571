package entity

// Paging defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageQuery selects one page of a listing. Search is a prefix filter whose column depends on the entity.
type PageQuery struct {
	Page     int
	PageSize int
	Search   string
}

// Normalize applies paging defaults and bounds
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset returns the number of rows to skip
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Pagination describes the page returned with a listing
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination computes total pages as ceil(total/size)
func NewPagination(q PageQuery, total int64) Pagination {
	pages := 0
	if q.PageSize > 0 {
		pages = int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	}
	return Pagination{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}

// Page is a listing together with its pagination
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
