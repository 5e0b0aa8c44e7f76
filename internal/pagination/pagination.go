// Package pagination implements the page/page_size query contract shared by
// casafin's list endpoints: providers, bills, bill payments, and the
// per-budget collections (contributions, expenses, debts, savings,
// movements).
package pagination

import "gorm.io/gorm"

// Page sizes applied when a request leaves page_size unset or oversized.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest carries the page and page_size query parameters. Zero values
// mean "not provided"; call Defaults before using the request.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults fills unset fields with the first page and the default size, and
// caps the size at the maximum.
func (p *PageRequest) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset converts the page number to a SQL offset.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse is the envelope every casafin list endpoint returns: the rows
// of the requested page plus enough metadata to render paging controls.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse builds the envelope. A nil slice becomes an empty one so
// the data field always serializes as a JSON array.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}

	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Paginate returns a gorm scope applying the request's limit and offset.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
