package models

const (
	// DefaultPageSize applies when the caller does not pass a limit.
	DefaultPageSize = 100
	// MaxPageSize caps any caller-supplied limit.
	MaxPageSize = 1000
)

// Page is a limit/offset window over a list.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DefaultPage returns the first page with the default size.
func DefaultPage() Page {
	return Page{Limit: DefaultPageSize}
}

// Normalized clamps the window into the accepted range.
func (p Page) Normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// ListResponse is the envelope of every paginated list endpoint.
type ListResponse[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewListResponse builds the envelope, never returning a nil Data slice.
func NewListResponse[T any](data []T, total int, page Page) ListResponse[T] {
	if data == nil {
		data = make([]T, 0)
	}
	return ListResponse[T]{Data: data, Total: total, Limit: page.Limit, Offset: page.Offset}
}
