package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a zero-based page with an optional sort column. SortColumn
// must already be a whitelisted column name.
type PageRequest struct {
	Page       int
	Size       int
	SortColumn string
	Desc       bool
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int64
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}
