package dto

import (
	"fmt"
	"strconv"
	"strings"

	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/purchase/domain"
)

// Sortable fields exposed to clients, mapped to their SQL columns.
var (
	PurchaseSortColumns = map[string]string{
		"id":              "id",
		"shopName":        "shop_name",
		"reference":       "reference",
		"buyDate":         "buy_date",
		"warrantyEndDate": "warranty_end_date",
	}
	ProductSortColumns = map[string]string{
		"id":   "p.id",
		"name": "p.name",
	}
)

type PageOutput[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

func NewPageOutput[E, T any](p domain.Page[E], convert func(*E) T) PageOutput[T] {
	content := make([]T, 0, len(p.Items))
	for i := range p.Items {
		content = append(content, convert(&p.Items[i]))
	}
	return PageOutput[T]{
		Content:       content,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.Total,
		TotalPages:    p.TotalPages(),
	}
}

// ParsePageRequest reads the page, size and sort query values. sort has the
// form "field" or "field,asc|desc"; unknown fields are rejected.
func ParsePageRequest(page, size, sort string, columns map[string]string) (domain.PageRequest, error) {
	req := domain.PageRequest{Size: domain.DefaultPageSize}
	var fields []apperror.FieldError

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 0 {
			fields = append(fields, apperror.FieldError{Field: "page", Error: "page must be a non-negative integer"})
		} else {
			req.Page = n
		}
	}

	if size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n < 1 || n > domain.MaxPageSize {
			fields = append(fields, apperror.FieldError{
				Field: "size",
				Error: fmt.Sprintf("size must be between 1 and %d", domain.MaxPageSize),
			})
		} else {
			req.Size = n
		}
	}

	if sort != "" {
		field, dir, _ := strings.Cut(sort, ",")
		column, ok := columns[strings.TrimSpace(field)]
		if !ok {
			fields = append(fields, apperror.FieldError{Field: "sort", Error: "cannot sort by " + field})
		}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			req.Desc = true
		default:
			fields = append(fields, apperror.FieldError{Field: "sort", Error: "sort direction must be asc or desc"})
		}
		req.SortColumn = column
	}

	if len(fields) > 0 {
		return domain.PageRequest{}, &apperror.ValidationError{Fields: fields}
	}
	return req, nil
}
