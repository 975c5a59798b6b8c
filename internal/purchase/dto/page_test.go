package dto

import (
	"testing"

	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/purchase/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name             string
		page, size, sort string
		want             domain.PageRequest
	}{
		{"defaults", "", "", "", domain.PageRequest{Size: domain.DefaultPageSize}},
		{"explicit", "2", "50", "", domain.PageRequest{Page: 2, Size: 50}},
		{"sort asc", "", "", "buyDate", domain.PageRequest{Size: 20, SortColumn: "buy_date"}},
		{"sort desc", "", "", "shopName,DESC", domain.PageRequest{Size: 20, SortColumn: "shop_name", Desc: true}},
		{"max size", "0", "100", "id,asc", domain.PageRequest{Size: 100, SortColumn: "id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePageRequest(tt.page, tt.size, tt.sort, PurchaseSortColumns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePageRequest_Invalid(t *testing.T) {
	tests := []struct {
		name             string
		page, size, sort string
		field            string
	}{
		{"negative page", "-1", "", "", "page"},
		{"page not a number", "x", "", "", "page"},
		{"size zero", "", "0", "", "size"},
		{"size too big", "", "101", "", "size"},
		{"unknown sort field", "", "", "password_hash", "sort"},
		{"bad direction", "", "", "id,sideways", "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePageRequest(tt.page, tt.size, tt.sort, PurchaseSortColumns)
			var verr *apperror.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}
}

func TestParsePageRequest_ProductColumns(t *testing.T) {
	got, err := ParsePageRequest("", "", "name,desc", ProductSortColumns)
	require.NoError(t, err)
	assert.Equal(t, "p.name", got.SortColumn)
	assert.True(t, got.Desc)

	_, err = ParsePageRequest("", "", "shopName", ProductSortColumns)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestNewPageOutput(t *testing.T) {
	page := domain.Page[domain.Product]{
		Items: []domain.Product{{ID: 1, Name: "TV", PurchaseRecordID: 9}},
		Page:  0,
		Size:  1,
		Total: 3,
	}

	out := NewPageOutput(page, NewProductOutput)

	assert.Equal(t, []ProductOutput{{ID: 1, Name: "TV", PurchaseRecordID: 9}}, out.Content)
	assert.Equal(t, int64(3), out.TotalElements)
	assert.Equal(t, 3, out.TotalPages)
}
