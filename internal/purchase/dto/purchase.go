package dto

import (
	"time"

	"github.com/RochKDev/warranty-manager/internal/purchase/domain"
)

// PurchaseInput is used for create and for the full-replace update. Products
// are only read on create.
type PurchaseInput struct {
	ShopName        string              `json:"shopName" validate:"required,notblank,max=255"`
	Reference       string              `json:"reference" validate:"required,notblank,max=255"`
	BuyDate         *Date               `json:"buyDate" validate:"required"`
	WarrantyEndDate *Date               `json:"warrantyEndDate"`
	Description     string              `json:"description" validate:"max=2000"`
	Products        []PurchaseItemInput `json:"products" validate:"omitempty,dive"`
}

type PurchaseItemInput struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

func (in PurchaseInput) WarrantyEnd() *time.Time {
	if in.WarrantyEndDate == nil {
		return nil
	}
	t := in.WarrantyEndDate.Time
	return &t
}

type PurchaseOutput struct {
	ID              int64           `json:"id"`
	ShopName        string          `json:"shopName"`
	Reference       string          `json:"reference"`
	BuyDate         Date            `json:"buyDate"`
	WarrantyEndDate *Date           `json:"warrantyEndDate"`
	Description     string          `json:"description"`
	Products        []ProductOutput `json:"products"`
}

func NewPurchaseOutput(p *domain.PurchaseRecord) PurchaseOutput {
	products := make([]ProductOutput, 0, len(p.Products))
	for i := range p.Products {
		products = append(products, NewProductOutput(&p.Products[i]))
	}
	return PurchaseOutput{
		ID:              p.ID,
		ShopName:        p.ShopName,
		Reference:       p.Reference,
		BuyDate:         NewDate(p.BuyDate),
		WarrantyEndDate: datePtr(p.WarrantyEndDate),
		Description:     p.Description,
		Products:        products,
	}
}
