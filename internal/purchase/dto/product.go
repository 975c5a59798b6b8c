package dto

import "github.com/RochKDev/warranty-manager/internal/purchase/domain"

type ProductInput struct {
	Name             string `json:"name" validate:"required,notblank,max=255"`
	Description      string `json:"description" validate:"max=2000"`
	PurchaseRecordID int64  `json:"proofOfPurchaseId" validate:"required,gt=0"`
}

type ProductOutput struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	PurchaseRecordID int64  `json:"proofOfPurchaseId"`
}

func NewProductOutput(p *domain.Product) ProductOutput {
	return ProductOutput{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		PurchaseRecordID: p.PurchaseRecordID,
	}
}
