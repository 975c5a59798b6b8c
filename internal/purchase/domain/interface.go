package domain

//go:generate mockgen -destination=../../mocks/mock_purchase_repository.go -package=mocks github.com/RochKDev/warranty-manager/internal/purchase/domain PurchaseRepository,ProductRepository

import "context"

// PurchaseRepository getters return (nil, nil) when nothing matches.
type PurchaseRepository interface {
	GetByID(ctx context.Context, id int64) (*PurchaseRecord, error)
	FindByShopAndReference(ctx context.Context, shopName, reference string, ownerID int64) (*PurchaseRecord, error)
	ListByOwner(ctx context.Context, ownerID int64, page PageRequest) ([]PurchaseRecord, int64, error)
	// Create stores the record and its products atomically.
	Create(ctx context.Context, record *PurchaseRecord) error
	Update(ctx context.Context, record *PurchaseRecord) error
	// Delete removes the record together with its products.
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	ListByOwner(ctx context.Context, ownerID int64, page PageRequest) ([]Product, int64, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
}
