package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/RochKDev/warranty-manager/internal/purchase/domain"
	"github.com/RochKDev/warranty-manager/internal/purchase/dto"
)

type ProductService struct {
	auth *Authorizer
	repo domain.ProductRepository
}

func NewProductService(auth *Authorizer, repo domain.ProductRepository) *ProductService {
	return &ProductService{auth: auth, repo: repo}
}

// Create attaches a new product to one of the caller's records. The parent
// is authorized even though the product does not exist yet.
func (s *ProductService) Create(ctx context.Context, callerEmail string, input dto.ProductInput) (*domain.Product, error) {
	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	parent, err := s.auth.AuthorizedPurchase(ctx, input.PurchaseRecordID, caller)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:             strings.TrimSpace(input.Name),
		Description:      input.Description,
		PurchaseRecordID: parent.ID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "product created", "product_id", product.ID, "purchase_id", parent.ID)
	return product, nil
}

func (s *ProductService) List(ctx context.Context, callerEmail string, page domain.PageRequest) (domain.Page[domain.Product], error) {
	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}

	items, total, err := s.repo.ListByOwner(ctx, caller.ID, page)
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}
	return domain.Page[domain.Product]{Items: items, Page: page.Page, Size: page.Size, Total: total}, nil
}

func (s *ProductService) GetOne(ctx context.Context, callerEmail string, id int64) (*domain.Product, error) {
	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	return s.auth.AuthorizedProduct(ctx, id, caller)
}

// Update replaces the product fields. Moving the product to another record
// requires the caller to own that record as well.
func (s *ProductService) Update(ctx context.Context, callerEmail string, id int64, input dto.ProductInput) (*domain.Product, error) {
	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	product, err := s.auth.AuthorizedProduct(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if input.PurchaseRecordID != product.PurchaseRecordID {
		if _, err := s.auth.AuthorizedPurchase(ctx, input.PurchaseRecordID, caller); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "product moved",
			"product_id", product.ID, "from", product.PurchaseRecordID, "to", input.PurchaseRecordID)
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.PurchaseRecordID = input.PurchaseRecordID

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, callerEmail string, id int64) error {
	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return err
	}

	product, err := s.auth.AuthorizedProduct(ctx, id, caller)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "product deleted", "product_id", product.ID)
	return nil
}
