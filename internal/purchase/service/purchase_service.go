package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/RochKDev/warranty-manager/config"
	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/purchase/domain"
	"github.com/RochKDev/warranty-manager/internal/purchase/dto"
)

type PurchaseService struct {
	auth          *Authorizer
	repo          domain.PurchaseRepository
	warrantyYears int
	now           func() time.Time
}

func NewPurchaseService(auth *Authorizer, repo domain.PurchaseRepository, cfg *config.Config) *PurchaseService {
	years := cfg.WarrantyYears
	if years <= 0 {
		years = config.DefaultWarrantyYears
	}
	return &PurchaseService{
		auth:          auth,
		repo:          repo,
		warrantyYears: years,
		now:           time.Now,
	}
}

// Create stores a new record owned by the caller together with its nested
// products. The warranty end defaults to buy date plus the configured
// warranty length.
func (s *PurchaseService) Create(ctx context.Context, callerEmail string, input dto.PurchaseInput) (*domain.PurchaseRecord, error) {
	if err := requireBuyDate(input); err != nil {
		return nil, err
	}

	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	shop, reference := strings.TrimSpace(input.ShopName), strings.TrimSpace(input.Reference)
	if err := s.auth.EnsureNoConflict(ctx, shop, reference, caller); err != nil {
		return nil, err
	}

	buyDate := input.BuyDate.Time
	warrantyEnd := input.WarrantyEnd()
	if warrantyEnd == nil {
		end := domain.WarrantyEnd(buyDate, s.warrantyYears)
		warrantyEnd = &end
	}

	now := s.now()
	record := &domain.PurchaseRecord{
		ShopName:        shop,
		Reference:       reference,
		BuyDate:         buyDate,
		WarrantyEndDate: warrantyEnd,
		Description:     input.Description,
		OwnerUserID:     caller.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range input.Products {
		record.Products = append(record.Products, domain.Product{
			Name:        strings.TrimSpace(item.Name),
			Description: item.Description,
		})
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "proof of purchase created",
		"purchase_id", record.ID, "user_id", caller.ID, "products", len(record.Products))
	return record, nil
}

func (s *PurchaseService) List(ctx context.Context, callerEmail string, page domain.PageRequest) (domain.Page[domain.PurchaseRecord], error) {
	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return domain.Page[domain.PurchaseRecord]{}, err
	}

	items, total, err := s.repo.ListByOwner(ctx, caller.ID, page)
	if err != nil {
		return domain.Page[domain.PurchaseRecord]{}, err
	}
	return domain.Page[domain.PurchaseRecord]{Items: items, Page: page.Page, Size: page.Size, Total: total}, nil
}

func (s *PurchaseService) GetOne(ctx context.Context, callerEmail string, id int64) (*domain.PurchaseRecord, error) {
	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	return s.auth.AuthorizedPurchase(ctx, id, caller)
}

// FindByShopAndReference looks the record up by its natural key within the
// caller's own records. Both parts are trimmed like they are on Create.
func (s *PurchaseService) FindByShopAndReference(ctx context.Context, callerEmail, shopName, reference string) (*domain.PurchaseRecord, error) {
	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	shopName, reference = strings.TrimSpace(shopName), strings.TrimSpace(reference)
	record, err := s.repo.FindByShopAndReference(ctx, shopName, reference, caller.ID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFound(apperror.EntityProofOfPurchase, shopName+"/"+reference)
	}
	return record, nil
}

// Update replaces every mutable field of the record. A missing warranty end
// date clears it.
func (s *PurchaseService) Update(ctx context.Context, callerEmail string, id int64, input dto.PurchaseInput) (*domain.PurchaseRecord, error) {
	if err := requireBuyDate(input); err != nil {
		return nil, err
	}

	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	record, err := s.auth.AuthorizedPurchase(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	shop, reference := strings.TrimSpace(input.ShopName), strings.TrimSpace(input.Reference)
	if shop != record.ShopName || reference != record.Reference {
		if err := s.auth.EnsureNoConflict(ctx, shop, reference, caller); err != nil {
			return nil, err
		}
	}

	record.ShopName = shop
	record.Reference = reference
	record.BuyDate = input.BuyDate.Time
	record.WarrantyEndDate = input.WarrantyEnd()
	record.Description = input.Description
	record.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "proof of purchase updated", "purchase_id", record.ID, "user_id", caller.ID)
	return record, nil
}

// Delete removes the record and, by cascade, all of its products.
func (s *PurchaseService) Delete(ctx context.Context, callerEmail string, id int64) error {
	caller, err := s.auth.ResolveCaller(ctx, callerEmail)
	if err != nil {
		return err
	}

	record, err := s.auth.AuthorizedPurchase(ctx, id, caller)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, record.ID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "proof of purchase deleted",
		"purchase_id", record.ID, "user_id", caller.ID, "products", len(record.Products))
	return nil
}

func requireBuyDate(input dto.PurchaseInput) error {
	if input.BuyDate == nil {
		return &apperror.ValidationError{Fields: []apperror.FieldError{{Field: "buyDate", Error: "buyDate is required"}}}
	}
	return nil
}
