package service

import (
	"context"
	"log/slog"

	authdomain "github.com/RochKDev/warranty-manager/internal/auth/domain"
	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/purchase/domain"
)

// Authorizer enforces that purchase records and products are only reached
// by the user owning them. Ownership of a product is that of its parent
// record.
type Authorizer struct {
	users     authdomain.UserRepository
	purchases domain.PurchaseRepository
	products  domain.ProductRepository
}

func NewAuthorizer(users authdomain.UserRepository, purchases domain.PurchaseRepository, products domain.ProductRepository) *Authorizer {
	return &Authorizer{users: users, purchases: purchases, products: products}
}

// ResolveCaller maps the authenticated email to its user row.
func (a *Authorizer) ResolveCaller(ctx context.Context, email string) (*authdomain.User, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}
	return user, nil
}

func (a *Authorizer) AuthorizedPurchase(ctx context.Context, id int64, caller *authdomain.User) (*domain.PurchaseRecord, error) {
	record, err := a.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFound(apperror.EntityProofOfPurchase, id)
	}
	if record.OwnerUserID != caller.ID {
		slog.WarnContext(ctx, "proof of purchase access denied", "purchase_id", id, "user_id", caller.ID)
		return nil, apperror.NewForbidden("proof of purchase does not belong to the current user")
	}
	return record, nil
}

func (a *Authorizer) AuthorizedProduct(ctx context.Context, id int64, caller *authdomain.User) (*domain.Product, error) {
	product, err := a.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFound(apperror.EntityProduct, id)
	}

	parent, err := a.purchases.GetByID(ctx, product.PurchaseRecordID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperror.NewNotFound(apperror.EntityProduct, id)
	}
	if parent.OwnerUserID != caller.ID {
		slog.WarnContext(ctx, "product access denied", "product_id", id, "user_id", caller.ID)
		return nil, apperror.NewForbidden("product does not belong to the current user")
	}
	return product, nil
}

// EnsureNoConflict fails when the caller already has a record with the same
// shop name and reference. Other users' records never conflict.
func (a *Authorizer) EnsureNoConflict(ctx context.Context, shopName, reference string, caller *authdomain.User) error {
	existing, err := a.purchases.FindByShopAndReference(ctx, shopName, reference, caller.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewConflict(shopName, reference)
	}
	return nil
}
