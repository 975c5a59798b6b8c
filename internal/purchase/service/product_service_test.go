package service_test

import (
	"context"
	"testing"

	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/purchase/domain"
	"github.com/RochKDev/warranty-manager/internal/purchase/dto"
	"github.com/RochKDev/warranty-manager/internal/purchase/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) productService() *service.ProductService {
	return service.NewProductService(f.auth, f.products)
}

func TestProductService_Create(t *testing.T) {
	f := newFixture(t)
	s := f.productService()

	f.caller(alice)
	f.purchases.EXPECT().GetByID(gomock.Any(), int64(4)).Return(&domain.PurchaseRecord{ID: 4, OwnerUserID: alice.ID}, nil)
	f.products.EXPECT().Create(gomock.Any(), &domain.Product{Name: "TV", Description: "55 inch", PurchaseRecordID: 4}).
		DoAndReturn(func(_ context.Context, p *domain.Product) error {
			p.ID = 9
			return nil
		})

	p, err := s.Create(context.Background(), alice.Email, dto.ProductInput{Name: " TV ", Description: "55 inch", PurchaseRecordID: 4})

	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)
}

func TestProductService_Create_ParentChecks(t *testing.T) {
	t.Run("missing parent", func(t *testing.T) {
		f := newFixture(t)
		f.caller(alice)
		f.purchases.EXPECT().GetByID(gomock.Any(), int64(4)).Return(nil, nil)

		_, err := f.productService().Create(context.Background(), alice.Email, dto.ProductInput{Name: "TV", PurchaseRecordID: 4})

		var nf *apperror.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, apperror.EntityProofOfPurchase, nf.Entity)
	})

	t.Run("parent of another user", func(t *testing.T) {
		f := newFixture(t)
		f.caller(bob)
		f.purchases.EXPECT().GetByID(gomock.Any(), int64(4)).Return(&domain.PurchaseRecord{ID: 4, OwnerUserID: alice.ID}, nil)

		_, err := f.productService().Create(context.Background(), bob.Email, dto.ProductInput{Name: "TV", PurchaseRecordID: 4})

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestProductService_List(t *testing.T) {
	f := newFixture(t)
	page := domain.PageRequest{Size: 20}

	f.caller(alice)
	f.products.EXPECT().ListByOwner(gomock.Any(), alice.ID, page).Return([]domain.Product{{ID: 1}, {ID: 2}}, int64(2), nil)

	got, err := f.productService().List(context.Background(), alice.Email, page)

	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, 1, got.TotalPages())
}

func TestProductService_GetOne(t *testing.T) {
	f := newFixture(t)
	product := &domain.Product{ID: 9, Name: "TV", PurchaseRecordID: 4}

	f.caller(alice)
	f.products.EXPECT().GetByID(gomock.Any(), int64(9)).Return(product, nil)
	f.purchases.EXPECT().GetByID(gomock.Any(), int64(4)).Return(&domain.PurchaseRecord{ID: 4, OwnerUserID: alice.ID}, nil)

	got, err := f.productService().GetOne(context.Background(), alice.Email, 9)

	require.NoError(t, err)
	assert.Equal(t, product, got)
}

func TestProductService_GetOne_NotFound(t *testing.T) {
	f := newFixture(t)

	f.caller(alice)
	f.products.EXPECT().GetByID(gomock.Any(), int64(9)).Return(nil, nil)

	_, err := f.productService().GetOne(context.Background(), alice.Email, 9)

	var nf *apperror.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, apperror.EntityProduct, nf.Entity)
}

func TestProductService_OtherUsersProductIsForbidden(t *testing.T) {
	product := &domain.Product{ID: 9, PurchaseRecordID: 4}
	parent := &domain.PurchaseRecord{ID: 4, OwnerUserID: alice.ID}

	tests := []struct {
		name string
		call func(s *service.ProductService) error
	}{
		{"get", func(s *service.ProductService) error {
			_, err := s.GetOne(context.Background(), bob.Email, 9)
			return err
		}},
		{"update", func(s *service.ProductService) error {
			_, err := s.Update(context.Background(), bob.Email, 9, dto.ProductInput{Name: "x", PurchaseRecordID: 4})
			return err
		}},
		{"delete", func(s *service.ProductService) error {
			return s.Delete(context.Background(), bob.Email, 9)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.caller(bob)
			f.products.EXPECT().GetByID(gomock.Any(), int64(9)).Return(product, nil)
			f.purchases.EXPECT().GetByID(gomock.Any(), int64(4)).Return(parent, nil)

			assert.ErrorIs(t, tt.call(f.productService()), apperror.ErrForbidden)
		})
	}
}

func TestProductService_Update_MoveBetweenOwnRecords(t *testing.T) {
	f := newFixture(t)

	f.caller(alice)
	f.products.EXPECT().GetByID(gomock.Any(), int64(9)).Return(&domain.Product{ID: 9, Name: "TV", PurchaseRecordID: 4}, nil)
	f.purchases.EXPECT().GetByID(gomock.Any(), int64(4)).Return(&domain.PurchaseRecord{ID: 4, OwnerUserID: alice.ID}, nil)
	f.purchases.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&domain.PurchaseRecord{ID: 5, OwnerUserID: alice.ID}, nil)
	f.products.EXPECT().Update(gomock.Any(), &domain.Product{ID: 9, Name: "TV", Description: "moved", PurchaseRecordID: 5}).Return(nil)

	got, err := f.productService().Update(context.Background(), alice.Email, 9, dto.ProductInput{Name: "TV", Description: "moved", PurchaseRecordID: 5})

	require.NoError(t, err)
	assert.Equal(t, int64(5), got.PurchaseRecordID)
}

func TestProductService_Update_MoveToOtherUsersRecord(t *testing.T) {
	f := newFixture(t)

	f.caller(alice)
	f.products.EXPECT().GetByID(gomock.Any(), int64(9)).Return(&domain.Product{ID: 9, PurchaseRecordID: 4}, nil)
	f.purchases.EXPECT().GetByID(gomock.Any(), int64(4)).Return(&domain.PurchaseRecord{ID: 4, OwnerUserID: alice.ID}, nil)
	f.purchases.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&domain.PurchaseRecord{ID: 7, OwnerUserID: bob.ID}, nil)

	_, err := f.productService().Update(context.Background(), alice.Email, 9, dto.ProductInput{Name: "TV", PurchaseRecordID: 7})

	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestProductService_Update_MoveToMissingRecord(t *testing.T) {
	f := newFixture(t)

	f.caller(alice)
	f.products.EXPECT().GetByID(gomock.Any(), int64(9)).Return(&domain.Product{ID: 9, PurchaseRecordID: 4}, nil)
	f.purchases.EXPECT().GetByID(gomock.Any(), int64(4)).Return(&domain.PurchaseRecord{ID: 4, OwnerUserID: alice.ID}, nil)
	f.purchases.EXPECT().GetByID(gomock.Any(), int64(8)).Return(nil, nil)

	_, err := f.productService().Update(context.Background(), alice.Email, 9, dto.ProductInput{Name: "TV", PurchaseRecordID: 8})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProductService_Delete(t *testing.T) {
	f := newFixture(t)

	f.caller(alice)
	f.products.EXPECT().GetByID(gomock.Any(), int64(9)).Return(&domain.Product{ID: 9, PurchaseRecordID: 4}, nil)
	f.purchases.EXPECT().GetByID(gomock.Any(), int64(4)).Return(&domain.PurchaseRecord{ID: 4, OwnerUserID: alice.ID}, nil)
	f.products.EXPECT().Delete(gomock.Any(), int64(9)).Return(nil)

	assert.NoError(t, f.productService().Delete(context.Background(), alice.Email, 9))
}
