package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/purchase/domain"
	repo "github.com/RochKDev/warranty-manager/internal/purchase/repository/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	purchaseColumns = []string{
		"id", "shop_name", "reference", "buy_date", "warranty_end_date",
		"description", "owner_user_id", "created_at", "updated_at",
	}
	productColumns = []string{"id", "name", "description", "purchase_record_id"}
)

// newMock gives every test its own pool so leftover expectations cannot
// leak between cases.
func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "uq_purchase_records_shop_reference_owner"}
}

func TestPurchaseRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success with products", func(t *testing.T) {
		mock := newMock(t)
		r := repo.NewPurchaseRepository(mock)

		now := time.Now()
		end := day(2026, time.August, 9)
		mock.ExpectQuery("SELECT id, shop_name, reference").
			WithArgs(int64(4)).
			WillReturnRows(pgxmock.NewRows(purchaseColumns).
				AddRow(int64(4), "MediaMarkt", "ABC123", day(2024, time.August, 9), &end, "tv", int64(1), now, now))
		mock.ExpectQuery("FROM products").
			WithArgs([]int64{4}).
			WillReturnRows(pgxmock.NewRows(productColumns).
				AddRow(int64(10), "TV", "", int64(4)).
				AddRow(int64(11), "Remote", "spare", int64(4)))

		p, err := r.GetByID(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, "MediaMarkt", p.ShopName)
		assert.Equal(t, int64(1), p.OwnerUserID)
		require.NotNil(t, p.WarrantyEndDate)
		assert.Equal(t, end, *p.WarrantyEndDate)
		require.Len(t, p.Products, 2)
		assert.Equal(t, "Remote", p.Products[1].Name)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		r := repo.NewPurchaseRepository(mock)

		mock.ExpectQuery("SELECT id, shop_name, reference").
			WithArgs(int64(5)).
			WillReturnError(pgx.ErrNoRows)

		p, err := r.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		r := repo.NewPurchaseRepository(mock)

		mock.ExpectQuery("SELECT id, shop_name, reference").
			WithArgs(int64(6)).
			WillReturnError(errors.New("connection refused"))

		_, err := r.GetByID(ctx, 6)
		assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
	})
}

func TestPurchaseRepository_FindByShopAndReference(t *testing.T) {
	mock := newMock(t)
	r := repo.NewPurchaseRepository(mock)
	now := time.Now()

	mock.ExpectQuery("WHERE shop_name = \\$1 AND reference = \\$2 AND owner_user_id = \\$3").
		WithArgs("MediaMarkt", "ABC123", int64(1)).
		WillReturnRows(pgxmock.NewRows(purchaseColumns).
			AddRow(int64(4), "MediaMarkt", "ABC123", day(2024, time.January, 1), (*time.Time)(nil), "", int64(1), now, now))
	mock.ExpectQuery("FROM products").
		WithArgs([]int64{4}).
		WillReturnRows(pgxmock.NewRows(productColumns))

	p, err := r.FindByShopAndReference(context.Background(), "MediaMarkt", "ABC123", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)
	assert.Nil(t, p.WarrantyEndDate)
	assert.Empty(t, p.Products)
}

func TestPurchaseRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("sorted page", func(t *testing.T) {
		mock := newMock(t)
		r := repo.NewPurchaseRepository(mock)

		now := time.Now()
		page := domain.PageRequest{Page: 1, Size: 2, SortColumn: "buy_date", Desc: true}

		mock.ExpectQuery("SELECT count").
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
		mock.ExpectQuery("ORDER BY buy_date DESC, id LIMIT \\$2 OFFSET \\$3").
			WithArgs(int64(1), 2, 2).
			WillReturnRows(pgxmock.NewRows(purchaseColumns).
				AddRow(int64(7), "Fnac", "R-1", day(2023, time.May, 2), (*time.Time)(nil), "", int64(1), now, now))
		mock.ExpectQuery("FROM products").
			WithArgs([]int64{7}).
			WillReturnRows(pgxmock.NewRows(productColumns).AddRow(int64(20), "Phone", "", int64(7)))

		records, total, err := r.ListByOwner(ctx, 1, page)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, records, 1)
		assert.Equal(t, "Fnac", records[0].ShopName)
		assert.Len(t, records[0].Products, 1)
	})

	t.Run("empty", func(t *testing.T) {
		mock := newMock(t)
		r := repo.NewPurchaseRepository(mock)

		mock.ExpectQuery("SELECT count").
			WithArgs(int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

		records, total, err := r.ListByOwner(ctx, 2, domain.PageRequest{Size: 20})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("count error", func(t *testing.T) {
		mock := newMock(t)
		r := repo.NewPurchaseRepository(mock)

		mock.ExpectQuery("SELECT count").
			WithArgs(int64(3)).
			WillReturnError(errors.New("timeout"))

		_, _, err := r.ListByOwner(ctx, 3, domain.PageRequest{Size: 20})
		assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
	})
}

func TestPurchaseRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	newRecord := func() *domain.PurchaseRecord {
		return &domain.PurchaseRecord{
			ShopName:    "MediaMarkt",
			Reference:   "ABC123",
			BuyDate:     day(2024, time.January, 1),
			OwnerUserID: 1,
			CreatedAt:   now,
			UpdatedAt:   now,
			Products:    []domain.Product{{Name: "TV"}, {Name: "Remote"}},
		}
	}
	expectParentInsert := func(mock pgxmock.PgxPoolIface) *pgxmock.ExpectedQuery {
		return mock.ExpectQuery("INSERT INTO purchase_records").
			WithArgs("MediaMarkt", "ABC123", pgxmock.AnyArg(), pgxmock.AnyArg(), "", int64(1), pgxmock.AnyArg(), pgxmock.AnyArg())
	}

	t.Run("parent and products in one transaction", func(t *testing.T) {
		mock := newMock(t)
		r := repo.NewPurchaseRepository(mock)

		mock.ExpectBegin()
		expectParentInsert(mock).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))
		mock.ExpectQuery("INSERT INTO products").
			WithArgs("TV", "", int64(9)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(30)))
		mock.ExpectQuery("INSERT INTO products").
			WithArgs("Remote", "", int64(9)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(31)))
		mock.ExpectCommit()

		record := newRecord()
		require.NoError(t, r.Create(ctx, record))
		assert.Equal(t, int64(9), record.ID)
		assert.Equal(t, int64(30), record.Products[0].ID)
		assert.Equal(t, int64(31), record.Products[1].ID)
		assert.Equal(t, int64(9), record.Products[1].PurchaseRecordID)
	})

	t.Run("product insert failure rolls back", func(t *testing.T) {
		mock := newMock(t)
		r := repo.NewPurchaseRepository(mock)

		mock.ExpectBegin()
		expectParentInsert(mock).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
		mock.ExpectQuery("INSERT INTO products").
			WithArgs("TV", "", int64(10)).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := r.Create(ctx, newRecord())
		assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
	})

	t.Run("unique violation becomes conflict", func(t *testing.T) {
		mock := newMock(t)
		r := repo.NewPurchaseRepository(mock)

		mock.ExpectBegin()
		expectParentInsert(mock).
			WillReturnError(uniqueViolation())
		mock.ExpectRollback()

		err := r.Create(ctx, newRecord())
		var conflict *apperror.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.ErrorIs(t, err, apperror.ErrConflict)
		assert.Equal(t, "MediaMarkt", conflict.Shop)
		assert.Equal(t, "ABC123", conflict.Reference)
	})
}

func TestPurchaseRepository_Update(t *testing.T) {
	ctx := context.Background()
	record := &domain.PurchaseRecord{ID: 4, ShopName: "Fnac", Reference: "R-2", BuyDate: day(2024, time.March, 3), UpdatedAt: time.Now()}

	expectUpdate := func(mock pgxmock.PgxPoolIface) *pgxmock.ExpectedExec {
		return mock.ExpectExec("UPDATE purchase_records").
			WithArgs("Fnac", "R-2", pgxmock.AnyArg(), pgxmock.AnyArg(), "", pgxmock.AnyArg(), int64(4))
	}

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		expectUpdate(mock).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.NewPurchaseRepository(mock).Update(ctx, record))
	})

	t.Run("missing row", func(t *testing.T) {
		mock := newMock(t)
		expectUpdate(mock).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.NewPurchaseRepository(mock).Update(ctx, record), apperror.ErrNotFound)
	})

	t.Run("unique violation", func(t *testing.T) {
		mock := newMock(t)
		expectUpdate(mock).WillReturnError(uniqueViolation())

		assert.ErrorIs(t, repo.NewPurchaseRepository(mock).Update(ctx, record), apperror.ErrConflict)
	})
}

func TestPurchaseRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM purchase_records").
			WithArgs(int64(4)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.NewPurchaseRepository(mock).Delete(ctx, 4))
	})

	t.Run("missing row", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM purchase_records").
			WithArgs(int64(5)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.NewPurchaseRepository(mock).Delete(ctx, 5), apperror.ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM purchase_records").
			WithArgs(int64(6)).
			WillReturnError(errors.New("broken pipe"))

		assert.ErrorIs(t, repo.NewPurchaseRepository(mock).Delete(ctx, 6), apperror.ErrStorageUnavailable)
	})
}
