package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/RochKDev/warranty-manager/db"
	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/purchase/domain"
	"github.com/jackc/pgx/v5"
)

const purchaseUniqueConstraint = "uq_purchase_records_shop_reference_owner"

type PurchaseRepository struct {
	conn db.DBTX
}

func NewPurchaseRepository(conn db.DBTX) *PurchaseRepository {
	return &PurchaseRepository{conn: conn}
}

const selectPurchase = `
	SELECT id, shop_name, reference, buy_date, warranty_end_date,
		COALESCE(description, ''), owner_user_id, created_at, updated_at
	FROM purchase_records
`

func scanPurchase(row pgx.Row) (*domain.PurchaseRecord, error) {
	var p domain.PurchaseRecord
	err := row.Scan(&p.ID, &p.ShopName, &p.Reference, &p.BuyDate, &p.WarrantyEndDate,
		&p.Description, &p.OwnerUserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepository) getOne(ctx context.Context, op, where string, args ...any) (*domain.PurchaseRecord, error) {
	p, err := scanPurchase(r.conn.QueryRow(ctx, selectPurchase+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewStorage(op, err)
	}

	byParent, err := r.productsOf(ctx, []int64{p.ID})
	if err != nil {
		return nil, apperror.NewStorage(op, err)
	}
	p.Products = byParent[p.ID]
	return p, nil
}

func (r *PurchaseRepository) GetByID(ctx context.Context, id int64) (*domain.PurchaseRecord, error) {
	return r.getOne(ctx, "get proof of purchase", `WHERE id = $1`, id)
}

func (r *PurchaseRepository) FindByShopAndReference(ctx context.Context, shopName, reference string, ownerID int64) (*domain.PurchaseRecord, error) {
	return r.getOne(ctx, "find proof of purchase",
		`WHERE shop_name = $1 AND reference = $2 AND owner_user_id = $3`, shopName, reference, ownerID)
}

// productsOf loads the products of the given records grouped by record id.
func (r *PurchaseRepository) productsOf(ctx context.Context, ids []int64) (map[int64][]domain.Product, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), purchase_record_id
		FROM products
		WHERE purchase_record_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]domain.Product, len(ids))
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PurchaseRecordID); err != nil {
			return nil, err
		}
		out[p.PurchaseRecordID] = append(out[p.PurchaseRecordID], p)
	}
	return out, rows.Err()
}

func (r *PurchaseRepository) ListByOwner(ctx context.Context, ownerID int64, page domain.PageRequest) ([]domain.PurchaseRecord, int64, error) {
	const op = "list proofs of purchase"

	var total int64
	if err := r.conn.QueryRow(ctx, `SELECT count(*) FROM purchase_records WHERE owner_user_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, apperror.NewStorage(op, err)
	}
	if total == 0 {
		return []domain.PurchaseRecord{}, 0, nil
	}

	query := selectPurchase + `WHERE owner_user_id = $1 ` + orderBy(page, "id") + ` LIMIT $2 OFFSET $3`
	rows, err := r.conn.Query(ctx, query, ownerID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, apperror.NewStorage(op, err)
	}

	records := []domain.PurchaseRecord{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			rows.Close()
			return nil, 0, apperror.NewStorage(op, err)
		}
		records = append(records, *p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewStorage(op, err)
	}
	if len(records) == 0 {
		return records, total, nil
	}

	ids := make([]int64, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	byParent, err := r.productsOf(ctx, ids)
	if err != nil {
		return nil, 0, apperror.NewStorage(op, err)
	}
	for i := range records {
		records[i].Products = byParent[records[i].ID]
	}
	return records, total, nil
}

// Create inserts the record and its products in one transaction. Generated
// ids are written back to record and to each product.
func (r *PurchaseRepository) Create(ctx context.Context, record *domain.PurchaseRecord) error {
	err := db.WithTx(ctx, r.conn, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO purchase_records
				(shop_name, reference, buy_date, warranty_end_date, description, owner_user_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, record.ShopName, record.Reference, record.BuyDate, record.WarrantyEndDate,
			record.Description, record.OwnerUserID, record.CreatedAt, record.UpdatedAt).Scan(&record.ID)
		if err != nil {
			return err
		}

		for i := range record.Products {
			p := &record.Products[i]
			p.PurchaseRecordID = record.ID
			if err := insertProduct(ctx, tx, p); err != nil {
				return fmt.Errorf("insert product %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, purchaseUniqueConstraint) {
			return apperror.NewConflict(record.ShopName, record.Reference)
		}
		return apperror.NewStorage("create proof of purchase", err)
	}
	return nil
}

func (r *PurchaseRepository) Update(ctx context.Context, record *domain.PurchaseRecord) error {
	tag, err := r.conn.Exec(ctx, `
		UPDATE purchase_records
		SET shop_name = $1, reference = $2, buy_date = $3, warranty_end_date = $4,
			description = $5, updated_at = $6
		WHERE id = $7
	`, record.ShopName, record.Reference, record.BuyDate, record.WarrantyEndDate,
		record.Description, record.UpdatedAt, record.ID)
	if err != nil {
		if db.IsUniqueViolation(err, purchaseUniqueConstraint) {
			return apperror.NewConflict(record.ShopName, record.Reference)
		}
		return apperror.NewStorage("update proof of purchase", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(apperror.EntityProofOfPurchase, record.ID)
	}
	return nil
}

// Delete removes the record. Its products go with it through the
// ON DELETE CASCADE foreign key.
func (r *PurchaseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM purchase_records WHERE id = $1`, id)
	if err != nil {
		return apperror.NewStorage("delete proof of purchase", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(apperror.EntityProofOfPurchase, id)
	}
	return nil
}

// orderBy renders the ORDER BY clause. SortColumn comes from a whitelist, so
// it is safe to interpolate. The tiebreaker keeps paging stable.
func orderBy(page domain.PageRequest, tiebreaker string) string {
	if page.SortColumn == "" {
		return "ORDER BY " + tiebreaker
	}
	dir := "ASC"
	if page.Desc {
		dir = "DESC"
	}
	if page.SortColumn == tiebreaker {
		return "ORDER BY " + tiebreaker + " " + dir
	}
	return "ORDER BY " + page.SortColumn + " " + dir + ", " + tiebreaker
}
