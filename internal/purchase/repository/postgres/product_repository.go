package postgres

import (
	"context"
	"errors"

	"github.com/RochKDev/warranty-manager/db"
	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/purchase/domain"
	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	conn db.DBTX
}

func NewProductRepository(conn db.DBTX) *ProductRepository {
	return &ProductRepository{conn: conn}
}

func insertProduct(ctx context.Context, conn db.DBTX, p *domain.Product) error {
	return conn.QueryRow(ctx, `
		INSERT INTO products (name, description, purchase_record_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, p.Name, p.Description, p.PurchaseRecordID).Scan(&p.ID)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.conn.QueryRow(ctx, `
		SELECT id, name, COALESCE(description, ''), purchase_record_id
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.PurchaseRecordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewStorage("get product", err)
	}
	return &p, nil
}

// ListByOwner pages over the products whose parent record belongs to ownerID.
func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID int64, page domain.PageRequest) ([]domain.Product, int64, error) {
	const op = "list products"

	var total int64
	err := r.conn.QueryRow(ctx, `
		SELECT count(*)
		FROM products p
		JOIN purchase_records pr ON pr.id = p.purchase_record_id
		WHERE pr.owner_user_id = $1
	`, ownerID).Scan(&total)
	if err != nil {
		return nil, 0, apperror.NewStorage(op, err)
	}
	if total == 0 {
		return []domain.Product{}, 0, nil
	}

	rows, err := r.conn.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.description, ''), p.purchase_record_id
		FROM products p
		JOIN purchase_records pr ON pr.id = p.purchase_record_id
		WHERE pr.owner_user_id = $1
		`+orderBy(page, "p.id")+`
		LIMIT $2 OFFSET $3
	`, ownerID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, apperror.NewStorage(op, err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PurchaseRecordID); err != nil {
			return nil, 0, apperror.NewStorage(op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewStorage(op, err)
	}
	return products, total, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := insertProduct(ctx, r.conn, product); err != nil {
		return apperror.NewStorage("create product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	tag, err := r.conn.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, purchase_record_id = $3
		WHERE id = $4
	`, product.Name, product.Description, product.PurchaseRecordID, product.ID)
	if err != nil {
		return apperror.NewStorage("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(apperror.EntityProduct, product.ID)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return apperror.NewStorage("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(apperror.EntityProduct, id)
	}
	return nil
}
