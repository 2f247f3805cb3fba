package repository

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"

	"github.com/google/uuid"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) Create(ctx context.Context, tx db.DBTX, name, description string, price, stock int) (uuid.UUID, error) {
	const query = `
		INSERT INTO products (id, name, description, price, stock, purchases, active, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, 0, TRUE, NOW(), NOW())
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, name, description, price, stock).Scan(&id); err != nil {
		return uuid.Nil, wrapPgErr("failed to create product", err)
	}
	return id, nil
}

func (r *ProductRepository) Update(ctx context.Context, tx db.DBTX, id uuid.UUID, name, description string, price int, active bool) error {
	const query = `
		UPDATE products SET name = $2, description = $3, price = $4, active = $5, updated_at = NOW()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, name, description, price, active)
	if err != nil {
		return wrapPgErr("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

// DebitStock takes qty units from stock and counts them as purchases. The
// bound re-check in the WHERE clause is what keeps stock non-negative under
// concurrent settlements; zero rows means the stock no longer covers qty or
// the product went inactive.
func (r *ProductRepository) DebitStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int) error {
	const query = `
		UPDATE products SET stock = stock - $2, purchases = purchases + $2, updated_at = NOW()
		WHERE id = $1 AND active AND stock >= $2`

	tag, err := tx.Exec(ctx, query, productID, qty)
	if err != nil {
		return wrapPgErr("failed to debit product stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("insufficient stock", nil, infra.KindConflict)
	}
	return nil
}

// AdjustStock applies a signed restock/correction delta, refusing to go
// below zero.
func (r *ProductRepository) AdjustStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, delta int) error {
	const query = `
		UPDATE products SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0`

	tag, err := tx.Exec(ctx, query, productID, delta)
	if err != nil {
		return wrapPgErr("failed to adjust product stock", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyZeroRows(ctx, tx, productID)
	}
	return nil
}

// classifyZeroRows tells a missing product apart from a bound violation.
func (r *ProductRepository) classifyZeroRows(ctx context.Context, tx db.DBTX, productID uuid.UUID) error {
	const query = `SELECT 1 FROM products WHERE id = $1`

	var one int
	if err := tx.QueryRow(ctx, query, productID).Scan(&one); err != nil {
		return wrapPgErr("product not found", err)
	}
	return infra.WrapRepoErr("stock adjustment below zero", nil, infra.KindConflict)
}
