package repository

import (
	"context"

	"school-rewards/internal/domain/order"
	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"

	"github.com/google/uuid"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	const insertOrder = `
		INSERT INTO orders (id, student_id, total_cost, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, insertOrder, o.ID(), o.StudentID(), o.TotalCost(), o.Status().String()).Scan(&id); err != nil {
		return uuid.Nil, wrapPgErr("failed to create order", err)
	}

	const insertItem = `
		INSERT INTO order_items (order_id, product_id, quantity, price_at_order)
		VALUES ($1, $2, $3, $4)`

	for _, line := range o.Lines() {
		if _, err := tx.Exec(ctx, insertItem, id, line.ProductID, line.Quantity, line.PriceAtOrder); err != nil {
			return uuid.Nil, wrapPgErr("failed to create order item", err)
		}
	}

	return id, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, orderID uuid.UUID, status order.Status) error {
	const query = `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, orderID, status.String())
	if err != nil {
		return wrapPgErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
