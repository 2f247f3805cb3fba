package readstore

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"
	"school-rewards/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderSelect = `
	SELECT o.id, o.student_id, u.name, o.total_cost, o.status, o.created_at, o.updated_at
	FROM orders o
	JOIN users u ON u.id = o.student_id`

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row := r.db.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id)

	view, err := scanOrderView(row)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	if err := r.attachItems(ctx, []*queries.OrderView{view}); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *OrderReadStore) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*queries.OrderView, error) {
	return r.list(ctx, orderSelect+` WHERE o.student_id = $1 ORDER BY o.created_at DESC`, studentID)
}

func (r *OrderReadStore) FindByStatus(ctx context.Context, status string) ([]*queries.OrderView, error) {
	return r.list(ctx, orderSelect+` WHERE o.status = $1 ORDER BY o.created_at DESC`, status)
}

func (r *OrderReadStore) FindAll(ctx context.Context) ([]*queries.OrderView, error) {
	return r.list(ctx, orderSelect+` ORDER BY o.created_at DESC`)
}

func (r *OrderReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var views []*queries.OrderView
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}

	if err := r.attachItems(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

func scanOrderView(row pgx.Row) (*queries.OrderView, error) {
	var v queries.OrderView
	err := row.Scan(&v.ID, &v.StudentID, &v.StudentName, &v.TotalCost, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// attachItems loads the line items for a batch of orders in one query.
func (r *OrderReadStore) attachItems(ctx context.Context, views []*queries.OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(views))
	byID := make(map[uuid.UUID]*queries.OrderView, len(views))
	for i, v := range views {
		ids[i] = v.ID
		byID[v.ID] = v
		v.Items = []queries.OrderItemView{}
	}

	const query = `
		SELECT oi.order_id, oi.product_id, p.name, oi.quantity, oi.price_at_order
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to load order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		var item queries.OrderItemView
		if err := rows.Scan(&orderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.PriceAtOrder); err != nil {
			return infra.WrapRepoErr("failed to scan order item row", err)
		}
		if v, ok := byID[orderID]; ok {
			v.Items = append(v.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to load order items", err)
	}
	return nil
}
