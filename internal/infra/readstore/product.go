package readstore

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"
	"school-rewards/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productSelect = `
	SELECT id, name, description, price, stock, purchases, active, created_at, updated_at
	FROM products`

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	row := r.db.QueryRow(ctx, productSelect+` WHERE id = $1`, id)

	view, err := scanProductView(row)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	return view, nil
}

func (r *ProductReadStore) FindAll(ctx context.Context) ([]*queries.ProductView, error) {
	return r.list(ctx, productSelect+` ORDER BY name`)
}

func (r *ProductReadStore) FindAvailable(ctx context.Context) ([]*queries.ProductView, error) {
	return r.list(ctx, productSelect+` WHERE active AND stock > 0 ORDER BY name`)
}

func (r *ProductReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var views []*queries.ProductView
	for rows.Next() {
		view, err := scanProductView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	return views, nil
}

func scanProductView(row pgx.Row) (*queries.ProductView, error) {
	var v queries.ProductView
	err := row.Scan(&v.ID, &v.Name, &v.Description, &v.Price, &v.Stock, &v.Purchases, &v.Active, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
