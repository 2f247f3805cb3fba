package readstore

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"
	"school-rewards/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const periodSelect = `
	SELECT id, name, start_date, end_date, max_vouchers, required_for_certificate, is_active
	FROM certificate_periods`

type PeriodReadStore struct {
	db db.DBTX
}

func NewPeriodReadStore(dbtx db.DBTX) *PeriodReadStore {
	return &PeriodReadStore{db: dbtx}
}

func (r *PeriodReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PeriodView, error) {
	row := r.db.QueryRow(ctx, periodSelect+` WHERE id = $1`, id)
	return r.one(row, "failed to find certificate period by ID")
}

func (r *PeriodReadStore) FindActive(ctx context.Context) (*queries.PeriodView, error) {
	row := r.db.QueryRow(ctx, periodSelect+` WHERE is_active LIMIT 1`)
	return r.one(row, "failed to find active certificate period")
}

func (r *PeriodReadStore) FindAll(ctx context.Context) ([]*queries.PeriodView, error) {
	rows, err := r.db.Query(ctx, periodSelect+` ORDER BY start_date DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list certificate periods", err)
	}
	defer rows.Close()

	var views []*queries.PeriodView
	for rows.Next() {
		view, err := scanPeriodView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan certificate period row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list certificate periods", err)
	}
	return views, nil
}

func (r *PeriodReadStore) one(row pgx.Row, msg string) (*queries.PeriodView, error) {
	view, err := scanPeriodView(row)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("certificate period not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}
	return view, nil
}

func scanPeriodView(row pgx.Row) (*queries.PeriodView, error) {
	var v queries.PeriodView
	err := row.Scan(&v.ID, &v.Name, &v.StartDate, &v.EndDate, &v.MaxVouchers, &v.RequiredForCertificate, &v.Active)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
