package readstore

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"
	"school-rewards/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const voucherSelect = `
	SELECT id, student_id, issued_by, order_id, period_id, week_start, status, approved_by, approved_at, created_at
	FROM vouchers`

type VoucherReadStore struct {
	db db.DBTX
}

func NewVoucherReadStore(dbtx db.DBTX) *VoucherReadStore {
	return &VoucherReadStore{db: dbtx}
}

func (r *VoucherReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VoucherView, error) {
	row := r.db.QueryRow(ctx, voucherSelect+` WHERE id = $1`, id)

	view, err := scanVoucherView(row)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by ID", err)
	}
	return view, nil
}

func (r *VoucherReadStore) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*queries.VoucherView, error) {
	return r.list(ctx, voucherSelect+` WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
}

func (r *VoucherReadStore) FindUnredeemedByStudent(ctx context.Context, studentID uuid.UUID) ([]*queries.VoucherView, error) {
	return r.list(ctx, voucherSelect+` WHERE student_id = $1 AND status = 'approved' AND order_id IS NULL ORDER BY created_at`, studentID)
}

func (r *VoucherReadStore) FindByIssuer(ctx context.Context, issuerID uuid.UUID) ([]*queries.VoucherView, error) {
	return r.list(ctx, voucherSelect+` WHERE issued_by = $1 ORDER BY created_at DESC`, issuerID)
}

func (r *VoucherReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.VoucherView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vouchers", err)
	}
	defer rows.Close()

	var views []*queries.VoucherView
	for rows.Next() {
		view, err := scanVoucherView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list vouchers", err)
	}
	return views, nil
}

func scanVoucherView(row pgx.Row) (*queries.VoucherView, error) {
	var v queries.VoucherView
	err := row.Scan(&v.ID, &v.StudentID, &v.IssuedBy, &v.OrderID, &v.PeriodID, &v.WeekStart, &v.Status, &v.ApprovedBy, &v.ApprovedAt, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
