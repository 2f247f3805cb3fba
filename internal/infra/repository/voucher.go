package repository

import (
	"context"
	"time"

	"school-rewards/internal/domain/voucher"
	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"

	"github.com/google/uuid"
)

type VoucherRepository struct{}

func NewVoucherRepository() *VoucherRepository {
	return &VoucherRepository{}
}

func (r *VoucherRepository) Create(ctx context.Context, tx db.DBTX, v *voucher.Voucher) (uuid.UUID, error) {
	const query = `
		INSERT INTO vouchers (id, student_id, issued_by, period_id, week_start, status, approved_by, approved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		v.ID(), v.StudentID(), v.IssuedBy(), v.PeriodID(), v.WeekStart(),
		v.Status().String(), v.ApprovedBy(), v.ApprovedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create voucher", err)
	}
	return id, nil
}

// Resolve flips a pending voucher to approved or rejected. The status guard
// in the WHERE clause makes the transition single-shot under concurrency.
func (r *VoucherRepository) Resolve(ctx context.Context, tx db.DBTX, voucherID, approverID uuid.UUID, status voucher.Status, at time.Time) error {
	const query = `
		UPDATE vouchers SET status = $2, approved_by = $3, approved_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	tag, err := tx.Exec(ctx, query, voucherID, status.String(), approverID, at)
	if err != nil {
		return wrapPgErr("failed to resolve voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher is not pending", nil, infra.KindConflict)
	}
	return nil
}

// MarkRedeemed sets the order reference on an approved, still-unredeemed
// voucher. Zero rows means another redemption won or the voucher is not
// approved.
func (r *VoucherRepository) MarkRedeemed(ctx context.Context, tx db.DBTX, voucherID, orderID uuid.UUID) error {
	const query = `
		UPDATE vouchers SET order_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'approved' AND order_id IS NULL`

	tag, err := tx.Exec(ctx, query, voucherID, orderID)
	if err != nil {
		return wrapPgErr("failed to redeem voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not redeemable", nil, infra.KindConflict)
	}
	return nil
}

// Delete refuses redeemed vouchers in the WHERE clause so a redemption that
// commits after the caller's read still keeps the row.
func (r *VoucherRepository) Delete(ctx context.Context, tx db.DBTX, voucherID uuid.UUID) error {
	const query = `DELETE FROM vouchers WHERE id = $1 AND order_id IS NULL`

	tag, err := tx.Exec(ctx, query, voucherID)
	if err != nil {
		return wrapPgErr("failed to delete voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not deletable", nil, infra.KindConflict)
	}
	return nil
}
