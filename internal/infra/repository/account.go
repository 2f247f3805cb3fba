package repository

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"

	"github.com/google/uuid"
)

// AccountRepository mutates the per-student counter row. The voucher balance
// only ever moves through the conditional debit or the credit below, always
// inside the same transaction as the voucher or order write it pairs with.
type AccountRepository struct{}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

// DebitBalance re-checks the balance inside the UPDATE; zero rows means the
// balance does not cover the amount (or the student row is gone).
func (r *AccountRepository) DebitBalance(ctx context.Context, tx db.DBTX, studentID uuid.UUID, amount int) error {
	const query = `
		UPDATE students SET voucher_balance = voucher_balance - $2
		WHERE user_id = $1 AND voucher_balance >= $2`

	tag, err := tx.Exec(ctx, query, studentID, amount)
	if err != nil {
		return wrapPgErr("failed to debit voucher balance", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("insufficient voucher balance", nil, infra.KindConflict)
	}
	return nil
}

func (r *AccountRepository) CreditBalance(ctx context.Context, tx db.DBTX, studentID uuid.UUID, amount int) error {
	const query = `
		UPDATE students SET voucher_balance = voucher_balance + $2
		WHERE user_id = $1`

	tag, err := tx.Exec(ctx, query, studentID, amount)
	if err != nil {
		return wrapPgErr("failed to credit voucher balance", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("student not found", nil, infra.KindNotFound)
	}
	return nil
}

// AddWeeklyPoints moves the accumulator by a signed delta, flooring at zero.
func (r *AccountRepository) AddWeeklyPoints(ctx context.Context, tx db.DBTX, studentID uuid.UUID, delta int) error {
	const query = `
		UPDATE students SET weekly_points = GREATEST(weekly_points + $2, 0)
		WHERE user_id = $1`

	tag, err := tx.Exec(ctx, query, studentID, delta)
	if err != nil {
		return wrapPgErr("failed to update weekly points", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("student not found", nil, infra.KindNotFound)
	}
	return nil
}
