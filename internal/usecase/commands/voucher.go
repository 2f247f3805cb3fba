package commands

import (
	"context"
	"errors"

	"school-rewards/internal/domain/user"
	"school-rewards/internal/domain/voucher"
	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/clock"
	"school-rewards/internal/pkg/errs"
	"school-rewards/internal/usecase/queries"
	"school-rewards/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrVoucherNotFound    = errs.New("voucher not found")
	ErrNoActivePeriod     = errs.New("no active certificate period")
	ErrAlreadyInState     = errs.New("voucher has already been resolved")
	ErrAlreadyRedeemed    = errs.New("voucher has already been redeemed")
	ErrVoucherNotApproved = errs.New("only approved vouchers can be redeemed")
	ErrVoucherRedeemed    = errs.New("redeemed vouchers are immutable")
)

type VoucherCommands interface {
	// Issue creates a voucher for the student. When the issuer is the
	// student's assigned teacher the voucher is approved on the spot and the
	// balance is credited; any other teacher or an admin leaves it pending.
	Issue(ctx context.Context, studentID, issuerID uuid.UUID, issuerRole user.Role) (*queries.VoucherView, error)
	Approve(ctx context.Context, voucherID, approverID uuid.UUID, approverRole user.Role) (*queries.VoucherView, error)
	Reject(ctx context.Context, voucherID, approverID uuid.UUID, approverRole user.Role) (*queries.VoucherView, error)
	// Redeem ties an approved voucher to an order. Redemption is terminal.
	Redeem(ctx context.Context, voucherID, orderID uuid.UUID) (*queries.VoucherView, error)
	Delete(ctx context.Context, voucherID uuid.UUID, actorRole user.Role) error
}

type voucherUseCaseImpl struct {
	uow            shared.UnitOfWork
	voucherQueries queries.VoucherQueries
	clk            clock.Clock
}

func NewVoucherCommands(uow shared.UnitOfWork, voucherQueries queries.VoucherQueries, clk clock.Clock) VoucherCommands {
	return &voucherUseCaseImpl{
		uow:            uow,
		voucherQueries: voucherQueries,
		clk:            clk,
	}
}

func (uc *voucherUseCaseImpl) Issue(ctx context.Context, studentID, issuerID uuid.UUID, issuerRole user.Role) (*queries.VoucherView, error) {
	if !issuerRole.CanIssueVouchers() {
		return nil, ErrForbidden
	}

	var voucherID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		student, terr := tx.Reads().UserByID(ctx, studentID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrStudentNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		if student.Role != user.RoleStudent.String() {
			return ErrNotAStudent
		}
		if !student.IsActive {
			return ErrStudentInactive
		}

		// Every voucher counts toward certificate eligibility, so issuing
		// outside an active period is refused rather than silently untagged.
		active, terr := tx.Reads().ActivePeriod(ctx)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrNoActivePeriod
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		periodID := active.ID

		assigned := false
		if issuerRole == user.RoleTeacher {
			assigned, terr = tx.Reads().IsAssignedTeacher(ctx, issuerID, studentID)
			if terr != nil {
				return errs.Mark(terr, ErrDatabaseOperationFailed)
			}
		}

		var v *voucher.Voucher
		if assigned {
			v = voucher.NewApproved(studentID, issuerID, &periodID, nil, uc.clk.Now())
		} else {
			v = voucher.NewPending(studentID, issuerID, &periodID)
		}

		id, terr := tx.Vouchers().Create(ctx, tx.DB(), v)
		if terr != nil {
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		voucherID = id

		if v.IsApproved() {
			if terr = tx.Accounts().CreditBalance(ctx, tx.DB(), studentID, 1); terr != nil {
				return errs.Mark(terr, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.voucherQueries.GetByID(ctx, voucherID)
}

func (uc *voucherUseCaseImpl) Approve(ctx context.Context, voucherID, approverID uuid.UUID, approverRole user.Role) (*queries.VoucherView, error) {
	return uc.resolve(ctx, voucherID, approverID, approverRole, voucher.StatusApproved)
}

func (uc *voucherUseCaseImpl) Reject(ctx context.Context, voucherID, approverID uuid.UUID, approverRole user.Role) (*queries.VoucherView, error) {
	return uc.resolve(ctx, voucherID, approverID, approverRole, voucher.StatusRejected)
}

// resolve applies an approve or reject decision. The status flip and the
// balance credit travel in one transaction, and the UPDATE behind Resolve is
// conditioned on the row still being pending so the credit cannot double-apply
// even under concurrent approvers.
func (uc *voucherUseCaseImpl) resolve(ctx context.Context, voucherID, approverID uuid.UUID, approverRole user.Role, target voucher.Status) (*queries.VoucherView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, terr := tx.Reads().VoucherByID(ctx, voucherID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrVoucherNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}

		v, terr := voucherFromSnapshot(snap)
		if terr != nil {
			return terr
		}
		if target == voucher.StatusApproved {
			terr = v.Approve(approverID, uc.clk.Now())
		} else {
			terr = v.Reject(approverID, uc.clk.Now())
		}
		if terr != nil {
			return errs.Mark(terr, ErrAlreadyInState)
		}

		assigned, terr := tx.Reads().IsAssignedTeacher(ctx, approverID, snap.StudentID)
		if terr != nil {
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		if !approverRole.CanApproveFor(assigned) {
			return ErrForbidden
		}

		if terr = tx.Vouchers().Resolve(ctx, tx.DB(), voucherID, approverID, target, uc.clk.Now()); terr != nil {
			if infra.IsKind(terr, infra.KindConflict) {
				// A concurrent decision landed first.
				return ErrAlreadyInState
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}

		if target == voucher.StatusApproved {
			if terr = tx.Accounts().CreditBalance(ctx, tx.DB(), snap.StudentID, 1); terr != nil {
				return errs.Mark(terr, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.voucherQueries.GetByID(ctx, voucherID)
}

func (uc *voucherUseCaseImpl) Redeem(ctx context.Context, voucherID, orderID uuid.UUID) (*queries.VoucherView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, terr := tx.Reads().VoucherByID(ctx, voucherID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrVoucherNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		v, terr := voucherFromSnapshot(snap)
		if terr != nil {
			return terr
		}
		if terr = v.Redeem(orderID); terr != nil {
			if errors.Is(terr, voucher.ErrAlreadyRedeemed) {
				return ErrAlreadyRedeemed
			}
			return ErrVoucherNotApproved
		}

		if _, terr = tx.Reads().OrderByID(ctx, orderID); terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}

		if terr = tx.Vouchers().MarkRedeemed(ctx, tx.DB(), voucherID, orderID); terr != nil {
			if infra.IsKind(terr, infra.KindConflict) {
				return ErrAlreadyRedeemed
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.voucherQueries.GetByID(ctx, voucherID)
}

func (uc *voucherUseCaseImpl) Delete(ctx context.Context, voucherID uuid.UUID, actorRole user.Role) error {
	if !actorRole.CanIssueVouchers() {
		return ErrForbidden
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, terr := tx.Reads().VoucherByID(ctx, voucherID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrVoucherNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		v, terr := voucherFromSnapshot(snap)
		if terr != nil {
			return terr
		}
		if terr = v.CanDelete(); terr != nil {
			return ErrVoucherRedeemed
		}

		// An approved voucher credited the balance; take the credit back with
		// the deletion so the ledger stays consistent.
		if v.IsApproved() {
			if terr = tx.Accounts().DebitBalance(ctx, tx.DB(), snap.StudentID, 1); terr != nil {
				if infra.IsKind(terr, infra.KindConflict) {
					return ErrInsufficientVouchers
				}
				return errs.Mark(terr, ErrDatabaseOperationFailed)
			}
		}

		if terr = tx.Vouchers().Delete(ctx, tx.DB(), voucherID); terr != nil {
			if infra.IsKind(terr, infra.KindConflict) {
				// A concurrent redemption landed between the read and the
				// delete; the row is now immutable.
				return ErrVoucherRedeemed
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// voucherFromSnapshot rehydrates the entity so state transitions go through
// the domain rules rather than ad-hoc field checks on the snapshot.
func voucherFromSnapshot(snap *shared.VoucherSnapshot) (*voucher.Voucher, error) {
	status, err := voucher.NewStatus(snap.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return voucher.ReconstructVoucher(
		snap.ID,
		snap.StudentID,
		snap.IssuedBy,
		snap.OrderID,
		snap.PeriodID,
		snap.WeekStart,
		status,
		snap.ApprovedBy,
		snap.ApprovedAt,
	), nil
}
