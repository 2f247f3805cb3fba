package commands

import (
	"context"
	"time"

	"school-rewards/internal/domain/user"
	"school-rewards/internal/domain/voucher"
	"school-rewards/internal/domain/weeklylog"
	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/clock"
	"school-rewards/internal/pkg/errs"
	"school-rewards/internal/pkg/patch"
	"school-rewards/internal/usecase/queries"
	"school-rewards/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrWeeklyLogNotFound = errs.New("weekly points log not found")
	ErrDuplicateWeek     = errs.New("a log already exists for this student and week")
)

// UpdateLogInput carries a partial update; nil fields are left untouched.
type UpdateLogInput struct {
	Points     *int
	HasVoucher *bool
}

type WeeklyLogCommands interface {
	// CreateLog records a student's points for one calendar week. The given
	// date is normalized to its week key, so any day of the week addresses
	// the same log. With hasVoucher set, a self-approved voucher tagged with
	// the week is granted in the same transaction.
	CreateLog(ctx context.Context, studentID uuid.UUID, points int, weekDate time.Time, hasVoucher bool, actorID uuid.UUID, actorRole user.Role) (*queries.WeeklyLogView, error)
	UpdateLog(ctx context.Context, logID uuid.UUID, input UpdateLogInput, actorID uuid.UUID, actorRole user.Role) (*queries.WeeklyLogView, error)
	DeleteLog(ctx context.Context, logID uuid.UUID, actorRole user.Role) error
}

type weeklyLogUseCaseImpl struct {
	uow        shared.UnitOfWork
	logQueries queries.WeeklyLogQueries
	clk        clock.Clock
}

func NewWeeklyLogCommands(uow shared.UnitOfWork, logQueries queries.WeeklyLogQueries, clk clock.Clock) WeeklyLogCommands {
	return &weeklyLogUseCaseImpl{
		uow:        uow,
		logQueries: logQueries,
		clk:        clk,
	}
}

func (uc *weeklyLogUseCaseImpl) CreateLog(ctx context.Context, studentID uuid.UUID, points int, weekDate time.Time, hasVoucher bool, actorID uuid.UUID, actorRole user.Role) (*queries.WeeklyLogView, error) {
	if !actorRole.CanIssueVouchers() {
		return nil, ErrForbidden
	}

	l, err := weeklylog.NewLog(studentID, points, weekDate, actorID)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var logID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
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

		id, terr := tx.WeeklyLogs().Create(ctx, tx.DB(), l)
		if terr != nil {
			if infra.IsKind(terr, infra.KindDuplicateKey) {
				return errs.Wrapf(ErrDuplicateWeek, "week %s", l.WeekStart().Format("2006-01-02"))
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		logID = id

		if l.Points() != 0 {
			if terr = tx.Accounts().AddWeeklyPoints(ctx, tx.DB(), studentID, l.Points()); terr != nil {
				return errs.Mark(terr, ErrDatabaseOperationFailed)
			}
		}

		if hasVoucher {
			return uc.grantWeekVoucher(ctx, tx, studentID, actorID, l.WeekStart())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.logQueries.GetByID(ctx, logID)
}

func (uc *weeklyLogUseCaseImpl) UpdateLog(ctx context.Context, logID uuid.UUID, input UpdateLogInput, actorID uuid.UUID, actorRole user.Role) (*queries.WeeklyLogView, error) {
	if !actorRole.CanIssueVouchers() {
		return nil, ErrForbidden
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, terr := tx.Reads().WeeklyLogByID(ctx, logID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrWeeklyLogNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}

		points := patch.Coalesce(input.Points, snap.Points)
		if points != snap.Points {
			if points < 0 {
				return errs.Mark(weeklylog.ErrNegativePoints, ErrDomainValidation)
			}
			if terr = tx.WeeklyLogs().UpdatePoints(ctx, tx.DB(), logID, points); terr != nil {
				return errs.Mark(terr, ErrDatabaseOperationFailed)
			}
			// The accumulator moves by the delta so the running total stays
			// the sum of the logs.
			if terr = tx.Accounts().AddWeeklyPoints(ctx, tx.DB(), snap.StudentID, points-snap.Points); terr != nil {
				return errs.Mark(terr, ErrDatabaseOperationFailed)
			}
		}

		if input.HasVoucher != nil {
			existing, terr := uc.weekVoucher(ctx, tx, snap.StudentID, snap.WeekStart)
			if terr != nil {
				return terr
			}
			switch {
			case *input.HasVoucher && existing == nil:
				return uc.grantWeekVoucher(ctx, tx, snap.StudentID, actorID, snap.WeekStart)
			case !*input.HasVoucher && existing != nil:
				return uc.revokeWeekVoucher(ctx, tx, existing)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.logQueries.GetByID(ctx, logID)
}

func (uc *weeklyLogUseCaseImpl) DeleteLog(ctx context.Context, logID uuid.UUID, actorRole user.Role) error {
	if !actorRole.CanIssueVouchers() {
		return ErrForbidden
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, terr := tx.Reads().WeeklyLogByID(ctx, logID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrWeeklyLogNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}

		if snap.Points != 0 {
			if terr = tx.Accounts().AddWeeklyPoints(ctx, tx.DB(), snap.StudentID, -snap.Points); terr != nil {
				return errs.Mark(terr, ErrDatabaseOperationFailed)
			}
		}

		existing, terr := uc.weekVoucher(ctx, tx, snap.StudentID, snap.WeekStart)
		if terr != nil {
			return terr
		}
		if existing != nil {
			if terr = uc.revokeWeekVoucher(ctx, tx, existing); terr != nil {
				return terr
			}
		}

		return tx.WeeklyLogs().Delete(ctx, tx.DB(), logID)
	})
}

func (uc *weeklyLogUseCaseImpl) weekVoucher(ctx context.Context, tx shared.Tx, studentID uuid.UUID, weekStart time.Time) (*shared.VoucherSnapshot, error) {
	snap, err := tx.Reads().VoucherByStudentWeek(ctx, studentID, weekStart)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return snap, nil
}

// grantWeekVoucher issues the self-approved weekly voucher and credits the
// balance. The voucher is tagged with the active certificate period when one
// covers the week; a week outside any period still earns the voucher.
func (uc *weeklyLogUseCaseImpl) grantWeekVoucher(ctx context.Context, tx shared.Tx, studentID, actorID uuid.UUID, weekStart time.Time) error {
	var periodID *uuid.UUID
	p, err := tx.Reads().PeriodForDate(ctx, weekStart)
	switch {
	case err == nil:
		periodID = &p.ID
	case infra.IsKind(err, infra.KindNotFound):
		// no covering period, voucher stays untagged
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	week := weekStart
	v := voucher.NewApproved(studentID, actorID, periodID, &week, uc.clk.Now())
	if _, err = tx.Vouchers().Create(ctx, tx.DB(), v); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return ErrAlreadyInState
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return errsMarkNil(tx.Accounts().CreditBalance(ctx, tx.DB(), studentID, 1))
}

// revokeWeekVoucher is the inverse of grantWeekVoucher. A redeemed voucher is
// pinned by its order and can never be revoked.
func (uc *weeklyLogUseCaseImpl) revokeWeekVoucher(ctx context.Context, tx shared.Tx, snap *shared.VoucherSnapshot) error {
	v, err := voucherFromSnapshot(snap)
	if err != nil {
		return err
	}
	if err = v.CanDelete(); err != nil {
		return ErrVoucherRedeemed
	}
	if v.IsApproved() {
		if err = tx.Accounts().DebitBalance(ctx, tx.DB(), snap.StudentID, 1); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInsufficientVouchers
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	if err = tx.Vouchers().Delete(ctx, tx.DB(), snap.ID); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrVoucherRedeemed
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func errsMarkNil(err error) error {
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
