package commands

import (
	"context"
	"time"

	"school-rewards/internal/domain/period"
	"school-rewards/internal/domain/user"
	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/errs"
	"school-rewards/internal/pkg/patch"
	"school-rewards/internal/usecase/queries"
	"school-rewards/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPeriodNotFound     = errs.New("certificate period not found")
	ErrPeriodOverlap      = errs.New("period overlaps an existing period")
	ErrActivePeriodExists = errs.New("another period is already active")
)

type CreatePeriodInput struct {
	Name                   string
	StartDate              time.Time
	EndDate                time.Time
	MaxVouchers            *int
	RequiredForCertificate *int
	Active                 bool
}

type UpdatePeriodInput struct {
	Name                   *string
	StartDate              *time.Time
	EndDate                *time.Time
	MaxVouchers            *int
	RequiredForCertificate *int
	Active                 *bool
}

type PeriodCommands interface {
	Create(ctx context.Context, input CreatePeriodInput, actorRole user.Role) (*queries.PeriodView, error)
	Update(ctx context.Context, periodID uuid.UUID, input UpdatePeriodInput, actorRole user.Role) (*queries.PeriodView, error)
	// Deactivate soft-deletes: vouchers tagged with the period keep their tag.
	Deactivate(ctx context.Context, periodID uuid.UUID, actorRole user.Role) error
}

type periodUseCaseImpl struct {
	uow           shared.UnitOfWork
	periodQueries queries.PeriodQueries
}

func NewPeriodCommands(uow shared.UnitOfWork, periodQueries queries.PeriodQueries) PeriodCommands {
	return &periodUseCaseImpl{
		uow:           uow,
		periodQueries: periodQueries,
	}
}

func (uc *periodUseCaseImpl) Create(ctx context.Context, input CreatePeriodInput, actorRole user.Role) (*queries.PeriodView, error) {
	if !actorRole.CanManageCatalog() {
		return nil, ErrForbidden
	}

	p, err := period.NewPeriod(
		input.Name,
		input.StartDate,
		input.EndDate,
		patch.Coalesce(input.MaxVouchers, period.DefaultMaxVouchers),
		patch.Coalesce(input.RequiredForCertificate, period.DefaultRequiredForCertificate),
		input.Active,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var periodID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if terr := uc.checkConstraints(ctx, tx, p, uuid.Nil); terr != nil {
			return terr
		}

		id, terr := tx.Periods().Create(ctx, tx.DB(), p)
		if terr != nil {
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		periodID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.periodQueries.GetByID(ctx, periodID)
}

func (uc *periodUseCaseImpl) Update(ctx context.Context, periodID uuid.UUID, input UpdatePeriodInput, actorRole user.Role) (*queries.PeriodView, error) {
	if !actorRole.CanManageCatalog() {
		return nil, ErrForbidden
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, terr := tx.Reads().PeriodByID(ctx, periodID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrPeriodNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}

		merged, terr := period.NewPeriod(
			patch.Coalesce(input.Name, snap.Name),
			patch.Coalesce(input.StartDate, snap.StartDate),
			patch.Coalesce(input.EndDate, snap.EndDate),
			patch.Coalesce(input.MaxVouchers, snap.MaxVouchers),
			patch.Coalesce(input.RequiredForCertificate, snap.RequiredForCertificate),
			patch.Coalesce(input.Active, snap.Active),
		)
		if terr != nil {
			return errs.Mark(terr, ErrDomainValidation)
		}
		merged = period.ReconstructPeriod(
			snap.ID, merged.Name(), merged.StartDate(), merged.EndDate(),
			merged.MaxVouchers(), merged.RequiredForCertificate(), merged.IsActive(),
			time.Time{}, time.Time{},
		)

		if terr = uc.checkConstraints(ctx, tx, merged, periodID); terr != nil {
			return terr
		}

		return tx.Periods().Update(ctx, tx.DB(), merged)
	})
	if err != nil {
		return nil, err
	}

	return uc.periodQueries.GetByID(ctx, periodID)
}

func (uc *periodUseCaseImpl) Deactivate(ctx context.Context, periodID uuid.UUID, actorRole user.Role) error {
	if !actorRole.CanManageCatalog() {
		return ErrForbidden
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, terr := tx.Reads().PeriodByID(ctx, periodID); terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrPeriodNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		return tx.Periods().Deactivate(ctx, tx.DB(), periodID)
	})
}

// checkConstraints holds the two calendar invariants: periods never overlap,
// and at most one is active at a time. excludeID skips the period being
// updated in both checks.
func (uc *periodUseCaseImpl) checkConstraints(ctx context.Context, tx shared.Tx, p *period.Period, excludeID uuid.UUID) error {
	overlaps, err := tx.Reads().HasOverlappingPeriod(ctx, p.StartDate(), p.EndDate(), excludeID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if overlaps {
		return ErrPeriodOverlap
	}

	if p.IsActive() {
		active, err := tx.Reads().ActivePeriod(ctx)
		switch {
		case err == nil:
			if active.ID != excludeID {
				return ErrActivePeriodExists
			}
		case infra.IsKind(err, infra.KindNotFound):
		default:
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}
