package repository

import (
	"context"

	"school-rewards/internal/domain/period"
	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"

	"github.com/google/uuid"
)

type PeriodRepository struct{}

func NewPeriodRepository() *PeriodRepository {
	return &PeriodRepository{}
}

func (r *PeriodRepository) Create(ctx context.Context, tx db.DBTX, p *period.Period) (uuid.UUID, error) {
	const query = `
		INSERT INTO certificate_periods (id, name, start_date, end_date, max_vouchers, required_for_certificate, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		p.ID(), p.Name(), p.StartDate(), p.EndDate(),
		p.MaxVouchers(), p.RequiredForCertificate(), p.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create certificate period", err)
	}
	return id, nil
}

func (r *PeriodRepository) Update(ctx context.Context, tx db.DBTX, p *period.Period) error {
	const query = `
		UPDATE certificate_periods
		SET name = $2, start_date = $3, end_date = $4, max_vouchers = $5, required_for_certificate = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		p.ID(), p.Name(), p.StartDate(), p.EndDate(),
		p.MaxVouchers(), p.RequiredForCertificate(), p.IsActive(),
	)
	if err != nil {
		return wrapPgErr("failed to update certificate period", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("certificate period not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PeriodRepository) Deactivate(ctx context.Context, tx db.DBTX, periodID uuid.UUID) error {
	const query = `
		UPDATE certificate_periods SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, periodID)
	if err != nil {
		return wrapPgErr("failed to deactivate certificate period", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("certificate period not found", nil, infra.KindNotFound)
	}
	return nil
}
