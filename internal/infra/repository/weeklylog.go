package repository

import (
	"context"

	"school-rewards/internal/domain/weeklylog"
	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"

	"github.com/google/uuid"
)

type WeeklyLogRepository struct{}

func NewWeeklyLogRepository() *WeeklyLogRepository {
	return &WeeklyLogRepository{}
}

func (r *WeeklyLogRepository) Create(ctx context.Context, tx db.DBTX, l *weeklylog.Log) (uuid.UUID, error) {
	const query = `
		INSERT INTO weekly_points_logs (id, student_id, points, week_start, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query, l.ID(), l.StudentID(), l.Points(), l.WeekStart(), l.ApprovedBy()).Scan(&id)
	if err != nil {
		// unique (student_id, week_start) surfaces here as DUPLICATE_KEY
		return uuid.Nil, wrapPgErr("failed to create weekly points log", err)
	}
	return id, nil
}

func (r *WeeklyLogRepository) UpdatePoints(ctx context.Context, tx db.DBTX, logID uuid.UUID, points int) error {
	const query = `
		UPDATE weekly_points_logs SET points = $2, updated_at = NOW()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, logID, points)
	if err != nil {
		return wrapPgErr("failed to update weekly points log", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("weekly points log not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *WeeklyLogRepository) Delete(ctx context.Context, tx db.DBTX, logID uuid.UUID) error {
	const query = `DELETE FROM weekly_points_logs WHERE id = $1`

	tag, err := tx.Exec(ctx, query, logID)
	if err != nil {
		return wrapPgErr("failed to delete weekly points log", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("weekly points log not found", nil, infra.KindNotFound)
	}
	return nil
}
