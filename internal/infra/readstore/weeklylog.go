package readstore

import (
	"context"
	"time"

	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"
	"school-rewards/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// has_voucher is derived from the voucher ledger, never stored on the log
// row, so the two can never disagree.
const weeklyLogSelect = `
	SELECT l.id, l.student_id, l.points, l.week_start, l.approved_by,
	       EXISTS (
	           SELECT 1 FROM vouchers v
	           WHERE v.student_id = l.student_id AND v.week_start = l.week_start
	       ) AS has_voucher,
	       l.created_at
	FROM weekly_points_logs l`

type WeeklyLogReadStore struct {
	db db.DBTX
}

func NewWeeklyLogReadStore(dbtx db.DBTX) *WeeklyLogReadStore {
	return &WeeklyLogReadStore{db: dbtx}
}

func (r *WeeklyLogReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.WeeklyLogView, error) {
	row := r.db.QueryRow(ctx, weeklyLogSelect+` WHERE l.id = $1`, id)
	return r.one(row, "failed to find weekly points log by ID")
}

func (r *WeeklyLogReadStore) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*queries.WeeklyLogView, error) {
	return r.list(ctx, weeklyLogSelect+` WHERE l.student_id = $1 ORDER BY l.week_start DESC`, studentID)
}

func (r *WeeklyLogReadStore) FindByApprover(ctx context.Context, approverID uuid.UUID) ([]*queries.WeeklyLogView, error) {
	return r.list(ctx, weeklyLogSelect+` WHERE l.approved_by = $1 ORDER BY l.week_start DESC`, approverID)
}

func (r *WeeklyLogReadStore) FindByStudentWeek(ctx context.Context, studentID uuid.UUID, weekStart time.Time) (*queries.WeeklyLogView, error) {
	row := r.db.QueryRow(ctx, weeklyLogSelect+` WHERE l.student_id = $1 AND l.week_start = $2`, studentID, weekStart)
	return r.one(row, "failed to find weekly points log by week")
}

func (r *WeeklyLogReadStore) one(row pgx.Row, msg string) (*queries.WeeklyLogView, error) {
	view, err := scanWeeklyLogView(row)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("weekly points log not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}
	return view, nil
}

func (r *WeeklyLogReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.WeeklyLogView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list weekly points logs", err)
	}
	defer rows.Close()

	var views []*queries.WeeklyLogView
	for rows.Next() {
		view, err := scanWeeklyLogView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan weekly points log row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list weekly points logs", err)
	}
	return views, nil
}

func scanWeeklyLogView(row pgx.Row) (*queries.WeeklyLogView, error) {
	var v queries.WeeklyLogView
	err := row.Scan(&v.ID, &v.StudentID, &v.Points, &v.WeekStart, &v.ApprovedBy, &v.HasVoucher, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
