package uow

import (
	"context"
	"errors"
	"time"

	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"
	"school-rewards/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// commandReads serves the narrow snapshots commands validate against. Inside
// a Within closure dbtx is the transaction, so reads see uncommitted writes
// of the same unit of work.
type commandReads struct {
	dbtx db.DBTX
}

func (r *commandReads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	const query = `
		SELECT id, name, description, price, stock, purchases, active
		FROM products WHERE id = $1`

	var s shared.ProductSnapshot
	err := r.dbtx.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Stock, &s.Purchases, &s.Active)
	if err != nil {
		return nil, wrapReadErr("product", err)
	}
	return &s, nil
}

func (r *commandReads) AccountByStudent(ctx context.Context, studentID uuid.UUID) (*shared.AccountSnapshot, error) {
	const query = `
		SELECT user_id, voucher_balance, weekly_points, certificates
		FROM students WHERE user_id = $1`

	var s shared.AccountSnapshot
	err := r.dbtx.QueryRow(ctx, query, studentID).Scan(&s.StudentID, &s.Balance, &s.WeeklyPoints, &s.Certificates)
	if err != nil {
		return nil, wrapReadErr("student account", err)
	}
	return &s, nil
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	const query = `SELECT id, name, role, is_active FROM users WHERE id = $1`

	var s shared.UserSnapshot
	err := r.dbtx.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Role, &s.IsActive)
	if err != nil {
		return nil, wrapReadErr("user", err)
	}
	return &s, nil
}

func (r *commandReads) IsAssignedTeacher(ctx context.Context, teacherID, studentID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM teacher_students
			WHERE teacher_id = $1 AND student_id = $2
		)`

	var assigned bool
	if err := r.dbtx.QueryRow(ctx, query, teacherID, studentID).Scan(&assigned); err != nil {
		return false, infra.WrapRepoErr("failed to check teacher assignment", err)
	}
	return assigned, nil
}

func (r *commandReads) OrderByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	const query = `SELECT id, student_id, total_cost, status FROM orders WHERE id = $1`

	var s shared.OrderSnapshot
	err := r.dbtx.QueryRow(ctx, query, id).Scan(&s.ID, &s.StudentID, &s.TotalCost, &s.Status)
	if err != nil {
		return nil, wrapReadErr("order", err)
	}
	return &s, nil
}

const voucherSnapshotSelect = `
	SELECT id, student_id, issued_by, order_id, period_id, week_start, status, approved_by, approved_at
	FROM vouchers`

func (r *commandReads) VoucherByID(ctx context.Context, id uuid.UUID) (*shared.VoucherSnapshot, error) {
	row := r.dbtx.QueryRow(ctx, voucherSnapshotSelect+` WHERE id = $1`, id)
	return scanVoucherSnapshot(row)
}

func (r *commandReads) VoucherByStudentWeek(ctx context.Context, studentID uuid.UUID, weekStart time.Time) (*shared.VoucherSnapshot, error) {
	row := r.dbtx.QueryRow(ctx, voucherSnapshotSelect+` WHERE student_id = $1 AND week_start = $2`, studentID, weekStart)
	return scanVoucherSnapshot(row)
}

func scanVoucherSnapshot(row pgx.Row) (*shared.VoucherSnapshot, error) {
	var s shared.VoucherSnapshot
	err := row.Scan(&s.ID, &s.StudentID, &s.IssuedBy, &s.OrderID, &s.PeriodID, &s.WeekStart, &s.Status, &s.ApprovedBy, &s.ApprovedAt)
	if err != nil {
		return nil, wrapReadErr("voucher", err)
	}
	return &s, nil
}

func (r *commandReads) WeeklyLogByID(ctx context.Context, id uuid.UUID) (*shared.WeeklyLogSnapshot, error) {
	const query = `
		SELECT id, student_id, points, week_start, approved_by
		FROM weekly_points_logs WHERE id = $1`

	var s shared.WeeklyLogSnapshot
	err := r.dbtx.QueryRow(ctx, query, id).Scan(&s.ID, &s.StudentID, &s.Points, &s.WeekStart, &s.ApprovedBy)
	if err != nil {
		return nil, wrapReadErr("weekly points log", err)
	}
	return &s, nil
}

const periodSnapshotSelect = `
	SELECT id, name, start_date, end_date, max_vouchers, required_for_certificate, is_active
	FROM certificate_periods`

func (r *commandReads) PeriodByID(ctx context.Context, id uuid.UUID) (*shared.PeriodSnapshot, error) {
	row := r.dbtx.QueryRow(ctx, periodSnapshotSelect+` WHERE id = $1`, id)
	return scanPeriodSnapshot(row)
}

func (r *commandReads) PeriodForDate(ctx context.Context, at time.Time) (*shared.PeriodSnapshot, error) {
	// periods never overlap, so at most one row can match
	row := r.dbtx.QueryRow(ctx, periodSnapshotSelect+` WHERE start_date <= $1 AND end_date >= $1`, at)
	return scanPeriodSnapshot(row)
}

func (r *commandReads) ActivePeriod(ctx context.Context) (*shared.PeriodSnapshot, error) {
	row := r.dbtx.QueryRow(ctx, periodSnapshotSelect+` WHERE is_active LIMIT 1`)
	return scanPeriodSnapshot(row)
}

func scanPeriodSnapshot(row pgx.Row) (*shared.PeriodSnapshot, error) {
	var s shared.PeriodSnapshot
	err := row.Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.MaxVouchers, &s.RequiredForCertificate, &s.Active)
	if err != nil {
		return nil, wrapReadErr("certificate period", err)
	}
	return &s, nil
}

func (r *commandReads) HasOverlappingPeriod(ctx context.Context, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM certificate_periods
			WHERE start_date <= $2 AND end_date >= $1 AND id <> $3
		)`

	var overlaps bool
	if err := r.dbtx.QueryRow(ctx, query, start, end, excludeID).Scan(&overlaps); err != nil {
		return false, infra.WrapRepoErr("failed to check period overlap", err)
	}
	return overlaps, nil
}

func wrapReadErr(entity string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.WrapRepoErr(entity+" not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to read "+entity, err)
}
