package shared

import (
	"context"
	"time"

	"school-rewards/internal/domain/order"
	"school-rewards/internal/domain/period"
	"school-rewards/internal/domain/voucher"
	"school-rewards/internal/domain/weeklylog"
	"school-rewards/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork is the all-or-nothing boundary for every write-side operation.
// The settlement engine, the voucher ledger, and the weekly-points reconciler
// each run their multi-entity sequences inside one Within call; a returned
// error rolls back everything already applied.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: direct snapshot access for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Vouchers() VoucherRepository
	WeeklyLogs() WeeklyLogRepository
	Products() ProductRepository
	Accounts() AccountRepository
	Periods() PeriodRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads serves write-side snapshots. Inside a Within closure the reads
// observe the transaction's own snapshot, which is what keeps the settlement
// checks and writes consistent.
type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	AccountByStudent(ctx context.Context, studentID uuid.UUID) (*AccountSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	IsAssignedTeacher(ctx context.Context, teacherID, studentID uuid.UUID) (bool, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	VoucherByID(ctx context.Context, id uuid.UUID) (*VoucherSnapshot, error)
	VoucherByStudentWeek(ctx context.Context, studentID uuid.UUID, weekStart time.Time) (*VoucherSnapshot, error)
	WeeklyLogByID(ctx context.Context, id uuid.UUID) (*WeeklyLogSnapshot, error)
	PeriodByID(ctx context.Context, id uuid.UUID) (*PeriodSnapshot, error)
	PeriodForDate(ctx context.Context, at time.Time) (*PeriodSnapshot, error)
	ActivePeriod(ctx context.Context) (*PeriodSnapshot, error)
	HasOverlappingPeriod(ctx context.Context, start, end time.Time, excludeID uuid.UUID) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, orderID uuid.UUID, status order.Status) error
}

type VoucherRepository interface {
	Create(ctx context.Context, tx db.DBTX, v *voucher.Voucher) (uuid.UUID, error)
	// Resolve persists an approve/reject transition; the UPDATE is conditioned
	// on the row still being pending so a decision can never double-apply.
	Resolve(ctx context.Context, tx db.DBTX, voucherID, approverID uuid.UUID, status voucher.Status, at time.Time) error
	// MarkRedeemed sets the order reference; conditioned on the voucher being
	// approved and not yet redeemed.
	MarkRedeemed(ctx context.Context, tx db.DBTX, voucherID, orderID uuid.UUID) error
	// Delete is conditioned on the voucher being unredeemed.
	Delete(ctx context.Context, tx db.DBTX, voucherID uuid.UUID) error
}

type WeeklyLogRepository interface {
	Create(ctx context.Context, tx db.DBTX, l *weeklylog.Log) (uuid.UUID, error)
	UpdatePoints(ctx context.Context, tx db.DBTX, logID uuid.UUID, points int) error
	Delete(ctx context.Context, tx db.DBTX, logID uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, tx db.DBTX, name, description string, price, stock int) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, id uuid.UUID, name, description string, price int, active bool) error
	// DebitStock decrements stock and bumps the purchase counter in one
	// conditional write; it fails when the remaining stock no longer covers
	// the quantity, so two concurrent settlements can never drive stock
	// below zero.
	DebitStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int) error
	AdjustStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, delta int) error
}

type AccountRepository interface {
	// DebitBalance fails with a conflict when the balance does not cover the
	// amount; the check re-runs inside the UPDATE itself.
	DebitBalance(ctx context.Context, tx db.DBTX, studentID uuid.UUID, amount int) error
	CreditBalance(ctx context.Context, tx db.DBTX, studentID uuid.UUID, amount int) error
	AddWeeklyPoints(ctx context.Context, tx db.DBTX, studentID uuid.UUID, delta int) error
}

type PeriodRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *period.Period) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, p *period.Period) error
	Deactivate(ctx context.Context, tx db.DBTX, periodID uuid.UUID) error
}
