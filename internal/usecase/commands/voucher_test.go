//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"school-rewards/internal/domain/user"
	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/clock"
	"school-rewards/internal/usecase/commands"
	"school-rewards/internal/usecase/shared"
	"school-rewards/tests/common/fakeuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type voucherFixture struct {
	store     *fakeuow.Store
	cmds      commands.VoucherCommands
	clk       *clock.MockClock
	studentID uuid.UUID
	teacherID uuid.UUID
	adminID   uuid.UUID
	periodID  uuid.UUID
}

// newVoucherFixture seeds a student with an empty balance, their assigned
// teacher, an admin and one active certificate period.
func newVoucherFixture(t *testing.T) *voucherFixture {
	t.Helper()

	f := &voucherFixture{
		store:     fakeuow.NewStore(),
		clk:       clock.NewMockClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		studentID: uuid.New(),
		teacherID: uuid.New(),
		adminID:   uuid.New(),
		periodID:  uuid.New(),
	}
	f.store.SeedStudent(f.studentID, "Alice", 0)
	f.store.SeedUser(f.teacherID, "Ms. Smith", "teacher", true)
	f.store.SeedUser(f.adminID, "Principal", "admin", true)
	f.store.Assign(f.teacherID, f.studentID)
	f.store.SeedPeriod(shared.PeriodSnapshot{
		ID:                     f.periodID,
		Name:                   "Spring Term",
		StartDate:              time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:                time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		MaxVouchers:            6,
		RequiredForCertificate: 5,
		Active:                 true,
	})

	f.cmds = commands.NewVoucherCommands(f.store, &fakeuow.VoucherQueries{Store: f.store}, f.clk)
	return f
}

func TestIssueVoucher(t *testing.T) {
	ctx := context.Background()

	t.Run("assigned teacher issues approved with immediate credit", func(t *testing.T) {
		f := newVoucherFixture(t)

		view, err := f.cmds.Issue(ctx, f.studentID, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		assert.Equal(t, "approved", view.Status)
		require.NotNil(t, view.ApprovedBy)
		assert.Equal(t, f.teacherID, *view.ApprovedBy)
		require.NotNil(t, view.PeriodID)
		assert.Equal(t, f.periodID, *view.PeriodID)
		assert.Equal(t, 1, f.store.Account(f.studentID).Balance)
	})

	t.Run("unassigned teacher issues pending without credit", func(t *testing.T) {
		f := newVoucherFixture(t)
		otherTeacher := uuid.New()
		f.store.SeedUser(otherTeacher, "Mr. Jones", "teacher", true)

		view, err := f.cmds.Issue(ctx, f.studentID, otherTeacher, user.RoleTeacher)
		require.NoError(t, err)

		assert.Equal(t, "pending", view.Status)
		assert.Nil(t, view.ApprovedBy)
		assert.Equal(t, 0, f.store.Account(f.studentID).Balance)
	})

	t.Run("admin issues pending", func(t *testing.T) {
		f := newVoucherFixture(t)

		view, err := f.cmds.Issue(ctx, f.studentID, f.adminID, user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "pending", view.Status)
	})

	t.Run("students cannot issue", func(t *testing.T) {
		f := newVoucherFixture(t)
		_, err := f.cmds.Issue(ctx, f.studentID, f.studentID, user.RoleStudent)
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("requires an active period", func(t *testing.T) {
		f := newVoucherFixture(t)
		require.NoError(t, f.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Periods().Deactivate(ctx, tx.DB(), f.periodID)
		}))

		_, err := f.cmds.Issue(ctx, f.studentID, f.teacherID, user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrNoActivePeriod)
	})

	t.Run("recipient must be an active student", func(t *testing.T) {
		f := newVoucherFixture(t)

		_, err := f.cmds.Issue(ctx, f.teacherID, f.adminID, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrNotAStudent)

		inactive := uuid.New()
		f.store.SeedInactiveStudent(inactive, "Bob")
		_, err = f.cmds.Issue(ctx, inactive, f.adminID, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrStudentInactive)

		_, err = f.cmds.Issue(ctx, uuid.New(), f.adminID, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrStudentNotFound)
	})
}

func TestResolveVoucher(t *testing.T) {
	ctx := context.Background()

	issuePending := func(t *testing.T, f *voucherFixture) uuid.UUID {
		t.Helper()
		view, err := f.cmds.Issue(ctx, f.studentID, f.adminID, user.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, "pending", view.Status)
		return view.ID
	}

	t.Run("approval credits the balance exactly once", func(t *testing.T) {
		f := newVoucherFixture(t)
		id := issuePending(t, f)

		view, err := f.cmds.Approve(ctx, id, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)
		assert.Equal(t, "approved", view.Status)
		assert.Equal(t, 1, f.store.Account(f.studentID).Balance)

		_, err = f.cmds.Approve(ctx, id, f.teacherID, user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrAlreadyInState)
		assert.Equal(t, 1, f.store.Account(f.studentID).Balance)
	})

	t.Run("rejection leaves the balance untouched", func(t *testing.T) {
		f := newVoucherFixture(t)
		id := issuePending(t, f)

		view, err := f.cmds.Reject(ctx, id, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)
		assert.Equal(t, "rejected", view.Status)
		assert.Equal(t, 0, f.store.Account(f.studentID).Balance)
	})

	t.Run("rejected voucher cannot be approved afterwards", func(t *testing.T) {
		f := newVoucherFixture(t)
		id := issuePending(t, f)

		_, err := f.cmds.Reject(ctx, id, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		_, err = f.cmds.Approve(ctx, id, f.teacherID, user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrAlreadyInState)
	})

	t.Run("unassigned teacher cannot resolve", func(t *testing.T) {
		f := newVoucherFixture(t)
		id := issuePending(t, f)
		otherTeacher := uuid.New()
		f.store.SeedUser(otherTeacher, "Mr. Jones", "teacher", true)

		_, err := f.cmds.Approve(ctx, id, otherTeacher, user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("admin resolves for any student", func(t *testing.T) {
		f := newVoucherFixture(t)
		id := issuePending(t, f)

		_, err := f.cmds.Approve(ctx, id, f.adminID, user.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("unknown voucher", func(t *testing.T) {
		f := newVoucherFixture(t)
		_, err := f.cmds.Approve(ctx, uuid.New(), f.adminID, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrVoucherNotFound)
	})
}

func TestRedeemVoucher(t *testing.T) {
	ctx := context.Background()

	approvedVoucher := func(t *testing.T, f *voucherFixture) uuid.UUID {
		t.Helper()
		view, err := f.cmds.Issue(ctx, f.studentID, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)
		return view.ID
	}

	seedOrder := func(f *voucherFixture) uuid.UUID {
		orderID := uuid.New()
		f.store.SeedOrder(shared.OrderSnapshot{ID: orderID, StudentID: f.studentID, TotalCost: 1, Status: "new_order"})
		return orderID
	}

	t.Run("approved voucher redeems against an order", func(t *testing.T) {
		f := newVoucherFixture(t)
		id := approvedVoucher(t, f)
		orderID := seedOrder(f)

		view, err := f.cmds.Redeem(ctx, id, orderID)
		require.NoError(t, err)
		require.NotNil(t, view.OrderID)
		assert.Equal(t, orderID, *view.OrderID)
	})

	t.Run("pending voucher cannot redeem", func(t *testing.T) {
		f := newVoucherFixture(t)
		view, err := f.cmds.Issue(ctx, f.studentID, f.adminID, user.RoleAdmin)
		require.NoError(t, err)
		orderID := seedOrder(f)

		_, err = f.cmds.Redeem(ctx, view.ID, orderID)
		assert.ErrorIs(t, err, commands.ErrVoucherNotApproved)
	})

	t.Run("redeeming twice fails", func(t *testing.T) {
		f := newVoucherFixture(t)
		id := approvedVoucher(t, f)
		orderID := seedOrder(f)

		_, err := f.cmds.Redeem(ctx, id, orderID)
		require.NoError(t, err)

		_, err = f.cmds.Redeem(ctx, id, seedOrder(f))
		assert.ErrorIs(t, err, commands.ErrAlreadyRedeemed)
	})

	t.Run("order must exist", func(t *testing.T) {
		f := newVoucherFixture(t)
		id := approvedVoucher(t, f)

		_, err := f.cmds.Redeem(ctx, id, uuid.New())
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})
}

func TestDeleteVoucher(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting an approved voucher reverses the credit", func(t *testing.T) {
		f := newVoucherFixture(t)
		view, err := f.cmds.Issue(ctx, f.studentID, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)
		require.Equal(t, 1, f.store.Account(f.studentID).Balance)

		require.NoError(t, f.cmds.Delete(ctx, view.ID, user.RoleTeacher))
		assert.Equal(t, 0, f.store.Account(f.studentID).Balance)
		_, exists := f.store.Voucher(view.ID)
		assert.False(t, exists)
	})

	t.Run("deleting a pending voucher leaves the balance", func(t *testing.T) {
		f := newVoucherFixture(t)
		view, err := f.cmds.Issue(ctx, f.studentID, f.adminID, user.RoleAdmin)
		require.NoError(t, err)

		require.NoError(t, f.cmds.Delete(ctx, view.ID, user.RoleAdmin))
		assert.Equal(t, 0, f.store.Account(f.studentID).Balance)
	})

	t.Run("redeemed voucher is immutable", func(t *testing.T) {
		f := newVoucherFixture(t)
		view, err := f.cmds.Issue(ctx, f.studentID, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		orderID := uuid.New()
		f.store.SeedOrder(shared.OrderSnapshot{ID: orderID, StudentID: f.studentID, TotalCost: 1, Status: "new_order"})
		_, err = f.cmds.Redeem(ctx, view.ID, orderID)
		require.NoError(t, err)

		assert.ErrorIs(t, f.cmds.Delete(ctx, view.ID, user.RoleAdmin), commands.ErrVoucherRedeemed)
	})

	t.Run("delete loses the race against a redemption", func(t *testing.T) {
		f := newVoucherFixture(t)
		view, err := f.cmds.Issue(ctx, f.studentID, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		orderID := uuid.New()
		f.store.SeedOrder(shared.OrderSnapshot{ID: orderID, StudentID: f.studentID, TotalCost: 1, Status: "new_order"})

		// A redemption that commits after the delete's read must still keep
		// the row: the guard lives in the DELETE itself, not the prior read.
		require.NoError(t, f.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Vouchers().MarkRedeemed(ctx, tx.DB(), view.ID, orderID)
		}))
		err = f.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Vouchers().Delete(ctx, tx.DB(), view.ID)
		})
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
		snap, exists := f.store.Voucher(view.ID)
		require.True(t, exists, "redeemed voucher survives the delete")
		require.NotNil(t, snap.OrderID)
		assert.Equal(t, orderID, *snap.OrderID)
	})

	t.Run("credit already spent blocks the delete", func(t *testing.T) {
		f := newVoucherFixture(t)
		view, err := f.cmds.Issue(ctx, f.studentID, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		// Drain the balance as if the student spent the voucher's credit.
		require.NoError(t, f.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Accounts().DebitBalance(ctx, tx.DB(), f.studentID, 1)
		}))

		err = f.cmds.Delete(ctx, view.ID, user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrInsufficientVouchers)
		_, exists := f.store.Voucher(view.ID)
		assert.True(t, exists, "voucher survives the failed delete")
	})

	t.Run("students cannot delete", func(t *testing.T) {
		f := newVoucherFixture(t)
		assert.ErrorIs(t, f.cmds.Delete(ctx, uuid.New(), user.RoleStudent), commands.ErrForbidden)
	})
}
