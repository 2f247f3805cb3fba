//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"school-rewards/internal/domain/user"
	"school-rewards/internal/domain/weeklylog"
	"school-rewards/internal/pkg/clock"
	"school-rewards/internal/usecase/commands"
	"school-rewards/internal/usecase/queries"
	"school-rewards/internal/usecase/shared"
	"school-rewards/tests/common/fakeuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type weeklyLogFixture struct {
	store     *fakeuow.Store
	cmds      commands.WeeklyLogCommands
	studentID uuid.UUID
	teacherID uuid.UUID
	periodID  uuid.UUID
	// 2026-03-08 is a Sunday
	week time.Time
}

func newWeeklyLogFixture(t *testing.T) *weeklyLogFixture {
	t.Helper()

	f := &weeklyLogFixture{
		store:     fakeuow.NewStore(),
		studentID: uuid.New(),
		teacherID: uuid.New(),
		periodID:  uuid.New(),
		week:      time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	}
	f.store.SeedStudent(f.studentID, "Alice", 0)
	f.store.SeedUser(f.teacherID, "Ms. Smith", "teacher", true)
	f.store.SeedPeriod(shared.PeriodSnapshot{
		ID:        f.periodID,
		Name:      "Spring Term",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})

	clk := clock.NewMockClock(f.week.Add(36 * time.Hour))
	f.cmds = commands.NewWeeklyLogCommands(f.store, &fakeuow.WeeklyLogQueries{Store: f.store}, clk)
	return f
}

func TestCreateLog(t *testing.T) {
	ctx := context.Background()

	t.Run("records points into the accumulator", func(t *testing.T) {
		f := newWeeklyLogFixture(t)

		view, err := f.cmds.CreateLog(ctx, f.studentID, 40, f.week, false, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		assert.Equal(t, 40, view.Points)
		assert.False(t, view.HasVoucher)
		assert.Equal(t, 40, f.store.Account(f.studentID).WeeklyPoints)
		assert.Equal(t, 0, f.store.Account(f.studentID).Balance)
	})

	t.Run("any day of the week addresses the same log", func(t *testing.T) {
		f := newWeeklyLogFixture(t)

		_, err := f.cmds.CreateLog(ctx, f.studentID, 10, f.week.AddDate(0, 0, 2), false, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		_, err = f.cmds.CreateLog(ctx, f.studentID, 20, f.week.AddDate(0, 0, 5), false, f.teacherID, user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrDuplicateWeek)

		// the duplicate attempt must not move the accumulator
		assert.Equal(t, 10, f.store.Account(f.studentID).WeeklyPoints)
		assert.Equal(t, 1, f.store.LogCount())
	})

	t.Run("voucher grant travels with the log", func(t *testing.T) {
		f := newWeeklyLogFixture(t)

		view, err := f.cmds.CreateLog(ctx, f.studentID, 40, f.week, true, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		assert.True(t, view.HasVoucher)
		assert.Equal(t, 1, f.store.Account(f.studentID).Balance)
		assert.Equal(t, 1, f.store.VoucherCount())
	})

	t.Run("week inside a period tags the voucher", func(t *testing.T) {
		f := newWeeklyLogFixture(t)

		_, err := f.cmds.CreateLog(ctx, f.studentID, 0, f.week, true, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		found := false
		for _, v := range listVouchers(f.store, f.studentID) {
			require.NotNil(t, v.PeriodID)
			assert.Equal(t, f.periodID, *v.PeriodID)
			require.NotNil(t, v.WeekStart)
			assert.True(t, f.week.Equal(*v.WeekStart))
			found = true
		}
		assert.True(t, found)
	})

	t.Run("week outside any period still earns the voucher untagged", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		outside := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC) // a Sunday past the period

		_, err := f.cmds.CreateLog(ctx, f.studentID, 0, outside, true, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		for _, v := range listVouchers(f.store, f.studentID) {
			assert.Nil(t, v.PeriodID)
		}
		assert.Equal(t, 1, f.store.Account(f.studentID).Balance)
	})

	t.Run("students cannot record points", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		_, err := f.cmds.CreateLog(ctx, f.studentID, 10, f.week, false, f.studentID, user.RoleStudent)
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("negative points rejected before any I/O", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		_, err := f.cmds.CreateLog(ctx, f.studentID, -1, f.week, false, f.teacherID, user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
		assert.ErrorIs(t, err, weeklylog.ErrNegativePoints)
	})
}

func TestUpdateLog(t *testing.T) {
	ctx := context.Background()

	createLog := func(t *testing.T, f *weeklyLogFixture, points int, hasVoucher bool) uuid.UUID {
		t.Helper()
		view, err := f.cmds.CreateLog(ctx, f.studentID, points, f.week, hasVoucher, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)
		return view.ID
	}

	t.Run("points move by the delta", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		logID := createLog(t, f, 40, false)

		newPoints := 25
		view, err := f.cmds.UpdateLog(ctx, logID, commands.UpdateLogInput{Points: &newPoints}, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		assert.Equal(t, 25, view.Points)
		assert.Equal(t, 25, f.store.Account(f.studentID).WeeklyPoints)
	})

	t.Run("voucher toggle round-trip is balance neutral", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		logID := createLog(t, f, 40, false)

		on := true
		view, err := f.cmds.UpdateLog(ctx, logID, commands.UpdateLogInput{HasVoucher: &on}, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)
		assert.True(t, view.HasVoucher)
		assert.Equal(t, 1, f.store.Account(f.studentID).Balance)

		off := false
		view, err = f.cmds.UpdateLog(ctx, logID, commands.UpdateLogInput{HasVoucher: &off}, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)
		assert.False(t, view.HasVoucher)
		assert.Equal(t, 0, f.store.Account(f.studentID).Balance)
		assert.Equal(t, 0, f.store.VoucherCount())
	})

	t.Run("toggling an already-set flag is a no-op", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		logID := createLog(t, f, 40, true)

		on := true
		_, err := f.cmds.UpdateLog(ctx, logID, commands.UpdateLogInput{HasVoucher: &on}, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)
		assert.Equal(t, 1, f.store.Account(f.studentID).Balance)
		assert.Equal(t, 1, f.store.VoucherCount())
	})

	t.Run("revoking a spent voucher fails and rolls back", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		logID := createLog(t, f, 40, true)

		require.NoError(t, f.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Accounts().DebitBalance(ctx, tx.DB(), f.studentID, 1)
		}))

		off := false
		_, err := f.cmds.UpdateLog(ctx, logID, commands.UpdateLogInput{HasVoucher: &off}, f.teacherID, user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrInsufficientVouchers)
		assert.Equal(t, 1, f.store.VoucherCount(), "voucher survives the failed revoke")
	})

	t.Run("redeemed week voucher cannot be revoked", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		logID := createLog(t, f, 40, true)

		// pin the week voucher to an order
		orderID := uuid.New()
		f.store.SeedOrder(shared.OrderSnapshot{ID: orderID, StudentID: f.studentID, TotalCost: 1, Status: "new_order"})
		for _, v := range listVouchers(f.store, f.studentID) {
			require.NoError(t, f.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
				return tx.Vouchers().MarkRedeemed(ctx, tx.DB(), v.ID, orderID)
			}))
		}

		off := false
		_, err := f.cmds.UpdateLog(ctx, logID, commands.UpdateLogInput{HasVoucher: &off}, f.teacherID, user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrVoucherRedeemed)
	})

	t.Run("unknown log", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		points := 10
		_, err := f.cmds.UpdateLog(ctx, uuid.New(), commands.UpdateLogInput{Points: &points}, f.teacherID, user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrWeeklyLogNotFound)
	})
}

func TestDeleteLog(t *testing.T) {
	ctx := context.Background()

	t.Run("delete reverses points and the week voucher", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		view, err := f.cmds.CreateLog(ctx, f.studentID, 40, f.week, true, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		require.NoError(t, f.cmds.DeleteLog(ctx, view.ID, user.RoleTeacher))

		assert.Equal(t, 0, f.store.Account(f.studentID).WeeklyPoints)
		assert.Equal(t, 0, f.store.Account(f.studentID).Balance)
		assert.Equal(t, 0, f.store.LogCount())
		assert.Equal(t, 0, f.store.VoucherCount())
	})

	t.Run("delete without voucher only reverses points", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		view, err := f.cmds.CreateLog(ctx, f.studentID, 15, f.week, false, f.teacherID, user.RoleTeacher)
		require.NoError(t, err)

		require.NoError(t, f.cmds.DeleteLog(ctx, view.ID, user.RoleTeacher))
		assert.Equal(t, 0, f.store.Account(f.studentID).WeeklyPoints)
	})

	t.Run("students cannot delete logs", func(t *testing.T) {
		f := newWeeklyLogFixture(t)
		assert.ErrorIs(t, f.cmds.DeleteLog(ctx, uuid.New(), user.RoleStudent), commands.ErrForbidden)
	})
}

func listVouchers(store *fakeuow.Store, studentID uuid.UUID) []*queries.VoucherView {
	q := &fakeuow.VoucherQueries{Store: store}
	views, _ := q.ListByStudent(context.Background(), studentID)
	return views
}
