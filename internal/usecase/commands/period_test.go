//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"school-rewards/internal/domain/user"
	"school-rewards/internal/usecase/commands"
	"school-rewards/tests/common/fakeuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPeriodCommands(store *fakeuow.Store) commands.PeriodCommands {
	return commands.NewPeriodCommands(store, &fakeuow.PeriodQueries{Store: store})
}

func springTerm() commands.CreatePeriodInput {
	return commands.CreatePeriodInput{
		Name:      "Spring Term",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}
}

func TestCreatePeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults apply when bounds are omitted", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)

		view, err := cmds.Create(ctx, springTerm(), user.RoleAdmin)
		require.NoError(t, err)

		assert.Equal(t, 6, view.MaxVouchers)
		assert.Equal(t, 5, view.RequiredForCertificate)
		assert.True(t, view.Active)
	})

	t.Run("explicit bounds win over defaults", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)

		input := springTerm()
		maxV, required := 8, 7
		input.MaxVouchers = &maxV
		input.RequiredForCertificate = &required

		view, err := cmds.Create(ctx, input, user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, 8, view.MaxVouchers)
		assert.Equal(t, 7, view.RequiredForCertificate)
	})

	t.Run("overlapping periods are rejected", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)

		_, err := cmds.Create(ctx, springTerm(), user.RoleAdmin)
		require.NoError(t, err)

		overlapping := commands.CreatePeriodInput{
			Name:      "Late Spring",
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		}
		_, err = cmds.Create(ctx, overlapping, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrPeriodOverlap)
	})

	t.Run("a second active period is rejected", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)

		_, err := cmds.Create(ctx, springTerm(), user.RoleAdmin)
		require.NoError(t, err)

		second := commands.CreatePeriodInput{
			Name:      "Summer Term",
			StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			Active:    true,
		}
		_, err = cmds.Create(ctx, second, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrActivePeriodExists)
	})

	t.Run("an inactive period may follow the active one", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)

		_, err := cmds.Create(ctx, springTerm(), user.RoleAdmin)
		require.NoError(t, err)

		second := commands.CreatePeriodInput{
			Name:      "Summer Term",
			StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		}
		_, err = cmds.Create(ctx, second, user.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("only admins manage periods", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)

		_, err := cmds.Create(ctx, springTerm(), user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("calendar validation applies", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)

		input := springTerm()
		input.StartDate, input.EndDate = input.EndDate, input.StartDate
		_, err := cmds.Create(ctx, input, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestUpdatePeriod(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, cmds commands.PeriodCommands, input commands.CreatePeriodInput) uuid.UUID {
		t.Helper()
		view, err := cmds.Create(ctx, input, user.RoleAdmin)
		require.NoError(t, err)
		return view.ID
	}

	t.Run("partial update keeps the rest", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)
		id := create(t, cmds, springTerm())

		name := "Renamed Term"
		view, err := cmds.Update(ctx, id, commands.UpdatePeriodInput{Name: &name}, user.RoleAdmin)
		require.NoError(t, err)

		assert.Equal(t, "Renamed Term", view.Name)
		assert.Equal(t, 6, view.MaxVouchers)
		assert.True(t, view.Active)
	})

	t.Run("reactivating the same period is not a conflict with itself", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)
		id := create(t, cmds, springTerm())

		active := true
		_, err := cmds.Update(ctx, id, commands.UpdatePeriodInput{Active: &active}, user.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("activating a second period is rejected", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)
		create(t, cmds, springTerm())

		second := commands.CreatePeriodInput{
			Name:      "Summer Term",
			StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		}
		secondID := create(t, cmds, second)

		active := true
		_, err := cmds.Update(ctx, secondID, commands.UpdatePeriodInput{Active: &active}, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrActivePeriodExists)
	})

	t.Run("moving dates onto another period is rejected", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)
		create(t, cmds, springTerm())

		second := commands.CreatePeriodInput{
			Name:      "Summer Term",
			StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		}
		secondID := create(t, cmds, second)

		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		_, err := cmds.Update(ctx, secondID, commands.UpdatePeriodInput{StartDate: &start}, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrPeriodOverlap)
	})

	t.Run("unknown period", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)

		name := "x"
		_, err := cmds.Update(ctx, uuid.New(), commands.UpdatePeriodInput{Name: &name}, user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrPeriodNotFound)
	})
}

func TestDeactivatePeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivation frees the active slot", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)

		view, err := cmds.Create(ctx, springTerm(), user.RoleAdmin)
		require.NoError(t, err)

		require.NoError(t, cmds.Deactivate(ctx, view.ID, user.RoleAdmin))

		snap, ok := store.Period(view.ID)
		require.True(t, ok)
		assert.False(t, snap.Active)
	})

	t.Run("unknown period", func(t *testing.T) {
		store := fakeuow.NewStore()
		cmds := newPeriodCommands(store)
		assert.ErrorIs(t, cmds.Deactivate(ctx, uuid.New(), user.RoleAdmin), commands.ErrPeriodNotFound)
	})
}
