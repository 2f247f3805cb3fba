//go:build unit

package commands_test

import (
	"context"
	"testing"

	"school-rewards/internal/domain/order"
	"school-rewards/internal/domain/user"
	"school-rewards/internal/usecase/commands"
	"school-rewards/internal/usecase/shared"
	"school-rewards/tests/common/fakeuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	store     *fakeuow.Store
	cmds      commands.OrderCommands
	studentID uuid.UUID
	pencilID  uuid.UUID
	bookID    uuid.UUID
}

// newOrderFixture seeds a student with 10 vouchers and two products:
// a pencil (price 2, stock 5) and a book (price 3, stock 2).
func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		store:     fakeuow.NewStore(),
		studentID: uuid.New(),
		pencilID:  uuid.New(),
		bookID:    uuid.New(),
	}
	f.store.SeedStudent(f.studentID, "Alice", 10)
	f.store.SeedProduct(shared.ProductSnapshot{ID: f.pencilID, Name: "Pencil", Price: 2, Stock: 5, Active: true})
	f.store.SeedProduct(shared.ProductSnapshot{ID: f.bookID, Name: "Book", Price: 3, Stock: 2, Active: true})

	f.cmds = commands.NewOrderCommands(f.store, &fakeuow.OrderQueries{Store: f.store})
	return f
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("settles cart atomically", func(t *testing.T) {
		f := newOrderFixture(t)

		view, err := f.cmds.CreateOrder(ctx, f.studentID, []order.CartLine{
			{ProductID: f.pencilID, Quantity: 2},
			{ProductID: f.bookID, Quantity: 1},
		})
		require.NoError(t, err)

		// 2*2 + 1*3
		assert.Equal(t, 7, view.TotalCost)
		assert.Equal(t, order.StatusNew.String(), view.Status)
		assert.Len(t, view.Items, 2)

		assert.Equal(t, 3, f.store.Account(f.studentID).Balance)
		assert.Equal(t, 3, f.store.Product(f.pencilID).Stock)
		assert.Equal(t, 2, f.store.Product(f.pencilID).Purchases)
		assert.Equal(t, 1, f.store.Product(f.bookID).Stock)
	})

	t.Run("merges duplicate cart lines before settling", func(t *testing.T) {
		f := newOrderFixture(t)

		view, err := f.cmds.CreateOrder(ctx, f.studentID, []order.CartLine{
			{ProductID: f.pencilID, Quantity: 2},
			{ProductID: f.pencilID, Quantity: 3},
		})
		require.NoError(t, err)

		require.Len(t, view.Items, 1)
		assert.Equal(t, 5, view.Items[0].Quantity)
		assert.Equal(t, 10, view.TotalCost)
		assert.Equal(t, 0, f.store.Product(f.pencilID).Stock)
	})

	t.Run("duplicate lines exceeding stock fail as one demand", func(t *testing.T) {
		f := newOrderFixture(t)

		// 3+3 pencils against a stock of 5
		_, err := f.cmds.CreateOrder(ctx, f.studentID, []order.CartLine{
			{ProductID: f.pencilID, Quantity: 3},
			{ProductID: f.pencilID, Quantity: 3},
		})
		assert.ErrorIs(t, err, commands.ErrInsufficientStock)
		assert.Equal(t, 5, f.store.Product(f.pencilID).Stock)
	})

	t.Run("price is locked at order time", func(t *testing.T) {
		f := newOrderFixture(t)

		view, err := f.cmds.CreateOrder(ctx, f.studentID, []order.CartLine{
			{ProductID: f.bookID, Quantity: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, view.Items[0].PriceAtOrder)
	})

	t.Run("insufficient balance rolls everything back", func(t *testing.T) {
		f := newOrderFixture(t)

		// 4 pencils + 1 book = 11 against a balance of 10
		_, err := f.cmds.CreateOrder(ctx, f.studentID, []order.CartLine{
			{ProductID: f.pencilID, Quantity: 4},
			{ProductID: f.bookID, Quantity: 1},
		})
		assert.ErrorIs(t, err, commands.ErrInsufficientVouchers)

		assert.Equal(t, 10, f.store.Account(f.studentID).Balance)
		assert.Equal(t, 5, f.store.Product(f.pencilID).Stock)
		assert.Equal(t, 2, f.store.Product(f.bookID).Stock)
		assert.Equal(t, 0, f.store.OrderCount())
	})

	t.Run("exact balance spends to zero", func(t *testing.T) {
		f := newOrderFixture(t)

		// 2 pencils + 2 books = 10
		_, err := f.cmds.CreateOrder(ctx, f.studentID, []order.CartLine{
			{ProductID: f.pencilID, Quantity: 2},
			{ProductID: f.bookID, Quantity: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, f.store.Account(f.studentID).Balance)
	})

	t.Run("failed line rolls back earlier debits", func(t *testing.T) {
		f := newOrderFixture(t)

		_, err := f.cmds.CreateOrder(ctx, f.studentID, []order.CartLine{
			{ProductID: f.pencilID, Quantity: 1},
			{ProductID: f.bookID, Quantity: 3},
		})
		assert.ErrorIs(t, err, commands.ErrInsufficientStock)

		assert.Equal(t, 10, f.store.Account(f.studentID).Balance)
		assert.Equal(t, 5, f.store.Product(f.pencilID).Stock)
		assert.Equal(t, 0, f.store.OrderCount())
	})

	t.Run("inactive product is rejected", func(t *testing.T) {
		f := newOrderFixture(t)
		inactiveID := uuid.New()
		f.store.SeedProduct(shared.ProductSnapshot{ID: inactiveID, Name: "Retired", Price: 1, Stock: 5, Active: false})

		_, err := f.cmds.CreateOrder(ctx, f.studentID, []order.CartLine{
			{ProductID: inactiveID, Quantity: 1},
		})
		assert.ErrorIs(t, err, commands.ErrProductUnavailable)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.cmds.CreateOrder(ctx, f.studentID, []order.CartLine{
			{ProductID: uuid.New(), Quantity: 1},
		})
		assert.ErrorIs(t, err, commands.ErrProductNotFound)
	})

	t.Run("empty cart is rejected before any I/O", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.cmds.CreateOrder(ctx, f.studentID, nil)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("unknown student", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.cmds.CreateOrder(ctx, uuid.New(), []order.CartLine{
			{ProductID: f.pencilID, Quantity: 1},
		})
		assert.ErrorIs(t, err, commands.ErrStudentNotFound)
	})

	t.Run("inactive student cannot order", func(t *testing.T) {
		f := newOrderFixture(t)
		inactiveID := uuid.New()
		f.store.SeedInactiveStudent(inactiveID, "Bob")

		_, err := f.cmds.CreateOrder(ctx, inactiveID, []order.CartLine{
			{ProductID: f.pencilID, Quantity: 1},
		})
		assert.ErrorIs(t, err, commands.ErrStudentInactive)
	})

	t.Run("teacher cannot be the buyer", func(t *testing.T) {
		f := newOrderFixture(t)
		teacherID := uuid.New()
		f.store.SeedUser(teacherID, "Ms. Smith", "teacher", true)

		_, err := f.cmds.CreateOrder(ctx, teacherID, []order.CartLine{
			{ProductID: f.pencilID, Quantity: 1},
		})
		assert.ErrorIs(t, err, commands.ErrNotAStudent)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	place := func(t *testing.T, f *orderFixture) uuid.UUID {
		t.Helper()
		view, err := f.cmds.CreateOrder(ctx, f.studentID, []order.CartLine{
			{ProductID: f.pencilID, Quantity: 1},
		})
		require.NoError(t, err)
		return view.ID
	}

	t.Run("forward transition succeeds", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID := place(t, f)

		view, err := f.cmds.UpdateStatus(ctx, orderID, "preparing", user.RoleTeacher)
		require.NoError(t, err)
		assert.Equal(t, "preparing", view.Status)

		view, err = f.cmds.UpdateStatus(ctx, orderID, "delivered", user.RoleTeacher)
		require.NoError(t, err)
		assert.Equal(t, "delivered", view.Status)
	})

	t.Run("backward transition is rejected", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID := place(t, f)

		_, err := f.cmds.UpdateStatus(ctx, orderID, "delivered", user.RoleAdmin)
		require.NoError(t, err)

		_, err = f.cmds.UpdateStatus(ctx, orderID, "preparing", user.RoleAdmin)
		assert.ErrorIs(t, err, commands.ErrInvalidStatusTransition)
	})

	t.Run("repeating the current status is rejected", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID := place(t, f)

		_, err := f.cmds.UpdateStatus(ctx, orderID, "new_order", user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrInvalidStatusTransition)
	})

	t.Run("students cannot manage orders", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID := place(t, f)

		_, err := f.cmds.UpdateStatus(ctx, orderID, "preparing", user.RoleStudent)
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("unknown status string", func(t *testing.T) {
		f := newOrderFixture(t)
		orderID := place(t, f)

		_, err := f.cmds.UpdateStatus(ctx, orderID, "shipped", user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.cmds.UpdateStatus(ctx, uuid.New(), "preparing", user.RoleTeacher)
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})
}
