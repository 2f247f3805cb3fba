package commands

import (
	"context"

	"school-rewards/internal/domain/order"
	"school-rewards/internal/domain/user"
	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/errs"
	"school-rewards/internal/usecase/queries"
	"school-rewards/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrStudentNotFound         = errs.New("student not found")
	ErrNotAStudent             = errs.New("orders can only be placed for students")
	ErrStudentInactive         = errs.New("student account is inactive")
	ErrProductNotFound         = errs.New("product not found")
	ErrProductUnavailable      = errs.New("product is not available")
	ErrInsufficientStock       = errs.New("insufficient product stock")
	ErrInsufficientVouchers    = errs.New("insufficient voucher balance")
	ErrOrderNotFound           = errs.New("order not found")
	ErrInvalidStatusTransition = errs.New("invalid order status transition")
	ErrForbidden               = errs.New("operation not allowed for this role")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type OrderCommands interface {
	// CreateOrder settles a cart: it locks prices, verifies stock and the
	// student's voucher balance, and persists the order together with the
	// balance debit and stock decrements as one atomic unit. On any failure
	// nothing is left behind.
	CreateOrder(ctx context.Context, studentID uuid.UUID, cart []order.CartLine) (*queries.OrderView, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string, actorRole user.Role) (*queries.OrderView, error)
}

type orderUseCaseImpl struct {
	uow          shared.UnitOfWork
	orderQueries queries.OrderQueries
}

func NewOrderCommands(uow shared.UnitOfWork, orderQueries queries.OrderQueries) OrderCommands {
	return &orderUseCaseImpl{
		uow:          uow,
		orderQueries: orderQueries,
	}
}

func (uc *orderUseCaseImpl) CreateOrder(ctx context.Context, studentID uuid.UUID, cart []order.CartLine) (*queries.OrderView, error) {
	// Cart shape is checked before any I/O; duplicate product lines are
	// merged so their stock demand is evaluated cumulatively.
	lines, err := order.NormalizeCart(cart)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var orderID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		buyer, terr := tx.Reads().UserByID(ctx, studentID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrStudentNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		if buyer.Role != user.RoleStudent.String() {
			return ErrNotAStudent
		}
		if !buyer.IsActive {
			return ErrStudentInactive
		}

		priced, terr := uc.priceCart(ctx, tx, lines)
		if terr != nil {
			return terr
		}

		ord, terr := order.NewOrder(studentID, priced)
		if terr != nil {
			return errs.Mark(terr, ErrDomainValidation)
		}

		acct, terr := tx.Reads().AccountByStudent(ctx, studentID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrStudentNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		if acct.Balance < ord.TotalCost() {
			return errs.Wrapf(ErrInsufficientVouchers, "total %d exceeds balance %d", ord.TotalCost(), acct.Balance)
		}

		id, terr := tx.Orders().Create(ctx, tx.DB(), ord)
		if terr != nil {
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		orderID = id

		// The balance re-check runs inside the UPDATE; a concurrent
		// settlement that drained the balance after the read above fails
		// here and rolls the whole order back.
		if terr = tx.Accounts().DebitBalance(ctx, tx.DB(), studentID, ord.TotalCost()); terr != nil {
			if infra.IsKind(terr, infra.KindConflict) {
				return ErrInsufficientVouchers
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}

		for _, line := range ord.Lines() {
			if terr = tx.Products().DebitStock(ctx, tx.DB(), line.ProductID, line.Quantity); terr != nil {
				if infra.IsKind(terr, infra.KindConflict) {
					return errs.Wrapf(ErrInsufficientStock, "product %s", line.ProductID)
				}
				return errs.Mark(terr, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := uc.orderQueries.GetByID(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// priceCart validates every line against the catalog and locks unit prices.
func (uc *orderUseCaseImpl) priceCart(ctx context.Context, tx shared.Tx, lines []order.CartLine) ([]order.Line, error) {
	priced := make([]order.Line, 0, len(lines))
	for _, l := range lines {
		prod, err := tx.Reads().ProductByID(ctx, l.ProductID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Wrapf(ErrProductNotFound, "product %s", l.ProductID)
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !prod.Active {
			return nil, errs.Wrapf(ErrProductUnavailable, "product %q", prod.Name)
		}
		if prod.Stock < l.Quantity {
			return nil, errs.Wrapf(ErrInsufficientStock, "product %q has %d in stock, requested %d", prod.Name, prod.Stock, l.Quantity)
		}
		priced = append(priced, order.Line{
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			PriceAtOrder: prod.Price,
		})
	}
	return priced, nil
}

func (uc *orderUseCaseImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string, actorRole user.Role) (*queries.OrderView, error) {
	if !actorRole.CanManageOrders() {
		return nil, ErrForbidden
	}

	next, err := order.NewStatus(status)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, terr := tx.Reads().OrderByID(ctx, orderID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}

		current, terr := order.NewStatus(snap.Status)
		if terr != nil {
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		o := order.ReconstructOrder(snap.ID, snap.StudentID, nil, snap.TotalCost, current)
		if terr = o.ChangeStatus(next); terr != nil {
			return errs.Wrapf(ErrInvalidStatusTransition, "%s -> %s", current, next)
		}

		return tx.Orders().UpdateStatus(ctx, tx.DB(), orderID, o.Status())
	})
	if err != nil {
		return nil, err
	}

	return uc.orderQueries.GetByID(ctx, orderID)
}
