package commands

import (
	"context"

	"school-rewards/internal/domain/product"
	"school-rewards/internal/domain/user"
	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/errs"
	"school-rewards/internal/pkg/patch"
	"school-rewards/internal/usecase/queries"
	"school-rewards/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       int
	Stock       int
}

// UpdateProductInput carries a partial update; nil fields keep their value.
// Stock is deliberately absent: it only moves through AdjustStock or the
// settlement path.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int
	Active      *bool
}

type ProductCommands interface {
	Create(ctx context.Context, input CreateProductInput, actorRole user.Role) (*queries.ProductView, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput, actorRole user.Role) (*queries.ProductView, error)
	// AdjustStock applies a signed delta. A negative delta that would take
	// stock below zero fails instead of flooring.
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int, actorRole user.Role) (*queries.ProductView, error)
}

type productUseCaseImpl struct {
	uow            shared.UnitOfWork
	productQueries queries.ProductQueries
}

func NewProductCommands(uow shared.UnitOfWork, productQueries queries.ProductQueries) ProductCommands {
	return &productUseCaseImpl{
		uow:            uow,
		productQueries: productQueries,
	}
}

func (uc *productUseCaseImpl) Create(ctx context.Context, input CreateProductInput, actorRole user.Role) (*queries.ProductView, error) {
	if !actorRole.CanManageCatalog() {
		return nil, ErrForbidden
	}

	p, err := product.NewProduct(input.Name, input.Description, input.Price, input.Stock)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var productID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, terr := tx.Products().Create(ctx, tx.DB(), p.Name(), p.Description(), p.Price(), p.Stock())
		if terr != nil {
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		productID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.productQueries.GetByID(ctx, productID)
}

func (uc *productUseCaseImpl) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput, actorRole user.Role) (*queries.ProductView, error) {
	if !actorRole.CanManageCatalog() {
		return nil, ErrForbidden
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, terr := tx.Reads().ProductByID(ctx, productID)
		if terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}

		// Re-run construction validation over the merged state so a partial
		// update cannot sneak past the catalog rules.
		merged, terr := product.NewProduct(
			patch.Coalesce(input.Name, snap.Name),
			patch.Coalesce(input.Description, snap.Description),
			patch.Coalesce(input.Price, snap.Price),
			snap.Stock,
		)
		if terr != nil {
			return errs.Mark(terr, ErrDomainValidation)
		}

		active := patch.Coalesce(input.Active, snap.Active)
		return tx.Products().Update(ctx, tx.DB(), productID, merged.Name(), merged.Description(), merged.Price(), active)
	})
	if err != nil {
		return nil, err
	}

	return uc.productQueries.GetByID(ctx, productID)
}

func (uc *productUseCaseImpl) AdjustStock(ctx context.Context, productID uuid.UUID, delta int, actorRole user.Role) (*queries.ProductView, error) {
	if !actorRole.CanManageCatalog() {
		return nil, ErrForbidden
	}
	if delta == 0 {
		return uc.productQueries.GetByID(ctx, productID)
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		terr := tx.Products().AdjustStock(ctx, tx.DB(), productID, delta)
		if terr != nil {
			switch {
			case infra.IsKind(terr, infra.KindNotFound):
				return ErrProductNotFound
			case infra.IsKind(terr, infra.KindConflict):
				return errs.Wrapf(ErrInsufficientStock, "delta %d", delta)
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.productQueries.GetByID(ctx, productID)
}
