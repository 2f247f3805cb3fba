package queries

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPeriodNotFound = errs.New("certificate period not found")
	ErrNoActivePeriod = errs.New("no active certificate period")
)

type PeriodQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PeriodView, error)
	GetActive(ctx context.Context) (*PeriodView, error)
	ListAll(ctx context.Context) ([]*PeriodView, error)
}

type PeriodReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PeriodView, error)
	FindActive(ctx context.Context) (*PeriodView, error)
	FindAll(ctx context.Context) ([]*PeriodView, error)
}

type periodQueriesImpl struct {
	store PeriodReadStore
}

func NewPeriodQueries(store PeriodReadStore) PeriodQueries {
	return &periodQueriesImpl{store: store}
}

func (q *periodQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PeriodView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *periodQueriesImpl) GetActive(ctx context.Context) (*PeriodView, error) {
	view, err := q.store.FindActive(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNoActivePeriod
		}
		return nil, err
	}
	return view, nil
}

func (q *periodQueriesImpl) ListAll(ctx context.Context) ([]*PeriodView, error) {
	return q.store.FindAll(ctx)
}
