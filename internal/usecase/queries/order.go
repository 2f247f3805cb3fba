package queries

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errs.New("order not found")

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*OrderView, error)
	ListByStatus(ctx context.Context, status string) ([]*OrderView, error)
	ListAll(ctx context.Context) ([]*OrderView, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*OrderView, error)
	FindByStatus(ctx context.Context, status string) ([]*OrderView, error)
	FindAll(ctx context.Context) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*OrderView, error) {
	return q.store.FindByStudent(ctx, studentID)
}

func (q *orderQueriesImpl) ListByStatus(ctx context.Context, status string) ([]*OrderView, error) {
	return q.store.FindByStatus(ctx, status)
}

func (q *orderQueriesImpl) ListAll(ctx context.Context) ([]*OrderView, error) {
	return q.store.FindAll(ctx)
}
