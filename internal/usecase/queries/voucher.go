package queries

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrVoucherNotFound = errs.New("voucher not found")

type VoucherQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VoucherView, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*VoucherView, error)
	ListUnredeemedByStudent(ctx context.Context, studentID uuid.UUID) ([]*VoucherView, error)
	ListByIssuer(ctx context.Context, issuerID uuid.UUID) ([]*VoucherView, error)
}

type VoucherReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VoucherView, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*VoucherView, error)
	FindUnredeemedByStudent(ctx context.Context, studentID uuid.UUID) ([]*VoucherView, error)
	FindByIssuer(ctx context.Context, issuerID uuid.UUID) ([]*VoucherView, error)
}

type voucherQueriesImpl struct {
	store VoucherReadStore
}

func NewVoucherQueries(store VoucherReadStore) VoucherQueries {
	return &voucherQueriesImpl{store: store}
}

func (q *voucherQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VoucherView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *voucherQueriesImpl) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*VoucherView, error) {
	return q.store.FindByStudent(ctx, studentID)
}

func (q *voucherQueriesImpl) ListUnredeemedByStudent(ctx context.Context, studentID uuid.UUID) ([]*VoucherView, error) {
	return q.store.FindUnredeemedByStudent(ctx, studentID)
}

func (q *voucherQueriesImpl) ListByIssuer(ctx context.Context, issuerID uuid.UUID) ([]*VoucherView, error) {
	return q.store.FindByIssuer(ctx, issuerID)
}
