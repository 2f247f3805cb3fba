package queries

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound    = errs.New("user not found")
	ErrStudentNotFound = errs.New("student not found")
)

type UserQueries interface {
	AuthorizedUserByEmail(ctx context.Context, email string) (*AuthorizedUserView, error)
	AuthorizedUserByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	StudentProfile(ctx context.Context, studentID uuid.UUID) (*StudentProfileView, error)
}

type UserReadStore interface {
	FindAuthorizedByEmail(ctx context.Context, email string) (*AuthorizedUserView, error)
	FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	FindStudentProfile(ctx context.Context, studentID uuid.UUID) (*StudentProfileView, error)
}

type userQueriesImpl struct {
	store UserReadStore
}

func NewUserQueries(store UserReadStore) UserQueries {
	return &userQueriesImpl{store: store}
}

func (q *userQueriesImpl) AuthorizedUserByEmail(ctx context.Context, email string) (*AuthorizedUserView, error) {
	view, err := q.store.FindAuthorizedByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *userQueriesImpl) AuthorizedUserByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.store.FindAuthorizedByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *userQueriesImpl) StudentProfile(ctx context.Context, studentID uuid.UUID) (*StudentProfileView, error) {
	view, err := q.store.FindStudentProfile(ctx, studentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return view, nil
}
