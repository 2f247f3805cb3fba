package readstore

import (
	"context"

	"school-rewards/internal/infra"
	"school-rewards/internal/infra/db"
	"school-rewards/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const authorizedUserSelect = `
	SELECT id, email, name, role, password_hash, is_active
	FROM users`

func (r *UserReadStore) FindAuthorizedByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error) {
	row := r.db.QueryRow(ctx, authorizedUserSelect+` WHERE email = $1`, email)

	var v queries.AuthorizedUserView
	if err := row.Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.PasswordHash, &v.IsActive); err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &v, nil
}

func (r *UserReadStore) FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row := r.db.QueryRow(ctx, authorizedUserSelect+` WHERE id = $1`, id)

	var v queries.AuthorizedUserView
	if err := row.Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.PasswordHash, &v.IsActive); err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &v, nil
}

func (r *UserReadStore) FindStudentProfile(ctx context.Context, studentID uuid.UUID) (*queries.StudentProfileView, error) {
	const query = `
		SELECT u.id, u.name, u.email, s.voucher_balance, s.weekly_points, s.certificates, u.is_active
		FROM users u
		JOIN students s ON s.user_id = u.id
		WHERE u.id = $1`

	row := r.db.QueryRow(ctx, query, studentID)

	var v queries.StudentProfileView
	if err := row.Scan(&v.ID, &v.Name, &v.Email, &v.Balance, &v.WeeklyPoints, &v.Certificates, &v.IsActive); err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("student not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find student profile", err)
	}
	return &v, nil
}
