package readstore

import (
	"context"

	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/db"
	"loyalty-ledger/internal/pkg/pgconv"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const findUserByID = `
SELECT id, email, role, location_id, is_active
FROM users
WHERE id = $1
`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var (
		view       queries.AuthorizedUserView
		locationID pgtype.UUID
	)
	err := r.db.QueryRow(ctx, findUserByID, id).Scan(
		&view.ID, &view.Email, &view.Role, &locationID, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	view.LocationID = pgconv.UUIDPtrFromPgtype(locationID)
	return &view, nil
}

const findUserByEmail = `
SELECT id, email, password_hash, role, location_id, is_active
FROM users
WHERE email = $1
`

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		view         queries.AuthorizedUserView
		passwordHash string
		locationID   pgtype.UUID
	)
	err := r.db.QueryRow(ctx, findUserByEmail, email).Scan(
		&view.ID, &view.Email, &passwordHash, &view.Role, &locationID, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	view.LocationID = pgconv.UUIDPtrFromPgtype(locationID)
	return &view, passwordHash, nil
}
