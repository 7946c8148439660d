package repository

import (
	"context"

	"loyalty-ledger/internal/domain/user"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/db"
	"loyalty-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

const updateLastLogin = `
UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1
`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, updateLastLogin, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

const createUser = `
INSERT INTO users (id, email, password_hash, role, location_id, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
`

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, createUser,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		pgconv.UUIDPtrToPgtype(u.LocationID()),
		u.IsActive(),
	)
	if err != nil {
		if isPgErrCode(err, pgErrCodeUniqueViolation) {
			return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		if isPgErrCode(err, pgErrCodeForeignKeyViolation) {
			return infra.WrapRepoErr("location does not exist", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}
