package commands

import (
	"context"

	"loyalty-ledger/internal/domain/user"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/pkg/password"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterUserInput struct {
	Email      string
	Password   string
	Role       string
	LocationID *uuid.UUID
}

type RegisterUserResult struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type UserCommands interface {
	// RegisterUser creates a staff account. Admin only; enforced at the
	// routing layer.
	RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error)
}

type userCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewUserCommands(uow shared.UnitOfWork) UserCommands {
	return &userCommandsImpl{uow: uow}
}

func (c *userCommandsImpl) RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if _, err := user.NewPassword(input.Password); err != nil {
		return nil, err
	}
	role, err := user.NewRole(input.Role)
	if err != nil {
		return nil, err
	}

	hash, err := password.HashPassword(input.Password)
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	u := user.NewUser(email, hash, role, input.LocationID)

	if err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	}); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.ErrEmailAlreadyUsed
		}
		return nil, errs.Wrap(err, "failed to register user")
	}

	return &RegisterUserResult{
		UserID: u.ID(),
		Email:  u.Email().Value(),
		Role:   u.Role().String(),
	}, nil
}
