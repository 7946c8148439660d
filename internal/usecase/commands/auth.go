package commands

import (
	"context"

	"loyalty-ledger/internal/domain/user"
	"loyalty-ledger/internal/pkg/errs"
	appjwt "loyalty-ledger/internal/pkg/jwt"
	"loyalty-ledger/internal/pkg/password"
	"loyalty-ledger/internal/usecase/queries"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrInvalidRefreshToken  = errs.New("invalid refresh token")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	Tokens TokenPair
	User   *queries.AuthorizedUserView
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow       shared.UnitOfWork
	userStore queries.UserReadStore
	jwt       *appjwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, userStore queries.UserReadStore, jwtService *appjwt.Service) AuthCommands {
	return &authCommandsImpl{uow: uow, userStore: userStore, jwt: jwtService}
}

func (c *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	view, hash, err := c.userStore.FindByEmail(ctx, email)
	if err != nil {
		// Deliberately the same error as a bad password.
		return nil, ErrAuthenticationFailed
	}
	if !view.IsActive {
		return nil, ErrAuthenticationFailed
	}
	if err := password.ComparePassword(hash, plainPassword); err != nil {
		return nil, ErrAuthenticationFailed
	}

	tokens, err := c.issueTokens(view.ID, view.Role)
	if err != nil {
		return nil, err
	}

	if err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, view.ID)
	}); err != nil {
		return nil, errs.Wrap(err, "failed to update last login")
	}

	return &LoginResult{Tokens: *tokens, User: view}, nil
}

func (c *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := c.jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != appjwt.TokenTypeRefresh {
		return nil, ErrInvalidRefreshToken
	}

	// Re-check the account on every refresh so deactivation takes effect
	// within one access-token lifetime.
	view, err := c.userStore.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if !view.IsActive {
		return nil, ErrInvalidRefreshToken
	}

	return c.issueTokens(view.ID, view.Role)
}

func (c *authCommandsImpl) issueTokens(userID uuid.UUID, role string) (*TokenPair, error) {
	r, err := user.NewRole(role)
	if err != nil {
		return nil, errs.Wrap(err, "user has invalid role")
	}
	access, err := c.jwt.GenerateAccessToken(userID, r)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate access token")
	}
	refresh, err := c.jwt.GenerateRefreshToken(userID, r)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate refresh token")
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
