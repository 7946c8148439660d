package response

import (
	"loyalty-ledger/internal/usecase/commands"

	"github.com/google/uuid"
)

type RegisterUserResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

func FromRegisterUserResult(result *commands.RegisterUserResult) RegisterUserResponse {
	return RegisterUserResponse{
		UserID: result.UserID,
		Email:  result.Email,
		Role:   result.Role,
	}
}
