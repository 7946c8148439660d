package response

import (
	"loyalty-ledger/internal/usecase/queries"
)

type LoginResponse struct {
	User *queries.AuthorizedUserView `json:"user"`
}

type RefreshResponse struct {
	Message string `json:"message"`
}
