package response

import (
	"time"

	"loyalty-ledger/internal/usecase/commands"

	"github.com/google/uuid"
)

type PurchaseResponse struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	StampsEarned  int32     `json:"stamps_earned"`
	NewBalance    int32     `json:"new_balance"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromPurchaseResult(r *commands.PurchaseResult) *PurchaseResponse {
	return &PurchaseResponse{
		TransactionID: r.TransactionID,
		StampsEarned:  r.StampsEarned,
		NewBalance:    r.NewBalance,
		CreatedAt:     r.CreatedAt,
	}
}

type ExchangeResponse struct {
	VoucherID  uuid.UUID `json:"voucher_id"`
	Code       string    `json:"code"`
	StampsUsed int32     `json:"stamps_used"`
	NewBalance int32     `json:"new_balance"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func FromExchangeResult(r *commands.ExchangeResult) *ExchangeResponse {
	return &ExchangeResponse{
		VoucherID:  r.VoucherID,
		Code:       r.Code,
		StampsUsed: r.StampsUsed,
		NewBalance: r.NewBalance,
		ExpiresAt:  r.ExpiresAt,
	}
}
