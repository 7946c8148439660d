package response

import (
	"time"

	"loyalty-ledger/internal/usecase/commands"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type RedemptionResponse struct {
	RedemptionID uuid.UUID `json:"redemption_id"`
	VoucherID    uuid.UUID `json:"voucher_id"`
	StampsUsed   int32     `json:"stamps_used"`
	RedeemedAt   time.Time `json:"redeemed_at"`
}

func FromRedemptionResult(r *commands.RedemptionResult) *RedemptionResponse {
	return &RedemptionResponse{
		RedemptionID: r.RedemptionID,
		VoucherID:    r.VoucherID,
		StampsUsed:   r.StampsUsed,
		RedeemedAt:   r.RedeemedAt,
	}
}

type VoucherLookupResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	StampsUsed int32     `json:"stamps_used"`
	ExpiresAt  time.Time `json:"expires_at"`
	Customer   struct {
		Name     string `json:"name"`
		MemberID string `json:"member_id"`
	} `json:"customer"`
}

func FromVoucherView(v *queries.VoucherView) *VoucherLookupResponse {
	resp := &VoucherLookupResponse{
		ID:         v.ID,
		Code:       v.Code,
		StampsUsed: v.StampsUsed,
		ExpiresAt:  v.ExpiresAt,
	}
	resp.Customer.Name = v.Customer.User.Name
	resp.Customer.MemberID = v.Customer.User.MemberID
	return resp
}
