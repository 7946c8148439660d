package response

import (
	"loyalty-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type CustomerLookupResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	MemberID      string    `json:"member_id"`
	CurrentStamps int32     `json:"current_stamps"`
}

func FromCustomerView(v *queries.CustomerView) *CustomerLookupResponse {
	return &CustomerLookupResponse{
		ID:            v.ID,
		Name:          v.User.Name,
		MemberID:      v.User.MemberID,
		CurrentStamps: v.CurrentStamps,
	}
}
