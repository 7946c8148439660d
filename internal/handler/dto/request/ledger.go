package request

import "strings"

type RecordPurchaseRequest struct {
	MemberID    string `json:"member_id" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
}

func (r RecordPurchaseRequest) TrimmedMemberID() string {
	return strings.TrimSpace(r.MemberID)
}

type ExchangeStampsRequest struct {
	MemberID string `json:"member_id" binding:"required"`
}

func (r ExchangeStampsRequest) TrimmedMemberID() string {
	return strings.TrimSpace(r.MemberID)
}
