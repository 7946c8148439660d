package request

import "strings"

type RedeemVoucherRequest struct {
	Code string `json:"code" binding:"required,len=12"`
}

func (r RedeemVoucherRequest) NormalizedCode() string {
	return strings.ToUpper(strings.TrimSpace(r.Code))
}
