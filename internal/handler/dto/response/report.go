package response

import (
	"time"

	"loyalty-ledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TransactionReportItem struct {
	ID           uuid.UUID `json:"id"`
	MemberID     string    `json:"member_id"`
	CustomerName string    `json:"customer_name"`
	CashierEmail string    `json:"cashier_email"`
	LocationName string    `json:"location_name"`
	AmountCents  int64     `json:"amount_cents"`
	StampsEarned int32     `json:"stamps_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

type RedemptionReportItem struct {
	ID           uuid.UUID `json:"id"`
	VoucherCode  string    `json:"voucher_code"`
	MemberID     string    `json:"member_id"`
	CustomerName string    `json:"customer_name"`
	CashierEmail string    `json:"cashier_email"`
	LocationName string    `json:"location_name"`
	StampsUsed   int32     `json:"stamps_used"`
	RedeemedAt   time.Time `json:"redeemed_at"`
}

type TransactionReportResponse struct {
	Items []TransactionReportItem `json:"items"`
	Count int                     `json:"count"`
}

type RedemptionReportResponse struct {
	Items []RedemptionReportItem `json:"items"`
	Count int                    `json:"count"`
}

func FromTransactionReportRows(rows []*queries.TransactionReportRow) (*TransactionReportResponse, error) {
	items := make([]TransactionReportItem, 0, len(rows))
	if err := copier.Copy(&items, rows); err != nil {
		return nil, err
	}
	return &TransactionReportResponse{Items: items, Count: len(items)}, nil
}

func FromRedemptionReportRows(rows []*queries.RedemptionReportRow) (*RedemptionReportResponse, error) {
	items := make([]RedemptionReportItem, 0, len(rows))
	if err := copier.Copy(&items, rows); err != nil {
		return nil, err
	}
	return &RedemptionReportResponse{Items: items, Count: len(items)}, nil
}
