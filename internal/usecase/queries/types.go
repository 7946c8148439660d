package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

// CustomerUserView is the customer's public identity block, nested under
// the lookup payload the verification endpoints expose.
type CustomerUserView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	MemberID string    `json:"member_id"`
}

type CustomerView struct {
	ID            uuid.UUID        `json:"id"`
	CurrentStamps int32            `json:"current_stamps"`
	User          CustomerUserView `json:"user"`
}

type VoucherCustomerView struct {
	ID   uuid.UUID `json:"id"`
	User struct {
		Name     string `json:"name"`
		MemberID string `json:"member_id"`
	} `json:"user"`
}

type VoucherView struct {
	ID         uuid.UUID           `json:"id"`
	Code       string              `json:"code"`
	StampsUsed int32               `json:"stamps_used"`
	ExpiresAt  time.Time           `json:"expires_at"`
	Customer   VoucherCustomerView `json:"customer"`
}

type TransactionReportRow struct {
	ID           uuid.UUID `json:"id"`
	MemberID     string    `json:"member_id"`
	CustomerName string    `json:"customer_name"`
	CashierEmail string    `json:"cashier_email"`
	LocationName string    `json:"location_name"`
	AmountCents  int64     `json:"amount_cents"`
	StampsEarned int32     `json:"stamps_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

type RedemptionReportRow struct {
	ID           uuid.UUID `json:"id"`
	VoucherCode  string    `json:"voucher_code"`
	MemberID     string    `json:"member_id"`
	CustomerName string    `json:"customer_name"`
	CashierEmail string    `json:"cashier_email"`
	LocationName string    `json:"location_name"`
	StampsUsed   int32     `json:"stamps_used"`
	RedeemedAt   time.Time `json:"redeemed_at"`
}

type AuthorizedUserView struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	LocationID *uuid.UUID `json:"location_id,omitempty"`
	IsActive   bool       `json:"is_active"`
}
