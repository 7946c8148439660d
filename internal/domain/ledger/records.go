// Package ledger holds the append-only records of the loyalty ledger.
// Transaction and Redemption rows are written exactly once and never
// mutated; they are the audit trail behind the customer counters.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrNegativeStampsEarned = errors.New("stamps earned cannot be negative")
)

// Transaction is one purchase event.
type Transaction struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	CashierID    uuid.UUID
	LocationID   uuid.UUID
	AmountCents  int64
	StampsEarned int32
	CreatedAt    time.Time
}

func NewTransaction(customerID, cashierID, locationID uuid.UUID, amountCents int64, stampsEarned int32, at time.Time) (*Transaction, error) {
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}
	if stampsEarned < 0 {
		return nil, ErrNegativeStampsEarned
	}
	return &Transaction{
		ID:           uuid.New(),
		CustomerID:   customerID,
		CashierID:    cashierID,
		LocationID:   locationID,
		AmountCents:  amountCents,
		StampsEarned: stampsEarned,
		CreatedAt:    at,
	}, nil
}

// Redemption is the durable proof that a voucher was consumed in-store.
// Exactly one exists per used voucher.
type Redemption struct {
	ID         uuid.UUID
	VoucherID  uuid.UUID
	CustomerID uuid.UUID
	CashierID  uuid.UUID
	LocationID uuid.UUID
	RedeemedAt time.Time
}

func NewRedemption(voucherID, customerID, cashierID, locationID uuid.UUID, at time.Time) *Redemption {
	return &Redemption{
		ID:         uuid.New(),
		VoucherID:  voucherID,
		CustomerID: customerID,
		CashierID:  cashierID,
		LocationID: locationID,
		RedeemedAt: at,
	}
}
