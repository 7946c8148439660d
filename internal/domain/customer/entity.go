package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInsufficientStamps = errors.New("insufficient stamp balance")
	ErrNonPositiveStamps  = errors.New("stamp count must be positive")
	ErrBalanceInvariant   = errors.New("stamp balance invariant broken")
)

// Customer owns the running stamp balance. The balance counters obey
// totalEarned - totalUsed == currentStamps and currentStamps >= 0 at all
// times; Earn and Spend are the only mutations.
type Customer struct {
	id                uuid.UUID
	memberID          MemberID
	name              Name
	currentStamps     int32
	totalEarned       int32
	totalUsed         int32
	lastTransactionAt *time.Time
	isActive          bool
	createdAt         time.Time
	updatedAt         time.Time
}

func Reconstruct(
	id uuid.UUID,
	memberID MemberID,
	name Name,
	currentStamps, totalEarned, totalUsed int32,
	lastTransactionAt *time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Customer, error) {
	c := &Customer{
		id:                id,
		memberID:          memberID,
		name:              name,
		currentStamps:     currentStamps,
		totalEarned:       totalEarned,
		totalUsed:         totalUsed,
		lastTransactionAt: lastTransactionAt,
		isActive:          isActive,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
	if err := c.checkInvariant(); err != nil {
		return nil, err
	}
	return c, nil
}

// Earn credits stamps for a qualifying purchase.
func (c *Customer) Earn(stamps int32, at time.Time) error {
	if stamps <= 0 {
		return ErrNonPositiveStamps
	}
	c.currentStamps += stamps
	c.totalEarned += stamps
	c.lastTransactionAt = &at
	return c.checkInvariant()
}

// Spend debits stamps for a voucher exchange. The balance never goes
// negative; a spend above the current balance fails with no mutation.
func (c *Customer) Spend(stamps int32) error {
	if stamps <= 0 {
		return ErrNonPositiveStamps
	}
	if !c.CanSpend(stamps) {
		return ErrInsufficientStamps
	}
	c.currentStamps -= stamps
	c.totalUsed += stamps
	return c.checkInvariant()
}

func (c *Customer) CanSpend(stamps int32) bool {
	return stamps > 0 && c.currentStamps >= stamps
}

func (c *Customer) checkInvariant() error {
	if c.currentStamps < 0 || c.totalEarned-c.totalUsed != c.currentStamps {
		return ErrBalanceInvariant
	}
	return nil
}

func (c *Customer) ID() uuid.UUID                 { return c.id }
func (c *Customer) MemberID() MemberID            { return c.memberID }
func (c *Customer) Name() Name                    { return c.name }
func (c *Customer) CurrentStamps() int32          { return c.currentStamps }
func (c *Customer) TotalEarned() int32            { return c.totalEarned }
func (c *Customer) TotalUsed() int32              { return c.totalUsed }
func (c *Customer) LastTransactionAt() *time.Time { return c.lastTransactionAt }
func (c *Customer) IsActive() bool                { return c.isActive }
func (c *Customer) CreatedAt() time.Time          { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time          { return c.updatedAt }
