package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveStampsUsed = errors.New("stamps used must be positive")
	ErrNotRedeemable         = errors.New("voucher is not redeemable")
	ErrTerminalStatus        = errors.New("voucher status is terminal")
)

type Status string

const (
	StatusActive  Status = "active"
	StatusUsed    Status = "used"
	StatusExpired Status = "expired"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusUsed, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusUsed || s == StatusExpired
}

// Voucher is a single-use credential minted from spent stamps. The status
// machine is one-directional: active -> used, or active -> expired. A
// voucher past expiresAt is unredeemable regardless of stored status;
// expiry is a property of the clock, not of the row.
type Voucher struct {
	id                 uuid.UUID
	code               Code
	customerID         uuid.UUID
	stampsUsed         int32
	status             Status
	expiresAt          time.Time
	redeemedAt         *time.Time
	redeemedLocationID *uuid.UUID
	createdAt          time.Time
	updatedAt          time.Time
}

func NewVoucher(code Code, customerID uuid.UUID, stampsUsed int32, now time.Time, validity time.Duration) (*Voucher, error) {
	if stampsUsed <= 0 {
		return nil, ErrNonPositiveStampsUsed
	}
	return &Voucher{
		id:         uuid.New(),
		code:       code,
		customerID: customerID,
		stampsUsed: stampsUsed,
		status:     StatusActive,
		expiresAt:  now.Add(validity),
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	code Code,
	customerID uuid.UUID,
	stampsUsed int32,
	status Status,
	expiresAt time.Time,
	redeemedAt *time.Time,
	redeemedLocationID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Voucher {
	return &Voucher{
		id:                 id,
		code:               code,
		customerID:         customerID,
		stampsUsed:         stampsUsed,
		status:             status,
		expiresAt:          expiresAt,
		redeemedAt:         redeemedAt,
		redeemedLocationID: redeemedLocationID,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// IsRedeemable evaluates expiry at read time: an active voucher past its
// expiry is not redeemable even before the sweep job has marked it.
func (v *Voucher) IsRedeemable(now time.Time) bool {
	return v.status == StatusActive && !v.HasExpired(now)
}

func (v *Voucher) HasExpired(now time.Time) bool {
	return !now.Before(v.expiresAt)
}

// MarkUsed transitions active -> used. Terminal states never transition.
func (v *Voucher) MarkUsed(now time.Time, locationID uuid.UUID) error {
	if v.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if !v.IsRedeemable(now) {
		return ErrNotRedeemable
	}
	v.status = StatusUsed
	v.redeemedAt = &now
	v.redeemedLocationID = &locationID
	return nil
}

func (v *Voucher) ID() uuid.UUID                  { return v.id }
func (v *Voucher) Code() Code                     { return v.code }
func (v *Voucher) CustomerID() uuid.UUID          { return v.customerID }
func (v *Voucher) StampsUsed() int32              { return v.stampsUsed }
func (v *Voucher) Status() Status                 { return v.status }
func (v *Voucher) ExpiresAt() time.Time           { return v.expiresAt }
func (v *Voucher) RedeemedAt() *time.Time         { return v.redeemedAt }
func (v *Voucher) RedeemedLocationID() *uuid.UUID { return v.redeemedLocationID }
func (v *Voucher) CreatedAt() time.Time           { return v.createdAt }
func (v *Voucher) UpdatedAt() time.Time           { return v.updatedAt }
