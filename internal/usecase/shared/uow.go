package shared

import (
	"context"
	"time"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/user"
	"loyalty-ledger/internal/domain/voucher"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Customers() CustomerRepository
	Transactions() TransactionRepository
	Vouchers() VoucherRepository
	Redemptions() RedemptionRepository
	Users() UserRepository
}

type CustomerRepository interface {
	// FindByMemberID resolves the canonical customer row inside the
	// transaction. Inactive customers resolve like missing ones.
	FindByMemberID(ctx context.Context, memberID string) (*CustomerSnapshot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerSnapshot, error)
	// ApplyEarn increments current_stamps and total_stamps_earned in a
	// single UPDATE; the row lock serializes concurrent earns.
	ApplyEarn(ctx context.Context, customerID uuid.UUID, stamps int32, at time.Time) (int32, error)
	// ApplySpend conditionally decrements the balance, guarded by
	// current_stamps >= stamps. Returns false when the guard fails.
	ApplySpend(ctx context.Context, customerID uuid.UUID, stamps int32) (int32, bool, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, t *ledger.Transaction) error
}

type VoucherRepository interface {
	Create(ctx context.Context, v *voucher.Voucher) error
	// Redeem is the compare-and-swap transition active -> used, guarded by
	// status = 'active' AND expires_at > now. Returns nil when the swap
	// did not apply (missing, expired, or already used).
	Redeem(ctx context.Context, code string, now time.Time, locationID uuid.UUID) (*RedeemedVoucher, error)
	FindByCode(ctx context.Context, code string) (*VoucherSnapshot, error)
	// ExpireDue flips active vouchers past expires_at to expired.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

type RedemptionRepository interface {
	Create(ctx context.Context, r *ledger.Redemption) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

// Minimal write-side snapshots (CQRS separation from read views)
type CustomerSnapshot struct {
	ID            uuid.UUID
	MemberID      string
	Name          string
	CurrentStamps int32
	TotalEarned   int32
	TotalUsed     int32
	IsActive      bool
}

type VoucherSnapshot struct {
	ID         uuid.UUID
	Code       string
	CustomerID uuid.UUID
	StampsUsed int32
	Status     string
	ExpiresAt  time.Time
	RedeemedAt *time.Time
}

// RedeemedVoucher is what the CAS returns on success.
type RedeemedVoucher struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	StampsUsed int32
}
