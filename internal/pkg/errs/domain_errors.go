package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Lookup errors (expected outcomes, callers branch on these)
	ErrCustomerNotFound = errors.New("customer not found")
	ErrVoucherNotFound  = errors.New("voucher not found")

	// Ledger errors
	ErrBelowMinimumAmount = errors.New("purchase amount below minimum")
	ErrInsufficientStamps = errors.New("insufficient stamp balance")

	// Staff management errors
	ErrEmailAlreadyUsed = errors.New("email already used")

	// Redemption errors
	ErrVoucherInvalidOrExpired = errors.New("voucher invalid or expired")
	ErrAlreadyRedeemed         = errors.New("voucher already redeemed")

	// Infrastructure errors
	ErrPersistenceConflict = errors.New("persistence conflict") // retryable
	ErrInvariantViolation  = errors.New("ledger invariant violation")
)
