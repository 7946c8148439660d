package commands

import (
	"context"
	"errors"
	"time"

	"loyalty-ledger/internal/domain/customer"
	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/voucher"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/pkg/clock"
	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

// maxCodeMintAttempts bounds the regenerate-on-collision loop when a
// freshly generated voucher code hits the unique constraint.
const maxCodeMintAttempts = 3

type RecordPurchaseInput struct {
	MemberID    string
	AmountCents int64
	CashierID   uuid.UUID
	LocationID  uuid.UUID
}

type PurchaseResult struct {
	TransactionID uuid.UUID
	CustomerID    uuid.UUID
	StampsEarned  int32
	NewBalance    int32
	CreatedAt     time.Time
}

type ExchangeStampsInput struct {
	MemberID   string
	CashierID  uuid.UUID
	LocationID uuid.UUID
}

type ExchangeResult struct {
	VoucherID  uuid.UUID
	Code       string
	StampsUsed int32
	NewBalance int32
	ExpiresAt  time.Time
}

type LedgerCommands interface {
	// RecordPurchase appends a purchase to the ledger and credits stamps
	// when the amount clears the accrual threshold. Below the threshold
	// nothing is written.
	RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*PurchaseResult, error)
	// ExchangeStamps debits the configured stamp cost and mints an active
	// voucher, atomically. A failed debit mints nothing.
	ExchangeStamps(ctx context.Context, input ExchangeStampsInput) (*ExchangeResult, error)
}

type ledgerCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy config.LoyaltyConfig
}

func NewLedgerCommands(uow shared.UnitOfWork, clk clock.Clock, policy config.LoyaltyConfig) LedgerCommands {
	return &ledgerCommandsImpl{uow: uow, clock: clk, policy: policy}
}

func (c *ledgerCommandsImpl) RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*PurchaseResult, error) {
	if input.AmountCents < c.policy.MinPurchaseAmountCents {
		return nil, errs.ErrBelowMinimumAmount
	}

	now := c.clock.Now()
	var result *PurchaseResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cust, err := findCustomer(ctx, tx, input.MemberID)
		if err != nil {
			return err
		}

		// The aggregate validates the credit; the single UPDATE below makes
		// it durable against concurrent earns.
		if err := cust.Earn(c.policy.StampsPerPurchase, now); err != nil {
			return errs.Wrap(err, "stamp credit rejected")
		}

		newBalance, err := tx.Customers().ApplyEarn(ctx, cust.ID(), c.policy.StampsPerPurchase, now)
		if err != nil {
			return persistErr(err, "failed to credit stamps")
		}

		t, err := ledger.NewTransaction(
			cust.ID(), input.CashierID, input.LocationID,
			input.AmountCents, c.policy.StampsPerPurchase, now,
		)
		if err != nil {
			return err
		}
		if err := tx.Transactions().Create(ctx, t); err != nil {
			return persistErr(err, "failed to record purchase")
		}

		result = &PurchaseResult{
			TransactionID: t.ID,
			CustomerID:    cust.ID(),
			StampsEarned:  t.StampsEarned,
			NewBalance:    newBalance,
			CreatedAt:     t.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *ledgerCommandsImpl) ExchangeStamps(ctx context.Context, input ExchangeStampsInput) (*ExchangeResult, error) {
	now := c.clock.Now()
	var result *ExchangeResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cust, err := findCustomer(ctx, tx, input.MemberID)
		if err != nil {
			return err
		}

		if err := cust.Spend(c.policy.StampsPerVoucher); err != nil {
			if errors.Is(err, customer.ErrInsufficientStamps) {
				return errs.ErrInsufficientStamps
			}
			return errs.Wrap(err, "stamp debit rejected")
		}

		newBalance, ok, err := tx.Customers().ApplySpend(ctx, cust.ID(), c.policy.StampsPerVoucher)
		if err != nil {
			return persistErr(err, "failed to debit stamps")
		}
		if !ok {
			// A concurrent exchange drained the balance after our read.
			return errs.ErrInsufficientStamps
		}

		v, err := mintVoucher(ctx, tx, cust.ID(), c.policy.StampsPerVoucher, now, c.policy.VoucherValidity)
		if err != nil {
			return err
		}

		result = &ExchangeResult{
			VoucherID:  v.ID(),
			Code:       v.Code().String(),
			StampsUsed: v.StampsUsed(),
			NewBalance: newBalance,
			ExpiresAt:  v.ExpiresAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func findCustomer(ctx context.Context, tx shared.Tx, memberID string) (*customer.Customer, error) {
	snap, err := tx.Customers().FindByMemberID(ctx, memberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCustomerNotFound
		}
		return nil, err
	}
	return customerFromSnapshot(snap)
}

// customerFromSnapshot rehydrates the aggregate from a stored row. A row
// that fails value-object or balance validation is corrupt, not a caller
// mistake, so it surfaces as ErrInvariantViolation.
func customerFromSnapshot(snap *shared.CustomerSnapshot) (*customer.Customer, error) {
	memberID, err := customer.NewMemberID(snap.MemberID)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "stored member ID is malformed"), errs.ErrInvariantViolation)
	}
	name, err := customer.NewName(snap.Name)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "stored customer name is malformed"), errs.ErrInvariantViolation)
	}
	c, err := customer.Reconstruct(
		snap.ID, memberID, name,
		snap.CurrentStamps, snap.TotalEarned, snap.TotalUsed,
		nil, snap.IsActive, time.Time{}, time.Time{},
	)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "stored balance counters are inconsistent"), errs.ErrInvariantViolation)
	}
	return c, nil
}

// persistErr wraps a repository failure, marking check-constraint trips as
// invariant violations: the database refused counters the ledger must never
// hold.
func persistErr(err error, msg string) error {
	if infra.IsKind(err, infra.KindCheckViolated) {
		return errs.Mark(errs.Wrap(err, msg), errs.ErrInvariantViolation)
	}
	return errs.Wrap(err, msg)
}

// mintVoucher inserts a voucher with a fresh code, regenerating on the
// (astronomically rare) unique-constraint collision.
func mintVoucher(ctx context.Context, tx shared.Tx, customerID uuid.UUID, stampsUsed int32, now time.Time, validity time.Duration) (*voucher.Voucher, error) {
	var lastErr error
	for range maxCodeMintAttempts {
		code, err := voucher.GenerateCode()
		if err != nil {
			return nil, errs.Wrap(err, "failed to generate voucher code")
		}
		v, err := voucher.NewVoucher(code, customerID, stampsUsed, now, validity)
		if err != nil {
			return nil, err
		}
		if err := tx.Vouchers().Create(ctx, v); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				lastErr = err
				continue
			}
			return nil, errs.Wrap(err, "failed to create voucher")
		}
		return v, nil
	}
	return nil, errs.Wrap(lastErr, "exhausted voucher code attempts")
}
