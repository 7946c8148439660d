package commands

import (
	"context"
	"errors"
	"time"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/voucher"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/pkg/clock"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type RedeemVoucherInput struct {
	Code       string
	CashierID  uuid.UUID
	LocationID uuid.UUID
}

type RedemptionResult struct {
	RedemptionID uuid.UUID
	VoucherID    uuid.UUID
	CustomerID   uuid.UUID
	StampsUsed   int32
	RedeemedAt   time.Time
}

type RedemptionCommands interface {
	// RedeemVoucher consumes an active voucher exactly once. Concurrent
	// attempts race on a compare-and-swap; exactly one wins, the rest see
	// ErrAlreadyRedeemed.
	RedeemVoucher(ctx context.Context, input RedeemVoucherInput) (*RedemptionResult, error)
}

type redemptionCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRedemptionCommands(uow shared.UnitOfWork, clk clock.Clock) RedemptionCommands {
	return &redemptionCommandsImpl{uow: uow, clock: clk}
}

func (c *redemptionCommandsImpl) RedeemVoucher(ctx context.Context, input RedeemVoucherInput) (*RedemptionResult, error) {
	if _, err := voucher.NewCode(input.Code); err != nil {
		return nil, errs.ErrVoucherNotFound
	}

	now := c.clock.Now()
	var result *RedemptionResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Vouchers().FindByCode(ctx, input.Code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrVoucherNotFound
			}
			return errs.Wrap(err, "failed to load voucher")
		}

		v, err := voucherFromSnapshot(snap)
		if err != nil {
			return err
		}
		if err := v.MarkUsed(now, input.LocationID); err != nil {
			return redeemRejection(v, err)
		}

		// The aggregate approved the transition; the compare-and-swap makes
		// it stick exactly once against concurrent attempts.
		redeemed, err := tx.Vouchers().Redeem(ctx, input.Code, now, input.LocationID)
		if err != nil {
			return errs.Wrap(err, "failed to redeem voucher")
		}
		if redeemed == nil {
			// Lost the swap to a redemption that landed after our read.
			return errs.ErrAlreadyRedeemed
		}

		rec := ledger.NewRedemption(redeemed.ID, redeemed.CustomerID, input.CashierID, input.LocationID, now)
		if err := tx.Redemptions().Create(ctx, rec); err != nil {
			return errs.Wrap(err, "failed to record redemption")
		}

		result = &RedemptionResult{
			RedemptionID: rec.ID,
			VoucherID:    redeemed.ID,
			CustomerID:   redeemed.CustomerID,
			StampsUsed:   redeemed.StampsUsed,
			RedeemedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// voucherFromSnapshot rehydrates the aggregate from a stored row. The
// snapshot omits audit columns the write side never reads back.
func voucherFromSnapshot(snap *shared.VoucherSnapshot) (*voucher.Voucher, error) {
	code, err := voucher.NewCode(snap.Code)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "stored voucher code is malformed"), errs.ErrInvariantViolation)
	}
	status := voucher.Status(snap.Status)
	if !status.IsValid() {
		return nil, errs.Mark(errs.New("stored voucher status is unknown"), errs.ErrInvariantViolation)
	}
	return voucher.Reconstruct(
		snap.ID, code, snap.CustomerID, snap.StampsUsed,
		status, snap.ExpiresAt, snap.RedeemedAt, nil,
		time.Time{}, time.Time{},
	), nil
}

// redeemRejection translates a refused transition into the caller-facing
// outcome: a used voucher was already redeemed, everything else is invalid
// or expired.
func redeemRejection(v *voucher.Voucher, err error) error {
	switch {
	case errors.Is(err, voucher.ErrTerminalStatus):
		if v.Status() == voucher.StatusUsed {
			return errs.ErrAlreadyRedeemed
		}
		return errs.ErrVoucherInvalidOrExpired
	case errors.Is(err, voucher.ErrNotRedeemable):
		return errs.ErrVoucherInvalidOrExpired
	default:
		return err
	}
}
