//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/pkg/clock"
	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/commands"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() config.LoyaltyConfig {
	return config.LoyaltyConfig{
		MinPurchaseAmountCents: 15000,
		StampsPerPurchase:      1,
		StampsPerVoucher:       5,
		VoucherValidity:        720 * time.Hour,
		SweepInterval:          time.Hour,
	}
}

func TestLedgerCommands_RecordPurchase(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cashierID := uuid.New()
	locationID := uuid.New()

	t.Run("credits one stamp for a qualifying amount", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("M-001", 0)
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		result, err := cmd.RecordPurchase(ctx, commands.RecordPurchaseInput{
			MemberID:    "M-001",
			AmountCents: 15000,
			CashierID:   cashierID,
			LocationID:  locationID,
		})
		require.NoError(t, err)

		want := &commands.PurchaseResult{
			CustomerID:   customerID,
			StampsEarned: 1,
			NewBalance:   1,
			CreatedAt:    now,
		}
		if diff := cmp.Diff(want, result, cmpopts.IgnoreFields(commands.PurchaseResult{}, "TransactionID")); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
		assert.Equal(t, 1, store.transactionCount())
	})

	t.Run("below the threshold writes nothing", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("M-001", 3)
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		_, err := cmd.RecordPurchase(ctx, commands.RecordPurchaseInput{
			MemberID:    "M-001",
			AmountCents: 14999,
			CashierID:   cashierID,
			LocationID:  locationID,
		})

		assert.ErrorIs(t, err, errs.ErrBelowMinimumAmount)
		assert.Equal(t, int32(3), store.customerBalance(customerID))
		assert.Equal(t, 0, store.transactionCount())
	})

	t.Run("unknown member", func(t *testing.T) {
		store := newFakeStore()
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		_, err := cmd.RecordPurchase(ctx, commands.RecordPurchaseInput{
			MemberID:    "M-404",
			AmountCents: 20000,
			CashierID:   cashierID,
			LocationID:  locationID,
		})

		assert.ErrorIs(t, err, errs.ErrCustomerNotFound)
		assert.Equal(t, 0, store.transactionCount())
	})

	t.Run("failed transaction insert leaves no partial state", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("M-001", 0)
		store.transactionCreateErr = infra.WrapRepoErr("insert failed", nil, infra.KindDBFailure)
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		_, err := cmd.RecordPurchase(ctx, commands.RecordPurchaseInput{
			MemberID:    "M-001",
			AmountCents: 15000,
			CashierID:   cashierID,
			LocationID:  locationID,
		})

		require.Error(t, err)
		// The earn was applied before the insert failed; the rollback must
		// take it back with the rest of the transaction.
		assert.Equal(t, int32(0), store.customerBalance(customerID))
		assert.Equal(t, 0, store.transactionCount())
	})

	t.Run("check constraint trip surfaces as an invariant violation", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("M-001", 0)
		store.earnErr = infra.WrapRepoErr("counters out of balance", nil, infra.KindCheckViolated)
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		_, err := cmd.RecordPurchase(ctx, commands.RecordPurchaseInput{
			MemberID:    "M-001",
			AmountCents: 15000,
			CashierID:   cashierID,
			LocationID:  locationID,
		})

		assert.ErrorIs(t, err, errs.ErrInvariantViolation)
		assert.Equal(t, int32(0), store.customerBalance(customerID))
		assert.Equal(t, 0, store.transactionCount())
	})

	t.Run("corrupt stored counters abort the purchase", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("M-001", 3)
		store.customers[customerID].totalEarned = 99
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		_, err := cmd.RecordPurchase(ctx, commands.RecordPurchaseInput{
			MemberID:    "M-001",
			AmountCents: 15000,
			CashierID:   cashierID,
			LocationID:  locationID,
		})

		assert.ErrorIs(t, err, errs.ErrInvariantViolation)
		assert.Equal(t, 0, store.transactionCount())
	})

	t.Run("five qualifying purchases reach the exchange threshold", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("M-001", 0)
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		for i := 0; i < 5; i++ {
			_, err := cmd.RecordPurchase(ctx, commands.RecordPurchaseInput{
				MemberID:    "M-001",
				AmountCents: 15000,
				CashierID:   cashierID,
				LocationID:  locationID,
			})
			require.NoError(t, err)
		}

		assert.Equal(t, int32(5), store.customerBalance(customerID))
		assert.Equal(t, 5, store.transactionCount())
	})
}

func TestLedgerCommands_ExchangeStamps(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cashierID := uuid.New()
	locationID := uuid.New()

	t.Run("debits the stamp cost and mints an active voucher", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("M-001", 7)
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		result, err := cmd.ExchangeStamps(ctx, commands.ExchangeStampsInput{
			MemberID:   "M-001",
			CashierID:  cashierID,
			LocationID: locationID,
		})
		require.NoError(t, err)

		assert.Len(t, result.Code, 12)
		assert.Equal(t, int32(5), result.StampsUsed)
		assert.Equal(t, int32(2), result.NewBalance)
		assert.Equal(t, now.Add(720*time.Hour), result.ExpiresAt)
		assert.Equal(t, int32(2), store.customerBalance(customerID))
	})

	t.Run("insufficient balance mints nothing", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("M-001", 4)
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		_, err := cmd.ExchangeStamps(ctx, commands.ExchangeStampsInput{
			MemberID:   "M-001",
			CashierID:  cashierID,
			LocationID: locationID,
		})

		assert.ErrorIs(t, err, errs.ErrInsufficientStamps)
		assert.Equal(t, int32(4), store.customerBalance(customerID))
		assert.Empty(t, store.vouchers)
	})

	t.Run("failed voucher insert rolls the debit back", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("M-001", 7)
		store.voucherCreateErr = infra.WrapRepoErr("insert failed", nil, infra.KindDBFailure)
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		_, err := cmd.ExchangeStamps(ctx, commands.ExchangeStampsInput{
			MemberID:   "M-001",
			CashierID:  cashierID,
			LocationID: locationID,
		})

		require.Error(t, err)
		assert.Equal(t, int32(7), store.customerBalance(customerID))
		assert.Empty(t, store.vouchers)
	})

	t.Run("concurrent exchanges never overdraw the balance", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("M-001", 12)
		cmd := commands.NewLedgerCommands(&fakeUow{store: store}, clock.NewMockClock(now), testPolicy())

		const attempts = 10
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			go func() {
				_, err := cmd.ExchangeStamps(ctx, commands.ExchangeStampsInput{
					MemberID:   "M-001",
					CashierID:  cashierID,
					LocationID: locationID,
				})
				results <- err
			}()
		}

		var succeeded, insufficient int
		for i := 0; i < attempts; i++ {
			switch err := <-results; {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, errs.ErrInsufficientStamps):
				insufficient++
			}
		}

		// 12 stamps fund exactly two vouchers.
		assert.Equal(t, 2, succeeded)
		assert.Equal(t, attempts-2, insufficient)
		assert.Equal(t, int32(2), store.customerBalance(customerID))
	})
}
