//go:build unit

package voucher_test

import (
	"testing"
	"time"

	"loyalty-ledger/internal/domain/voucher"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validity = 720 * time.Hour

func mustVoucher(t *testing.T, now time.Time) *voucher.Voucher {
	t.Helper()
	code, err := voucher.GenerateCode()
	require.NoError(t, err)
	v, err := voucher.NewVoucher(code, uuid.New(), 5, now, validity)
	require.NoError(t, err)
	return v
}

func TestNewVoucher(t *testing.T) {
	now := time.Now()

	t.Run("starts active with expiry derived from validity", func(t *testing.T) {
		v := mustVoucher(t, now)

		assert.Equal(t, voucher.StatusActive, v.Status())
		assert.Equal(t, now.Add(validity), v.ExpiresAt())
		assert.Nil(t, v.RedeemedAt())
		assert.Nil(t, v.RedeemedLocationID())
	})

	t.Run("rejects non-positive stamp cost", func(t *testing.T) {
		code, err := voucher.GenerateCode()
		require.NoError(t, err)

		_, err = voucher.NewVoucher(code, uuid.New(), 0, now, validity)
		assert.ErrorIs(t, err, voucher.ErrNonPositiveStampsUsed)
	})
}

func TestVoucher_IsRedeemable(t *testing.T) {
	now := time.Now()
	v := mustVoucher(t, now)

	t.Run("active and before expiry", func(t *testing.T) {
		assert.True(t, v.IsRedeemable(now))
		assert.True(t, v.IsRedeemable(now.Add(validity-time.Second)))
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		assert.False(t, v.IsRedeemable(now.Add(validity)))
		assert.False(t, v.IsRedeemable(now.Add(validity+time.Second)))
	})

	t.Run("stale active row past expiry is unredeemable", func(t *testing.T) {
		// Status still says active; the clock alone disqualifies it.
		assert.Equal(t, voucher.StatusActive, v.Status())
		assert.True(t, v.HasExpired(now.Add(validity)))
		assert.False(t, v.IsRedeemable(now.Add(validity)))
	})
}

func TestVoucher_MarkUsed(t *testing.T) {
	now := time.Now()
	locationID := uuid.New()

	t.Run("transitions active to used exactly once", func(t *testing.T) {
		v := mustVoucher(t, now)

		require.NoError(t, v.MarkUsed(now.Add(time.Hour), locationID))

		assert.Equal(t, voucher.StatusUsed, v.Status())
		require.NotNil(t, v.RedeemedAt())
		assert.Equal(t, now.Add(time.Hour), *v.RedeemedAt())
		require.NotNil(t, v.RedeemedLocationID())
		assert.Equal(t, locationID, *v.RedeemedLocationID())

		err := v.MarkUsed(now.Add(2*time.Hour), locationID)
		assert.ErrorIs(t, err, voucher.ErrTerminalStatus)
	})

	t.Run("rejects expired voucher", func(t *testing.T) {
		v := mustVoucher(t, now)

		err := v.MarkUsed(now.Add(validity), locationID)

		assert.ErrorIs(t, err, voucher.ErrNotRedeemable)
		assert.Equal(t, voucher.StatusActive, v.Status())
	})

	t.Run("terminal statuses never transition", func(t *testing.T) {
		code, err := voucher.GenerateCode()
		require.NoError(t, err)
		v := voucher.Reconstruct(
			uuid.New(), code, uuid.New(), 5,
			voucher.StatusExpired, now.Add(validity), nil, nil, now, now,
		)

		assert.ErrorIs(t, v.MarkUsed(now, locationID), voucher.ErrTerminalStatus)
	})
}

func TestStatus(t *testing.T) {
	assert.True(t, voucher.StatusActive.IsValid())
	assert.True(t, voucher.StatusUsed.IsValid())
	assert.True(t, voucher.StatusExpired.IsValid())
	assert.False(t, voucher.Status("refunded").IsValid())

	assert.False(t, voucher.StatusActive.IsTerminal())
	assert.True(t, voucher.StatusUsed.IsTerminal())
	assert.True(t, voucher.StatusExpired.IsTerminal())
}
