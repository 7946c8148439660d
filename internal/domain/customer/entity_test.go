//go:build unit

package customer_test

import (
	"testing"
	"time"

	"loyalty-ledger/internal/domain/customer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	memberID, err := customer.NewMemberID("M-000123")
	require.NoError(t, err)
	name, err := customer.NewName("Taro Yamada")
	require.NoError(t, err)
	now := time.Now()
	c, err := customer.Reconstruct(uuid.New(), memberID, name, 0, 0, 0, nil, true, now, now)
	require.NoError(t, err)
	return c
}

func TestCustomer_Earn(t *testing.T) {
	now := time.Now()

	t.Run("credits balance and lifetime counter together", func(t *testing.T) {
		c := mustCustomer(t)

		require.NoError(t, c.Earn(1, now))
		require.NoError(t, c.Earn(3, now))

		assert.Equal(t, int32(4), c.CurrentStamps())
		assert.Equal(t, int32(4), c.TotalEarned())
		assert.Equal(t, int32(0), c.TotalUsed())
		require.NotNil(t, c.LastTransactionAt())
		assert.Equal(t, now, *c.LastTransactionAt())
	})

	t.Run("rejects non-positive stamps", func(t *testing.T) {
		c := mustCustomer(t)

		assert.ErrorIs(t, c.Earn(0, now), customer.ErrNonPositiveStamps)
		assert.ErrorIs(t, c.Earn(-1, now), customer.ErrNonPositiveStamps)
		assert.Equal(t, int32(0), c.CurrentStamps())
	})
}

func TestCustomer_Spend(t *testing.T) {
	now := time.Now()

	t.Run("debits balance without touching totalEarned", func(t *testing.T) {
		c := mustCustomer(t)
		require.NoError(t, c.Earn(5, now))

		require.NoError(t, c.Spend(5))

		assert.Equal(t, int32(0), c.CurrentStamps())
		assert.Equal(t, int32(5), c.TotalEarned())
		assert.Equal(t, int32(5), c.TotalUsed())
	})

	t.Run("never goes negative", func(t *testing.T) {
		c := mustCustomer(t)
		require.NoError(t, c.Earn(4, now))

		err := c.Spend(5)

		assert.ErrorIs(t, err, customer.ErrInsufficientStamps)
		assert.Equal(t, int32(4), c.CurrentStamps())
		assert.Equal(t, int32(0), c.TotalUsed())
	})

	t.Run("rejects non-positive stamps", func(t *testing.T) {
		c := mustCustomer(t)
		require.NoError(t, c.Earn(5, now))

		assert.ErrorIs(t, c.Spend(0), customer.ErrNonPositiveStamps)
		assert.Equal(t, int32(5), c.CurrentStamps())
	})
}

func TestCustomer_BalanceInvariant(t *testing.T) {
	now := time.Now()

	t.Run("holds across interleaved earns and spends", func(t *testing.T) {
		c := mustCustomer(t)

		steps := []struct {
			earn  int32
			spend int32
		}{
			{earn: 1}, {earn: 1}, {earn: 1}, {earn: 1}, {earn: 1},
			{spend: 5},
			{earn: 2}, {earn: 3},
			{spend: 5},
			{earn: 1},
		}
		for _, s := range steps {
			if s.earn > 0 {
				require.NoError(t, c.Earn(s.earn, now))
			}
			if s.spend > 0 {
				require.NoError(t, c.Spend(s.spend))
			}
			assert.Equal(t, c.CurrentStamps(), c.TotalEarned()-c.TotalUsed())
			assert.GreaterOrEqual(t, c.CurrentStamps(), int32(0))
		}

		assert.Equal(t, int32(1), c.CurrentStamps())
		assert.Equal(t, int32(10), c.TotalEarned())
		assert.Equal(t, int32(9), c.TotalUsed())
	})
}

func TestCustomer_CanSpend(t *testing.T) {
	c := mustCustomer(t)
	require.NoError(t, c.Earn(5, time.Now()))

	assert.True(t, c.CanSpend(5))
	assert.False(t, c.CanSpend(6))
	assert.False(t, c.CanSpend(0))
	assert.False(t, c.CanSpend(-1))
}

func TestReconstruct(t *testing.T) {
	memberID, err := customer.NewMemberID("M-000123")
	require.NoError(t, err)
	name, err := customer.NewName("Taro Yamada")
	require.NoError(t, err)
	now := time.Now()

	t.Run("accepts balanced counters", func(t *testing.T) {
		c, err := customer.Reconstruct(uuid.New(), memberID, name, 2, 7, 5, nil, true, now, now)
		require.NoError(t, err)
		assert.Equal(t, int32(2), c.CurrentStamps())
	})

	t.Run("rejects unbalanced counters", func(t *testing.T) {
		_, err := customer.Reconstruct(uuid.New(), memberID, name, 3, 7, 5, nil, true, now, now)
		assert.ErrorIs(t, err, customer.ErrBalanceInvariant)
	})

	t.Run("rejects negative balance", func(t *testing.T) {
		_, err := customer.Reconstruct(uuid.New(), memberID, name, -1, 4, 5, nil, true, now, now)
		assert.ErrorIs(t, err, customer.ErrBalanceInvariant)
	})
}
