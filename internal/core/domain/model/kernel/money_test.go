package kernel_test

import (
	"testing"

	"forwarding/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money with explicit currency", func(t *testing.T) {
		m, err := kernel.NewMoney(42.5, "EUR")

		require.NoError(t, err)
		assert.InDelta(t, 42.5, m.Amount(), 0.0001)
		assert.Equal(t, "EUR", m.Currency())
	})

	t.Run("should default to USD", func(t *testing.T) {
		m, err := kernel.NewMoney(10, "")

		require.NoError(t, err)
		assert.Equal(t, kernel.DefaultCurrency, m.Currency())
	})

	t.Run("should allow zero amount", func(t *testing.T) {
		m, err := kernel.NewMoney(0, "USD")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1, "USD")
		require.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("should add amounts in the same currency", func(t *testing.T) {
		a, _ := kernel.NewMoney(10, "USD")
		b, _ := kernel.NewMoney(5.5, "USD")

		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.InDelta(t, 15.5, sum.Amount(), 0.0001)
	})

	t.Run("should reject mixed currencies", func(t *testing.T) {
		a, _ := kernel.NewMoney(10, "USD")
		b, _ := kernel.NewMoney(5, "EUR")

		_, err := a.Add(b)

		require.Error(t, err)
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var m kernel.Money
		require.Error(t, m.Validate())
		assert.True(t, m.IsZero())
	})

	t.Run("formats with two decimals", func(t *testing.T) {
		m, _ := kernel.NewMoney(42.5, "USD")
		assert.Equal(t, "42.50 USD", m.String())
	})
}
