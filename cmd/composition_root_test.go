package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPricingPolicy(t *testing.T) {
	policy := defaultPricingPolicy()

	t.Run("estimates follow the published windows", func(t *testing.T) {
		assert.Equal(t, 3, policy.ConsolidationETADays)
		assert.Equal(t, 5, policy.ShippingETADays)
		assert.Equal(t, 30, policy.StorageFreeDays)
	})

	t.Run("shipments originate from the US warehouse", func(t *testing.T) {
		assert.Equal(t, "Warehouse - USA", policy.WarehouseLocation)
	})

	t.Run("insurance is free up to the declared-value tier", func(t *testing.T) {
		assert.Equal(t, 100.0, policy.InsuranceFreeTier)
		assert.Equal(t, 100.0, policy.InsuranceStepSize)
		assert.Equal(t, 1.5, policy.InsuranceStepFee)
	})

	t.Run("volumetric divisor is air-freight standard", func(t *testing.T) {
		assert.Equal(t, 5000.0, policy.DimFactor)
	})

	t.Run("every supported carrier has a tariff", func(t *testing.T) {
		for _, carrier := range []string{"dhl", "fedex", "ups"} {
			rate, ok := policy.CarrierRates[carrier]

			require.True(t, ok, "carrier: %s", carrier)
			assert.Positive(t, rate.BaseFee)
			assert.Positive(t, rate.PerKg)
		}
	})
}
