package services_test

import (
	"testing"

	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() services.PricingPolicy {
	return services.PricingPolicy{
		Currency:                   "USD",
		ConsolidationBaseFee:       5,
		ConsolidationPerPackageFee: 2,
		ProtectionFee:              3,
		UnpackedPhotosFee:          2,
		InsuranceFreeTier:          100,
		InsuranceStepSize:          100,
		InsuranceStepFee:           1.5,
		DimFactor:                  5000,
		CarrierRates: map[string]services.CarrierRate{
			"dhl": {BaseFee: 20, PerKg: 8},
		},
	}
}

func TestConsolidationCost(t *testing.T) {
	calc := services.NewPricingCalculator(testPolicy())

	t.Run("base plus per-package fee", func(t *testing.T) {
		cost := calc.ConsolidationCost(3, consolidation.Preferences{})

		assert.Equal(t, 11.0, cost.Base)
		assert.Equal(t, 0.0, cost.Protection)
		assert.Equal(t, 0.0, cost.Photos)
		assert.Equal(t, 11.0, cost.Total)
		assert.Equal(t, "USD", cost.Currency)
	})

	t.Run("billed preferences add flat surcharges", func(t *testing.T) {
		cost := calc.ConsolidationCost(2, consolidation.Preferences{
			RemovePackaging:       true,
			AddProtection:         true,
			RequestUnpackedPhotos: true,
		})

		assert.Equal(t, 9.0, cost.Base)
		assert.Equal(t, 3.0, cost.Protection)
		assert.Equal(t, 2.0, cost.Photos)
		assert.Equal(t, 14.0, cost.Total)
	})
}

func TestShippingCost(t *testing.T) {
	calc := services.NewPricingCalculator(testPolicy())

	t.Run("actual weight when heavier than volumetric", func(t *testing.T) {
		weight, _ := kernel.NewWeight(10, kernel.Kilograms)
		dims, _ := kernel.NewDimensions(20, 20, 20, kernel.Centimeters) // 1.6 volumetric kg
		declared, _ := kernel.NewMoney(50, "USD")

		cost, err := calc.ShippingCost("dhl", weight, dims, declared)

		require.NoError(t, err)
		assert.Equal(t, 100.0, cost.Shipping) // 20 + 10*8
		assert.Equal(t, 0.0, cost.Insurance)
		assert.Equal(t, 100.0, cost.Total)
	})

	t.Run("volumetric weight when bulkier than heavy", func(t *testing.T) {
		weight, _ := kernel.NewWeight(1, kernel.Kilograms)
		dims, _ := kernel.NewDimensions(50, 50, 40, kernel.Centimeters) // 100000 cm3 = 20 kg
		declared, _ := kernel.NewMoney(50, "USD")

		cost, err := calc.ShippingCost("dhl", weight, dims, declared)

		require.NoError(t, err)
		assert.Equal(t, 180.0, cost.Shipping) // 20 + 20*8
	})

	t.Run("unknown carrier fails", func(t *testing.T) {
		weight, _ := kernel.NewWeight(1, kernel.Kilograms)
		dims, _ := kernel.NewDimensions(10, 10, 10, kernel.Centimeters)
		declared, _ := kernel.NewMoney(50, "USD")

		_, err := calc.ShippingCost("pigeon", weight, dims, declared)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestInsuranceSurcharge(t *testing.T) {
	calc := services.NewPricingCalculator(testPolicy())

	tests := []struct {
		name     string
		declared float64
		want     float64
	}{
		{"free tier exactly", 100, 0},
		{"below free tier", 40, 0},
		{"one started step", 101, 1.5},
		{"step boundary", 200, 1.5},
		{"several steps", 550, 7.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			declared, err := kernel.NewMoney(tt.declared, "USD")
			require.NoError(t, err)

			assert.Equal(t, tt.want, calc.InsuranceSurcharge(declared))
		})
	}
}

func TestOwnershipGuard(t *testing.T) {
	g := services.NewOwnershipGuard()
	ownerID := kernel.NewUUID()
	owner, err := kernel.OwnerRefFromID(ownerID)
	require.NoError(t, err)
	entityID := kernel.NewUUID()

	t.Run("owner passes", func(t *testing.T) {
		require.NoError(t, g.AssertOwner("package", entityID, owner, ownerID, false))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		err := g.AssertOwner("package", entityID, owner, kernel.NewUUID(), false)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Contains(t, err.Error(), "package")
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		require.NoError(t, g.AssertOwner("package", entityID, owner, kernel.NewUUID(), true))
	})
}
