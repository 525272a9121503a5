package services

import (
	"fmt"

	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/errs"
)

// CarrierRate is the tariff of a single carrier service.
type CarrierRate struct {
	BaseFee float64
	PerKg   float64
}

// PricingPolicy carries the fee schedule for consolidation and shipping.
// Values are loaded from configuration at startup; amounts are in the
// policy's currency.
type PricingPolicy struct {
	Currency string

	ConsolidationBaseFee       float64
	ConsolidationPerPackageFee float64
	ProtectionFee              float64
	UnpackedPhotosFee          float64

	InsuranceFreeTier float64
	InsuranceStepSize float64
	InsuranceStepFee  float64

	ConsolidationETADays int
	ShippingETADays      int
	StorageFreeDays      int

	// DimFactor converts volume in cubic centimeters to volumetric kilograms,
	// typically 5000 for international air freight.
	DimFactor float64

	CarrierRates map[string]CarrierRate

	WarehouseLocation string
}

// PricingCalculator is a domain service that prices consolidations and
// shipments from a PricingPolicy. Prices are computed once at request time
// and stored on the aggregate; later policy changes never reprice existing
// work.
type PricingCalculator struct {
	policy PricingPolicy
}

// NewPricingCalculator creates a calculator for the given fee schedule.
func NewPricingCalculator(policy PricingPolicy) PricingCalculator {
	return PricingCalculator{policy: policy}
}

// Policy returns the fee schedule the calculator was created with.
func (c PricingCalculator) Policy() PricingPolicy {
	return c.policy
}

// ConsolidationCost prices a consolidation request: a base fee, a per-package
// fee for every member, and flat surcharges for the billed preferences.
func (c PricingCalculator) ConsolidationCost(packageCount int, prefs consolidation.Preferences) consolidation.Cost {
	cost := consolidation.Cost{
		Base:     c.policy.ConsolidationBaseFee + float64(packageCount)*c.policy.ConsolidationPerPackageFee,
		Currency: c.policy.Currency,
	}
	if prefs.AddProtection {
		cost.Protection = c.policy.ProtectionFee
	}
	if prefs.RequestUnpackedPhotos {
		cost.Photos = c.policy.UnpackedPhotosFee
	}
	cost.Total = cost.Base + cost.Protection + cost.Photos
	return cost
}

// ShippingCost prices a shipment with the named carrier. The billable weight
// is the greater of the actual weight and the volumetric weight
// (volume / DimFactor), both in kilograms. Insurance is added for declared
// values above the free tier.
func (c PricingCalculator) ShippingCost(
	carrier string,
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	declaredValue kernel.Money,
) (shipment.Cost, error) {
	rate, ok := c.policy.CarrierRates[carrier]
	if !ok {
		return shipment.Cost{}, errs.NewValueIsInvalidErrorWithCause("carrier",
			fmt.Errorf("%q is not a supported carrier", carrier))
	}

	billableKg := weight.Kilograms()
	if c.policy.DimFactor > 0 {
		if volumetric := dimensions.VolumeCm3() / c.policy.DimFactor; volumetric > billableKg {
			billableKg = volumetric
		}
	}

	cost := shipment.Cost{
		Shipping:  rate.BaseFee + billableKg*rate.PerKg,
		Insurance: c.InsuranceSurcharge(declaredValue),
		Currency:  c.policy.Currency,
	}
	cost.Total = cost.Shipping + cost.Insurance
	return cost, nil
}

// InsuranceSurcharge computes the insurance fee for a declared value.
// Values up to the free tier cost nothing; above it, each started step of
// InsuranceStepSize adds InsuranceStepFee.
func (c PricingCalculator) InsuranceSurcharge(declaredValue kernel.Money) float64 {
	excess := declaredValue.Amount() - c.policy.InsuranceFreeTier
	if excess <= 0 || c.policy.InsuranceStepSize <= 0 {
		return 0
	}

	steps := int(excess / c.policy.InsuranceStepSize)
	if float64(steps)*c.policy.InsuranceStepSize < excess {
		steps++
	}
	return float64(steps) * c.policy.InsuranceStepFee
}
