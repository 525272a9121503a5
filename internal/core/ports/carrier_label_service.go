package ports

import (
	"context"

	"forwarding/internal/core/domain/model/shipment"
)

// Label is the carrier's response to a label creation request.
type Label struct {
	TrackingNumber string
	LabelURL       string
	TrackingURL    string
}

// Rate is one carrier service quote.
type Rate struct {
	Carrier      string
	ServiceLevel string
	Amount       float64
	Currency     string
	ETADays      int
}

// RateRequest describes a prospective shipment for quoting.
type RateRequest struct {
	WeightKg           float64
	LengthCm           float64
	WidthCm            float64
	HeightCm           float64
	DestinationCountry string
}

// CarrierLabelService is the outbound contract to the shipping carrier API.
// Implementations return an external-service error on transport or carrier
// failures.
type CarrierLabelService interface {
	// IsConfigured reports whether carrier credentials are present. Callers
	// must check before attempting label creation and fail without mutating
	// anything when the carrier is not configured.
	IsConfigured() bool

	// CreateLabel purchases a shipping label for the shipment.
	CreateLabel(ctx context.Context, aggregate *shipment.Shipment) (Label, error)

	// GetRates quotes the available carrier services for a prospective shipment.
	GetRates(ctx context.Context, req RateRequest) ([]Rate, error)
}
