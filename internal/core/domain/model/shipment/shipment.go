package shipment

import (
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance
	// was not created through one of the constructor functions.
	ErrShipmentIsNotConstructed = errors.New(
		"Shipment must be created via NewShipment or RestoreShipment")
)

// CustomsInfo carries the customs declaration for an international shipment.
type CustomsInfo struct {
	ContentsType  string
	Description   string
	DeclaredValue kernel.Money
}

// Cost is the billed breakdown of a shipment, computed once at creation by
// the pricing calculator.
type Cost struct {
	Shipping  float64
	Insurance float64
	Total     float64
	Currency  string
}

// Shipment is the aggregate root for an outbound international shipment of
// one or more packages.
//
// Invariants:
//   - The tracking history is append-only and never reordered.
//   - A carrier label is attached at most once.
//   - Delivered and Cancelled are terminal.
type Shipment struct {
	id                kernel.UUID
	owner             kernel.OwnerRef
	packageIDs        []kernel.UUID
	carrier           string
	serviceLevel      string
	destination       Destination
	customs           CustomsInfo
	status            Status
	cost              Cost
	weight            kernel.Weight
	dimensions        kernel.Dimensions
	trackingNumber    string
	carrierTracking   string
	labelURL          string
	trackingURL       string
	events            []TrackingEvent
	estimatedDelivery time.Time
	actualDelivery    *time.Time

	guard guard.ConstructorGuard
}

// NewShipment creates a shipment in Pending status. The caller supplies the
// internal tracking number and the aggregated weight and dimensions of the
// member packages.
func NewShipment(
	id kernel.UUID,
	owner kernel.OwnerRef,
	packageIDs []kernel.UUID,
	carrier string,
	serviceLevel string,
	destination Destination,
	customs CustomsInfo,
	cost Cost,
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	trackingNumber string,
	estimatedDelivery time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:            Pending,
		serviceLevel:      serviceLevel,
		customs:           customs,
		cost:              cost,
		estimatedDelivery: estimatedDelivery,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setOwner(owner),
		s.setPackageIDs(packageIDs),
		s.setCarrier(carrier),
		s.setDestination(destination),
		s.setWeight(weight),
		s.setDimensions(dimensions),
		s.setTrackingNumber(trackingNumber),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a Shipment aggregate from persistent storage.
func RestoreShipment(
	id kernel.UUID,
	owner kernel.OwnerRef,
	packageIDs []kernel.UUID,
	carrier string,
	serviceLevel string,
	destination Destination,
	customs CustomsInfo,
	status Status,
	cost Cost,
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	trackingNumber string,
	carrierTracking string,
	labelURL string,
	trackingURL string,
	events []TrackingEvent,
	estimatedDelivery time.Time,
	actualDelivery *time.Time,
) (*Shipment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	s := &Shipment{
		status:            status,
		serviceLevel:      serviceLevel,
		customs:           customs,
		cost:              cost,
		carrierTracking:   carrierTracking,
		labelURL:          labelURL,
		trackingURL:       trackingURL,
		events:            append([]TrackingEvent(nil), events...),
		estimatedDelivery: estimatedDelivery,
		actualDelivery:    actualDelivery,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setOwner(owner),
		s.setPackageIDs(packageIDs),
		s.setCarrier(carrier),
		s.setDestination(destination),
		s.setWeight(weight),
		s.setDimensions(dimensions),
		s.setTrackingNumber(trackingNumber),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Owner returns the owning customer reference.
func (s *Shipment) Owner() kernel.OwnerRef {
	return s.owner
}

// PackageIDs returns the ids of the shipped packages.
func (s *Shipment) PackageIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), s.packageIDs...)
}

// Carrier returns the carrier code, e.g. "dhl".
func (s *Shipment) Carrier() string {
	return s.carrier
}

// ServiceLevel returns the carrier service level, e.g. "express".
func (s *Shipment) ServiceLevel() string {
	return s.serviceLevel
}

// Destination returns the delivery address.
func (s *Shipment) Destination() Destination {
	return s.destination
}

// Customs returns the customs declaration.
func (s *Shipment) Customs() CustomsInfo {
	return s.customs
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// Cost returns the billed cost breakdown.
func (s *Shipment) Cost() Cost {
	return s.cost
}

// Weight returns the aggregated shipment weight.
func (s *Shipment) Weight() kernel.Weight {
	return s.weight
}

// Dimensions returns the aggregated shipment dimensions.
func (s *Shipment) Dimensions() kernel.Dimensions {
	return s.dimensions
}

// TrackingNumber returns the internal tracking number assigned at creation.
func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// CarrierTracking returns the carrier's tracking number, empty until a label
// is attached.
func (s *Shipment) CarrierTracking() string {
	return s.carrierTracking
}

// LabelURL returns the carrier label document URL, empty until a label is
// attached.
func (s *Shipment) LabelURL() string {
	return s.labelURL
}

// TrackingURL returns the carrier's public tracking page URL.
func (s *Shipment) TrackingURL() string {
	return s.trackingURL
}

// Events returns the tracking history in append order.
func (s *Shipment) Events() []TrackingEvent {
	return append([]TrackingEvent(nil), s.events...)
}

// EstimatedDelivery returns the promised delivery time.
func (s *Shipment) EstimatedDelivery() time.Time {
	return s.estimatedDelivery
}

// ActualDelivery returns when the shipment was delivered, nil until then.
func (s *Shipment) ActualDelivery() *time.Time {
	return s.actualDelivery
}

// HasLabel reports whether a carrier label has been attached.
func (s *Shipment) HasLabel() bool {
	return s.carrierTracking != "" || s.labelURL != ""
}

// AttachLabel records the carrier label exactly once and moves the shipment
// into Processing. Allowed only from Pending or Processing; a second label
// is rejected with a conflict.
func (s *Shipment) AttachLabel(carrierTracking, labelURL, trackingURL string, now time.Time) error {
	if s.HasLabel() {
		return errs.NewConflictError("shipment", s.id.String(), "carrier label already exists")
	}
	if s.status != Pending && s.status != Processing {
		return errs.NewConflictError("shipment", s.id.String(),
			fmt.Sprintf("status %s cannot receive a carrier label", s.status))
	}
	if carrierTracking == "" {
		return errs.NewValueIsRequiredError("carrierTracking")
	}

	s.carrierTracking = carrierTracking
	s.labelURL = labelURL
	s.trackingURL = trackingURL
	s.status = Processing
	s.events = append(s.events, TrackingEvent{
		status:      Processing,
		description: "carrier label created",
		timestamp:   now,
	})
	return nil
}

// AppendEvent adds a tracking history entry. The history is append-only.
func (s *Shipment) AppendEvent(event TrackingEvent) {
	s.events = append(s.events, event)
}

// UpdateStatus moves the shipment to the given status. Setting the current
// status again is a no-op; a transition outside the lifecycle graph is
// rejected with a conflict. Delivery stamps the actual delivery time.
func (s *Shipment) UpdateStatus(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s.status == target {
		return nil
	}
	if !s.status.CanTransitionTo(target) {
		return errs.NewConflictError("shipment", s.id.String(),
			fmt.Sprintf("cannot transition from %s to %s", s.status, target))
	}

	s.status = target
	if target == Delivered {
		s.actualDelivery = &now
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOwner(owner kernel.OwnerRef) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	s.owner = owner
	return nil
}

func (s *Shipment) setPackageIDs(packageIDs []kernel.UUID) error {
	if len(packageIDs) == 0 {
		return errs.NewValueIsRequiredError("packageIds")
	}
	for _, id := range packageIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	s.packageIDs = append([]kernel.UUID(nil), packageIDs...)
	return nil
}

func (s *Shipment) setCarrier(carrier string) error {
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}
	s.carrier = carrier
	return nil
}

func (s *Shipment) setDestination(destination Destination) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	s.destination = destination
	return nil
}

func (s *Shipment) setWeight(weight kernel.Weight) error {
	if weight.IsZero() {
		return errs.NewValueIsRequiredError("weight")
	}
	s.weight = weight
	return nil
}

func (s *Shipment) setDimensions(dimensions kernel.Dimensions) error {
	if dimensions.IsZero() {
		return errs.NewValueIsRequiredError("dimensions")
	}
	s.dimensions = dimensions
	return nil
}

func (s *Shipment) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	s.trackingNumber = trackingNumber
	return nil
}
