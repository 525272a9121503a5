package pack

import (
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var (
	// ErrPackageIsNotConstructed is returned when a Package instance was not created
	// through one of the constructor functions.
	ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage or NewConsolidatedResult")

	// ErrTrackingNumberIsRequired is returned when intake omits the tracking number.
	ErrTrackingNumberIsRequired = errs.NewValueIsRequiredError("trackingNumber")
)

// Package represents a single received parcel tracked from warehouse intake to
// delivery. It is an aggregate root whose status transitions are the heart of
// the forwarding lifecycle.
//
// Invariants:
//   - A package references at most one active consolidation at a time.
//   - Only a received package may be admitted into a new consolidation or shipment.
//   - Delivered is terminal.
//   - originalPackageIDs is populated only on consolidated-result packages.
//   - Re-applying the current status is a no-op, so interrupted lifecycle
//     operations can be replayed safely.
type Package struct {
	id                   kernel.UUID
	owner                kernel.OwnerRef
	trackingNumber       string
	retailer             string
	description          string
	status               Status
	weight               kernel.Weight
	dimensions           kernel.Dimensions
	estimatedValue       kernel.Money
	receivedAt           time.Time
	consolidationID      *kernel.UUID
	isConsolidatedResult bool
	originalPackageIDs   []kernel.UUID
	photos               []kernel.PhotoRef
	notes                string

	guard guard.ConstructorGuard
}

// NewPackage creates a package at warehouse intake.
// The package starts in Received status with no consolidation link.
//
// Parameters:
//   - id: unique identifier
//   - owner: the customer the package was addressed to (suite number lookup)
//   - trackingNumber: the inbound carrier tracking number, unique per package
//   - retailer: where the package was bought
//   - description: free-form contents description
//   - weight, dimensions: measured at intake
//   - estimatedValue: customer-declared value
//   - receivedAt: intake timestamp; storage days are counted from it
func NewPackage(
	id kernel.UUID,
	owner kernel.OwnerRef,
	trackingNumber string,
	retailer string,
	description string,
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	estimatedValue kernel.Money,
	receivedAt time.Time,
) (*Package, error) {
	p := &Package{
		status:      Received,
		retailer:    retailer,
		description: description,
		receivedAt:  receivedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOwner(owner),
		p.setTrackingNumber(trackingNumber),
		p.setWeight(weight),
		p.setDimensions(dimensions),
		p.setEstimatedValue(estimatedValue),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// NewConsolidatedResult synthesizes the package produced by completing a
// consolidation. It starts in Received status with zero storage days, carries
// the ids of the member packages it was built from, and is flagged as a
// consolidated result.
func NewConsolidatedResult(
	id kernel.UUID,
	owner kernel.OwnerRef,
	trackingNumber string,
	description string,
	originalPackageIDs []kernel.UUID,
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	estimatedValue kernel.Money,
	receivedAt time.Time,
) (*Package, error) {
	if len(originalPackageIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("originalPackageIds")
	}

	p, err := NewPackage(id, owner, trackingNumber, "", description, weight, dimensions, estimatedValue, receivedAt)
	if err != nil {
		return nil, err
	}

	p.isConsolidatedResult = true
	p.originalPackageIDs = append([]kernel.UUID(nil), originalPackageIDs...)
	return p, nil
}

// RestorePackage reconstructs a Package aggregate from persistent storage.
// Unlike the creation constructors it accepts any valid status and carries
// over the consolidation link, photos, and notes as stored.
func RestorePackage(
	id kernel.UUID,
	owner kernel.OwnerRef,
	trackingNumber string,
	retailer string,
	description string,
	status Status,
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	estimatedValue kernel.Money,
	receivedAt time.Time,
	consolidationID *kernel.UUID,
	isConsolidatedResult bool,
	originalPackageIDs []kernel.UUID,
	photos []kernel.PhotoRef,
	notes string,
) (*Package, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	p, err := NewPackage(id, owner, trackingNumber, retailer, description,
		weight, dimensions, estimatedValue, receivedAt)
	if err != nil {
		return nil, err
	}

	p.status = status
	p.consolidationID = consolidationID
	p.isConsolidatedResult = isConsolidatedResult
	p.originalPackageIDs = append([]kernel.UUID(nil), originalPackageIDs...)
	p.photos = append([]kernel.PhotoRef(nil), photos...)
	p.notes = notes
	return p, nil
}

// Validate ensures the Package instance was properly constructed.
func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// IsEqual compares two packages by their unique identifiers.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the package's unique identifier.
func (p *Package) ID() kernel.UUID {
	return p.id
}

// Owner returns the owning customer reference.
func (p *Package) Owner() kernel.OwnerRef {
	return p.owner
}

// TrackingNumber returns the inbound carrier tracking number.
func (p *Package) TrackingNumber() string {
	return p.trackingNumber
}

// Retailer returns the originating retailer.
func (p *Package) Retailer() string {
	return p.retailer
}

// Description returns the contents description.
func (p *Package) Description() string {
	return p.description
}

// Status returns the current lifecycle status.
func (p *Package) Status() Status {
	return p.status
}

// Weight returns the measured weight.
func (p *Package) Weight() kernel.Weight {
	return p.weight
}

// Dimensions returns the measured box dimensions.
func (p *Package) Dimensions() kernel.Dimensions {
	return p.dimensions
}

// EstimatedValue returns the declared value.
func (p *Package) EstimatedValue() kernel.Money {
	return p.estimatedValue
}

// ReceivedAt returns the warehouse intake timestamp.
func (p *Package) ReceivedAt() time.Time {
	return p.receivedAt
}

// ConsolidationID returns the active consolidation link, or nil if the
// package is not part of one.
func (p *Package) ConsolidationID() *kernel.UUID {
	return p.consolidationID
}

// IsConsolidatedResult reports whether this package was synthesized by
// completing a consolidation.
func (p *Package) IsConsolidatedResult() bool {
	return p.isConsolidatedResult
}

// OriginalPackageIDs returns the member ids a consolidated-result package was
// built from. Empty for ordinary packages.
func (p *Package) OriginalPackageIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), p.originalPackageIDs...)
}

// Photos returns the ordered photo list.
func (p *Package) Photos() []kernel.PhotoRef {
	return append([]kernel.PhotoRef(nil), p.photos...)
}

// Notes returns the free-form warehouse notes.
func (p *Package) Notes() string {
	return p.notes
}

// StorageDays returns the number of whole days the package has been in
// warehouse storage, recomputed from the intake timestamp on every read.
func (p *Package) StorageDays(now time.Time) int {
	days := int(now.Sub(p.receivedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// NeedsReconciliation reports whether the package sits in Consolidated status
// without a consolidation link, the state an admin bulk edit can leave it in.
// Such packages are picked up by the reconciliation workflow.
func (p *Package) NeedsReconciliation() bool {
	return p.status == Consolidated && p.consolidationID == nil
}

// JoinConsolidation admits the package into a consolidation, transitioning it
// to Consolidated and recording the link.
//
// Re-applying the same consolidation is a no-op. Joining a different
// consolidation while one is active, or joining from any status other than
// Received, is rejected with a conflict error.
func (p *Package) JoinConsolidation(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	if p.status == Consolidated && p.consolidationID != nil {
		if p.consolidationID.IsEqual(consolidationID) {
			return nil
		}
		return errs.NewConflictError("package", p.id.String(),
			fmt.Sprintf("already belongs to consolidation %s", p.consolidationID))
	}

	if !p.status.CanJoinConsolidation() {
		return errs.NewConflictError("package", p.id.String(),
			fmt.Sprintf("status %s does not allow consolidation", p.status))
	}

	p.status = Consolidated
	p.consolidationID = &consolidationID
	return nil
}

// ReleaseFromConsolidation reverts a consolidated package to Received and
// clears its consolidation link. Called when the owning consolidation is
// cancelled before completion. Releasing an already-received package is a
// no-op so cancellation can be replayed.
func (p *Package) ReleaseFromConsolidation() error {
	if p.status == Received && p.consolidationID == nil {
		return nil
	}

	if p.status != Consolidated {
		return errs.NewConflictError("package", p.id.String(),
			fmt.Sprintf("status %s cannot revert to received", p.status))
	}

	p.status = Received
	p.consolidationID = nil
	return nil
}

// LinkConsolidation stamps the consolidation link without changing status.
// Used on completion to backfill members that lost the link. A package
// already linked elsewhere is left untouched.
func (p *Package) LinkConsolidation(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}
	if p.consolidationID == nil {
		p.consolidationID = &consolidationID
	}
	return nil
}

// MarkShipped transitions the package to Shipped when a shipment picks it up.
// Allowed from Received and Consolidated; re-applying is a no-op.
func (p *Package) MarkShipped() error {
	if p.status == Shipped {
		return nil
	}
	if !p.status.CanShip() {
		return errs.NewConflictError("package", p.id.String(),
			fmt.Sprintf("status %s does not allow shipping", p.status))
	}

	p.status = Shipped
	return nil
}

// MarkInTransit records carrier movement. Allowed from Shipped; re-applying
// is a no-op.
func (p *Package) MarkInTransit() error {
	if p.status == InTransit {
		return nil
	}
	if p.status != Shipped {
		return errs.NewConflictError("package", p.id.String(),
			fmt.Sprintf("status %s cannot move to in_transit", p.status))
	}

	p.status = InTransit
	return nil
}

// MarkDelivered records final delivery, cascaded from the owning shipment.
// Allowed from Shipped and InTransit; re-applying is a no-op. Delivered is
// terminal.
func (p *Package) MarkDelivered() error {
	if p.status == Delivered {
		return nil
	}
	if p.status != Shipped && p.status != InTransit {
		return errs.NewConflictError("package", p.id.String(),
			fmt.Sprintf("status %s cannot move to delivered", p.status))
	}

	p.status = Delivered
	return nil
}

// ForceStatus applies an admin status override without transition checks.
// The caller is responsible for routing the package through reconciliation
// when the override leaves it consolidated without a link.
func (p *Package) ForceStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	p.status = status
	return nil
}

// AttachPhoto appends a photo to the ordered photo list.
func (p *Package) AttachPhoto(photo kernel.PhotoRef) {
	p.photos = append(p.photos, photo)
}

// AppendNotes adds warehouse notes, preserving existing ones.
func (p *Package) AppendNotes(notes string) {
	if notes == "" {
		return
	}
	if p.notes == "" {
		p.notes = notes
		return
	}
	p.notes = p.notes + "\n" + notes
}

func (p *Package) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Package) setOwner(owner kernel.OwnerRef) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	p.owner = owner
	return nil
}

func (p *Package) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}
	p.trackingNumber = trackingNumber
	return nil
}

func (p *Package) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	p.weight = weight
	return nil
}

func (p *Package) setDimensions(dimensions kernel.Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	p.dimensions = dimensions
	return nil
}

func (p *Package) setEstimatedValue(value kernel.Money) error {
	if err := value.Validate(); err != nil {
		return err
	}
	p.estimatedValue = value
	return nil
}
