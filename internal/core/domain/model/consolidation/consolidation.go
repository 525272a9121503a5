package consolidation

import (
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

// MinPackages is the minimum number of member packages a customer
// consolidation request must contain.
const MinPackages = 2

var (
	// ErrConsolidationIsNotConstructed is returned when a Consolidation instance
	// was not created through one of the constructor functions.
	ErrConsolidationIsNotConstructed = errors.New(
		"Consolidation must be created via NewConsolidation or NewReconciledConsolidation")

	// ErrTooFewPackages is returned when a consolidation request lists fewer
	// than MinPackages packages.
	ErrTooFewPackages = errs.NewValueIsInvalidErrorWithCause("packageIds",
		fmt.Errorf("at least %d packages are required", MinPackages))
)

// Preferences carries the customer's repacking options for a consolidation.
type Preferences struct {
	// RemovePackaging drops the original retailer boxes to save weight. Free.
	RemovePackaging bool
	// AddProtection adds bubble wrap and padding. Billed.
	AddProtection bool
	// RequestUnpackedPhotos asks for photos of the unpacked contents. Billed.
	RequestUnpackedPhotos bool
}

// Cost is the billed breakdown of a consolidation, computed once at request
// time by the pricing calculator.
type Cost struct {
	Base       float64
	Protection float64
	Photos     float64
	Total      float64
	Currency   string
}

// Totals aggregates the member packages' measurements before repacking,
// normalized to metric units.
type Totals struct {
	WeightKg  float64
	VolumeCm3 float64
}

// Result carries the measurements of the repacked box, populated only on
// completion.
type Result struct {
	Weight     kernel.Weight
	Dimensions kernel.Dimensions
}

// Consolidation is the aggregate root for the workflow that merges two or
// more packages into one resulting package.
//
// Invariants:
//   - Completed is terminal and irreversible.
//   - resultingPackageID is set exactly once, at completion, and is non-nil
//     iff the status is Completed.
//   - Member packages are held (status Consolidated) while the consolidation
//     is active and released (status Received) on cancellation.
type Consolidation struct {
	id                  kernel.UUID
	owner               kernel.OwnerRef
	packageIDs          []kernel.UUID
	status              Status
	preferences         Preferences
	cost                Cost
	before              Totals
	after               *Result
	resultingPackageID  *kernel.UUID
	photos              []kernel.PhotoRef
	instructions        string
	notes               string
	estimatedCompletion time.Time
	actualCompletion    *time.Time

	guard guard.ConstructorGuard
}

// NewConsolidation creates a customer consolidation request in Pending status.
// At least MinPackages member packages are required; cost and before-totals
// are computed by the caller from the loaded members.
func NewConsolidation(
	id kernel.UUID,
	owner kernel.OwnerRef,
	packageIDs []kernel.UUID,
	preferences Preferences,
	instructions string,
	cost Cost,
	before Totals,
	estimatedCompletion time.Time,
) (*Consolidation, error) {
	if len(packageIDs) < MinPackages {
		return nil, ErrTooFewPackages
	}

	c := &Consolidation{
		status:              Pending,
		preferences:         preferences,
		cost:                cost,
		before:              before,
		instructions:        instructions,
		estimatedCompletion: estimatedCompletion,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setOwner(owner),
		c.setPackageIDs(packageIDs),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// NewReconciledConsolidation synthesizes a consolidation for a package an
// admin forced into consolidated status with no existing request to link to.
// It starts directly in Processing, since the admin edit already confirmed
// it, and holds a single member package.
func NewReconciledConsolidation(
	id kernel.UUID,
	owner kernel.OwnerRef,
	packageID kernel.UUID,
	cost Cost,
	before Totals,
	estimatedCompletion time.Time,
) (*Consolidation, error) {
	c := &Consolidation{
		status:              Processing,
		cost:                cost,
		before:              before,
		estimatedCompletion: estimatedCompletion,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setOwner(owner),
		c.setPackageIDs([]kernel.UUID{packageID}),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreConsolidation reconstructs a Consolidation aggregate from persistent
// storage. It validates the stored status and the completion invariant:
// resultingPackageID must be present iff the status is Completed.
func RestoreConsolidation(
	id kernel.UUID,
	owner kernel.OwnerRef,
	packageIDs []kernel.UUID,
	status Status,
	preferences Preferences,
	cost Cost,
	before Totals,
	after *Result,
	resultingPackageID *kernel.UUID,
	photos []kernel.PhotoRef,
	instructions string,
	notes string,
	estimatedCompletion time.Time,
	actualCompletion *time.Time,
) (*Consolidation, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if (status == Completed) != (resultingPackageID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("resultingPackageId",
			fmt.Errorf("must be set iff status is completed, status is %s", status))
	}

	c := &Consolidation{
		status:              status,
		preferences:         preferences,
		cost:                cost,
		before:              before,
		after:               after,
		resultingPackageID:  resultingPackageID,
		photos:              append([]kernel.PhotoRef(nil), photos...),
		instructions:        instructions,
		notes:               notes,
		estimatedCompletion: estimatedCompletion,
		actualCompletion:    actualCompletion,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setOwner(owner),
		c.setPackageIDs(packageIDs),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Consolidation instance was properly constructed.
func (c *Consolidation) Validate() error {
	if c == nil {
		return ErrConsolidationIsNotConstructed
	}
	return c.guard.Validate(ErrConsolidationIsNotConstructed)
}

// IsEqual compares two consolidations by their unique identifiers.
func (c *Consolidation) IsEqual(other *Consolidation) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the consolidation's unique identifier.
func (c *Consolidation) ID() kernel.UUID {
	return c.id
}

// Owner returns the owning customer reference.
func (c *Consolidation) Owner() kernel.OwnerRef {
	return c.owner
}

// PackageIDs returns the member package ids.
func (c *Consolidation) PackageIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.packageIDs...)
}

// Status returns the current lifecycle status.
func (c *Consolidation) Status() Status {
	return c.status
}

// Preferences returns the customer's repacking options.
func (c *Consolidation) Preferences() Preferences {
	return c.preferences
}

// Cost returns the billed cost breakdown.
func (c *Consolidation) Cost() Cost {
	return c.cost
}

// Before returns the aggregated member measurements prior to repacking.
func (c *Consolidation) Before() Totals {
	return c.before
}

// After returns the repacked box measurements, nil until completion.
func (c *Consolidation) After() *Result {
	return c.after
}

// ResultingPackageID returns the id of the synthesized package, nil until
// completion.
func (c *Consolidation) ResultingPackageID() *kernel.UUID {
	return c.resultingPackageID
}

// Photos returns the ordered photo list.
func (c *Consolidation) Photos() []kernel.PhotoRef {
	return append([]kernel.PhotoRef(nil), c.photos...)
}

// Instructions returns the customer's special instructions.
func (c *Consolidation) Instructions() string {
	return c.instructions
}

// Notes returns warehouse notes recorded at completion.
func (c *Consolidation) Notes() string {
	return c.notes
}

// EstimatedCompletion returns the promised completion time.
func (c *Consolidation) EstimatedCompletion() time.Time {
	return c.estimatedCompletion
}

// ActualCompletion returns when the consolidation completed, nil until then.
func (c *Consolidation) ActualCompletion() *time.Time {
	return c.actualCompletion
}

// ContainsPackage reports whether the given package is a member.
func (c *Consolidation) ContainsPackage(packageID kernel.UUID) bool {
	for _, id := range c.packageIDs {
		if id.IsEqual(packageID) {
			return true
		}
	}
	return false
}

// StartProcessing moves a pending consolidation into Processing when the
// warehouse begins repacking. Already-processing is a no-op.
func (c *Consolidation) StartProcessing() error {
	if c.status == Processing {
		return nil
	}
	if c.status != Pending {
		return errs.NewConflictError("consolidation", c.id.String(),
			fmt.Sprintf("status %s cannot start processing", c.status))
	}

	c.status = Processing
	return nil
}

// AddPackage appends a member package during reconciliation.
// Allowed only while the consolidation is pending; appending an existing
// member is a no-op.
func (c *Consolidation) AddPackage(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}
	if c.ContainsPackage(packageID) {
		return nil
	}
	if c.status != Pending {
		return errs.NewConflictError("consolidation", c.id.String(),
			fmt.Sprintf("status %s does not accept new packages", c.status))
	}

	c.packageIDs = append(c.packageIDs, packageID)
	return nil
}

// Complete finishes the consolidation: records the repacked measurements,
// links the resulting package, and stamps the completion time.
//
// Completed is terminal: completing twice fails with a conflict and the first
// resulting package is unaffected. Cancelled consolidations cannot complete.
func (c *Consolidation) Complete(after Result, resultingPackageID kernel.UUID, notes string, now time.Time) error {
	if c.status == Completed {
		return errs.NewConflictError("consolidation", c.id.String(), "already completed")
	}
	if c.status == Cancelled {
		return errs.NewConflictError("consolidation", c.id.String(), "cancelled consolidations cannot complete")
	}
	if err := errors.Join(
		after.Weight.Validate(),
		after.Dimensions.Validate(),
		resultingPackageID.Validate(),
	); err != nil {
		return err
	}

	c.status = Completed
	c.after = &after
	c.resultingPackageID = &resultingPackageID
	c.actualCompletion = &now
	if notes != "" {
		c.notes = notes
	}
	return nil
}

// Cancel withdraws the consolidation. Customers may cancel only pending
// requests; admins may also cancel processing ones. Completed and
// already-cancelled consolidations are rejected with a conflict.
// The caller releases the member packages.
func (c *Consolidation) Cancel(adminOverride bool) error {
	if c.status.IsTerminal() {
		return errs.NewConflictError("consolidation", c.id.String(),
			fmt.Sprintf("already %s", c.status))
	}
	if !c.status.CanCancel(adminOverride) {
		return errs.NewConflictError("consolidation", c.id.String(),
			fmt.Sprintf("status %s cannot be cancelled", c.status))
	}

	c.status = Cancelled
	return nil
}

// AppendPhoto adds a photo to the ordered photo list.
func (c *Consolidation) AppendPhoto(photo kernel.PhotoRef) {
	c.photos = append(c.photos, photo)
}

func (c *Consolidation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Consolidation) setOwner(owner kernel.OwnerRef) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	c.owner = owner
	return nil
}

func (c *Consolidation) setPackageIDs(packageIDs []kernel.UUID) error {
	if len(packageIDs) == 0 {
		return errs.NewValueIsRequiredError("packageIds")
	}
	for _, id := range packageIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.packageIDs = append([]kernel.UUID(nil), packageIDs...)
	return nil
}
