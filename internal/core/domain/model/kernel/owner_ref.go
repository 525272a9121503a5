package kernel

import "forwarding/internal/pkg/errs"

// OwnerRef is a value object identifying the user who owns an entity.
//
// Persistence and upstream services hand the owner over in two shapes: a raw
// user identifier, or a populated account object carrying the identifier plus
// profile fields. OwnerRef models both as one typed sum so callers never
// branch on representation: ID always yields the comparable identifier.
//
// The zero value is invalid; use OwnerRefFromID or OwnerRefFromAccount.
type OwnerRef struct {
	id        UUID
	name      string
	email     string
	populated bool
}

// OwnerRefFromID creates an OwnerRef from a raw user identifier.
func OwnerRefFromID(id UUID) (OwnerRef, error) {
	if err := id.Validate(); err != nil {
		return OwnerRef{}, err
	}
	return OwnerRef{id: id}, nil
}

// OwnerRefFromAccount creates an OwnerRef from a populated account object.
// Name and email are carried for display purposes only; equality is decided
// by the identifier alone.
func OwnerRefFromAccount(id UUID, name, email string) (OwnerRef, error) {
	if err := id.Validate(); err != nil {
		return OwnerRef{}, err
	}
	return OwnerRef{id: id, name: name, email: email, populated: true}, nil
}

// ID returns the normalized owner identifier, regardless of which
// representation the reference was created from.
func (r OwnerRef) ID() UUID {
	return r.id
}

// IsPopulated reports whether the reference carries account profile fields.
func (r OwnerRef) IsPopulated() bool {
	return r.populated
}

// Name returns the account display name, empty unless populated.
func (r OwnerRef) Name() string {
	return r.name
}

// Email returns the account email, empty unless populated.
func (r OwnerRef) Email() string {
	return r.email
}

// IsEqual compares two owner references by their normalized identifiers.
func (r OwnerRef) IsEqual(other OwnerRef) bool {
	return r.id.IsEqual(other.id)
}

// Validate checks that the reference was created via one of the constructors.
func (r OwnerRef) Validate() error {
	if err := r.id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	return nil
}
