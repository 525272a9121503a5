package shipment

import (
	"errors"
	"fmt"

	"forwarding/internal/pkg/errs"
)

// Destination is the international delivery address of a shipment.
type Destination struct {
	name       string
	street     string
	city       string
	state      string
	postalCode string
	country    string

	isSet bool
}

// NewDestination creates a delivery address. Street and country are required;
// the remaining fields are free-form since address formats vary by country.
func NewDestination(name, street, city, state, postalCode, country string) (Destination, error) {
	var err error
	if street == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("street"))
	}
	if country == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("country"))
	}
	if err != nil {
		return Destination{}, err
	}

	return Destination{
		name:       name,
		street:     street,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    country,
		isSet:      true,
	}, nil
}

func (d Destination) Name() string       { return d.name }
func (d Destination) Street() string     { return d.street }
func (d Destination) City() string       { return d.city }
func (d Destination) State() string      { return d.state }
func (d Destination) PostalCode() string { return d.postalCode }
func (d Destination) Country() string    { return d.country }

// IsZero reports whether the destination is the zero value.
func (d Destination) IsZero() bool {
	return !d.isSet
}

// Validate checks that the destination was created via its constructor.
func (d Destination) Validate() error {
	if d.IsZero() {
		return errs.NewValueIsRequiredError("destination")
	}
	return nil
}

// String renders a single-line form of the address.
func (d Destination) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", d.street, d.city, d.state, d.postalCode, d.country)
}
