// Package shipment contains the Shipment aggregate: an outbound international
// shipment of one or more packages to a customer's destination address.
//
// A shipment starts Pending with an internal tracking number and a computed
// cost. Creating a carrier label attaches the carrier's tracking number and
// label documents and moves the shipment to Processing. Carrier scans append
// to the shipment's append-only tracking history as it moves through
// InTransit to Delivered. Delivered and Cancelled are terminal.
package shipment
