package shipment

import (
	"time"
)

// TrackingEvent is one entry in a shipment's append-only tracking history.
type TrackingEvent struct {
	status      Status
	location    string
	description string
	timestamp   time.Time
}

// NewTrackingEvent creates a tracking history entry.
func NewTrackingEvent(status Status, location, description string, timestamp time.Time) (TrackingEvent, error) {
	if err := status.Validate(); err != nil {
		return TrackingEvent{}, err
	}

	return TrackingEvent{
		status:      status,
		location:    location,
		description: description,
		timestamp:   timestamp,
	}, nil
}

func (e TrackingEvent) Status() Status       { return e.status }
func (e TrackingEvent) Location() string     { return e.location }
func (e TrackingEvent) Description() string  { return e.description }
func (e TrackingEvent) Timestamp() time.Time { return e.timestamp }
