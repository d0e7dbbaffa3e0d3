package domain

import "time"

// ShipmentLine tracks one product line of an order independently of its
// siblings. Progress is the highest status ordinal ever observed for the
// line; it only ratchets upward, so stale or out-of-order courier updates
// can never un-complete a timeline step.
type ShipmentLine struct {
	OrderID           string
	LineIndex         int
	ProductID         string
	Status            CanonicalStatus
	Flow              FlowKind
	Progress          int
	TrackingNumber    string
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	UpdatedAt         time.Time
}
