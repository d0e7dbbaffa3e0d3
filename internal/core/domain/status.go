package domain

// CanonicalStatus is the closed fulfillment-state set every upstream status
// vocabulary is folded into. Couriers, payment gateways and admins all speak
// their own dialects; the rest of the system only ever sees these values.
type CanonicalStatus string

const (
	StatusOrderPlaced     CanonicalStatus = "ORDER_PLACED"
	StatusProcessing      CanonicalStatus = "PROCESSING"
	StatusShipped         CanonicalStatus = "SHIPPED"
	StatusDelivered       CanonicalStatus = "DELIVERED"
	StatusCancelled       CanonicalStatus = "CANCELLED"
	StatusReturnAccepted  CanonicalStatus = "RETURN_ACCEPTED"
	StatusReturnPickedUp  CanonicalStatus = "RETURN_PICKED_UP"
	StatusRefundCompleted CanonicalStatus = "REFUND_COMPLETED"
)

// Ordinal places a status on the single progress chain used for
// completion-gating. Cancelled sits outside the chain and reports 0.
func (s CanonicalStatus) Ordinal() int {
	switch s {
	case StatusOrderPlaced:
		return 1
	case StatusProcessing:
		return 2
	case StatusShipped:
		return 3
	case StatusDelivered:
		return 4
	case StatusReturnAccepted:
		return 5
	case StatusReturnPickedUp:
		return 6
	case StatusRefundCompleted:
		return 7
	default:
		return 0
	}
}

// Terminal reports whether a shipment line in this status is immutable.
// A delivered line may still enter the return flow, which the service
// handles as the one allowed exception.
func (s CanonicalStatus) Terminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusRefundCompleted:
		return true
	default:
		return false
	}
}

// FlowKind selects which timeline shape a shipment line renders as.
type FlowKind string

const (
	FlowNormal    FlowKind = "NORMAL"
	FlowCancelled FlowKind = "CANCELLED"
	FlowReturn    FlowKind = "RETURN"
)
