package status

import (
	"time"

	"github.com/mehtaam/shopstack/internal/core/domain"
)

// Step is one milestone of a shipment timeline.
type Step struct {
	Label     string     `json:"label"`
	Completed bool       `json:"completed"`
	At        *time.Time `json:"at,omitempty"`
}

// Marks carries the timestamps a caller has on record for a line. Missing
// marks render as null; completion flags never depend on them.
type Marks struct {
	PlacedAt    *time.Time
	DeliveredAt *time.Time
}

type milestone struct {
	label   string
	ordinal int
}

var normalFlow = []milestone{
	{"Order Placed", 1},
	{"Processing", 2},
	{"Shipped", 3},
	{"Delivered", 4},
}

var returnFlow = []milestone{
	{"Order Delivered", 4},
	{"Return Accepted", 5},
	{"Return Picked Up", 6},
	{"Refund Completed", 7},
}

// BuildTimeline renders the milestone sequence for a flow given the highest
// ordinal ever observed for the line. Feeding it the persisted ratcheted
// progress, not the latest raw status, is what keeps completed steps from
// regressing when updates arrive out of order.
func BuildTimeline(flow domain.FlowKind, progress int, marks Marks) []Step {
	if flow == domain.FlowCancelled {
		return []Step{
			{Label: "Order Placed", Completed: true, At: marks.PlacedAt},
			{Label: "Cancelled", Completed: true},
		}
	}

	shape := normalFlow
	if flow == domain.FlowReturn {
		shape = returnFlow
	}
	if progress < 1 {
		progress = 1
	}

	steps := make([]Step, 0, len(shape))
	for i, m := range shape {
		s := Step{Label: m.label, Completed: m.ordinal <= progress}
		// The first step is complete by definition once the record exists.
		if i == 0 {
			s.Completed = true
		}
		switch m.label {
		case "Order Placed":
			s.At = marks.PlacedAt
		case "Order Delivered", "Delivered":
			if s.Completed {
				s.At = marks.DeliveredAt
			}
		}
		steps = append(steps, s)
	}
	return steps
}

// Ratchet returns the new progress value after observing a status: the
// maximum of what was already seen and the ordinal of the observation.
// Cancelled carries no ordinal and leaves progress untouched.
func Ratchet(progress int, observed domain.CanonicalStatus) int {
	if o := observed.Ordinal(); o > progress {
		return o
	}
	return progress
}
