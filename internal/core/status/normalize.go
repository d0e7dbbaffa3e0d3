// Package status folds free-form courier/gateway/admin status strings into
// the canonical fulfillment-state set and renders milestone timelines from
// them. Everything here is pure; callers may invoke it concurrently.
package status

import (
	"strings"

	"github.com/mehtaam/shopstack/internal/core/domain"
)

// rule pairs a predicate over the folded status string with the canonical
// state it resolves to. Rules are evaluated strictly in order: a raw status
// can contain several keywords ("RETURN_REFUND_INITIATED" holds both
// "return" and "refund") and the first match wins, so the slice order is a
// compatibility contract, not an implementation detail.
type rule struct {
	match  func(string) bool
	status domain.CanonicalStatus
}

func contains(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if !strings.Contains(s, sub) {
				return false
			}
		}
		return true
	}
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

var rules = []rule{
	{contains("refund"), domain.StatusRefundCompleted},
	{contains("return", "pick"), domain.StatusReturnPickedUp},
	{contains("return", "accept"), domain.StatusReturnAccepted},
	{contains("cancel"), domain.StatusCancelled},
	{contains("deliver"), domain.StatusDelivered},
	{containsAny("ship", "intransit", "transit", "dispatch"), domain.StatusShipped},
	{containsAny("process", "pack", "confirm"), domain.StatusProcessing},
}

// fold lowercases and strips whitespace, underscores and hyphens so that
// "In Transit", "IN_TRANSIT" and "in-transit" all compare equal.
func fold(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		switch r {
		case ' ', '\t', '\n', '\r', '_', '-':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize maps an arbitrary status token to a canonical state. It is a
// total function: input it does not recognize degrades to ORDER_PLACED, the
// safest earliest state, rather than failing the caller.
func Normalize(raw string) domain.CanonicalStatus {
	folded := fold(raw)
	for _, r := range rules {
		if r.match(folded) {
			return r.status
		}
	}
	return domain.StatusOrderPlaced
}

// FlowFor picks the timeline shape for a raw status. Cancellation wins over
// return/refund so an upstream "return_cancelled" renders as a cancellation.
func FlowFor(raw string) domain.FlowKind {
	folded := fold(raw)
	switch {
	case strings.Contains(folded, "cancel"):
		return domain.FlowCancelled
	case strings.Contains(folded, "return") || strings.Contains(folded, "refund"):
		return domain.FlowReturn
	default:
		return domain.FlowNormal
	}
}
