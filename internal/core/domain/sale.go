package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type Product struct {
	ID        string
	Name      string
	Price     int64
	Inventory int
}

// Sale commits a slice of a product's inventory to a promotional price.
// Allocation is fixed at creation and must not exceed inventory at that
// moment; Committed grows at checkout time and never exceeds Allocation.
type Sale struct {
	ID              uint64
	ProductID       string
	DiscountPercent decimal.Decimal
	Allocation      int
	Committed       int
	CouponAllowed   bool
	LedgerAllowed   bool
	StartsAt        time.Time
	EndsAt          time.Time
}

// Active reports whether the sale window covers the given instant and
// allocation remains.
func (s *Sale) Active(now time.Time) bool {
	if now.Before(s.StartsAt) || now.After(s.EndsAt) {
		return false
	}
	return s.Committed < s.Allocation
}

// Remaining is the uncommitted share of the allocation.
func (s *Sale) Remaining() int {
	return s.Allocation - s.Committed
}
