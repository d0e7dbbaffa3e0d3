// Package pricing decides what a line item actually costs at checkout and
// which further discount instruments may touch it. Stacking is opt-in per
// sale: an uncontrolled coupon on top of a sale price on top of ledger
// balance is a revenue leak, so both gates default to closed.
package pricing

import (
	"time"

	"github.com/govalues/decimal"
	"github.com/mehtaam/shopstack/internal/core/domain"
)

// Quote is the effective price of one unit plus the stacking gates that
// apply to it.
type Quote struct {
	Price         int64
	CouponAllowed bool
	LedgerAllowed bool
}

var hundred = decimal.MustNew(100, 0)

// salePrice applies a percentage discount to a unit price, rounding down to
// the smallest currency unit. Defensive rounding always favors the buyer's
// invariant price >= 0 and the seller's price <= list.
func salePrice(unit int64, percent decimal.Decimal) (int64, error) {
	p, err := decimal.New(unit, 0)
	if err != nil {
		return 0, err
	}
	off, err := hundred.Sub(percent)
	if err != nil {
		return 0, err
	}
	scaled, err := p.Mul(off)
	if err != nil {
		return 0, err
	}
	final, err := scaled.Quo(hundred)
	if err != nil {
		return 0, err
	}
	whole, _, _ := final.Trunc(0).Int64(0)
	if whole < 0 {
		whole = 0
	}
	if whole > unit {
		whole = unit
	}
	return whole, nil
}

// EffectivePrice computes the quote for a line item under an optional sale.
// A nil or inactive sale means the plain list price with both instruments
// allowed; an active sale discounts the price and opens only the gates the
// sale explicitly opened.
func EffectivePrice(item domain.LineItem, sale *domain.Sale, now time.Time) (Quote, error) {
	if sale == nil || !sale.Active(now) {
		return Quote{Price: item.UnitPrice, CouponAllowed: true, LedgerAllowed: true}, nil
	}

	price, err := salePrice(item.UnitPrice, sale.DiscountPercent)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Price:         price,
		CouponAllowed: sale.CouponAllowed,
		LedgerAllowed: sale.LedgerAllowed,
	}, nil
}
