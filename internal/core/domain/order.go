package domain

import (
	"encoding/json"
	"time"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentCard PaymentMethod = "CARD"
	PaymentUPI  PaymentMethod = "UPI"
)

// Annotation keys written by the fulfillment pipeline and checked by the
// reward eligibility pre-filter. The ledger's unique constraint stays the
// authority; these only short-circuit.
const (
	AnnotationRetryAt          = "retryAt"
	AnnotationConvertedFromCOD = "convertedFromCOD"
	AnnotationRepaymentOf      = "repaymentOf"
	AnnotationRewardGranted    = "rewardGranted"
	AnnotationRewardAmount     = "rewardAmount"
)

type LineItem struct {
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int
}

// Order monetary fields are integers in the smallest currency unit.
type Order struct {
	ID             string
	UserID         uint64
	Items          []LineItem
	PaymentMethod  PaymentMethod
	IsPaid         bool
	Status         CanonicalStatus
	Subtotal       int64
	Discount       int64
	DeliveryCharge int64
	ConvenienceFee int64
	PlatformFee    int64
	Total          int64
	Annotations    map[string]any
	PlacedAt       time.Time
}

// CheckTotals enforces total = subtotal - discount + delivery + convenience
// + platform with every component non-negative. Called at intake and after
// every monetary mutation.
func (o *Order) CheckTotals() error {
	for _, v := range []int64{o.Subtotal, o.Discount, o.DeliveryCharge, o.ConvenienceFee, o.PlatformFee, o.Total} {
		if v < 0 {
			return ErrOrderTotalsMismatch
		}
	}
	if o.Total != o.Subtotal-o.Discount+o.DeliveryCharge+o.ConvenienceFee+o.PlatformFee {
		return ErrOrderTotalsMismatch
	}
	return nil
}

// Annotation returns the raw annotation value, nil when absent or when the
// annotation map itself is missing. Malformed annotation data never errors;
// it reads as absent.
func (o *Order) Annotation(key string) any {
	if o.Annotations == nil {
		return nil
	}
	return o.Annotations[key]
}

// AnnotationFlag reports whether an annotation is present and truthy.
// Upstream writers are sloppy about types: true, "true", 1 and a bare
// non-empty string all count as set.
func (o *Order) AnnotationFlag(key string) bool {
	v := o.Annotation(key)
	if v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && t != "false" && t != "0"
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// AnnotationAmount reads an integer money amount from the annotation map.
// Returns ok=false for missing or unparseable values.
func (o *Order) AnnotationAmount(key string) (int64, bool) {
	switch t := o.Annotation(key).(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			if ferr != nil {
				return 0, false
			}
			return int64(f), true
		}
		return i, true
	default:
		return 0, false
	}
}
