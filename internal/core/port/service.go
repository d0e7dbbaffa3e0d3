package port

import (
	"context"
	"time"

	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/mehtaam/shopstack/internal/core/pricing"
	"github.com/mehtaam/shopstack/internal/core/status"
)

// TrackingUpdate is one raw status report from a courier, a gateway webhook
// or a manual admin correction. RawStatus has no guaranteed vocabulary.
type TrackingUpdate struct {
	OrderID        string
	LineIndex      int
	RawStatus      string
	TrackingNumber string
	At             time.Time
}

// LineTimeline pairs a shipment line with its rendered milestone steps.
type LineTimeline struct {
	Line  *domain.ShipmentLine
	Steps []status.Step
}

// CheckoutQuote is the priced form of one requested line item.
type CheckoutQuote struct {
	Item  domain.LineItem
	Quote pricing.Quote
}

type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, login string, password string) (string, error)

	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, userID uint64, orderID string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)

	DispatchShipments(ctx context.Context, orderID string) ([]*domain.ShipmentLine, error)
	ApplyTrackingUpdate(ctx context.Context, update TrackingUpdate) (*domain.ShipmentLine, error)
	ShipmentTimelines(ctx context.Context, orderID string) ([]LineTimeline, error)

	ConfirmPayment(ctx context.Context, orderID string, at time.Time) (*domain.IssuanceResult, error)
	ClaimOrderReward(ctx context.Context, userID uint64, orderID string) (*domain.IssuanceResult, error)
	GrantSignupBonus(ctx context.Context, userID uint64, amount int64) (*domain.IssuanceResult, error)

	Balance(ctx context.Context, userID uint64) (int64, error)
	SpendBalance(ctx context.Context, userID uint64, amount int64) (int64, error)
	ListLedgerEntries(ctx context.Context, userID uint64) ([]*domain.RewardLedgerEntry, error)

	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	QuoteCheckout(ctx context.Context, items []domain.LineItem) ([]CheckoutQuote, error)
}
