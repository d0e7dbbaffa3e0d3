package port

import (
	"context"
	"time"

	"github.com/mehtaam/shopstack/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)

	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	SetOrderPaid(ctx context.Context, orderID string, at time.Time) (*domain.Order, error)
	PatchOrderAnnotations(ctx context.Context, orderID string, patch map[string]any) error

	// Shipment lines
	CreateShipmentLines(ctx context.Context, lines []*domain.ShipmentLine) error
	ListShipmentLines(ctx context.Context, orderID string) ([]*domain.ShipmentLine, error)
	UpdateShipmentLine(ctx context.Context,
		orderID string, lineIndex int, updateFn UpdateShipmentFn) (*domain.ShipmentLine, error)

	// Reward ledger
	InsertLedgerEntry(ctx context.Context, entry *domain.RewardLedgerEntry) (*domain.RewardLedgerEntry, error)
	ReadLedgerEntryByOrder(ctx context.Context,
		orderID string, kind domain.RewardKind) (*domain.RewardLedgerEntry, error)
	ReadLedgerEntryByUser(ctx context.Context,
		userID uint64, kind domain.RewardKind) (*domain.RewardLedgerEntry, error)
	ListLedgerEntries(ctx context.Context, userID uint64) ([]*domain.RewardLedgerEntry, error)
	SumBalance(ctx context.Context, userID uint64, now time.Time) (int64, error)
	SpendBalance(ctx context.Context, userID uint64, amount int64, now time.Time) (int64, error)

	// Catalogue
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	ReadProduct(ctx context.Context, productID string) (*domain.Product, error)
	CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	ActiveSaleForProduct(ctx context.Context, productID string, now time.Time) (*domain.Sale, error)
	CommitSaleQuantity(ctx context.Context, saleID uint64, quantity int) error
	ReleaseSaleQuantity(ctx context.Context, saleID uint64, quantity int) error
}

// UpdateShipmentFn mutates a shipment line inside the repository's
// read-modify-write cycle. Returning an error aborts the write.
type UpdateShipmentFn func(*domain.ShipmentLine) error
