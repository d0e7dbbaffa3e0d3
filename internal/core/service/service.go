package service

import (
	"context"
	"errors"
	"time"

	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/mehtaam/shopstack/internal/core/port"
	"github.com/mehtaam/shopstack/internal/core/pricing"
	"github.com/mehtaam/shopstack/internal/core/status"
	"github.com/mehtaam/shopstack/internal/core/utils"
	"go.uber.org/zap"
)

type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	logger       *zap.Logger
}

func NewService(repo port.Repository, tokenService port.TokenService, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		logger:       logger,
	}, nil
}

func (s *Service) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	exUser, err := s.repo.GetUserByLogin(ctx, user.Login)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	newUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newUser, nil
}

func (s *Service) LoginUser(ctx context.Context, login string, password string) (string, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

func (s *Service) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := order.CheckTotals(); err != nil {
		return nil, err
	}

	exOrder, err := s.repo.ReadOrder(ctx, order.ID)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		return nil, err
	}
	if exOrder != nil {
		return nil, domain.ErrOrderAlreadyPlaced
	}

	// Commit sale allocations before the insert; a line on an active sale
	// may never take more than what remains of both the allocation and the
	// real inventory, checked again at commit time inside the repository.
	// Any failure after a commit must release it, otherwise a duplicate-order
	// race or a sold-out sibling line burns allocation with no order behind it.
	now := time.Now()
	type saleCommit struct {
		saleID   uint64
		quantity int
	}
	committed := make([]saleCommit, 0, len(order.Items))
	release := func() {
		for _, c := range committed {
			if err := s.repo.ReleaseSaleQuantity(ctx, c.saleID, c.quantity); err != nil {
				s.logger.Warn("sale allocation not released",
					zap.Uint64("sale", c.saleID),
					zap.Int("quantity", c.quantity),
					zap.Error(err))
			}
		}
	}
	for _, item := range order.Items {
		sale, err := s.repo.ActiveSaleForProduct(ctx, item.ProductID, now)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				continue
			}
			release()
			return nil, err
		}
		if err := s.repo.CommitSaleQuantity(ctx, sale.ID, item.Quantity); err != nil {
			release()
			return nil, err
		}
		committed = append(committed, saleCommit{saleID: sale.ID, quantity: item.Quantity})
	}

	order.PlacedAt = now
	order.Status = domain.StatusOrderPlaced

	newOrder, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		release()
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrOrderAlreadyPlaced
		}
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	return newOrder, nil
}

func (s *Service) GetOrder(ctx context.Context, userID uint64, orderID string) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *Service) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Get orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) DispatchShipments(ctx context.Context, orderID string) ([]*domain.ShipmentLine, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lines := make([]*domain.ShipmentLine, 0, len(order.Items))
	for i, item := range order.Items {
		lines = append(lines, &domain.ShipmentLine{
			OrderID:   order.ID,
			LineIndex: i,
			ProductID: item.ProductID,
			Status:    domain.StatusProcessing,
			Flow:      domain.FlowNormal,
			Progress:  domain.StatusProcessing.Ordinal(),
			UpdatedAt: now,
		})
	}

	if err := s.repo.CreateShipmentLines(ctx, lines); err != nil {
		s.logger.Error("Dispatch shipments", zap.Error(err), zap.String("order", orderID))
		return nil, err
	}
	return lines, nil
}

func (s *Service) ApplyTrackingUpdate(ctx context.Context, update port.TrackingUpdate) (*domain.ShipmentLine, error) {
	canonical := status.Normalize(update.RawStatus)
	flow := status.FlowFor(update.RawStatus)

	line, err := s.repo.UpdateShipmentLine(ctx, update.OrderID, update.LineIndex,
		func(l *domain.ShipmentLine) error {
			if l.Status.Terminal() && !(l.Status == domain.StatusDelivered && flow == domain.FlowReturn) {
				return domain.ErrShipmentFinal
			}

			switch flow {
			case domain.FlowCancelled:
				l.Flow = domain.FlowCancelled
				l.Status = domain.StatusCancelled
			default:
				next := status.Ratchet(l.Progress, canonical)
				if canonical.Ordinal() < l.Progress {
					// Stale or out-of-order report: completed steps never
					// regress, so keep state and record the data-quality
					// signal only.
					s.logger.Warn("stale tracking update ignored",
						zap.String("order", update.OrderID),
						zap.Int("line", update.LineIndex),
						zap.String("reported", string(canonical)),
						zap.Int("kept_progress", l.Progress))
				} else {
					l.Status = canonical
				}
				l.Progress = next
				if flow == domain.FlowReturn {
					l.Flow = domain.FlowReturn
				}
				if canonical == domain.StatusDelivered && l.DeliveredAt == nil {
					at := update.At
					l.DeliveredAt = &at
				}
			}

			if update.TrackingNumber != "" {
				l.TrackingNumber = update.TrackingNumber
			}
			l.UpdatedAt = update.At
			return nil
		})
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (s *Service) ShipmentTimelines(ctx context.Context, orderID string) ([]port.LineTimeline, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.ListShipmentLines(ctx, orderID)
	if err != nil {
		return nil, err
	}

	placedAt := order.PlacedAt
	result := make([]port.LineTimeline, 0, len(lines))
	for _, l := range lines {
		result = append(result, port.LineTimeline{
			Line: l,
			Steps: status.BuildTimeline(l.Flow, l.Progress, status.Marks{
				PlacedAt:    &placedAt,
				DeliveredAt: l.DeliveredAt,
			}),
		})
	}
	return result, nil
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return s.repo.CreateProduct(ctx, product)
}

func (s *Service) CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	product, err := s.repo.ReadProduct(ctx, sale.ProductID)
	if err != nil {
		return nil, err
	}
	// The allocation is a hard cap fixed against real stock at creation.
	if sale.Allocation <= 0 || sale.Allocation > product.Inventory {
		return nil, domain.ErrSaleOverAllocated
	}

	newSale, err := s.repo.CreateSale(ctx, sale)
	if err != nil {
		s.logger.Error("Create sale", zap.Error(err), zap.String("product", sale.ProductID))
		return nil, err
	}
	return newSale, nil
}

func (s *Service) QuoteCheckout(ctx context.Context, items []domain.LineItem) ([]port.CheckoutQuote, error) {
	now := time.Now()
	quotes := make([]port.CheckoutQuote, 0, len(items))
	for _, item := range items {
		sale, err := s.repo.ActiveSaleForProduct(ctx, item.ProductID, now)
		if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}

		q, err := pricing.EffectivePrice(item, sale, now)
		if err != nil {
			s.logger.Error("Quote checkout", zap.Error(err), zap.String("product", item.ProductID))
			return nil, domain.ErrInternal
		}
		quotes = append(quotes, port.CheckoutQuote{Item: item, Quote: q})
	}
	return quotes, nil
}
