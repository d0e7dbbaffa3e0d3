package service

import (
	"context"
	"errors"
	"time"

	"github.com/mehtaam/shopstack/internal/core/domain"
	"go.uber.org/zap"
)

// orderRewardTTL bounds how long an order reward stays spendable. Signup
// bonuses do not expire.
const orderRewardTTL = 365 * 24 * time.Hour

// rewardEligible is the eligibility classifier. It is a pre-filter only:
// a buggy caller that skips it still cannot double-credit, because the
// ledger's unique constraint is the authority.
func (s *Service) rewardEligible(order *domain.Order) bool {
	if order.Annotation(domain.AnnotationRetryAt) != nil {
		return false
	}
	if order.AnnotationFlag(domain.AnnotationConvertedFromCOD) {
		return false
	}
	if order.Annotation(domain.AnnotationRepaymentOf) != nil {
		return false
	}
	if order.AnnotationFlag(domain.AnnotationRewardGranted) {
		return false
	}

	// COD orders have no separate payment confirmation; acceptance is enough.
	if order.PaymentMethod == domain.PaymentCOD {
		return true
	}
	return order.IsPaid
}

// rewardAmount resolves the amount for an order reward: the server-declared
// annotation value when present, otherwise 10% of the order total floored
// to the smallest currency unit. Never negative, zero for non-positive
// totals. This computation is authoritative; anything a client shows is a
// display estimate.
func (s *Service) rewardAmount(order *domain.Order) int64 {
	if declared, ok := order.AnnotationAmount(domain.AnnotationRewardAmount); ok {
		if declared < 0 {
			return 0
		}
		return declared
	}
	if order.Total <= 0 {
		return 0
	}
	return order.Total / 10
}

// IssueRewardOnce attempts the unique-constrained ledger insert for
// (orderID, kind). A rejected duplicate is a normal outcome, reported as
// AlreadyGranted with the pre-existing entry. The reward-granted annotation
// is written best-effort afterwards; losing it costs one extra round trip
// to the ledger on the next attempt, nothing more.
func (s *Service) IssueRewardOnce(ctx context.Context,
	userID uint64,
	orderID string,
	kind domain.RewardKind,
	amount int64,
) (*domain.IssuanceResult, error) {
	if amount <= 0 {
		return &domain.IssuanceResult{Granted: false}, nil
	}

	now := time.Now()
	expiresAt := now.Add(orderRewardTTL)
	entry := &domain.RewardLedgerEntry{
		UserID:    userID,
		OrderID:   &orderID,
		Kind:      kind,
		Amount:    amount,
		IssuedAt:  now,
		ExpiresAt: &expiresAt,
	}

	created, err := s.repo.InsertLedgerEntry(ctx, entry)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			existing, readErr := s.repo.ReadLedgerEntryByOrder(ctx, orderID, kind)
			if readErr != nil {
				s.logger.Error("Read existing reward after conflict", zap.Error(readErr),
					zap.String("order", orderID))
				return nil, readErr
			}
			return &domain.IssuanceResult{AlreadyGranted: true, Entry: existing}, nil
		}
		s.logger.Error("Insert ledger entry", zap.Error(err), zap.String("order", orderID))
		return nil, err
	}

	if err := s.repo.PatchOrderAnnotations(ctx, orderID,
		map[string]any{domain.AnnotationRewardGranted: true}); err != nil {
		s.logger.Warn("reward-granted annotation not written",
			zap.Error(err), zap.String("order", orderID))
	}

	return &domain.IssuanceResult{Granted: true, Entry: created}, nil
}

// ConfirmPayment records a payment-confirmation event and runs the reward
// pipeline for the order. Webhooks fire twice and confirmation screens get
// refreshed; every path after the classifier is idempotent.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string, at time.Time) (*domain.IssuanceResult, error) {
	order, err := s.repo.SetOrderPaid(ctx, orderID, at)
	if err != nil {
		return nil, err
	}

	if !s.rewardEligible(order) {
		return &domain.IssuanceResult{Granted: false}, nil
	}
	return s.IssueRewardOnce(ctx, order.UserID, order.ID, domain.RewardOrder, s.rewardAmount(order))
}

// ClaimOrderReward is the confirmation-screen path: same classifier, same
// coordinator, safe to call any number of times.
func (s *Service) ClaimOrderReward(ctx context.Context, userID uint64, orderID string) (*domain.IssuanceResult, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if !s.rewardEligible(order) {
		return &domain.IssuanceResult{Granted: false}, nil
	}
	return s.IssueRewardOnce(ctx, order.UserID, order.ID, domain.RewardOrder, s.rewardAmount(order))
}

// GrantSignupBonus issues the one-per-user signup entry. Uniqueness is a
// partial index on (user_id, kind); the null order id marks it as a
// non-order reward.
func (s *Service) GrantSignupBonus(ctx context.Context, userID uint64, amount int64) (*domain.IssuanceResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	entry := &domain.RewardLedgerEntry{
		UserID:   userID,
		Kind:     domain.RewardSignup,
		Amount:   amount,
		IssuedAt: time.Now(),
	}

	created, err := s.repo.InsertLedgerEntry(ctx, entry)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			existing, readErr := s.repo.ReadLedgerEntryByUser(ctx, userID, domain.RewardSignup)
			if readErr != nil {
				return nil, readErr
			}
			return &domain.IssuanceResult{AlreadyGranted: true, Entry: existing}, nil
		}
		s.logger.Error("Insert signup bonus", zap.Error(err), zap.Uint64("user", userID))
		return nil, err
	}
	return &domain.IssuanceResult{Granted: true, Entry: created}, nil
}

// Balance recomputes the spendable balance from the ledger at a single
// instant, so expiry answers are consistent within the read.
func (s *Service) Balance(ctx context.Context, userID uint64) (int64, error) {
	balance, err := s.repo.SumBalance(ctx, userID, time.Now())
	if err != nil {
		s.logger.Error("Get balance", zap.Error(err), zap.Uint64("user", userID))
		return 0, err
	}
	return balance, nil
}

// SpendBalance consumes from the ledger at checkout. The repository
// serializes per user and re-checks the available balance at commit time;
// losing that race surfaces as ErrInsufficientBalance, never a partial
// spend.
func (s *Service) SpendBalance(ctx context.Context, userID uint64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	remaining, err := s.repo.SpendBalance(ctx, userID, amount, time.Now())
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			s.logger.Error("Spend balance", zap.Error(err), zap.Uint64("user", userID))
		}
		return 0, err
	}
	return remaining, nil
}

func (s *Service) ListLedgerEntries(ctx context.Context, userID uint64) ([]*domain.RewardLedgerEntry, error) {
	return s.repo.ListLedgerEntries(ctx, userID)
}
