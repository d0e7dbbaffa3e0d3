package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/mehtaam/shopstack/internal/core/port/mock"
	"github.com/mehtaam/shopstack/internal/core/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func paidOrder(total int64, annotations map[string]any) *domain.Order {
	return &domain.Order{
		ID:            "A-100",
		UserID:        1,
		PaymentMethod: domain.PaymentCard,
		IsPaid:        true,
		Status:        domain.StatusOrderPlaced,
		Subtotal:      total,
		Total:         total,
		Annotations:   annotations,
		PlacedAt:      time.Now(),
	}
}

func TestService_ClaimOrderReward(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type claimTest struct {
		name       string
		order      *domain.Order
		mock       func(repo *mock.MockRepository, order *domain.Order)
		expGranted bool
		expAmount  int64
	}

	tests := []claimTest{
		{
			name:  "default amount is ten percent of total",
			order: paidOrder(500, nil),
			mock: func(repo *mock.MockRepository, order *domain.Order) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
				repo.EXPECT().InsertLedgerEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *domain.RewardLedgerEntry) (*domain.RewardLedgerEntry, error) {
						return e, nil
					})
				repo.EXPECT().PatchOrderAnnotations(gomock.Any(), order.ID,
					map[string]any{domain.AnnotationRewardGranted: true}).Return(nil)
			},
			expGranted: true,
			expAmount:  50,
		},
		{
			name:  "server-declared amount is authoritative",
			order: paidOrder(500, map[string]any{domain.AnnotationRewardAmount: float64(75)}),
			mock: func(repo *mock.MockRepository, order *domain.Order) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
				repo.EXPECT().InsertLedgerEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *domain.RewardLedgerEntry) (*domain.RewardLedgerEntry, error) {
						return e, nil
					})
				repo.EXPECT().PatchOrderAnnotations(gomock.Any(), order.ID, gomock.Any()).Return(nil)
			},
			expGranted: true,
			expAmount:  75,
		},
		{
			name:  "converted from COD is ineligible",
			order: paidOrder(500, map[string]any{domain.AnnotationConvertedFromCOD: true}),
			mock: func(repo *mock.MockRepository, order *domain.Order) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
			},
			expGranted: false,
		},
		{
			name:  "retry timestamp is ineligible",
			order: paidOrder(500, map[string]any{domain.AnnotationRetryAt: "2025-03-01T10:00:00Z"}),
			mock: func(repo *mock.MockRepository, order *domain.Order) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
			},
			expGranted: false,
		},
		{
			name:  "repayment is ineligible",
			order: paidOrder(500, map[string]any{domain.AnnotationRepaymentOf: "A-99"}),
			mock: func(repo *mock.MockRepository, order *domain.Order) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
			},
			expGranted: false,
		},
		{
			name:  "granted flag short-circuits without touching ledger",
			order: paidOrder(500, map[string]any{domain.AnnotationRewardGranted: true}),
			mock: func(repo *mock.MockRepository, order *domain.Order) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
			},
			expGranted: false,
		},
		{
			name: "gateway order without payment confirmation is ineligible",
			order: func() *domain.Order {
				o := paidOrder(500, nil)
				o.IsPaid = false
				return o
			}(),
			mock: func(repo *mock.MockRepository, order *domain.Order) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
			},
			expGranted: false,
		},
		{
			name: "COD order needs no payment confirmation",
			order: func() *domain.Order {
				o := paidOrder(500, nil)
				o.PaymentMethod = domain.PaymentCOD
				o.IsPaid = false
				return o
			}(),
			mock: func(repo *mock.MockRepository, order *domain.Order) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
				repo.EXPECT().InsertLedgerEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *domain.RewardLedgerEntry) (*domain.RewardLedgerEntry, error) {
						return e, nil
					})
				repo.EXPECT().PatchOrderAnnotations(gomock.Any(), order.ID, gomock.Any()).Return(nil)
			},
			expGranted: true,
			expAmount:  50,
		},
		{
			name:  "zero total grants nothing",
			order: paidOrder(0, nil),
			mock: func(repo *mock.MockRepository, order *domain.Order) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
			},
			expGranted: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			test.mock(repo, test.order)

			s, err := service.NewService(repo, ts, logger)
			assert.NoError(t, err)

			result, err := s.ClaimOrderReward(context.Background(), test.order.UserID, test.order.ID)
			assert.NoError(t, err)
			assert.Equal(t, test.expGranted, result.Granted)
			if test.expGranted {
				assert.Equal(t, test.expAmount, result.Entry.Amount)
				assert.Equal(t, domain.RewardOrder, result.Entry.Kind)
			}
		})
	}
}

func TestService_IssueRewardOnceDuplicate(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)

	orderID := "A-100"
	existing := &domain.RewardLedgerEntry{
		ID: 7, UserID: 1, OrderID: &orderID,
		Kind: domain.RewardOrder, Amount: 50,
	}

	repo.EXPECT().InsertLedgerEntry(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrConflictingData)
	repo.EXPECT().ReadLedgerEntryByOrder(gomock.Any(), orderID, domain.RewardOrder).
		Return(existing, nil)

	s, err := service.NewService(repo, ts, logger)
	assert.NoError(t, err)

	result, err := s.IssueRewardOnce(context.Background(), 1, orderID, domain.RewardOrder, 50)
	assert.NoError(t, err)
	assert.False(t, result.Granted)
	assert.True(t, result.AlreadyGranted)
	assert.Equal(t, existing, result.Entry)
}

// The annotation flag is an optimization only: a failed flag write after a
// successful insert must still report the grant.
func TestService_IssueRewardOnceAnnotationFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)

	repo.EXPECT().InsertLedgerEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.RewardLedgerEntry) (*domain.RewardLedgerEntry, error) {
			return e, nil
		})
	repo.EXPECT().PatchOrderAnnotations(gomock.Any(), "A-100", gomock.Any()).
		Return(domain.ErrInternal)

	s, err := service.NewService(repo, ts, logger)
	assert.NoError(t, err)

	result, err := s.IssueRewardOnce(context.Background(), 1, "A-100", domain.RewardOrder, 50)
	assert.NoError(t, err)
	assert.True(t, result.Granted)
}

// Two racing issuance attempts: exactly one insert wins, the loser gets the
// winner's entry, and granted amounts across both callers sum to one reward.
func TestService_IssueRewardOnceConcurrent(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)

	orderID := "A-100"
	var mu sync.Mutex
	var stored *domain.RewardLedgerEntry

	repo.EXPECT().InsertLedgerEntry(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, e *domain.RewardLedgerEntry) (*domain.RewardLedgerEntry, error) {
			mu.Lock()
			defer mu.Unlock()
			if stored != nil {
				return nil, domain.ErrConflictingData
			}
			stored = e
			return e, nil
		})
	repo.EXPECT().ReadLedgerEntryByOrder(gomock.Any(), orderID, domain.RewardOrder).
		DoAndReturn(func(context.Context, string, domain.RewardKind) (*domain.RewardLedgerEntry, error) {
			mu.Lock()
			defer mu.Unlock()
			return stored, nil
		})
	repo.EXPECT().PatchOrderAnnotations(gomock.Any(), orderID, gomock.Any()).Return(nil)

	s, err := service.NewService(repo, ts, logger)
	assert.NoError(t, err)

	results := make([]*domain.IssuanceResult, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, callErr := s.IssueRewardOnce(context.Background(), 1, orderID, domain.RewardOrder, 50)
			assert.NoError(t, callErr)
			results[i] = r
		}(i)
	}
	wg.Wait()

	var grantedTotal int64
	grantedCount := 0
	for _, r := range results {
		if r.Granted {
			grantedCount++
			grantedTotal += r.Entry.Amount
		} else {
			assert.True(t, r.AlreadyGranted)
			assert.NotNil(t, r.Entry)
		}
	}
	assert.Equal(t, 1, grantedCount)
	assert.Equal(t, int64(50), grantedTotal)
}

func TestService_ConfirmPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)

	order := paidOrder(1000, nil)
	at := time.Now()

	repo.EXPECT().SetOrderPaid(gomock.Any(), order.ID, at).Return(order, nil)
	repo.EXPECT().InsertLedgerEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.RewardLedgerEntry) (*domain.RewardLedgerEntry, error) {
			return e, nil
		})
	repo.EXPECT().PatchOrderAnnotations(gomock.Any(), order.ID, gomock.Any()).Return(nil)

	s, err := service.NewService(repo, ts, logger)
	assert.NoError(t, err)

	result, err := s.ConfirmPayment(context.Background(), order.ID, at)
	assert.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, int64(100), result.Entry.Amount)
}

func TestService_GrantSignupBonus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	t.Run("first grant", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)
		repo.EXPECT().InsertLedgerEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *domain.RewardLedgerEntry) (*domain.RewardLedgerEntry, error) {
				assert.Nil(t, e.OrderID)
				assert.Equal(t, domain.RewardSignup, e.Kind)
				return e, nil
			})

		s, _ := service.NewService(repo, ts, logger)
		result, err := s.GrantSignupBonus(context.Background(), 1, 100)
		assert.NoError(t, err)
		assert.True(t, result.Granted)
	})

	t.Run("second grant is benign", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)
		existing := &domain.RewardLedgerEntry{ID: 3, UserID: 1, Kind: domain.RewardSignup, Amount: 100}
		repo.EXPECT().InsertLedgerEntry(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrConflictingData)
		repo.EXPECT().ReadLedgerEntryByUser(gomock.Any(), uint64(1), domain.RewardSignup).
			Return(existing, nil)

		s, _ := service.NewService(repo, ts, logger)
		result, err := s.GrantSignupBonus(context.Background(), 1, 100)
		assert.NoError(t, err)
		assert.False(t, result.Granted)
		assert.True(t, result.AlreadyGranted)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)
		s, _ := service.NewService(repo, ts, logger)
		_, err := s.GrantSignupBonus(context.Background(), 1, 0)
		assert.Equal(t, domain.ErrInvalidAmount, err)
	})
}

func TestService_SpendBalance(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	t.Run("spend ok", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)
		repo.EXPECT().SpendBalance(gomock.Any(), uint64(1), int64(30), gomock.Any()).
			Return(int64(70), nil)

		s, _ := service.NewService(repo, ts, logger)
		remaining, err := s.SpendBalance(context.Background(), 1, 30)
		assert.NoError(t, err)
		assert.Equal(t, int64(70), remaining)
	})

	t.Run("insufficient balance surfaces distinctly", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)
		repo.EXPECT().SpendBalance(gomock.Any(), uint64(1), int64(500), gomock.Any()).
			Return(int64(0), domain.ErrInsufficientBalance)

		s, _ := service.NewService(repo, ts, logger)
		_, err := s.SpendBalance(context.Background(), 1, 500)
		assert.Equal(t, domain.ErrInsufficientBalance, err)
	})

	t.Run("non-positive amount rejected before storage", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)
		s, _ := service.NewService(repo, ts, logger)
		_, err := s.SpendBalance(context.Background(), 1, -5)
		assert.Equal(t, domain.ErrInvalidAmount, err)
	})
}
