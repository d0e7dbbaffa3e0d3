package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/mehtaam/shopstack/internal/core/port"
	"github.com/mehtaam/shopstack/internal/core/port/mock"
	"github.com/mehtaam/shopstack/internal/core/service"
	"github.com/mehtaam/shopstack/internal/core/utils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestService_UserRegister(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{Login: "test", Password: hashedPass, ID: 1}

	type userRegisterTest struct {
		name      string
		user      domain.User
		mock      func(repo *mock.MockRepository)
		expError  error
		expResult *domain.User
	}

	tests := []userRegisterTest{
		{
			name: "Register good",
			user: domain.User{Login: user.Login, Password: "test"},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(&user, nil)
			},
			expError:  nil,
			expResult: &user,
		},
		{
			name: "Register already exists",
			user: domain.User{Login: user.Login, Password: "test"},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError:  domain.ErrConflictingData,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			test.mock(repo)

			s, err := service.NewService(repo, ts, logger)
			assert.NoError(t, err)

			result, err := s.RegisterUser(context.Background(), &test.user)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_UserLogin(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{Login: "test", Password: hashedPass, ID: 1}

	type userLoginTest struct {
		name     string
		login    string
		password string
		mock     func(repo *mock.MockRepository, ts *mock.MockTokenService)
		expError error
	}

	tests := []userLoginTest{
		{
			name:     "Login good",
			login:    user.Login,
			password: "test",
			mock: func(repo *mock.MockRepository, ts *mock.MockTokenService) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
				ts.EXPECT().CreateToken(&user).Return("token", nil)
			},
			expError: nil,
		},
		{
			name:     "Password bad",
			login:    user.Login,
			password: "hacker",
			mock: func(repo *mock.MockRepository, ts *mock.MockTokenService) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError: domain.ErrInvalidCredentials,
		},
		{
			name:     "Login bad",
			login:    "hacker",
			password: "test",
			mock: func(repo *mock.MockRepository, ts *mock.MockTokenService) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), "hacker").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			test.mock(repo, ts)

			s, err := service.NewService(repo, ts, logger)
			assert.NoError(t, err)

			token, err := s.LoginUser(context.Background(), test.login, test.password)
			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				assert.NotEmpty(t, token)
			}
		})
	}
}

func validOrder() *domain.Order {
	return &domain.Order{
		ID:            "A-1",
		UserID:        1,
		PaymentMethod: domain.PaymentCard,
		Items: []domain.LineItem{
			{ProductID: "p1", Name: "Widget", UnitPrice: 400, Quantity: 1},
		},
		Subtotal:       400,
		Discount:       50,
		DeliveryCharge: 100,
		ConvenienceFee: 30,
		PlatformFee:    20,
		Total:          500,
	}
}

func TestService_CreateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type createOrderTest struct {
		name     string
		order    *domain.Order
		mock     func(repo *mock.MockRepository)
		expError error
	}

	tests := []createOrderTest{
		{
			name:  "Create good order",
			order: validOrder(),
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), "A-1").Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().ActiveSaleForProduct(gomock.Any(), "p1", gomock.Any()).
					Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
			},
			expError: nil,
		},
		{
			name: "Totals mismatch rejected",
			order: func() *domain.Order {
				o := validOrder()
				o.Total = 999
				return o
			}(),
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrOrderTotalsMismatch,
		},
		{
			name: "Negative component rejected",
			order: func() *domain.Order {
				o := validOrder()
				o.Discount = -10
				return o
			}(),
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrOrderTotalsMismatch,
		},
		{
			name:  "Order already placed",
			order: validOrder(),
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), "A-1").Return(validOrder(), nil)
			},
			expError: domain.ErrOrderAlreadyPlaced,
		},
		{
			name:  "Insert conflict maps to already placed",
			order: validOrder(),
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), "A-1").Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().ActiveSaleForProduct(gomock.Any(), "p1", gomock.Any()).
					Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrConflictingData)
			},
			expError: domain.ErrOrderAlreadyPlaced,
		},
		{
			name:  "Sale commitment race lost",
			order: validOrder(),
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), "A-1").Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().ActiveSaleForProduct(gomock.Any(), "p1", gomock.Any()).
					Return(&domain.Sale{ID: 9, ProductID: "p1", Allocation: 5, Committed: 5}, nil)
				repo.EXPECT().CommitSaleQuantity(gomock.Any(), uint64(9), 1).
					Return(domain.ErrSaleSoldOut)
			},
			expError: domain.ErrSaleSoldOut,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			test.mock(repo)

			s, err := service.NewService(repo, ts, logger)
			assert.NoError(t, err)

			_, err = s.CreateOrder(context.Background(), test.order)
			assert.Equal(t, test.expError, err)
		})
	}
}

func twoLineOrder() *domain.Order {
	return &domain.Order{
		ID:            "A-2",
		UserID:        1,
		PaymentMethod: domain.PaymentCard,
		Items: []domain.LineItem{
			{ProductID: "p1", Name: "Widget", UnitPrice: 400, Quantity: 2},
			{ProductID: "p2", Name: "Gadget", UnitPrice: 300, Quantity: 1},
		},
		Subtotal: 1100,
		Total:    1100,
	}
}

// A failure after any sale commit must give the claimed allocation back;
// otherwise the sale shrinks for later buyers with no order behind it.
func TestService_CreateOrderReleasesSaleCommitsOnFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type releaseTest struct {
		name     string
		order    *domain.Order
		mock     func(repo *mock.MockRepository)
		expError error
	}

	tests := []releaseTest{
		{
			name:  "Sibling line sold out releases first commit",
			order: twoLineOrder(),
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), "A-2").Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().ActiveSaleForProduct(gomock.Any(), "p1", gomock.Any()).
					Return(&domain.Sale{ID: 7, ProductID: "p1", Allocation: 5, Committed: 0}, nil)
				repo.EXPECT().CommitSaleQuantity(gomock.Any(), uint64(7), 2).Return(nil)
				repo.EXPECT().ActiveSaleForProduct(gomock.Any(), "p2", gomock.Any()).
					Return(&domain.Sale{ID: 8, ProductID: "p2", Allocation: 1, Committed: 1}, nil)
				repo.EXPECT().CommitSaleQuantity(gomock.Any(), uint64(8), 1).
					Return(domain.ErrSaleSoldOut)
				repo.EXPECT().ReleaseSaleQuantity(gomock.Any(), uint64(7), 2).Return(nil)
			},
			expError: domain.ErrSaleSoldOut,
		},
		{
			name:  "Duplicate-order race releases commit of the loser",
			order: validOrder(),
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), "A-1").Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().ActiveSaleForProduct(gomock.Any(), "p1", gomock.Any()).
					Return(&domain.Sale{ID: 7, ProductID: "p1", Allocation: 5, Committed: 0}, nil)
				repo.EXPECT().CommitSaleQuantity(gomock.Any(), uint64(7), 1).Return(nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrConflictingData)
				repo.EXPECT().ReleaseSaleQuantity(gomock.Any(), uint64(7), 1).Return(nil)
			},
			expError: domain.ErrOrderAlreadyPlaced,
		},
		{
			name:  "Insert failure releases all commits",
			order: twoLineOrder(),
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), "A-2").Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().ActiveSaleForProduct(gomock.Any(), "p1", gomock.Any()).
					Return(&domain.Sale{ID: 7, ProductID: "p1", Allocation: 5, Committed: 0}, nil)
				repo.EXPECT().CommitSaleQuantity(gomock.Any(), uint64(7), 2).Return(nil)
				repo.EXPECT().ActiveSaleForProduct(gomock.Any(), "p2", gomock.Any()).
					Return(&domain.Sale{ID: 8, ProductID: "p2", Allocation: 3, Committed: 0}, nil)
				repo.EXPECT().CommitSaleQuantity(gomock.Any(), uint64(8), 1).Return(nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrInternal)
				repo.EXPECT().ReleaseSaleQuantity(gomock.Any(), uint64(7), 2).Return(nil)
				repo.EXPECT().ReleaseSaleQuantity(gomock.Any(), uint64(8), 1).Return(nil)
			},
			expError: domain.ErrInternal,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			test.mock(repo)

			s, err := service.NewService(repo, ts, logger)
			assert.NoError(t, err)

			_, err = s.CreateOrder(context.Background(), test.order)
			assert.Equal(t, test.expError, err)
		})
	}
}

// Runs the update closure against an in-memory line the way the repository
// would, so the monotonicity logic is exercised end to end.
func applyUpdates(t *testing.T, s *service.Service, repo *mock.MockRepository,
	line *domain.ShipmentLine, updates []port.TrackingUpdate) {
	t.Helper()
	for _, upd := range updates {
		repo.EXPECT().UpdateShipmentLine(gomock.Any(), upd.OrderID, upd.LineIndex, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ int, fn port.UpdateShipmentFn) (*domain.ShipmentLine, error) {
				if err := fn(line); err != nil {
					return nil, err
				}
				return line, nil
			})
		_, err := s.ApplyTrackingUpdate(context.Background(), upd)
		assert.NoError(t, err)
	}
}

func TestService_ApplyTrackingUpdateMonotonic(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)
	s, _ := service.NewService(repo, ts, logger)

	line := &domain.ShipmentLine{
		OrderID: "A-1", LineIndex: 0,
		Status: domain.StatusProcessing, Flow: domain.FlowNormal, Progress: 2,
	}

	now := time.Now()
	applyUpdates(t, s, repo, line, []port.TrackingUpdate{
		{OrderID: "A-1", LineIndex: 0, RawStatus: "in_transit", At: now},
		// stale courier replay must not regress
		{OrderID: "A-1", LineIndex: 0, RawStatus: "PACKED", At: now.Add(time.Minute)},
	})

	assert.Equal(t, domain.StatusShipped, line.Status)
	assert.Equal(t, 3, line.Progress)
}

func TestService_ApplyTrackingUpdateDeliveredThenReturn(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)
	s, _ := service.NewService(repo, ts, logger)

	line := &domain.ShipmentLine{
		OrderID: "A-1", LineIndex: 0,
		Status: domain.StatusShipped, Flow: domain.FlowNormal, Progress: 3,
	}

	now := time.Now()
	applyUpdates(t, s, repo, line, []port.TrackingUpdate{
		{OrderID: "A-1", LineIndex: 0, RawStatus: "DELIVERED", At: now},
		{OrderID: "A-1", LineIndex: 0, RawStatus: "RETURN_ACCEPTED", At: now.Add(time.Hour)},
		{OrderID: "A-1", LineIndex: 0, RawStatus: "RETURN_REFUND_COMPLETED", At: now.Add(2 * time.Hour)},
	})

	assert.Equal(t, domain.StatusRefundCompleted, line.Status)
	assert.Equal(t, domain.FlowReturn, line.Flow)
	assert.Equal(t, 7, line.Progress)
	assert.NotNil(t, line.DeliveredAt)
}

func TestService_ApplyTrackingUpdateTerminal(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)
	s, _ := service.NewService(repo, ts, logger)

	line := &domain.ShipmentLine{
		OrderID: "A-1", LineIndex: 0,
		Status: domain.StatusCancelled, Flow: domain.FlowCancelled, Progress: 1,
	}

	repo.EXPECT().UpdateShipmentLine(gomock.Any(), "A-1", 0, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ int, fn port.UpdateShipmentFn) (*domain.ShipmentLine, error) {
			if err := fn(line); err != nil {
				return nil, err
			}
			return line, nil
		})

	_, err := s.ApplyTrackingUpdate(context.Background(), port.TrackingUpdate{
		OrderID: "A-1", LineIndex: 0, RawStatus: "shipped", At: time.Now(),
	})
	assert.Equal(t, domain.ErrShipmentFinal, err)
}

func TestService_ShipmentTimelines(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)
	s, _ := service.NewService(repo, ts, logger)

	order := validOrder()
	order.PlacedAt = time.Now().Add(-48 * time.Hour)
	delivered := time.Now()

	// Multi-line order with lines in different states simultaneously.
	repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
	repo.EXPECT().ListShipmentLines(gomock.Any(), order.ID).Return([]*domain.ShipmentLine{
		{OrderID: order.ID, LineIndex: 0, Status: domain.StatusDelivered,
			Flow: domain.FlowNormal, Progress: 4, DeliveredAt: &delivered},
		{OrderID: order.ID, LineIndex: 1, Status: domain.StatusShipped,
			Flow: domain.FlowNormal, Progress: 3},
	}, nil)

	timelines, err := s.ShipmentTimelines(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Len(t, timelines, 2)
	assert.True(t, timelines[0].Steps[3].Completed)
	assert.False(t, timelines[1].Steps[3].Completed)
}

func TestService_CreateSale(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	sale := &domain.Sale{
		ProductID:       "p1",
		DiscountPercent: decimal.MustParse("20"),
		Allocation:      10,
		StartsAt:        time.Now(),
		EndsAt:          time.Now().Add(24 * time.Hour),
	}

	t.Run("allocation within inventory", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)
		repo.EXPECT().ReadProduct(gomock.Any(), "p1").
			Return(&domain.Product{ID: "p1", Inventory: 50}, nil)
		repo.EXPECT().CreateSale(gomock.Any(), sale).Return(sale, nil)

		s, _ := service.NewService(repo, ts, logger)
		_, err := s.CreateSale(context.Background(), sale)
		assert.NoError(t, err)
	})

	t.Run("allocation beyond inventory rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		ts := mock.NewMockTokenService(mockCtrl)
		repo.EXPECT().ReadProduct(gomock.Any(), "p1").
			Return(&domain.Product{ID: "p1", Inventory: 5}, nil)

		s, _ := service.NewService(repo, ts, logger)
		_, err := s.CreateSale(context.Background(), sale)
		assert.Equal(t, domain.ErrSaleOverAllocated, err)
	})
}

func TestService_QuoteCheckout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)

	sale := &domain.Sale{
		ID: 1, ProductID: "p1",
		DiscountPercent: decimal.MustParse("10"),
		Allocation:      10,
		StartsAt:        time.Now().Add(-time.Hour),
		EndsAt:          time.Now().Add(time.Hour),
	}

	repo.EXPECT().ActiveSaleForProduct(gomock.Any(), "p1", gomock.Any()).Return(sale, nil)
	repo.EXPECT().ActiveSaleForProduct(gomock.Any(), "p2", gomock.Any()).
		Return(nil, domain.ErrDataNotFound)

	s, _ := service.NewService(repo, ts, logger)
	quotes, err := s.QuoteCheckout(context.Background(), []domain.LineItem{
		{ProductID: "p1", UnitPrice: 1000, Quantity: 1},
		{ProductID: "p2", UnitPrice: 2000, Quantity: 1},
	})
	assert.NoError(t, err)
	assert.Len(t, quotes, 2)
	assert.Equal(t, int64(900), quotes[0].Quote.Price)
	assert.False(t, quotes[0].Quote.CouponAllowed)
	assert.Equal(t, int64(2000), quotes[1].Quote.Price)
	assert.True(t, quotes[1].Quote.CouponAllowed)
}
