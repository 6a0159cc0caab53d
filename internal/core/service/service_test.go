package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/dsemenov/delivbot/internal/core/port/mock"
	"github.com/dsemenov/delivbot/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareMocks func(store *mock.MockOrderStore, monitor *mock.MockOrderMonitor, notifier *mock.MockNotifier)

func newOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:          "e7a2c5ea-1111-4a1a-9f61-2b6f6c1d0001",
		Status:      status,
		CreatedAt:   time.Now(),
		ChargeToken: "tok_abc",
		TotalDue:    decimal.MustParse("33.34"),
		Channel:     "chat-1",
	}
}

func TestService_PlaceOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	placed := newOrder(domain.OrderStatusPlaced)

	type placeOrderTest struct {
		name      string
		token     string
		mock      prepareMocks
		expError  error
		expResult *domain.Order
	}

	tests := []placeOrderTest{
		{
			name:  "Place good order",
			token: "tok_abc",
			mock: func(store *mock.MockOrderStore, monitor *mock.MockOrderMonitor, notifier *mock.MockNotifier) {
				store.EXPECT().CreateOrder(gomock.Any(), placed.TotalDue, "tok_abc", "chat-1", gomock.Any()).
					Return(placed, nil)
				monitor.EXPECT().Watch(placed).Return(nil)
			},
			expError:  nil,
			expResult: placed,
		},
		{
			name:      "Empty charge token",
			token:     "",
			mock:      func(store *mock.MockOrderStore, monitor *mock.MockOrderMonitor, notifier *mock.MockNotifier) {},
			expError:  domain.ErrInvalidPayment,
			expResult: nil,
		},
		{
			name:  "Store rejects token",
			token: "tok_abc",
			mock: func(store *mock.MockOrderStore, monitor *mock.MockOrderMonitor, notifier *mock.MockNotifier) {
				store.EXPECT().CreateOrder(gomock.Any(), placed.TotalDue, "tok_abc", "chat-1", gomock.Any()).
					Return(nil, domain.ErrInvalidPayment)
			},
			expError:  domain.ErrInvalidPayment,
			expResult: nil,
		},
		{
			name:  "Watch failure cancels the order",
			token: "tok_abc",
			mock: func(store *mock.MockOrderStore, monitor *mock.MockOrderMonitor, notifier *mock.MockNotifier) {
				store.EXPECT().CreateOrder(gomock.Any(), placed.TotalDue, "tok_abc", "chat-1", gomock.Any()).
					Return(placed, nil)
				monitor.EXPECT().Watch(placed).Return(domain.ErrInvariantViolation)
				store.EXPECT().CompareAndTransition(gomock.Any(), placed.ID,
					domain.OrderStatusPlaced, domain.OrderStatusCancelled).
					Return(true, nil)
			},
			expError:  domain.ErrInternal,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := mock.NewMockOrderStore(mockCtrl)
			monitor := mock.NewMockOrderMonitor(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			test.mock(store, monitor, notifier)

			s, err := service.NewService(store, monitor, notifier, logger)
			assert.NoError(t, err)

			result, err := s.PlaceOrder(context.Background(),
				decimal.MustParse("33.34"), test.token, "chat-1", nil)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_GetOrderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	order := newOrder(domain.OrderStatusPreparing)

	store := mock.NewMockOrderStore(mockCtrl)
	monitor := mock.NewMockOrderMonitor(mockCtrl)
	notifier := mock.NewMockNotifier(mockCtrl)

	store.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
	store.EXPECT().ReadOrder(gomock.Any(), domain.OrderID("missing")).
		Return(nil, domain.ErrDataNotFound)

	s, err := service.NewService(store, monitor, notifier, logger)
	assert.NoError(t, err)

	status, err := s.GetOrderStatus(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, status)

	_, err = s.GetOrderStatus(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestService_CancelOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type cancelOrderTest struct {
		name     string
		mock     prepareMocks
		expError error
	}

	placed := newOrder(domain.OrderStatusPlaced)
	preparing := newOrder(domain.OrderStatusPreparing)
	delivered := newOrder(domain.OrderStatusDelivered)
	cancelled := newOrder(domain.OrderStatusCancelled)

	tests := []cancelOrderTest{
		{
			name: "Cancel active order",
			mock: func(store *mock.MockOrderStore, monitor *mock.MockOrderMonitor, notifier *mock.MockNotifier) {
				store.EXPECT().ReadOrder(gomock.Any(), placed.ID).Return(placed, nil)
				monitor.EXPECT().Unwatch(placed.ID)
				store.EXPECT().CompareAndTransition(gomock.Any(), placed.ID,
					domain.OrderStatusPlaced, domain.OrderStatusCancelled).Return(true, nil)
				notifier.EXPECT().Send(gomock.Any(), "chat-1", gomock.Any()).Return(nil)
			},
			expError: nil,
		},
		{
			name: "Cancel retries after losing the race to the monitor",
			mock: func(store *mock.MockOrderStore, monitor *mock.MockOrderMonitor, notifier *mock.MockNotifier) {
				store.EXPECT().ReadOrder(gomock.Any(), placed.ID).Return(placed, nil)
				monitor.EXPECT().Unwatch(placed.ID)
				store.EXPECT().CompareAndTransition(gomock.Any(), placed.ID,
					domain.OrderStatusPlaced, domain.OrderStatusCancelled).Return(false, nil)
				store.EXPECT().ReadOrder(gomock.Any(), placed.ID).Return(preparing, nil)
				store.EXPECT().CompareAndTransition(gomock.Any(), placed.ID,
					domain.OrderStatusPreparing, domain.OrderStatusCancelled).Return(true, nil)
				notifier.EXPECT().Send(gomock.Any(), "chat-1", gomock.Any()).Return(nil)
			},
			expError: nil,
		},
		{
			name: "Cancel delivered order",
			mock: func(store *mock.MockOrderStore, monitor *mock.MockOrderMonitor, notifier *mock.MockNotifier) {
				store.EXPECT().ReadOrder(gomock.Any(), delivered.ID).Return(delivered, nil)
				monitor.EXPECT().Unwatch(delivered.ID)
			},
			expError: domain.ErrOrderAlreadyFinal,
		},
		{
			name: "Cancel twice is idempotent",
			mock: func(store *mock.MockOrderStore, monitor *mock.MockOrderMonitor, notifier *mock.MockNotifier) {
				store.EXPECT().ReadOrder(gomock.Any(), cancelled.ID).Return(cancelled, nil)
				monitor.EXPECT().Unwatch(cancelled.ID)
			},
			expError: nil,
		},
		{
			name: "Cancel unknown order",
			mock: func(store *mock.MockOrderStore, monitor *mock.MockOrderMonitor, notifier *mock.MockNotifier) {
				store.EXPECT().ReadOrder(gomock.Any(), placed.ID).
					Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := mock.NewMockOrderStore(mockCtrl)
			monitor := mock.NewMockOrderMonitor(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			test.mock(store, monitor, notifier)

			s, err := service.NewService(store, monitor, notifier, logger)
			assert.NoError(t, err)

			err = s.CancelOrder(context.Background(), placed.ID)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_ListOrders(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	orders := []*domain.Order{newOrder(domain.OrderStatusPlaced)}

	store := mock.NewMockOrderStore(mockCtrl)
	monitor := mock.NewMockOrderMonitor(mockCtrl)
	notifier := mock.NewMockNotifier(mockCtrl)
	store.EXPECT().ListOrdersByChannel(gomock.Any(), "chat-1").Return(orders, nil)

	s, err := service.NewService(store, monitor, notifier, logger)
	assert.NoError(t, err)

	list, err := s.ListOrders(context.Background(), "chat-1")
	assert.NoError(t, err)
	assert.Equal(t, orders, list)
}
