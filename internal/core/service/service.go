package service

import (
	"context"
	"errors"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/dsemenov/delivbot/internal/core/port"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type Service struct {
	store    port.OrderStore
	monitor  port.OrderMonitor
	notifier port.Notifier
	logger   *zap.Logger
}

func NewService(store port.OrderStore, monitor port.OrderMonitor,
	notifier port.Notifier, logger *zap.Logger) (*Service, error) {
	return &Service{
		store:    store,
		monitor:  monitor,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// PlaceOrder records a paid order and starts its polling task. The charge
// token is the proof of payment; without it no order exists and nothing is
// monitored.
func (s *Service) PlaceOrder(ctx context.Context, totalDue decimal.Decimal,
	chargeToken string, channel string, items []string) (*domain.Order, error) {
	if chargeToken == "" {
		return nil, domain.ErrInvalidPayment
	}

	order, err := s.store.CreateOrder(ctx, totalDue, chargeToken, channel, items)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	if err := s.monitor.Watch(order); err != nil {
		// An order nobody watches would never notify. Cancel it rather
		// than leave it stuck in PLACED.
		s.logger.Error("Start monitoring failed, cancelling order",
			zap.String("order", string(order.ID)), zap.Error(err))
		if _, cErr := s.store.CompareAndTransition(ctx, order.ID,
			order.Status, domain.OrderStatusCancelled); cErr != nil {
			s.logger.Error("Cancel after watch failure",
				zap.String("order", string(order.ID)), zap.Error(cErr))
		}
		return nil, domain.ErrInternal
	}

	s.logger.Info("Order placed",
		zap.String("order", string(order.ID)),
		zap.String("total", order.TotalDue.String()))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	return s.store.ReadOrder(ctx, id)
}

func (s *Service) GetOrderStatus(ctx context.Context, id domain.OrderID) (domain.OrderStatus, error) {
	order, err := s.store.ReadOrder(ctx, id)
	if err != nil {
		return "", err
	}
	return order.Status, nil
}

// CancelOrder stops monitoring and moves the order to CANCELLED. Unwatch
// waits for the order's polling task to exit, so by the time the CAS loop
// runs no further notification can fire; a transition the task applied on
// its way out stands and the loop retries from the fresher state.
func (s *Service) CancelOrder(ctx context.Context, id domain.OrderID) error {
	order, err := s.store.ReadOrder(ctx, id)
	if err != nil {
		return err
	}

	s.monitor.Unwatch(id)

	for {
		if order.Status.Terminal() {
			if order.Status == domain.OrderStatusCancelled {
				return nil
			}
			return domain.ErrOrderAlreadyFinal
		}

		applied, err := s.store.CompareAndTransition(ctx, id,
			order.Status, domain.OrderStatusCancelled)
		if err != nil {
			if errors.Is(err, domain.ErrInvariantViolation) {
				s.logger.Error("Cancel transition rejected",
					zap.String("order", string(id)), zap.Error(err))
				return domain.ErrInternal
			}
			return err
		}
		if applied {
			break
		}

		order, err = s.store.ReadOrder(ctx, id)
		if err != nil {
			return err
		}
	}

	if err := s.notifier.Send(ctx, order.Channel, "your order was cancelled"); err != nil {
		s.logger.Warn("Cancel notification delivery failed",
			zap.String("order", string(id)), zap.Error(err))
	}

	s.logger.Info("Order cancelled", zap.String("order", string(id)))
	return nil
}

func (s *Service) ListOrders(ctx context.Context, channel string) ([]*domain.Order, error) {
	list, err := s.store.ListOrdersByChannel(ctx, channel)
	if err != nil {
		s.logger.Error("List orders for channel", zap.Error(err))
		return nil, err
	}
	return list, nil
}
