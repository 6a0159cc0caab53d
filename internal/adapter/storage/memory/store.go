package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// Store is the in-memory order registry. One mutex guards the whole map:
// CompareAndTransition must be linearizable and the order volume of a demo
// bot does not justify anything finer-grained.
type Store struct {
	mu     sync.Mutex
	orders map[domain.OrderID]*domain.Order
}

func NewStore() *Store {
	return &Store{
		orders: make(map[domain.OrderID]*domain.Order),
	}
}

func (s *Store) CreateOrder(ctx context.Context, totalDue decimal.Decimal,
	chargeToken string, channel string, items []string) (*domain.Order, error) {
	if strings.TrimSpace(chargeToken) == "" {
		return nil, domain.ErrInvalidPayment
	}

	order := &domain.Order{
		ID:          domain.OrderID(uuid.NewString()),
		Status:      domain.OrderStatusPlaced,
		CreatedAt:   time.Now(),
		ChargeToken: chargeToken,
		TotalDue:    totalDue,
		Channel:     channel,
		Items:       append([]string(nil), items...),
	}

	s.mu.Lock()
	s.orders[order.ID] = order
	s.mu.Unlock()

	return copyOrder(order), nil
}

func (s *Store) ReadOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return copyOrder(order), nil
}

func (s *Store) CompareAndTransition(ctx context.Context, id domain.OrderID,
	expected, next domain.OrderStatus) (bool, error) {
	if !next.Later(expected) {
		return false, fmt.Errorf("%w: %s does not follow %s",
			domain.ErrInvariantViolation, next, expected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return false, domain.ErrDataNotFound
	}
	if order.Status != expected {
		return false, nil
	}
	order.Status = next
	return true, nil
}

func (s *Store) MarkChecked(ctx context.Context, id domain.OrderID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return domain.ErrDataNotFound
	}
	order.LastCheckedAt = at
	return nil
}

func (s *Store) ListActiveOrders(ctx context.Context) ([]domain.OrderID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []domain.OrderID
	for id, order := range s.orders {
		if !order.Status.Terminal() {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *Store) ListOrdersByChannel(ctx context.Context, channel string) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []*domain.Order
	for _, order := range s.orders {
		if order.Channel == channel {
			list = append(list, copyOrder(order))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func copyOrder(order *domain.Order) *domain.Order {
	cp := *order
	cp.Items = append([]string(nil), order.Items...)
	return &cp
}
