package port

import (
	"context"
	"time"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/govalues/decimal"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// OrderStore owns all orders and is the sole writer of status transitions.
// CompareAndTransition is the single point of serialization for concurrent
// pollers and cancellations.
type OrderStore interface {
	CreateOrder(ctx context.Context, totalDue decimal.Decimal, chargeToken string, channel string, items []string) (*domain.Order, error)
	ReadOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error)

	// CompareAndTransition applies next only if the current status equals
	// expected and next is later in the lifecycle. Returns whether it applied.
	CompareAndTransition(ctx context.Context, id domain.OrderID, expected, next domain.OrderStatus) (bool, error)

	MarkChecked(ctx context.Context, id domain.OrderID, at time.Time) error

	ListActiveOrders(ctx context.Context) ([]domain.OrderID, error)
	ListOrdersByChannel(ctx context.Context, channel string) ([]*domain.Order, error)
}
