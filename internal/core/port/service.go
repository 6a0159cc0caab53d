package port

import (
	"context"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/govalues/decimal"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

type Service interface {
	// PlaceOrder records a paid order and starts monitoring it.
	// Payment must have happened already: chargeToken is required.
	PlaceOrder(ctx context.Context, totalDue decimal.Decimal, chargeToken string, channel string, items []string) (*domain.Order, error)

	GetOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	GetOrderStatus(ctx context.Context, id domain.OrderID) (domain.OrderStatus, error)
	CancelOrder(ctx context.Context, id domain.OrderID) error
	ListOrders(ctx context.Context, channel string) ([]*domain.Order, error)
}
