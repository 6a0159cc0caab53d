package port

import (
	"github.com/dsemenov/delivbot/internal/core/domain"
)

//go:generate mockgen -source=monitor.go -destination=mock/monitor.go -package=mock

// OrderMonitor keeps exactly one polling task per non-terminal order.
type OrderMonitor interface {
	Watch(order *domain.Order) error
	Unwatch(id domain.OrderID)
}
