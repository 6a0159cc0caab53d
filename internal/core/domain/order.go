package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderID string

type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "PLACED"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED_BY_MERCHANT"
	OrderStatusPreparing  OrderStatus = "PREPARING"
	OrderStatusDispatched OrderStatus = "DISPATCHED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// statusRank defines the total order of the delivery pipeline.
// CANCELLED sits outside of it and is handled separately.
var statusRank = map[OrderStatus]int{
	OrderStatusPlaced:     0,
	OrderStatusConfirmed:  1,
	OrderStatusPreparing:  2,
	OrderStatusDispatched: 3,
	OrderStatusDelivered:  4,
}

func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Later reports whether s is strictly further along the lifecycle than other.
// Cancellation counts as later than any non-terminal state and never later
// than a terminal one, so a recorded DELIVERED or CANCELLED can not be
// overwritten.
func (s OrderStatus) Later(other OrderStatus) bool {
	if s == OrderStatusCancelled {
		return !other.Terminal()
	}
	if other == OrderStatusCancelled {
		return false
	}
	return statusRank[s] > statusRank[other]
}

type Order struct {
	ID            OrderID
	Status        OrderStatus
	CreatedAt     time.Time
	LastCheckedAt time.Time
	ChargeToken   string
	TotalDue      decimal.Decimal
	Channel       string
	Items         []string
}
