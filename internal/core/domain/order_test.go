package domain_test

import (
	"testing"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Later(t *testing.T) {
	type laterTest struct {
		name     string
		s        domain.OrderStatus
		other    domain.OrderStatus
		expLater bool
	}

	tests := []laterTest{
		{"Confirmed after placed", domain.OrderStatusConfirmed, domain.OrderStatusPlaced, true},
		{"Delivered after dispatched", domain.OrderStatusDelivered, domain.OrderStatusDispatched, true},
		{"Skip ahead", domain.OrderStatusDispatched, domain.OrderStatusPlaced, true},
		{"Same state", domain.OrderStatusPreparing, domain.OrderStatusPreparing, false},
		{"Regression", domain.OrderStatusConfirmed, domain.OrderStatusPreparing, false},
		{"Cancel beats non-terminal", domain.OrderStatusCancelled, domain.OrderStatusDispatched, true},
		{"Cancel does not beat delivered", domain.OrderStatusCancelled, domain.OrderStatusDelivered, false},
		{"Cancel does not beat cancel", domain.OrderStatusCancelled, domain.OrderStatusCancelled, false},
		{"Nothing after cancel", domain.OrderStatusDelivered, domain.OrderStatusCancelled, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expLater, test.s.Later(test.other))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, domain.OrderStatusDelivered.Terminal())
	assert.True(t, domain.OrderStatusCancelled.Terminal())

	for _, s := range []domain.OrderStatus{
		domain.OrderStatusPlaced,
		domain.OrderStatusConfirmed,
		domain.OrderStatusPreparing,
		domain.OrderStatusDispatched,
	} {
		assert.False(t, s.Terminal(), string(s))
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []domain.OrderStatus{
		domain.OrderStatusPlaced,
		domain.OrderStatusConfirmed,
		domain.OrderStatusPreparing,
		domain.OrderStatusDispatched,
		domain.OrderStatusDelivered,
		domain.OrderStatusCancelled,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, domain.OrderStatus("COOKING").Valid())
	assert.False(t, domain.OrderStatus("").Valid())
}
