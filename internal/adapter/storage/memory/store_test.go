package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dsemenov/delivbot/internal/adapter/storage/memory"
	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateOrder(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, decimal.MustParse("33.34"), "tok_abc", "chat-1", []string{"Ramen (Sushi Zen)"})
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderStatusPlaced, order.Status)
	assert.Equal(t, "tok_abc", order.ChargeToken)
	assert.False(t, order.CreatedAt.IsZero())

	// Fresh id on every create.
	second, err := store.CreateOrder(ctx, decimal.MustParse("10"), "tok_def", "chat-1", nil)
	require.NoError(t, err)
	assert.NotEqual(t, order.ID, second.ID)
}

func TestStore_CreateOrderRequiresChargeToken(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	for _, token := range []string{"", "   "} {
		_, err := store.CreateOrder(ctx, decimal.MustParse("5"), token, "chat-1", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidPayment)
	}

	ids, err := store.ListActiveOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_ReadOrder(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	_, err := store.ReadOrder(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDataNotFound)

	order, err := store.CreateOrder(ctx, decimal.MustParse("5"), "tok", "chat-1", []string{"Tempura (Sushi Zen)"})
	require.NoError(t, err)

	got, err := store.ReadOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// Reads return copies, not aliases into the store.
	got.Status = domain.OrderStatusDelivered
	got.Items[0] = "mutated"
	again, err := store.ReadOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPlaced, again.Status)
	assert.Equal(t, "Tempura (Sushi Zen)", again.Items[0])
}

func TestStore_CompareAndTransition(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, decimal.MustParse("5"), "tok", "chat-1", nil)
	require.NoError(t, err)

	tests := []struct {
		name       string
		expected   domain.OrderStatus
		next       domain.OrderStatus
		applied    bool
		wantErr    error
		wantStatus domain.OrderStatus
	}{
		{
			name:       "forward transition applies",
			expected:   domain.OrderStatusPlaced,
			next:       domain.OrderStatusPreparing,
			applied:    true,
			wantStatus: domain.OrderStatusPreparing,
		},
		{
			name:       "stale expected does not apply",
			expected:   domain.OrderStatusPlaced,
			next:       domain.OrderStatusDispatched,
			applied:    false,
			wantStatus: domain.OrderStatusPreparing,
		},
		{
			name:       "regression is an invariant breach",
			expected:   domain.OrderStatusPreparing,
			next:       domain.OrderStatusPlaced,
			wantErr:    domain.ErrInvariantViolation,
			wantStatus: domain.OrderStatusPreparing,
		},
		{
			name:       "same state is an invariant breach",
			expected:   domain.OrderStatusPreparing,
			next:       domain.OrderStatusPreparing,
			wantErr:    domain.ErrInvariantViolation,
			wantStatus: domain.OrderStatusPreparing,
		},
		{
			name:       "cancel from non-terminal applies",
			expected:   domain.OrderStatusPreparing,
			next:       domain.OrderStatusCancelled,
			applied:    true,
			wantStatus: domain.OrderStatusCancelled,
		},
		{
			name:       "nothing follows a terminal state",
			expected:   domain.OrderStatusCancelled,
			next:       domain.OrderStatusDelivered,
			wantErr:    domain.ErrInvariantViolation,
			wantStatus: domain.OrderStatusCancelled,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			applied, err := store.CompareAndTransition(ctx, order.ID, test.expected, test.next)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, test.applied, applied)
			}

			got, err := store.ReadOrder(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, test.wantStatus, got.Status)
		})
	}

	_, err = store.CompareAndTransition(ctx, "missing", domain.OrderStatusPlaced, domain.OrderStatusPreparing)
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestStore_CompareAndTransitionIsAtomic(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, decimal.MustParse("5"), "tok", "chat-1", nil)
	require.NoError(t, err)

	// Two racers observe PLACED and both try to move on. Exactly one wins.
	const racers = 16
	var wg sync.WaitGroup
	applies := make(chan bool, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			applied, err := store.CompareAndTransition(ctx, order.ID,
				domain.OrderStatusPlaced, domain.OrderStatusConfirmed)
			assert.NoError(t, err)
			applies <- applied
		}()
	}
	wg.Wait()
	close(applies)

	wins := 0
	for applied := range applies {
		if applied {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestStore_MarkChecked(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.MarkChecked(ctx, "missing", time.Now()), domain.ErrDataNotFound)

	order, err := store.CreateOrder(ctx, decimal.MustParse("5"), "tok", "chat-1", nil)
	require.NoError(t, err)

	at := time.Now()
	require.NoError(t, store.MarkChecked(ctx, order.ID, at))

	got, err := store.ReadOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.LastCheckedAt.Equal(at))
}

func TestStore_ListActiveOrders(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	active, err := store.CreateOrder(ctx, decimal.MustParse("5"), "tok", "chat-1", nil)
	require.NoError(t, err)
	done, err := store.CreateOrder(ctx, decimal.MustParse("6"), "tok", "chat-1", nil)
	require.NoError(t, err)

	_, err = store.CompareAndTransition(ctx, done.ID, domain.OrderStatusPlaced, domain.OrderStatusCancelled)
	require.NoError(t, err)

	ids, err := store.ListActiveOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.OrderID{active.ID}, ids)
}

func TestStore_ListOrdersByChannel(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	first, err := store.CreateOrder(ctx, decimal.MustParse("5"), "tok", "chat-1", nil)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := store.CreateOrder(ctx, decimal.MustParse("6"), "tok", "chat-1", nil)
	require.NoError(t, err)
	_, err = store.CreateOrder(ctx, decimal.MustParse("7"), "tok", "chat-2", nil)
	require.NoError(t, err)

	list, err := store.ListOrdersByChannel(ctx, "chat-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}
