package port

import (
	"context"

	"github.com/dsemenov/delivbot/internal/core/domain"
)

//go:generate mockgen -source=status.go -destination=mock/status.go -package=mock

// StatusSource is the oracle for where an order actually is. It may be slow
// or unavailable; callers bound it with a context deadline and treat errors
// as transient.
type StatusSource interface {
	Poll(ctx context.Context, id domain.OrderID) (string, error)
}
