package port

import (
	"context"

	"github.com/govalues/decimal"
)

//go:generate mockgen -source=payment.go -destination=mock/payment.go -package=mock

// PaymentService exchanges a pre-stored payment method id for an opaque
// charge token. Raw card or account data never passes through here.
type PaymentService interface {
	Charge(ctx context.Context, methodID string, amount decimal.Decimal) (string, error)
}
