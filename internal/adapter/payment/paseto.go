package payment

import (
	"context"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// DeclinedMethodID always fails the charge. Handy for demos and tests.
const DeclinedMethodID = "pm_declined"

// Stub stands in for a payment provider. It never sees raw card data, only
// a pre-stored payment method id, and answers with an opaque charge token
// (a v4 local paseto carrying the method and amount).
type Stub struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
	logger *zap.Logger
}

func NewStub(logger *zap.Logger) *Stub {
	parser := paseto.NewParser()
	key := paseto.NewV4SymmetricKey()

	return &Stub{
		parser: &parser,
		key:    &key,
		logger: logger,
	}
}

func (s *Stub) Charge(ctx context.Context, methodID string, amount decimal.Decimal) (string, error) {
	if methodID == "" || methodID == DeclinedMethodID || !amount.IsPos() {
		s.logger.Info("charge declined",
			zap.String("method", methodID), zap.String("amount", amount.String()))
		return "", domain.ErrPaymentFailed
	}

	token := paseto.NewToken()
	token.SetExpiration(time.Now().Add(24 * time.Hour))
	if err := token.Set("method", methodID); err != nil {
		return "", domain.ErrPaymentFailed
	}
	if err := token.Set("amount", amount.String()); err != nil {
		return "", domain.ErrPaymentFailed
	}

	s.logger.Info("charge accepted",
		zap.String("method", methodID), zap.String("amount", amount.String()))
	return token.V4Encrypt(*s.key, nil), nil
}

type ChargeClaims struct {
	Method string
	Amount string
}

// Verify decodes a token minted by this stub. The core never needs it; it
// exists for debugging and tests.
func (s *Stub) Verify(token string) (*ChargeClaims, error) {
	parsed, err := s.parser.ParseV4Local(*s.key, token, nil)
	if err != nil {
		return nil, domain.ErrPaymentFailed
	}

	var claims ChargeClaims
	if err := parsed.Get("method", &claims.Method); err != nil {
		return nil, domain.ErrPaymentFailed
	}
	if err := parsed.Get("amount", &claims.Amount); err != nil {
		return nil, domain.ErrPaymentFailed
	}
	return &claims, nil
}
