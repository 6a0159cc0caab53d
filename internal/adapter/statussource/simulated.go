package statussource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/dsemenov/delivbot/internal/core/monitor"
	"go.uber.org/zap"
)

// progression is what a real delivery would report over time.
var progression = []string{
	monitor.CodeReceived,
	monitor.CodeAccepted,
	monitor.CodeCooking,
	monitor.CodeCourierAssigned,
	monitor.CodeDelivered,
}

// Simulated is a clock-driven status oracle: an order advances one step of
// the progression every advanceEvery. Consumers must not rely on that; the
// port contract is an opaque, possibly-failing source.
type Simulated struct {
	logger       *zap.Logger
	advanceEvery time.Duration
	now          func() time.Time

	mu       sync.Mutex
	placedAt map[domain.OrderID]time.Time
}

func NewSimulated(advanceEvery time.Duration, logger *zap.Logger) *Simulated {
	return &Simulated{
		logger:       logger,
		advanceEvery: advanceEvery,
		now:          time.Now,
		placedAt:     make(map[domain.OrderID]time.Time),
	}
}

// Register tells the oracle the order exists. Polls for unregistered orders
// fail transiently, the way a real tracking backend lags behind placement.
func (s *Simulated) Register(id domain.OrderID) {
	s.mu.Lock()
	if _, ok := s.placedAt[id]; !ok {
		s.placedAt[id] = s.now()
	}
	s.mu.Unlock()
}

func (s *Simulated) Poll(ctx context.Context, id domain.OrderID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTransientSource, err)
	}

	s.mu.Lock()
	placed, ok := s.placedAt[id]
	s.mu.Unlock()

	if !ok {
		s.logger.Debug("poll for unknown order", zap.String("order", string(id)))
		return "", fmt.Errorf("%w: order %s not registered yet", domain.ErrTransientSource, id)
	}

	step := int(s.now().Sub(placed) / s.advanceEvery)
	if step >= len(progression) {
		step = len(progression) - 1
	}
	return progression[step], nil
}
