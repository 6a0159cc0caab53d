package notifier

import (
	"context"

	"go.uber.org/zap"
)

// Log writes every notification to the application log. It backs the demo
// when no websocket client is connected.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (n *Log) Send(ctx context.Context, channel string, text string) error {
	n.logger.Info("notification",
		zap.String("channel", channel), zap.String("text", text))
	return nil
}
