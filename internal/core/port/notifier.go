package port

import "context"

//go:generate mockgen -source=notifier.go -destination=mock/notifier.go -package=mock

// Notifier delivers a message to a user channel. Delivery is at-most-once:
// callers log failures and never retry.
type Notifier interface {
	Send(ctx context.Context, channel string, text string) error
}
