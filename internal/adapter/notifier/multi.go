package notifier

import (
	"context"
	"errors"

	"github.com/dsemenov/delivbot/internal/core/port"
)

// Multi fans a notification out to several notifiers. Every notifier gets
// the message even if an earlier one failed.
type Multi []port.Notifier

func (m Multi) Send(ctx context.Context, channel string, text string) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(ctx, channel, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
