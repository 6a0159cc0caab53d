package notifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dsemenov/delivbot/internal/adapter/notifier"
	"github.com/stretchr/testify/assert"
)

type countingNotifier struct {
	calls int
	err   error
}

func (c *countingNotifier) Send(context.Context, string, string) error {
	c.calls++
	return c.err
}

func TestMulti_AllNotifiersRunDespiteFailures(t *testing.T) {
	failed := errors.New("socket closed")
	first := &countingNotifier{err: failed}
	second := &countingNotifier{}

	m := notifier.Multi{first, second}
	err := m.Send(context.Background(), "chat-1", "your food is being prepared")

	assert.ErrorIs(t, err, failed)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestMulti_Empty(t *testing.T) {
	assert.NoError(t, notifier.Multi{}.Send(context.Background(), "chat-1", "hi"))
}
