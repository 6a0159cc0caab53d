package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/dsemenov/delivbot/internal/core/port"
	"go.uber.org/zap"
)

// External status codes spoken by the status source.
const (
	CodeReceived        = "RECEIVED"
	CodeAccepted        = "ACCEPTED"
	CodeCooking         = "COOKING"
	CodeCourierAssigned = "COURIER_ASSIGNED"
	CodeDelivered       = "DELIVERED"
	CodeVoid            = "VOID"
)

var stateForCode = map[string]domain.OrderStatus{
	CodeReceived:        domain.OrderStatusPlaced,
	CodeAccepted:        domain.OrderStatusConfirmed,
	CodeCooking:         domain.OrderStatusPreparing,
	CodeCourierAssigned: domain.OrderStatusDispatched,
	CodeDelivered:       domain.OrderStatusDelivered,
	CodeVoid:            domain.OrderStatusCancelled,
}

// StateForCode maps an external status code to a lifecycle state.
func StateForCode(code string) (domain.OrderStatus, bool) {
	state, ok := stateForCode[code]
	return state, ok
}

var statusMessage = map[domain.OrderStatus]string{
	domain.OrderStatusConfirmed:  "the restaurant confirmed your order",
	domain.OrderStatusPreparing:  "your food is being prepared",
	domain.OrderStatusDispatched: "a courier picked up your order and is on the way",
	domain.OrderStatusDelivered:  "your order was delivered, enjoy!",
	domain.OrderStatusCancelled:  "your order was cancelled",
}

const stillCheckingMessage = "we are still checking on your order, sorry for the delay"

const (
	defaultInterval          = 10 * time.Minute
	defaultPollTimeout       = 10 * time.Second
	defaultFailureAlertAfter = 10
)

type Option func(*Monitor)

func WithInterval(d time.Duration) Option {
	return func(m *Monitor) { m.interval = d }
}

func WithPollTimeout(d time.Duration) Option {
	return func(m *Monitor) { m.pollTimeout = d }
}

// WithFailureAlertAfter sets how many consecutive transient source failures
// are tolerated silently before the user gets a single heads-up. Polling
// itself never gives up.
func WithFailureAlertAfter(n int) Option {
	return func(m *Monitor) { m.failureAlertAfter = n }
}

// Monitor runs one polling task per non-terminal order. Tasks share no
// mutable state with each other; every status change goes through the
// store's compare-and-transition.
type Monitor struct {
	store    port.OrderStore
	source   port.StatusSource
	notifier port.Notifier
	logger   *zap.Logger

	interval          time.Duration
	pollTimeout       time.Duration
	failureAlertAfter int

	root     context.Context
	shutdown context.CancelFunc

	mu       sync.Mutex
	watchers map[domain.OrderID]*watcher
	wg       sync.WaitGroup
}

// watcher is one order's polling task. done is closed when the task
// goroutine has fully returned, so Unwatch can wait out an in-flight tick.
type watcher struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func New(store port.OrderStore, source port.StatusSource, notifier port.Notifier,
	logger *zap.Logger, opts ...Option) *Monitor {
	root, shutdown := context.WithCancel(context.Background())
	m := &Monitor{
		store:             store,
		source:            source,
		notifier:          notifier,
		logger:            logger,
		interval:          defaultInterval,
		pollTimeout:       defaultPollTimeout,
		failureAlertAfter: defaultFailureAlertAfter,
		root:              root,
		shutdown:          shutdown,
		watchers:          make(map[domain.OrderID]*watcher),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Watch starts the polling task for an order. Exactly one task may exist
// per order; a second Watch for the same id is an invariant breach on the
// caller's side. Terminal orders get no task at all.
func (m *Monitor) Watch(order *domain.Order) error {
	if order.ChargeToken == "" {
		return domain.ErrInvalidPayment
	}
	if order.Status.Terminal() {
		return nil
	}

	m.mu.Lock()
	if _, ok := m.watchers[order.ID]; ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: order %s is already watched", domain.ErrInvariantViolation, order.ID)
	}
	ctx, cancel := context.WithCancel(m.root)
	w := &watcher{cancel: cancel, done: make(chan struct{})}
	m.watchers[order.ID] = w
	m.wg.Add(1)
	m.mu.Unlock()

	go m.watch(ctx, w, order.ID, order.Channel)
	return nil
}

// Unwatch stops an order's polling task and waits for it to exit. An
// in-flight tick may still apply its transition, but once Unwatch returns
// no notification for this order will follow.
func (m *Monitor) Unwatch(id domain.OrderID) {
	m.mu.Lock()
	w, ok := m.watchers[id]
	m.mu.Unlock()
	if ok {
		w.cancel()
		<-w.done
	}
}

// Resume starts a task for every non-terminal order in the store. Orders
// already being watched are skipped.
func (m *Monitor) Resume(ctx context.Context) error {
	ids, err := m.store.ListActiveOrders(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		order, err := m.store.ReadOrder(ctx, id)
		if err != nil {
			m.logger.Error("resume: read order", zap.String("order", string(id)), zap.Error(err))
			continue
		}
		if err := m.Watch(order); err != nil {
			m.logger.Debug("resume: order skipped", zap.String("order", string(id)), zap.Error(err))
		}
	}
	return nil
}

// Close cancels every polling task and waits for them to exit.
func (m *Monitor) Close() {
	m.shutdown()
	m.wg.Wait()
}

func (m *Monitor) watch(ctx context.Context, w *watcher, id domain.OrderID, channel string) {
	defer m.wg.Done()
	defer close(w.done)
	defer m.forget(id)

	log := m.logger.With(zap.String("order", string(id)))
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			log.Debug("watch cancelled")
			return
		case <-ticker.C:
		}

		if m.tick(ctx, id, channel, log, &failures) {
			return
		}
	}
}

// tick performs one status poll. It returns true when the task must stop:
// terminal state reached, cancellation observed, or the store contract is
// broken for this order.
func (m *Monitor) tick(ctx context.Context, id domain.OrderID, channel string,
	log *zap.Logger, failures *int) bool {
	pollCtx, cancel := context.WithTimeout(ctx, m.pollTimeout)
	code, err := m.source.Poll(pollCtx, id)
	cancel()

	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		*failures++
		log.Debug("status poll failed, retrying on next tick",
			zap.Error(err), zap.Int("consecutive", *failures))
		if *failures == m.failureAlertAfter {
			m.notify(ctx, channel, stillCheckingMessage, log)
		}
		return false
	}
	*failures = 0

	next, ok := stateForCode[code]
	if !ok {
		log.Warn("unknown status code from source", zap.String("code", code))
		return false
	}

	order, err := m.store.ReadOrder(ctx, id)
	if err != nil {
		log.Error("order missing from store, abandoning watch", zap.Error(err))
		return true
	}
	if err := m.store.MarkChecked(ctx, id, time.Now()); err != nil {
		log.Error("mark checked failed, abandoning watch", zap.Error(err))
		return true
	}

	if order.Status.Terminal() {
		// Cancelled (or finished) behind our back, stop polling.
		return true
	}
	if !next.Later(order.Status) {
		log.Debug("stale status discarded",
			zap.String("reported", string(next)), zap.String("recorded", string(order.Status)))
		return false
	}

	applied, err := m.store.CompareAndTransition(ctx, id, order.Status, next)
	if err != nil {
		log.Error("transition rejected by store, abandoning watch", zap.Error(err))
		return true
	}
	if !applied {
		// Someone moved the order between our read and the CAS. The next
		// tick re-reads and reconciles.
		log.Debug("transition lost a race, will re-read on next tick")
		return false
	}

	if ctx.Err() != nil {
		// Cancellation arrived while the tick was in flight. The applied
		// transition stands, but no notification may follow it.
		return true
	}

	log.Info("order transitioned",
		zap.String("from", string(order.Status)), zap.String("to", string(next)))
	m.notify(ctx, channel, statusMessage[next], log)

	return next.Terminal()
}

func (m *Monitor) notify(ctx context.Context, channel, text string, log *zap.Logger) {
	if err := m.notifier.Send(ctx, channel, text); err != nil {
		log.Warn("notification delivery failed",
			zap.String("channel", channel), zap.Error(err))
	}
}

func (m *Monitor) forget(id domain.OrderID) {
	m.mu.Lock()
	if w, ok := m.watchers[id]; ok {
		delete(m.watchers, id)
		w.cancel()
	}
	m.mu.Unlock()
}
