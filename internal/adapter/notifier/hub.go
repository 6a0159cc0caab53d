package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

type Message struct {
	Channel string    `json:"channel"`
	Text    string    `json:"text"`
	SentAt  time.Time `json:"sent_at"`
}

type subscriber struct {
	send chan []byte
}

// Hub fans notifications out to websocket subscribers grouped by channel
// name. Delivery is fire-and-forget: a subscriber with a full buffer loses
// the message, and a channel with no subscribers swallows it.
type Hub struct {
	logger *zap.Logger

	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		subs:   make(map[string]map[*subscriber]struct{}),
	}
}

// Subscribe attaches a websocket connection to a channel and services it
// until the peer goes away. The connection is closed on return.
func (h *Hub) Subscribe(channel string, conn *websocket.Conn) {
	sub := &subscriber{send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.subs[channel] == nil {
		h.subs[channel] = make(map[*subscriber]struct{})
	}
	h.subs[channel][sub] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("subscriber joined", zap.String("channel", channel))

	go h.writePump(sub, conn)
	h.readPump(channel, sub, conn)
}

func (h *Hub) Send(ctx context.Context, channel string, text string) error {
	payload, err := json.Marshal(Message{Channel: channel, Text: text, SentAt: time.Now()})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[channel] {
		select {
		case sub.send <- payload:
		default:
			h.logger.Warn("subscriber buffer full, message dropped",
				zap.String("channel", channel))
		}
	}
	return nil
}

// readPump drains the peer until it disconnects. Inbound messages are
// ignored; the socket is push-only.
func (h *Hub) readPump(channel string, sub *subscriber, conn *websocket.Conn) {
	defer h.drop(channel, sub, conn)
	conn.SetReadLimit(512)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(sub *subscriber, conn *websocket.Conn) {
	for msg := range sub.send {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) drop(channel string, sub *subscriber, conn *websocket.Conn) {
	h.mu.Lock()
	if set, ok := h.subs[channel]; ok {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.send)
		}
		if len(set) == 0 {
			delete(h.subs, channel)
		}
	}
	h.mu.Unlock()

	_ = conn.Close()
	h.logger.Debug("subscriber left", zap.String("channel", channel))
}
