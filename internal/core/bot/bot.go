package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/dsemenov/delivbot/internal/core/port"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type intent string

const (
	intentOrder   intent = "new_order"
	intentConfirm intent = "confirm_order"
	intentCancel  intent = "cancel_order"
	intentTrack   intent = "track_order"
	intentSearch  intent = "restaurant_search"
	intentMenu    intent = "menu_inquiry"
	intentUnknown intent = "unknown"
)

// Keyword sets per intent. Matching is plain substring search; anything
// smarter is out of scope for this bot.
var (
	confirmKeywords = []string{"confirm", "yes, place", "go ahead", "place it"}
	cancelKeywords  = []string{"cancel", "nevermind", "never mind"}
	trackKeywords   = []string{"track", "where", "status", "how long"}
	menuKeywords    = []string{"menu", "options", "dishes", "what does", "what do they have"}
	searchKeywords  = []string{"restaurant", "recommend", "suggest", "places"}
	orderKeywords   = []string{"order", "want", "hungry", "deliver", "food", "craving", "get me"}
)

var statusLine = map[domain.OrderStatus]string{
	domain.OrderStatusPlaced:     "placed and waiting for the restaurant",
	domain.OrderStatusConfirmed:  "confirmed by the restaurant",
	domain.OrderStatusPreparing:  "being prepared",
	domain.OrderStatusDispatched: "on the way to you",
	domain.OrderStatusDelivered:  "delivered",
	domain.OrderStatusCancelled:  "cancelled",
}

const welcomeText = "Hi! I am your delivery assistant. What would you like to order today?"

type Reply struct {
	Text        string
	Suggestions []string
	OrderID     domain.OrderID
}

// quote is a priced order waiting for the user's confirmation. Confirmation
// is the synchronous boundary before any charge happens.
type quote struct {
	item  domain.MenuItem
	total decimal.Decimal
}

type Bot struct {
	service port.Service
	payment port.PaymentService
	catalog port.Catalog
	logger  *zap.Logger

	mu        sync.Mutex
	pending   map[string]*quote
	lastOrder map[string]domain.OrderID
}

func New(service port.Service, payment port.PaymentService,
	catalog port.Catalog, logger *zap.Logger) *Bot {
	return &Bot{
		service:   service,
		payment:   payment,
		catalog:   catalog,
		logger:    logger,
		pending:   make(map[string]*quote),
		lastOrder: make(map[string]domain.OrderID),
	}
}

func (b *Bot) HandleMessage(ctx context.Context, channel string, text string) (*Reply, error) {
	switch classifyIntent(text) {
	case intentConfirm:
		return b.handleConfirm(ctx, channel)
	case intentCancel:
		return b.handleCancel(ctx, channel)
	case intentTrack:
		return b.handleTrack(ctx, channel, text)
	case intentMenu:
		return b.handleMenu(text)
	case intentSearch:
		return b.handleSearch()
	case intentOrder:
		return b.handleOrder(channel, text)
	default:
		return &Reply{
			Text:        welcomeText,
			Suggestions: []string{"Place an order", "Find restaurants", "Track my order"},
		}, nil
	}
}

// classifyIntent checks the more specific intents first: "cancel my order"
// and "where is my order" both contain order keywords.
func classifyIntent(text string) intent {
	text = strings.ToLower(text)

	match := func(keywords []string) bool {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}

	switch {
	case match(confirmKeywords):
		return intentConfirm
	case match(cancelKeywords):
		return intentCancel
	case match(trackKeywords):
		return intentTrack
	case match(menuKeywords):
		return intentMenu
	case match(searchKeywords):
		return intentSearch
	case match(orderKeywords):
		return intentOrder
	default:
		return intentUnknown
	}
}

func (b *Bot) handleOrder(channel string, text string) (*Reply, error) {
	item, err := b.catalog.Find(text, "")
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return &Reply{
				Text: "Sorry, I could not find anything matching that. Could you try different words?",
			}, nil
		}
		return nil, err
	}

	b.mu.Lock()
	b.pending[channel] = &quote{item: *item, total: item.Price}
	b.mu.Unlock()

	return &Reply{
		Text: fmt.Sprintf("%s from %s is %s. Delivery takes about %d minutes. Say 'confirm' to place the order.",
			item.Name, item.Restaurant, formatMoney(item.Price), item.ETAMinutes),
		Suggestions: []string{"Confirm", "Cancel"},
	}, nil
}

func (b *Bot) handleConfirm(ctx context.Context, channel string) (*Reply, error) {
	// Claim the quote before charging: two racing confirms must not both
	// reach the payment provider.
	b.mu.Lock()
	q := b.pending[channel]
	delete(b.pending, channel)
	b.mu.Unlock()

	if q == nil {
		return &Reply{
			Text: "There is nothing to confirm yet. Tell me what you would like to order first.",
		}, nil
	}

	token, err := b.payment.Charge(ctx, paymentMethodFor(channel), q.total)
	if err != nil {
		b.restoreQuote(channel, q)
		if errors.Is(err, domain.ErrPaymentFailed) {
			return &Reply{
				Text: "Your payment was declined, so nothing was charged. Want to try another order?",
			}, nil
		}
		return nil, err
	}

	order, err := b.service.PlaceOrder(ctx, q.total, token, channel,
		[]string{fmt.Sprintf("%s (%s)", q.item.Name, q.item.Restaurant)})
	if err != nil {
		b.restoreQuote(channel, q)
		b.logger.Error("place order after successful charge", zap.Error(err))
		return nil, err
	}

	b.mu.Lock()
	b.lastOrder[channel] = order.ID
	b.mu.Unlock()

	return &Reply{
		Text: fmt.Sprintf("Done! Your order %s is placed, total %s. I will keep you posted on its progress.",
			order.ID, formatMoney(order.TotalDue)),
		OrderID: order.ID,
	}, nil
}

// restoreQuote puts a claimed quote back after a failed confirmation so the
// user can retry. A fresher quote placed meanwhile wins.
func (b *Bot) restoreQuote(channel string, q *quote) {
	b.mu.Lock()
	if b.pending[channel] == nil {
		b.pending[channel] = q
	}
	b.mu.Unlock()
}

func (b *Bot) handleCancel(ctx context.Context, channel string) (*Reply, error) {
	b.mu.Lock()
	if b.pending[channel] != nil {
		delete(b.pending, channel)
		b.mu.Unlock()
		return &Reply{Text: "Okay, I dropped that quote. Nothing was charged."}, nil
	}
	id, ok := b.lastOrder[channel]
	b.mu.Unlock()

	if !ok {
		return &Reply{Text: "I do not see an order to cancel on this chat."}, nil
	}

	err := b.service.CancelOrder(ctx, id)
	switch {
	case errors.Is(err, domain.ErrOrderAlreadyFinal):
		return &Reply{Text: "That order is already completed and can not be cancelled.", OrderID: id}, nil
	case errors.Is(err, domain.ErrDataNotFound):
		return &Reply{Text: "I do not see an order to cancel on this chat."}, nil
	case err != nil:
		return nil, err
	}
	return &Reply{Text: "Your order was cancelled.", OrderID: id}, nil
}

func (b *Bot) handleTrack(ctx context.Context, channel string, text string) (*Reply, error) {
	id, ok := b.orderIDFrom(channel, text)
	if !ok {
		return &Reply{Text: "I do not see any orders on this chat yet. Want to place one?"}, nil
	}

	status, err := b.service.GetOrderStatus(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return &Reply{Text: "I could not find that order."}, nil
		}
		return nil, err
	}

	return &Reply{
		Text:    fmt.Sprintf("Your order is %s.", statusLine[status]),
		OrderID: id,
	}, nil
}

func (b *Bot) handleSearch() (*Reply, error) {
	restaurants := b.catalog.Restaurants()

	var sb strings.Builder
	sb.WriteString("Here are some places you might like:\n")
	for _, r := range restaurants {
		fmt.Fprintf(&sb, "- %s (%s, rating %.1f, about %d min)\n",
			r.Name, r.Cuisine, r.Rating, r.ETAMinutes)
	}
	return &Reply{Text: sb.String()}, nil
}

func (b *Bot) handleMenu(text string) (*Reply, error) {
	lower := strings.ToLower(text)
	for _, r := range b.catalog.Restaurants() {
		if !strings.Contains(lower, strings.ToLower(r.Name)) {
			continue
		}
		menu, err := b.catalog.Menu(r.Name)
		if err != nil {
			return nil, err
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "The menu at %s:\n", r.Name)
		for _, item := range menu {
			fmt.Fprintf(&sb, "- %s, %s\n", item.Name, formatMoney(item.Price))
		}
		return &Reply{Text: sb.String()}, nil
	}

	// No restaurant named, show a few popular dishes instead.
	var sb strings.Builder
	sb.WriteString("A few popular dishes right now:\n")
	for _, r := range b.catalog.Restaurants() {
		if len(r.Menu) > 0 {
			fmt.Fprintf(&sb, "- %s at %s, %s\n",
				r.Menu[0].Name, r.Name, formatMoney(r.Menu[0].Price))
		}
	}
	return &Reply{Text: sb.String()}, nil
}

// orderIDFrom finds an order id in the text, falling back to the channel's
// most recent order.
func (b *Bot) orderIDFrom(channel string, text string) (domain.OrderID, bool) {
	for _, word := range strings.Fields(text) {
		if looksLikeOrderID(word) {
			return domain.OrderID(word), true
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.lastOrder[channel]
	return id, ok
}

// looksLikeOrderID matches the uuid shape used for order ids.
func looksLikeOrderID(word string) bool {
	if len(word) != 36 {
		return false
	}
	for i, c := range word {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
				return false
			}
		}
	}
	return true
}

func paymentMethodFor(channel string) string {
	return "pm_" + channel
}

func formatMoney(amount decimal.Decimal) string {
	return "$" + amount.String()
}
