package http

import (
	"context"

	"github.com/dsemenov/delivbot/internal/core/bot"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Conversation is the piece of the bot the transport needs.
type Conversation interface {
	HandleMessage(ctx context.Context, channel string, text string) (*bot.Reply, error)
}

type ChatHandler struct {
	Handler
	bot Conversation
}

func NewChatHandler(conversation Conversation, logger *zap.Logger) (*ChatHandler, error) {
	return &ChatHandler{
		Handler: *NewHandler(logger),
		bot:     conversation,
	}, nil
}

type ChatRequest struct {
	Channel string `json:"channel" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

type ChatResp struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions,omitempty"`
	OrderID     string   `json:"order_id,omitempty"`
}

func (ch *ChatHandler) Chat(ctx *gin.Context) {
	req := ChatRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	reply, err := ch.bot.HandleMessage(ctx, req.Channel, req.Text)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, ChatResp{
		Text:        reply.Text,
		Suggestions: reply.Suggestions,
		OrderID:     string(reply.OrderID),
	})
}
