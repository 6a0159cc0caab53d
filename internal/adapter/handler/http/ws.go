package http

import (
	"net/http"

	"github.com/dsemenov/delivbot/internal/adapter/notifier"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type WSHandler struct {
	Handler
	hub *notifier.Hub
}

func NewWSHandler(hub *notifier.Hub, logger *zap.Logger) (*WSHandler, error) {
	return &WSHandler{
		Handler: *NewHandler(logger),
		hub:     hub,
	}, nil
}

// Subscribe upgrades the connection and streams the channel's notifications
// until the client disconnects.
func (wh *WSHandler) Subscribe(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		wh.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	wh.hub.Subscribe(ctx.Param("channel"), conn)
}
