package http

import (
	"net/http"
	"time"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/dsemenov/delivbot/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type PlaceOrderRequest struct {
	Total       float64  `json:"total" binding:"required"`
	ChargeToken string   `json:"charge_token"`
	Channel     string   `json:"channel" binding:"required"`
	Items       []string `json:"items"`
}

type OrderResp struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Total         string    `json:"total"`
	Channel       string    `json:"channel"`
	Items         []string  `json:"items,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	LastCheckedAt time.Time `json:"last_checked_at,omitempty"`
}

func orderResp(order *domain.Order) OrderResp {
	return OrderResp{
		ID:            string(order.ID),
		Status:        string(order.Status),
		Total:         order.TotalDue.String(),
		Channel:       order.Channel,
		Items:         order.Items,
		CreatedAt:     order.CreatedAt,
		LastCheckedAt: order.LastCheckedAt,
	}
}

func (oh *OrderHandler) PlaceOrder(ctx *gin.Context) {
	req := PlaceOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	total, err := decimal.NewFromFloat64(req.Total)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.PlaceOrder(ctx, total, req.ChargeToken, req.Channel, req.Items)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, orderResp(order), http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	order, err := oh.service.GetOrder(ctx, domain.OrderID(ctx.Param("id")))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, orderResp(order))
}

func (oh *OrderHandler) GetOrderStatus(ctx *gin.Context) {
	status, err := oh.service.GetOrderStatus(ctx, domain.OrderID(ctx.Param("id")))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, gin.H{"status": string(status)})
}

func (oh *OrderHandler) CancelOrder(ctx *gin.Context) {
	err := oh.service.CancelOrder(ctx, domain.OrderID(ctx.Param("id")))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}

func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	channel := ctx.Query("channel")
	if channel == "" {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	list, err := oh.service.ListOrders(ctx, channel)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, order := range list {
		result = append(result, orderResp(order))
	}
	oh.handleSuccess(ctx, result)
}
