package http

import (
	"errors"
	"net/http"

	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:     http.StatusInternalServerError,
	domain.ErrDataNotFound: http.StatusNotFound,
	domain.ErrBadRequest:   http.StatusBadRequest,

	domain.ErrInvalidPayment:    http.StatusUnprocessableEntity,
	domain.ErrPaymentFailed:     http.StatusPaymentRequired,
	domain.ErrItemNotFound:      http.StatusNotFound,
	domain.ErrOrderAlreadyFinal: http.StatusConflict,
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.Status(http.StatusBadRequest)
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	for sentinel, statusCode := range errorStatusMap {
		if errors.Is(err, sentinel) {
			ctx.JSON(statusCode, gin.H{"error": sentinel.Error()})
			return
		}
	}
	h.logger.Error("error processing request", zap.Error(err))
	ctx.Status(http.StatusInternalServerError)
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
