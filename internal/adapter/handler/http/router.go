package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dsemenov/delivbot/internal/adapter/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	chatHandler *ChatHandler,
	orderHandler *OrderHandler,
	wsHandler *WSHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/ws/:channel", wsHandler.Subscribe)

	api := router.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)

		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/status", orderHandler.GetOrderStatus)
			orders.DELETE("/:id", orderHandler.CancelOrder)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server and shuts it down when ctx is cancelled.
func (r *Router) Serve(ctx context.Context, listenAddr string) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           r,
		ReadHeaderTimeout: 3 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
