package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dsemenov/delivbot/internal/adapter/catalog"
	"github.com/dsemenov/delivbot/internal/adapter/config"
	"github.com/dsemenov/delivbot/internal/adapter/handler/http"
	"github.com/dsemenov/delivbot/internal/adapter/logger"
	"github.com/dsemenov/delivbot/internal/adapter/notifier"
	"github.com/dsemenov/delivbot/internal/adapter/payment"
	"github.com/dsemenov/delivbot/internal/adapter/statussource"
	"github.com/dsemenov/delivbot/internal/adapter/storage/memory"
	"github.com/dsemenov/delivbot/internal/core/bot"
	"github.com/dsemenov/delivbot/internal/core/domain"
	"github.com/dsemenov/delivbot/internal/core/monitor"
	"github.com/dsemenov/delivbot/internal/core/port"
	"github.com/dsemenov/delivbot/internal/core/service"
	"go.uber.org/zap"
)

// registeringMonitor announces new orders to the simulated status oracle
// before watching them. A real tracking backend would learn about orders on
// its own; the simulation has to be told.
type registeringMonitor struct {
	*monitor.Monitor
	source *statussource.Simulated
}

var _ port.OrderMonitor = registeringMonitor{}

func (m registeringMonitor) Watch(order *domain.Order) error {
	m.source.Register(order.ID)
	return m.Monitor.Watch(order)
}

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log, err := logger.NewLogger(conf.App)
	if err != nil {
		fmt.Printf("error creating log: %s", err)
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := memory.NewStore()
	source := statussource.NewSimulated(conf.StatusSource.AdvanceEvery, log.Named("StatusSource"))

	hub := notifier.NewHub(log.Named("Hub"))
	notif := notifier.Multi{notifier.NewLog(log.Named("Notifier")), hub}

	mon := monitor.New(store, source, notif, log.Named("Monitor"),
		monitor.WithInterval(conf.Monitor.Interval),
		monitor.WithPollTimeout(conf.Monitor.PollTimeout),
		monitor.WithFailureAlertAfter(conf.Monitor.FailureAlertAfter))
	defer mon.Close()

	svc, err := service.NewService(store, registeringMonitor{mon, source}, notif, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

	chatBot := bot.New(svc, payment.NewStub(log.Named("Payment")), catalog.New(), log.Named("Bot"))

	chatHandler, err := http.NewChatHandler(chatBot, log.Named("Chat handler"))
	if err != nil {
		log.Error("chat handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	wsHandler, err := http.NewWSHandler(hub, log.Named("WS handler"))
	if err != nil {
		log.Error("ws handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, chatHandler, orderHandler, wsHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	log.Info("starting", zap.String("addr", conf.HTTP.HostString))
	if err := r.Serve(ctx, conf.HTTP.HostString); err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
