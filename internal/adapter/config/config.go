package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	App          *App
	HTTP         *HTTP
	Monitor      *Monitor
	StatusSource *StatusSource
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Monitor struct {
	Interval          time.Duration `env:"MONITOR_INTERVAL"`
	PollTimeout       time.Duration `env:"MONITOR_POLL_TIMEOUT"`
	FailureAlertAfter int           `env:"MONITOR_FAILURE_ALERT_AFTER"`
}

type StatusSource struct {
	AdvanceEvery time.Duration `env:"STATUS_ADVANCE_EVERY"`
}

func NewConfig() (*Config, error) {
	var app App
	var http HTTP
	var monitor Monitor
	var source StatusSource

	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.DurationVar(&monitor.Interval, "i", 10*time.Minute, "Order status poll interval")
	flag.DurationVar(&monitor.PollTimeout, "t", 10*time.Second, "Per-poll timeout")
	flag.IntVar(&monitor.FailureAlertAfter, "k", 10, "Consecutive poll failures before a delay notice")
	flag.DurationVar(&source.AdvanceEvery, "s", 2*time.Minute, "Simulated status step duration")
	flag.Parse()

	err := env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&monitor)
	if err != nil {
		return nil, fmt.Errorf("error parsing monitor config: %w", err)
	}
	err = env.Parse(&source)
	if err != nil {
		return nil, fmt.Errorf("error parsing status source config: %w", err)
	}

	config := Config{
		App:          &app,
		HTTP:         &http,
		Monitor:      &monitor,
		StatusSource: &source,
	}

	return &config, nil
}
