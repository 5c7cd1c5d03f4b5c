// Package config содержит логику чтения конфигурации сервиса аренды жилья.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации сервиса аренды жилья.
type Config struct {
	RunAddress            string        `env:"RUN_ADDRESS"`
	SessionSecret         string        `env:"SESSION_SECRET"`
	PaymentGatewayAddress string        `env:"PAYMENT_GATEWAY_ADDRESS"`
	PaymentDelay          time.Duration `env:"PAYMENT_DELAY"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envSessionSecret := cfg.SessionSecret
	envGatewayAddress := cfg.PaymentGatewayAddress
	envPaymentDelay := cfg.PaymentDelay

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.SessionSecret, "s", "", "secret key for session cookie signing")
	flag.StringVar(&cfg.PaymentGatewayAddress, "g", "", "external payment gateway address")
	flag.DurationVar(&cfg.PaymentDelay, "p", 2*time.Second, "simulated payment processing delay")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envSessionSecret != "" {
		cfg.SessionSecret = envSessionSecret
	}
	if envGatewayAddress != "" {
		cfg.PaymentGatewayAddress = envGatewayAddress
	}
	if envPaymentDelay != 0 {
		cfg.PaymentDelay = envPaymentDelay
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
