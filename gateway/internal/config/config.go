package config

import (
	"time"

	"github.com/Skotchmaster/trustbasket/pkg/config"
)

type Config struct {
	ListenAddr      string
	LogLevel        string
	CartURL         string
	RegistrationURL string
	ProxyTimeout    time.Duration
	// JWTSecret lets the gateway reject unauthenticated cart calls before
	// they reach the cart service.
	JWTSecret []byte
}

func Load() Config {
	cfg := Config{
		ListenAddr:      config.EnvDefault("GATEWAY_ADDR", ":8080"),
		LogLevel:        config.EnvDefault("LOG_LEVEL", "info"),
		CartURL:         config.EnvDefault("CART_URL", ""),
		RegistrationURL: config.EnvDefault("REGISTRATION_URL", ""),
		ProxyTimeout:    config.EnvDurationDefault("PROXY_DIAL_TIMEOUT", 5*time.Second),
		JWTSecret:       []byte(config.EnvDefault("JWT_SECRET", "")),
	}
	config.MustNonEmpty(cfg.CartURL, "CART_URL")
	config.MustNonEmpty(cfg.RegistrationURL, "REGISTRATION_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	return cfg
}
