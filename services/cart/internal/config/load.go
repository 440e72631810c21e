package config

import (
	"github.com/Skotchmaster/trustbasket/pkg/config"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/service"
)

type ServiceConfig struct {
	config.Config

	ClearPolicy service.ClearPolicy
	SearchIndex string
	// UsersGroupID is the Kafka consumer group reading user events.
	UsersGroupID string
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "cart"
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")

	policy := config.MustOneOf(
		config.EnvDefault("CART_CLEAR_POLICY", string(service.ClearBeforeAck)),
		"CART_CLEAR_POLICY",
		string(service.ClearBeforeAck), string(service.ClearAfterAck),
	)

	return ServiceConfig{
		Config:       cfg,
		ClearPolicy:  service.ClearPolicy(policy),
		SearchIndex:  config.EnvDefault("ELASTIC_INDEX", "catalog_items"),
		UsersGroupID: config.EnvDefault("KAFKA_USERS_GROUP", "cart-suppliers"),
	}
}
