package config

import (
	"os"
	"strings"
	"time"

	"github.com/Skotchmaster/trustbasket/pkg/config"
)

type ServiceConfig struct {
	config.Config

	// BackendURL receives finished registrations. Empty means accounts are
	// stored in DATABASE_URL.
	BackendURL     string
	BackendTimeout time.Duration

	// AccessTTL is the lifetime of tokens issued by the login endpoint.
	AccessTTL time.Duration

	CSRF         bool
	CookieSecure bool
	// AllowedOrigins are browser origins allowed by CORS and trusted by the
	// CSRF origin check. Empty means same origin only.
	AllowedOrigins []string
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "registration"
	}

	sc := ServiceConfig{
		Config:         cfg,
		BackendURL:     strings.TrimSpace(os.Getenv("REGISTRATION_BACKEND_URL")),
		BackendTimeout: config.EnvDurationDefault("REGISTRATION_BACKEND_TIMEOUT", 10*time.Second),
		AccessTTL:      config.EnvDurationDefault("ACCESS_TOKEN_TTL", 15*time.Minute),
		CSRF:           envBool("CSRF_ENABLED", true),
		CookieSecure:   envBool("COOKIE_SECURE", false),
		AllowedOrigins: config.CSV(os.Getenv("ALLOWED_ORIGINS")),
	}
	if sc.BackendURL == "" {
		config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	}
	return sc
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
