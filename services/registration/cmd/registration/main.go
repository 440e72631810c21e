package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	pkgconfig "github.com/Skotchmaster/trustbasket/pkg/config"
	pkgdb "github.com/Skotchmaster/trustbasket/pkg/db"
	"github.com/Skotchmaster/trustbasket/pkg/events"
	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/trustbasket/pkg/middleware/logging"
	"github.com/Skotchmaster/trustbasket/pkg/session"

	regcfg "github.com/Skotchmaster/trustbasket/services/registration/internal/config"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/httpserver"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/models"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/repo"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/service"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/submit"
)

func main() {
	pkgconfig.LoadEnvFiles("services/registration/.env")
	cfg := regcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		cancel()
		log.Fatalf("redis: %v", err)
	}

	var (
		db        *gorm.DB
		submitter domain.Submitter
		login     *httpserver.LoginHTTP
	)
	if cfg.BackendURL != "" {
		submitter = submit.NewHTTPSubmitter(cfg.BackendURL, cfg.BackendTimeout)
	} else {
		db, err = pkgdb.Open(ctx, cfg.DatabaseURL, models.All()...)
		if err != nil {
			cancel()
			log.Fatalf("db open: %v", err)
		}
		accounts := &repo.GormRepo{DB: db}
		submitter = &submit.DirectorySubmitter{Repo: accounts}
		if len(cfg.JWTAccessSecret) > 0 {
			login = &httpserver.LoginHTTP{
				Svc:          &service.LoginService{Accounts: accounts, JWTSecret: cfg.JWTAccessSecret, AccessTTL: cfg.AccessTTL},
				CookieSecure: cfg.CookieSecure,
			}
		}
	}
	cancel()

	var producer events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	svc := &service.RegistrationService{
		Sessions:  session.NewStore[domain.Wizard](rdb, "registration", cfg.SessionTTL),
		Submitter: submitter,
		Producer:  producer,
	}

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CookieSecure
	csrfCfg.TrustedOrigins = cfg.AllowedOrigins

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	// without ALLOWED_ORIGINS the wizard is served same origin only, e.g. through the gateway
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowCredentials: true,
			AllowHeaders:     []string{echo.HeaderContentType, csrfCfg.HeaderName},
			ExposeHeaders:    []string{csrfCfg.HeaderName},
		}))
	}
	// one attachment per request plus multipart overhead
	e.Use(echomw.BodyLimit("6M"))

	httpserver.Register(e, &httpserver.Deps{
		WizardHandler: &httpserver.WizardHTTP{Svc: svc},
		LoginHandler:  login,
		CSRF:          cfg.CSRF,
		CSRFConfig:    csrfCfg,
		Ready:         readiness(db, rdb),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("registration_listening", "addr", srv.Addr, "remote_backend", cfg.BackendURL != "", "csrf", cfg.CSRF)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_error", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
	_ = rdb.Close()
	if db != nil {
		_ = pkgdb.Close(db)
	}

	logger.Info("registration_stopped")
}

// readiness pings redis and, when accounts are stored locally, the database.
func readiness(db *gorm.DB, rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}
		}
		return rdb.Ping(ctx).Err()
	}
}
