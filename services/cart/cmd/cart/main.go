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
	loggingmw "github.com/Skotchmaster/trustbasket/pkg/middleware/logging"
	"github.com/Skotchmaster/trustbasket/pkg/session"

	cartcfg "github.com/Skotchmaster/trustbasket/services/cart/internal/config"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/httpserver"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/repo"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/search"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/service"
)

func main() {
	pkgconfig.LoadEnvFiles("services/cart/.env")
	cfg := cartcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL, models.All()...)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		cancel()
		log.Fatalf("redis: %v", err)
	}
	cancel()

	r := &repo.GormRepo{DB: db}
	catalogSvc := &service.CatalogService{Repo: r}
	if cfg.ElasticURL != "" {
		es, err := search.NewClient(cfg.ElasticURL, cfg.ElasticUser, cfg.ElasticPassword)
		if err != nil {
			logger.Error("elasticsearch_unavailable", "error", err)
		} else {
			catalogSvc.Search = search.NewElastic(es, cfg.SearchIndex)
		}
	}

	consumeCtx, stopConsumer := context.WithCancel(logging.IntoContext(context.Background(), logger))
	defer stopConsumer()

	var producer events.Publisher = events.Noop{}
	var consumer *events.Consumer
	consumed := make(chan struct{})
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		// registered supplier accounts become catalog suppliers with the same id
		consumer = events.NewConsumer(cfg.KafkaBrokers, events.TopicUsers, cfg.UsersGroupID)
		go func() {
			defer close(consumed)
			consumer.Run(consumeCtx, logger.With("consumer", events.TopicUsers), catalogSvc.HandleUserEvent)
		}()
	} else {
		close(consumed)
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	cartSvc := &service.CartService{
		Carts:    session.NewStore[domain.Cart](rdb, "cart", cfg.SessionTTL),
		Items:    r,
		Orders:   r,
		Producer: producer,
		Policy:   cfg.ClearPolicy,
	}
	orderSvc := &service.OrderService{Repo: r, Producer: producer}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc},
		JWTSecret:      cfg.JWTAccessSecret,
		Ready:          readiness(db, rdb),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("cart_listening", "addr", srv.Addr, "clear_policy", cfg.ClearPolicy)
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
	stopConsumer()
	<-consumed
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka_consumer_close_error", "error", err)
		}
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
	_ = rdb.Close()
	_ = pkgdb.Close(db)

	logger.Info("cart_stopped")
}

func readiness(db *gorm.DB, rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	}
}
