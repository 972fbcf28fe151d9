package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Tarankalsi/backend-triumphllights/configs"
	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/cache"
	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/carrier"
	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/email"
	httpadapter "github.com/Tarankalsi/backend-triumphllights/internal/adapter/http"
	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/http/middleware"
	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/queue"
	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/repo"
	"github.com/Tarankalsi/backend-triumphllights/internal/jobs"
	"github.com/Tarankalsi/backend-triumphllights/internal/logging"
	"github.com/Tarankalsi/backend-triumphllights/internal/security"
	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.Init(cfg.App.Name, cfg.App.LogFile)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	log.Info("order-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq; events are best-effort, so a broker outage only
	// disables publishing instead of failing startup
	var events usecase.EventPublisher
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		log.Error("rabbitmq unavailable, events disabled", "err", err)
	} else if ch, err := conn.Channel(); err == nil {
		if producer, err := queue.NewRabbitProducer(ch); err == nil {
			events = producer
		} else {
			log.Error("rabbitmq producer setup failed, events disabled", "err", err)
		}
	}

	taxRate, err := decimal.NewFromString(cfg.Billing.TaxRatePercent)
	if err != nil {
		return nil, nil, fmt.Errorf("billing.tax_rate_percent: %w", err)
	}

	// infra
	gw := carrier.NewClient(cfg.Carrier.BaseURL, cfg.Carrier.Token, cfg.Carrier.Email, cfg.Carrier.Password, cfg.Carrier.Timeout)
	orderStore := repo.NewMySQLOrderStore(db)
	cartRepo := repo.NewMySQLCartRepo(db)
	userRepo := repo.NewMySQLUserRepo(db)
	addressRepo := repo.NewMySQLAddressRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.Cache.TTL)
	mailer := email.NewGomailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
	cartTokens := security.NewCartTokens(cfg.Security.CartJWTSecret, cfg.Security.CartTokenTTL)

	// use cases
	selector := usecase.NewCourierSelector(gw, cfg.Carrier.MaxDeliveryDays)
	billing := usecase.NewBilling(selector)
	createUC := usecase.NewCreateOrder(cartTokens, userRepo, addressRepo, cartRepo, orderStore, billing, gw, mailer, events, idem, statusCache, taxRate)
	cancelUC := usecase.NewCancelOrder(orderStore, gw, events)
	webhookUC := usecase.NewApplyCarrierStatus(orderStore, statusCache, events)

	// handlers + router
	oh := httpadapter.NewOrderHandler(createUC, cancelUC, orderStore, cfg.Carrier.PickupLocation)
	qh := httpadapter.NewQuoteHandler(cartTokens, cartRepo, addressRepo, billing, taxRate, cfg.Carrier.PickupLocation)
	wh := httpadapter.NewWebhookHandler(webhookUC)
	auth := middleware.NewUserAuth(cfg.Security.JWTSecret, cfg.Security.Issuer, cfg.Security.Audience)
	router := httpadapter.NewRouter(oh, qh, wh, auth)

	// scheduled maintenance
	sched, err := jobs.Start(cartRepo, gw)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		schedCtx := sched.Stop()
		<-schedCtx.Done()
		_ = db.Close()
		_ = rdb.Close()
		if conn != nil {
			_ = conn.Close()
		}
	}

	return &App{Router: router}, cleanup, nil
}
