package main

import (
	"context"
	"log"
	"time"

	"dairystore/internal/config"
	"dairystore/internal/controllers/admin"
	"dairystore/internal/controllers/http"
	"dairystore/internal/infra/mail"
	mmysql "dairystore/internal/infra/mysql"
	"dairystore/internal/infra/rabbitmq"
	mysqlrepo "dairystore/internal/repository/mysql"
	"dairystore/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := mmysql.NewMySQL(cfg)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	orderRepo := mysqlrepo.NewOrderRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)

	sender := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail)
	notifier := services.NewNotifier(sender, cfg.OperatorEmail)

	var publisher rabbitmq.PublisherInterface
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	orderService := services.NewOrderService(orderRepo, productRepo, notifier, publisher, logger)
	catalogService := services.NewCatalogService(productRepo, logger)

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DB:           0,
			PoolSize:     50,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		orderService.SetRedisClient(redisClient)
		catalogService.SetRedisClient(redisClient)
	}

	if err := catalogService.EnsureDefaultCatalog(context.Background()); err != nil {
		log.Fatalf("catalog seed: %v", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.LoadHTMLGlob(cfg.TemplateGlob)

	http.NewHandler(orderService, catalogService, logger).RegisterRoutes(r)
	admin.NewHandler(orderService, catalogService, logger).RegisterRoutes(r)

	logger.Info("starting dairy store", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
