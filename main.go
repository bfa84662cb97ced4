package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/academic-forum/forum-tickets/config"
	"github.com/academic-forum/forum-tickets/internal/cache"
	"github.com/academic-forum/forum-tickets/internal/handler"
	"github.com/academic-forum/forum-tickets/internal/middleware"
	"github.com/academic-forum/forum-tickets/internal/notifier"
	"github.com/academic-forum/forum-tickets/internal/repository"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/academic-forum/forum-tickets/pkg/database"
	"github.com/academic-forum/forum-tickets/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Ticket list cache. Optional: without Redis every read hits Postgres.
	var ticketCache *cache.TicketCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unavailable, ticket cache disabled: %v", err)
		} else {
			ticketCache = cache.NewTicketCache(rdb, cfg.TicketCacheTTL)
		}
	}

	// Paid-order notifications. Optional: orders still work without the
	// broker, confirmation emails are just skipped.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Printf("rabbitmq unavailable, notifications disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
			startNotifier(cfg)
		}
	}

	orderRepo := repository.NewOrderRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	sponsorRepo := repository.NewSponsorRepository(db)
	conferenceRepo := repository.NewConferenceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	orderService := service.NewOrderService(orderRepo, ticketRepo, publisherOrNil(publisher), ticketCache)
	ticketService := service.NewTicketService(ticketRepo, orderRepo, ticketCache)
	adminService := service.NewAdminService(adminRepo, cfg.JWTSecret, cfg.JWTExpiry)
	sponsorService := service.NewSponsorService(sponsorRepo)
	conferenceService := service.NewConferenceService(conferenceRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	if err := adminService.Seed(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	admin := e.Group("/api/admin", middleware.RequireAdmin(adminService))

	handler.NewOrderHandler(orderService).RegisterRoutes(e)
	handler.NewAdminOrderHandler(orderService).RegisterRoutes(admin)
	handler.NewTicketHandler(ticketService).RegisterRoutes(e, admin)
	handler.NewAuthHandler(adminService).RegisterRoutes(e)
	handler.NewAdminHandler(adminService).RegisterRoutes(admin)
	handler.NewSponsorHandler(sponsorService).RegisterRoutes(e, admin)
	handler.NewConferenceHandler(conferenceService).RegisterRoutes(e, admin)
	handler.NewSettingsHandler(settingsService).RegisterRoutes(e, admin)

	log.Printf("starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// publisherOrNil keeps a typed-nil *Publisher from sneaking into the
// PaidOrderPublisher interface.
func publisherOrNil(p *rabbitmq.Publisher) service.PaidOrderPublisher {
	if p == nil {
		return nil
	}
	return p
}

func startNotifier(cfg *config.Config) {
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Printf("rabbitmq consumer unavailable, email worker disabled: %v", err)
		return
	}

	msgs, err := consumer.Consume()
	if err != nil {
		log.Printf("rabbitmq consume failed, email worker disabled: %v", err)
		consumer.Close()
		return
	}

	mailer := notifier.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	notifier.NewWorker(mailer).Start(msgs)
	log.Println("email notifier started")
}
