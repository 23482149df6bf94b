package main

import (
	"context"
	"log"

	"github.com/gigwise/eventops/config"
	"github.com/gigwise/eventops/internal/consumer"
	"github.com/gigwise/eventops/internal/handler"
	"github.com/gigwise/eventops/internal/middleware"
	"github.com/gigwise/eventops/internal/notify"
	"github.com/gigwise/eventops/internal/repository"
	"github.com/gigwise/eventops/internal/scheduler"
	"github.com/gigwise/eventops/internal/service"
	"github.com/gigwise/eventops/internal/tasks"
	"github.com/gigwise/eventops/pkg/database"
	"github.com/gigwise/eventops/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	consumer.NewMailWorker(nil).Start(msgs)

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Stored settings override the env defaults for the mail identity.
	var companyName, mailFrom string
	if found, err := settingRepo.Get(ctx, "company_name", &companyName); err == nil && found {
		cfg.CompanyName = companyName
	}
	if found, err := settingRepo.Get(ctx, "mail_from", &mailFrom); err == nil && found {
		cfg.MailFrom = mailFrom
	}

	// Services
	eventSvc := service.NewEventService(eventRepo, userRepo, journalRepo, publisher)
	txnSvc := service.NewTransactionService(txnRepo, eventRepo, userRepo, eventSvc)
	playlistSvc := service.NewPlaylistService(playlistRepo, eventRepo)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	userSvc := service.NewUserService(userRepo)

	// Task system
	if err := tasks.SeedDefaults(ctx, taskRepo); err != nil {
		log.Fatalf("failed to seed tasks: %v", err)
	}
	mailer := notify.NewMailer(publisher, cfg.MailFrom, cfg.CompanyName)
	registry := tasks.NewRegistry()
	taskHandlers := tasks.NewHandlers(eventRepo, taskRepo, userRepo, playlistRepo, eventSvc, mailer)
	if err := taskHandlers.RegisterAll(registry); err != nil {
		log.Fatalf("failed to register tasks: %v", err)
	}
	runner := tasks.NewRunner(taskRepo, registry)
	scheduler.New(taskRepo, runner, cfg.BeatInterval).Start(ctx)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "eventops"})
	})

	handler.NewAuthHandler(authSvc).RegisterRoutes(e.Group("/api/v1/auth"))

	playlistHandler := handler.NewPlaylistHandler(playlistSvc)
	playlistHandler.RegisterGuestRoutes(e.Group("/api/v1/guest"))

	api := e.Group("/api/v1", middleware.Authenticate(authSvc, userRepo))
	handler.NewEventHandler(eventSvc).RegisterRoutes(api.Group("/events"))
	handler.NewTransactionHandler(txnSvc).RegisterRoutes(api)
	handler.NewVenueHandler(venueRepo).RegisterRoutes(api.Group("/venues"))
	handler.NewUserHandler(userSvc).RegisterRoutes(api.Group("/users"))
	handler.NewSettingHandler(settingRepo).RegisterRoutes(api.Group("/settings"))
	handler.NewTaskHandler(taskRepo, runner).RegisterRoutes(api.Group("/tasks"))
	playlistHandler.RegisterRoutes(api)

	log.Printf("Eventops starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
