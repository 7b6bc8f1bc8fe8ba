package main

import (
	"shareit/internal/bookings/events"
	bookingHandler "shareit/internal/bookings/handler"
	bookingRepository "shareit/internal/bookings/repository"
	bookingService "shareit/internal/bookings/service"
	bookingValidator "shareit/internal/bookings/validator"
	itemHandler "shareit/internal/items/handler"
	itemRepository "shareit/internal/items/repository"
	itemService "shareit/internal/items/service"
	itemValidator "shareit/internal/items/validator"
	requestHandler "shareit/internal/requests/handler"
	requestRepository "shareit/internal/requests/repository"
	requestService "shareit/internal/requests/service"
	requestValidator "shareit/internal/requests/validator"
	userHandler "shareit/internal/users/handler"
	userRepository "shareit/internal/users/repository"
	userService "shareit/internal/users/service"
	userValidator "shareit/internal/users/validator"
	"shareit/pkg/app"
	"shareit/pkg/config"
	"shareit/pkg/kafka"
	kafka_config "shareit/pkg/kafka/config"
	kafkaMiddleware "shareit/pkg/kafka/middleware"
)

const ServiceName = "shareit"

type services struct {
	users    userService.UserService
	items    itemService.ItemService
	bookings bookingService.BookingService
	requests requestService.RequestService
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting ShareIt service")
	serverApp := app.NewApplication(cfg)

	publisher := initPublisher(cfg, serverApp)
	svc := initServices(cfg, publisher)

	serverApp.SetApp(
		userHandler.NewUserHandler(svc.users, cfg.Log),
		itemHandler.NewItemHandler(svc.items, cfg.DefaultPageSize, cfg.Log),
		bookingHandler.NewBookingHandler(svc.bookings, cfg.DefaultPageSize, cfg.Log),
		requestHandler.NewRequestHandler(svc.requests, cfg.DefaultPageSize, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NoopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	metrics := kafkaMiddleware.NewPublishMetrics()
	producer.Use(metrics.Middleware())
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafkaMiddleware.LoggingProducerMiddleware(cfg.Log))
	}
	serverApp.OnShutdown("kafka_producer", producer.Close)
	serverApp.OnShutdown("kafka_metrics", func() error {
		metrics.LogSummary(cfg.Log)
		return nil
	})

	cfg.Log.Info("Kafka producer initialized",
		"brokers", kafkaCfg.Brokers,
		"topic", cfg.BookingEventsTopic,
	)
	return events.NewKafkaPublisher(producer)
}

func initServices(cfg *config.Config, publisher events.Publisher) services {
	userRepo := userRepository.NewMongoUserRepository(cfg)
	itemRepo := itemRepository.NewMongoItemRepository(cfg)
	commentRepo := itemRepository.NewMongoCommentRepository(cfg)
	bookingRepo := bookingRepository.NewMongoBookingRepository(cfg)
	requestRepo := requestRepository.NewMongoRequestRepository(cfg)

	svc := services{
		users: userService.NewUserService(
			userRepo,
			itemRepo,
			bookingRepo,
			userValidator.NewUserValidator(cfg.Log),
			cfg,
		),
		items: itemService.NewItemService(
			itemRepo,
			commentRepo,
			userRepo,
			bookingRepo,
			requestRepo,
			itemValidator.NewItemValidator(cfg.Log),
			cfg,
		),
		bookings: bookingService.NewBookingService(
			bookingRepo,
			itemRepo,
			userRepo,
			publisher,
			bookingValidator.NewBookingValidator(cfg.Log),
			cfg,
		),
		requests: requestService.NewRequestService(
			requestRepo,
			userRepo,
			itemRepo,
			requestValidator.NewRequestValidator(cfg.Log),
			cfg,
		),
	}

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return svc
}
