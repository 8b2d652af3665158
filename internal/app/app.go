package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vparmar-art/MarketplaceApp/config"
	"github.com/vparmar-art/MarketplaceApp/internal/controller"
	circuitbreaker "github.com/vparmar-art/MarketplaceApp/internal/infrastructure/circuit-breaker"
	"github.com/vparmar-art/MarketplaceApp/internal/infrastructure/mailer"
	"github.com/vparmar-art/MarketplaceApp/internal/infrastructure/message-queue/kafka"
	"github.com/vparmar-art/MarketplaceApp/internal/infrastructure/scheduler"
	"github.com/vparmar-art/MarketplaceApp/internal/infrastructure/tracing"
	mw "github.com/vparmar-art/MarketplaceApp/internal/middleware"
	"github.com/vparmar-art/MarketplaceApp/internal/repository"
	"github.com/vparmar-art/MarketplaceApp/internal/service"
	"github.com/vparmar-art/MarketplaceApp/pkg/response"
	"github.com/vparmar-art/MarketplaceApp/pkg/utils"
)

type App struct {
	DB     *sqlx.DB
	Config *config.Config
	Server *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if app.Config.Environment == "development" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = logger

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()
	app.Server = e

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing, spans will not be exported")
		traceProvider, _ = tracing.InitTracing("")
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}()

	tracer := traceProvider.Tracer(tracing.ServiceName)

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	})

	// Unprefixed so metrics aggregate across services.
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mw.Logger)

	var publisher service.EventPublisher
	if app.Config.KafkaConfig.BrokerAddress != "" {
		kafkaPublisher := kafka.CreatePublisher(
			kafka.CreateKafkaWriter(app.Config.KafkaConfig.BrokerAddress, app.Config.KafkaConfig.BrokerTopic),
			circuitbreaker.CreateCircuitBreaker("kafka-publisher"),
		)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error().Err(err).Msg("Failed to close kafka writer")
			}
		}()
		publisher = kafkaPublisher
	} else {
		logger.Warn().Msg("BROKER_ADDRESS not set, events are disabled")
	}

	var notifier service.Notifier
	if app.Config.SMTPConfig.Host != "" {
		mailQueue := mailer.CreateQueue(
			mailer.CreateMailer(app.Config.SMTPConfig, circuitbreaker.CreateCircuitBreaker("smtp-mailer")),
			app.Config.SMTPConfig.QueueSize,
		)
		defer mailQueue.Close()
		notifier = mailQueue
	} else {
		logger.Warn().Msg("SMTP_HOST not set, e-mail notifications are disabled")
	}

	userRepo := repository.CreateUserRepository(app.DB)
	catalogRepo := repository.CreateCatalogRepository(app.DB)
	orderRepo := repository.CreateOrderRepository(app.DB)

	userService := service.CreateUserService(userRepo, publisher, app.Config.AuthConfig)
	profileService := service.CreateProfileService(userRepo)
	categoryService := service.CreateCategoryService(catalogRepo)
	productService := service.CreateProductService(catalogRepo, userRepo, publisher)
	orderService := service.CreateOrderService(orderRepo, catalogRepo, userRepo, publisher, notifier)

	jobs, err := scheduler.CreateScheduler(app.Config.SchedulerConfig.TokenPurgeInterval, userService.PurgeExpiredTokens)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create scheduler")
	} else {
		jobs.Start()
		defer func() {
			if err := jobs.Shutdown(); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown scheduler")
			}
		}()
	}

	g := e.Group("/api/v1", mw.Authenticate(userService))

	controller.CreateUserController(g, userService, mw.RequireAuth)
	controller.CreateProfileController(g, profileService, mw.RequireAuth)
	controller.CreateCategoryController(g, categoryService, mw.RequireAuth)
	controller.CreateProductController(g, productService, orderService, mw.RequireAuth)
	controller.CreateOrderController(g, orderService, mw.RequireAuth)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
