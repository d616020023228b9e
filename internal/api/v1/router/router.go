package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"dettyclub/internal/api/v1/handler"
	"dettyclub/internal/config"
	"dettyclub/internal/middleware"
	"dettyclub/internal/pgmq"
	"dettyclub/internal/pubsub"
	"dettyclub/internal/repository"
	"dettyclub/internal/service"
)

// New wires the full application: database pool, receipt store, event
// publisher, repositories, services and handlers. The returned pool is
// handed back so main can close it on shutdown.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// 1. Open DB connection pool
	pool, err := pgxpool.New(context.Background(), normalizeDSN(cfg))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open DB pool")
		return nil, nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. Initialize S3 client for the receipt store
	s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load S3 config")
		return nil, nil, err
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	})

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize Pub/Sub publisher. Events are optional; without a GCP
	// project the services simply skip publishing.
	var publisher pubsub.Publisher
	if cfg.GCPProjectID != "" {
		p, err := pubsub.NewPublisher(context.Background(), cfg)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Pub/Sub publisher")
			return nil, nil, err
		}
		publisher = p
	} else {
		logger.Warn().Msg("GCP_PROJECT_ID not set, domain events disabled")
	}

	// 5. Initialize notification queue
	queue := pgmq.New(pool)

	// 6. Initialize repositories, services and handlers
	userRepo := repository.NewUserRepo(pool)
	packageRepo := repository.NewPackageRepo(pool)
	subscriptionRepo := repository.NewSubscriptionRepo(pool)
	contributionRepo := repository.NewContributionRepo(pool)
	deliveryRepo := repository.NewDeliveryRepo(pool)
	announcementRepo := repository.NewAnnouncementRepo(pool)
	reportRepo := repository.NewReportRepo(pool)

	userSvc := service.NewUserService(userRepo, logger)
	catalogSvc := service.NewCatalogService(packageRepo, logger)
	subscriptionSvc := service.NewSubscriptionService(subscriptionRepo, catalogSvc, logger)
	contributionSvc := service.NewContributionService(
		contributionRepo, subscriptionRepo, deliveryRepo, catalogSvc,
		s3Client, cfg.S3Bucket,
		publisher, cfg.EventTopic,
		queue, cfg.NotifyQueueName,
		logger,
	)
	deliverySvc := service.NewDeliveryService(deliveryRepo, logger)
	announcementSvc := service.NewAnnouncementService(announcementRepo, publisher, cfg.EventTopic, logger)
	reportSvc := service.NewReportService(reportRepo, subscriptionRepo, contributionRepo, catalogSvc, logger)

	userHandler := handler.NewUserHandler(userSvc, validate)
	packageHandler := handler.NewPackageHandler(catalogSvc, validate)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionSvc, validate)
	contributionHandler := handler.NewContributionHandler(contributionSvc, validate)
	deliveryHandler := handler.NewDeliveryHandler(deliverySvc, validate)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc, validate)
	reportHandler := handler.NewReportHandler(reportSvc)

	// 7. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	// 8. Create ServeMux router with API v1 under /v1
	mux := http.NewServeMux()
	apiV1Mux := http.NewServeMux()
	userHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	packageHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	subscriptionHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	contributionHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	deliveryHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	announcementHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	reportHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// Swagger documentation
	mux.HandleFunc("/swagger/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger/swagger.json")
	})
	mux.Handle("/swagger/", http.StripPrefix("/swagger/", http.FileServer(http.Dir("./docs/swagger/swagger-ui"))))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// 9. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(c.Handler(mux)), pool, nil
}

// normalizeDSN adjusts the connection string for the environment: local
// development disables SSL, everything else runs behind a transaction
// pooler and needs the simple query protocol.
func normalizeDSN(cfg *config.Config) string {
	dsn := cfg.DBConnectionString
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		dsn += dsnSeparator(dsn) + "sslmode=disable"
	}
	if cfg.Environment != "development" && !strings.Contains(dsn, "default_query_exec_mode") {
		dsn += dsnSeparator(dsn) + "default_query_exec_mode=simple_protocol"
	}
	return dsn
}

func dsnSeparator(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if strings.Contains(dsn, "?") {
			return "&"
		}
		return "?"
	}
	return " "
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
