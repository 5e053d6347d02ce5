package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/config"
	"github.com/noah-isme/projeval-api/internal/database"
	"github.com/noah-isme/projeval-api/internal/handler"
	"github.com/noah-isme/projeval-api/internal/middleware"
	"github.com/noah-isme/projeval-api/internal/repository"
	"github.com/noah-isme/projeval-api/internal/router"
	"github.com/noah-isme/projeval-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, change events will skip it")
		} else {
			defer redisClient.Close()
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, change events will skip it")
		} else {
			defer natsConn.Close()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityService := service.NewActivityService(repository.NewActivityLogRepository(db), logger)
	hooks := service.ChangeHooks{
		Activity:  activityService,
		Publisher: service.NewChangePublisher(redisClient, natsConn, cfg.EventsChannel, logger),
	}

	studentService := service.NewStudentService(repository.NewStudentRepository(db), validate, hooks, logger)
	teamService := service.NewTeamService(repository.NewTeamRepository(db), validate, hooks, logger)
	projectService := service.NewProjectService(repository.NewProjectRepository(db), validate, hooks, logger)
	evaluationService := service.NewEvaluationService(repository.NewEvaluationRepository(db), validate, hooks, logger)
	marksService := service.NewMarksService(repository.NewMarksRepository(db), validate, hooks, logger)
	gradeService := service.NewGradeService(repository.NewGradeRepository(db), validate, hooks, logger)
	reportService := service.NewReportService(repository.NewReportRepository(db), logger)
	operationService := service.NewOperationService(marksService, logger)
	accountService := service.NewAccountService(repository.NewAccountRepository(db), validate, hooks, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    8 * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, RequestTimeout: cfg.RequestTimeout})
	router.Register(app, cfg, router.Dependencies{
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		TeamHandler:       handler.NewTeamHandler(teamService, logger),
		ProjectHandler:    handler.NewProjectHandler(projectService, logger),
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		MarksHandler:      handler.NewMarksHandler(marksService, logger),
		GradeHandler:      handler.NewGradeHandler(gradeService, logger),
		ReportHandler:     handler.NewReportHandler(reportService, logger),
		OperationHandler:  handler.NewOperationHandler(operationService, logger),
		ActivityHandler:   handler.NewActivityHandler(activityService, logger),
		AccountHandler:    handler.NewAccountHandler(accountService, logger),
		StorePing:         storePing(db),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, db, logger)
}

func storePing(db *gorm.DB) handler.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func waitForShutdown(app *fiber.App, db *gorm.DB, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info().Msg("server stopped")
}
