package container

import (
	"context"
	"fmt"
	"os"
	"time"

	"certificates-backend/internal/config"
	infraCache "certificates-backend/internal/infrastructure/cache"
	"certificates-backend/internal/infrastructure/database"
	"certificates-backend/internal/infrastructure/pdf"
	"certificates-backend/internal/infrastructure/storage"
	"certificates-backend/pkg/cache"
	"certificates-backend/pkg/jwt"

	"certificates-backend/internal/domains/certificate"
	certHandler "certificates-backend/internal/domains/certificate/handler"
	"certificates-backend/internal/domains/certificate/render"
	certRepo "certificates-backend/internal/domains/certificate/repository"
	certService "certificates-backend/internal/domains/certificate/service"
	"certificates-backend/internal/domains/event"
	eventHandler "certificates-backend/internal/domains/event/handler"
	eventRepo "certificates-backend/internal/domains/event/repository"
	eventService "certificates-backend/internal/domains/event/service"
	"certificates-backend/internal/domains/participant"
	participantRepo "certificates-backend/internal/domains/participant/repository"
	"certificates-backend/internal/domains/user"
	userHandler "certificates-backend/internal/domains/user/handler"
	userRepo "certificates-backend/internal/domains/user/repository"
	userService "certificates-backend/internal/domains/user/service"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Container wires the whole dependency graph. Both binaries build one; the
// API additionally uses the handlers, the worker only the services.
type Container struct {
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client
	Storage     storage.BlobStore

	CertificateRepo certificate.Repository
	ParticipantRepo participant.Repository
	EventRepo       event.Repository
	UserRepo        user.Repository

	Recorder           *certService.Recorder
	ImportService      *certService.ImportService
	CertificateService *certService.CertificateService
	ExportService      *certService.ExportService
	CleanupService     *certService.CleanupService
	EventService       eventService.Service
	UserService        *userService.UserService

	CertificateHandler *certHandler.CertificateHandler
	EventHandler       *eventHandler.EventHandler
	UserHandler        *userHandler.UserHandler
}

// NewContainer initializes the dependency graph bottom-up: config, then
// infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		// A dead cache degrades verification lookups, it does not block
		// startup.
		if err := rc.Connect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("redis connection failed, continuing without warm cache")
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	blobs, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = blobs

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Str("environment", cfg.App.Environment).Msg("container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CertificateRepo = certRepo.NewRepository(pool)
	c.ParticipantRepo = participantRepo.NewRepository(pool)
	c.EventRepo = eventRepo.NewRepository(pool)
	c.UserRepo = userRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	validator := certificate.RowValidator{Version: certificate.SchemaRole}
	if cfg.Certificate.Schema == "legacy" {
		validator.Version = certificate.SchemaLegacy
	}

	images := storage.NewImageProcessor()

	c.Recorder = certService.NewRecorder(c.CertificateRepo, c.ParticipantRepo)
	c.ImportService = certService.NewImportService(
		c.Recorder, c.EventRepo, c.Storage, images, validator)
	c.CertificateService = certService.NewCertificateService(
		c.CertificateRepo, c.ParticipantRepo, c.EventRepo, c.Recorder, c.Cache)

	renderer := render.NewRenderer(c.renderOptions())
	canvases := pdf.Factory{
		FontDir:     cfg.Certificate.FontDir,
		RegularFont: "regular.ttf",
		BoldFont:    "bold.ttf",
	}
	c.ExportService = certService.NewExportService(
		c.CertificateRepo, c.EventRepo, c.Storage, renderer,
		func() render.Canvas { return canvases.NewCanvas() })

	c.CleanupService = certService.NewCleanupService(c.CertificateRepo, c.Storage)
	c.EventService = eventService.NewService(c.EventRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.CertificateHandler = certHandler.NewCertificateHandler(
		c.ImportService, c.CertificateService, c.ExportService, c.AsynqClient)
	c.EventHandler = eventHandler.NewEventHandler(c.EventService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// renderOptions maps certificate config onto the renderer, loading the
// optional signature image from disk.
func (c *Container) renderOptions() render.Options {
	cfg := c.Config.Certificate

	opts := render.DefaultOptions()
	if cfg.Locale == "en" {
		opts.Locale = render.LocaleEN
	}
	if cfg.Title != "" {
		opts.Title = cfg.Title
	}
	if cfg.IssuerLine != "" {
		opts.IssuerLine = cfg.IssuerLine
	}
	if cfg.DefaultRole != "" {
		opts.DefaultRole = cfg.DefaultRole
	}
	opts.SignerName = cfg.SignerName
	opts.SignerRole = cfg.SignerRole
	opts.ValidationURL = cfg.ValidationURL

	if cfg.SignatureImage != "" {
		data, err := os.ReadFile(cfg.SignatureImage)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.SignatureImage).Msg("signature image not loaded")
		} else {
			opts.SignatureImage = data
		}
	}
	return opts
}

// Cleanup releases container resources during shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close asynq client")
		}
	}

	if c.DB != nil {
		_ = c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	log.Info().Msg("container resources released")
}
