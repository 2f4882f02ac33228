// cmd/campuscred-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/campuscred/campuscred/internal/api/rest/v1"
	"github.com/campuscred/campuscred/internal/app"
	"github.com/campuscred/campuscred/internal/infrastructure/connector"
	"github.com/campuscred/campuscred/internal/infrastructure/mailer"
	"github.com/campuscred/campuscred/internal/infrastructure/persistence"
	"github.com/campuscred/campuscred/internal/infrastructure/qrcode"
	"github.com/campuscred/campuscred/internal/infrastructure/tokens"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	ctx := context.Background()
	deps, err := initializeDependencies(ctx, restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db         *gorm.DB
	tokenStore io.Closer
	services   v1.Services
}

func (d *appDependencies) close(log logger.Logger) {
	if err := d.tokenStore.Close(); err != nil {
		log.Warn("Failed to close token store: ", err)
	}
	if err := persistence.CloseDB(d.db); err != nil {
		log.Warn("Failed to close database: ", err)
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(ctx context.Context, cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	repos, err := persistence.NewRepositories(db, log)
	if err != nil {
		return nil, err
	}

	objectConnector, err := connector.NewObjectConnector(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	issuer, err := tokens.NewJWTIssuer(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	tokenStore, tokenStoreCloser, err := tokens.NewTokenStore(ctx, &cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create token store: %w", err)
	}

	mail, err := mailer.NewMailer(&cfg.Mail, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}

	authService, err := app.NewAuthService(repos.Profiles, issuer, tokenStore, mail, &cfg.Auth,
		app.AuthLinks{AppURL: cfg.AppURL, APIURL: cfg.APIURL}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	profileService, err := app.NewProfileService(repos.Profiles, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	notificationService, err := app.NewNotificationService(repos.Notifications, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}

	documentService, err := app.NewDocumentService(repos.Documents, repos.Rejections,
		repos.ShareLinks, repos.QRCodes, objectConnector, cfg.Upload.MaxFileSize, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document service: %w", err)
	}

	verificationService, err := app.NewVerificationService(repos.Documents, repos.Rejections,
		repos.Profiles, notificationService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification service: %w", err)
	}

	shareLinkService, err := app.NewShareLinkService(repos.Documents, repos.Profiles,
		repos.ShareLinks, repos.QRCodes, objectConnector, notificationService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create share link service: %w", err)
	}

	qrCodeService, err := app.NewQRCodeService(repos.Documents, repos.ShareLinks, repos.QRCodes,
		shareLinkService, qrcode.NewPNGRenderer(), objectConnector, cfg.APIURL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create qr code service: %w", err)
	}

	portfolioService, err := app.NewPortfolioService(repos.Portfolios, repos.Documents, repos.Profiles, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appDependencies{
		db:         db,
		tokenStore: tokenStoreCloser,
		services: v1.Services{
			Auth:          authService,
			Profiles:      profileService,
			Documents:     documentService,
			Verification:  verificationService,
			Notifications: notificationService,
			ShareLinks:    shareLinkService,
			QRCodes:       qrCodeService,
			Portfolios:    portfolioService,
		},
	}, nil
}

func newRouter(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) *gin.Engine {
	r := gin.New()
	zl := logger.Zap(log)
	r.Use(ginzap.Ginzap(zl, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(zl, true))
	r.Use(v1.MetricsMiddleware())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(ctx *gin.Context) {
		if sqlDB, err := deps.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1.SetupRoutes(r, deps.services, v1.RouteOptions{
		Auth:        &cfg.Auth,
		RateLimit:   cfg.RateLimit,
		AppURL:      cfg.AppURL,
		APIURL:      cfg.APIURL,
		MaxFileSize: cfg.Upload.MaxFileSize,
		Logger:      log,
	})
	return r
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, deps, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
